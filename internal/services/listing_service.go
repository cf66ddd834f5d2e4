package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"farmtech/internal/cache"
	"farmtech/internal/domain"
	applog "farmtech/internal/log"
	"farmtech/internal/query"
	"farmtech/internal/repos"
	"farmtech/internal/validate"
)

var (
	ErrNotFound  = errors.New("listing not found")
	ErrForbidden = errors.New("not the owner")
)

type ListingService struct {
	Listings *repos.ListingRepo
	Cache    cache.SearchCache
}

func NewListingService(l *repos.ListingRepo, c cache.SearchCache) *ListingService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ListingService{Listings: l, Cache: c}
}

// Search serves a cached page when one exists. Cache trouble is logged and
// the store answers instead; the answer is only cached under the generation
// observed before the store was read.
func (s *ListingService) Search(ctx context.Context, c query.Criteria) ([]domain.Listing, error) {
	key := c.Key()
	hit, gen, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		applog.Warnf("[cache] get %q: %v", key, err)
	} else if ok {
		return hit, nil
	}
	cacheable := err == nil

	out, err := s.Listings.Search(c)
	if err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	if cacheable {
		if err := s.Cache.Set(ctx, gen, key, out); err != nil {
			applog.Warnf("[cache] set %q: %v", key, err)
		}
	}
	return out, nil
}

func (s *ListingService) Get(id string) (domain.Listing, error) {
	l, err := s.Listings.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return l, ErrNotFound
	}
	if err != nil {
		return l, fmt.Errorf("get listing %s: %w", id, err)
	}
	return l, nil
}

func (s *ListingService) Create(ctx context.Context, userID string, in domain.ListingInput) (domain.Listing, error) {
	if err := validate.Listing(&in); err != nil {
		return domain.Listing{}, err
	}
	l := fromInput(in)
	l.ID = uuid.NewString()
	l.UserRef = userID
	if err := s.Listings.Create(&l); err != nil {
		return domain.Listing{}, fmt.Errorf("create listing: %w", err)
	}
	s.invalidate(ctx)
	return l, nil
}

func (s *ListingService) Update(ctx context.Context, userID, id string, in domain.ListingInput) (domain.Listing, error) {
	cur, err := s.owned(userID, id)
	if err != nil {
		return domain.Listing{}, err
	}
	if err := validate.Listing(&in); err != nil {
		return domain.Listing{}, err
	}
	l := fromInput(in)
	l.ID, l.UserRef, l.CreatedAt = cur.ID, cur.UserRef, cur.CreatedAt
	if err := s.Listings.Update(&l); err != nil {
		return domain.Listing{}, fmt.Errorf("update listing %s: %w", id, err)
	}
	s.invalidate(ctx)
	return l, nil
}

func (s *ListingService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	if err := s.Listings.Delete(id); err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

// ListByUser returns ownerID's listings; only the owner may ask.
func (s *ListingService) ListByUser(requesterID, ownerID string) ([]domain.Listing, error) {
	if requesterID != ownerID {
		return nil, ErrForbidden
	}
	out, err := s.Listings.ListByUser(ownerID)
	if err != nil {
		return nil, fmt.Errorf("list listings of %s: %w", ownerID, err)
	}
	return out, nil
}

func (s *ListingService) owned(userID, id string) (domain.Listing, error) {
	l, err := s.Get(id)
	if err != nil {
		return l, err
	}
	if l.UserRef != userID {
		return l, ErrForbidden
	}
	return l, nil
}

func (s *ListingService) invalidate(ctx context.Context) {
	if err := s.Cache.Invalidate(ctx); err != nil {
		applog.Warnf("[cache] invalidate: %v", err)
	}
}

func fromInput(in domain.ListingInput) domain.Listing {
	return domain.Listing{
		Name:          in.Name,
		Description:   in.Description,
		Location:      in.Location,
		Type:          in.Type,
		Category:      in.Category,
		Condition:     in.Condition,
		RentalPrice:   in.RentalPrice,
		DiscountPrice: in.DiscountPrice,
		DepositAmount: in.DepositAmount,
		Offer:         in.Offer,
		ImageURLs:     domain.StringList(in.ImageURLs),
	}
}
