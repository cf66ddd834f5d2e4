package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"farmtech/internal/cache"
	"farmtech/internal/domain"
	applog "farmtech/internal/log"
	"farmtech/internal/repos"
	"farmtech/internal/validate"
)

// UserService manages a signed-in user's own account.
type UserService struct {
	Users *repos.UserRepo
	Cache cache.SearchCache
}

// Update applies the non-empty fields of upd to the requester's account.
func (s *UserService) Update(requesterID, id string, upd domain.UserUpdate) (*domain.User, error) {
	if requesterID != id {
		return nil, ErrForbidden
	}
	u, err := s.Users.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}

	if upd.Username != "" {
		name, ok := validate.Username(upd.Username)
		if !ok {
			return nil, &validate.Error{Field: "username", Msg: "must be 3 to 20 letters, digits or ._-"}
		}
		u.Username = name
	}
	if upd.Email != "" {
		mail, ok := validate.Email(upd.Email)
		if !ok {
			return nil, &validate.Error{Field: "email", Msg: "is not a valid address"}
		}
		u.Email = strings.ToLower(mail)
	}
	if upd.Password != "" {
		if !validate.Password(upd.Password) {
			return nil, &validate.Error{Field: "password", Msg: "needs 8 to 20 characters with upper, lower, digit and symbol"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Hash = string(hash)
	}
	if upd.Avatar != "" {
		u.Avatar = strings.TrimSpace(upd.Avatar)
	}

	if err := s.Users.Update(u); err != nil {
		if errors.Is(err, repos.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return u, nil
}

// Delete removes the requester's account along with their sessions and listings.
func (s *UserService) Delete(ctx context.Context, requesterID, id string) error {
	if requesterID != id {
		return ErrForbidden
	}
	if err := s.Users.DeleteUserCascade(id); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			applog.Warnf("[cache] invalidate: %v", err)
		}
	}
	return nil
}
