package handlers

import (
	"farmtech/internal/cache"
	"farmtech/internal/chat"
	"farmtech/internal/config"
	"farmtech/internal/repos"
	"farmtech/internal/services"
	"farmtech/internal/storage"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler    *AuthHandler
	ListingHandler *ListingHandler
	SearchHandler  *SearchHandler
	UserHandler    *UserHandler
	UploadHandler  *UploadHandler
	ChatHandler    *ChatHandler
}

// NewDeps wires repos and services. A nil cache disables result caching.
func NewDeps(db *sqlx.DB, cfg config.Config, sc cache.SearchCache, up storage.Uploader) *Deps {
	if sc == nil {
		sc = cache.Nop{}
	}
	userRepo := repos.NewUserRepo(db)
	listingRepo := repos.NewListingRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	listingSvc := services.NewListingService(listingRepo, sc)
	userSvc := &services.UserService{Users: userRepo, Cache: sc}
	uploadSvc := &services.UploadService{Store: up}

	return &Deps{
		Auth:           authSvc,
		AuthHandler:    &AuthHandler{Auth: authSvc, SecureCookie: cfg.CookieSecure},
		ListingHandler: &ListingHandler{Listings: listingSvc},
		SearchHandler:  &SearchHandler{Listings: listingSvc},
		UserHandler:    &UserHandler{Users: userSvc, Listings: listingSvc, SecureCookie: cfg.CookieSecure},
		UploadHandler:  &UploadHandler{Uploads: uploadSvc},
		ChatHandler:    &ChatHandler{Matcher: chat.NewMatcher(nil)},
	}
}
