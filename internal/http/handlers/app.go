package handlers

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"farmtech/internal/config"
	applog "farmtech/internal/log"
)

// BodyLimit leaves room for a 2 MiB image plus multipart framing.
const BodyLimit = 8 << 20

// NewApp builds the fiber application: middleware, error handling and routes.
func NewApp(cfg config.Config, deps *Deps) *fiber.App {
	engine := html.New(cfg.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: ErrorHandler,
		BodyLimit:    BodyLimit,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept, X-Csrf-Token",
		AllowCredentials: false,
	}))
	app.Use(AttachUser(deps.Auth))
	if cfg.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/media/")
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.global.hit", nil)
				return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, retry soon")
			},
		}))
	}
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:X-Csrf-Token",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			return fiber.NewError(fiber.StatusForbidden, "Security check failed. Please refresh and try again.")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	app.Get("/media/*", mediaHandler(mediaDir))

	// ---------- Pages ----------
	app.Get("/", deps.SearchHandler.Home)
	app.Get("/search", deps.SearchHandler.Search)
	app.Get("/listing/:id", deps.SearchHandler.Detail)

	// ---------- API ----------
	api := app.Group("/api")
	auth := RequireUser(deps.Auth)

	listing := api.Group("/listing")
	listing.Get("/get", deps.ListingHandler.Search)
	listing.Get("/get/:id", deps.ListingHandler.Get)
	listing.Post("/create", auth, deps.ListingHandler.Create)
	listing.Post("/update/:id", auth, deps.ListingHandler.Update)
	listing.Delete("/delete/:id", auth, deps.ListingHandler.Delete)

	authAPI := api.Group("/auth")
	authAPI.Post("/signup", deps.AuthHandler.Signup)
	authAPI.Post("/signin", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many attempts. Please try again later.")
		},
	}), deps.AuthHandler.Signin)
	authAPI.Get("/signout", deps.AuthHandler.Signout)

	user := api.Group("/user", auth)
	user.Post("/update/:id", deps.UserHandler.Update)
	user.Delete("/delete/:id", deps.UserHandler.Delete)
	user.Get("/listings/:id", deps.UserHandler.OwnListings)

	api.Post("/upload/upload", auth, deps.UploadHandler.Upload)

	api.Get("/chat", deps.ChatHandler.Greeting)
	api.Post("/chat", deps.ChatHandler.Reply)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return app
}

// mediaHandler serves files below dir and refuses traversal attempts.
func mediaHandler(dir string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(dir, clean), true)
	}
}
