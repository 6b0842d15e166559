// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, authentication, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic router setup; all dependencies injected
//   - Identity resolved once, before idempotency and rate limiting
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/gift-calendar/internal/auth"
	"github.com/tbourn/gift-calendar/internal/config"
	"github.com/tbourn/gift-calendar/internal/http/handlers"
	"github.com/tbourn/gift-calendar/internal/http/middleware"
	"github.com/tbourn/gift-calendar/internal/repo"
	"github.com/tbourn/gift-calendar/internal/services"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. verifier may be nil, in which case the trusted X-User-* headers
// identify the caller.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with email/id scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter and gzip
//  6. Metrics
//  7. CORS and security headers (preflights end here)
//  8. Authenticate: resolve and provision the caller
//  9. Idempotency validator (before rate limiter to allow bypass on replay)
//  10. Rate limiter (per user/IP, bypass on replay)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, verifier *auth.Verifier, cfg config.Config) error {
	r.HandleMethodNotAllowed = true
	loc := cfg.Calendar.Location()

	// Dependency injection: services ← repo/db
	calSvc, err := services.NewCalendarService(db, loc, cfg.Calendar.CacheSize, cfg.Calendar.CacheTTL)
	if err != nil {
		return err
	}
	invSvc := &services.InvitationService{DB: db, Mailer: services.LogMailer{}, Views: calSvc}
	voteSvc := &services.VoteService{
		DB:             db,
		Invitations:    invSvc,
		Views:          calSvc,
		MaxAnswerRunes: cfg.Calendar.MaxAnswerRunes,
		Location:       loc,
	}
	revSvc := &services.RevealService{
		DB:            db,
		Views:         calSvc,
		AllowTestMode: cfg.Calendar.AllowTestMode,
		Location:      loc,
	}
	userSvc := &services.UserService{DB: db}

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{middleware.HeaderUserEmail},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit and response compression
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) CORS posture and security headers
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      true,
		EnablePolicy: true,
	}))

	// 8) Identity
	r.Use(middleware.Authenticate(verifier, func(ctx context.Context, id, email, name string) error {
		_, err := userSvc.Ensure(ctx, services.Principal{ID: id, Email: email, Name: name})
		return err
	}))

	// 9) Idempotency replay (before rate limiting)
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		idempotencyLookup(db),
	))

	// 10) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(handlers.Deps{
		Calendar:       calSvc,
		Invitations:    invSvc,
		Votes:          voteSvc,
		Reveals:        revSvc,
		Users:          userSvc,
		DB:             db,
		IdempotencyTTL: cfg.IdempotencyTTL,
		AppBaseURL:     cfg.Calendar.AppBaseURL,
		LinkOrigins:    cfg.CORS.AllowedOrigins,
		Location:       loc,
	})

	api := groupWithPrefix(r, cfg.APIBasePath)

	// Public
	api.GET("/categories", h.ListCategories)

	user := api.Group("", middleware.RequireUser())
	{
		// Own calendar
		user.POST("/calendar", h.GenerateCalendarCode)
		user.GET("/calendar", h.GetCalendar)
		user.PUT("/calendar/voting", h.UpdateVoting)

		// Friends' calendars
		user.GET("/calendars/:code", h.GetCalendarByCode)
		user.POST("/votes", h.SubmitVotes)

		// Invitations
		user.POST("/invitations", h.CreateInvitations)
		user.GET("/invitations", h.ListInvitations)
		user.GET("/invitations/received", h.ListReceivedInvitations)
		user.DELETE("/invitations/:id", h.DeleteInvitation)

		// Reveals
		user.POST("/reveals/:day", h.RevealDay)
		if cfg.Calendar.AllowTestMode {
			user.DELETE("/reveals", h.ResetReveals)
		}

		// Profile
		user.GET("/me", h.GetMe)
		user.PUT("/me", h.UpdateMe)
	}
	return nil
}

// idempotencyLookup serves stored responses from the idempotency table.
func idempotencyLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, userID, scope, key string, now time.Time) (*middleware.StoredResponse, error) {
		rec, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &middleware.StoredResponse{Status: rec.Status, Body: []byte(rec.Body)}, nil
	}
}

// corsMiddleware allows every origin when none are configured and echoes
// allow-listed origins otherwise.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	allowHeaders := []string{
		"Origin", "Content-Type", "Accept", "Authorization",
		middleware.HeaderUserID, middleware.HeaderUserEmail, middleware.HeaderUserName,
		middleware.HeaderIdempotencyKey, "If-None-Match",
	}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", "ETag", "Retry-After", middleware.HeaderIdempotentReplay}
	methods := []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// Force ACAO: * even for requests without an Origin header.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins:  true,
				AllowMethods:     methods,
				AllowHeaders:     allowHeaders,
				ExposeHeaders:    exposeHeaders,
				AllowCredentials: false, // must remain false with AllowAllOrigins
				MaxAge:           12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     methods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
