package http

import (
	"context"
	"log/slog"
	"time"

	"dochub/internal/auth"
	"dochub/internal/config"
	"dochub/internal/http/handlers"
	"dochub/internal/http/middlewares"
	"dochub/internal/observability"
	"dochub/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, cfg config.Config, reg *prometheus.Registry, limiter middlewares.Limiter) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware("dochub"))

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	}

	var prom *observability.Prom

	if reg != nil {
		prom = observability.NewProm(reg)
		r.Use(prom.GinHandleMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	documentsRepo := postgres.NewDocumentsRepo(pool, prom)
	rolesRepo := postgres.NewRolesRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.JWTAccessTTL())
	authMw := middlewares.NewAuthMiddleware(jwtManager)

	usersHandler := handlers.NewUsersHandler(usersRepo, jwtManager)
	documentsHandler := handlers.NewDocumentsHandler(documentsRepo, usersRepo)
	rolesHandler := handlers.NewRolesHandler(rolesRepo)

	limit := func(keyFn func(*gin.Context) string) gin.HandlerFunc {
		if limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middlewares.RateLimiterMiddleware(limiter, keyFn)
	}

	// open routes
	r.POST("/users", limit(middlewares.KeyByIP), usersHandler.SignUp)
	r.POST("/users/login", limit(middlewares.KeyByIP), usersHandler.Login)

	// everything else needs a token
	protected := r.Group("/", authMw.RequireAuth(), limit(middlewares.KeyByUserOrIP))

	protected.GET("/users", authMw.RequireAdmin(), usersHandler.ListUsers)
	protected.GET("/users/:id", usersHandler.GetUser)
	protected.PUT("/users/:id", usersHandler.UpdateUser)
	protected.DELETE("/users/:id", authMw.RequireAdmin(), usersHandler.DeleteUser)
	protected.GET("/users/:id/documents", documentsHandler.ListUserDocuments)

	protected.POST("/documents", documentsHandler.CreateDocument)
	protected.GET("/documents", documentsHandler.ListDocuments)
	protected.GET("/documents/search", documentsHandler.SearchDocuments)
	protected.GET("/documents/:id", documentsHandler.GetDocument)
	protected.PUT("/documents/:id", documentsHandler.UpdateDocument)
	protected.DELETE("/documents/:id", documentsHandler.DeleteDocument)

	roles := protected.Group("/roles", authMw.RequireAdmin())
	roles.POST("", rolesHandler.CreateRole)
	roles.GET("", rolesHandler.ListRoles)
	roles.GET("/:id", rolesHandler.GetRole)
	roles.PUT("/:id", rolesHandler.UpdateRole)
	roles.DELETE("/:id", rolesHandler.DeleteRole)

	return r
}
