package api

import (
	_ "emi-calculator/docs"
	"emi-calculator/internal/api/handler"
	mw "emi-calculator/internal/api/middleware"
	"emi-calculator/internal/config"
	"emi-calculator/internal/domain/emi"
	"emi-calculator/internal/domain/product"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func SetupRouter(rateLimiter *mw.RateLimiterMiddleware, calculator emi.CalculatorService, products product.ProductService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, rateLimiter, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupWebRoutes(router, calculator, products, logger)
	setupAPIRoutes(router, calculator, products, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, rateLimiter *mw.RateLimiterMiddleware, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	if rateLimiter != nil {
		router.Use(rateLimiter.Middleware)
	}
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupWebRoutes(router *chi.Mux, calculator emi.CalculatorService, products product.ProductService, logger *slog.Logger) {
	webHandler := handler.NewWebHandler(calculator, products, logger)
	router.Get("/", webHandler.ShowForm)
	router.Post("/", webHandler.SubmitForm)
}

func setupAPIRoutes(router *chi.Mux, calculator emi.CalculatorService, products product.ProductService, cfg *config.Config, logger *slog.Logger) {
	emiHandler := handler.NewEMIHandler(calculator, products, logger)
	productHandler := handler.NewProductHandler(products, logger)
	authHandler := handler.NewAuthHandler(cfg.Server.Auth, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/emi", emiHandler.CalculateEMIFromQuery)
		r.Post("/emi", emiHandler.CalculateEMI)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{code}", productHandler.GetProduct)
			r.With(mw.AuthMiddleware(cfg.Server.Auth, logger)).Put("/{code}", productHandler.UpsertProduct)
		})
	})
}
