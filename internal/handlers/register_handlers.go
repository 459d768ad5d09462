package handlers

import (
	"github.com/SscSPs/finance_planner/cmd/docs"
	portssvc "github.com/SscSPs/finance_planner/internal/core/ports/services"
	"github.com/SscSPs/finance_planner/internal/middleware"
	"github.com/SscSPs/finance_planner/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil rateLimiter disables rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	registerHomeRoutes(r, cfg)

	setupAPIRoutes(r, cfg, services, rateLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	api := r.Group("/api")
	if rateLimiter != nil {
		api.Use(middleware.RateLimit(rateLimiter))
	}
	if cfg.DBQueryTimeout > 0 {
		api.Use(middleware.RequestTimeout(cfg.DBQueryTimeout))
	}

	// Listing one's tenants needs an identity but no tenant membership.
	identity := api.Group("", middleware.IdentityMiddleware(service.Gate))
	registerUserTenantRoutes(identity, service.Tenant)

	tenantScoped := api.Group("", middleware.TenantAuthMiddleware(service.Gate))
	registerAccountRoutes(tenantScoped, service.Account)
	registerTransactionRoutes(tenantScoped, service.Ledger, service.Transaction)
	registerTenantRoutes(tenantScoped, service.Tenant)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Title = cfg.AppName
	docs.SwaggerInfo.Version = cfg.AppVersion
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
