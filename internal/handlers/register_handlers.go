package handlers

import (
	"fmt"

	"github.com/SscSPs/wallet_ledger_app/cmd/docs"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/middleware"
	"github.com/SscSPs/wallet_ledger_app/internal/platform/config"
	"github.com/SscSPs/wallet_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	registerValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Development tokens stand in for an identity provider outside production
	if cfg.EnableDevTokens {
		RegisterAuthRoutes(r, services.Token)
	}

	if err := setupAPIV1Routes(r, cfg, services, posthogClient); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	operationsLimiter, err := middleware.NewMemoryLimiter(cfg.OperationsRateLimit)
	if err != nil {
		return fmt.Errorf("invalid operations rate limit %q: %w", cfg.OperationsRateLimit, err)
	}

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.PosthogMiddleware(posthogClient))

	RegisterWalletRoutes(v1, services.Wallet)
	RegisterOperationRoutes(v1, services.Operation, middleware.RateLimit(operationsLimiter))
	RegisterBillRoutes(v1, services.Bill)
	RegisterBudgetRoutes(v1, services.Budget)
	RegisterTransactionRoutes(v1, services.Transaction)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
