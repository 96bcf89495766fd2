package v1

import (
	"net/http"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ProfileUC     domain.ProfileUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	StatsUC       domain.StatsUsecase
	Tokens        *auth.TokenIssuer
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CSRFMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config)))
	r.Use(middleware.ErrorHandler())

	// Local storage driver serves uploaded resumes directly
	if deps.Config.StorageDriver == "local" {
		r.Static("/uploads/resumes", deps.Config.UploadDir)
	}

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Credential endpoints carry a strict per-IP limit
	public := v1.Group("")
	public.Use(middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(deps.Config)))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		NewAuthHandler(public, protected, deps.AuthUC, deps.Config)
		NewProfileHandler(protected, deps.ProfileUC)
		NewJobHandler(v1, admin, deps.JobUC)

		uploadLimiter := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(deps.Config))
		NewApplicationHandler(protected, admin, deps.ApplicationUC, uploadLimiter)

		NewAdminHandler(admin, deps.StatsUC, deps.ApplicationUC)
	}

	return r
}
