package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"docreview/internal/handler"
	"docreview/internal/middleware"
)

// Common holds the middleware settings shared by every service.
type Common struct {
	Logger         zerolog.Logger
	AllowedOrigins []string
}

func newEngine(common Common) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID(common.Logger))
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(common.AllowedOrigins))
	return r
}

// SetupOrchestrator configures the review/compare service.
func SetupOrchestrator(
	common Common,
	reviewH *handler.ReviewHandler,
	compareH *handler.CompareHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := newEngine(common)

	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	v1.POST("/review", reviewH.Review)
	v1.POST("/compare", middleware.Identity(), compareH.Compare)

	return r
}

// SetupResultStore configures the analysis result store. An empty apiKey
// leaves the routes open.
func SetupResultStore(
	common Common,
	apiKey string,
	analysisH *handler.AnalysisHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := newEngine(common)
	// Match on the escaped path so ids containing "/" stay one segment.
	r.UseRawPath = true
	r.UnescapePathValues = true

	r.GET("/health", healthH.Liveness)
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	protected := r.Group("")
	protected.Use(middleware.APIKey(apiKey))

	results := protected.Group("/analyse-results")
	results.POST("", analysisH.Create)
	results.GET("", analysisH.List)
	results.GET("/:id", analysisH.Get)
	results.PUT("/:id", analysisH.Update)
	results.DELETE("/:id", analysisH.Delete)

	byFile := protected.Group("/results")
	byFile.GET("/:file_id", analysisH.ListByFileID)
	byFile.GET("/:file_id/export", analysisH.Export)

	return r
}

// SetupModelGateway configures the model gateway.
func SetupModelGateway(
	common Common,
	apiKey string,
	modelH *handler.ModelHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := newEngine(common)

	r.GET("/health", healthH.Liveness)
	r.GET("/healthz", healthH.Liveness)
	r.POST("/ai", middleware.APIKey(apiKey), modelH.Analyze)

	return r
}
