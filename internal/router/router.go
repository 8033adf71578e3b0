package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"docpilot/docs"
	"docpilot/internal/config"
	"docpilot/internal/handler"
	"docpilot/internal/metrics"
	"docpilot/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	m *metrics.Metrics,
	relayH *handler.RelayHandler,
	healthH *handler.HealthHandler,
	analysisH *handler.AnalysisHandler,
	conversationH *handler.ConversationHandler,
	extractionH *handler.ExtractionHandler,
	schemaH *handler.SchemaHandler,
	exportH *handler.ExportHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if m != nil && cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	docs.SwaggerInfo.BasePath = "/api"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Every route that reaches the vendor shares one per-IP budget.
	vendorLimit := middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	api := r.Group("/api")
	api.GET("/health", healthH.Health)
	api.POST("/document-parse", vendorLimit, relayH.DocumentParse)
	api.POST("/information-extract", vendorLimit, relayH.InformationExtract)
	api.POST("/solar-chat", vendorLimit, relayH.SolarChat)

	v1 := api.Group("/v1")

	// Built-in schemas
	schemas := v1.Group("/schemas")
	schemas.GET("", schemaH.List)
	schemas.GET("/:type", schemaH.Get)

	v1.POST("/extractions", vendorLimit, extractionH.Create)

	// Contract analysis sessions
	analyses := v1.Group("/contract-analyses")
	analyses.POST("", vendorLimit, analysisH.Create)
	analyses.GET("/:id", analysisH.Get)

	// Document conversations
	conversations := v1.Group("/conversations")
	conversations.POST("", conversationH.Create)
	conversations.GET("/:id", conversationH.Get)
	conversations.POST("/:id/turns", vendorLimit, conversationH.SendTurn)

	v1.POST("/exports", exportH.Create)

	return r
}
