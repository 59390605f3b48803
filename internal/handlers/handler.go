package handlers

import (
	"herptrack/internal/logger"
	"herptrack/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Per-pet schedule risk stream (HTTP upgrade), same port.
	router.GET("/ws", h.wsRiskStream)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerPetRoutes(api)
		h.registerForumRoutes(api)
		h.registerProductRoutes(api)
	}
}

func (h *Handler) registerPetRoutes(api *gin.RouterGroup) {
	pets := api.Group("/pets")
	{
		pets.POST("/", h.createPet)
		pets.GET("/", h.listPets)
		pets.GET("/:id", h.getPet)
		pets.PUT("/:id", h.updatePet)
		pets.DELETE("/:id", h.deletePet)

		pets.PUT("/:id/target", h.setTarget)
		pets.GET("/:id/target", h.getTarget)

		pets.POST("/:id/events", h.recordEvent)
		pets.GET("/:id/events", h.listEvents)
		pets.POST("/:id/readings", h.recordReading)

		pets.GET("/:id/risk/feeding", h.feedingRisk)
		pets.GET("/:id/risk/calcium", h.calciumRisk)
		pets.GET("/:id/risk/vitamin-d3", h.vitaminD3Risk)
		pets.POST("/:id/risk/temperature", h.temperatureRisk)
		pets.POST("/:id/risk/uvb", h.uvbRisk)

		pets.GET("/:id/compliance", h.complianceReport)
	}
}

func (h *Handler) registerForumRoutes(api *gin.RouterGroup) {
	forum := api.Group("/forum")
	{
		forum.GET("/posts", h.listPosts)
		forum.POST("/posts", h.createPost)
	}
}

func (h *Handler) registerProductRoutes(api *gin.RouterGroup) {
	api.GET("/products", h.listProducts)
}
