package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexmx/config"
	"lexmx/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.PUT("/me", h.updateCurrentUser)
			users.PUT("/me/password", h.updatePassword)
		}

		lawyers := api.Group("/lawyers")
		{
			lawyers.GET("/", h.searchLawyers)
			lawyers.GET("/:id", h.getLawyerProfile)
			lawyers.GET("/:id/slots", h.getLawyerSlots)
			lawyers.GET("/:id/reviews", h.getLawyerReviews)

			me := lawyers.Group("/me", h.authMiddleware(), h.lawyerMiddleware())
			{
				me.PUT("/profile", h.updateLawyerProfile)
				me.POST("/photo", h.uploadLawyerPhoto)
				me.DELETE("/photo", h.deleteLawyerPhoto)
			}
		}

		appointments := api.Group("/appointments")
		appointments.Use(h.authMiddleware())
		{
			appointments.POST("/", h.clientMiddleware(), h.createAppointment)
			// El listado de próximas citas comparte la ruta raíz vía
			// ?upcoming=true: gin no admite un segmento estático junto al
			// comodín :id.
			appointments.GET("/", h.getAppointments)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.PUT("/:id/status", h.updateAppointmentStatus)
		}

		reviews := api.Group("/reviews")
		reviews.Use(h.authMiddleware())
		{
			reviews.POST("/", h.clientMiddleware(), h.createReview)
			reviews.GET("/mine", h.getMyReview)
		}
	}
}
