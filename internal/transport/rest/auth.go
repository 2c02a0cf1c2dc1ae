package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexmx/internal/domain"
)

// @Summary Registro de un nuevo usuario
// @Description Registra un usuario con rol de cliente o de abogado
// @Tags Autenticación
// @Accept json
// @Produce json
// @Param input body domain.RegisterRequest true "Datos de registro"
// @Success 201 {object} successResponseBody "Identificador del usuario creado"
// @Failure 400 {object} errorResponseBody "Error de validación"
// @Failure 500 {object} errorResponseBody "Error interno del servidor"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input domain.RegisterRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("formato de datos no válido", zap.Error(err))
		badRequestResponse(c, "formato de datos no válido")
		return
	}

	id, err := h.services.Auth.Register(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("error en el registro", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Inicio de sesión
// @Description Autentica al usuario y devuelve los tokens de acceso
// @Tags Autenticación
// @Accept json
// @Produce json
// @Param input body domain.LoginRequest true "Credenciales"
// @Success 200 {object} domain.Tokens "Tokens de acceso y de refresco"
// @Failure 400 {object} errorResponseBody "Error de validación"
// @Failure 401 {object} errorResponseBody "Credenciales incorrectas"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input domain.LoginRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("formato de datos no válido", zap.Error(err))
		badRequestResponse(c, "formato de datos no válido")
		return
	}

	userAgent := c.Request.UserAgent()
	ip := c.ClientIP()

	tokens, err := h.services.Auth.Login(c.Request.Context(), input, userAgent, ip)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Renovación de tokens
// @Description Intercambia el refresh token por un nuevo par de tokens
// @Tags Autenticación
// @Accept json
// @Produce json
// @Param input body domain.RefreshTokenRequest true "Token de refresco"
// @Success 200 {object} domain.Tokens "Nuevos tokens"
// @Failure 400 {object} errorResponseBody "Error de validación"
// @Failure 401 {object} errorResponseBody "Token de refresco no válido"
// @Router /auth/refresh [post]
func (h *Handler) refreshTokens(c *gin.Context) {
	var input domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("formato de datos no válido", zap.Error(err))
		badRequestResponse(c, "formato de datos no válido")
		return
	}

	userAgent := c.Request.UserAgent()
	ip := c.ClientIP()

	tokens, err := h.services.Auth.RefreshTokens(c.Request.Context(), input.RefreshToken, userAgent, ip)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Cierre de sesión
// @Description Invalida la sesión asociada al refresh token
// @Tags Autenticación
// @Accept json
// @Produce json
// @Param input body domain.RefreshTokenRequest true "Token de refresco"
// @Success 204 {object} nil "Sesión cerrada"
// @Failure 400 {object} errorResponseBody "Error de validación"
// @Failure 500 {object} errorResponseBody "Error interno del servidor"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	var input domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("formato de datos no válido", zap.Error(err))
		badRequestResponse(c, "formato de datos no válido")
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		h.logger.Error("error al cerrar sesión", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}
