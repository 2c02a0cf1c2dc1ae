package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexmx/internal/domain"
)

// @Summary Usuario actual
// @Description Devuelve los datos del usuario autenticado
// @Tags Usuarios
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} domain.User "Datos del usuario"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Failure 404 {object} errorResponseBody "Usuario no encontrado"
// @Router /users/me [get]
func (h *Handler) getCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "usuario no encontrado")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Actualizar el usuario actual
// @Description Actualiza el nombre o el correo del usuario autenticado
// @Tags Usuarios
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body domain.UpdateUserDTO true "Campos a actualizar"
// @Success 200 {object} messageResponseType "Usuario actualizado"
// @Failure 400 {object} errorResponseBody "Error de validación"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Router /users/me [put]
func (h *Handler) updateCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.UpdateUserDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("formato de datos no válido", zap.Error(err))
		badRequestResponse(c, "formato de datos no válido")
		return
	}

	if err := h.services.User.Update(c.Request.Context(), userID, input); err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "usuario actualizado")
}

// @Summary Cambiar la contraseña
// @Description Cambia la contraseña del usuario autenticado
// @Tags Usuarios
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body domain.PasswordUpdateDTO true "Contraseña actual y nueva"
// @Success 200 {object} messageResponseType "Contraseña actualizada"
// @Failure 400 {object} errorResponseBody "Error de validación"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Router /users/me/password [put]
func (h *Handler) updatePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.PasswordUpdateDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("formato de datos no válido", zap.Error(err))
		badRequestResponse(c, "formato de datos no válido")
		return
	}

	if err := h.services.User.UpdatePassword(c.Request.Context(), userID, input); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "usuario no encontrado")
			return
		}
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "contraseña actualizada")
}
