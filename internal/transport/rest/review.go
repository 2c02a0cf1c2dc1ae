package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexmx/internal/domain"
)

// @Summary Crear una reseña
// @Description Crea una reseña sobre un abogado y actualiza su calificación promedio
// @Tags Reseñas
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body domain.CreateReviewDTO true "Datos de la reseña"
// @Success 201 {object} domain.Review "Reseña creada"
// @Failure 400 {object} errorResponseBody "Error de validación"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Failure 403 {object} errorResponseBody "Se requiere el rol de cliente"
// @Failure 404 {object} errorResponseBody "Abogado no encontrado"
// @Failure 409 {object} errorResponseBody "Ya existe una reseña de este autor"
// @Router /reviews [post]
func (h *Handler) createReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateReviewDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("formato de datos no válido", zap.Error(err))
		badRequestResponse(c, "formato de datos no válido")
		return
	}

	review, err := h.services.Review.Create(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyReviewed):
			conflictResponse(c, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "abogado no encontrado")
		default:
			badRequestResponse(c, err.Error())
		}
		return
	}

	createdResponse(c, review)
}

// @Summary Mi reseña sobre un abogado
// @Description Devuelve la reseña que el usuario autenticado ya dejó sobre el abogado indicado
// @Tags Reseñas
// @Produce json
// @Security ApiKeyAuth
// @Param lawyer_id query string true "Identificador del abogado"
// @Success 200 {object} domain.Review "Reseña del autor"
// @Failure 400 {object} errorResponseBody "Falta el parámetro lawyer_id"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Failure 404 {object} errorResponseBody "Sin reseña previa"
// @Router /reviews/mine [get]
func (h *Handler) getMyReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	lawyerID := c.Query("lawyer_id")
	if lawyerID == "" {
		badRequestResponse(c, "el parámetro lawyer_id es obligatorio")
		return
	}

	review, err := h.services.Review.GetMine(c.Request.Context(), userID, lawyerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "no has dejado una reseña sobre este abogado")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, review)
}
