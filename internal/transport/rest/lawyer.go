package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexmx/internal/domain"
)

const maxPhotoSizeBytes = 5 << 20

// @Summary Buscar abogados
// @Description Lista abogados filtrando por especialidad, calificación mínima y texto libre
// @Tags Abogados
// @Produce json
// @Param specialty query string false "Especialidad"
// @Param min_rating query number false "Calificación mínima"
// @Param q query string false "Búsqueda por nombre, especialidad, biografía o ubicación"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {object} successResponseBody "Lista de abogados"
// @Router /lawyers [get]
func (h *Handler) searchLawyers(c *gin.Context) {
	minRating, _ := strconv.ParseFloat(c.DefaultQuery("min_rating", "0"), 64)
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		limit = 50
	}

	filter := domain.LawyerFilter{
		Specialty:  c.Query("specialty"),
		MinRating:  minRating,
		SearchTerm: c.Query("q"),
		Limit:      limit,
	}

	lawyers := h.services.Lawyer.Search(c.Request.Context(), filter)

	successResponse(c, http.StatusOK, lawyers)
}

// @Summary Perfil público de un abogado
// @Tags Abogados
// @Produce json
// @Param id path string true "Identificador del abogado"
// @Success 200 {object} domain.User "Perfil del abogado"
// @Failure 404 {object} errorResponseBody "Abogado no encontrado"
// @Router /lawyers/{id} [get]
func (h *Handler) getLawyerProfile(c *gin.Context) {
	id := c.Param("id")

	profile, err := h.services.Lawyer.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "abogado no encontrado")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, profile)
}

// @Summary Horarios disponibles de un abogado
// @Description Devuelve las horas reservables de un abogado para una fecha concreta
// @Tags Abogados
// @Produce json
// @Param id path string true "Identificador del abogado"
// @Param date query string true "Fecha en formato AAAA-MM-DD"
// @Success 200 {object} successResponseBody "Horas disponibles"
// @Failure 400 {object} errorResponseBody "Fecha no válida"
// @Failure 404 {object} errorResponseBody "Abogado no encontrado"
// @Router /lawyers/{id}/slots [get]
func (h *Handler) getLawyerSlots(c *gin.Context) {
	id := c.Param("id")
	date := c.Query("date")

	if date == "" {
		badRequestResponse(c, "el parámetro date es obligatorio")
		return
	}

	times, err := h.services.Lawyer.BookableTimes(c.Request.Context(), id, date)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "abogado no encontrado")
			return
		}
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"date":  date,
		"times": times,
	})
}

// @Summary Reseñas de un abogado
// @Tags Abogados
// @Produce json
// @Param id path string true "Identificador del abogado"
// @Param limit query int false "Máximo de reseñas"
// @Success 200 {object} successResponseBody "Lista de reseñas"
// @Router /lawyers/{id}/reviews [get]
func (h *Handler) getLawyerReviews(c *gin.Context) {
	id := c.Param("id")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		limit = 50
	}

	reviews, err := h.services.Review.ListByLawyer(c.Request.Context(), id, limit)
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, reviews)
}

// @Summary Actualizar el perfil profesional
// @Description Actualiza el perfil del abogado autenticado, incluida su disponibilidad semanal
// @Tags Abogados
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body domain.UpdateLawyerProfileDTO true "Campos a actualizar"
// @Success 200 {object} messageResponseType "Perfil actualizado"
// @Failure 400 {object} errorResponseBody "Error de validación"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Failure 403 {object} errorResponseBody "Se requiere el rol de abogado"
// @Router /lawyers/me/profile [put]
func (h *Handler) updateLawyerProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.UpdateLawyerProfileDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("formato de datos no válido", zap.Error(err))
		badRequestResponse(c, "formato de datos no válido")
		return
	}

	if err := h.services.Lawyer.UpdateProfile(c.Request.Context(), userID, input); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "abogado no encontrado")
			return
		}
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "perfil actualizado")
}

// @Summary Subir la foto de perfil
// @Description Sube una imagen y la asocia al perfil del abogado autenticado
// @Tags Abogados
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param photo formData file true "Imagen de perfil"
// @Success 200 {object} successResponseBody "URL de la foto"
// @Failure 400 {object} errorResponseBody "Archivo no válido"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Router /lawyers/me/photo [post]
func (h *Handler) uploadLawyerPhoto(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "no se recibió ningún archivo")
		return
	}

	if fileHeader.Size > maxPhotoSizeBytes {
		badRequestResponse(c, "la imagen supera el tamaño máximo de 5 MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("error al abrir el archivo subido", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("error al leer el archivo subido", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	url, err := h.services.Lawyer.UploadProfilePhoto(c.Request.Context(), userID, data, fileHeader.Filename)
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"photo_url": url,
	})
}

// @Summary Eliminar la foto de perfil
// @Tags Abogados
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} messageResponseType "Foto eliminada"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Failure 403 {object} errorResponseBody "Se requiere el rol de abogado"
// @Router /lawyers/me/photo [delete]
func (h *Handler) deleteLawyerPhoto(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Lawyer.DeleteProfilePhoto(c.Request.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "abogado no encontrado")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "foto eliminada")
}
