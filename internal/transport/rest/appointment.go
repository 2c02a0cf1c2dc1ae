package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lexmx/internal/domain"
)

// @Summary Reservar una cita
// @Description Reserva un horario con un abogado; si el horario ya está ocupado responde 409
// @Tags Citas
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body domain.CreateAppointmentDTO true "Datos de la cita"
// @Success 201 {object} domain.Appointment "Cita creada"
// @Failure 400 {object} errorResponseBody "Error de validación"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Failure 403 {object} errorResponseBody "Se requiere el rol de cliente"
// @Failure 409 {object} errorResponseBody "El horario ya está reservado"
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("formato de datos no válido", zap.Error(err))
		badRequestResponse(c, "formato de datos no válido")
		return
	}

	appointment, err := h.services.Booking.Book(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotTaken):
			conflictResponse(c, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "abogado no encontrado")
		default:
			badRequestResponse(c, err.Error())
		}
		return
	}

	createdResponse(c, appointment)
}

// @Summary Citas del usuario
// @Description Con upcoming=true lista las citas activas de hoy en adelante, de la más próxima a la más lejana; sin él, el historial completo de la más reciente a la más antigua
// @Tags Citas
// @Produce json
// @Security ApiKeyAuth
// @Param upcoming query bool false "Solo próximas citas"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {object} successResponseBody "Lista de citas"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	userID, role, ok := h.identity(c)
	if !ok {
		return
	}

	upcoming := c.Query("upcoming") == "true"

	defaultLimit := "100"
	if upcoming {
		defaultLimit = "20"
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", defaultLimit))
	if err != nil || limit < 0 {
		limit = 100
	}

	var appointments []domain.Appointment
	if upcoming {
		appointments, err = h.services.Booking.ListUpcoming(c.Request.Context(), userID, role, limit)
	} else {
		appointments, err = h.services.Booking.ListAll(c.Request.Context(), userID, role, limit)
	}
	if err != nil {
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, appointments)
}

// @Summary Detalle de una cita
// @Tags Citas
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Identificador de la cita"
// @Success 200 {object} domain.Appointment "Datos de la cita"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Failure 404 {object} errorResponseBody "Cita no encontrada"
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id := c.Param("id")

	appointment, err := h.services.Booking.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "cita no encontrada")
			return
		}
		internalServerErrorResponse(c)
		return
	}

	// Solo las partes de la cita pueden verla.
	if appointment.ClientID != userID && appointment.LawyerID != userID {
		notFoundResponse(c, "cita no encontrada")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Cambiar el estado de una cita
// @Description Confirma, completa o cancela una cita según el grafo de estados y el rol del actor
// @Tags Citas
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Identificador de la cita"
// @Param input body domain.UpdateAppointmentStatusDTO true "Nuevo estado"
// @Success 200 {object} messageResponseType "Estado actualizado"
// @Failure 400 {object} errorResponseBody "Error de validación"
// @Failure 401 {object} errorResponseBody "No autenticado"
// @Failure 404 {object} errorResponseBody "Cita no encontrada"
// @Failure 409 {object} errorResponseBody "Transición de estado no permitida"
// @Router /appointments/{id}/status [put]
func (h *Handler) updateAppointmentStatus(c *gin.Context) {
	userID, role, ok := h.identity(c)
	if !ok {
		return
	}

	id := c.Param("id")

	var input domain.UpdateAppointmentStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("formato de datos no válido", zap.Error(err))
		badRequestResponse(c, "formato de datos no válido")
		return
	}

	err := h.services.Booking.Transition(c.Request.Context(), userID, role, id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "cita no encontrada")
		case errors.Is(err, domain.ErrInvalidTransition):
			conflictResponse(c, err.Error())
		default:
			badRequestResponse(c, err.Error())
		}
		return
	}

	messageResponse(c, http.StatusOK, "estado actualizado")
}

func (h *Handler) identity(c *gin.Context) (string, domain.UserRole, bool) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return "", "", false
	}

	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return "", "", false
	}

	return userID, role, true
}
