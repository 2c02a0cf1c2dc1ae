package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pendiente"
	AppointmentStatusConfirmed AppointmentStatus = "confirmada"
	AppointmentStatusCompleted AppointmentStatus = "completada"
	AppointmentStatusCancelled AppointmentStatus = "cancelada"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanTransitionTo implementa el grafo de estados de una cita:
//
//	pendiente  -> confirmada | cancelada
//	confirmada -> completada | cancelada
//	completada, cancelada: terminales
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	}
	return false
}

type Appointment struct {
	ID        string            `json:"id"`
	ClientID  string            `json:"client_id"`
	LawyerID  string            `json:"lawyer_id"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Status    AppointmentStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Nombre de la contraparte, resuelto en las vistas de listado.
	CounterpartName string `json:"counterpart_name,omitempty"`
}

// SlotKey identifica una reserva en el libro de horarios ocupados. La clave
// compuesta ES la identidad de la reserva, no hay id aparte.
type SlotKey struct {
	LawyerID string
	Date     string
	Time     string
}

func (a *Appointment) SlotKey() SlotKey {
	return SlotKey{LawyerID: a.LawyerID, Date: a.Date, Time: a.Time}
}

type CreateAppointmentDTO struct {
	LawyerID string `json:"lawyer_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Notes    string `json:"notes"`
}

type UpdateAppointmentStatusDTO struct {
	Status AppointmentStatus `json:"status" binding:"required,oneof=pendiente confirmada completada cancelada"`
}
