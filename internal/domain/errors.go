package domain

import (
	"errors"
)

var (
	// ErrSlotTaken indica que la reclamación del horario perdió la carrera:
	// el usuario debe elegir otro horario, nunca se reintenta el mismo.
	ErrSlotTaken = errors.New("este horario ya no está disponible")

	ErrNotFound          = errors.New("no encontrado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrAlreadyReviewed   = errors.New("ya has dejado una reseña para este abogado")
)
