package domain

import (
	"errors"
	"fmt"
	"time"
)

// SlotGranularityMinutes es el paso con el que se generan los horarios
// reservables dentro de una franja de disponibilidad.
const SlotGranularityMinutes = 30

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AvailabilitySlot es una franja recurrente semanal del abogado.
// DayOfWeek usa la convención 0=domingo ... 6=sábado.
type AvailabilitySlot struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s AvailabilitySlot) Validate() error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("día de la semana fuera de rango: %d", s.DayOfWeek)
	}
	start, err := time.Parse(TimeLayout, s.StartTime)
	if err != nil {
		return fmt.Errorf("hora de inicio inválida %q", s.StartTime)
	}
	end, err := time.Parse(TimeLayout, s.EndTime)
	if err != nil {
		return fmt.Errorf("hora de fin inválida %q", s.EndTime)
	}
	if !start.Before(end) {
		return errors.New("la hora de inicio debe ser anterior a la de fin")
	}
	return nil
}

// ValidateSlots valida el conjunto completo al guardar el perfil, para que
// los datos malformados fallen en la escritura y nunca en la lectura.
func ValidateSlots(slots []AvailabilitySlot) error {
	for i, s := range slots {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("franja %d: %w", i+1, err)
		}
	}
	return nil
}

// TimeOptions enumera las horas de inicio reservables de un abogado para una
// fecha concreta: filtra las franjas por día de la semana y genera horas cada
// SlotGranularityMinutes desde el inicio (inclusive) hasta el fin (exclusive),
// conservando el orden de las franjas. Las franjas solapadas no producen
// horas duplicadas. Devuelve vacío si ninguna franja cae en ese día.
func TimeOptions(slots []AvailabilitySlot, date time.Time) []string {
	dayOfWeek := int(date.Weekday())

	var options []string
	seen := make(map[string]bool)

	for _, slot := range slots {
		if slot.DayOfWeek != dayOfWeek {
			continue
		}
		start, err := time.Parse(TimeLayout, slot.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(TimeLayout, slot.EndTime)
		if err != nil {
			continue
		}
		for t := start; t.Before(end); t = t.Add(SlotGranularityMinutes * time.Minute) {
			option := t.Format(TimeLayout)
			if seen[option] {
				continue
			}
			seen[option] = true
			options = append(options, option)
		}
	}

	return options
}
