package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2026-03-02 es lunes.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestTimeOptions(t *testing.T) {
	slots := []AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
		{DayOfWeek: 3, StartTime: "16:00", EndTime: "18:00"},
	}

	tests := []struct {
		name  string
		slots []AvailabilitySlot
		date  time.Time
		want  []string
	}{
		{
			name:  "genera horas cada media hora, fin exclusivo",
			slots: slots,
			date:  monday,
			want:  []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:  "día sin franjas devuelve vacío",
			slots: slots,
			date:  monday.AddDate(0, 0, 1),
			want:  nil,
		},
		{
			name:  "franja de una sola media hora",
			slots: []AvailabilitySlot{{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:30"}},
			date:  monday,
			want:  []string{"09:00"},
		},
		{
			name: "franjas solapadas no duplican horas",
			slots: []AvailabilitySlot{
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
				{DayOfWeek: 1, StartTime: "09:30", EndTime: "11:00"},
			},
			date: monday,
			want: []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name: "varias franjas del mismo día conservan el orden",
			slots: []AvailabilitySlot{
				{DayOfWeek: 1, StartTime: "16:00", EndTime: "17:00"},
				{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
			},
			date: monday,
			want: []string{"16:00", "16:30", "09:00", "09:30"},
		},
		{
			name:  "sin disponibilidad devuelve vacío",
			slots: nil,
			date:  monday,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeOptions(tt.slots, tt.date)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOptionsSundayIsZero(t *testing.T) {
	sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	slots := []AvailabilitySlot{{DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"}}

	assert.Equal(t, []string{"10:00", "10:30"}, TimeOptions(slots, sunday))
}

func TestAvailabilitySlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    AvailabilitySlot
		wantErr bool
	}{
		{
			name: "franja válida",
			slot: AvailabilitySlot{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		},
		{
			name:    "día fuera de rango",
			slot:    AvailabilitySlot{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"},
			wantErr: true,
		},
		{
			name:    "hora de inicio malformada",
			slot:    AvailabilitySlot{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00"},
			wantErr: true,
		},
		{
			name:    "inicio igual al fin",
			slot:    AvailabilitySlot{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"},
			wantErr: true,
		},
		{
			name:    "inicio posterior al fin",
			slot:    AvailabilitySlot{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlotsReportsIndex(t *testing.T) {
	slots := []AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 9, StartTime: "09:00", EndTime: "17:00"},
	}

	err := ValidateSlots(slots)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "franja 2")
}
