package domain

// Especialidades reconocidas por el buscador.
var Specialties = []string{
	"penal",
	"civil",
	"laboral",
	"mercantil",
	"administrativo",
	"familiar",
	"inmobiliario",
	"fiscal",
	"constitucional",
	"internacional",
}

func IsValidSpecialty(s string) bool {
	for _, sp := range Specialties {
		if sp == s {
			return true
		}
	}
	return false
}

type UpdateLawyerProfileDTO struct {
	DisplayName  *string             `json:"display_name"`
	Specialty    *string             `json:"specialty"`
	Bio          *string             `json:"bio"`
	PricePerHour *float64            `json:"price_per_hour" binding:"omitempty,min=0"`
	Location     *string             `json:"location"`
	Address      *string             `json:"address"`
	City         *string             `json:"city"`
	Country      *string             `json:"country"`
	Availability *[]AvailabilitySlot `json:"availability"`
}

type LawyerFilter struct {
	Specialty  string  `json:"specialty"`
	MinRating  float64 `json:"min_rating"`
	SearchTerm string  `json:"search_term"`
	Limit      int     `json:"limit"`
}
