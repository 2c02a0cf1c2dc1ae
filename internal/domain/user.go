package domain

import (
	"time"
)

type UserRole string

const (
	UserRoleLawyer UserRole = "abogado"
	UserRoleClient UserRole = "cliente"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleLawyer || r == UserRoleClient
}

// User es el documento único de usuario; los campos de perfil profesional
// solo se rellenan cuando role == abogado.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	DisplayName  string   `json:"display_name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	PhotoURL     string   `json:"photo_url,omitempty"`

	Specialty    string             `json:"specialty,omitempty"`
	Bio          string             `json:"bio,omitempty"`
	PricePerHour float64            `json:"price_per_hour,omitempty"`
	Location     string             `json:"location,omitempty"`
	Address      string             `json:"address,omitempty"`
	City         string             `json:"city,omitempty"`
	Country      string             `json:"country,omitempty"`
	Availability []AvailabilitySlot `json:"availability,omitempty"`
	Rating       float64            `json:"rating"`
	ReviewCount  int                `json:"review_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsLawyer() bool {
	return u.Role == UserRoleLawyer
}

type UpdateUserDTO struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
}

type PasswordUpdateDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
