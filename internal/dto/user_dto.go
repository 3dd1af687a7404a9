package dto

import "github.com/callimard/makemeacube/internal/models"

// Request payloads are plain data carriers: all entity construction and
// merging happens in the services package, never on the DTO itself.

type BasicRegistrationRequest struct {
	Email    string `json:"email"`
	Pseudo   string `json:"pseudo"`
	Password string `json:"password"`
}

type AddressRequest struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type MakerRegistrationRequest struct {
	Email            string         `json:"email"`
	Pseudo           string         `json:"pseudo"`
	Password         string         `json:"password"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Phone            string         `json:"phone"`
	MakerDescription string         `json:"maker_description"`
	Address          AddressRequest `json:"address"`
}

// UserUpdateRequest carries the full replacement values for the user's
// mutable scalar fields. Email and registration provider are deliberately
// absent: they cannot be changed after creation.
type UserUpdateRequest struct {
	Pseudo           string `json:"pseudo"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone"`
	MakerDescription string `json:"maker_description"`
	IsMaker          bool   `json:"is_maker"`
}

type MaterialRequest struct {
	Type        models.MaterialType `json:"type"`
	Colors      string              `json:"colors"`
	Description string              `json:"description"`
}

type Printer3DRequest struct {
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Reference      string               `json:"reference"`
	Materials      []MaterialRequest    `json:"materials"`
	X              int                  `json:"x"`
	Y              int                  `json:"y"`
	Z              int                  `json:"z"`
	XAccuracy      int                  `json:"x_accuracy"`
	YAccuracy      int                  `json:"y_accuracy"`
	ZAccuracy      int                  `json:"z_accuracy"`
	LayerThickness int                  `json:"layer_thickness"`
	Type           models.Printer3DType `json:"type"`
}
