package dto

import (
	"time"

	"github.com/callimard/makemeacube/internal/models"
)

type UserResponse struct {
	ID               uint               `json:"id"`
	Email            string             `json:"email"`
	Pseudo           string             `json:"pseudo"`
	FirstName        string             `json:"first_name,omitempty"`
	LastName         string             `json:"last_name,omitempty"`
	Phone            string             `json:"phone,omitempty"`
	IsMaker          bool               `json:"is_maker"`
	MakerDescription string             `json:"maker_description,omitempty"`
	EmailVerified    bool               `json:"email_verified"`
	Addresses        []AddressResponse  `json:"addresses"`
	MakerTools       []ToolResponse     `json:"maker_tools"`
	CreatedAt        time.Time          `json:"created_at"`
}

type AddressResponse struct {
	ID         uint   `json:"id"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

type ToolResponse struct {
	ID             uint                 `json:"id"`
	Kind           models.ToolKind      `json:"kind"`
	Name           string               `json:"name"`
	Description    string               `json:"description,omitempty"`
	Reference      string               `json:"reference,omitempty"`
	Materials      []MaterialResponse   `json:"materials"`
	X              int                  `json:"x"`
	Y              int                  `json:"y"`
	Z              int                  `json:"z"`
	XAccuracy      int                  `json:"x_accuracy"`
	YAccuracy      int                  `json:"y_accuracy"`
	ZAccuracy      int                  `json:"z_accuracy"`
	LayerThickness int                  `json:"layer_thickness"`
	PrinterType    models.Printer3DType `json:"printer_type"`
}

type MaterialResponse struct {
	ID          uint                `json:"id"`
	Type        models.MaterialType `json:"type"`
	Colors      string              `json:"colors,omitempty"`
	Description string              `json:"description,omitempty"`
}

// NewUserResponse maps the full user aggregate to its API shape.
func NewUserResponse(u *models.User) UserResponse {
	addresses := make([]AddressResponse, 0, len(u.Addresses))
	for i := range u.Addresses {
		addresses = append(addresses, NewAddressResponse(&u.Addresses[i]))
	}

	tools := make([]ToolResponse, 0, len(u.Tools))
	for i := range u.Tools {
		tools = append(tools, NewToolResponse(&u.Tools[i]))
	}

	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Pseudo:           u.Pseudo,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Phone:            u.Phone,
		IsMaker:          u.IsMaker,
		MakerDescription: u.MakerDescription,
		EmailVerified:    u.EmailVerified,
		Addresses:        addresses,
		MakerTools:       tools,
		CreatedAt:        u.CreatedAt,
	}
}

func NewAddressResponse(a *models.UserAddress) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Address:    a.Address,
		City:       a.City,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

func NewToolResponse(t *models.MakerTool) ToolResponse {
	materials := make([]MaterialResponse, 0, len(t.Materials))
	for i := range t.Materials {
		materials = append(materials, NewMaterialResponse(&t.Materials[i]))
	}

	return ToolResponse{
		ID:             t.ID,
		Kind:           t.Kind,
		Name:           t.Name,
		Description:    t.Description,
		Reference:      t.Reference,
		Materials:      materials,
		X:              t.X,
		Y:              t.Y,
		Z:              t.Z,
		XAccuracy:      t.XAccuracy,
		YAccuracy:      t.YAccuracy,
		ZAccuracy:      t.ZAccuracy,
		LayerThickness: t.LayerThickness,
		PrinterType:    t.PrinterType,
	}
}

func NewMaterialResponse(m *models.Material) MaterialResponse {
	return MaterialResponse{
		ID:          m.ID,
		Type:        m.Type,
		Colors:      m.Colors,
		Description: m.Description,
	}
}
