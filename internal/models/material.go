package models

import "time"

// MaterialType is the closed set of printable materials.
type MaterialType string

const (
	MaterialTypePLA   MaterialType = "PLA"
	MaterialTypeABS   MaterialType = "ABS"
	MaterialTypePETG  MaterialType = "PETG"
	MaterialTypeTPU   MaterialType = "TPU"
	MaterialTypeResin MaterialType = "RESIN"
	MaterialTypeNylon MaterialType = "NYLON"
)

// Material belongs to exactly one maker tool. Materials are never shared
// between tools and never edited in place: replacing a tool's material
// set discards the old rows and creates new ones.
type Material struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	MakerToolID uint         `gorm:"not null;index" json:"-"`
	Type        MaterialType `gorm:"size:20;not null" json:"type"`
	Colors      string       `gorm:"size:1000" json:"colors"`
	Description string       `gorm:"size:1000" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *Material) Saved() bool {
	return m.ID != 0
}
