package models

import "time"

// ToolKind discriminates concrete maker tool types sharing the same
// ownership pattern. Only 3D printers are modeled today; other kinds
// (CNC, laser cutters) slot in as new kinds on the same table.
type ToolKind string

const (
	ToolKindPrinter3D ToolKind = "PRINTER_3D"
)

// Printer3DType is the closed set of supported 3D printing processes.
type Printer3DType string

const (
	Printer3DTypeFDM Printer3DType = "FDM"
	Printer3DTypeSLA Printer3DType = "SLA"
	Printer3DTypeSLS Printer3DType = "SLS"
	Printer3DTypeDLP Printer3DType = "DLP"
)

// MakerTool is a tool owned by a maker user. Dimension and accuracy
// columns apply to the printer_3d kind. Its materials live and die with
// the tool: tool updates replace them wholesale and tool deletion
// cascades to them.
type MakerTool struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	UserID      uint     `gorm:"not null;index" json:"-"`
	Kind        ToolKind `gorm:"size:20;not null" json:"kind"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Reference   string   `gorm:"size:3000" json:"reference"`

	Materials []Material `gorm:"foreignKey:MakerToolID" json:"materials"`

	// Build volume in millimeters and per-axis accuracy in micrometers.
	X              int `json:"x"`
	Y              int `json:"y"`
	Z              int `json:"z"`
	XAccuracy      int `json:"x_accuracy"`
	YAccuracy      int `json:"y_accuracy"`
	ZAccuracy      int `json:"z_accuracy"`
	LayerThickness int `json:"layer_thickness"`

	PrinterType Printer3DType `gorm:"size:10" json:"printer_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *MakerTool) Saved() bool {
	return t.ID != 0
}
