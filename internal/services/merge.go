package services

import (
	"github.com/callimard/makemeacube/internal/dto"
	"github.com/callimard/makemeacube/internal/models"
)

// The merge engine: pure transformations from a loaded entity plus a
// request payload to the state handed to the store. No ownership checks
// happen here — callers validate first.

// mergedUser builds a full replacement copy of the user with the mutable
// scalar fields overwritten verbatim from the request. Identifier, email,
// password, registration provider, verification state and both owned
// collections are carried over unchanged, so toggling the maker flag never
// drops existing addresses or tools.
func mergedUser(existing *models.User, req *dto.UserUpdateRequest) *models.User {
	updated := *existing
	updated.Pseudo = req.Pseudo
	updated.FirstName = req.FirstName
	updated.LastName = req.LastName
	updated.Phone = req.Phone
	updated.MakerDescription = req.MakerDescription
	updated.IsMaker = req.IsMaker
	return &updated
}

// newAddress produces an unsaved address owned by the user. It does not
// touch the user's address collection; appending is the caller's step.
func newAddress(user *models.User, req *dto.AddressRequest) *models.UserAddress {
	return &models.UserAddress{
		UserID:     user.ID,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
}

// applyAddressUpdate replaces all four location fields atomically. Owner
// and identifier stay as they are.
func applyAddressUpdate(address *models.UserAddress, req *dto.AddressRequest) {
	address.Address = req.Address
	address.City = req.City
	address.Country = req.Country
	address.PostalCode = req.PostalCode
}

// newPrinter3D produces an unsaved 3D printer owned by the user, with an
// unsaved material per request entry. Materials are never shared between
// tools.
func newPrinter3D(user *models.User, req *dto.Printer3DRequest) *models.MakerTool {
	tool := &models.MakerTool{
		UserID:         user.ID,
		Kind:           models.ToolKindPrinter3D,
		Name:           req.Name,
		Description:    req.Description,
		Reference:      req.Reference,
		X:              req.X,
		Y:              req.Y,
		Z:              req.Z,
		XAccuracy:      req.XAccuracy,
		YAccuracy:      req.YAccuracy,
		ZAccuracy:      req.ZAccuracy,
		LayerThickness: req.LayerThickness,
		PrinterType:    req.Type,
	}
	tool.Materials = replacementMaterials(tool.ID, req.Materials)
	return tool
}

// applyPrinter3DUpdate overwrites every scalar field and wholesale-replaces
// the material collection: each request material becomes a brand-new
// unsaved Material bound to this tool, materials absent from the request
// are discarded. Partial material edits are deliberately unsupported —
// callers resend the full desired set. The new materials must be persisted
// before the tool row that references them.
func applyPrinter3DUpdate(tool *models.MakerTool, req *dto.Printer3DRequest) {
	tool.Name = req.Name
	tool.Description = req.Description
	tool.Reference = req.Reference
	tool.X = req.X
	tool.Y = req.Y
	tool.Z = req.Z
	tool.XAccuracy = req.XAccuracy
	tool.YAccuracy = req.YAccuracy
	tool.ZAccuracy = req.ZAccuracy
	tool.LayerThickness = req.LayerThickness
	tool.PrinterType = req.Type
	tool.Materials = replacementMaterials(tool.ID, req.Materials)
}

func replacementMaterials(toolID uint, reqs []dto.MaterialRequest) []models.Material {
	materials := make([]models.Material, 0, len(reqs))
	for _, r := range reqs {
		materials = append(materials, models.Material{
			MakerToolID: toolID,
			Type:        r.Type,
			Colors:      r.Colors,
			Description: r.Description,
		})
	}
	return materials
}
