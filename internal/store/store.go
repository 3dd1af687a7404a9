// Package store is the persistence gateway for user aggregates. It assigns
// identifiers on first save and preserves referential integrity between a
// user, its addresses and tools, and each tool's materials.
package store

import (
	"errors"

	"github.com/callimard/makemeacube/internal/models"
)

// ErrNotFound is returned when an identifier resolves to no entity.
var ErrNotFound = errors.New("entity not found")

// Store loads and saves user aggregates and their children. Entities with
// a zero identifier are created and assigned one; entities with a non-zero
// identifier are updated in place. Save calls never touch sibling
// collections except where documented (ReplaceToolMaterials, DeleteTool).
type Store interface {
	// UserByID loads the full aggregate: addresses, tools and materials.
	UserByID(id uint) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	UserByVerificationToken(token string) (*models.User, error)

	AddressByID(id uint) (*models.UserAddress, error)
	ToolByID(id uint) (*models.MakerTool, error)
	MaterialByID(id uint) (*models.Material, error)

	// SaveUser creates the user (cascading any attached unsaved children)
	// or updates its scalar columns, leaving collections untouched.
	SaveUser(u *models.User) error
	SaveAddress(a *models.UserAddress) error
	// SaveTool creates the tool (cascading its materials) or updates its
	// scalar columns, leaving the material collection untouched.
	SaveTool(t *models.MakerTool) error

	// ReplaceToolMaterials discards every material currently owned by the
	// tool and persists the given set in its place. The old rows are gone
	// for good; the new ones get fresh identifiers.
	ReplaceToolMaterials(t *models.MakerTool, materials []models.Material) error

	DeleteAddress(a *models.UserAddress) error
	// DeleteTool removes the tool and cascades removal of its materials.
	DeleteTool(t *models.MakerTool) error

	SaveRefreshToken(rt *models.RefreshToken) error
	RefreshTokenByHash(hash string) (*models.RefreshToken, error)
	RevokeRefreshToken(hash string) error
}
