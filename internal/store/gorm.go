package store

import (
	"errors"
	"fmt"

	"github.com/callimard/makemeacube/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm is the production Store backed by GORM/Postgres.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) UserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.
		Preload("Addresses").
		Preload("Tools").
		Preload("Tools.Materials").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Gorm) UserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Gorm) UserByVerificationToken(token string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "verification_token = ?", token).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Gorm) AddressByID(id uint) (*models.UserAddress, error) {
	var address models.UserAddress
	if err := s.db.First(&address, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &address, nil
}

func (s *Gorm) ToolByID(id uint) (*models.MakerTool, error) {
	var tool models.MakerTool
	err := s.db.Preload("Materials").First(&tool, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &tool, nil
}

func (s *Gorm) MaterialByID(id uint) (*models.Material, error) {
	var material models.Material
	if err := s.db.First(&material, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &material, nil
}

func (s *Gorm) SaveUser(u *models.User) error {
	if !u.Saved() {
		if err := s.db.Create(u).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	}
	err := s.db.Omit(clause.Associations).Save(u).Error
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (s *Gorm) SaveAddress(a *models.UserAddress) error {
	if err := s.db.Save(a).Error; err != nil {
		return fmt.Errorf("failed to save address: %w", err)
	}
	return nil
}

func (s *Gorm) SaveTool(t *models.MakerTool) error {
	if !t.Saved() {
		if err := s.db.Create(t).Error; err != nil {
			return fmt.Errorf("failed to create tool: %w", err)
		}
		return nil
	}
	err := s.db.Omit(clause.Associations).Save(t).Error
	if err != nil {
		return fmt.Errorf("failed to update tool: %w", err)
	}
	return nil
}

func (s *Gorm) ReplaceToolMaterials(t *models.MakerTool, materials []models.Material) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("maker_tool_id = ?", t.ID).Delete(&models.Material{}).Error; err != nil {
			return err
		}
		for i := range materials {
			materials[i].MakerToolID = t.ID
			if err := tx.Create(&materials[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace tool materials: %w", err)
	}
	t.Materials = materials
	return nil
}

func (s *Gorm) DeleteAddress(a *models.UserAddress) error {
	if err := s.db.Delete(a).Error; err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}

func (s *Gorm) DeleteTool(t *models.MakerTool) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("maker_tool_id = ?", t.ID).Delete(&models.Material{}).Error; err != nil {
			return err
		}
		return tx.Delete(t).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}
	return nil
}

func (s *Gorm) SaveRefreshToken(rt *models.RefreshToken) error {
	if err := s.db.Create(rt).Error; err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *Gorm) RefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := s.db.First(&rt, "token_hash = ? AND revoked = false", hash).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rt, nil
}

func (s *Gorm) RevokeRefreshToken(hash string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
