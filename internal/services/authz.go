package services

import (
	"errors"

	"github.com/callimard/makemeacube/internal/metrics"
	"github.com/callimard/makemeacube/internal/models"
	"github.com/callimard/makemeacube/internal/store"
)

// Ownership validation. Every mutating operation calls these explicitly
// before touching an entity; the merge engine assumes its inputs already
// passed. Two-level chains (user→address, user→tool) report a mismatch as
// ErrOwnershipViolation. The third level (tool→material) reports a
// mismatch as ErrNotFound so that callers cannot probe which material ids
// exist under other users' tools.

// authorizeCaller checks that the principal resolves to the addressed user.
func (s *UserService) authorizeCaller(p Principal, targetUserID uint) error {
	callerID, err := resolvePrincipal(p)
	if err != nil {
		return err
	}
	if callerID != targetUserID {
		metrics.OwnershipDenialsTotal.Inc()
		return ErrOwnershipViolation
	}
	return nil
}

func (s *UserService) addressOwnedBy(userID, addressID uint) (*models.UserAddress, error) {
	address, err := s.store.AddressByID(addressID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if address.UserID != userID {
		metrics.OwnershipDenialsTotal.Inc()
		return nil, ErrOwnershipViolation
	}
	return address, nil
}

func (s *UserService) toolOwnedBy(userID, toolID uint) (*models.MakerTool, error) {
	tool, err := s.store.ToolByID(toolID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if tool.UserID != userID {
		metrics.OwnershipDenialsTotal.Inc()
		return nil, ErrOwnershipViolation
	}
	return tool, nil
}

func (s *UserService) materialOwnedBy(toolID, materialID uint) (*models.Material, error) {
	material, err := s.store.MaterialByID(materialID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	if material.MakerToolID != toolID {
		metrics.OwnershipDenialsTotal.Inc()
		return nil, ErrNotFound
	}
	return material, nil
}

func translateStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
