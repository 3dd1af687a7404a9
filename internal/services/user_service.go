package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/callimard/makemeacube/internal/dto"
	"github.com/callimard/makemeacube/internal/metrics"
	"github.com/callimard/makemeacube/internal/models"
	"github.com/callimard/makemeacube/internal/notify"
	"github.com/callimard/makemeacube/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService implements registration and every mutation of the user
// aggregate. Each mutating operation validates the ownership chain first,
// merges the payload through the merge engine, persists, and returns the
// reloaded root aggregate.
type UserService struct {
	store    store.Store
	notifier notify.Notifier
}

func NewUserService(st store.Store, notifier notify.Notifier) *UserService {
	return &UserService{store: st, notifier: notifier}
}

// BasicUserRegistration creates a non-maker account with empty address and
// tool collections and triggers the verification notification.
func (s *UserService) BasicUserRegistration(req *dto.BasicRegistrationRequest, provider models.RegistrationProvider) (*models.User, error) {
	if err := validateCredentials(req.Email, req.Pseudo, req.Password); err != nil {
		return nil, err
	}
	if err := s.rejectDuplicateEmail(req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:             req.Email,
		Pseudo:            req.Pseudo,
		Password:          string(hash),
		Provider:          provider,
		VerificationToken: uuid.NewString(),
	}

	if err := s.store.SaveUser(user); err != nil {
		return nil, err
	}

	s.sendVerification(user)
	metrics.RegistrationsTotal.WithLabelValues("basic").Inc()
	return user, nil
}

// MakerUserRegistration creates a maker account. A maker cannot exist
// without at least one address, so the nested address is attached before
// the first save.
func (s *UserService) MakerUserRegistration(req *dto.MakerRegistrationRequest, provider models.RegistrationProvider) (*models.User, error) {
	if err := validateCredentials(req.Email, req.Pseudo, req.Password); err != nil {
		return nil, err
	}
	if err := validateMakerProfile(req); err != nil {
		return nil, err
	}
	if err := validateAddress(&req.Address); err != nil {
		return nil, err
	}
	if err := s.rejectDuplicateEmail(req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:             req.Email,
		Pseudo:            req.Pseudo,
		Password:          string(hash),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		IsMaker:           true,
		MakerDescription:  req.MakerDescription,
		Provider:          provider,
		VerificationToken: uuid.NewString(),
	}
	user.Addresses = append(user.Addresses, *newAddress(user, &req.Address))

	if err := s.store.SaveUser(user); err != nil {
		return nil, err
	}

	s.sendVerification(user)
	metrics.RegistrationsTotal.WithLabelValues("maker").Inc()
	return user, nil
}

// VerifyEmail completes the registration workflow: the token sent by the
// notifier transitions the account from pending to verified.
func (s *UserService) VerifyEmail(token string) (*models.User, error) {
	user, err := s.store.UserByVerificationToken(token)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	user.EmailVerified = true
	user.VerificationToken = ""
	if err := s.store.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(p Principal, userID uint) (*models.User, error) {
	if err := s.authorizeCaller(p, userID); err != nil {
		return nil, err
	}
	user, err := s.store.UserByID(userID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return user, nil
}

// UpdateUserInformation replaces the user's mutable scalar fields.
func (s *UserService) UpdateUserInformation(p Principal, userID uint, req *dto.UserUpdateRequest) (*models.User, error) {
	if err := s.authorizeCaller(p, userID); err != nil {
		return nil, err
	}
	if err := validateUserUpdate(req); err != nil {
		return nil, err
	}

	existing, err := s.store.UserByID(userID)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	updated := mergedUser(existing, req)
	if err := s.store.SaveUser(updated); err != nil {
		return nil, err
	}
	return s.reload(userID)
}

func (s *UserService) AddUserAddress(p Principal, userID uint, req *dto.AddressRequest) (*models.User, error) {
	if err := s.authorizeCaller(p, userID); err != nil {
		return nil, err
	}
	if err := validateAddress(req); err != nil {
		return nil, err
	}

	user, err := s.store.UserByID(userID)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	address := newAddress(user, req)
	if err := s.store.SaveAddress(address); err != nil {
		return nil, err
	}
	return s.reload(userID)
}

func (s *UserService) UpdateUserAddress(p Principal, userID, addressID uint, req *dto.AddressRequest) (*models.User, error) {
	if err := s.authorizeCaller(p, userID); err != nil {
		return nil, err
	}
	if err := validateAddress(req); err != nil {
		return nil, err
	}

	address, err := s.addressOwnedBy(userID, addressID)
	if err != nil {
		return nil, err
	}

	applyAddressUpdate(address, req)
	if err := s.store.SaveAddress(address); err != nil {
		return nil, err
	}
	return s.reload(userID)
}

func (s *UserService) DeleteUserAddress(p Principal, userID, addressID uint) (*models.User, error) {
	if err := s.authorizeCaller(p, userID); err != nil {
		return nil, err
	}

	address, err := s.addressOwnedBy(userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteAddress(address); err != nil {
		return nil, err
	}
	return s.reload(userID)
}

func (s *UserService) AddPrinter3D(p Principal, userID uint, req *dto.Printer3DRequest) (*models.User, error) {
	if err := s.authorizeCaller(p, userID); err != nil {
		return nil, err
	}
	if err := validatePrinter3D(req); err != nil {
		return nil, err
	}

	user, err := s.store.UserByID(userID)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	tool := newPrinter3D(user, req)
	if err := s.store.SaveTool(tool); err != nil {
		return nil, err
	}
	return s.reload(userID)
}

// UpdatePrinter3D overwrites the printer's scalar fields and replaces its
// material set. The replacement materials are persisted before the tool
// row that references them.
func (s *UserService) UpdatePrinter3D(p Principal, userID, toolID uint, req *dto.Printer3DRequest) (*models.User, error) {
	if err := s.authorizeCaller(p, userID); err != nil {
		return nil, err
	}
	if err := validatePrinter3D(req); err != nil {
		return nil, err
	}

	tool, err := s.toolOwnedBy(userID, toolID)
	if err != nil {
		return nil, err
	}

	applyPrinter3DUpdate(tool, req)
	if err := s.store.ReplaceToolMaterials(tool, tool.Materials); err != nil {
		return nil, err
	}
	if err := s.store.SaveTool(tool); err != nil {
		return nil, err
	}
	return s.reload(userID)
}

// DeleteMakerTool removes a tool of any kind and cascades removal of its
// materials.
func (s *UserService) DeleteMakerTool(p Principal, userID, toolID uint) (*models.User, error) {
	if err := s.authorizeCaller(p, userID); err != nil {
		return nil, err
	}

	tool, err := s.toolOwnedBy(userID, toolID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteTool(tool); err != nil {
		return nil, err
	}
	return s.reload(userID)
}

// GetToolMaterial walks the full three-level ownership chain
// (user → tool → material) before exposing a material.
func (s *UserService) GetToolMaterial(p Principal, userID, toolID, materialID uint) (*models.Material, error) {
	if err := s.authorizeCaller(p, userID); err != nil {
		return nil, err
	}

	tool, err := s.toolOwnedBy(userID, toolID)
	if err != nil {
		return nil, err
	}
	return s.materialOwnedBy(tool.ID, materialID)
}

func (s *UserService) reload(userID uint) (*models.User, error) {
	user, err := s.store.UserByID(userID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	return user, nil
}

func (s *UserService) rejectDuplicateEmail(email string) error {
	_, err := s.store.UserByEmail(email)
	if err == nil {
		return ErrDuplicateEmail
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// sendVerification is best-effort: a notification failure is logged and
// never fails the registration that triggered it.
func (s *UserService) sendVerification(user *models.User) {
	if err := s.notifier.SendVerification(user); err != nil {
		slog.Error("verification notification failed", "user_id", user.ID, "error", err)
		metrics.VerificationNotificationsTotal.WithLabelValues("error").Inc()
		return
	}
	metrics.VerificationNotificationsTotal.WithLabelValues("sent").Inc()
}

func validateCredentials(email, pseudo, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if len(pseudo) < 5 {
		return fmt.Errorf("%w: pseudo must be at least 5 characters", ErrValidation)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

func validateMakerProfile(req *dto.MakerRegistrationRequest) error {
	if req.FirstName == "" || req.LastName == "" {
		return fmt.Errorf("%w: first and last name are required for makers", ErrValidation)
	}
	if req.Phone == "" {
		return fmt.Errorf("%w: phone is required for makers", ErrValidation)
	}
	if req.MakerDescription == "" {
		return fmt.Errorf("%w: maker description is required", ErrValidation)
	}
	return nil
}

func validateAddress(req *dto.AddressRequest) error {
	if req.Address == "" || req.City == "" || req.Country == "" || req.PostalCode == "" {
		return fmt.Errorf("%w: address, city, country and postal code are required", ErrValidation)
	}
	return nil
}

func validateUserUpdate(req *dto.UserUpdateRequest) error {
	if len(req.Pseudo) < 5 {
		return fmt.Errorf("%w: pseudo must be at least 5 characters", ErrValidation)
	}
	return nil
}

func validatePrinter3D(req *dto.Printer3DRequest) error {
	if len(req.Name) < 5 {
		return fmt.Errorf("%w: printer name must be at least 5 characters", ErrValidation)
	}
	if len(req.Materials) == 0 {
		return fmt.Errorf("%w: a printer needs at least one material", ErrValidation)
	}
	if req.X < 0 || req.Y < 0 || req.Z < 0 {
		return fmt.Errorf("%w: printer dimensions must not be negative", ErrValidation)
	}
	if req.XAccuracy < 0 || req.YAccuracy < 0 || req.ZAccuracy < 0 || req.LayerThickness < 0 {
		return fmt.Errorf("%w: printer accuracies must not be negative", ErrValidation)
	}
	return nil
}
