package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/callimard/makemeacube/internal/config"
	"github.com/callimard/makemeacube/internal/dto"
	"github.com/callimard/makemeacube/internal/models"
	"github.com/callimard/makemeacube/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues access/refresh token pairs for registered users.
// Refresh tokens are stored hashed and rotated on every use.
type AuthService struct {
	store store.Store
	cfg   *config.Config
}

func NewAuthService(st store.Store, cfg *config.Config) *AuthService {
	return &AuthService{store: st, cfg: cfg}
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.store.UserByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(user.ID)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.store.RefreshTokenByHash(tokenHash)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Rotation: the presented token is spent whether or not it is expired.
	if err := s.store.RevokeRefreshToken(tokenHash); err != nil {
		return nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	return s.generateTokenPair(stored.UserID)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	return s.store.RevokeRefreshToken(hashToken(req.RefreshToken))
}

func (s *AuthService) generateTokenPair(userID uint) (*dto.AuthResponse, error) {
	user, err := s.store.UserByID(userID)
	if err != nil {
		return nil, translateStoreErr(err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":            strconv.FormatUint(uint64(user.ID), 10),
		"email":          user.Email,
		"email_verified": user.EmailVerified,
		"is_maker":       user.IsMaker,
		"iat":            time.Now().Unix(),
		"exp":            time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.store.SaveRefreshToken(record); err != nil {
		return "", err
	}
	return rawToken, nil
}

// ParsePrincipal converts verified JWT claims into the caller principal
// consumed by UserService operations.
func ParsePrincipal(claims jwt.MapClaims) (Principal, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return Principal{}, ErrAuthenticationMismatch
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return Principal{}, ErrAuthenticationMismatch
	}

	email, _ := claims["email"].(string)
	return Principal{UserID: uint(id), Email: email}, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
