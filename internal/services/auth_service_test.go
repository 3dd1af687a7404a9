package services

import (
	"testing"
	"time"

	"github.com/callimard/makemeacube/internal/config"
	"github.com/callimard/makemeacube/internal/dto"
	"github.com/callimard/makemeacube/internal/models"
	"github.com/callimard/makemeacube/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	suite.Suite
	store *store.Memory
	users *UserService
	auth  *AuthService
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.store = store.NewMemory()
	s.users = NewUserService(s.store, &recordingNotifier{})
	s.auth = NewAuthService(s.store, &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
	})

	_, err := s.users.BasicUserRegistration(&dto.BasicRegistrationRequest{
		Email:    "a@x.com",
		Pseudo:   "alice",
		Password: "P@ssw0rd1",
	}, models.ProviderLocal)
	s.Require().NoError(err)
}

func (s *AuthServiceSuite) TestLogin() {
	resp, err := s.auth.Login(&dto.LoginRequest{Email: "a@x.com", Password: "P@ssw0rd1"})
	s.Require().NoError(err)
	s.NotEmpty(resp.AccessToken)
	s.NotEmpty(resp.RefreshToken)
	s.Equal("alice", resp.User.Pseudo)

	s.Run("access token carries the user id as subject", func() {
		token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		s.Require().NoError(err)

		claims := token.Claims.(jwt.MapClaims)
		p, err := ParsePrincipal(claims)
		s.Require().NoError(err)
		s.Equal(resp.User.ID, p.UserID)
		s.Equal("a@x.com", p.Email)
	})
}

func (s *AuthServiceSuite) TestLoginRejectsBadCredentials() {
	_, err := s.auth.Login(&dto.LoginRequest{Email: "a@x.com", Password: "wrong-pass"})
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.auth.Login(&dto.LoginRequest{Email: "nobody@x.com", Password: "P@ssw0rd1"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestRefreshRotates() {
	login, err := s.auth.Login(&dto.LoginRequest{Email: "a@x.com", Password: "P@ssw0rd1"})
	s.Require().NoError(err)

	refreshed, err := s.auth.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	s.Require().NoError(err)
	s.NotEqual(login.RefreshToken, refreshed.RefreshToken)

	s.Run("spent token is rejected", func() {
		_, err := s.auth.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
		s.ErrorIs(err, ErrInvalidToken)
	})
}

func (s *AuthServiceSuite) TestLogoutRevokes() {
	login, err := s.auth.Login(&dto.LoginRequest{Email: "a@x.com", Password: "P@ssw0rd1"})
	s.Require().NoError(err)

	s.Require().NoError(s.auth.Logout(&dto.LogoutRequest{RefreshToken: login.RefreshToken}))

	_, err = s.auth.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *AuthServiceSuite) TestParsePrincipal() {
	cases := []struct {
		name   string
		claims jwt.MapClaims
		ok     bool
	}{
		{"valid", jwt.MapClaims{"sub": "42", "email": "a@x.com"}, true},
		{"missing sub", jwt.MapClaims{"email": "a@x.com"}, false},
		{"non-numeric sub", jwt.MapClaims{"sub": "abc"}, false},
		{"zero sub", jwt.MapClaims{"sub": "0"}, false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			p, err := ParsePrincipal(tc.claims)
			if tc.ok {
				s.Require().NoError(err)
				s.Equal(uint(42), p.UserID)
			} else {
				s.ErrorIs(err, ErrAuthenticationMismatch)
			}
		})
	}
}
