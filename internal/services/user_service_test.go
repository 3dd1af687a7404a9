package services

import (
	"errors"
	"testing"

	"github.com/callimard/makemeacube/internal/dto"
	"github.com/callimard/makemeacube/internal/models"
	"github.com/callimard/makemeacube/internal/store"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// recordingNotifier captures verification side effects and can be told to
// fail, to prove notification failures never fail a registration.
type recordingNotifier struct {
	sent []uint
	err  error
}

func (n *recordingNotifier) SendVerification(u *models.User) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, u.ID)
	return nil
}

type UserServiceSuite struct {
	suite.Suite
	store    *store.Memory
	notifier *recordingNotifier
	service  *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.store = store.NewMemory()
	s.notifier = &recordingNotifier{}
	s.service = NewUserService(s.store, s.notifier)
}

func (s *UserServiceSuite) registerBasic(email, pseudo string) *models.User {
	user, err := s.service.BasicUserRegistration(&dto.BasicRegistrationRequest{
		Email:    email,
		Pseudo:   pseudo,
		Password: "P@ssw0rd1",
	}, models.ProviderLocal)
	s.Require().NoError(err)
	return user
}

func (s *UserServiceSuite) registerMaker(email, pseudo, city string) *models.User {
	user, err := s.service.MakerUserRegistration(&dto.MakerRegistrationRequest{
		Email:            email,
		Pseudo:           pseudo,
		Password:         "P@ssw0rd1",
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Phone:            "+33612345678",
		MakerDescription: "FDM prototyping, small batches",
		Address: dto.AddressRequest{
			Address:    "12 rue de la Roquette",
			City:       city,
			Country:    "France",
			PostalCode: "75011",
		},
	}, models.ProviderLocal)
	s.Require().NoError(err)
	return user
}

func asPrincipal(u *models.User) Principal {
	return Principal{UserID: u.ID, Email: u.Email}
}

func printerRequest(materials ...dto.MaterialRequest) *dto.Printer3DRequest {
	return &dto.Printer3DRequest{
		Name:           "Prusa MK4S",
		Description:    "workhorse printer",
		Reference:      "prusa-mk4s",
		Materials:      materials,
		X:              250,
		Y:              210,
		Z:              220,
		XAccuracy:      50,
		YAccuracy:      50,
		ZAccuracy:      20,
		LayerThickness: 150,
		Type:           models.Printer3DTypeFDM,
	}
}

func (s *UserServiceSuite) TestBasicRegistration() {
	user := s.registerBasic("a@x.com", "alice")

	s.True(user.Saved())
	s.Equal("alice", user.Pseudo)
	s.Equal(models.ProviderLocal, user.Provider)
	s.False(user.IsMaker)
	s.False(user.EmailVerified)
	s.NotEmpty(user.VerificationToken)
	s.Empty(user.Addresses)
	s.Empty(user.Tools)

	s.Run("password is stored hashed", func() {
		s.NoError(bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("P@ssw0rd1")))
	})

	s.Run("verification notification was sent", func() {
		s.Equal([]uint{user.ID}, s.notifier.sent)
	})
}

func (s *UserServiceSuite) TestDuplicateEmailRejected() {
	first := s.registerBasic("a@x.com", "alice")

	_, err := s.service.BasicUserRegistration(&dto.BasicRegistrationRequest{
		Email:    "a@x.com",
		Pseudo:   "impostor",
		Password: "P@ssw0rd1",
	}, models.ProviderLocal)
	s.Require().ErrorIs(err, ErrDuplicateEmail)

	s.Run("first user is unaffected", func() {
		reloaded, err := s.store.UserByID(first.ID)
		s.Require().NoError(err)
		s.Equal("alice", reloaded.Pseudo)
	})

	s.Run("maker registration hits the same conflict", func() {
		_, err := s.service.MakerUserRegistration(&dto.MakerRegistrationRequest{
			Email:            "a@x.com",
			Pseudo:           "impostor2",
			Password:         "P@ssw0rd1",
			FirstName:        "A",
			LastName:         "B",
			Phone:            "+33600000000",
			MakerDescription: "d",
			Address: dto.AddressRequest{
				Address: "1 rue x", City: "Lyon", Country: "France", PostalCode: "69000",
			},
		}, models.ProviderLocal)
		s.ErrorIs(err, ErrDuplicateEmail)
	})
}

func (s *UserServiceSuite) TestNotifierFailureDoesNotFailRegistration() {
	s.notifier.err = errors.New("smtp relay down")

	user, err := s.service.BasicUserRegistration(&dto.BasicRegistrationRequest{
		Email:    "b@x.com",
		Pseudo:   "brave",
		Password: "P@ssw0rd1",
	}, models.ProviderLocal)
	s.Require().NoError(err)
	s.True(user.Saved())
}

func (s *UserServiceSuite) TestRegistrationValidation() {
	cases := []struct {
		name string
		req  dto.BasicRegistrationRequest
	}{
		{"missing email", dto.BasicRegistrationRequest{Pseudo: "alice", Password: "P@ssw0rd1"}},
		{"short pseudo", dto.BasicRegistrationRequest{Email: "a@x.com", Pseudo: "ali", Password: "P@ssw0rd1"}},
		{"short password", dto.BasicRegistrationRequest{Email: "a@x.com", Pseudo: "alice", Password: "short"}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.BasicUserRegistration(&tc.req, models.ProviderLocal)
			s.ErrorIs(err, ErrValidation)
		})
	}
}

func (s *UserServiceSuite) TestMakerRegistration() {
	user := s.registerMaker("maker@x.com", "maker1", "Paris")

	s.True(user.Saved())
	s.True(user.IsMaker)
	s.Equal(models.ProviderLocal, user.Provider)

	s.Require().Len(user.Addresses, 1)
	address := user.Addresses[0]
	s.True(address.Saved())
	s.Equal("Paris", address.City)
	s.Equal(user.ID, address.UserID)
}

func (s *UserServiceSuite) TestVerifyEmail() {
	user := s.registerBasic("a@x.com", "alice")
	token := user.VerificationToken

	verified, err := s.service.VerifyEmail(token)
	s.Require().NoError(err)
	s.True(verified.EmailVerified)
	s.Empty(verified.VerificationToken)

	s.Run("token is single use", func() {
		_, err := s.service.VerifyEmail(token)
		s.ErrorIs(err, ErrNotFound)
	})

	s.Run("unknown token", func() {
		_, err := s.service.VerifyEmail("no-such-token")
		s.ErrorIs(err, ErrNotFound)
	})
}

func (s *UserServiceSuite) TestUpdateUserInformation() {
	user := s.registerMaker("maker@x.com", "maker1", "Paris")
	_, err := s.service.AddPrinter3D(asPrincipal(user), user.ID, printerRequest(
		dto.MaterialRequest{Type: models.MaterialTypePLA, Colors: "red"},
	))
	s.Require().NoError(err)

	updated, err := s.service.UpdateUserInformation(asPrincipal(user), user.ID, &dto.UserUpdateRequest{
		Pseudo:           "maker1-renamed",
		FirstName:        "Grace",
		LastName:         "Hopper",
		Phone:            "+33698765432",
		MakerDescription: "resin specialist",
		IsMaker:          false,
	})
	s.Require().NoError(err)

	s.Run("scalar fields overwritten verbatim", func() {
		s.Equal("maker1-renamed", updated.Pseudo)
		s.Equal("Grace", updated.FirstName)
		s.Equal("Hopper", updated.LastName)
		s.Equal("+33698765432", updated.Phone)
		s.Equal("resin specialist", updated.MakerDescription)
		s.False(updated.IsMaker)
	})

	s.Run("immutable fields carried over", func() {
		s.Equal(user.ID, updated.ID)
		s.Equal("maker@x.com", updated.Email)
		s.Equal(models.ProviderLocal, updated.Provider)
	})

	s.Run("maker toggle preserves addresses and tools", func() {
		s.Len(updated.Addresses, 1)
		s.Len(updated.Tools, 1)
	})
}

func (s *UserServiceSuite) TestCrossUserUpdateRejected() {
	owner := s.registerBasic("u@x.com", "owner1")
	other := s.registerBasic("v@x.com", "other1")

	_, err := s.service.UpdateUserInformation(asPrincipal(other), owner.ID, &dto.UserUpdateRequest{
		Pseudo: "hijacked",
	})
	s.Require().ErrorIs(err, ErrOwnershipViolation)

	reloaded, err := s.store.UserByID(owner.ID)
	s.Require().NoError(err)
	s.Equal("owner1", reloaded.Pseudo)
}

func (s *UserServiceSuite) TestUnresolvablePrincipal() {
	user := s.registerBasic("a@x.com", "alice")

	_, err := s.service.GetUser(Principal{}, user.ID)
	s.ErrorIs(err, ErrAuthenticationMismatch)
}

func (s *UserServiceSuite) TestAddressLifecycle() {
	user := s.registerBasic("a@x.com", "alice")
	p := asPrincipal(user)

	withAddress, err := s.service.AddUserAddress(p, user.ID, &dto.AddressRequest{
		Address: "5 avenue Anatole France", City: "Paris", Country: "France", PostalCode: "75007",
	})
	s.Require().NoError(err)
	s.Require().Len(withAddress.Addresses, 1)
	addressID := withAddress.Addresses[0].ID
	s.NotZero(addressID)

	update := &dto.AddressRequest{
		Address: "1 parvis de la Défense", City: "Puteaux", Country: "France", PostalCode: "92800",
	}

	updated, err := s.service.UpdateUserAddress(p, user.ID, addressID, update)
	s.Require().NoError(err)
	s.Require().Len(updated.Addresses, 1)

	s.Run("all four fields replaced, identity kept", func() {
		got := updated.Addresses[0]
		s.Equal(addressID, got.ID)
		s.Equal("Puteaux", got.City)
		s.Equal("92800", got.PostalCode)
	})

	s.Run("update is idempotent", func() {
		again, err := s.service.UpdateUserAddress(p, user.ID, addressID, update)
		s.Require().NoError(err)
		s.Equal(updated.Addresses[0], again.Addresses[0])
	})

	s.Run("delete removes the address", func() {
		afterDelete, err := s.service.DeleteUserAddress(p, user.ID, addressID)
		s.Require().NoError(err)
		s.Empty(afterDelete.Addresses)

		_, err = s.service.DeleteUserAddress(p, user.ID, addressID)
		s.ErrorIs(err, ErrNotFound)
	})
}

func (s *UserServiceSuite) TestAddressOwnershipEnforced() {
	owner := s.registerMaker("u@x.com", "owner1", "Paris")
	other := s.registerBasic("v@x.com", "other1")
	addressID := owner.Addresses[0].ID

	_, err := s.service.UpdateUserAddress(asPrincipal(other), other.ID, addressID, &dto.AddressRequest{
		Address: "x", City: "y", Country: "z", PostalCode: "0",
	})
	s.Require().ErrorIs(err, ErrOwnershipViolation)

	_, err = s.service.DeleteUserAddress(asPrincipal(other), other.ID, addressID)
	s.Require().ErrorIs(err, ErrOwnershipViolation)

	s.Run("owner data unchanged", func() {
		reloaded, err := s.store.UserByID(owner.ID)
		s.Require().NoError(err)
		s.Require().Len(reloaded.Addresses, 1)
		s.Equal("Paris", reloaded.Addresses[0].City)
	})
}

func (s *UserServiceSuite) TestAddPrinter3D() {
	user := s.registerMaker("maker@x.com", "maker1", "Paris")

	updated, err := s.service.AddPrinter3D(asPrincipal(user), user.ID, printerRequest(
		dto.MaterialRequest{Type: models.MaterialTypePLA, Colors: "red, blue"},
		dto.MaterialRequest{Type: models.MaterialTypePETG, Colors: "black"},
	))
	s.Require().NoError(err)

	s.Require().Len(updated.Tools, 1)
	tool := updated.Tools[0]
	s.True(tool.Saved())
	s.Equal(models.ToolKindPrinter3D, tool.Kind)
	s.Equal(user.ID, tool.UserID)

	s.Require().Len(tool.Materials, 2)
	for _, m := range tool.Materials {
		s.True(m.Saved())
		s.Equal(tool.ID, m.MakerToolID)
	}
}

func (s *UserServiceSuite) TestUpdatePrinter3DReplacesMaterials() {
	user := s.registerMaker("maker@x.com", "maker1", "Paris")
	p := asPrincipal(user)

	created, err := s.service.AddPrinter3D(p, user.ID, printerRequest(
		dto.MaterialRequest{Type: models.MaterialTypePLA, Colors: "red"},
		dto.MaterialRequest{Type: models.MaterialTypeABS, Colors: "white"},
	))
	s.Require().NoError(err)
	tool := created.Tools[0]
	oldIDs := map[uint]bool{}
	for _, m := range tool.Materials {
		oldIDs[m.ID] = true
	}

	req := printerRequest(dto.MaterialRequest{Type: models.MaterialTypeTPU, Colors: "clear"})
	req.Name = "Prusa MK4S upgraded"
	req.LayerThickness = 100

	updated, err := s.service.UpdatePrinter3D(p, user.ID, tool.ID, req)
	s.Require().NoError(err)
	s.Require().Len(updated.Tools, 1)
	got := updated.Tools[0]

	s.Run("scalars overwritten, identity kept", func() {
		s.Equal(tool.ID, got.ID)
		s.Equal("Prusa MK4S upgraded", got.Name)
		s.Equal(100, got.LayerThickness)
	})

	s.Run("materials recreated, never diffed", func() {
		s.Require().Len(got.Materials, 1)
		material := got.Materials[0]
		s.Equal(models.MaterialTypeTPU, material.Type)
		s.False(oldIDs[material.ID], "replacement material must get a fresh identifier")
		s.Equal(tool.ID, material.MakerToolID)
	})

	s.Run("discarded materials are gone", func() {
		for id := range oldIDs {
			_, err := s.store.MaterialByID(id)
			s.ErrorIs(err, store.ErrNotFound)
		}
	})
}

func (s *UserServiceSuite) TestToolOwnershipEnforced() {
	owner := s.registerMaker("u@x.com", "owner1", "Paris")
	other := s.registerMaker("v@x.com", "other1", "Lyon")

	created, err := s.service.AddPrinter3D(asPrincipal(owner), owner.ID, printerRequest(
		dto.MaterialRequest{Type: models.MaterialTypePLA},
	))
	s.Require().NoError(err)
	toolID := created.Tools[0].ID

	_, err = s.service.UpdatePrinter3D(asPrincipal(other), other.ID, toolID, printerRequest(
		dto.MaterialRequest{Type: models.MaterialTypeABS},
	))
	s.Require().ErrorIs(err, ErrOwnershipViolation)

	_, err = s.service.DeleteMakerTool(asPrincipal(other), other.ID, toolID)
	s.Require().ErrorIs(err, ErrOwnershipViolation)

	s.Run("owner tool unchanged", func() {
		reloaded, err := s.store.ToolByID(toolID)
		s.Require().NoError(err)
		s.Require().Len(reloaded.Materials, 1)
		s.Equal(models.MaterialTypePLA, reloaded.Materials[0].Type)
	})
}

func (s *UserServiceSuite) TestDeleteMakerToolCascades() {
	user := s.registerMaker("maker@x.com", "maker1", "Paris")
	p := asPrincipal(user)

	created, err := s.service.AddPrinter3D(p, user.ID, printerRequest(
		dto.MaterialRequest{Type: models.MaterialTypePLA},
		dto.MaterialRequest{Type: models.MaterialTypeResin},
	))
	s.Require().NoError(err)
	tool := created.Tools[0]

	afterDelete, err := s.service.DeleteMakerTool(p, user.ID, tool.ID)
	s.Require().NoError(err)
	s.Empty(afterDelete.Tools)

	for _, m := range tool.Materials {
		_, err := s.store.MaterialByID(m.ID)
		s.ErrorIs(err, store.ErrNotFound)
	}

	s.Run("deleting again reports not found, not a silent no-op", func() {
		_, err := s.service.DeleteMakerTool(p, user.ID, tool.ID)
		s.ErrorIs(err, ErrNotFound)
	})
}

func (s *UserServiceSuite) TestGetToolMaterialChain() {
	owner := s.registerMaker("u@x.com", "owner1", "Paris")
	p := asPrincipal(owner)

	created, err := s.service.AddPrinter3D(p, owner.ID, printerRequest(
		dto.MaterialRequest{Type: models.MaterialTypePLA, Colors: "red"},
	))
	s.Require().NoError(err)
	tool := created.Tools[0]
	materialID := tool.Materials[0].ID

	s.Run("full chain resolves", func() {
		material, err := s.service.GetToolMaterial(p, owner.ID, tool.ID, materialID)
		s.Require().NoError(err)
		s.Equal(models.MaterialTypePLA, material.Type)
	})

	s.Run("material reached through a foreign tool reads as not found", func() {
		second, err := s.service.AddPrinter3D(p, owner.ID, printerRequest(
			dto.MaterialRequest{Type: models.MaterialTypeABS},
		))
		s.Require().NoError(err)
		otherTool := second.Tools[1]

		_, err = s.service.GetToolMaterial(p, owner.ID, otherTool.ID, materialID)
		s.ErrorIs(err, ErrNotFound)
	})
}
