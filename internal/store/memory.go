package store

import (
	"sort"
	"sync"

	"github.com/callimard/makemeacube/internal/models"
)

// Memory is an in-memory Store used by tests. It mirrors the gateway
// contract of the Gorm store: identifiers assigned on first save, loads
// returning detached copies, child rows living in their own tables.
type Memory struct {
	mu            sync.RWMutex
	users         map[uint]models.User
	addresses     map[uint]models.UserAddress
	tools         map[uint]models.MakerTool
	materials     map[uint]models.Material
	refreshTokens map[string]models.RefreshToken
	lastID        uint
}

func NewMemory() *Memory {
	return &Memory{
		users:         make(map[uint]models.User),
		addresses:     make(map[uint]models.UserAddress),
		tools:         make(map[uint]models.MakerTool),
		materials:     make(map[uint]models.Material),
		refreshTokens: make(map[string]models.RefreshToken),
	}
}

func (s *Memory) nextID() uint {
	s.lastID++
	return s.lastID
}

func (s *Memory) UserByID(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	user.Addresses = s.addressesOf(id)
	user.Tools = s.toolsOf(id)
	return &user, nil
}

func (s *Memory) UserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) UserByVerificationToken(token string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if token == "" {
		return nil, ErrNotFound
	}
	for _, user := range s.users {
		if user.VerificationToken == token {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) AddressByID(id uint) (*models.UserAddress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	address, ok := s.addresses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &address, nil
}

func (s *Memory) ToolByID(id uint) (*models.MakerTool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tool, ok := s.tools[id]
	if !ok {
		return nil, ErrNotFound
	}
	tool.Materials = s.materialsOf(id)
	return &tool, nil
}

func (s *Memory) MaterialByID(id uint) (*models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	material, ok := s.materials[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &material, nil
}

func (s *Memory) SaveUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !u.Saved() {
		u.ID = s.nextID()
		for i := range u.Addresses {
			u.Addresses[i].UserID = u.ID
			u.Addresses[i].ID = s.nextID()
			s.addresses[u.Addresses[i].ID] = u.Addresses[i]
		}
		for i := range u.Tools {
			tool := &u.Tools[i]
			tool.UserID = u.ID
			tool.ID = s.nextID()
			for j := range tool.Materials {
				tool.Materials[j].MakerToolID = tool.ID
				tool.Materials[j].ID = s.nextID()
				s.materials[tool.Materials[j].ID] = tool.Materials[j]
			}
			s.storeTool(*tool)
		}
		s.storeUser(*u)
		return nil
	}

	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	s.storeUser(*u)
	return nil
}

func (s *Memory) SaveAddress(a *models.UserAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !a.Saved() {
		a.ID = s.nextID()
	}
	s.addresses[a.ID] = *a
	return nil
}

func (s *Memory) SaveTool(t *models.MakerTool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !t.Saved() {
		t.ID = s.nextID()
		for i := range t.Materials {
			t.Materials[i].MakerToolID = t.ID
			t.Materials[i].ID = s.nextID()
			s.materials[t.Materials[i].ID] = t.Materials[i]
		}
	}
	s.storeTool(*t)
	return nil
}

func (s *Memory) ReplaceToolMaterials(t *models.MakerTool, materials []models.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, material := range s.materials {
		if material.MakerToolID == t.ID {
			delete(s.materials, id)
		}
	}
	for i := range materials {
		materials[i].MakerToolID = t.ID
		materials[i].ID = s.nextID()
		s.materials[materials[i].ID] = materials[i]
	}
	t.Materials = materials
	return nil
}

func (s *Memory) DeleteAddress(a *models.UserAddress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.addresses, a.ID)
	return nil
}

func (s *Memory) DeleteTool(t *models.MakerTool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, material := range s.materials {
		if material.MakerToolID == t.ID {
			delete(s.materials, id)
		}
	}
	delete(s.tools, t.ID)
	return nil
}

func (s *Memory) SaveRefreshToken(rt *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshTokens[rt.TokenHash] = *rt
	return nil
}

func (s *Memory) RefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rt, ok := s.refreshTokens[hash]
	if !ok || rt.Revoked {
		return nil, ErrNotFound
	}
	return &rt, nil
}

func (s *Memory) RevokeRefreshToken(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rt, ok := s.refreshTokens[hash]; ok {
		rt.Revoked = true
		s.refreshTokens[hash] = rt
	}
	return nil
}

// storeUser keeps only the user's own columns; collections live in their
// own maps and are reassembled on load.
func (s *Memory) storeUser(u models.User) {
	u.Addresses = nil
	u.Tools = nil
	s.users[u.ID] = u
}

func (s *Memory) storeTool(t models.MakerTool) {
	t.Materials = nil
	s.tools[t.ID] = t
}

func (s *Memory) addressesOf(userID uint) []models.UserAddress {
	var out []models.UserAddress
	for _, a := range s.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Memory) toolsOf(userID uint) []models.MakerTool {
	var out []models.MakerTool
	for _, t := range s.tools {
		if t.UserID == userID {
			t.Materials = s.materialsOf(t.ID)
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Memory) materialsOf(toolID uint) []models.Material {
	var out []models.Material
	for _, m := range s.materials {
		if m.MakerToolID == toolID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
