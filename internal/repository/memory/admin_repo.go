// internal/repository/memory/admin_repo.go
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"gracehub-service/internal/domain/admin"
	xerrors "gracehub-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

// account pairs a profile with its credential hash.
type account struct {
	profile      admin.Profile
	passwordHash string
}

// AdminRepository is the in-memory admin directory. The whole directory is
// mock data simulating what a real deployment would keep in a user store.
type AdminRepository struct {
	mu       sync.RWMutex
	byID     map[string]*account
	idsEmail map[string]string
}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{
		byID:     make(map[string]*account),
		idsEmail: make(map[string]string),
	}
}

// Seed registers an admin with a plaintext password, hashing it on the way
// in. Used at startup for fixtures and by tests.
func (r *AdminRepository) Seed(profile admin.Profile, password string) (*admin.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to hash password")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(profile.Email)
	if _, exists := r.idsEmail[key]; exists {
		return nil, xerrors.ErrConflict
	}

	if profile.ID == "" {
		profile.ID = ulid.Make().String()
	}
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	acc := &account{profile: profile, passwordHash: string(hash)}
	r.byID[profile.ID] = acc
	r.idsEmail[key] = profile.ID

	return acc.profile.Clone(), nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*admin.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.idsEmail[strings.ToLower(email)]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return r.byID[id].profile.Clone(), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*admin.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return acc.profile.Clone(), nil
}

// VerifyPassword checks a candidate password against the stored hash.
func (r *AdminRepository) VerifyPassword(ctx context.Context, id, password string) error {
	r.mu.RLock()
	acc, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return xerrors.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(password)); err != nil {
		return xerrors.ErrInvalidCredentials
	}
	return nil
}

// UpdatePassword replaces the stored hash.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return xerrors.Wrap(err, "failed to hash password")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.byID[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	acc.passwordHash = string(hash)
	acc.profile.UpdatedAt = time.Now()
	return nil
}

// UpdateProfile applies non-empty fields and returns the stored copy, which
// is authoritative for callers.
func (r *AdminRepository) UpdateProfile(ctx context.Context, id string, req *admin.UpdateProfileRequest) (*admin.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}

	if req.Name != "" {
		acc.profile.Name = req.Name
	}
	if req.Phone != "" {
		acc.profile.Phone = req.Phone
	}
	if req.Position != "" {
		acc.profile.Position = req.Position
	}
	if req.Avatar != "" {
		acc.profile.Avatar = req.Avatar
	}
	acc.profile.UpdatedAt = time.Now()

	return acc.profile.Clone(), nil
}

// TouchLastLogin stamps the last successful login.
func (r *AdminRepository) TouchLastLogin(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if acc, ok := r.byID[id]; ok {
		acc.profile.LastLogin = time.Now()
	}
}
