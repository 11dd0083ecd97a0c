package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/custodia-labs/listing-studio/internal/core/domain"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driven"
	"github.com/custodia-labs/listing-studio/internal/core/ports/driving"
	"github.com/custodia-labs/listing-studio/internal/logger"
)

// Ensure AdminGate implements the interface.
var _ driving.AdminService = (*AdminGate)(nil)

//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAdminUsername = "admin.username"
	keyAdminHash     = "admin.password_hash"
)

// DefaultSessionTTL is how long an admin token stays valid.
const DefaultSessionTTL = 12 * time.Hour

// AdminGate checks admin credentials against the configured username and
// bcrypt hash and hands out opaque session tokens.
type AdminGate struct {
	configStore driven.ConfigStore
	ttl         time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]time.Time
}

// NewAdminGate creates an admin gate.
func NewAdminGate(configStore driven.ConfigStore) *AdminGate {
	return &AdminGate{
		configStore: configStore,
		ttl:         DefaultSessionTTL,
		now:         time.Now,
		sessions:    make(map[string]time.Time),
	}
}

// Configured reports whether credentials have been set.
func (g *AdminGate) Configured() bool {
	return g.configStore.GetString(keyAdminUsername) != "" && g.configStore.GetString(keyAdminHash) != ""
}

// SetCredentials stores the username and a bcrypt hash of password.
func (g *AdminGate) SetCredentials(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := g.configStore.Set(keyAdminUsername, username); err != nil {
		return fmt.Errorf("save admin username: %w", err)
	}
	if err := g.configStore.Set(keyAdminHash, string(hash)); err != nil {
		return fmt.Errorf("save admin password: %w", err)
	}

	// Existing sessions were granted under the old password.
	g.mu.Lock()
	g.sessions = make(map[string]time.Time)
	g.mu.Unlock()
	return nil
}

// Login checks credentials and opens a session.
func (g *AdminGate) Login(username, password string) (string, error) {
	if !g.Configured() {
		return "", fmt.Errorf("%w: admin credentials are not configured", domain.ErrInvalidCredentials)
	}
	want := g.configStore.GetString(keyAdminUsername)
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(want)) == 1

	err := bcrypt.CompareHashAndPassword([]byte(g.configStore.GetString(keyAdminHash)), []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		logger.Warn("admin password hash is unusable: %v", err)
	}
	if !userOK || err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token := uuid.New().String()
	g.mu.Lock()
	g.sessions[token] = g.now().Add(g.ttl)
	g.mu.Unlock()
	logger.Info("admin %s logged in", username)
	return token, nil
}

// IsAdmin reports whether token belongs to a live session.
func (g *AdminGate) IsAdmin(token string) bool {
	if token == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	expires, ok := g.sessions[token]
	if !ok {
		return false
	}
	if g.now().After(expires) {
		delete(g.sessions, token)
		return false
	}
	return true
}

// Logout ends a session.
func (g *AdminGate) Logout(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, token)
}
