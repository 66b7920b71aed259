// Package session persists the dashboard's login flags behind a small key/value interface.
package session

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/collably/pkg/models"
)

// Keys stored by the dashboard
const (
	KeyToken      = "token"
	KeyIsLoggedIn = "isLoggedIn"
	KeyUserRole   = "userRole"
	KeyUserType   = "userType"
	KeyBrandID    = "brandId"
	KeyUserName   = "userName"
)

var allKeys = []string{KeyToken, KeyIsLoggedIn, KeyUserRole, KeyUserType, KeyBrandID, KeyUserName}

// Store is a flat string key/value store
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Session reads and writes the typed session flags
type Session struct {
	store  Store
	logger ectologger.Logger
}

// New creates a session over store
func New(store Store, logger ectologger.Logger) *Session {
	return &Session{store: store, logger: logger}
}

// Token returns the bearer token, or "" when logged out
func (s *Session) Token(ctx context.Context) (string, error) {
	return s.get(ctx, KeyToken)
}

// IsLoggedIn reports the isLoggedIn flag
func (s *Session) IsLoggedIn(ctx context.Context) (bool, error) {
	value, err := s.get(ctx, KeyIsLoggedIn)
	if err != nil || value == "" {
		return false, err
	}
	loggedIn, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", KeyIsLoggedIn, value, err)
	}
	return loggedIn, nil
}

// Role returns admin or brand. userType is read when userRole is unset.
func (s *Session) Role(ctx context.Context) (string, error) {
	role, err := s.get(ctx, KeyUserRole)
	if err != nil || role != "" {
		return role, err
	}
	return s.get(ctx, KeyUserType)
}

// BrandID returns the logged-in brand id
func (s *Session) BrandID(ctx context.Context) (string, error) {
	return s.get(ctx, KeyBrandID)
}

// UserName returns the display name of the logged-in account
func (s *Session) UserName(ctx context.Context) (string, error) {
	return s.get(ctx, KeyUserName)
}

// Info is every session flag at once
type Info struct {
	LoggedIn bool   `json:"isLoggedIn" yaml:"isLoggedIn"`
	Role     string `json:"userRole,omitempty" yaml:"userRole,omitempty"`
	BrandID  string `json:"brandId,omitempty" yaml:"brandId,omitempty"`
	UserName string `json:"userName,omitempty" yaml:"userName,omitempty"`
	HasToken bool   `json:"hasToken" yaml:"hasToken"`
}

// Info reads all flags
func (s *Session) Info(ctx context.Context) (Info, error) {
	var (
		info Info
		err  error
	)
	if info.LoggedIn, err = s.IsLoggedIn(ctx); err != nil {
		return info, err
	}
	if info.Role, err = s.Role(ctx); err != nil {
		return info, err
	}
	if info.BrandID, err = s.BrandID(ctx); err != nil {
		return info, err
	}
	if info.UserName, err = s.UserName(ctx); err != nil {
		return info, err
	}
	token, err := s.Token(ctx)
	info.HasToken = token != ""
	return info, err
}

// SaveAdmin records a successful admin login
func (s *Session) SaveAdmin(ctx context.Context, token, name string) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}
	return s.setAll(ctx, map[string]string{
		KeyToken:      token,
		KeyIsLoggedIn: "true",
		KeyUserRole:   models.RoleAdmin,
		KeyUserType:   models.RoleAdmin,
		KeyUserName:   name,
	})
}

// SaveBrand records a successful brand login
func (s *Session) SaveBrand(ctx context.Context, token string, brand models.Brand) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}
	return s.setAll(ctx, map[string]string{
		KeyToken:      token,
		KeyIsLoggedIn: "true",
		KeyUserRole:   models.RoleBrand,
		KeyUserType:   models.RoleBrand,
		KeyBrandID:    brand.ID,
		KeyUserName:   brand.BrandName,
	})
}

// Clear removes every session flag
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Session) get(ctx context.Context, key string) (string, error) {
	value, _, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Errorf("failed to read session key %s", key)
		return "", fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return value, nil
}

func (s *Session) setAll(ctx context.Context, values map[string]string) error {
	for _, key := range allKeys {
		value, ok := values[key]
		if !ok || value == "" {
			continue
		}
		if err := s.store.Set(ctx, key, value); err != nil {
			return fmt.Errorf("failed to write session key %s: %w", key, err)
		}
	}
	return nil
}
