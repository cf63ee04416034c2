package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sessionly/sessionly/api"
)

// Storage keys for the persisted auth state. Token and account record are
// always written and cleared together.
const (
	tokenKey = "sessionly_jwt"
	userKey  = "sessionly_user"
)

// CredentialStore persists the bearer token and cached account record across
// restarts. It is the only cross-restart state the client keeps.
type CredentialStore interface {
	Load() (token string, user *api.AuthUser, err error)
	Save(token string, user *api.AuthUser) error
	Clear() error
}

// FileCredentials stores credentials as a JSON file.
type FileCredentials struct {
	path string
}

// NewFileCredentials creates a file-backed credential store at path.
func NewFileCredentials(path string) *FileCredentials {
	return &FileCredentials{path: path}
}

// DefaultCredentialsPath resolves the per-user credentials file location.
func DefaultCredentialsPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "sessionly", "credentials.json"), nil
}

func (f *FileCredentials) Load() (string, *api.AuthUser, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("read credentials: %w", err)
	}

	var stored map[string]json.RawMessage
	if err := json.Unmarshal(data, &stored); err != nil {
		// Corrupt file: treat as logged out rather than failing startup.
		_ = f.Clear()
		return "", nil, nil
	}

	var token string
	if raw, ok := stored[tokenKey]; ok {
		_ = json.Unmarshal(raw, &token)
	}
	var user *api.AuthUser
	if raw, ok := stored[userKey]; ok {
		var u api.AuthUser
		if err := json.Unmarshal(raw, &u); err == nil {
			user = &u
		}
	}
	return token, user, nil
}

func (f *FileCredentials) Save(token string, user *api.AuthUser) error {
	payload, err := json.Marshal(map[string]any{
		tokenKey: token,
		userKey:  user,
	})
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	if err := os.WriteFile(f.path, payload, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (f *FileCredentials) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// memCredentials is the default in-memory store, used when no durable store
// is configured (and by tests).
type memCredentials struct {
	token string
	user  *api.AuthUser
}

func (m *memCredentials) Load() (string, *api.AuthUser, error) { return m.token, m.user, nil }

func (m *memCredentials) Save(token string, user *api.AuthUser) error {
	m.token, m.user = token, user
	return nil
}

func (m *memCredentials) Clear() error {
	m.token, m.user = "", nil
	return nil
}
