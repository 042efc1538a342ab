package credstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/zalando/go-keyring"

	"github.com/modelverse-dev/modelverse/internal/models"
)

const (
	service = "modelverse-cli"

	tokenKey    = "auth_token"
	userInfoKey = "user_info"
)

// Store is the durable credential storage consulted on every request.
// Only the authentication gateway writes to it; everything else reads.
// The interface exists so tests can swap the OS keyring for memory.
type Store interface {
	// Token returns the stored bearer token, or "" when not authenticated.
	Token() (string, error)
	SetToken(token string) error

	// Profile returns the cached user profile, or nil when absent.
	// Unparseable cached data is treated as absent, not as an error.
	Profile() (*models.UserProfile, error)
	SetProfile(profile *models.UserProfile) error

	// Clear removes both keys. Clearing an empty store is a no-op.
	Clear() error
}

// keyringStore persists credentials in the OS keychain/credential manager,
// scoped per server so the CLI can hold sessions against several servers.
type keyringStore struct {
	server string
	log    zerolog.Logger
}

// NewKeyring returns a Store backed by the OS keyring for the given server.
func NewKeyring(server string, log zerolog.Logger) Store {
	return &keyringStore{server: server, log: log}
}

func (s *keyringStore) key(name string) string {
	return fmt.Sprintf("%s-%s", name, s.server)
}

func (s *keyringStore) Token() (string, error) {
	token, err := keyring.Get(service, s.key(tokenKey))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (s *keyringStore) SetToken(token string) error {
	if err := keyring.Set(service, s.key(tokenKey), token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *keyringStore) Profile() (*models.UserProfile, error) {
	data, err := keyring.Get(service, s.key(userInfoKey))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user info: %w", err)
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		// Corrupt cache leaves the user unauthenticated rather than crashing
		s.log.Warn().Err(err).Msg("Stored user info is unparseable, treating as absent")
		return nil, nil
	}
	return &profile, nil
}

func (s *keyringStore) SetProfile(profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal user info: %w", err)
	}
	if err := keyring.Set(service, s.key(userInfoKey), string(data)); err != nil {
		return fmt.Errorf("failed to save user info: %w", err)
	}
	return nil
}

func (s *keyringStore) Clear() error {
	for _, name := range []string{tokenKey, userInfoKey} {
		if err := keyring.Delete(service, s.key(name)); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				continue // already cleared
			}
			return fmt.Errorf("failed to clear %s: %w", name, err)
		}
	}
	return nil
}
