// Package tokenstore persists the bearer token the request client
// attaches to outbound calls. Absence of a token is not an error: the
// client simply omits the Authorization header, and the consumer that
// owns redirect-to-login reads absence as "not authenticated".
package tokenstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

const (
	serviceName = "aidpanel"
	tokenKey    = "auth_token"
)

// Store holds the bearer token for outbound authentication.
type Store interface {
	// Token returns the stored token, or "" when none is stored.
	Token() (string, error)
	Save(token string) error
	Clear() error
}

// KeyringStore keeps the token in the OS credential store.
type KeyringStore struct {
	open func() (keyring.Keyring, error)
}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{open: openKeyring}
}

func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/aidpanel/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("aidpanel-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

func (s *KeyringStore) Token() (string, error) {
	ring, err := s.open()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(tokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading token: %w", err)
	}

	return string(item.Data), nil
}

func (s *KeyringStore) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token is required")
	}

	ring, err := s.open()
	if err != nil {
		return err
	}

	if err := ring.Set(keyring.Item{Key: tokenKey, Data: []byte(token)}); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func (s *KeyringStore) Clear() error {
	ring, err := s.open()
	if err != nil {
		return err
	}

	if err := ring.Remove(tokenKey); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

// MemoryStore is an in-process store used in tests and in synthetic mode
// where no real credentials exist.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
