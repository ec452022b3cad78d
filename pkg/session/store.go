// Package session persists the auth session issued by the backend and tells
// the rest of the client whether the stored access token is still usable.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"

	v1 "github.com/agentdeck/agentdeck/api/v1"
)

// ErrNoSession reports that no session is stored.
var ErrNoSession = errors.New("no stored session")

// Store persists one session.
type Store interface {
	Load() (*v1.Session, error)
	Save(session *v1.Session) error
	Clear() error
}

const (
	keyringService = "agentdeck"
	keyringUser    = "session"
)

// KeyringStore keeps the session in the OS keychain.
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Load() (*v1.Session, error) {
	raw, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNoSession
		}

		return nil, errors.Wrapf(err, "failed to read session from keyring")
	}

	return decode([]byte(raw))
}

func (s *KeyringStore) Save(session *v1.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "failed to encode session")
	}

	if err := keyring.Set(keyringService, keyringUser, string(raw)); err != nil {
		return errors.Wrapf(err, "failed to write session to keyring")
	}

	return nil
}

func (s *KeyringStore) Clear() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return errors.Wrapf(err, "failed to delete session from keyring")
	}

	return nil
}

// FileStore keeps the session in a mode-0600 JSON file. It is the fallback on
// hosts without a usable keychain.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath returns the session file location under the user config
// dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve user config dir")
	}

	return filepath.Join(dir, "agentdeck", "session.json"), nil
}

func (s *FileStore) Load() (*v1.Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}

		return nil, errors.Wrapf(err, "failed to read session file %s", s.path)
	}

	return decode(raw)
}

func (s *FileStore) Save(session *v1.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Wrapf(err, "failed to encode session")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrapf(err, "failed to create session dir")
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write session file %s", s.path)
	}

	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove session file %s", s.path)
	}

	return nil
}

// fallbackStore tries the primary store and falls back to the secondary when
// the primary is unavailable (e.g. headless hosts without a keychain).
type fallbackStore struct {
	primary   Store
	secondary Store
}

// NewDefaultStore returns the keychain store with a file fallback.
func NewDefaultStore() (Store, error) {
	path, err := DefaultSessionPath()
	if err != nil {
		return nil, err
	}

	return &fallbackStore{
		primary:   NewKeyringStore(),
		secondary: NewFileStore(path),
	}, nil
}

func (s *fallbackStore) Load() (*v1.Session, error) {
	session, err := s.primary.Load()
	if err == nil {
		return session, nil
	}

	if errors.Is(err, ErrNoSession) {
		return s.secondary.Load()
	}

	return s.secondary.Load()
}

func (s *fallbackStore) Save(session *v1.Session) error {
	if err := s.primary.Save(session); err == nil {
		return nil
	}

	return s.secondary.Save(session)
}

func (s *fallbackStore) Clear() error {
	primaryErr := s.primary.Clear()
	secondaryErr := s.secondary.Clear()

	if primaryErr != nil {
		return primaryErr
	}

	return secondaryErr
}

func decode(raw []byte) (*v1.Session, error) {
	var session v1.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrapf(err, "failed to decode stored session")
	}

	return &session, nil
}
