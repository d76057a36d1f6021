package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chefcommunity/client/internal/types"
)

// Keys under which the session halves are persisted. They mirror the
// browser local storage entries of the web client.
const (
	KeyUser  = "user"
	KeyToken = "token"
)

// ErrPartial is returned by Load when only one half of a session is
// present in storage.
var ErrPartial = errors.New("partial session in storage")

// Storage persists a session. Save and Clear write both halves
// atomically. Load returns (nil, nil) when nothing is stored.
type Storage interface {
	Load(ctx context.Context) (*types.Session, error)
	Save(ctx context.Context, s types.Session) error
	Clear(ctx context.Context) error
}

// decode rebuilds a session from the raw stored values. Empty strings mean
// the key is absent.
func decode(rawUser, token string) (*types.Session, error) {
	if rawUser == "" && token == "" {
		return nil, nil
	}
	if rawUser == "" || token == "" {
		return nil, ErrPartial
	}
	var user types.UserSummary
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("failed to decode stored user: %w", err)
	}
	s := &types.Session{User: user, Token: token}
	if !s.Valid() {
		return nil, ErrPartial
	}
	return s, nil
}

func encodeUser(u types.UserSummary) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("failed to encode user: %w", err)
	}
	return string(b), nil
}

// MemoryStorage keeps the session in process memory.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

// Set writes a single key, which lets tests plant partial sessions.
func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStorage) Load(_ context.Context) (*types.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decode(m.values[KeyUser], m.values[KeyToken])
}

func (m *MemoryStorage) Save(_ context.Context, s types.Session) error {
	user, err := encodeUser(s.User)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[KeyUser] = user
	m.values[KeyToken] = s.Token
	return nil
}

func (m *MemoryStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, KeyUser)
	delete(m.values, KeyToken)
	return nil
}

// FileStorage keeps the session in a JSON document on disk.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

type fileDocument struct {
	User  json.RawMessage `json:"user,omitempty"`
	Token string          `json:"token,omitempty"`
}

func (f *FileStorage) Load(_ context.Context) (*types.Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrPartial
	}
	return decode(string(doc.User), doc.Token)
}

// Save writes to a temporary file and renames it over the old document so
// readers never observe half a session.
func (f *FileStorage) Save(_ context.Context, s types.Session) error {
	user, err := encodeUser(s.User)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(fileDocument{User: json.RawMessage(user), Token: s.Token}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

func (f *FileStorage) Clear(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
