package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// ErrNotFound is returned by stores when no profile exists for the id.
var ErrNotFound = errors.New("profile not found")

// Store owns profile persistence. The pipeline only reads and writes the
// profile value it is handed; durability is the store's concern.
type Store interface {
	Get(id string) (*UserProfile, error)
	Put(id string, p *UserProfile) error
	Delete(id string) error
}

// MemoryStore keeps profiles in process memory. Used in tests and as the
// default when no store file is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*UserProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*UserProfile)}
}

func (s *MemoryStore) Get(id string) (*UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) Put(id string, p *UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[id] = p
	return nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profiles, id)
	return nil
}

// FileStore persists profiles as one indented JSON file keyed by id. Every
// Put/Delete rewrites the whole file; profile counts stay small enough for
// that to be a non-issue.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(id string) (*UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.load()
	if err != nil {
		return nil, err
	}

	p, ok := profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *FileStore) Put(id string, p *UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.load()
	if err != nil {
		return err
	}

	profiles[id] = p
	return s.save(profiles)
}

func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.load()
	if err != nil {
		return err
	}

	delete(profiles, id)
	return s.save(profiles)
}

func (s *FileStore) load() (map[string]*UserProfile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]*UserProfile), nil
		}
		return nil, fmt.Errorf("reading profile store: %w", err)
	}

	if len(data) == 0 {
		return make(map[string]*UserProfile), nil
	}

	var profiles map[string]*UserProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parsing profile store: %w", err)
	}
	if profiles == nil {
		profiles = make(map[string]*UserProfile)
	}
	return profiles, nil
}

func (s *FileStore) save(profiles map[string]*UserProfile) error {
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile store: %w", err)
	}
	return nil
}
