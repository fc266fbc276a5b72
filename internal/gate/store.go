package gate

import (
	"errors"
	"sync"

	"github.com/jhbridge/billing/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingStore persists flags in the settings table. This is the
// server-side stand-in for browser local storage.
type SettingStore struct {
	db *gorm.DB
}

func NewSettingStore(db *gorm.DB) *SettingStore {
	return &SettingStore{db: db}
}

// Get returns the stored value, or "" when the key is absent.
func (s *SettingStore) Get(key string) (string, error) {
	var setting models.Setting
	err := s.db.First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingStore) Set(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}

func (s *SettingStore) Clear(key string) error {
	return s.db.Delete(&models.Setting{}, "key = ?", key).Error
}

// MemoryStore is an in-process FlagStore for tests and ephemeral runs.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[key], nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
