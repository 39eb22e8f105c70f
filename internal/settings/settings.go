package settings

import (
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/glueckskekse/kasse/internal/domain"
	"github.com/glueckskekse/kasse/internal/kvstore"
)

const keySettings = "settings"

// View is the typed shape of the adjustable till settings.
type View struct {
	TillName   string `mapstructure:"till_name" json:"till_name"`
	BackupSpec string `mapstructure:"backup_spec" json:"backup_spec"`
}

// Manager holds the till settings as a persisted key/value map with
// typed accessors.
type Manager struct {
	mu     sync.Mutex
	kv     *kvstore.Store
	values map[string]interface{}
}

func NewManager(kv *kvstore.Store) *Manager {
	m := &Manager{kv: kv, values: map[string]interface{}{}}
	if _, err := kv.Get(kvstore.BucketSettings, keySettings, &m.values); err != nil {
		zap.S().Errorf("failed to load settings: %v", err)
	}
	return m
}

func (m *Manager) GetString(key, def string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return cast.ToString(v)
	}
	return def
}

func (m *Manager) GetInt(key string, def int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return cast.ToInt(v)
	}
	return def
}

func (m *Manager) GetBool(key string, def bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return cast.ToBool(v)
	}
	return def
}

// View decodes the stored map into the typed settings shape.
func (m *Manager) View() (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := View{
		TillName:   "Glückskekse-Stand",
		BackupSpec: "0 3 * * *",
	}
	if err := mapstructure.Decode(m.values, &v); err != nil {
		return v, domain.Validationf("settings", "stored settings are malformed: %v", err)
	}
	return v, nil
}

// Save merges the given values and persists the result.
func (m *Manager) Save(values map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	if err := m.kv.Put(kvstore.BucketSettings, keySettings, m.values); err != nil {
		zap.S().Errorf("failed to persist settings: %v", err)
		return &domain.PersistenceError{Op: "save settings", Err: err}
	}
	return nil
}
