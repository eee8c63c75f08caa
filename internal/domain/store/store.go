package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/launchdock/backend/internal/infrastructure/logging"
	"github.com/launchdock/backend/internal/shared/types"
)

const configFileName = "config.json"

// Store persists the ordered definition list as a JSON document.
//
// A missing file loads as an empty config. A file that fails to decode also
// loads as an empty config; startup must not be blocked by a corrupted
// document, so recovery is silent beyond a log line.
type Store struct {
	path   string
	logger *logging.Logger
}

// New creates a store rooted at the given directory.
func New(dir string, logger *logging.Logger) *Store {
	return &Store{
		path:   filepath.Join(dir, configFileName),
		logger: logger,
	}
}

// NewDefault creates a store at the per-user configuration location.
func NewDefault(logger *logging.Logger) (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return New(filepath.Join(base, "launchdock"), logger), nil
}

// Path returns the location of the persisted document.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted config. Absent or malformed documents yield an
// empty config rather than an error.
func (s *Store) Load() types.AppConfig {
	var cfg types.AppConfig

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read config, starting empty",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return types.AppConfig{}
	}

	if err := sonic.Unmarshal(data, &cfg); err != nil {
		s.logger.Warn("Malformed config, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return types.AppConfig{}
	}

	return cfg
}

// Save writes the config to disk, creating the directory if needed.
func (s *Store) Save(cfg types.AppConfig) error {
	data, err := sonic.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
