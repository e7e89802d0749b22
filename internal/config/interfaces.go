package config

// ManagerInterface abstracts loading and saving the keycap settings file so
// consumers like the config watcher can be tested with a mock manager
type ManagerInterface interface {
	// Load reads the settings file, filling gaps with defaults
	Load() (*Config, error)
	// Save persists window geometry and appearance settings
	Save(*Config) error
}

// Ensure Manager implements ManagerInterface
var _ ManagerInterface = (*Manager)(nil)
