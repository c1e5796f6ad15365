// Package config defines core configuration types for webstego.
// These types are pure data structures with no dependency on the loader.
package config

// DefaultMethod is the method used when nothing else is configured.
const DefaultMethod = "trailing-space"

// Backup modes.
const (
	BackupModeSidecar = "sidecar"
	BackupModeNone    = "none"
)

// BackupsConfig controls backup behavior when a cover is embedded in place.
type BackupsConfig struct {
	// Enabled is nil when no source set it.
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure for webstego.
type Config struct {
	// Methods lists method names or aliases used for embedding and extraction.
	Methods []string `yaml:"methods,omitempty"`

	// Grammar forces "html" or "css"; "auto" detects it per document.
	Grammar string `yaml:"grammar,omitempty"`

	// Verify checks that the stego document is equivalent to its cover
	// before it is written. Nil means unset.
	Verify *bool `yaml:"verify,omitempty"`

	// Ignore contains glob patterns for files to skip during extraction.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior when embedding in place.
	Backups BackupsConfig `yaml:"backups,omitempty"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs,omitempty"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Methods: []string{DefaultMethod},
		Grammar: "auto",
		Verify:  Bool(true),
		Backups: BackupsConfig{
			Enabled: Bool(true),
			Mode:    BackupModeSidecar,
		},
		Format: FormatText,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// VerifyEnabled reports whether stego output is verified. Unset means true.
func (c *Config) VerifyEnabled() bool {
	return c == nil || c.Verify == nil || *c.Verify
}

// BackupsEnabled reports whether a backup is written before a cover is
// replaced. Unset means true; mode "none" disables it.
func (c *Config) BackupsEnabled() bool {
	if c == nil {
		return true
	}
	if c.Backups.Mode == BackupModeNone {
		return false
	}
	return c.Backups.Enabled == nil || *c.Backups.Enabled
}
