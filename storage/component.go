package storage

import "github.com/go-authgate/userstore/internal/envutil"

// ComponentConfig is the administrator-supplied configuration of one
// provider instance, persisted opaquely by the host.
type ComponentConfig struct {
	// ID is the host-assigned identifier of this component instance.
	ID string

	// Config holds the raw configuration values keyed by property name.
	Config map[string]string
}

// Value returns the configuration value for key with ${VAR}
// environment references expanded. Expansion happens on every read;
// the raw value is never replaced.
func (c *ComponentConfig) Value(key string) string {
	if c == nil || c.Config == nil {
		return ""
	}
	return envutil.Expand(c.Config[key])
}

// Set stores a raw configuration value.
func (c *ComponentConfig) Set(key, value string) {
	if c.Config == nil {
		c.Config = make(map[string]string)
	}
	c.Config[key] = value
}
