package providers

import (
	"stash/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8090,
		},
		Persistence: structures.Persistence{
			FilePath:     "/tmp/stash.dat",
			SaveInterval: 30 * time.Second,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Backend: structures.BackendConfig{
			BaseURL: "http://localhost:5000/api",
		},
		Sweep: structures.SweepConfig{
			Interval: 5 * time.Minute,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_MissingBackendURL(t *testing.T) {
	c := validConfig()
	c.Backend.BaseURL = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_ZeroSweepInterval(t *testing.T) {
	c := validConfig()
	c.Sweep.Interval = 0
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_NegativeMaxEntries(t *testing.T) {
	c := validConfig()
	c.Persistence.MaxEntries = -1
	assert.Error(t, NewCnfValidator(c).Validate())
}
