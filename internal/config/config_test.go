package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != DefaultServerPort {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, DefaultServerPort)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, DefaultShutdownTimeout)
	}
	if cfg.MetricsEnabled != DefaultMetricsEnabled {
		t.Errorf("MetricsEnabled = %v, want %v", cfg.MetricsEnabled, DefaultMetricsEnabled)
	}
	if cfg.LoginUsername != DefaultLoginUsername {
		t.Errorf("LoginUsername = %q, want %q", cfg.LoginUsername, DefaultLoginUsername)
	}
	if cfg.LoginPassword != DefaultLoginPassword {
		t.Errorf("LoginPassword = %q, want %q", cfg.LoginPassword, DefaultLoginPassword)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, DefaultMaxUploadBytes)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	// Arrange
	t.Setenv(EnvServerPort, "8080")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvShutdownTimeout, "5s")
	t.Setenv(EnvMetricsEnabled, "false")
	t.Setenv(EnvLoginUsername, "operator")
	t.Setenv(EnvLoginPassword, "hunter2")
	t.Setenv(EnvMaxUploadBytes, "1024")

	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
	if cfg.LoginUsername != "operator" || cfg.LoginPassword != "hunter2" {
		t.Errorf("login = %q/%q, want operator/hunter2", cfg.LoginUsername, cfg.LoginPassword)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("MaxUploadBytes = %d, want 1024", cfg.MaxUploadBytes)
	}
}

func TestLoad_InvalidEnvValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{name: "port not a number", env: EnvServerPort, value: "eighty"},
		{name: "timeout not a duration", env: EnvShutdownTimeout, value: "soon"},
		{name: "metrics not a bool", env: EnvMetricsEnabled, value: "maybe"},
		{name: "upload limit not a number", env: EnvMaxUploadBytes, value: "big"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			t.Setenv(tt.env, tt.value)

			// Act
			_, err := Load()

			// Assert
			if err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		ServerPort:      1111,
		LogLevel:        "info",
		ShutdownTimeout: time.Second,
		LoginUsername:   "admin",
		LoginPassword:   "secret",
		MaxUploadBytes:  1024,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port too low", mutate: func(c *Config) { c.ServerPort = 0 }, wantErr: ErrInvalidServerPort},
		{name: "port too high", mutate: func(c *Config) { c.ServerPort = 70000 }, wantErr: ErrInvalidServerPort},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: ErrInvalidLogLevel},
		{name: "zero timeout", mutate: func(c *Config) { c.ShutdownTimeout = 0 }, wantErr: ErrInvalidShutdownTimeout},
		{name: "empty login", mutate: func(c *Config) { c.LoginPassword = "" }, wantErr: ErrInvalidLoginConfig},
		{name: "zero upload limit", mutate: func(c *Config) { c.MaxUploadBytes = 0 }, wantErr: ErrInvalidMaxUploadBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cfg := valid
			tt.mutate(&cfg)

			// Act
			err := cfg.Validate()

			// Assert
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Address(t *testing.T) {
	// Arrange
	cfg := Config{ServerPort: 1111}

	// Act / Assert
	if got := cfg.Address(); got != ":1111" {
		t.Errorf("Address() = %q, want :1111", got)
	}
}
