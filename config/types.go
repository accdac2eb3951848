package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Config is the engine's on-disk configuration: the animation/timeout
// knobs listed in the external-interfaces section plus the ambient
// logging section every component reads through logging.Init.
type Config struct {
	Transport TransportConfig `yaml:"transport" toml:"transport" jsonschema:"description=How to reach the editor backend"`
	Animation AnimationConfig `yaml:"animation" toml:"animation" jsonschema:"description=Spring animation tuning"`
	Attach    AttachConfig    `yaml:"attach" toml:"attach" jsonschema:"description=ui_attach handshake behavior"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging" jsonschema:"description=Log level and format"`

	// Extensions holds config keys this struct doesn't know about,
	// decoded on demand by UnmarshalExtension. This lets a transport
	// plugin or a future component read its own sub-document (e.g.
	// "env" for embedded-process environment overrides) without the
	// schema growing a field for every possible extension up front.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// UnmarshalExtension decodes the named top-level extension key into
// out. It is a no-op (out left unchanged) if the key wasn't present,
// matching grovetools-core's config.UnmarshalExtension: callers treat
// a missing extension as "use defaults", not an error.
func (c Config) UnmarshalExtension(name string, out interface{}) error {
	raw, ok := c.Extensions[name]
	if !ok {
		return nil
	}
	if err := mapstructure.Decode(raw, out); err != nil {
		return fmt.Errorf("config: decoding extension %q: %w", name, err)
	}
	return nil
}

// TransportConfig selects and configures the duplex to the backend.
type TransportConfig struct {
	// Kind is "socket" or "embed".
	Kind string `yaml:"kind" toml:"kind" jsonschema:"enum=socket,enum=embed"`
	// SocketPath is used when Kind == "socket".
	SocketPath string `yaml:"socketPath,omitempty" toml:"socketPath,omitempty"`
	// Command and Args launch the embedded backend when Kind == "embed".
	Command string   `yaml:"command,omitempty" toml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty" toml:"args,omitempty"`
}

// AnimationConfig tunes the spring-driven scroll and position
// animation described in §6.
type AnimationConfig struct {
	ScrollLengthSeconds   float64 `yaml:"scrollLengthSeconds" toml:"scrollLengthSeconds" jsonschema:"description=Scroll animation spring length in seconds,minimum=0"`
	FarScrollLineBudget   int     `yaml:"farScrollLineBudget" toml:"farScrollLineBudget" jsonschema:"description=Rows beyond which a scroll snaps instead of animating,minimum=0"`
	PositionLengthSeconds float64 `yaml:"positionLengthSeconds" toml:"positionLengthSeconds" jsonschema:"description=Window-move spring length in seconds (currently bypassed; position snaps),minimum=0"`
	ScrollbackSnapEpsilon float64 `yaml:"scrollbackSnapEpsilon" toml:"scrollbackSnapEpsilon" jsonschema:"description=Spring snap threshold for sub-cell scrollback offsets,minimum=0"`
}

// AttachConfig tunes the synchronous ui_attach handshake.
type AttachConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds" toml:"timeoutSeconds" jsonschema:"description=Deadline for the attach handshake,minimum=1"`
	Width          int `yaml:"width" toml:"width" jsonschema:"description=Initial grid width in cells,minimum=1"`
	Height         int `yaml:"height" toml:"height" jsonschema:"description=Initial grid height in cells,minimum=1"`
}

// LoggingConfig mirrors logging.Config; kept as a distinct type here so
// config doesn't import logging (logging has no reason to depend on
// config's YAML/TOML tags beyond this struct shape).
type LoggingConfig struct {
	Level        string `yaml:"level" toml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	ReportCaller bool   `yaml:"reportCaller" toml:"reportCaller"`
}

// Default returns the out-of-the-box configuration.
func Default() Config {
	return Config{
		Transport: TransportConfig{Kind: "embed", Command: "nvim", Args: []string{"--embed"}},
		Animation: AnimationConfig{
			ScrollLengthSeconds:   0.3,
			FarScrollLineBudget:   1,
			PositionLengthSeconds: 0.15,
			ScrollbackSnapEpsilon: 0.01,
		},
		Attach: AttachConfig{TimeoutSeconds: 10, Width: 80, Height: 24},
		Logging: LoggingConfig{Level: "info"},
	}
}

func (c AttachConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
