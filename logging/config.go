package logging

// FormatConfig controls what the text formatter includes on each line.
type FormatConfig struct {
	Preset           string `yaml:"preset" toml:"preset"`
	DisableTimestamp bool   `yaml:"disableTimestamp" toml:"disableTimestamp"`
	DisableComponent bool   `yaml:"disableComponent" toml:"disableComponent"`
}

// Config is the logging section of the engine config file.
type Config struct {
	Level        string       `yaml:"level" toml:"level"`
	ReportCaller bool         `yaml:"reportCaller" toml:"reportCaller"`
	Format       FormatConfig `yaml:"format" toml:"format"`
}
