// Package config handles asset generator configuration loading and management.
package config

// Config holds all generator settings.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Generator GeneratorConfig `yaml:"generator"`
	Sound     SoundConfig     `yaml:"sound"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// OutputConfig controls where generated assets land.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // Root of the loose asset tree
	PK3      string `yaml:"pk3"`      // Archive path; empty writes loose files
	Manifest bool   `yaml:"manifest"` // Write manifest.json alongside the assets
}

// GeneratorConfig holds model and texture generation settings.
type GeneratorConfig struct {
	Characters  []string `yaml:"characters"`   // Subset to build; empty builds all
	TextureSize int      `yaml:"texture_size"` // Square texture edge in pixels
	RLETextures bool     `yaml:"rle_textures"` // Write RLE compressed TGAs
	Workers     int      `yaml:"workers"`      // Parallel jobs; 0 uses all CPUs
}

// SoundConfig holds sound synthesis settings.
type SoundConfig struct {
	SampleRate int  `yaml:"sample_rate"`
	Enabled    bool `yaml:"enabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:      "assets",
			PK3:      "",
			Manifest: true,
		},
		Generator: GeneratorConfig{
			Characters:  nil,
			TextureSize: 256,
			RLETextures: false,
			Workers:     0,
		},
		Sound: SoundConfig{
			SampleRate: 22050,
			Enabled:    true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
