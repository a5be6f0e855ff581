package config

import (
	"flag"
	"strings"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagOut        = flag.String("out", "", "Output directory for generated assets")
	flagPK3        = flag.String("pk3", "", "Pack generated assets into a PK3 archive at this path")
	flagWorkers    = flag.Int("workers", 0, "Parallel generation jobs (0 = all CPUs)")
	flagTexSize    = flag.Int("texture-size", 0, "Texture edge size in pixels")
	flagCharacters = flag.String("characters", "", "Comma-separated character subset to build")
	flagNoSound    = flag.Bool("no-sound", false, "Skip sound generation")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagPK3 != "" {
		cfg.Output.PK3 = *flagPK3
	}
	if *flagWorkers > 0 {
		cfg.Generator.Workers = *flagWorkers
	}
	if *flagTexSize > 0 {
		cfg.Generator.TextureSize = *flagTexSize
	}
	if *flagCharacters != "" {
		cfg.Generator.Characters = splitList(*flagCharacters)
	}
	if *flagNoSound {
		cfg.Sound.Enabled = false
	}
}

// splitList splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
