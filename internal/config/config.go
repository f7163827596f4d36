/* ============================================================= *\
   config.go

   Configuration loading: defaults, then an optional YAML file,
   then RESILCALC_-prefixed environment variables, in that order
   of increasing precedence.
\* ============================================================= */

package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "RESILCALC_"

// Config holds everything a resilcalc run needs: the two CAIDA-style
// input files and the logging sink.
type Config struct {
	AsRelFile string    `koanf:"as_rel_file"`
	Ip2AsFile string    `koanf:"ip_asn_file"`
	Log       LogConfig `koanf:"log"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

// Load reads configPath (if non-empty) as YAML, applies environment
// overrides, and returns the merged configuration. configPath is
// optional: an empty path just skips the file layer, while a path that
// cannot be read is an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"log.level": "info",
		"log.file":  "",
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: %s: %w", configPath, err)
		}
	}

	// RESILCALC_LOG_LEVEL -> log.level; RESILCALC_AS_REL_FILE -> as_rel_file.
	transform := func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		if rest, ok := strings.CutPrefix(key, "log_"); ok {
			return "log." + rest
		}
		return key
	}
	if err := k.Load(env.Provider(envPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
