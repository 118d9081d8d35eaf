package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nwidger/psxcore/internal/psxerr"
)

// Config is the subset of host configuration the core requires.
type Config struct {
	BIOSPath    string `yaml:"bios_path"`
	GDBEnable   bool   `yaml:"gdb_enable"`
	GDBPort     int    `yaml:"gdb_port"`
}

// Default returns a Config with the core's documented defaults (GDB stub
// disabled, conventional RSP port).
func Default() Config {
	return Config{GDBPort: 1234}
}

// Load reads and parses a YAML configuration file at path. A missing file
// is not an error; Default() is returned instead. The core only ever
// fails hard on a BIOS load problem.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, psxerr.Errorf("config: %v", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, psxerr.Errorf("config: %v", err)
	}
	return cfg, nil
}
