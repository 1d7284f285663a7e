package config

import (
	"fmt"
	"path/filepath"
	"strings"

	configKit "github.com/gookit/config/v2"
	"github.com/gookit/config/v2/yaml"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

// Load reads federation settings from path. The format follows the file
// extension: .cue, .yaml, .yml or .json. Fields missing from YAML and JSON
// files keep their Default values.
func Load(path string) (Federation, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return LoadCUE(path)
	case ".yaml", ".yml", ".json":
		return loadKit(path)
	default:
		return Federation{}, fmt.Errorf("unsupported config format %q", ext)
	}
}

// LoadEnvFiles adds the variables of the given dotenv files to the process
// environment so that ${VAR|default} references can see them. Variables
// already set are left alone.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

func loadKit(path string) (Federation, error) {
	c := configKit.NewWithOptions("federation", configKit.ParseEnv, func(opt *configKit.Options) {
		opt.TagName = "mapstructure"
		// Expanded env values arrive as strings and must still bind to numbers.
		opt.DecoderConfig = &mapstructure.DecoderConfig{WeaklyTypedInput: true}
	})
	c.AddDriver(yaml.Driver)

	if err := c.LoadFiles(path); err != nil {
		return Federation{}, fmt.Errorf("load config %s: %w", path, err)
	}

	key := ""
	if c.Exists("federation") {
		key = "federation"
	}

	f := Default()
	if err := c.BindStruct(key, &f); err != nil {
		return Federation{}, fmt.Errorf("bind config %s: %w", path, err)
	}
	return f, nil
}
