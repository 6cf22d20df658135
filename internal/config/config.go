// Package config loads the optional per-project configuration file for
// drupal-require-core.
//
// A project may ship a .drupal-require-core.yml next to its composer.json
// to record the command prefix its environment needs (e.g. "lando" or
// "docker compose exec app"), so operators don't have to remember it on
// every invocation. The positional command-prefix argument always wins
// over the file.
//
// The file is read with gopkg.in/yaml.v3 in strict mode: unknown keys are
// an error, so typos surface instead of being silently ignored.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the optional configuration file looked up in the project
// directory.
const FileName = ".drupal-require-core.yml"

// ProjectConfig holds the settings a project can declare in its
// configuration file.
type ProjectConfig struct {
	// CommandPrefix is the default prefix prepended to every external
	// command when no positional prefix argument is given.
	CommandPrefix string `yaml:"command-prefix"`
}

// Load reads the project configuration from the given directory.
//
// Returns (nil, nil) when the file does not exist; the file is optional
// and its absence is not an error. A present but unparseable file is an
// error, since running with a silently ignored prefix could execute the
// plan in the wrong environment.
func Load(projectDir string) (*ProjectConfig, error) {
	path := filepath.Join(projectDir, FileName)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	// Strict decoding: unknown keys in the file are rejected.
	dec.KnownFields(true)

	var cfg ProjectConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}
