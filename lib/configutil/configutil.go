package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// layers returns the config files to merge, lowest priority first. A
// sibling `<name>.local.<ext>` file overrides the base file so
// machine-local settings (API keys, db paths) stay out of version
// control.
func layers(name string) []string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext)
	return []string{
		name,
		filepath.Join(filepath.Dir(name), fmt.Sprintf("%s.local%s", prefix, ext)),
	}
}

// ReadConfig reads a json5 configuration file, `name` should come with a
// file extension. Returns os.ErrNotExist when neither the file nor a
// local override exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	for i, path := range layers(name) {
		contents, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return out, err
		}

		var layer T
		err = json5.Unmarshal(contents, &layer)
		if err != nil {
			return out, fmt.Errorf("parse %s: %w", path, err)
		}
		if i > 0 {
			slog.Info("merging config with local overrides", "local", path)
		}
		err = mergo.Merge(&out, layer, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is ReadConfig but it walks up the filesystem from the
// cwd until it finds a configuration file matching the name. Lets the CLI
// run from anywhere inside the repository.
func ReadRecursively[T any](name string) (T, error) {
	var defaultOut T

	root, err := filepath.Abs("/")
	if err != nil {
		return defaultOut, err
	}
	current, err := os.Getwd()
	if err != nil {
		return defaultOut, err
	}

	for current != root {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if os.IsNotExist(err) {
			current = filepath.Join(current, "..")
			continue
		}
		if err != nil {
			return defaultOut, err
		}

		return config, nil
	}

	return defaultOut, os.ErrNotExist
}
