package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const sampleHeader = `# postinstall configuration
#
# packages.pacman selects which configuration routines run; unknown
# names are ignored. packages.vscode lists editor extensions installed
# when "code" is selected. Environment variables prefixed with
# POSTINSTALL_ override any value, using __ for nesting
# (e.g. POSTINSTALL_SYSTEM__USERNAME=alice).
`

// Sample returns the configuration written by WriteSample.
func Sample() *Config {
	return &Config{
		System: SystemConfig{Username: "archuser"},
		Packages: PackagesConfig{
			Pacman: []string{"sudo", "zsh", "networkmanager"},
			VSCode: []string{},
		},
		Installer: InstallerConfig{StagingDir: DefaultStagingDir},
	}
}

// Writer handles writing configuration files.
type Writer struct {
	Fs    afero.Fs
	Force bool
}

// NewWriter creates a config writer on the OS filesystem.
func NewWriter(force bool) *Writer {
	return &Writer{Fs: afero.NewOsFs(), Force: force}
}

// WriteSample writes a sample configuration to path, encoded as YAML or TOML
// according to the extension, so that Load reads it back.
func (w *Writer) WriteSample(path string) error {
	content, err := encodeSample(path)
	if err != nil {
		return err
	}

	if !w.Force {
		exists, err := afero.Exists(w.Fs, path)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
		if exists {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := w.Fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// The file holds the proxy password.
	if err := afero.WriteFile(w.Fs, path, append([]byte(sampleHeader), content...), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := w.Fs.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	return nil
}

func encodeSample(path string) ([]byte, error) {
	content, err := yaml.Marshal(Sample())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sample config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return content, nil
	case ".toml":
		// Go through a generic map so the yaml tags decide the key names.
		var tree map[string]interface{}
		if err := yaml.Unmarshal(content, &tree); err != nil {
			return nil, fmt.Errorf("failed to marshal sample config: %w", err)
		}
		out, err := toml.Parser().Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal sample config as toml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}
