// Package config loads the finalized system configuration consumed by the
// configuration pass.
package config

import "slices"

const (
	// DefaultStagingDir is where earlier installer stages leave staged files.
	DefaultStagingDir = "/root/installer"

	// DefaultPath is where the installer writes the finalized config.
	DefaultPath = DefaultStagingDir + "/postinstall.yaml"
)

// Config is the finalized description of the target system. It is treated
// as read-only once loaded.
type Config struct {
	System      SystemConfig      `koanf:"system" yaml:"system"`
	Packages    PackagesConfig    `koanf:"packages" yaml:"packages"`
	Shadowsocks ShadowsocksConfig `koanf:"shadowsocks" yaml:"shadowsocks"`
	Installer   InstallerConfig   `koanf:"installer" yaml:"installer"`
}

// SystemConfig describes the target account.
type SystemConfig struct {
	// Username is the non-root user; its home directory must already exist.
	Username string `koanf:"username" yaml:"username"`
}

// PackagesConfig holds the two independent selection sets.
type PackagesConfig struct {
	Pacman []string `koanf:"pacman" yaml:"pacman"`
	VSCode []string `koanf:"vscode" yaml:"vscode"`
}

// ShadowsocksConfig holds proxy credentials for shadowsocks-libev.
type ShadowsocksConfig struct {
	Server     string `koanf:"server" yaml:"server"`
	ServerPort int    `koanf:"server_port" yaml:"server_port,omitempty"`
	Password   string `koanf:"password" yaml:"password"`
}

// InstallerConfig locates the staged files.
type InstallerConfig struct {
	StagingDir string `koanf:"staging_dir" yaml:"staging_dir"`
}

// HasPackage reports whether name is in the pacman selection. Matching is exact.
func (c *Config) HasPackage(name string) bool {
	return slices.Contains(c.Packages.Pacman, name)
}

// HasExtension reports whether id is in the editor extension selection.
func (c *Config) HasExtension(id string) bool {
	return slices.Contains(c.Packages.VSCode, id)
}

// StagingDir returns the staging directory, falling back to the default.
func (c *Config) StagingDir() string {
	if c.Installer.StagingDir == "" {
		return DefaultStagingDir
	}
	return c.Installer.StagingDir
}
