// Package validation checks a loaded configuration against the target
// filesystem before a configuration pass.
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/jaspreet-dot-casa/postinstall/pkg/config"
	"github.com/jaspreet-dot-casa/postinstall/pkg/configurator"
)

// Severity represents the severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a validation issue. Field is the dotted config key it
// relates to, Path the filesystem path if any.
type Issue struct {
	Field    string   `json:"field,omitempty"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds all validation results.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if there are any error-level issues.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			count++
		}
	}
	return count
}

func (r *Result) add(severity Severity, field, path, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Field:    field,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: severity,
	})
}

// usernameRegex follows useradd's default NAME_REGEX.
var usernameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)

// Validator checks a configuration against a filesystem.
type Validator struct {
	Fs       afero.Fs
	Registry *configurator.Registry
}

// NewValidator creates a Validator for the default routines.
func NewValidator(fs afero.Fs) *Validator {
	return &Validator{Fs: fs, Registry: configurator.DefaultRegistry()}
}

// Validate runs every rule and returns the collected issues.
func (v *Validator) Validate(cfg *config.Config) *Result {
	result := &Result{Issues: []Issue{}}

	planned := v.planned(cfg)

	v.validateUser(cfg, planned, result)
	v.validateStagedFiles(cfg, planned, result)
	if _, ok := planned["sudo"]; ok {
		v.requireFile(configurator.SudoersPath, "packages.pacman", "sudo is selected but %s does not exist", result)
	}
	if _, ok := planned["shadowsocks-libev"]; ok {
		validateShadowsocks(cfg.Shadowsocks, result)
	}
	v.validateSelection(cfg, planned, result)

	return result
}

func (v *Validator) planned(cfg *config.Config) map[string]configurator.Routine {
	planned := make(map[string]configurator.Routine)
	for _, routine := range v.Registry.Routines {
		if cfg.HasPackage(routine.Package) {
			planned[routine.Package] = routine
		}
	}
	return planned
}

func (v *Validator) validateUser(cfg *config.Config, planned map[string]configurator.Routine, result *Result) {
	var needsUser []string
	for _, name := range v.Registry.Names() {
		if routine, ok := planned[name]; ok && routine.NeedsUser {
			needsUser = append(needsUser, name)
		}
	}

	username := cfg.System.Username
	if username == "" {
		if len(needsUser) > 0 {
			result.add(SeverityError, "system.username", "",
				"system.username is required by %s", strings.Join(needsUser, ", "))
		}
		return
	}

	if !usernameRegex.MatchString(username) {
		result.add(SeverityError, "system.username", "",
			"invalid username %q: must start with a lowercase letter or underscore", username)
		return
	}

	if len(needsUser) > 0 {
		home := filepath.Join(configurator.HomeBase, username)
		isDir, err := afero.IsDir(v.Fs, home)
		if err != nil || !isDir {
			result.add(SeverityError, "system.username", home, "home directory %s does not exist", home)
		}
	}
}

func (v *Validator) validateStagedFiles(cfg *config.Config, planned map[string]configurator.Routine, result *Result) {
	for _, name := range v.Registry.Names() {
		routine, ok := planned[name]
		if !ok {
			continue
		}
		for _, staged := range routine.Staged {
			path := filepath.Join(cfg.StagingDir(), staged)
			v.requireFile(path, "installer.staging_dir", name+" needs staged file %s", result)
		}
	}
}

func (v *Validator) requireFile(path, field, format string, result *Result) {
	exists, err := afero.Exists(v.Fs, path)
	if err != nil || !exists {
		result.add(SeverityError, field, path, format, path)
	}
}

func validateShadowsocks(ss config.ShadowsocksConfig, result *Result) {
	if strings.TrimSpace(ss.Server) == "" {
		result.add(SeverityError, "shadowsocks.server", "", "shadowsocks.server is required when shadowsocks-libev is selected")
	}
	if ss.Password == "" {
		result.add(SeverityError, "shadowsocks.password", "", "shadowsocks.password is required when shadowsocks-libev is selected")
	}
	if ss.ServerPort < 0 || ss.ServerPort > 65535 {
		result.add(SeverityError, "shadowsocks.server_port", "", "shadowsocks.server_port must be between 0 (keep the template port) and 65535, got %d", ss.ServerPort)
	}
}

// validateSelection warns about selections that look intended but will not
// trigger anything.
func (v *Validator) validateSelection(cfg *config.Config, planned map[string]configurator.Routine, result *Result) {
	seen := make(map[string]bool)
	for _, pkg := range cfg.Packages.Pacman {
		if seen[pkg] {
			result.add(SeverityWarning, "packages.pacman", "", "%s is listed more than once", pkg)
			continue
		}
		seen[pkg] = true

		if _, ok := planned[pkg]; ok {
			continue
		}
		for _, name := range v.Registry.Names() {
			if strings.EqualFold(pkg, name) {
				result.add(SeverityWarning, "packages.pacman", "",
					"%s does not match trigger %s (matching is case-sensitive)", pkg, name)
				break
			}
		}
	}

	if _, ok := planned["code"]; !ok && len(cfg.Packages.VSCode) > 0 {
		result.add(SeverityWarning, "packages.vscode", "",
			"%d extension(s) configured but code is not selected; they will not be installed", len(cfg.Packages.VSCode))
	}
}
