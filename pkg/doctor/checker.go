package doctor

import (
	"os"

	"github.com/spf13/afero"

	"github.com/jaspreet-dot-casa/postinstall/pkg/config"
	"github.com/jaspreet-dot-casa/postinstall/pkg/configurator"
	"github.com/jaspreet-dot-casa/postinstall/pkg/executor"
)

// Checker checks the tools and system state a configuration pass needs.
type Checker struct {
	cfg      *config.Config
	runner   executor.CommandRunner
	fs       afero.Fs
	registry *configurator.Registry
	euid     func() int
}

// NewChecker creates a Checker for the real system.
func NewChecker(cfg *config.Config, runner executor.CommandRunner) *Checker {
	return &Checker{
		cfg:      cfg,
		runner:   runner,
		fs:       afero.NewOsFs(),
		registry: configurator.DefaultRegistry(),
		euid:     os.Geteuid,
	}
}

// NewCheckerWith creates a Checker with custom dependencies (for testing).
func NewCheckerWith(cfg *config.Config, runner executor.CommandRunner, fs afero.Fs, euid func() int) *Checker {
	return &Checker{
		cfg:      cfg,
		runner:   runner,
		fs:       fs,
		registry: configurator.DefaultRegistry(),
		euid:     euid,
	}
}

// RequiredTools returns the tools needed by the selected routines, in
// dispatch order, mapped to the packages that need them.
func (c *Checker) RequiredTools() ([]string, map[string][]string) {
	var tools []string
	requiredBy := make(map[string][]string)

	for _, routine := range c.registry.Routines {
		if !c.cfg.HasPackage(routine.Package) {
			continue
		}
		for _, tool := range routine.Tools {
			if _, ok := requiredBy[tool]; !ok {
				tools = append(tools, tool)
			}
			requiredBy[tool] = append(requiredBy[tool], routine.Package)
		}
	}
	return tools, requiredBy
}

// CheckAll runs the system checks and a check for every required tool.
func (c *Checker) CheckAll() []CheckGroup {
	system := CheckGroup{
		ID:          GroupSystem,
		Name:        "System",
		Description: "State of the target system",
		Checks: []Check{
			CheckRoot(c.euid()),
			CheckStagingDir(c.fs, c.cfg.StagingDir()),
		},
	}

	tools := CheckGroup{
		ID:          GroupTools,
		Name:        "Tools",
		Description: "Binaries invoked by the selected routines",
	}
	names, requiredBy := c.RequiredTools()
	for _, tool := range names {
		check := CheckTool(c.runner, tool)
		check.RequiredBy = requiredBy[tool]
		tools.Checks = append(tools.Checks, check)
	}

	return []CheckGroup{system, tools}
}

// Summary represents an overall health summary.
type Summary struct {
	Total    int
	OK       int
	Missing  int
	Warnings int
	Errors   int
}

// GetSummary returns a summary of check results.
func GetSummary(groups []CheckGroup) Summary {
	var summary Summary

	for _, group := range groups {
		for _, check := range group.Checks {
			summary.Total++
			switch check.Status {
			case StatusOK:
				summary.OK++
			case StatusMissing:
				summary.Missing++
			case StatusWarning:
				summary.Warnings++
			case StatusError:
				summary.Errors++
			}
		}
	}

	return summary
}

// HasIssues returns true if any checks have issues.
func HasIssues(groups []CheckGroup) bool {
	summary := GetSummary(groups)
	return summary.Missing > 0 || summary.Errors > 0
}
