// Package configurator applies per-package configuration to a freshly
// installed system. Each selected trigger package runs a fixed routine;
// the first failure stops the pass.
package configurator

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jaspreet-dot-casa/postinstall/pkg/config"
	"github.com/jaspreet-dot-casa/postinstall/pkg/executor"
	"github.com/jaspreet-dot-casa/postinstall/pkg/logging"
	"github.com/jaspreet-dot-casa/postinstall/pkg/pacman"
)

// Options configures a Configurator. Zero fields fall back to the real system.
type Options struct {
	Runner    executor.CommandRunner
	Installer pacman.Installer
	Fs        afero.Fs
	Registry  *Registry
	Logger    *zerolog.Logger
}

// Report summarizes a configuration pass.
type Report struct {
	RunID string

	// Configured lists packages whose routine completed, in order.
	Configured []string

	// FailedExtensions lists editor extensions whose install exited non-zero.
	FailedExtensions []string

	Duration time.Duration
}

// Configurator runs the routines for the selected packages. It is not safe
// for concurrent use.
type Configurator struct {
	cfg       *config.Config
	runner    executor.CommandRunner
	installer pacman.Installer
	fs        afero.Fs
	registry  *Registry
	logger    zerolog.Logger

	// set for the duration of Run
	report *Report
	log    zerolog.Logger
}

// New creates a Configurator for cfg.
func New(cfg *config.Config, opts Options) *Configurator {
	logger := logging.GetLogger("configurator")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	runner := opts.Runner
	if runner == nil {
		runner = executor.NewRealRunner(logger)
	}

	installer := opts.Installer
	if installer == nil {
		installer = pacman.New(runner)
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	return &Configurator{
		cfg:       cfg,
		runner:    runner,
		installer: installer,
		fs:        fs,
		registry:  registry,
		logger:    logger,
		log:       logger,
		report:    &Report{},
	}
}

// Plan returns the routines Run would invoke, in dispatch order.
func (c *Configurator) Plan() []Routine {
	var plan []Routine
	for _, routine := range c.registry.Routines {
		if c.cfg.HasPackage(routine.Package) {
			plan = append(plan, routine)
		}
	}
	return plan
}

// Run executes every planned routine in order. It stops at the first failure
// and returns a *RoutineError alongside the partial report.
func (c *Configurator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	c.report = &Report{RunID: uuid.NewString()}
	runLog := c.logger.With().Str("run_id", c.report.RunID).Logger()

	defer func() {
		c.report.Duration = time.Since(start)
		c.log = c.logger
	}()

	for _, routine := range c.Plan() {
		c.log = runLog.With().Str("package", routine.Package).Logger()
		c.log.Info().Msg("Configuring package")

		if err := routine.Configure(ctx, c); err != nil {
			c.log.Error().Err(err).Msg("Configuration failed")
			return c.report, &RoutineError{Package: routine.Package, Err: err}
		}

		c.report.Configured = append(c.report.Configured, routine.Package)
		c.log.Debug().Msg("Package configured")
	}

	runLog.Info().
		Strs("configured", c.report.Configured).
		Dur("duration", time.Since(start)).
		Msg("Configuration pass complete")

	return c.report, nil
}

// RequiredPaths lists the pre-existing files and directories the planned
// routines read or write into: staged files, /etc/sudoers, the user's home
// directory and the directories the routines create inside it.
func (c *Configurator) RequiredPaths() []string {
	var paths []string
	needsHome := false

	for _, routine := range c.Plan() {
		for _, name := range routine.Staged {
			paths = append(paths, c.stagedPath(name))
		}
		switch routine.Package {
		case "sudo":
			paths = append(paths, SudoersPath)
		case "zsh":
			paths = append(paths, c.HomePath(".zshrc"))
			for _, repo := range zshRepos {
				paths = append(paths, c.HomePath(repo.Dest))
			}
		case "code":
			paths = append(paths, RootCodeUserDir, c.HomePath(".config"))
		}
		needsHome = needsHome || routine.NeedsUser
	}

	if needsHome {
		paths = append(paths, c.HomePath())
	}
	return paths
}

func (c *Configurator) stagedPath(name string) string {
	return filepath.Join(c.cfg.StagingDir(), name)
}
