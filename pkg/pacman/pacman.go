// Package pacman installs system packages through the Arch package manager.
package pacman

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaspreet-dot-casa/postinstall/pkg/executor"
)

// Installer installs system packages.
type Installer interface {
	Install(ctx context.Context, pkgs ...string) error
}

// Pacman installs packages with pacman.
type Pacman struct {
	runner executor.CommandRunner
}

// New creates a Pacman installer backed by runner.
func New(runner executor.CommandRunner) *Pacman {
	return &Pacman{runner: runner}
}

// Install runs `pacman -S --needed --noconfirm` for pkgs. An empty list is a no-op.
func (p *Pacman) Install(ctx context.Context, pkgs ...string) error {
	if len(pkgs) == 0 {
		return nil
	}

	args := append([]string{"-S", "--needed", "--noconfirm"}, pkgs...)
	if err := p.runner.Run(ctx, "pacman", args...); err != nil {
		return fmt.Errorf("pacman install %s: %w", strings.Join(pkgs, " "), err)
	}
	return nil
}
