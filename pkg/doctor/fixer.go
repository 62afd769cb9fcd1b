package doctor

import (
	"context"
	"fmt"

	"github.com/jaspreet-dot-casa/postinstall/pkg/pacman"
)

// GetFixCommand returns the pacman fix for a tool, or nil for unknown tools.
func GetFixCommand(toolID string) *FixCommand {
	def, ok := toolDefinitions[toolID]
	if !ok {
		return nil
	}

	return &FixCommand{
		Description: "Install " + def.Package + " via pacman",
		Command:     "pacman -S --needed " + def.Package,
		Package:     def.Package,
	}
}

// Fixer installs the packages behind failed checks.
type Fixer struct {
	installer pacman.Installer
}

// NewFixer creates a Fixer that installs through installer.
func NewFixer(installer pacman.Installer) *Fixer {
	return &Fixer{installer: installer}
}

// RunFix installs the package for a single fix.
func (f *Fixer) RunFix(ctx context.Context, fix *FixCommand) error {
	if fix == nil {
		return fmt.Errorf("no fix command available")
	}

	if err := f.installer.Install(ctx, fix.Package); err != nil {
		return fmt.Errorf("fix failed: %w", err)
	}
	return nil
}

// FixAll installs the packages for every missing check in one pacman call.
// It returns the packages it installed.
func (f *Fixer) FixAll(ctx context.Context, groups []CheckGroup) ([]string, error) {
	var pkgs []string
	seen := make(map[string]bool)
	for _, group := range groups {
		for _, check := range group.Checks {
			if check.Status != StatusMissing || check.FixCommand == nil {
				continue
			}
			if pkg := check.FixCommand.Package; !seen[pkg] {
				seen[pkg] = true
				pkgs = append(pkgs, pkg)
			}
		}
	}

	if len(pkgs) == 0 {
		return nil, nil
	}
	if err := f.installer.Install(ctx, pkgs...); err != nil {
		return nil, fmt.Errorf("fix failed: %w", err)
	}
	return pkgs, nil
}
