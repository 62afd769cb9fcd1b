package configurator

import (
	"context"
	"fmt"
)

// Routine is the fixed configuration sequence for one trigger package.
type Routine struct {
	// Package is the trigger package identifier, matched exactly.
	Package string

	Description string

	// Staged lists files the routine moves out of the staging directory.
	Staged []string

	// Tools lists the binaries the routine invokes directly.
	Tools []string

	// NeedsUser is set when the routine writes into the target user's home.
	NeedsUser bool

	Configure func(ctx context.Context, c *Configurator) error
}

// Registry holds routines in dispatch order.
// Note: Registry is not thread-safe and should not be modified concurrently.
type Registry struct {
	// Routines is the ordered dispatch list
	Routines []Routine

	// ByName provides lookup by trigger package (stores copies, not pointers)
	ByName map[string]Routine
}

// NewRegistry creates an empty routine registry.
func NewRegistry() *Registry {
	return &Registry{
		Routines: make([]Routine, 0, 9),
		ByName:   make(map[string]Routine),
	}
}

// Add appends a routine. Each package may be registered once.
func (r *Registry) Add(routine Routine) error {
	if routine.Package == "" {
		return fmt.Errorf("routine has no package name")
	}
	if routine.Configure == nil {
		return fmt.Errorf("routine %s has no Configure func", routine.Package)
	}
	if _, ok := r.ByName[routine.Package]; ok {
		return fmt.Errorf("routine %s already registered", routine.Package)
	}

	r.Routines = append(r.Routines, routine)
	r.ByName[routine.Package] = routine
	return nil
}

// Get returns a routine by package name, or nil if not found.
func (r *Registry) Get(name string) *Routine {
	if routine, ok := r.ByName[name]; ok {
		return &routine
	}
	return nil
}

// Names returns the registered package names in dispatch order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Routines))
	for i, routine := range r.Routines {
		names[i] = routine.Package
	}
	return names
}

// DefaultRegistry returns the supported trigger packages in dispatch order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, routine := range defaultRoutines() {
		if err := r.Add(routine); err != nil {
			panic(err)
		}
	}
	return r
}

func defaultRoutines() []Routine {
	return []Routine{
		{
			Package:     "sudo",
			Description: "Grant the user full sudo rights in /etc/sudoers",
			NeedsUser:   true,
			Configure:   configureSudo,
		},
		{
			Package:     "zsh",
			Description: "Make zsh the login shell and install oh-my-zsh with plugins",
			Staged:      []string{StagedZshrc},
			Tools:       []string{"chsh", "chown", "git"},
			NeedsUser:   true,
			Configure:   configureZsh,
		},
		{
			Package:     "code",
			Description: "Install fonts, editor settings and extensions",
			Staged:      []string{StagedCodeRootSettings, StagedCodeUserSettings},
			Tools:       []string{"pacman", "chown", "su", "code"},
			NeedsUser:   true,
			Configure:   configureCode,
		},
		{
			Package:     "shadowsocks-libev",
			Description: "Install the ss-local unit and proxy credentials",
			Staged:      []string{StagedShadowsocksUnit, StagedShadowsocksConfig},
			Tools:       []string{"systemctl"},
			Configure:   configureShadowsocks,
		},
		{
			Package:     "gvfs-google",
			Description: "Install gnome-keyring for Google account storage",
			Tools:       []string{"pacman"},
			Configure:   configureGvfsGoogle,
		},
		{
			Package:     "virt-manager",
			Description: "Install libvirt networking dependencies and enable libvirtd",
			Tools:       []string{"pacman", "systemctl"},
			Configure:   configureVirtManager,
		},
		{
			Package:     "dhcpcd",
			Description: "Enable dhcpcd.service",
			Tools:       []string{"systemctl"},
			Configure:   enableServiceRoutine("dhcpcd.service"),
		},
		{
			Package:     "gdm",
			Description: "Enable gdm.service",
			Tools:       []string{"systemctl"},
			Configure:   enableServiceRoutine("gdm.service"),
		},
		{
			Package:     "networkmanager",
			Description: "Enable NetworkManager.service",
			Tools:       []string{"systemctl"},
			Configure:   enableServiceRoutine("NetworkManager.service"),
		},
	}
}
