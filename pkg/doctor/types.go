// Package doctor checks that the target system can run a configuration pass.
package doctor

// CheckStatus represents the status of a dependency check.
type CheckStatus int

const (
	// StatusOK indicates the dependency is present.
	StatusOK CheckStatus = iota
	// StatusMissing indicates the dependency is not installed.
	StatusMissing
	// StatusError indicates an error occurred during the check.
	StatusError
	// StatusWarning indicates the pass may still work.
	StatusWarning
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusError:
		return "error"
	case StatusWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Check represents a single check result.
type Check struct {
	ID          string      // Unique identifier, e.g., "git", "root"
	Name        string      // Display name
	Description string      // What this is needed for
	Status      CheckStatus // Current status
	Message     string      // Status message (path, error, etc.)
	RequiredBy  []string    // Trigger packages that need it
	FixCommand  *FixCommand // How to fix if missing (nil if not fixable)
}

// FixCommand describes how to fix a missing tool.
type FixCommand struct {
	Description string // Human-readable description of what the fix does
	Command     string // Shell command to run
	Package     string // pacman package that provides the tool
}

// CheckGroup represents a group of related checks.
type CheckGroup struct {
	ID          string
	Name        string
	Description string
	Checks      []Check
}

// GroupID constants for check groups.
const (
	GroupTools  = "tools"
	GroupSystem = "system"
)

// CheckID constants for the system checks.
const (
	IDRoot       = "root"
	IDStagingDir = "staging-dir"
)
