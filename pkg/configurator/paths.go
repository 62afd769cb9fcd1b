package configurator

// Fixed locations on the target system.
const (
	HomeBase             = "/home"
	SudoersPath          = "/etc/sudoers"
	SystemdUnitDir       = "/etc/systemd/system"
	ShadowsocksConfigDir = "/etc/shadowsocks-libev"
	RootCodeUserDir      = "/root/.config/Code - OSS/User"
	LoginShell           = "/bin/zsh"

	codeUserSubdir = "Code - OSS/User"
)

// Staged file names, relative to the installer staging directory.
const (
	StagedZshrc             = "zshrc"
	StagedCodeRootSettings  = "vscode_root.json"
	StagedCodeUserSettings  = "vscode.json"
	StagedShadowsocksUnit   = "ss-local.service"
	StagedShadowsocksConfig = "ss-config.json"
)
