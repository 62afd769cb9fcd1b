package configurator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/jaspreet-dot-casa/postinstall/pkg/config"
)

const shadowsocksUnit = "ss-local.service"

func configureShadowsocks(ctx context.Context, c *Configurator) error {
	if err := c.moveFile(c.stagedPath(StagedShadowsocksUnit), filepath.Join(SystemdUnitDir, shadowsocksUnit)); err != nil {
		return err
	}

	if err := c.mkdirAll(ShadowsocksConfigDir); err != nil {
		return err
	}
	configPath := filepath.Join(ShadowsocksConfigDir, "config.json")
	if err := c.moveFile(c.stagedPath(StagedShadowsocksConfig), configPath); err != nil {
		return err
	}

	doc, err := afero.ReadFile(c.fs, configPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", configPath, err)
	}
	doc, err = ApplyShadowsocksCredentials(doc, c.cfg.Shadowsocks)
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}
	if err := c.rewriteFile(configPath, doc); err != nil {
		return err
	}

	return c.EnableService(ctx, shadowsocksUnit)
}

// ApplyShadowsocksCredentials sets server and password (and server_port when
// non-zero) in a shadowsocks JSON config. Only the value bytes change; the
// rest of the document is left as-is. Missing keys are added.
func ApplyShadowsocksCredentials(doc []byte, creds config.ShadowsocksConfig) ([]byte, error) {
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		return nil, ErrInvalidTemplate
	}

	out, err := sjson.SetBytes(doc, "server", creds.Server)
	if err != nil {
		return nil, fmt.Errorf("set server: %w", err)
	}
	out, err = sjson.SetBytes(out, "password", creds.Password)
	if err != nil {
		return nil, fmt.Errorf("set password: %w", err)
	}
	if creds.ServerPort != 0 {
		out, err = sjson.SetBytes(out, "server_port", creds.ServerPort)
		if err != nil {
			return nil, fmt.Errorf("set server_port: %w", err)
		}
	}
	return out, nil
}
