package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/keyring"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/storage/postgres"
)

func parseSecret(name string) (keyring.Secret, error) {
	switch name {
	case "connection-string":
		return keyring.ConnectionString, nil
	case "redis-password":
		return keyring.RedisPassword, nil
	}
	return "", fmt.Errorf("unknown secret %q (connection-string or redis-password)", name)
}

type ConfigSetCmd struct {
	Name  string `arg:"" help:"Secret name (connection-string|redis-password)." enum:"connection-string,redis-password"`
	Value string `arg:"" optional:"" help:"Secret value; read from stdin when omitted."`
}

func (c *ConfigSetCmd) Run(ctx *Context) error {
	secret, err := parseSecret(c.Name)
	if err != nil {
		return err
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}

	value := c.Value
	if value == "" {
		ctx.printf("Enter %s: ", c.Name)
		line, err := bufio.NewReader(ctx.in()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read value: %w", err)
		}
		value = strings.TrimSpace(line)
	}
	if value == "" {
		return fmt.Errorf("empty value for %s", c.Name)
	}
	if secret == keyring.ConnectionString && !postgres.IsURL(value) && !strings.Contains(value, "host=") {
		return fmt.Errorf("connection string must be a postgres:// URL or a key=value DSN")
	}

	if err := keyring.Set(secret, value); err != nil {
		return err
	}
	ctx.printf("✓ Stored %s in the OS keyring\n", c.Name)
	return nil
}

type ConfigDeleteCmd struct {
	Name string `arg:"" help:"Secret name (connection-string|redis-password)." enum:"connection-string,redis-password"`
}

func (c *ConfigDeleteCmd) Run(ctx *Context) error {
	secret, err := parseSecret(c.Name)
	if err != nil {
		return err
	}
	if err := keyring.Delete(secret); err != nil {
		return err
	}
	ctx.printf("✓ Removed %s from the OS keyring\n", c.Name)
	return nil
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	ctx.printf("Store:       %s (%s)\n", ctx.Medium.GetConfigPath(), ctx.Kind)
	ctx.printf("Config dir:  %s\n", ctx.ConfigDir)
	ctx.printf("Timezone:    %s\n", ctx.location())
	ctx.printf("Debug:       %t\n", ctx.Config.Debug)
	if path := logger.Path(); path != "" {
		ctx.printf("Log file:    %s\n", path)
	}
	ctx.printf("Keyring:     %s\n", availability(keyring.IsAvailable()))
	return nil
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "unavailable"
}
