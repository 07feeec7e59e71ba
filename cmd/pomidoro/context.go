package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"pomidoro/internal/config"
	"pomidoro/internal/ipc"
)

type commandContext struct {
	configFlag *string
	idFlag     *int

	configOnce     sync.Once
	config         *config.Config
	configErr      error
	configResolved string
	configExists   bool
}

func newCommandContext(configFlag *string, idFlag *int) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		idFlag:     idFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configResolved = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// resolvedConfigPath reports where configuration was (or would be) read
// from and whether the file exists.
func (c *commandContext) resolvedConfigPath() (string, bool) {
	_, _ = c.ensureConfig()
	return c.configResolved, c.configExists
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) serverID() int {
	if c.idFlag == nil {
		return 0
	}
	return *c.idFlag
}

func (c *commandContext) validateServerID() error {
	if id := c.serverID(); id < 0 {
		return fmt.Errorf("instance id must not be negative, got %d", id)
	}
	return nil
}

func (c *commandContext) socketPath() string {
	cfg := c.configValue()
	if cfg == nil {
		return ""
	}
	return cfg.ServerSocketPath(c.serverID())
}

func (c *commandContext) client() *ipc.Client {
	return ipc.NewClient(c.socketPath())
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
