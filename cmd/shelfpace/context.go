package main

import (
	"context"
	"strings"
	"sync"

	"shelfpace/internal/book"
	"shelfpace/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore opens the library database for the duration of fn. Commands share
// this path so the flock is always released.
func (c *commandContext) withStore(ctx context.Context, fn func(context.Context, *book.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := book.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(ctx, store)
}
