package main

import (
	"context"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/ytget/vivid-downloader/internal/config"
	"github.com/ytget/vivid-downloader/internal/extractor"
	"github.com/ytget/vivid-downloader/internal/logging"
)

type extractorFactory func(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (extractor.Extractor, error)

type commandContext struct {
	viper      *viper.Viper
	configFile string
	fs         afero.Fs

	newExtractor extractorFactory

	configOnce sync.Once
	config     *config.Config
	log        *logrus.Logger
	closeLog   func() error
	configErr  error
}

func newCommandContext(v *viper.Viper) *commandContext {
	return &commandContext{
		viper:        v,
		fs:           afero.NewOsFs(),
		newExtractor: extractor.FromConfig,
		closeLog:     func() error { return nil },
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := config.Load(c.viper, c.configFile)
		if err != nil {
			c.configErr = err
			return
		}
		log, closeLog, err := logging.New(c.fs, cfg.Log, os.Stderr)
		if err != nil {
			c.configErr = err
			return
		}
		c.config, c.log, c.closeLog = cfg, log, closeLog
	})
	return c.config, c.configErr
}

func (c *commandContext) extractor(ctx context.Context) (extractor.Extractor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return c.newExtractor(ctx, cfg, c.log)
}

func (c *commandContext) close() error {
	return c.closeLog()
}
