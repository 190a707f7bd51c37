package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/petshop/core/config"
	coretelegram "github.com/m3rciful/petshop/core/telegram"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type app struct {
	started, stopped *bool
}

func (a app) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{
		OnStart: func(context.Context, coretelegram.Runtime) error { *a.started = true; return nil },
		OnStop:  func(context.Context, coretelegram.Runtime) error { *a.stopped = true; return nil },
	}, nil
}

func TestRunWiresLifecycle(t *testing.T) {
	t.Setenv("PETSHOP_TEST_CONFIG", "/etc/petshop.yaml")
	var gotPath string
	var started, stopped, flushed bool

	err := Run(Options{
		ConfigEnvVar: "PETSHOP_TEST_CONFIG",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			gotPath = path
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return app{started: &started, stopped: &stopped}, nil
		},
		ShutdownLogger: func() error { flushed = true; return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "/etc/petshop.yaml", gotPath)
	assert.True(t, started)
	assert.True(t, stopped)
	assert.True(t, flushed)
}

func TestRunEmptyPathMeansEnvironment(t *testing.T) {
	t.Setenv("PETSHOP_TEST_CONFIG", "")
	var gotPath = "unset"
	boom := errors.New("boom")

	err := Run(Options{
		ConfigEnvVar: "PETSHOP_TEST_CONFIG",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			gotPath = path
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) { return nil, boom },
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, gotPath)
}

func TestRunRejectsMissingCoreConfig(t *testing.T) {
	err := Run(Options{
		LoadConfig: func(string) (ConfigCarrier, error) { return carrier{}, nil },
		Bootstrap:  func(context.Context, ConfigCarrier) (TelegramApp, error) { return nil, nil },
	})
	assert.Error(t, err)
}

func TestRunRequiresCallbacks(t *testing.T) {
	assert.Error(t, Run(Options{}))
}
