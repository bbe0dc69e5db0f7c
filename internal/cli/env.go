package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/Flyrell/wellnest/internal/config"
	"github.com/Flyrell/wellnest/internal/logging"
	"github.com/Flyrell/wellnest/internal/prescription"
	"github.com/Flyrell/wellnest/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// appEnv is everything a command needs once config and storage are open.
type appEnv struct {
	homeDir string
	cfg     config.Config
	user    string
	log     zerolog.Logger
	svc     *prescription.Service
	closers []func() error
}

// withEnv opens the environment for cmd, runs fn and closes it again.
func withEnv(cmd *cobra.Command, fn func(env *appEnv) error) error {
	homeDir, err := config.ResolveHome()
	if err != nil {
		return err
	}
	env, err := openEnv(cmd, homeDir)
	if err != nil {
		return err
	}
	runErr := fn(env)
	return errors.Join(runErr, env.Close())
}

func openEnv(cmd *cobra.Command, homeDir string) (*appEnv, error) {
	cfg, err := config.Read(homeDir)
	if err != nil {
		return nil, err
	}

	// Both flags are persistent on the root; commands built in isolation lack them.
	verbose, _ := cmd.Flags().GetBool("verbose")
	user, _ := cmd.Flags().GetString("user")
	user = strings.TrimSpace(user)
	if user == "" {
		user = cfg.User
	}

	log, closeLog, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Verbose: verbose,
	}, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(storage.Config{
		Driver: cfg.Storage.Driver,
		Path:   cfg.Storage.Path,
	}, config.WellnestDir(homeDir), log)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &appEnv{
		homeDir: homeDir,
		cfg:     cfg,
		user:    user,
		log:     log,
		svc:     prescription.NewService(store, log),
		closers: []func() error{store.Close, closeLog},
	}, nil
}

func (e *appEnv) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// ctxOf returns the command's context, or Background for commands that were
// never executed through cobra.
func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
