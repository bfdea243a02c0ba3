package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/shockdb/stringspace/internal/clock"
	"github.com/shockdb/stringspace/internal/config"
	"github.com/shockdb/stringspace/internal/pidfile"
	"github.com/shockdb/stringspace/internal/protocol"
	"github.com/shockdb/stringspace/internal/server"
	"github.com/shockdb/stringspace/internal/store"
)

// StartCmd loads configuration, opens (or creates) the data file, and runs
// the TCP server in the foreground until interrupted.
func StartCmd(logger *zap.SugaredLogger, env map[string]string) *Command {
	flags := flag.NewFlagSet("start", flag.ContinueOnError)
	flags.SetInterspersed(false)

	configPath := flags.String("config", "", "Use specified config file")
	dataFile := flags.String("data-file", "", "Override data file path")
	host := flags.String("host", "", "Override listen host")
	port := flags.Int("port", 0, "Override listen port")

	return &Command{
		Flags: flags,
		Usage: "start [--config FILE] [--data-file PATH] [--host H] [--port P]",
		Short: "Load the data file and run the completion server in the foreground.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return runStart(ctx, o, logger, env, *configPath, *dataFile, *host, *port)
		},
	}
}

func runStart(ctx context.Context, o *IO, logger *zap.SugaredLogger, env map[string]string, configPath, dataFile, host string, port int) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}

	override := config.Config{DataFile: dataFile, Host: host, Port: port}

	cfg, sources, err := config.Load(workDir, configPath, override)
	if err != nil {
		return err
	}

	if sources.Global != "" {
		logger.Infow("loaded global config", "path", sources.Global)
	}

	if sources.Project != "" {
		logger.Infow("loaded project config", "path", sources.Project)
	}

	s := store.New(clock.System)

	if err := s.Load(cfg.DataFile); err != nil && !store.IsNotExistErr(err) {
		return fmt.Errorf("loading data file %s: %w", cfg.DataFile, err)
	}

	dispatcher := protocol.NewDispatcher(s, cfg.DataFile, cfg.DefaultLimit, cfg.EchoMetadata)
	srv := server.New(s, dispatcher, logger)

	pidPath := pidfile.Path(packageNameFromEnv(env))
	if err := pidfile.Write(pidPath); err != nil {
		logger.Warnw("failed to write pid file", "path", pidPath, "error", err)
	}

	defer func() { _ = pidfile.Remove(pidPath) }()

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	o.Printf("completiond listening on %s:%d (data file: %s)\n", cfg.Host, cfg.Port, cfg.DataFile)

	err = srv.ListenAndServe(runCtx, cfg.Host, cfg.Port)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func packageNameFromEnv(env map[string]string) string {
	if name, ok := env["COMPLETIOND_PACKAGE_NAME"]; ok && name != "" {
		return name
	}

	return PackageName
}
