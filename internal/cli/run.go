package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PackageName is the build-time package name spec.md §6 says is used only
// to derive the PID-file path. Overridable via -ldflags
// "-X .../internal/cli.PackageName=...".
var PackageName = "completiond"

// Run is completiond's entry point. Returns the process exit code.
// sigCh may be nil if signal handling isn't needed (e.g. in tests).
func Run(_ io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	logger := newLogger(errOut)
	defer func() { _ = logger.Sync() }()

	commands := allCommands(logger.Sugar(), env)

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	cmdIO := NewIO(out, errOut)

	if len(args) < 2 {
		printUsage(out, commands)
		return 0
	}

	if args[1] == "--help" || args[1] == "-h" {
		printUsage(out, commands)
		return 0
	}

	cmd, ok := commandMap[args[1]]
	if !ok {
		fmt.Fprintln(errOut, "error: unknown command:", args[1])
		printUsage(errOut, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)

	go func() {
		done <- cmd.Run(ctx, cmdIO, args[2:])
	}()

	select {
	case exitCode := <-done:
		return exitCode
	case <-sigCh:
		fmt.Fprintln(errOut, "shutting down with 5s timeout...")
		cancel()
	}

	select {
	case <-done:
		fmt.Fprintln(errOut, "graceful shutdown ok (130)")
		return 130
	case <-time.After(5 * time.Second):
		fmt.Fprintln(errOut, "graceful shutdown timed out, forced exit (130)")
		return 130
	case <-sigCh:
		fmt.Fprintln(errOut, "graceful shutdown interrupted, forced exit (130)")
		return 130
	}
}

func allCommands(logger *zap.SugaredLogger, env map[string]string) []*Command {
	return []*Command{
		StartCmd(logger, env),
		StatusCmd(),
		StopCmd(),
		RestartCmd(),
		BenchmarkCmd(),
	}
}

func printUsage(w io.Writer, commands []*Command) {
	fmt.Fprintln(w, "Usage: completiond <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	for _, cmd := range commands {
		fmt.Fprintln(w, cmd.HelpLine())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'completiond <command> --help' for flags.")
}

// newLogger builds a production-style JSON logger writing to errOut, so
// that stdout stays reserved for command output (status reports, etc).
func newLogger(errOut io.Writer) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	encoder := zapcore.NewJSONEncoder(cfg)
	sink := zapcore.AddSync(errOut)
	core := zapcore.NewCore(encoder, sink, zapcore.InfoLevel)

	return zap.New(core)
}
