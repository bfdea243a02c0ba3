package cli

import (
	"context"
	"os"
	"os/exec"

	flag "github.com/spf13/pflag"
)

// RestartCmd stops a running instance, if any, then re-execs the binary
// with "start" — thin glue, no core logic, per spec.md §6.
func RestartCmd() *Command {
	flags := flag.NewFlagSet("restart", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "restart",
		Short: "Restart completiond (stop, then start in the background).",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if err := runStop(o); err != nil {
				return err
			}

			exe, err := os.Executable()
			if err != nil {
				return err
			}

			cmd := exec.Command(exe, append([]string{"start"}, args...)...) //nolint:gosec
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			cmd.Stdin = nil

			if err := cmd.Start(); err != nil {
				return err
			}

			o.Printf("restarted (pid %d)\n", cmd.Process.Pid)

			return nil
		},
	}
}
