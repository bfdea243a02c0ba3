package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/shockdb/stringspace/internal/pidfile"
)

// StatusCmd reports whether a completiond instance is running, per the
// PID-file-based process glue spec.md §6 describes as external collaborator
// machinery.
func StatusCmd() *Command {
	flags := flag.NewFlagSet("status", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "status",
		Short: "Report whether completiond is running.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			pid, err := pidfile.ReadAlive(pidfile.Path(PackageName))
			if err != nil {
				if errors.Is(err, pidfile.ErrNotRunning) {
					o.Println("not running")
					return nil
				}

				return err
			}

			o.Printf("running (pid %d)\n", pid)

			return nil
		},
	}
}
