package cli

import (
	"context"
	"errors"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/shockdb/stringspace/internal/pidfile"
)

// StopCmd signals a running completiond instance to shut down gracefully
// and waits briefly for its PID file to disappear.
func StopCmd() *Command {
	flags := flag.NewFlagSet("stop", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "stop",
		Short: "Stop a running completiond instance.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return runStop(o)
		},
	}
}

func runStop(o *IO) error {
	path := pidfile.Path(PackageName)

	pid, err := pidfile.ReadAlive(path)
	if err != nil {
		if errors.Is(err, pidfile.ErrNotRunning) {
			o.Println("not running")
			return nil
		}

		return err
	}

	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		return err
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if !pidfile.Alive(pid) {
			o.Printf("stopped (pid %d)\n", pid)
			return nil
		}

		time.Sleep(50 * time.Millisecond)
	}

	o.Printf("pid %d did not exit within 5s\n", pid)

	return nil
}
