// Package pidfile implements the thin PID-file glue spec.md §6 describes as
// external collaborator machinery: writing/reading/removing a PID file and
// checking whether the recorded process is still alive. None of this is
// core completion-engine logic.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

var (
	// ErrNotRunning is returned when no PID file exists or the process it
	// names is no longer alive.
	ErrNotRunning = errors.New("pidfile: not running")

	errCorrupt = errors.New("pidfile: corrupt pid file")
)

// Path derives the PID file location from packageName, the build-time
// package-name value spec.md §6 says is used "only to derive a PID-file
// path". Defaults to $TMPDIR/<packageName>.pid.
func Path(packageName string) string {
	return filepath.Join(os.TempDir(), packageName+".pid")
}

// Write records the current process's PID at path.
func Write(path string) error {
	data := strconv.Itoa(os.Getpid())
	return os.WriteFile(path, []byte(data), 0o644) //nolint:gosec
}

// Remove deletes the PID file at path, ignoring a missing file.
func Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// Read returns the PID recorded at path. Returns ErrNotRunning if the file
// is absent, or errCorrupt if its contents aren't a valid PID.
func Read(path string) (int, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotRunning
		}

		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errCorrupt, path)
	}

	return pid, nil
}

// Alive reports whether pid refers to a live process, probing via a
// zero-signal per the standard "kill -0" liveness check.
func Alive(pid int) bool {
	return unix.Kill(pid, 0) == nil
}

// ReadAlive reads the PID at path and reports it only if the process is
// still alive, returning ErrNotRunning otherwise (and cleaning up a stale
// file so a later start doesn't trip over it).
func ReadAlive(path string) (int, error) {
	pid, err := Read(path)
	if err != nil {
		return 0, err
	}

	if !Alive(pid) {
		_ = Remove(path)
		return 0, ErrNotRunning
	}

	return pid, nil
}
