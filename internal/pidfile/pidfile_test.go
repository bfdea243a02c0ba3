package pidfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shockdb/stringspace/internal/pidfile"
)

func TestPath_DerivesFromPackageName(t *testing.T) {
	t.Parallel()

	got := pidfile.Path("completiond")
	want := filepath.Join(os.TempDir(), "completiond.pid")

	if got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}

func TestWriteReadRemove_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.pid")

	if err := pidfile.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	pid, err := pidfile.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if pid != os.Getpid() {
		t.Fatalf("pid = %d, want %d", pid, os.Getpid())
	}

	if err := pidfile.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed, stat err = %v", err)
	}
}

func TestRead_MissingFileReturnsErrNotRunning(t *testing.T) {
	t.Parallel()

	_, err := pidfile.Read(filepath.Join(t.TempDir(), "missing.pid"))
	if err != pidfile.ErrNotRunning {
		t.Fatalf("err = %v, want ErrNotRunning", err)
	}
}

func TestAlive_CurrentProcessIsAlive(t *testing.T) {
	t.Parallel()

	if !pidfile.Alive(os.Getpid()) {
		t.Fatal("expected current process to be reported alive")
	}
}

func TestReadAlive_CleansUpStaleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stale.pid")

	// pid 1 is unlikely to belong to this test process and is treated as a
	// plausible, but (inside a typical sandboxed container) not-ours, pid;
	// instead use a pid far outside any realistic range to force "not alive".
	if err := os.WriteFile(path, []byte("999999999"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := pidfile.ReadAlive(path)
	if err != pidfile.ErrNotRunning {
		t.Fatalf("err = %v, want ErrNotRunning", err)
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("expected stale pid file to be removed")
	}
}
