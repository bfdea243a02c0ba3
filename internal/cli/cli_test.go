package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shockdb/stringspace/internal/cli"
	"github.com/shockdb/stringspace/internal/pidfile"
)

func TestRun_UnknownCommandReturnsExitCodeOne(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	code := cli.Run(nil, &out, &errOut, []string{"completiond", "bogus"}, nil, nil)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}

	if !strings.Contains(errOut.String(), "unknown command: bogus") {
		t.Fatalf("stderr = %q, missing unknown command message", errOut.String())
	}
}

func TestRun_NoArgsPrintsUsageAndExitsZero(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	code := cli.Run(nil, &out, &errOut, []string{"completiond"}, nil, nil)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	if !strings.Contains(out.String(), "Usage: completiond") {
		t.Fatalf("stdout = %q, missing usage banner", out.String())
	}
}

func TestRun_StatusReportsNotRunningWhenNoPidFile(t *testing.T) {
	// Mutates the package-level cli.PackageName var, so this test does not
	// run in parallel with others that might read it.
	orig := cli.PackageName
	cli.PackageName = "completiond-test-" + t.Name()

	t.Cleanup(func() { cli.PackageName = orig })

	_ = pidfile.Remove(pidfile.Path(cli.PackageName))

	var out, errOut bytes.Buffer

	code := cli.Run(nil, &out, &errOut, []string{"completiond", "status"}, nil, nil)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0, stderr=%q", code, errOut.String())
	}

	if !strings.Contains(out.String(), "not running") {
		t.Fatalf("stdout = %q, want \"not running\"", out.String())
	}
}

func TestStartCmd_RejectsMissingDataFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var out, errOut bytes.Buffer

	// No data file anywhere in the config chain and none on the CLI either:
	// Load() must fail validation before a listener is ever opened.
	code := cli.Run(nil, &out, &errOut, []string{"completiond", "start", "--host", "127.0.0.1"}, map[string]string{
		"HOME": dir,
	}, nil)

	if code != 1 {
		t.Fatalf("exit code = %d, want 1 (missing data_file), stdout=%q stderr=%q", code, out.String(), errOut.String())
	}
}
