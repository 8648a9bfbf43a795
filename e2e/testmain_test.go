//go:build e2e

package e2e

import (
	"os"
	"os/exec"
	"runtime"
	"testing"

	"github.com/vibefolio/vibefolio-e2e/pkg/testutil"
)

func TestMain(m *testing.M) {
	code := m.Run()

	// Safety net for panics or t.FailNow paths that skipped
	// BrowserClient.Close.
	cleanupOrphanedBrowsers()

	os.Exit(code)
}

// cleanupOrphanedBrowsers kills Chrome processes left behind by this suite.
// Only browsers started through pkg/testutil match; a developer's own
// browser running against the same deployment is left alone.
func cleanupOrphanedBrowsers() {
	switch runtime.GOOS {
	case "darwin", "linux":
		// pkill exits non-zero when nothing matched.
		_ = exec.Command("pkill", "-f", "--", testutil.OrphanPattern()).Run()
	}
}
