package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/darvasboard/darvas-portal/tests/common"
)

var runner *common.TestRunner

// TestMain starts the containerised portal once for the whole suite.
// Set DARVAS_TEST_URL to run against an already-running server instead.
func TestMain(m *testing.M) {
	runner = common.NewTestRunner("ui")

	portal, err := common.StartPortalForTestMain()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test environment: %v\n", err)
		os.Exit(1)
	}
	if portal != nil {
		os.Setenv("DARVAS_TEST_URL", portal.URL())
	}

	code := m.Run()

	if portal != nil {
		portal.CollectLogs(filepath.Join(common.GetResultsDir(), "containers"))
		portal.Cleanup()
	}
	runner.Finalize()

	os.Exit(code)
}

func serverURL() string {
	return common.GetTestURL()
}
