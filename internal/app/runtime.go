package app

import (
	"os"
	"sync"
)

const testModeEnv = "EXAMENES_TEST_MODE"

var (
	testModeOnce sync.Once
	testMode     bool
)

// InTestMode reports whether the process runs under `go test`. Both binaries
// check it at startup so importing their packages in tests never opens real
// connections.
func InTestMode() bool {
	testModeOnce.Do(func() {
		testMode = os.Getenv(testModeEnv) == "1"
	})
	return testMode
}
