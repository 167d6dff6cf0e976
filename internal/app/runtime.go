package app

import (
	"os"
	"sync"
)

const testModeEnv = "TRACKINGGT_TEST_MODE"

var testMode = sync.OnceValue(func() bool {
	return os.Getenv(testModeEnv) == "1"
})

// InTestMode reports whether binaries should skip binding ports and dialing
// Redis. The flag is read once per process.
func InTestMode() bool {
	return testMode()
}
