// Package guard flips the application into test mode when imported.
// Test packages blank-import it so entrypoint code skips runtime side
// effects under `go test`.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("DUKAAN_TEST_MODE") == "" {
			_ = os.Setenv("DUKAAN_TEST_MODE", "1")
		}
	})
}
