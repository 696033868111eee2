// Package version reports build metadata and the providers linked into the binary.
package version

import (
	"fmt"
	"strings"

	"github.com/connorhough/aiwire/internal/providers"
)

// These variables are set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns a formatted version string including version, git commit,
// build date and the linked providers. Providers excluded with build tags
// are not listed.
func String() string {
	linked := providers.Default().Providers()
	names := "none"
	if len(linked) > 0 {
		names = strings.Join(linked, ", ")
	}
	return fmt.Sprintf("%s (commit: %s, date: %s, providers: %s)", Version, GitCommit, BuildDate, names)
}
