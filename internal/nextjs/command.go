// Package nextjs understands the build conventions of Next.js sites and the
// open-next output they produce.
package nextjs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opennext-tools/nextdeploy-cli/internal/async"
)

// DefaultOpenNextVersion is the open-next release invoked when the site does
// not pin one.
const DefaultOpenNextVersion = "2.3.1"

// ResolveBuildCommand returns the shell command that builds the site.
//
// An explicit command wins unchanged. Otherwise the site must carry a
// package.json with a "build" script, and the package manager is picked from
// lockfile presence in fixed order: yarn, then pnpm, then bun, falling back
// to npm. Lockfiles are checked at the site root and the workspace root;
// their content is never parsed.
func ResolveBuildCommand(sitePath, workspaceRoot, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	pkgPath := filepath.Join(sitePath, "package.json")
	data, err := os.ReadFile(pkgPath)
	if err != nil {
		return "", fmt.Errorf("could not find package.json in %s", sitePath)
	}
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf("could not parse %s: %w", pkgPath, err)
	}
	if _, ok := pkg.Scripts["build"]; !ok {
		return "", fmt.Errorf("no \"build\" script found in %s", pkgPath)
	}

	switch {
	case lockExists(sitePath, workspaceRoot, "yarn.lock"):
		return "yarn run build", nil
	case lockExists(sitePath, workspaceRoot, "pnpm-lock.yaml"):
		return "pnpm run build", nil
	case lockExists(sitePath, workspaceRoot, "bun.lockb"):
		return "bun run build", nil
	default:
		return "npm run build", nil
	}
}

func lockExists(sitePath, workspaceRoot, name string) bool {
	if _, err := os.Stat(filepath.Join(sitePath, name)); err == nil {
		return true
	}
	if workspaceRoot != "" {
		if _, err := os.Stat(filepath.Join(workspaceRoot, name)); err == nil {
			return true
		}
	}
	return false
}

// BuildToolCommand combines a possibly-not-yet-known user override and
// open-next version into the command that invokes the build tool itself.
// Either input may still be unresolved when this is called; the result
// resolves once both are available.
func BuildToolCommand(override, version *async.Deferred[string]) *async.Deferred[string] {
	return async.Combine(override, version, func(cmd, ver string) string {
		if cmd != "" {
			return cmd
		}
		if ver == "" {
			ver = DefaultOpenNextVersion
		}
		return fmt.Sprintf("npx --yes open-next@%s build", ver)
	})
}
