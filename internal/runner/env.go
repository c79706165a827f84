package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/opennext-tools/nextdeploy-cli/internal/link"
)

// Well-known environment variables of a deploy session.
const (
	// BuildMarkerVar is set in every spawned build so site tooling can tell
	// it runs under a deploy.
	BuildMarkerVar = "SST"

	// SkipBuildVar short-circuits the runner when set to a truthy value.
	SkipBuildVar = "SST_SKIP_BUILD"

	resourcePrefix   = "SST_RESOURCE_"
	credentialPrefix = "SST_AWS_"
)

// credentialVars are the standard AWS variable names the spawned tooling
// expects. Each is sourced from its credentialPrefix-ed equivalent.
var credentialVars = []string{
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"AWS_SESSION_TOKEN",
	"AWS_REGION",
}

// App identifies the application a build belongs to. It is published to the
// build as the reserved SST_RESOURCE_App link entry.
type App struct {
	Name  string `json:"name"`
	Stage string `json:"stage"`
}

// Merge folds the given mappings left to right into a fresh map. Later
// layers win on key collision; this ordering is the documented precedence
// contract of the build environment.
func Merge(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, layer := range layers {
		for k, v := range layer {
			out[k] = v
		}
	}
	return out
}

// CredentialEnv remaps prefixed deploy-session credentials to the standard
// AWS names, so that the invoked tooling sees ordinary credentials. Unset
// sources are omitted.
func CredentialEnv(lookup func(string) string) map[string]string {
	out := make(map[string]string, len(credentialVars))
	for _, name := range credentialVars {
		src := credentialPrefix + strings.TrimPrefix(name, "AWS_")
		if v := lookup(src); v != "" {
			out[name] = v
		}
	}
	return out
}

// LinkEnv resolves every link reference and JSON-encodes its properties
// under SST_RESOURCE_<Name>, plus the fixed SST_RESOURCE_App entry for the
// current application. Built fresh per build: link properties may change
// between deploys.
func LinkEnv(ctx context.Context, resolver link.Resolver, refs []string, app App) (map[string]string, error) {
	out := make(map[string]string, len(refs)+1)

	appJSON, err := json.Marshal(app)
	if err != nil {
		return nil, fmt.Errorf("encoding app metadata: %w", err)
	}
	out[resourcePrefix+"App"] = string(appJSON)

	var mu sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	for _, ref := range refs {
		ref := ref
		eg.Go(func() error {
			res, err := resolver.Resolve(ctx, ref)
			if err != nil {
				return err
			}
			props, err := json.Marshal(res.Properties)
			if err != nil {
				return fmt.Errorf("encoding link %q: %w", res.Name, err)
			}
			mu.Lock()
			out[resourcePrefix+res.Name] = string(props)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// environMap parses a KEY=VALUE list, as returned by os.Environ, into a map.
func environMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

// flatten renders an environment map back to the KEY=VALUE form exec
// expects, sorted for determinism.
func flatten(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
