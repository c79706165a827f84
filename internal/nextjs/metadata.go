package nextjs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opennext-tools/nextdeploy-cli/internal/ctxlog"
)

// Fixed-path metadata files the Next.js build leaves under the output root.
const (
	buildIDFile           = ".next/BUILD_ID"
	prerenderManifestFile = ".next/prerender-manifest.json"
)

// Metadata is the per-build identity of a site's output. BuildID is
// load-bearing for downstream naming and versioning; Prerender is advisory
// and may be nil.
type Metadata struct {
	BuildID   string
	Prerender *PrerenderManifest
}

// PrerenderManifest maps statically generated routes to their generation
// metadata.
type PrerenderManifest struct {
	Version int                        `json:"version"`
	Routes  map[string]PrerenderRoute  `json:"routes"`
	Dynamic map[string]json.RawMessage `json:"dynamicRoutes,omitempty"`
}

// PrerenderRoute is the per-route slice of the prerender manifest we care
// about downstream.
type PrerenderRoute struct {
	SrcRoute                 *string `json:"srcRoute"`
	DataRoute                string  `json:"dataRoute"`
	InitialRevalidateSeconds any     `json:"initialRevalidateSeconds,omitempty"`
}

// LoadMetadata reads the build id and, best effort, the prerender manifest
// for the named site's output root.
func LoadMetadata(ctx context.Context, outputRoot, site string) (*Metadata, error) {
	id, err := LoadBuildID(ctx, outputRoot, site)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		BuildID:   id,
		Prerender: LoadPrerenderManifest(ctx, outputRoot),
	}, nil
}

// LoadBuildID reads the stable build identifier. Failure is fatal: the
// underlying cause is logged and a user-facing error naming the site is
// returned.
func LoadBuildID(ctx context.Context, outputRoot, site string) (string, error) {
	path := filepath.Join(outputRoot, filepath.FromSlash(buildIDFile))
	data, err := os.ReadFile(path)
	if err != nil {
		ctxlog.FromContext(ctx).Error("could not read build id", "path", path, "error", err)
		return "", fmt.Errorf("could not determine the build id of the %q site", site)
	}
	return strings.TrimSpace(string(data)), nil
}

// LoadPrerenderManifest reads the prerender descriptor. A missing or
// malformed file is absorbed: it is logged at debug level and nil is
// returned, since prerender metadata is advisory.
func LoadPrerenderManifest(ctx context.Context, outputRoot string) *PrerenderManifest {
	log := ctxlog.FromContext(ctx)
	path := filepath.Join(outputRoot, filepath.FromSlash(prerenderManifestFile))

	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug("no prerender manifest", "path", path, "error", err)
		return nil
	}
	var m PrerenderManifest
	if err := json.Unmarshal(data, &m); err != nil {
		log.Debug("could not parse prerender manifest", "path", path, "error", err)
		return nil
	}
	return &m
}
