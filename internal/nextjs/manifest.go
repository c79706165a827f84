package nextjs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// OutputFile is the build descriptor open-next writes under the site's
// output root.
const OutputFile = ".open-next/open-next.output.json"

// Reserved origin keys. Every manifest carries a static-asset origin and a
// default server origin; the image optimizer is conventional but optional.
const (
	OriginS3             = "s3"
	OriginDefault        = "default"
	OriginImageOptimizer = "imageOptimizer"
)

// MiddlewareFunction is the reserved edge function key that carries a path
// resolver.
const MiddlewareFunction = "middleware"

// Manifest is the normalized deployment descriptor of a built site: which
// functions, static-asset origins, and routing behaviors it requires. It is
// read-only after Load.
type Manifest struct {
	EdgeFunctions   map[string]EdgeFunction `json:"edgeFunctions"`
	Origins         map[string]Origin       `json:"origins"`
	Behaviors       []Behavior              `json:"behaviors"`
	AdditionalProps *AdditionalProps        `json:"additionalProps,omitempty"`
}

// EdgeFunction runs at request-routing time rather than as an origin.
type EdgeFunction struct {
	Handler string `json:"handler"`
	Bundle  string `json:"bundle"`
	// PathResolver is only set on the reserved middleware entry.
	PathResolver string `json:"pathResolver,omitempty"`
}

// Origin is a deployable backend target. Type is either "function" (server
// function, optionally an image optimizer when ImageLoader is set) or "s3"
// (static assets).
type Origin struct {
	Type string `json:"type"`

	// function origins
	Handler          string `json:"handler,omitempty"`
	Bundle           string `json:"bundle,omitempty"`
	Wrapper          string `json:"wrapper,omitempty"`
	Converter        string `json:"converter,omitempty"`
	Streaming        bool   `json:"streaming,omitempty"`
	Queue            string `json:"queue,omitempty"`
	IncrementalCache string `json:"incrementalCache,omitempty"`
	TagCache         string `json:"tagCache,omitempty"`
	ImageLoader      string `json:"imageLoader,omitempty"`

	// s3 origins
	OriginPath string          `json:"originPath,omitempty"`
	Copy       []CopyOperation `json:"copy,omitempty"`
}

// CopyOperation describes one set of static files to place behind an s3
// origin. Cached entries are immutable build output; VersionedSubDir marks
// the subtree keyed by build id.
type CopyOperation struct {
	From            string `json:"from"`
	To              string `json:"to"`
	Cached          bool   `json:"cached"`
	VersionedSubDir string `json:"versionedSubDir,omitempty"`
}

// Behavior is an ordered routing rule. Order is significant: the consumer
// applies first-match semantics.
type Behavior struct {
	Pattern      string `json:"pattern"`
	Origin       string `json:"origin,omitempty"`
	EdgeFunction string `json:"edgeFunction,omitempty"`
}

// FunctionRef points at an auxiliary function bundle.
type FunctionRef struct {
	Handler string `json:"handler"`
	Bundle  string `json:"bundle"`
}

// AdditionalProps carries handles for auxiliary functions and cache-disable
// switches.
type AdditionalProps struct {
	CloudFrontFunctions     map[string]json.RawMessage `json:"cloudFrontFunctions,omitempty"`
	DisableIncrementalCache bool                       `json:"disableIncrementalCache,omitempty"`
	DisableTagCache         bool                       `json:"disableTagCache,omitempty"`
	InitializationFunction  *FunctionRef               `json:"initializationFunction,omitempty"`
	Warmer                  *FunctionRef               `json:"warmer,omitempty"`
	RevalidationFunction    *FunctionRef               `json:"revalidationFunction,omitempty"`
}

// LoadManifest reads and normalizes the open-next build descriptor under
// outputRoot. A missing descriptor is a user-facing error naming the
// expected path; malformed JSON propagates as a parse error.
func LoadManifest(outputRoot string) (*Manifest, error) {
	path := filepath.Join(outputRoot, filepath.FromSlash(OutputFile))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("could not find %s; has the open-next build run?", path)
		}
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, key := range []string{OriginS3, OriginDefault} {
		if _, ok := m.Origins[key]; !ok {
			return nil, fmt.Errorf("%s is missing the required %q origin", path, key)
		}
	}

	// open-next emits a wrong handler/bundle for the DynamoDB seed function;
	// pin the known-good value unconditionally. This is the only
	// normalization applied to the descriptor.
	if m.AdditionalProps != nil && m.AdditionalProps.InitializationFunction != nil {
		m.AdditionalProps.InitializationFunction.Handler = "index.handler"
		m.AdditionalProps.InitializationFunction.Bundle = ".open-next/dynamodb-provider"
	}

	return &m, nil
}
