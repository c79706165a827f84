// Package link resolves references to already-provisioned resources whose
// runtime properties must be injected into a site's build environment.
package link

import (
	"context"
	"fmt"
)

// Resource is the resolved form of a link reference.
type Resource struct {
	Name       string
	Properties map[string]any
}

// Resolver turns a link reference into the linked resource's name and
// properties.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (Resource, error)
}

// StaticResolver serves link data from an in-memory table, typically parsed
// from the project configuration.
type StaticResolver map[string]map[string]any

func (r StaticResolver) Resolve(_ context.Context, ref string) (Resource, error) {
	props, ok := r[ref]
	if !ok {
		return Resource{}, fmt.Errorf("unknown link %q", ref)
	}
	return Resource{Name: ref, Properties: props}, nil
}
