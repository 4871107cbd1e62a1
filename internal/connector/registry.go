package connector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/miasolution2024/mia-multi-channel-chat-sub002/internal/core"
)

// Registry resolves the {provider} route segment to a connector
type Registry struct {
	connectors map[string]core.Connector
}

// NewRegistry indexes connectors by their lowercase name
func NewRegistry(connectors ...core.Connector) *Registry {
	r := &Registry{connectors: make(map[string]core.Connector, len(connectors))}
	for _, c := range connectors {
		r.connectors[strings.ToLower(c.Name())] = c
	}
	return r
}

// Get returns the connector for name or core.ErrUnknownProvider
func (r *Registry) Get(name string) (core.Connector, error) {
	c, ok := r.connectors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownProvider, name)
	}
	return c, nil
}

// Names returns the registered provider names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.connectors))
	for name := range r.connectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
