package tools

import (
	"fmt"
	"strings"
	"sync"
)

// Spec is the machine-readable description of one callable operation, served
// to calling orchestrators for discovery.
type Spec struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters"`
}

type Catalog struct {
	specs map[string]Spec
	order []string
	mtx   sync.RWMutex
}

func (c *Catalog) Register(spec Spec) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	key := strings.ToLower(strings.TrimSpace(spec.Name))
	if len(key) == 0 {
		return fmt.Errorf("tool name is required")
	}

	if _, ok := c.specs[key]; ok {
		return fmt.Errorf("tool %s already registered", key)
	}

	c.specs[key] = spec
	c.order = append(c.order, key)

	return nil
}

func (c *Catalog) ListSpecs() []Spec {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	specs := make([]Spec, 0, len(c.specs))
	for _, key := range c.order {
		specs = append(specs, c.specs[key])
	}

	return specs
}

func (c *Catalog) Get(name string) (Spec, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	spec, ok := c.specs[key]

	return spec, ok
}

func New(specs ...Spec) *Catalog {
	c := &Catalog{
		specs: map[string]Spec{},
		order: []string{},
		mtx:   sync.RWMutex{},
	}

	for _, spec := range specs {
		if err := c.Register(spec); err != nil {
			continue
		}
	}

	return c
}
