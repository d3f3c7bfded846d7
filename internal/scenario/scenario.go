package scenario

import (
	"fmt"
	"slices"

	"github.com/roach88/treelab/internal/evaluate"
	"github.com/roach88/treelab/internal/tree"
)

// DefaultID is the scenario whose battery scores unknown scenario ids.
const DefaultID = "level-1-card"

// Scenario is a named battery of checks plus a starter/target tree pair.
type Scenario struct {
	ID          string
	Title       string
	Level       string
	Description string

	// Starter is the tree a candidate begins from.
	Starter tree.Forest

	// Target is the reference solution. Every built-in target passes its
	// own battery.
	Target tree.Forest

	Checks []evaluate.Check
}

// MaxScore returns the rounded sum of all check weights.
func (s *Scenario) MaxScore() int {
	var total float64
	for _, c := range s.Checks {
		total += c.Weight
	}
	return evaluate.RoundHalfUp(total)
}

// Catalog is an ordered set of scenarios keyed by id.
type Catalog struct {
	scenarios []*Scenario
	defaultID string
}

// NewCatalog builds a catalog. defaultID must name one of the scenarios and
// ids must be unique.
func NewCatalog(defaultID string, scenarios ...*Scenario) (*Catalog, error) {
	c := &Catalog{defaultID: defaultID}
	for _, s := range scenarios {
		if s.ID == "" {
			return nil, fmt.Errorf("scenario id is required")
		}
		if _, ok := c.Get(s.ID); ok {
			return nil, fmt.Errorf("duplicate scenario id %q", s.ID)
		}
		c.scenarios = append(c.scenarios, s)
	}
	if _, ok := c.Get(defaultID); !ok {
		return nil, fmt.Errorf("default scenario %q not in catalog", defaultID)
	}
	return c, nil
}

// Get returns the scenario with the given id.
func (c *Catalog) Get(id string) (*Scenario, bool) {
	i := c.index(id)
	if i < 0 {
		return nil, false
	}
	return c.scenarios[i], true
}

func (c *Catalog) index(id string) int {
	return slices.IndexFunc(c.scenarios, func(s *Scenario) bool { return s.ID == id })
}

// IDs returns scenario ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.scenarios))
	for i, s := range c.scenarios {
		ids[i] = s.ID
	}
	return ids
}

// All returns the scenarios in catalog order.
func (c *Catalog) All() []*Scenario {
	return slices.Clone(c.scenarios)
}

// DefaultID returns the id of the fallback scenario.
func (c *Catalog) DefaultID() string {
	return c.defaultID
}

// Len returns the number of scenarios.
func (c *Catalog) Len() int {
	return len(c.scenarios)
}

// Registry returns an evaluate.Registry holding every battery in the catalog,
// with the default scenario as fallback.
func (c *Catalog) Registry() *evaluate.Registry {
	def, _ := c.Get(c.defaultID)
	r := evaluate.NewRegistry(def.ID, def.Checks)
	for _, s := range c.scenarios {
		r.Register(s.ID, s.Checks)
	}
	return r
}

// Merge returns a new catalog with extra scenarios added. A scenario whose id
// already exists replaces the base one in place; new ids are appended in the
// order given. The base catalog is not modified.
func Merge(base *Catalog, extra ...*Scenario) *Catalog {
	out := &Catalog{
		scenarios: slices.Clone(base.scenarios),
		defaultID: base.defaultID,
	}
	for _, s := range extra {
		if i := out.index(s.ID); i >= 0 {
			out.scenarios[i] = s
			continue
		}
		out.scenarios = append(out.scenarios, s)
	}
	return out
}
