package evaluate

import (
	"slices"

	"github.com/roach88/treelab/internal/tree"
)

// Registry maps scenario ids to check batteries.
// It is built once and then only read; it is not safe for concurrent
// registration.
type Registry struct {
	batteries map[string][]Check
	order     []string
	defaultID string
}

// NewRegistry creates a registry whose default battery is registered under
// defaultID.
func NewRegistry(defaultID string, defaultChecks []Check) *Registry {
	r := &Registry{
		batteries: make(map[string][]Check),
		defaultID: defaultID,
	}
	r.Register(defaultID, defaultChecks)
	return r
}

// Register adds or replaces the battery for id.
func (r *Registry) Register(id string, checks []Check) {
	if _, ok := r.batteries[id]; !ok {
		r.order = append(r.order, id)
	}
	r.batteries[id] = slices.Clone(checks)
}

// Checks returns the battery registered for id.
func (r *Registry) Checks(id string) ([]Check, bool) {
	checks, ok := r.batteries[id]
	return checks, ok
}

// IDs returns registered ids in registration order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// DefaultID returns the id of the fallback battery.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// Evaluate runs the battery for scenarioID, or the default battery when the id
// is unknown. It never fails.
func (r *Registry) Evaluate(f tree.Forest, scenarioID string) Report {
	battery := scenarioID
	checks, ok := r.batteries[scenarioID]
	if !ok {
		battery = r.defaultID
		checks = r.batteries[r.defaultID]
	}
	report := Run(f, checks)
	report.ScenarioID = scenarioID
	report.Battery = battery
	report.Fallback = !ok
	return report
}
