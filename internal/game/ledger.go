package game

import (
	"fmt"
	"math"

	"github.com/peterkuimelis/swipecity/internal/log"
)

const (
	DefaultInitialValue = 50
	DefaultMinValue     = 0
	DefaultMaxValue     = 100
	DefaultCascadeDepth = 1
)

// ResourceSpec configures one resource of the ledger.
type ResourceSpec struct {
	Type    ResourceType
	Initial int
	Min     int
	Max     int
}

// Dependency propagates a share of every change of Source onto Target.
type Dependency struct {
	Source ResourceType
	Target ResourceType
	Factor float64
}

// LedgerConfig holds configuration for creating a new ledger.
type LedgerConfig struct {
	Resources    []ResourceSpec
	Dependencies []Dependency
	CascadeDepth int // hops a change may propagate; 0 disables cascades
}

// DefaultLedgerConfig returns four resources at 50 within [0, 100] and the
// stock dependency table.
func DefaultLedgerConfig() LedgerConfig {
	cfg := LedgerConfig{CascadeDepth: DefaultCascadeDepth}
	for _, rt := range AllResources {
		cfg.Resources = append(cfg.Resources, ResourceSpec{
			Type:    rt,
			Initial: DefaultInitialValue,
			Min:     DefaultMinValue,
			Max:     DefaultMaxValue,
		})
	}
	cfg.Dependencies = DefaultDependencies()
	return cfg
}

// DefaultDependencies returns the stock cascade table.
func DefaultDependencies() []Dependency {
	return []Dependency{
		{Source: Economy, Target: Happiness, Factor: 0.3},
		{Source: Technology, Target: Economy, Factor: 0.2},
		{Source: Environment, Target: Happiness, Factor: 0.4},
	}
}

// Validate checks bounds, completeness and that the dependency table is acyclic.
func (c LedgerConfig) Validate() error {
	var seen [ResourceCount]bool
	for _, spec := range c.Resources {
		if !spec.Type.Valid() {
			return fmt.Errorf("resource %d: %w", int(spec.Type), ErrNotFound)
		}
		if seen[spec.Type] {
			return fmt.Errorf("resource %s configured twice", spec.Type)
		}
		seen[spec.Type] = true
		if spec.Min >= spec.Max {
			return fmt.Errorf("resource %s: min %d must be below max %d", spec.Type, spec.Min, spec.Max)
		}
		if spec.Initial <= spec.Min || spec.Initial >= spec.Max {
			return fmt.Errorf("resource %s: initial %d must lie strictly between %d and %d",
				spec.Type, spec.Initial, spec.Min, spec.Max)
		}
	}
	for _, rt := range AllResources {
		if !seen[rt] {
			return fmt.Errorf("resource %s not configured", rt)
		}
	}

	if c.CascadeDepth < 0 {
		return fmt.Errorf("cascade depth %d must not be negative", c.CascadeDepth)
	}

	var next [ResourceCount]ResourceType
	var hasNext [ResourceCount]bool
	for _, dep := range c.Dependencies {
		if !dep.Source.Valid() || !dep.Target.Valid() {
			return fmt.Errorf("dependency %d → %d: %w", int(dep.Source), int(dep.Target), ErrNotFound)
		}
		if dep.Source == dep.Target {
			return fmt.Errorf("dependency %s → %s: resource cannot depend on itself", dep.Source, dep.Target)
		}
		if hasNext[dep.Source] {
			return fmt.Errorf("dependency for %s configured twice", dep.Source)
		}
		next[dep.Source] = dep.Target
		hasNext[dep.Source] = true
	}

	// Each source has at most one target, so a cycle is a walk that revisits a node.
	for _, start := range AllResources {
		var visited [ResourceCount]bool
		cur := start
		for hasNext[cur] {
			visited[cur] = true
			cur = next[cur]
			if visited[cur] {
				return fmt.Errorf("dependency cycle through %s", cur)
			}
		}
	}
	return nil
}

// Ledger holds the bounded resource counters and applies cascades.
type Ledger struct {
	resources    [ResourceCount]Resource
	initial      [ResourceCount]int
	deps         [ResourceCount]*Dependency
	cascadeDepth int
	observers    []Observer
}

// NewLedger validates the config and builds a ledger at its initial values.
func NewLedger(cfg LedgerConfig) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ledger config: %w", err)
	}
	l := &Ledger{cascadeDepth: cfg.CascadeDepth}
	for _, spec := range cfg.Resources {
		l.resources[spec.Type] = Resource{Type: spec.Type, Value: spec.Initial, Min: spec.Min, Max: spec.Max}
		l.initial[spec.Type] = spec.Initial
	}
	for i := range cfg.Dependencies {
		dep := cfg.Dependencies[i]
		l.deps[dep.Source] = &dep
	}
	return l, nil
}

// Subscribe registers an observer for ResourceChanged and ResourcesUpdated events.
func (l *Ledger) Subscribe(o Observer) {
	l.observers = append(l.observers, o)
}

func (l *Ledger) notify(event log.GameEvent) {
	for _, o := range l.observers {
		o.Notify(event)
	}
}

// Update adds delta to the resource, clamps it, and cascades when the value moved.
func (l *Ledger) Update(rt ResourceType, delta int) {
	l.update(rt, delta, 0)
}

// UpdateByName is Update keyed by resource name.
func (l *Ledger) UpdateByName(name string, delta int) error {
	rt, err := ParseResourceType(name)
	if err != nil {
		return err
	}
	l.update(rt, delta, 0)
	return nil
}

func (l *Ledger) update(rt ResourceType, delta int, depth int) {
	if !rt.Valid() {
		return
	}
	r := &l.resources[rt]
	old := r.Value
	r.Value = clamp(old+delta, r.Min, r.Max)
	if r.Value == old {
		return
	}

	l.notify(log.NewResourceChangedEvent(rt.String(), old, r.Value))

	if dep := l.deps[rt]; dep != nil && depth < l.cascadeDepth {
		l.update(dep.Target, CascadeDelta(delta, dep.Factor), depth+1)
	}

	l.notify(log.NewResourcesUpdatedEvent(l.values()))
}

// CascadeDelta scales a change by factor, rounding half away from zero.
func CascadeDelta(delta int, factor float64) int {
	return int(math.Round(float64(delta) * factor))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Value returns the current value of the resource, or 0 for an unknown type.
func (l *Ledger) Value(rt ResourceType) int {
	if !rt.Valid() {
		return 0
	}
	return l.resources[rt].Value
}

// ValueByName returns the current value, or 0 if the name is unknown.
func (l *Ledger) ValueByName(name string) int {
	rt, err := ParseResourceType(name)
	if err != nil {
		return 0
	}
	return l.resources[rt].Value
}

// Dependency returns the cascade entry for source, if any.
func (l *Ledger) Dependency(source ResourceType) (Dependency, bool) {
	if !source.Valid() || l.deps[source] == nil {
		return Dependency{}, false
	}
	return *l.deps[source], true
}

// IsTerminal returns true iff any resource sits at its minimum or maximum.
func (l *Ledger) IsTerminal() bool {
	_, ok := l.TerminalResource()
	return ok
}

// TerminalResource returns the first resource at a boundary, in enum order.
func (l *Ledger) TerminalResource() (Resource, bool) {
	for _, r := range l.resources {
		if r.AtBoundary() {
			return r, true
		}
	}
	return Resource{}, false
}

// Snapshot returns a copy of all resources in enum order.
func (l *Ledger) Snapshot() []Resource {
	out := make([]Resource, ResourceCount)
	copy(out, l.resources[:])
	return out
}

// Reset restores every resource to its initial value.
func (l *Ledger) Reset() {
	for i := range l.resources {
		l.resources[i].Value = l.initial[i]
	}
	l.notify(log.NewResourcesUpdatedEvent(l.values()))
}

func (l *Ledger) values() []log.ResourceValue {
	return ResourceValues(l.resources[:])
}

// ResourceValues converts resources to their event representation.
func ResourceValues(resources []Resource) []log.ResourceValue {
	out := make([]log.ResourceValue, 0, len(resources))
	for _, r := range resources {
		out = append(out, log.ResourceValue{Name: r.Type.String(), Value: r.Value, Min: r.Min, Max: r.Max})
	}
	return out
}

// GameOverReason describes why r ended the reign.
func GameOverReason(r Resource) string {
	if r.Value <= r.Min {
		return fmt.Sprintf("%s collapsed to %d", r.Type, r.Value)
	}
	return fmt.Sprintf("%s overflowed to %d", r.Type, r.Value)
}
