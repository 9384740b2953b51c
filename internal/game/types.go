package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type ResourceType int

const (
	Economy ResourceType = iota
	Technology
	Environment
	Happiness

	ResourceCount = 4
)

// AllResources lists every resource in display order.
var AllResources = [ResourceCount]ResourceType{Economy, Technology, Environment, Happiness}

func (r ResourceType) String() string {
	switch r {
	case Economy:
		return "Economy"
	case Technology:
		return "Technology"
	case Environment:
		return "Environment"
	case Happiness:
		return "Happiness"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is one of the four known resources.
func (r ResourceType) Valid() bool {
	return r >= Economy && r < ResourceCount
}

// ParseResourceType looks up a resource by name, ignoring case.
func ParseResourceType(name string) (ResourceType, error) {
	for _, r := range AllResources {
		if strings.EqualFold(r.String(), strings.TrimSpace(name)) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// MarshalText lets ResourceType appear by name in YAML and JSON.
func (r ResourceType) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid resource type %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *ResourceType) UnmarshalText(text []byte) error {
	parsed, err := ParseResourceType(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// --- Card definition (static, from catalog) ---

// Impact is a signed delta applied to one resource.
type Impact struct {
	Resource ResourceType `yaml:"resource" json:"resource"`
	Delta    int          `yaml:"delta" json:"delta"`
}

func (i Impact) String() string {
	return fmt.Sprintf("%s %+d", i.Resource, i.Delta)
}

// Choice is one side of a card.
type Choice struct {
	Label   string   `yaml:"label" json:"label"`
	Impacts []Impact `yaml:"impacts,omitempty" json:"impacts,omitempty"`
}

type Card struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Image       string   `yaml:"image,omitempty" json:"image,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Left        Choice   `yaml:"left" json:"left"`
	Right       Choice   `yaml:"right" json:"right"`
}

func (c *Card) String() string {
	return c.Title
}

// Choice returns the right choice when isRight is set, the left one otherwise.
func (c *Card) Choice(isRight bool) Choice {
	if isRight {
		return c.Right
	}
	return c.Left
}

// HasTag reports whether the card carries the given tag (case-insensitive).
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// --- Resource (runtime, owned by the Ledger) ---

type Resource struct {
	Type  ResourceType
	Value int
	Min   int
	Max   int
}

func (r Resource) String() string {
	return fmt.Sprintf("%s %d [%d..%d]", r.Type, r.Value, r.Min, r.Max)
}

// AtBoundary reports whether the value sits on its floor or ceiling.
func (r Resource) AtBoundary() bool {
	return r.Value <= r.Min || r.Value >= r.Max
}

// --- Engine state ---

type State int

const (
	StateIdle State = iota
	StateTransitioning
)

func (s State) String() string {
	if s == StateTransitioning {
		return "Transitioning"
	}
	return "Idle"
}
