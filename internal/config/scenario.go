package config

import (
	"errors"
	"fmt"

	"warehouse/internal/grid"
	"warehouse/internal/percept"
)

// ErrInvalidScenario is returned for malformed scenario definitions.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a named set of percepts collected by the agent.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Percepts    []PerceptSpec `yaml:"percepts"`
}

// PerceptSpec is one observation as written in YAML, e.g.
// {signal: C, x: 2, y: 1, value: true}.
type PerceptSpec struct {
	Signal string `yaml:"signal"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Value  bool   `yaml:"value"`
}

// Observations converts the percepts for the engine. Unlike the engine it
// rejects cells off the floor and conflicting duplicates.
func (s Scenario) Observations() (percept.Observations, error) {
	obs := make(percept.Observations, len(s.Percepts))
	for i, p := range s.Percepts {
		kind, err := percept.ParseSignalKind(p.Signal)
		if err != nil {
			return nil, fmt.Errorf("%w: %s percept %d: %v", ErrInvalidScenario, s.Name, i, err)
		}
		c := grid.Cell{X: p.X, Y: p.Y}
		if !c.InBounds() {
			return nil, fmt.Errorf("%w: %s percept %d: cell %s off the floor", ErrInvalidScenario, s.Name, i, c)
		}
		key := percept.Key{Kind: kind, Cell: c}
		if prev, dup := obs[key]; dup && prev != p.Value {
			return nil, fmt.Errorf("%w: %s: conflicting values for %s", ErrInvalidScenario, s.Name, key)
		}
		obs[key] = p.Value
	}
	return obs, nil
}
