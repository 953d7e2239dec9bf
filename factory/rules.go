/*
Package factory provides JSON to Go staffing-rule conversion.

PURPOSE:
  Converts JSON rule and add-on definitions into engine.StaffingRule and
  engine.AddOn values. This enables staffing configuration without code
  changes - an operations manager can define rules in JSON, and the
  factory creates the proper Go structs.

WHY JSON?
  - Non-developers can modify staffing rules
  - Easy integration with an admin UI
  - Version control for rule definitions
  - Database storage of rule configs

JSON SCHEMA (rule):
  {
    "id": "banquet-medium",
    "min_guests": 50,
    "max_guests": 150,
    "required_positions": [
      {"position": "Server", "count": 4},
      {"position": "Chef", "count": 1}
    ],
    "extra_conditions": [
      {"add_on_id": "bar", "position": "Server", "count": 1}
    ]
  }

JSON SCHEMA (add-on):
  {
    "id": "bar",
    "name": "Bar Service",
    "positions": ["Bartender"]
  }

KEY FEATURES:
  - Validates JSON structure and value shapes
  - Range-overlap checking stays in the engine; the factory only checks
    what a single definition can be checked for in isolation

USAGE:
  f := factory.NewRuleFactory()

  rule, err := f.ParseRule(jsonString)
  if err != nil { ... }
  err = eng.CreateRule(ctx, *rule)

SEE ALSO:
  - engine/types.go: StaffingRule and AddOn definitions
  - engine/rules.go: range-overlap validation
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mise/staffing-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RuleJSON is the JSON representation of a staffing rule.
type RuleJSON struct {
	ID                string               `json:"id"`
	MinGuests         int                  `json:"min_guests"`
	MaxGuests         int                  `json:"max_guests"`
	RequiredPositions []PositionCountJSON  `json:"required_positions"`
	ExtraConditions   []ExtraConditionJSON `json:"extra_conditions,omitempty"`
}

// PositionCountJSON pairs a position label with a head count.
type PositionCountJSON struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// ExtraConditionJSON adds staff to a position when an add-on is selected.
type ExtraConditionJSON struct {
	AddOnID  string `json:"add_on_id"`
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// AddOnJSON is the JSON representation of an add-on.
type AddOnJSON struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Positions []string `json:"positions,omitempty"`
}

// =============================================================================
// RULE FACTORY
// =============================================================================

// RuleFactory converts JSON rule and add-on definitions to Go structs.
type RuleFactory struct{}

// NewRuleFactory creates a new rule factory.
func NewRuleFactory() *RuleFactory {
	return &RuleFactory{}
}

// ParseRule parses a JSON string into a StaffingRule.
func (f *RuleFactory) ParseRule(jsonStr string) (*engine.StaffingRule, error) {
	var rj RuleJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return nil, fmt.Errorf("failed to parse rule JSON: %w", err)
	}
	return f.RuleFromJSON(rj)
}

// RuleFromJSON converts RuleJSON to an engine.StaffingRule.
func (f *RuleFactory) RuleFromJSON(rj RuleJSON) (*engine.StaffingRule, error) {
	if strings.TrimSpace(rj.ID) == "" {
		return nil, fmt.Errorf("%w: rule id is required", engine.ErrInvalidInput)
	}
	if rj.MinGuests < 1 || rj.MaxGuests < rj.MinGuests {
		return nil, fmt.Errorf("%w: guest range [%d, %d] is invalid",
			engine.ErrInvalidInput, rj.MinGuests, rj.MaxGuests)
	}

	rule := &engine.StaffingRule{
		ID:        engine.RuleID(rj.ID),
		MinGuests: rj.MinGuests,
		MaxGuests: rj.MaxGuests,
	}

	for _, pc := range rj.RequiredPositions {
		if strings.TrimSpace(pc.Position) == "" || pc.Count < 1 {
			return nil, fmt.Errorf("%w: required position needs a label and a positive count",
				engine.ErrInvalidInput)
		}
		rule.RequiredPositions = append(rule.RequiredPositions, engine.PositionCount{
			Position: engine.Position(pc.Position),
			Count:    pc.Count,
		})
	}

	for _, ec := range rj.ExtraConditions {
		if strings.TrimSpace(ec.AddOnID) == "" || strings.TrimSpace(ec.Position) == "" || ec.Count < 1 {
			return nil, fmt.Errorf("%w: extra condition needs an add-on id, a position, and a positive count",
				engine.ErrInvalidInput)
		}
		rule.ExtraConditions = append(rule.ExtraConditions, engine.ExtraCondition{
			AddOnID:  engine.AddOnID(ec.AddOnID),
			Position: engine.Position(ec.Position),
			Count:    ec.Count,
		})
	}

	return rule, nil
}

// RuleToJSON converts a StaffingRule to its JSON representation.
func (f *RuleFactory) RuleToJSON(rule engine.StaffingRule) RuleJSON {
	rj := RuleJSON{
		ID:        string(rule.ID),
		MinGuests: rule.MinGuests,
		MaxGuests: rule.MaxGuests,
	}
	for _, pc := range rule.RequiredPositions {
		rj.RequiredPositions = append(rj.RequiredPositions, PositionCountJSON{
			Position: string(pc.Position),
			Count:    pc.Count,
		})
	}
	for _, ec := range rule.ExtraConditions {
		rj.ExtraConditions = append(rj.ExtraConditions, ExtraConditionJSON{
			AddOnID:  string(ec.AddOnID),
			Position: string(ec.Position),
			Count:    ec.Count,
		})
	}
	return rj
}

// ParseAddOn parses a JSON string into an AddOn.
func (f *RuleFactory) ParseAddOn(jsonStr string) (*engine.AddOn, error) {
	var aj AddOnJSON
	if err := json.Unmarshal([]byte(jsonStr), &aj); err != nil {
		return nil, fmt.Errorf("failed to parse add-on JSON: %w", err)
	}
	return f.AddOnFromJSON(aj)
}

// AddOnFromJSON converts AddOnJSON to an engine.AddOn.
func (f *RuleFactory) AddOnFromJSON(aj AddOnJSON) (*engine.AddOn, error) {
	if strings.TrimSpace(aj.ID) == "" {
		return nil, fmt.Errorf("%w: add-on id is required", engine.ErrInvalidInput)
	}
	if strings.TrimSpace(aj.Name) == "" {
		return nil, fmt.Errorf("%w: add-on name is required", engine.ErrInvalidInput)
	}

	addOn := &engine.AddOn{
		ID:   engine.AddOnID(aj.ID),
		Name: aj.Name,
	}
	for _, p := range aj.Positions {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w: add-on position label cannot be empty", engine.ErrInvalidInput)
		}
		addOn.AssociatedPositions = append(addOn.AssociatedPositions, engine.Position(p))
	}
	return addOn, nil
}

// AddOnToJSON converts an AddOn to its JSON representation.
func (f *RuleFactory) AddOnToJSON(a engine.AddOn) AddOnJSON {
	aj := AddOnJSON{ID: string(a.ID), Name: a.Name}
	for _, p := range a.AssociatedPositions {
		aj.Positions = append(aj.Positions, string(p))
	}
	return aj
}

// =============================================================================
// PRESET DEFINITIONS
// =============================================================================

// BanquetRuleJSON builds a JSON rule covering a guest range with a flat
// server count, for seeding and demos.
func BanquetRuleJSON(id string, minGuests, maxGuests, servers int) string {
	rj := RuleJSON{
		ID:        id,
		MinGuests: minGuests,
		MaxGuests: maxGuests,
		RequiredPositions: []PositionCountJSON{
			{Position: "Server", Count: servers},
		},
	}
	b, _ := json.Marshal(rj)
	return string(b)
}

// BarServiceJSON builds the standard bar add-on definition.
func BarServiceJSON(id string, bartenders int) string {
	aj := AddOnJSON{ID: id, Name: "Bar Service", Positions: make([]string, 0, bartenders)}
	for i := 0; i < bartenders; i++ {
		aj.Positions = append(aj.Positions, "Bartender")
	}
	b, _ := json.Marshal(aj)
	return string(b)
}
