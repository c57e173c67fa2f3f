package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bft-labs/keycalc/internal/domain"
)

// Scenario is a scripted sequence of key presses with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Steps are pressed in order.
	Steps []Step `yaml:"steps"`

	// Expect is checked against the display after the last step.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Step is a single key press.
type Step struct {
	// Key is a key token as accepted by domain.ParseKey (e.g. "7", "*", "c").
	Key string `yaml:"key"`

	// Expect is checked against the display after the press. Nil checks nothing.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is a subset match on the display. Nil fields are not checked.
type Expect struct {
	Display     *string `yaml:"display,omitempty"`
	Error       *string `yaml:"error,omitempty"`
	Pending     *string `yaml:"pending,omitempty"`
	Offline     *bool   `yaml:"offline,omitempty"`
	Calculating *bool   `yaml:"calculating,omitempty"`

	// Dropped expects the press to have been refused because a calculation
	// was outstanding. Ignored on the scenario-level expect.
	Dropped *bool `yaml:"dropped,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected, as are steps with unrecognized keys.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if step.Key == "" {
			return fmt.Errorf("steps[%d]: key is required", i)
		}
		if _, err := domain.ParseKey(step.Key); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}
