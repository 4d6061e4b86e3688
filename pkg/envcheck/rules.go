package envcheck

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Variable types understood by Check.
const (
	TypeString   = "string"
	TypeInt      = "int"
	TypeFloat    = "float"
	TypeBool     = "bool"
	TypeDuration = "duration"
	TypeUUID     = "uuid"
	TypeURL      = "url"
)

var knownTypes = map[string]bool{
	TypeString:   true,
	TypeInt:      true,
	TypeFloat:    true,
	TypeBool:     true,
	TypeDuration: true,
	TypeUUID:     true,
	TypeURL:      true,
}

// RuleSet is the content of a rules file.
type RuleSet struct {
	Variables []Rule `yaml:"variables"`
}

// Rule describes one environment variable.
type Rule struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// Required fails the check when the variable is unset and has no default.
	Required bool `yaml:"required,omitempty"`
	// Default is used when the variable is unset.
	Default *string `yaml:"default,omitempty"`
	// NotEmpty fails the check when the variable is set to "".
	NotEmpty bool `yaml:"not_empty,omitempty"`
	// Patterns, when present, must contain a regular expression that
	// matches the whole value.
	Patterns []string `yaml:"patterns,omitempty"`
	// Equals pins the value.
	Equals *string `yaml:"equals,omitempty"`
	// Forbidden lists values the variable must not have.
	Forbidden []string `yaml:"forbidden,omitempty"`
	// Type converts the value before range checks. Defaults to string.
	Type string `yaml:"type,omitempty"`
	// Min and Max bound numbers, durations (in seconds) and the length of
	// strings.
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
	// Secret hides the value in reports.
	Secret bool `yaml:"secret,omitempty"`
}

// LoadRules reads and validates a rules file.
func LoadRules(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrReadingRules, err)
	}
	defer f.Close()

	return ParseRules(f)
}

// ParseRules decodes and validates rules from r. Unknown keys are rejected.
func ParseRules(r io.Reader) (*RuleSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var rs RuleSet
	if err := dec.Decode(&rs); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrParsingRules, err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Validate reports rules that can never be checked.
func (rs *RuleSet) Validate() error {
	seen := make(map[string]bool, len(rs.Variables))
	for i, rule := range rs.Variables {
		if rule.Name == "" {
			return fmt.Errorf("%w: variable #%d has no name", ErrInvalidRules, i+1)
		}
		if seen[rule.Name] {
			return fmt.Errorf("%w: variable %s is declared twice", ErrInvalidRules, rule.Name)
		}
		seen[rule.Name] = true

		if rule.Type != "" && !knownTypes[rule.Type] {
			return fmt.Errorf("%w: variable %s has unknown type %q", ErrInvalidRules, rule.Name, rule.Type)
		}
		if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
			return fmt.Errorf("%w: variable %s has min greater than max", ErrInvalidRules, rule.Name)
		}
	}
	return nil
}
