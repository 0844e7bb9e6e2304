package registration

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed steps.yaml
var defaultCatalogYAML []byte

var (
	ErrEmptyCatalog   = errors.New("registration catalog has no steps")
	ErrDuplicateField = errors.New("duplicate field name")
	ErrDuplicateStep  = errors.New("duplicate step id")
)

type InputKind string

const (
	InputText    InputKind = "text"
	InputNumeric InputKind = "numeric"
)

type Field struct {
	Name        string    `yaml:"name"`
	Label       string    `yaml:"label"`
	Placeholder string    `yaml:"placeholder"`
	Kind        InputKind `yaml:"kind"`
	// Masked withholds the value from snapshots even when it is not secret.
	Masked bool `yaml:"masked"`
}

// Secret reports whether the field name contains "password". The match is
// case-sensitive, so confirmPassword is not secret.
func (field Field) Secret() bool {
	return strings.Contains(field.Name, "password")
}

// Hidden reports whether snapshots must leave the value out.
func (field Field) Hidden() bool {
	return field.Secret() || field.Masked
}

type Step struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	Fields []Field `yaml:"fields"`
}

// Catalog is the ordered, immutable list of registration steps.
type Catalog struct {
	steps []Step
}

type catalogDocument struct {
	Steps []Step `yaml:"steps"`
}

// DefaultCatalog returns the tailor registration steps compiled into the binary.
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

func ParseCatalog(raw []byte) (Catalog, error) {
	document := catalogDocument{}
	if err := yaml.Unmarshal(raw, &document); err != nil {
		return Catalog{}, fmt.Errorf("decode registration catalog: %w", err)
	}
	return NewCatalog(document.Steps)
}

// NewCatalog validates steps and returns a catalog. FormState is flat across
// steps, so a field name may appear only once in the whole catalog.
func NewCatalog(steps []Step) (Catalog, error) {
	if len(steps) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}

	seenSteps := make(map[string]struct{}, len(steps))
	seenFields := make(map[string]string)
	normalized := make([]Step, 0, len(steps))
	for _, step := range steps {
		stepID := strings.TrimSpace(step.ID)
		if stepID == "" {
			return Catalog{}, errors.New("registration step id is required")
		}
		if _, exists := seenSteps[stepID]; exists {
			return Catalog{}, fmt.Errorf("%w: %s", ErrDuplicateStep, stepID)
		}
		seenSteps[stepID] = struct{}{}

		fields := make([]Field, 0, len(step.Fields))
		for _, field := range step.Fields {
			name := strings.TrimSpace(field.Name)
			if name == "" {
				return Catalog{}, fmt.Errorf("registration step %s has a field without a name", stepID)
			}
			if owner, exists := seenFields[name]; exists {
				return Catalog{}, fmt.Errorf("%w: %s in steps %s and %s", ErrDuplicateField, name, owner, stepID)
			}
			seenFields[name] = stepID

			field.Name = name
			if field.Kind == "" {
				field.Kind = InputText
			}
			fields = append(fields, field)
		}

		normalized = append(normalized, Step{ID: stepID, Title: step.Title, Fields: fields})
	}

	return Catalog{steps: normalized}, nil
}

func (catalog Catalog) Len() int {
	return len(catalog.steps)
}

func (catalog Catalog) Step(index int) Step {
	step := catalog.steps[index]
	step.Fields = append([]Field(nil), step.Fields...)
	return step
}

func (catalog Catalog) Steps() []Step {
	steps := make([]Step, 0, len(catalog.steps))
	for index := range catalog.steps {
		steps = append(steps, catalog.Step(index))
	}
	return steps
}
