package registration

import (
	"errors"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() unexpected error: %v", err)
	}

	wantIDs := []string{"account", "business", "services", "verification"}
	steps := catalog.Steps()
	if len(steps) != len(wantIDs) {
		t.Fatalf("DefaultCatalog() steps = %d, want %d", len(steps), len(wantIDs))
	}
	for index, step := range steps {
		if step.ID != wantIDs[index] {
			t.Fatalf("step %d id = %q, want %q", index, step.ID, wantIDs[index])
		}
		if len(step.Fields) == 0 {
			t.Fatalf("step %q has no fields", step.ID)
		}
	}

	experience := steps[3].Fields[0]
	if experience.Name != FieldExperience || experience.Kind != InputNumeric {
		t.Fatalf("experience field = %+v, want numeric %q", experience, FieldExperience)
	}
	if steps[1].Fields[0].Kind != InputText {
		t.Fatalf("default kind = %q, want %q", steps[1].Fields[0].Kind, InputText)
	}
}

func TestFieldSecret(t *testing.T) {
	testCases := map[string]bool{
		"password":        true,
		"confirmPassword": false,
		"newpassword":     true,
		"businessName":    false,
		"portfolio":       false,
	}
	for name, want := range testCases {
		if got := (Field{Name: name}).Secret(); got != want {
			t.Fatalf("Field{%q}.Secret() = %v, want %v", name, got, want)
		}
	}
}

func TestFieldHidden(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() unexpected error: %v", err)
	}

	account := catalog.Step(0)
	for _, field := range account.Fields {
		if !field.Hidden() {
			t.Fatalf("field %q should be hidden", field.Name)
		}
	}
	if !account.Fields[1].Masked || account.Fields[1].Secret() {
		t.Fatalf("confirmPassword = %+v, want masked and not secret", account.Fields[1])
	}
	if (Field{Name: FieldPortfolio}).Hidden() {
		t.Fatal("portfolio should not be hidden")
	}
}

func TestParseCatalogRejectsDuplicateFieldNames(t *testing.T) {
	raw := []byte(`
steps:
  - id: first
    title: First
    fields:
      - name: notes
  - id: second
    title: Second
    fields:
      - name: notes
`)
	_, err := ParseCatalog(raw)
	if !errors.Is(err, ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}
}

func TestNewCatalogRejectsDuplicateStepIDs(t *testing.T) {
	_, err := NewCatalog([]Step{{ID: "one"}, {ID: "one"}})
	if !errors.Is(err, ErrDuplicateStep) {
		t.Fatalf("expected ErrDuplicateStep, got %v", err)
	}
}

func TestParseCatalogRejectsEmptyDocument(t *testing.T) {
	if _, err := ParseCatalog([]byte("steps: []")); !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestCatalogStepReturnsCopy(t *testing.T) {
	catalog, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() unexpected error: %v", err)
	}

	step := catalog.Step(0)
	step.Fields[0].Name = "mutated"
	if catalog.Step(0).Fields[0].Name != FieldPassword {
		t.Fatal("expected catalog to be immutable through Step()")
	}
}
