package registration

const (
	ActionNextStep = "Next Step"
	ActionComplete = "Complete Registration"
)

type FieldView struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder"`
	Kind        InputKind `json:"kind"`
	Secret      bool      `json:"secret"`
	Hidden      bool      `json:"hidden"`
	Value       string    `json:"value"`
}

// Snapshot is what a client needs to render the current step. Hidden values
// are never echoed back.
type Snapshot struct {
	StepID    string      `json:"step_id"`
	Title     string      `json:"title"`
	Index     int         `json:"index"`
	StepCount int         `json:"step_count"`
	Progress  float64     `json:"progress"`
	Fields    []FieldView `json:"fields"`
	Action    string      `json:"action"`
	Phase     Phase       `json:"phase"`
	Pending   bool        `json:"pending"`
	Error     string      `json:"error,omitempty"`
}

func (stepper *Stepper) Snapshot() Snapshot {
	stepper.mu.Lock()
	defer stepper.mu.Unlock()

	step := stepper.catalog.Step(stepper.index)
	fields := make([]FieldView, 0, len(step.Fields))
	for _, field := range step.Fields {
		view := FieldView{
			Name:        field.Name,
			Label:       field.Label,
			Placeholder: field.Placeholder,
			Kind:        field.Kind,
			Secret:      field.Secret(),
			Hidden:      field.Hidden(),
		}
		if !view.Hidden {
			view.Value = stepper.form[field.Name]
		}
		fields = append(fields, view)
	}

	action := ActionNextStep
	if stepper.index == stepper.lastIndex() {
		action = ActionComplete
	}

	snapshot := Snapshot{
		StepID:    step.ID,
		Title:     step.Title,
		Index:     stepper.index,
		StepCount: stepper.catalog.Len(),
		Progress:  stepper.progressLocked(),
		Fields:    fields,
		Action:    action,
		Phase:     stepper.phase,
		Pending:   stepper.phase == PhasePending,
	}
	if stepper.lastErr != nil {
		snapshot.Error = stepper.lastErr.Error()
	}
	return snapshot
}
