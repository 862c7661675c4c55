package model

import (
	"time"

	"github.com/google/uuid"
)

// JobTemplate is a reusable job configuration: sheet, figures and settings,
// without a plan.
type JobTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Sheet       Sheet        `json:"sheet"`
	Figures     []Figure     `json:"figures"`
	Settings    PlanSettings `json:"settings"`
}

// NewJobTemplate creates a new template from the given job data.
func NewJobTemplate(name, description string, sheet Sheet, figures []Figure, settings PlanSettings) JobTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return JobTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Sheet:       sheet,
		Figures:     copyFigures(figures),
		Settings:    settings,
	}
}

// ToJob creates a new Job from this template. Figures get fresh IDs so they
// are independent of the template.
func (t JobTemplate) ToJob(jobName string) Job {
	figures := make([]Figure, len(t.Figures))
	for i, f := range t.Figures {
		figures[i] = NewFigure(f.Width, f.Height, f.Necessary)
		figures[i].Label = f.Label
		figures[i].Rotation = f.Rotation
		figures[i].Margin = f.Margin
	}

	return Job{
		Name:     jobName,
		Sheet:    t.Sheet,
		Figures:  figures,
		Settings: t.Settings,
	}
}

// TemplateStore holds a collection of job templates.
type TemplateStore struct {
	Templates []JobTemplate `json:"templates"`
}

func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []JobTemplate{},
	}
}

func (ts *TemplateStore) Add(t JobTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *JobTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

func copyFigures(figures []Figure) []Figure {
	if figures == nil {
		return []Figure{}
	}
	cp := make([]Figure, len(figures))
	copy(cp, figures)
	return cp
}
