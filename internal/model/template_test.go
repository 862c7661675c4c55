package model

import (
	"testing"
)

func TestNewJobTemplate(t *testing.T) {
	figures := []Figure{
		{ID: "a", Label: "Side", Width: 600, Height: 400, Necessary: 2},
		{ID: "b", Label: "Top", Width: 500, Height: 300, Necessary: 1, Rotation: true},
	}
	tmpl := NewJobTemplate("Cabinet", "Standard cabinet", NewSheet(2440, 1220, 10), figures, DefaultSettings())

	if tmpl.Name != "Cabinet" {
		t.Errorf("expected name 'Cabinet', got %q", tmpl.Name)
	}
	if tmpl.ID == "" || tmpl.CreatedAt == "" {
		t.Error("expected ID and CreatedAt to be set")
	}
	if len(tmpl.Figures) != 2 {
		t.Fatalf("expected 2 figures, got %d", len(tmpl.Figures))
	}

	figures[0].Width = 1
	if tmpl.Figures[0].Width != 600 {
		t.Error("template must hold its own copy of the figures")
	}
}

func TestNewJobTemplateNilFigures(t *testing.T) {
	tmpl := NewJobTemplate("Empty", "", NewSheet(100, 100, 0), nil, DefaultSettings())
	if tmpl.Figures == nil {
		t.Error("expected non-nil figures slice")
	}
}

func TestJobTemplate_ToJob(t *testing.T) {
	figures := []Figure{{ID: "a", Label: "Side", Width: 600, Height: 400, Necessary: 2, Rotation: true, Margin: 1.5}}
	settings := DefaultSettings()
	settings.Order = SortInput

	tmpl := NewJobTemplate("Test", "desc", NewSheet(2440, 1220, 10), figures, settings)
	job := tmpl.ToJob("My Job")

	if job.Name != "My Job" {
		t.Errorf("expected job name 'My Job', got %q", job.Name)
	}
	if job.Settings.Order != SortInput {
		t.Errorf("expected settings to be carried, got order %s", job.Settings.Order)
	}
	if job.Sheet.Margin != 10 {
		t.Errorf("expected sheet margin 10, got %f", job.Sheet.Margin)
	}
	f := job.Figures[0]
	if f.ID == "a" {
		t.Error("expected a fresh figure ID")
	}
	if f.Label != "Side" || !f.Rotation || f.Margin != 1.5 || f.Necessary != 2 {
		t.Errorf("figure fields not carried: %+v", f)
	}
	if job.Plan != nil {
		t.Error("a job from a template has no plan")
	}
}

func TestTemplateStore(t *testing.T) {
	store := NewTemplateStore()
	t1 := NewJobTemplate("One", "", NewSheet(100, 100, 0), nil, DefaultSettings())
	t2 := NewJobTemplate("Two", "", NewSheet(100, 100, 0), nil, DefaultSettings())
	store.Add(t1)
	store.Add(t2)

	if names := store.Names(); len(names) != 2 || names[1] != "Two" {
		t.Errorf("unexpected names %v", names)
	}
	if store.FindByID(t1.ID) == nil {
		t.Error("expected to find template by ID")
	}
	if store.FindByName("Two") == nil {
		t.Error("expected to find template by name")
	}
	if !store.Remove(t1.ID) {
		t.Error("expected Remove to succeed")
	}
	if store.Remove(t1.ID) {
		t.Error("second Remove should fail")
	}
	if store.FindByID(t1.ID) != nil {
		t.Error("removed template still found")
	}
}

func TestJobFigures(t *testing.T) {
	job := NewJob()
	job.Plan = &ProductionPlan{}
	job.AddFigure(Figure{Width: 10, Height: 20, Necessary: 3})
	job.AddFigure(Figure{Width: 5, Height: 5, Necessary: 4})

	if job.Plan != nil {
		t.Error("adding a figure must invalidate the plan")
	}
	if job.Figures[0].ID == "" {
		t.Error("expected an ID to be assigned")
	}
	if job.TotalDemand() != 7 {
		t.Errorf("expected demand 7, got %d", job.TotalDemand())
	}
	if !job.RemoveFigure(job.Figures[0].ID) || len(job.Figures) != 1 {
		t.Error("expected figure to be removed")
	}
}
