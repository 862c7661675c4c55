package model

import (
	"testing"
)

func TestDefaultInventory(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Tools) == 0 || len(inv.Sheets) == 0 {
		t.Fatal("expected default tools and sheets")
	}
	for _, s := range inv.Sheets {
		if err := s.ToSheet().Validate(); err != nil {
			t.Errorf("preset %s is not a valid sheet: %v", s.Name, err)
		}
	}
	if len(inv.SheetNames()) != len(inv.Sheets) {
		t.Error("SheetNames length mismatch")
	}
}

func TestSheetPresetToSheet(t *testing.T) {
	sp := NewSheetPreset("MDF 8x4", 2440, 1220, 12, "MDF")
	s := sp.ToSheet()
	if s.Label != "MDF 8x4" || s.Width != 2440 || s.Height != 1220 || s.Margin != 12 {
		t.Errorf("unexpected sheet %+v", s)
	}
}

func TestInventoryFind(t *testing.T) {
	inv := DefaultInventory()
	first := inv.Sheets[0]

	if got := inv.FindSheetByID(first.ID); got == nil || got.Name != first.Name {
		t.Error("expected to find sheet by ID")
	}
	if inv.FindSheetByName("does not exist") != nil {
		t.Error("expected nil for unknown sheet")
	}
	if inv.FindToolByName("6mm End Mill") == nil {
		t.Error("expected to find tool by name")
	}
}

func TestToolProfileApplyToSettings(t *testing.T) {
	tp := NewToolProfile("Saw", 2500, 700, 4000, 8, 19, 19)
	s := DefaultSettings()
	tp.ApplyToSettings(&s)

	if s.FeedRate != 2500 || s.PlungeRate != 700 || s.SpindleSpeed != 4000 {
		t.Errorf("feeds not applied: %+v", s)
	}
	if s.SafeZ != 8 || s.CutDepth != 19 || s.PassDepth != 19 {
		t.Errorf("depths not applied: %+v", s)
	}
}
