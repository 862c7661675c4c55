package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SheetYield/internal/model"
)

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	custom := model.GetProfile("Grbl")
	custom.Name = "Shop Router"
	custom.DecimalPlaces = 2
	if err := SaveCustomProfiles(path, []model.GCodeProfile{custom}); err != nil {
		t.Fatalf("SaveCustomProfiles failed: %v", err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Name != "Shop Router" || loaded[0].DecimalPlaces != 2 {
		t.Errorf("unexpected profiles %+v", loaded)
	}
}

func TestLoadCustomProfilesMissingFile(t *testing.T) {
	loaded, err := LoadCustomProfiles(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("expected empty slice, got %v", loaded)
	}
}

func TestLoadCustomProfilesRejectsUnnamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	if err := os.WriteFile(path, []byte(`[{"name":""}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCustomProfiles(path); err == nil {
		t.Fatal("expected error for unnamed profile")
	}
}

func TestFindProfile(t *testing.T) {
	custom := []model.GCodeProfile{{Name: "Grbl", Description: "patched"}}

	if p := FindProfile("Grbl", custom); p.Description != "patched" {
		t.Error("custom profile should shadow the built-in one")
	}
	if p := FindProfile("Mach3", custom); p.Name != "Mach3" {
		t.Errorf("expected built-in Mach3, got %s", p.Name)
	}
	if p := FindProfile("nope", nil); p.Name != "Generic" {
		t.Errorf("expected Generic fallback, got %s", p.Name)
	}
}
