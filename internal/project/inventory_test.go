package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SheetYield/internal/model"
)

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv := model.Inventory{
		Tools:  []model.ToolProfile{model.NewToolProfile("Test Mill", 1500, 500, 18000, 5, 18, 6)},
		Sheets: []model.SheetPreset{model.NewSheetPreset("Test Plywood", 2440, 1220, 10, "Plywood")},
	}
	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Tools) != 1 || loaded.Tools[0].Name != "Test Mill" {
		t.Errorf("unexpected tools %+v", loaded.Tools)
	}
	if len(loaded.Sheets) != 1 || loaded.Sheets[0].Margin != 10 {
		t.Errorf("unexpected sheets %+v", loaded.Sheets)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Sheets) != len(model.DefaultInventory().Sheets) {
		t.Errorf("expected default sheets, got %d", len(inv.Sheets))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default inventory should be written to disk: %v", err)
	}
}

func TestImportInventorySkipsKnownIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.json")

	existing := model.DefaultInventory()
	extra := model.NewSheetPreset("Acrylic 2000x1000", 2000, 1000, 5, "Acrylic")
	incoming := model.Inventory{
		Tools:  []model.ToolProfile{existing.Tools[0]},
		Sheets: []model.SheetPreset{existing.Sheets[0], extra},
	}
	if err := SaveInventory(path, incoming); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Tools) != len(existing.Tools) {
		t.Errorf("duplicate tool should be skipped, got %d tools", len(merged.Tools))
	}
	if len(merged.Sheets) != len(existing.Sheets)+1 {
		t.Errorf("expected one new sheet, got %d sheets", len(merged.Sheets))
	}
	if merged.FindSheetByName("Acrylic 2000x1000") == nil {
		t.Error("imported sheet not found")
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	merged, err := ImportInventory(filepath.Join(t.TempDir(), "missing.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(merged.Sheets) != len(existing.Sheets) {
		t.Error("existing inventory should be returned unchanged")
	}
}
