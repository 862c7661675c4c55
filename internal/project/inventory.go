package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/SheetYield/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory to the specified JSON file.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	if err := readJSON(path, &inv); err != nil {
		if os.IsNotExist(err) {
			inv = model.DefaultInventory()
			return inv, SaveInventory(path, inv)
		}
		return model.Inventory{}, err
	}
	return inv, nil
}

// ImportInventory merges the inventory stored at path into existing.
// Entries whose ID is already present are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	if err := readJSON(path, &imported); err != nil {
		return existing, err
	}

	toolIDs := make(map[string]bool, len(existing.Tools))
	for _, t := range existing.Tools {
		toolIDs[t.ID] = true
	}
	sheetIDs := make(map[string]bool, len(existing.Sheets))
	for _, s := range existing.Sheets {
		sheetIDs[s.ID] = true
	}

	for _, t := range imported.Tools {
		if !toolIDs[t.ID] {
			existing.Tools = append(existing.Tools, t)
			toolIDs[t.ID] = true
		}
	}
	for _, s := range imported.Sheets {
		if !sheetIDs[s.ID] {
			existing.Sheets = append(existing.Sheets, s)
			sheetIDs[s.ID] = true
		}
	}

	return existing, nil
}
