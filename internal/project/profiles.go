package project

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/SheetYield/internal/model"
)

var errUnnamedProfile = errors.New("profile has no name")

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom controller profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.GCodeProfile) error {
	return writeJSON(path, profiles)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.GCodeProfile, error) {
	var profiles []model.GCodeProfile
	if err := readJSON(path, &profiles); err != nil {
		if os.IsNotExist(err) {
			return []model.GCodeProfile{}, nil
		}
		return nil, err
	}
	for _, p := range profiles {
		if p.Name == "" {
			return nil, errUnnamedProfile
		}
	}
	return profiles, nil
}

// FindProfile resolves a profile name against custom profiles first and the
// built-in ones second. Unknown names resolve to the generic profile.
func FindProfile(name string, custom []model.GCodeProfile) model.GCodeProfile {
	for _, p := range custom {
		if p.Name == name {
			return p
		}
	}
	return model.GetProfile(name)
}
