package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// LoadMappings reads the repository team map and the login email map from JSON files.
// An empty path yields an empty table. Both files are attempted; a failing one leaves its
// table empty and its error is joined into the result. Parse failures match ErrMalformedMapping.
func LoadMappings(teamMapPath, userMapPath string) (Mappings, error) {
	m := Mappings{
		TeamLeads:  map[string][]string{},
		UserEmails: map[string]string{},
	}

	var errs []error
	if teamMapPath != "" {
		if err := readJSON(teamMapPath, &m.TeamLeads); err != nil {
			m.TeamLeads = map[string][]string{}
			errs = append(errs, fmt.Errorf("failed to load team map: %w", err))
		}
	}
	if userMapPath != "" {
		if err := readJSON(userMapPath, &m.UserEmails); err != nil {
			m.UserEmails = map[string]string{}
			errs = append(errs, fmt.Errorf("failed to load user email map: %w", err))
		}
	}
	return m, errors.Join(errs...)
}

// MissingOnly reports whether every failure joined into err is an absent mapping file.
func MissingOnly(err error) bool {
	if err == nil {
		return false
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !MissingOnly(e) {
				return false
			}
		}
		return true
	}
	return errors.Is(err, os.ErrNotExist) && !errors.Is(err, ErrMalformedMapping)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: invalid JSON in %s: %w", ErrMalformedMapping, path, err)
	}
	return nil
}
