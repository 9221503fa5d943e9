package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/warrior/internal/models"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported file extension %q (want .json, .toml or .yaml)", filepath.Ext(path))
}

// DecodeError reports a state document that is malformed or breaks a ledger
// invariant. Missing fields are not errors: they decode as empty containers
// and are filled in by normalization.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid %s state document: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func Marshal(st *models.State, f Format) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(st); err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(st); err != nil {
			return nil, fmt.Errorf("encoding TOML: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
	return buf.Bytes(), nil
}

func Decode(data []byte, f Format) (*models.State, error) {
	var st models.State
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &st)
	case FormatTOML:
		_, err = toml.Decode(string(data), &st)
	case FormatYAML:
		err = yaml.Unmarshal(data, &st)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
	if err != nil {
		return nil, &DecodeError{Format: f, Err: err}
	}
	if err := Validate(&st); err != nil {
		return nil, &DecodeError{Format: f, Err: err}
	}
	return &st, nil
}

// Validate checks the invariants normalization cannot repair: identities,
// calendar days, results and the one-session-per-machine-per-day key.
func Validate(st *models.State) error {
	var errs []error

	machines := make(map[string]bool, len(st.Machines))
	for i, m := range st.Machines {
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("machine #%d has no id", i))
			continue
		}
		if machines[m.ID] {
			errs = append(errs, fmt.Errorf("machine id %s is duplicated", m.ID))
		}
		machines[m.ID] = true
	}

	days := make(map[string]bool, len(st.Sessions))
	for i, s := range st.Sessions {
		if !validDay(s.Date) {
			errs = append(errs, fmt.Errorf("session #%d has invalid date %q", i, s.Date))
		}
		if !s.Result.Valid() {
			errs = append(errs, fmt.Errorf("session #%d has invalid result %q", i, s.Result))
		}
		key := s.MachineID + "|" + s.Date
		if days[key] {
			errs = append(errs, fmt.Errorf("machine %s has two sessions on %s", s.MachineID, s.Date))
		}
		days[key] = true
	}

	if aw := st.ActiveWorkout; aw != nil {
		if !validDay(aw.Date) {
			errs = append(errs, fmt.Errorf("active workout has invalid date %q", aw.Date))
		}
		for _, it := range aw.Items {
			if it.Result != models.ResultUnset && !it.Result.Valid() {
				errs = append(errs, fmt.Errorf("active workout item %s has invalid result %q", it.MachineID, it.Result))
			}
		}
	}

	return errors.Join(errs...)
}

func validDay(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
