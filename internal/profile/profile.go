package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"tnivo/internal/config"
	"tnivo/internal/errs"
)

// Manager edits the named regex profiles stored in the configuration file.
type Manager struct {
	cfg  *config.Config
	path string
}

// NewManager wraps the loaded config. path is where changes are persisted;
// when the config file did not exist yet, pass the resolved default path so
// the first Save creates it.
func NewManager(cfg *config.Config, path string) *Manager {
	return &Manager{cfg: cfg, path: path}
}

// List returns all profiles in config order.
func (m *Manager) List() []config.Profile {
	out := make([]config.Profile, len(m.cfg.Profiles))
	copy(out, m.cfg.Profiles)
	return out
}

// Get looks a profile up by exact name.
func (m *Manager) Get(name string) (config.Profile, error) {
	name = strings.TrimSpace(name)
	for _, profile := range m.cfg.Profiles {
		if profile.Name == name {
			return profile, nil
		}
	}
	return config.Profile{}, errs.Wrap(errs.ErrNotFound, "profile", "get", fmt.Sprintf("no profile named %q", name), nil)
}

// Save adds a new profile and persists the configuration. Duplicate names are
// rejected rather than overwritten.
func (m *Manager) Save(name, pattern string) error {
	name = strings.TrimSpace(name)
	pattern = strings.TrimSpace(pattern)
	if name == "" {
		return errs.Wrap(errs.ErrValidation, "profile", "save", "profile name is required", nil)
	}
	if pattern == "" {
		return errs.Wrap(errs.ErrValidation, "profile", "save", "profile pattern is required", nil)
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return errs.Wrap(errs.ErrValidation, "profile", "save", fmt.Sprintf("invalid pattern %q", pattern), err)
	}
	for _, existing := range m.cfg.Profiles {
		if existing.Name == name {
			return errs.Wrap(errs.ErrConflict, "profile", "save", fmt.Sprintf("profile %q already exists", name), nil)
		}
	}
	m.cfg.Profiles = append(m.cfg.Profiles, config.Profile{Name: name, Pattern: pattern})
	return m.persist()
}

// Delete removes a profile by name and persists the configuration.
func (m *Manager) Delete(name string) error {
	name = strings.TrimSpace(name)
	for index, existing := range m.cfg.Profiles {
		if existing.Name == name {
			m.cfg.Profiles = append(m.cfg.Profiles[:index], m.cfg.Profiles[index+1:]...)
			return m.persist()
		}
	}
	return errs.Wrap(errs.ErrNotFound, "profile", "delete", fmt.Sprintf("no profile named %q", name), nil)
}

// exchangeRecord is the JSON shape profiles are exported and imported in.
// The "regex" key is kept for compatibility with previously exported files.
type exchangeRecord struct {
	Name  string `json:"name"`
	Regex string `json:"regex"`
}

// ExportJSON writes all profiles to path as a JSON array.
func (m *Manager) ExportJSON(path string) error {
	records := make([]exchangeRecord, 0, len(m.cfg.Profiles))
	for _, profile := range m.cfg.Profiles {
		records = append(records, exchangeRecord{Name: profile.Name, Regex: profile.Pattern})
	}
	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errs.Wrap(errs.ErrTransient, "profile", "export", "encode profiles", err)
	}
	encoded = append(encoded, '\n')
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return errs.Wrap(errs.ErrTransient, "profile", "export", fmt.Sprintf("write %s", path), err)
	}
	return nil
}

// ImportJSON appends profiles from an exported file, skipping entries whose
// name already exists or whose pattern does not compile. It returns how many
// profiles were added and how many were skipped.
func (m *Manager) ImportJSON(path string) (added, skipped int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, errs.Wrap(errs.ErrNotFound, "profile", "import", fmt.Sprintf("read %s", path), err)
	}
	var records []exchangeRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return 0, 0, errs.Wrap(errs.ErrValidation, "profile", "import", fmt.Sprintf("parse %s", path), err)
	}

	existing := make(map[string]struct{}, len(m.cfg.Profiles))
	for _, profile := range m.cfg.Profiles {
		existing[profile.Name] = struct{}{}
	}

	for _, record := range records {
		name := strings.TrimSpace(record.Name)
		pattern := strings.TrimSpace(record.Regex)
		if name == "" || pattern == "" {
			skipped++
			continue
		}
		if _, dup := existing[name]; dup {
			skipped++
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			skipped++
			continue
		}
		m.cfg.Profiles = append(m.cfg.Profiles, config.Profile{Name: name, Pattern: pattern})
		existing[name] = struct{}{}
		added++
	}

	if added > 0 {
		if err := m.persist(); err != nil {
			return added, skipped, err
		}
	}
	return added, skipped, nil
}

func (m *Manager) persist() error {
	if strings.TrimSpace(m.path) == "" {
		return errs.Wrap(errs.ErrConfiguration, "profile", "persist", "no config path to save to", nil)
	}
	if err := m.cfg.Save(m.path); err != nil {
		return errs.Wrap(errs.ErrTransient, "profile", "persist", "save config", err)
	}
	return nil
}
