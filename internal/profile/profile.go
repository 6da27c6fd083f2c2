// Package profile keeps the list of local profiles and which one is in use.
// A profile only partitions storage keys; there is no authentication.
package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultName = "default"

var (
	ErrExists      = errors.New("profile already exists")
	ErrUnknown     = errors.New("unknown profile")
	ErrInvalidName = errors.New("profile names may only contain letters, digits and '-'")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

type Profile struct {
	Name      string    `yaml:"name"`
	CreatedAt time.Time `yaml:"created_at"`
}

// State is the content of the profiles file.
type State struct {
	Current  string    `yaml:"current"`
	Profiles []Profile `yaml:"profiles"`
}

func (s State) Has(name string) bool {
	return slices.ContainsFunc(s.Profiles, func(p Profile) bool { return p.Name == name })
}

type Registry struct {
	path string
	now  func() time.Time
}

func NewRegistry(path string) *Registry {
	return &Registry{path: path, now: time.Now}
}

// Load reads the profiles file. A missing file yields only the default profile.
func (r *Registry) Load() (State, bool, error) {
	contents, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{
			Current:  DefaultName,
			Profiles: []Profile{{Name: DefaultName}},
		}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("os.ReadFile(%s) > %w", r.path, err)
	}

	var state State
	if err := yaml.Unmarshal(contents, &state); err != nil {
		return State{}, false, fmt.Errorf("yaml.Unmarshal(%s) > %w", r.path, err)
	}
	if state.Current == "" {
		state.Current = DefaultName
	}
	if !state.Has(DefaultName) {
		state.Profiles = append([]Profile{{Name: DefaultName}}, state.Profiles...)
	}
	return state, true, nil
}

func (r *Registry) save(state State) error {
	contents, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("yaml.Marshal > %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(r.path), err)
	}
	if err := os.WriteFile(r.path, contents, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", r.path, err)
	}
	return nil
}

// ValidateName rejects names that cannot be used as a storage key prefix.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (r *Registry) Add(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	state, _, err := r.Load()
	if err != nil {
		return err
	}
	if state.Has(name) {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	state.Profiles = append(state.Profiles, Profile{Name: name, CreatedAt: r.now().UTC()})
	return r.save(state)
}

// Use makes name the current profile.
func (r *Registry) Use(name string) error {
	state, _, err := r.Load()
	if err != nil {
		return err
	}
	if !state.Has(name) {
		return fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	state.Current = name
	return r.save(state)
}

// Resolve picks the profile to work with: an explicit name wins, then the
// current profile of an existing profiles file, then fallback.
func (r *Registry) Resolve(explicit, fallback string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	state, ok, err := r.Load()
	if err != nil {
		return "", err
	}
	if ok {
		return state.Current, nil
	}
	return fallback, nil
}
