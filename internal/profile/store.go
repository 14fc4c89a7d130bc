package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalidProfile reports a missing or malformed profile definition.
// It is fatal: the server must not start without a valid profile.
var ErrInvalidProfile = errors.New("invalid profile definition")

//go:embed default.toml
var defaultDefinition []byte

// Store holds the immutable in-memory profile record.
type Store struct {
	p Profile
}

// Load reads the TOML profile definition at path and constructs the Store.
// An empty path loads the embedded default definition. Load is called once
// per process; all failures wrap ErrInvalidProfile.
func Load(path string) (*Store, error) {
	data := defaultDefinition
	source := "embedded default"
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidProfile, path, err)
		}
		data = b
		source = path
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidProfile, source, err)
	}

	if err := validate(p); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidProfile, source, err)
	}

	slog.Info("profile loaded", "source", source, "name", p.Name, "skills", len(p.Skills))
	return &Store{p: p}, nil
}

// Profile returns a deep copy of the loaded profile. The stored record is
// never exposed directly, so callers cannot mutate it.
func (s *Store) Profile() Profile {
	return deepCopy(s.p)
}

func validate(p Profile) error {
	switch {
	case p.Name == "":
		return errors.New("missing required field: name")
	case p.Title == "":
		return errors.New("missing required field: title")
	case p.Summary == "":
		return errors.New("missing required field: summary")
	}
	for i, s := range p.Skills {
		if s.Name == "" {
			return fmt.Errorf("skill %d: missing required field: name", i)
		}
	}
	for i, e := range p.Education {
		if e.Institution == "" {
			return fmt.Errorf("education %d: missing required field: institution", i)
		}
		if e.Degree == "" {
			return fmt.Errorf("education %d: missing required field: degree", i)
		}
	}
	return nil
}

func deepCopy(p Profile) Profile {
	cp := p

	if p.Skills != nil {
		cp.Skills = make([]Skill, len(p.Skills))
		copy(cp.Skills, p.Skills)
		for i, s := range p.Skills {
			if s.Keywords != nil {
				cp.Skills[i].Keywords = make([]string, len(s.Keywords))
				copy(cp.Skills[i].Keywords, s.Keywords)
			}
		}
	}
	if p.Education != nil {
		cp.Education = make([]Education, len(p.Education))
		copy(cp.Education, p.Education)
	}
	if p.Contact != nil {
		cp.Contact = make(map[string]string, len(p.Contact))
		for k, v := range p.Contact {
			cp.Contact[k] = v
		}
	}
	return cp
}
