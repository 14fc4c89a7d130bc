package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validDefinition = `
name = "Madhavi K"
title = "AI Systems Engineer"
summary = "Builds AI systems."

[contact]
email = "a@example.com"
linkedin = "https://linkedin.com/in/madhaviai"

[[education]]
institution = "Purdue University"
degree = "Master's, Computer Science"
period = "2018-2020"

[[skills]]
name = "Go"
category = "backend"
keywords = ["concurrency", "services"]

[[skills]]
name = "Rust"
category = "backend"

[[skills]]
name = "Python"
category = "ai_ml"
keywords = ["ML models", "pipelines"]
`

func TestLoad_EmbeddedDefault(t *testing.T) {
	store, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := store.Profile()
	if p.Name != "Madhavi K" {
		t.Errorf("Name = %q, want %q", p.Name, "Madhavi K")
	}
	if p.Title != "AI Systems Engineer" {
		t.Errorf("Title = %q, want %q", p.Title, "AI Systems Engineer")
	}
	if len(p.Skills) != 13 {
		t.Errorf("len(Skills) = %d, want 13", len(p.Skills))
	}
	if p.Contact["linkedin"] == "" {
		t.Error("expected linkedin contact channel in default profile")
	}
	if len(p.Education) != 1 {
		t.Fatalf("len(Education) = %d, want 1", len(p.Education))
	}
	if p.Education[0].Institution != "Purdue University" {
		t.Errorf("Institution = %q, want %q", p.Education[0].Institution, "Purdue University")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeDefinition(t, validDefinition)

	store, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := store.Profile()
	if p.Name != "Madhavi K" {
		t.Errorf("Name = %q, want %q", p.Name, "Madhavi K")
	}
	if len(p.Skills) != 3 {
		t.Fatalf("len(Skills) = %d, want 3", len(p.Skills))
	}
	if p.Skills[0].Name != "Go" || p.Skills[1].Name != "Rust" || p.Skills[2].Name != "Python" {
		t.Errorf("skill order not preserved: %+v", p.Skills)
	}
	if p.Contact["email"] != "a@example.com" {
		t.Errorf("Contact[email] = %q, want %q", p.Contact["email"], "a@example.com")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeDefinition(t, `name = "unterminated`)
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name       string
		definition string
	}{
		{
			name: "missing name",
			definition: `
title = "Engineer"
summary = "Does things."
`,
		},
		{
			name: "missing title",
			definition: `
name = "Someone"
summary = "Does things."
`,
		},
		{
			name: "missing summary",
			definition: `
name = "Someone"
title = "Engineer"
`,
		},
		{
			name: "skill without name",
			definition: `
name = "Someone"
title = "Engineer"
summary = "Does things."

[[skills]]
category = "backend"
`,
		},
		{
			name: "education without institution",
			definition: `
name = "Someone"
title = "Engineer"
summary = "Does things."

[[education]]
degree = "BSc"
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeDefinition(t, tc.definition)
			_, err := Load(path)
			if !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}
}

func TestProfile_Immutable(t *testing.T) {
	path := writeDefinition(t, validDefinition)
	store, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := store.Profile()
	p.Name = "mutated"
	p.Skills[0].Name = "mutated"
	p.Skills[0].Keywords[0] = "mutated"
	p.Education[0].Institution = "mutated"
	p.Contact["email"] = "mutated"

	fresh := store.Profile()
	if fresh.Name != "Madhavi K" {
		t.Errorf("Name mutated through copy: %q", fresh.Name)
	}
	if fresh.Skills[0].Name != "Go" {
		t.Errorf("Skills mutated through copy: %q", fresh.Skills[0].Name)
	}
	if fresh.Skills[0].Keywords[0] != "concurrency" {
		t.Errorf("Keywords mutated through copy: %q", fresh.Skills[0].Keywords[0])
	}
	if fresh.Education[0].Institution != "Purdue University" {
		t.Errorf("Education mutated through copy: %q", fresh.Education[0].Institution)
	}
	if fresh.Contact["email"] != "a@example.com" {
		t.Errorf("Contact mutated through copy: %q", fresh.Contact["email"])
	}
}
