package profile

// Profile is the single professional profile served by this process:
// identity, skills, education history, and contact channels. It is loaded
// once at startup and never mutated afterwards.
type Profile struct {
	Name      string            `toml:"name" json:"name"`
	Title     string            `toml:"title" json:"title"`
	Summary   string            `toml:"summary" json:"summary"`
	Skills    []Skill           `toml:"skills" json:"skills"`
	Education []Education       `toml:"education" json:"education"`
	Contact   map[string]string `toml:"contact" json:"contact"` // channel → value, e.g. "email" → address
}

// Skill is one area of expertise. Category groups related skills
// (e.g. "ai_ml", "infrastructure"); Keywords are the concrete
// technologies the skill covers.
type Skill struct {
	Name        string   `toml:"name" json:"name"`
	Category    string   `toml:"category" json:"category,omitempty"`
	Description string   `toml:"description" json:"description,omitempty"`
	Keywords    []string `toml:"keywords" json:"keywords,omitempty"`
}

// Education is one entry in the education history.
type Education struct {
	Institution string `toml:"institution" json:"institution"`
	Degree      string `toml:"degree" json:"degree"`
	Period      string `toml:"period" json:"period,omitempty"`
}
