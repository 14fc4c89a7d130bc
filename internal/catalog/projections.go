package catalog

import (
	"sort"
	"strings"

	"github.com/madhaviai/my-profile-mcp-server/internal/profile"
)

// Payload shapes. Every field is a direct rendering of profile state.

type basicInfo struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type skillList struct {
	Category string   `json:"category,omitempty"`
	Count    int      `json:"count"`
	Skills   []string `json:"skills"`
}

type educationList struct {
	Education []profile.Education `json:"education"`
}

type contactInfo struct {
	Contact map[string]string `json:"contact"`
}

type skillMatch struct {
	Name             string   `json:"name"`
	Category         string   `json:"category,omitempty"`
	Description      string   `json:"description,omitempty"`
	MatchingKeywords []string `json:"matching_keywords,omitempty"`
}

type searchResult struct {
	Query   string       `json:"query"`
	Matches int          `json:"matches"`
	Skills  []skillMatch `json:"skills"`
}

type technologyList struct {
	Count        int      `json:"count"`
	Technologies []string `json:"technologies"`
}

// descriptors returns the fixed tool set. Registration order is the
// discovery order advertised to clients.
func descriptors() []Descriptor {
	return []Descriptor{
		{
			Name:        "get_basic_info",
			Description: "Get the profile's name, current title, and professional summary.",
			project:     projectBasicInfo,
		},
		{
			Name:        "get_skills",
			Description: "Get the ordered list of skills, optionally filtered by category.",
			Params: []Param{
				{Name: "category", Type: "string", Description: "Skill category to filter by (e.g. \"ai_ml\", \"infrastructure\")"},
			},
			project: projectSkills,
		},
		{
			Name:        "get_education",
			Description: "Get the education history in order.",
			project:     projectEducation,
		},
		{
			Name:        "get_contact",
			Description: "Get contact channels, optionally filtered to a single channel.",
			Params: []Param{
				{Name: "channel", Type: "string", Description: "Contact channel to return (e.g. \"email\", \"linkedin\")"},
			},
			project: projectContact,
		},
		{
			Name:        "search_skills",
			Description: "Search skills by keyword or technology across names, categories, and keywords.",
			Params: []Param{
				{Name: "query", Type: "string", Description: "Search term (e.g. \"Python\", \"Kubernetes\", \"LLM\")", Required: true},
			},
			project: projectSearchSkills,
		},
		{
			Name:        "get_technologies",
			Description: "Get the sorted list of all technologies and tools across every skill.",
			project:     projectTechnologies,
		},
	}
}

func projectBasicInfo(p profile.Profile, _ Args) any {
	return basicInfo{Name: p.Name, Title: p.Title, Summary: p.Summary}
}

// projectSkills keeps the profile's skill order. A category that matches
// nothing yields an empty list, not an error.
func projectSkills(p profile.Profile, args Args) any {
	category := args.String("category", "")

	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if category != "" && !strings.EqualFold(s.Category, category) {
			continue
		}
		names = append(names, s.Name)
	}
	return skillList{Category: category, Count: len(names), Skills: names}
}

func projectEducation(p profile.Profile, _ Args) any {
	edu := p.Education
	if edu == nil {
		edu = []profile.Education{}
	}
	return educationList{Education: edu}
}

// projectContact returns only the requested channel when one is given.
// An unknown channel yields an empty map.
func projectContact(p profile.Profile, args Args) any {
	channel := args.String("channel", "")
	if channel == "" {
		contact := p.Contact
		if contact == nil {
			contact = map[string]string{}
		}
		return contactInfo{Contact: contact}
	}

	filtered := map[string]string{}
	for name, value := range p.Contact {
		if strings.EqualFold(name, channel) {
			filtered[name] = value
		}
	}
	return contactInfo{Contact: filtered}
}

func projectSearchSkills(p profile.Profile, args Args) any {
	query := strings.ToLower(args.String("query", ""))

	matches := []skillMatch{}
	for _, s := range p.Skills {
		searchable := strings.ToLower(s.Name + " " + s.Category + " " + s.Description + " " + strings.Join(s.Keywords, " "))
		if !strings.Contains(searchable, query) {
			continue
		}

		var matching []string
		for _, k := range s.Keywords {
			if strings.Contains(strings.ToLower(k), query) {
				matching = append(matching, k)
			}
		}
		matches = append(matches, skillMatch{
			Name:             s.Name,
			Category:         s.Category,
			Description:      s.Description,
			MatchingKeywords: matching,
		})
	}
	return searchResult{Query: args.String("query", ""), Matches: len(matches), Skills: matches}
}

func projectTechnologies(p profile.Profile, _ Args) any {
	seen := make(map[string]struct{})
	for _, s := range p.Skills {
		for _, k := range s.Keywords {
			seen[k] = struct{}{}
		}
	}

	techs := make([]string, 0, len(seen))
	for k := range seen {
		techs = append(techs, k)
	}
	sort.Strings(techs)
	return technologyList{Count: len(techs), Technologies: techs}
}
