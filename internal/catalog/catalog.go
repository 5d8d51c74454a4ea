// Package catalog holds the static career catalog used as the universe of
// possible match outputs. The catalog is defined once at process start and
// never mutated; scoring always iterates the full fixed set in order.
package catalog

// InterestBoost is the declarative interest rule for one career: if any
// trigger tag appears in the submission's interest set, the bonus applies.
type InterestBoost struct {
	Triggers []string
	Bonus    int
}

// CareerProfile describes one career in the catalog.
type CareerProfile struct {
	Name     string
	Skills   []string
	Why      []string
	Interest InterestBoost
}

// DefaultCareer is the fallback profile name for unknown career lookups.
const DefaultCareer = "Software Engineer"

var profiles = []CareerProfile{
	{
		Name:   "Software Engineer",
		Skills: []string{"Data Structures", "Algorithms", "Python", "Git", "System Design"},
		Why:    []string{"Strong analytical thinking", "Enjoys building things", "High demand across industries"},
		Interest: InterestBoost{
			Triggers: []string{"code", "programming", "software"},
			Bonus:    25,
		},
	},
	{
		Name:   "Data Scientist",
		Skills: []string{"Statistics", "Python", "Pandas", "Machine Learning", "Visualization"},
		Why:    []string{"Enjoys working with data", "Curiosity for patterns", "Growing AI ecosystem"},
		Interest: InterestBoost{
			Triggers: []string{"data", "math"},
			Bonus:    24,
		},
	},
	{
		Name:   "UI/UX Designer",
		Skills: []string{"Figma", "User Research", "Prototyping", "Visual Design", "Accessibility"},
		Why:    []string{"Creative problem solving", "Empathy for users", "Portfolio-driven growth"},
		Interest: InterestBoost{
			Triggers: []string{"design"},
			Bonus:    22,
		},
	},
	{
		Name:   "Cybersecurity Analyst",
		Skills: []string{"Network Basics", "Linux", "Threat Modeling", "SIEM", "Security+"},
		Why:    []string{"Detail-oriented", "Protective mindset", "Rising threats -> demand"},
		Interest: InterestBoost{
			Triggers: []string{"security", "network"},
			Bonus:    20,
		},
	},
	{
		Name:   "Product Manager",
		Skills: []string{"Communication", "Roadmapping", "User Stories", "Analytics", "Leadership"},
		Why:    []string{"Cross-functional", "User + business focus", "High leverage role"},
		Interest: InterestBoost{
			Triggers: []string{"lead", "business"},
			Bonus:    18,
		},
	},
}

// Profiles returns the catalog in its fixed iteration order.
// Callers must not mutate the returned profiles.
func Profiles() []CareerProfile {
	return profiles
}

// Lookup returns the profile for the given career name, falling back to the
// Software Engineer profile when the name is unknown.
func Lookup(career string) CareerProfile {
	for _, p := range profiles {
		if p.Name == career {
			return p
		}
	}
	return Lookup(DefaultCareer)
}
