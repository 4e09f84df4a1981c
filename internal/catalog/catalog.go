// Package catalog serves the static course fixtures browsed by the CLI and
// the HTTP API. The data is embedded at build time and never changes.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category groups courses by subject.
type Category string

const (
	CategoryWebDevelopment  Category = "Web Development"
	CategoryDataScience     Category = "Data Science"
	CategoryMobileApps      Category = "Mobile Apps"
	CategoryCybersecurity   Category = "Cybersecurity"
	CategoryAIML            Category = "AI & ML"
	CategoryGameDevelopment Category = "Game Development"
)

// AllCategories lists every known category.
var AllCategories = []Category{
	CategoryWebDevelopment, CategoryDataScience, CategoryMobileApps,
	CategoryCybersecurity, CategoryAIML, CategoryGameDevelopment,
}

// SkillLevel is the expected starting experience for a course.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
)

// AllSkillLevels lists every known skill level.
var AllSkillLevels = []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Lesson is one video in a course.
type Lesson struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	VideoID     string `yaml:"video_id" json:"videoId"`
	Duration    string `yaml:"duration" json:"duration"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// Course is a catalog entry.
type Course struct {
	ID              string     `yaml:"id" json:"id"`
	Title           string     `yaml:"title" json:"title"`
	Description     string     `yaml:"description" json:"description"`
	LongDescription string     `yaml:"long_description" json:"longDescription,omitempty"`
	Category        Category   `yaml:"category" json:"category"`
	SkillLevel      SkillLevel `yaml:"skill_level" json:"skillLevel"`
	Instructor      string     `yaml:"instructor" json:"instructor,omitempty"`
	Duration        string     `yaml:"duration" json:"duration,omitempty"`
	Tags            []string   `yaml:"tags" json:"tags,omitempty"`
	Rating          float64    `yaml:"rating" json:"rating,omitempty"`
	EnrollmentCount int        `yaml:"enrollment_count" json:"enrollmentCount,omitempty"`
	Lessons         []Lesson   `yaml:"lessons" json:"lessons,omitempty"`
}

//go:embed courses.yaml
var fixtures []byte

// Catalog is an immutable, ordered set of courses.
type Catalog struct {
	courses []Course
	byID    map[string]int
}

// Load parses YAML course fixtures and checks them.
func Load(data []byte) (*Catalog, error) {
	var courses []Course
	if err := yaml.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{courses: courses, byID: make(map[string]int, len(courses))}
	for i, course := range courses {
		if course.ID == "" {
			return nil, fmt.Errorf("course %d has no id", i)
		}
		if _, dup := c.byID[course.ID]; dup {
			return nil, fmt.Errorf("duplicate course id %q", course.ID)
		}
		if !knownCategory(course.Category) {
			return nil, fmt.Errorf("course %q: unknown category %q", course.ID, course.Category)
		}
		if !knownLevel(course.SkillLevel) {
			return nil, fmt.Errorf("course %q: unknown skill level %q", course.ID, course.SkillLevel)
		}
		c.byID[course.ID] = i
	}
	return c, nil
}

// Default returns the embedded catalog. The fixtures are checked by tests,
// so a parse failure here is a build defect.
func Default() *Catalog {
	c, err := Load(fixtures)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// All returns every course in catalog order.
func (c *Catalog) All() []Course {
	out := make([]Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// Get looks a course up by id.
func (c *Catalog) Get(id string) (Course, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Course{}, false
	}
	return c.courses[i], true
}

// Query filters the catalog. Zero fields, and the value "all" for category
// and level, match everything.
type Query struct {
	Search   string
	Category string
	Level    string
}

// Filter returns the courses matching every set field of q, in catalog order.
// Search is a case-insensitive substring match on title or description.
func (c *Catalog) Filter(q Query) []Course {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	category := normalizeFacet(q.Category)
	level := normalizeFacet(q.Level)

	out := make([]Course, 0, len(c.courses))
	for _, course := range c.courses {
		if search != "" &&
			!strings.Contains(strings.ToLower(course.Title), search) &&
			!strings.Contains(strings.ToLower(course.Description), search) {
			continue
		}
		if category != "" && !strings.EqualFold(string(course.Category), category) {
			continue
		}
		if level != "" && !strings.EqualFold(string(course.SkillLevel), level) {
			continue
		}
		out = append(out, course)
	}
	return out
}

// Categories returns the distinct categories present, in first-seen order.
func (c *Catalog) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, course := range c.courses {
		if !seen[course.Category] {
			seen[course.Category] = true
			out = append(out, course.Category)
		}
	}
	return out
}

// SkillLevels returns the distinct skill levels present, in first-seen order.
func (c *Catalog) SkillLevels() []SkillLevel {
	seen := make(map[SkillLevel]bool)
	var out []SkillLevel
	for _, course := range c.courses {
		if !seen[course.SkillLevel] {
			seen[course.SkillLevel] = true
			out = append(out, course.SkillLevel)
		}
	}
	return out
}

func normalizeFacet(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func knownCategory(c Category) bool {
	for _, k := range AllCategories {
		if c == k {
			return true
		}
	}
	return false
}

func knownLevel(l SkillLevel) bool {
	for _, k := range AllSkillLevels {
		if l == k {
			return true
		}
	}
	return false
}
