package entity

// Skill categories used by the prompt and the fallback answers.
const (
	SkillProgramming = "programming"
	SkillWeb         = "web"
	SkillDatabase    = "database"
	SkillTools       = "tools"
	SkillSoft        = "soft"
)

// SkillGroup named list of skills, kept in insertion order
type SkillGroup struct {
	Category string   `json:"category" yaml:"category"`
	Items    []string `json:"items" yaml:"items"`
}

// Project portfolio project record
type Project struct {
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Technologies  []string `json:"technologies" yaml:"technologies"`
	RepositoryURL string   `json:"repositoryUrl" yaml:"repository_url"`
}

// Contact channels
type Contact struct {
	Email    string `json:"email" yaml:"email"`
	GitHub   string `json:"github" yaml:"github"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
}

// Profile everything the bot knows about the subject
type Profile struct {
	Name         string       `json:"name" yaml:"name"`
	Nickname     string       `json:"nickname" yaml:"nickname"`
	Title        string       `json:"title" yaml:"title"`
	College      string       `json:"college" yaml:"college"`
	CollegeShort string       `json:"collegeShort" yaml:"college_short"`
	Degree       string       `json:"degree" yaml:"degree"`
	Greeting     string       `json:"greeting" yaml:"greeting"`
	Skills       []SkillGroup `json:"skills" yaml:"skills"`
	Projects     []Project    `json:"projects" yaml:"projects"`
	Contact      Contact      `json:"contact" yaml:"contact"`
}

// KnowledgeBase immutable view over a Profile. All accessors return copies,
// so it is safe to share between goroutines without locking.
type KnowledgeBase struct {
	profile Profile
}

// NewKnowledgeBase freezes a copy of p
func NewKnowledgeBase(p Profile) *KnowledgeBase {
	return &KnowledgeBase{profile: cloneProfile(p)}
}

// Profile full record
func (kb *KnowledgeBase) Profile() Profile {
	return cloneProfile(kb.profile)
}

// Name subject's full name
func (kb *KnowledgeBase) Name() string {
	return kb.profile.Name
}

// Nickname short name, falls back to the full name
func (kb *KnowledgeBase) Nickname() string {
	if kb.profile.Nickname != "" {
		return kb.profile.Nickname
	}
	return kb.profile.Name
}

// Skills all skill groups in declared order
func (kb *KnowledgeBase) Skills() []SkillGroup {
	return cloneSkills(kb.profile.Skills)
}

// SkillsIn items of one category, nil when the category is unknown
func (kb *KnowledgeBase) SkillsIn(category string) []string {
	for _, g := range kb.profile.Skills {
		if g.Category == category {
			return append([]string(nil), g.Items...)
		}
	}
	return nil
}

// Projects project list
func (kb *KnowledgeBase) Projects() []Project {
	return cloneProjects(kb.profile.Projects)
}

// Contact contact channels
func (kb *KnowledgeBase) Contact() Contact {
	return kb.profile.Contact
}

func cloneProfile(p Profile) Profile {
	p.Skills = cloneSkills(p.Skills)
	p.Projects = cloneProjects(p.Projects)
	return p
}

func cloneSkills(in []SkillGroup) []SkillGroup {
	if in == nil {
		return nil
	}
	out := make([]SkillGroup, len(in))
	for i, g := range in {
		out[i] = SkillGroup{Category: g.Category, Items: append([]string(nil), g.Items...)}
	}
	return out
}

func cloneProjects(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	for i, p := range in {
		p.Technologies = append([]string(nil), p.Technologies...)
		out[i] = p
	}
	return out
}
