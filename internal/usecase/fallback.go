package usecase

import (
	"fmt"
	"strings"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
)

// Intent topic recognized by the fallback classifier
type Intent int

const (
	IntentGreeting Intent = iota
	IntentIdentity
	IntentGitHub
	IntentSkills
	IntentProjects
	IntentContact
	IntentCollege
	IntentDefault
)

var intentNames = map[Intent]string{
	IntentGreeting: "greeting",
	IntentIdentity: "identity",
	IntentGitHub:   "github",
	IntentSkills:   "skills",
	IntentProjects: "projects",
	IntentContact:  "contact",
	IntentCollege:  "college",
	IntentDefault:  "default",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return fmt.Sprintf("intent(%d)", int(i))
}

type intentRule struct {
	intent   Intent
	keywords []string
}

// intentRules is checked top to bottom and the first hit wins, so the order
// is part of the behavior: "tell me about your github" is an identity question.
// Matching is plain substring containment, "hi" also fires inside "this".
var intentRules = []intentRule{
	{IntentGreeting, []string{"hello", "hi", "hey"}},
	{IntentIdentity, []string{"who", "about"}},
	{IntentGitHub, []string{"github"}},
	{IntentSkills, []string{"skill", "technolog", "tech stack"}},
	{IntentProjects, []string{"project"}},
	{IntentContact, []string{"contact", "email", "mail"}},
	{IntentCollege, []string{"college", "education", "university", "study"}},
}

// FallbackClassifier deterministic keyword answers used when no model reply is available
type FallbackClassifier struct {
	responses map[Intent]string
}

// NewFallbackClassifier renders every canned answer from kb up front
func NewFallbackClassifier(kb *entity.KnowledgeBase) *FallbackClassifier {
	return &FallbackClassifier{responses: renderResponses(kb)}
}

// Match first intent whose keywords occur in input
func (c *FallbackClassifier) Match(input string) Intent {
	lower := strings.ToLower(input)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentDefault
}

// Classify canned answer for input. Never fails.
func (c *FallbackClassifier) Classify(input string) string {
	return c.responses[c.Match(input)]
}

// Response canned answer of one intent
func (c *FallbackClassifier) Response(intent Intent) string {
	if r, ok := c.responses[intent]; ok {
		return r
	}
	return c.responses[IntentDefault]
}

func renderResponses(kb *entity.KnowledgeBase) map[Intent]string {
	p := kb.Profile()
	nick := kb.Nickname()

	responses := map[Intent]string{
		IntentGreeting: "Hey 👋",
		IntentDefault:  "Not sure what you mean 🤔. Wanna know about skills, projects, college, or GitHub?",
	}

	identity := fmt.Sprintf("I’m %s", nick)
	college := p.CollegeShort
	if college == "" {
		college = p.College
	}
	switch {
	case p.Degree != "" && college != "":
		identity += fmt.Sprintf(", doing %s at %s.", p.Degree, college)
	case p.Title != "":
		identity += ", " + p.Title + "."
	default:
		identity += "."
	}
	responses[IntentIdentity] = identity

	if p.Contact.GitHub != "" {
		responses[IntentGitHub] = fmt.Sprintf("Check my GitHub → %s", p.Contact.GitHub)
	} else {
		responses[IntentGitHub] = "No public GitHub to share yet."
	}

	var skills []string
	if langs := kb.SkillsIn(entity.SkillProgramming); len(langs) > 0 {
		skills = append(skills, strings.Join(langs, ", ")+".")
	}
	if web := kb.SkillsIn(entity.SkillWeb); len(web) > 0 {
		skills = append(skills, fmt.Sprintf("Web dev with %s.", strings.Join(web, ", ")))
	}
	if len(skills) == 0 {
		for _, g := range kb.Skills() {
			skills = append(skills, fmt.Sprintf("%s: %s.", g.Category, strings.Join(g.Items, ", ")))
		}
	}
	if len(skills) > 0 {
		responses[IntentSkills] = strings.Join(skills, " ")
	} else {
		responses[IntentSkills] = responses[IntentDefault]
	}

	if len(p.Projects) > 0 {
		names := make([]string, 0, len(p.Projects))
		for _, proj := range p.Projects {
			names = append(names, proj.Name)
		}
		responses[IntentProjects] = fmt.Sprintf("Built %s. GitHub’s got them.", strings.Join(names, " + "))
	} else {
		responses[IntentProjects] = "Nothing public yet, still building."
	}

	var contact []string
	if p.Contact.Email != "" {
		contact = append(contact, "Mail: "+p.Contact.Email)
	}
	if p.Contact.LinkedIn != "" {
		contact = append(contact, "LinkedIn: "+p.Contact.LinkedIn)
	}
	if len(contact) > 0 {
		responses[IntentContact] = strings.Join(contact, ", ")
	} else {
		responses[IntentContact] = responses[IntentGitHub]
	}

	if line := collegeLine(p); line != "" {
		responses[IntentCollege] = line
	} else {
		responses[IntentCollege] = responses[IntentDefault]
	}

	return responses
}
