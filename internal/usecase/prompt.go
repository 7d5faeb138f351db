package usecase

import (
	"fmt"
	"strings"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
)

// PromptBuilder renders the knowledge base into the model instruction block.
// The prompt depends only on the knowledge base, so it is rendered once.
type PromptBuilder struct {
	kb     *entity.KnowledgeBase
	prompt string
}

// NewPromptBuilder renders the prompt for kb
func NewPromptBuilder(kb *entity.KnowledgeBase) *PromptBuilder {
	b := &PromptBuilder{kb: kb}
	b.prompt = b.render()
	return b
}

// BuildSystemPrompt persona directive, facts, rules and worked examples
func (b *PromptBuilder) BuildSystemPrompt() string {
	return b.prompt
}

// ReplyCue trailing line appended after the visitor's input
func (b *PromptBuilder) ReplyCue() string {
	return fmt.Sprintf("Reply like %s:", b.kb.Nickname())
}

func (b *PromptBuilder) render() string {
	p := b.kb.Profile()
	nick := b.kb.Nickname()

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are speaking as %s, in first person.\n", nick))
	sb.WriteString("Keep replies short, casual, and human-like, like real chat messages.\n")
	sb.WriteString("Never say \"I'm an AI assistant\". No intros unless asked \"who are you\".\n")

	sb.WriteString("\nInfo you can use:\n")
	writeFact(&sb, "Name", p.Name)
	writeFact(&sb, "Title", p.Title)
	writeFact(&sb, "College", p.College)
	if len(p.Skills) > 0 {
		groups := make([]string, 0, len(p.Skills))
		for _, g := range p.Skills {
			groups = append(groups, fmt.Sprintf("%s: %s", g.Category, strings.Join(g.Items, ", ")))
		}
		writeFact(&sb, "Skills", strings.Join(groups, "; "))
	}
	if len(p.Projects) > 0 {
		projects := make([]string, 0, len(p.Projects))
		for _, proj := range p.Projects {
			line := proj.Name
			if proj.RepositoryURL != "" {
				line += fmt.Sprintf(" (%s)", proj.RepositoryURL)
			}
			projects = append(projects, line)
		}
		writeFact(&sb, "Projects", strings.Join(projects, " | "))
	}
	writeFact(&sb, "GitHub", p.Contact.GitHub)
	writeFact(&sb, "Email", p.Contact.Email)
	writeFact(&sb, "LinkedIn", p.Contact.LinkedIn)

	sb.WriteString("\nRules:\n")
	sb.WriteString("1. Answer only what's asked.\n")
	sb.WriteString("2. Keep it natural, short, and specific.\n")
	sb.WriteString("3. No formal tone. Example style:\n")
	for _, ex := range b.examples() {
		sb.WriteString(fmt.Sprintf("   - Q: %q → %q\n", ex[0], ex[1]))
	}

	return sb.String()
}

// examples sample question/answer pairs in the subject's voice
func (b *PromptBuilder) examples() [][2]string {
	p := b.kb.Profile()
	var out [][2]string

	if langs := b.kb.SkillsIn(entity.SkillProgramming); len(langs) > 0 {
		answer := strings.Join(firstN(langs, 4), ", ") + "."
		if web := b.kb.SkillsIn(entity.SkillWeb); len(web) > 0 {
			answer += fmt.Sprintf(" Do web dev with %s.", strings.Join(firstN(web, 3), " + "))
		}
		out = append(out, [2]string{"skills?", answer})
	}
	if college := collegeLine(p); college != "" {
		out = append(out, [2]string{"college?", college})
	}
	if len(p.Projects) > 0 {
		names := make([]string, 0, len(p.Projects))
		for _, proj := range p.Projects {
			names = append(names, proj.Name)
		}
		out = append(out, [2]string{"projects?", strings.Join(names, " + ") + ". GitHub has details."})
	}
	if p.Contact.Email != "" {
		answer := "Mail: " + p.Contact.Email
		if p.Contact.LinkedIn != "" {
			answer += ", LinkedIn too."
		}
		out = append(out, [2]string{"contact?", answer})
	}
	return out
}

func writeFact(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("- %s: %s\n", label, value))
}

// collegeLine "RNSIT, Info Science Engg."
func collegeLine(p entity.Profile) string {
	college := p.CollegeShort
	if college == "" {
		college = p.College
	}
	switch {
	case college != "" && p.Degree != "":
		return fmt.Sprintf("%s, %s.", college, p.Degree)
	case college != "":
		return college + "."
	case p.Degree != "":
		return p.Degree + "."
	}
	return ""
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
