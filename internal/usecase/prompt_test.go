package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
)

func TestBuildSystemPromptIdempotent(t *testing.T) {
	kb := seedKB()
	b := NewPromptBuilder(kb)

	assert.Equal(t, b.BuildSystemPrompt(), b.BuildSystemPrompt())
	assert.Equal(t, b.BuildSystemPrompt(), NewPromptBuilder(kb).BuildSystemPrompt())
}

func TestBuildSystemPromptContents(t *testing.T) {
	kb := seedKB()
	prompt := NewPromptBuilder(kb).BuildSystemPrompt()
	p := kb.Profile()

	assert.True(t, strings.HasPrefix(prompt, "You are speaking as Aashmit"))
	assert.Contains(t, prompt, `"who are you"`)
	assert.Contains(t, prompt, "short, casual")
	assert.Contains(t, prompt, "- Name: "+p.Name)
	assert.Contains(t, prompt, "- College: "+p.College)
	assert.Contains(t, prompt, "- GitHub: "+p.Contact.GitHub)
	assert.Contains(t, prompt, "- Email: "+p.Contact.Email)
	assert.Contains(t, prompt, "- LinkedIn: "+p.Contact.LinkedIn)

	for _, g := range p.Skills {
		assert.Contains(t, prompt, g.Category+": "+strings.Join(g.Items, ", "))
	}
	for _, proj := range p.Projects {
		assert.Contains(t, prompt, proj.Name+" ("+proj.RepositoryURL+")")
	}

	assert.Contains(t, prompt, `Q: "skills?"`)
	assert.Contains(t, prompt, `Q: "college?" → "RNSIT, Info Science Engg."`)
	assert.Contains(t, prompt, `Q: "projects?"`)
	assert.Contains(t, prompt, `Q: "contact?"`)
}

func TestBuildSystemPromptSkipsMissingFacts(t *testing.T) {
	prompt := NewPromptBuilder(entity.NewKnowledgeBase(entity.Profile{Name: "Sam"})).BuildSystemPrompt()

	assert.Contains(t, prompt, "- Name: Sam")
	assert.NotContains(t, prompt, "- Email:")
	assert.NotContains(t, prompt, "Q: \"skills?\"")
}

func TestReplyCue(t *testing.T) {
	assert.Equal(t, "Reply like Aashmit:", NewPromptBuilder(seedKB()).ReplyCue())
}
