package knowledge

import "github.com/yourusername/portfolio-bot/internal/domain/entity"

// Seed built-in profile used when no knowledge file is configured
func Seed() entity.Profile {
	return entity.Profile{
		Name:         "Aashmit Salunke",
		Nickname:     "Aashmit",
		Title:        "Information Science Engineering Student",
		College:      "RNS Institute of Technology",
		CollegeShort: "RNSIT",
		Degree:       "Info Science Engg",
		Greeting:     "Hey 👋 I’m Aashmit. Ask me about my skills, projects, or GitHub.",
		Skills: []entity.SkillGroup{
			{Category: entity.SkillProgramming, Items: []string{"Python", "Core Java", "C++", "C", "JavaScript"}},
			{Category: entity.SkillWeb, Items: []string{"HTML", "CSS", "Node.js", "Express.js", "EJS"}},
			{Category: entity.SkillDatabase, Items: []string{"SQL"}},
			{Category: entity.SkillTools, Items: []string{"Git", "GitHub"}},
			{Category: entity.SkillSoft, Items: []string{"Communication", "Analytical Skills"}},
		},
		Projects: []entity.Project{
			{
				Name:          "Web Development Projects",
				Description:   "Full-stack apps with Node.js + Express.js",
				Technologies:  []string{"Node.js", "Express.js", "EJS", "JavaScript", "CSS"},
				RepositoryURL: "https://github.com/aashmitsalunke/web-projects",
			},
			{
				Name:          "Data Structures & Algorithms",
				Description:   "Implemented DSA concepts in Java & C++",
				Technologies:  []string{"Core Java", "C++", "Python"},
				RepositoryURL: "https://github.com/aashmitsalunke/dsa-practice",
			},
		},
		Contact: entity.Contact{
			Email:    "aashmit.salunke@example.com",
			GitHub:   "https://github.com/aashmitsalunke",
			LinkedIn: "https://linkedin.com/in/aashmitsalunke",
		},
	}
}
