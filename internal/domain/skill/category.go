package skill

import "strings"

type Category string

const (
	CategoryTechnical Category = "technical"
	CategoryTool      Category = "tool"
	CategoryLanguage  Category = "language"
	CategorySoft      Category = "soft"
	CategoryOther     Category = "other"
)

// Checked in order; the first category with a matching keyword wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryTechnical, []string{"javascript", "js", "typescript", "react", "node", "python", "php", "java"}},
	{CategoryTool, []string{"git", "docker", "aws", "figma", "photoshop", "illustrator"}},
	{CategoryLanguage, []string{"inglês", "ingles", "english", "espanhol", "spanish", "alemão", "german", "francês", "french", "português", "portuguese"}},
	{CategorySoft, []string{"comunicação", "communication", "liderança", "leadership", "trabalho em equipe", "teamwork", "scrum", "agile"}},
}

// Classify buckets a skill by substring match on known keywords. Partial hits
// count: "Digital" lands in tools via "git", "JSON" in technical via "js".
func Classify(skill string) Category {
	lower := strings.ToLower(skill)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.category
			}
		}
	}
	return CategoryOther
}
