package usecase

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/interview-quiz/internal/model"
)

func buildQuizPrompt(profile model.Profile, count int) string {
	expertise := ""
	if len(profile.Skills) > 0 {
		expertise = fmt.Sprintf(" with expertise in %s", strings.Join(profile.Skills, ", "))
	}
	return fmt.Sprintf(`
Generate %d technical interview questions for a %s professional%s.
Each question should be multiple choice with 4 options.
Return in JSON:
{
  "questions": [
    {
      "question": "string",
      "options": ["string", "string", "string", "string"],
      "correctAnswer": "string",
      "explanation": "string"
    }
  ]
}
`, count, profile.Industry, expertise)
}

func buildImprovementPrompt(industry string, wrong []model.QuestionResult) string {
	blocks := make([]string, 0, len(wrong))
	for _, q := range wrong {
		blocks = append(blocks, fmt.Sprintf("Question: %q\nCorrect Answer: %q\nUser Answer: %q", q.Question, q.Answer, q.UserAnswer))
	}
	return fmt.Sprintf(`
The user got the following %s questions wrong:
%s
Provide a concise improvement tip (< 2 sentences). Focus on knowledge gaps, avoid repeating mistakes directly.
`, industry, strings.Join(blocks, "\n\n"))
}
