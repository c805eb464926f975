package gemini

import (
	"fmt"
	"strings"
)

func buildQuestionsPrompt(jobRole, difficulty string, topics []string, count int) string {
	return fmt.Sprintf(`You are an expert technical interviewer.
Generate %d interview questions for a %s level %s position.
Focus on these topics: %s.

Return ONLY a valid JSON array with this structure:
[
  {
    "content": "Question text here",
    "expected_answer": "Brief summary of key points expected in the answer",
    "difficulty": "EASY" | "MEDIUM" | "HARD",
    "topic": "Specific topic from the list"
  }
]

Each question should be clear, specific, and appropriate for the difficulty level.`,
		count, difficulty, jobRole, strings.Join(topics, ", "))
}

func buildEvaluationPrompt(questionContent, expectedAnswer, transcript string) string {
	return fmt.Sprintf(`You are an expert interviewer evaluating a candidate's answer.

Question: %s
Expected Answer: %s
Candidate's Answer: %s

Evaluate on: correctness (0-100), completeness (0-100), clarity (0-100).

Return ONLY valid JSON:
{
  "score": 0,
  "correctness": 0,
  "completeness": 0,
  "clarity": 0,
  "feedback": "Constructive feedback in 2-3 sentences"
}`, questionContent, expectedAnswer, transcript)
}

func buildReportPrompt(jobRole, difficulty string, details []AnswerDetail) string {
	var performance strings.Builder
	for i, d := range details {
		fmt.Fprintf(&performance, "Q%d: %s\nAnswer: %s\nScore: %.0f/100\nFeedback: %s\n\n",
			i+1, d.Question, d.Answer, d.Evaluation.Score, d.Evaluation.Feedback)
	}

	return fmt.Sprintf(`You are an expert technical interviewer providing a final report for a candidate.

Job Role: %s
Difficulty: %s

Candidate's Performance:
%s
Generate a comprehensive interview report in JSON format:
{
  "summary": "Overall performance summary (2-3 sentences)",
  "strengths": ["Strength 1", "Strength 2", "Strength 3"],
  "weaknesses": ["Weakness 1", "Weakness 2", "Weakness 3"],
  "recommendations": ["Actionable recommendation 1", "Actionable recommendation 2", "Actionable recommendation 3"],
  "learning_resources": [
    { "title": "Resource Title", "url": "https://example.com/resource" }
  ]
}`, jobRole, difficulty, performance.String())
}
