package gemini

// GeneratedQuestion is one interview prompt produced by the model.
// ExpectedAnswer is reference material for evaluation and is never shown
// to the candidate.
type GeneratedQuestion struct {
	Content        string `json:"content"`
	ExpectedAnswer string `json:"expected_answer"`
	Difficulty     string `json:"difficulty"`
	Topic          string `json:"topic"`
}

type AnswerEvaluation struct {
	Score        float64 `json:"score"`
	Correctness  float64 `json:"correctness"`
	Completeness float64 `json:"completeness"`
	Clarity      float64 `json:"clarity"`
	Feedback     string  `json:"feedback"`
}

type LearningResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Report struct {
	Summary           string             `json:"summary"`
	Strengths         []string           `json:"strengths"`
	Weaknesses        []string           `json:"weaknesses"`
	Recommendations   []string           `json:"recommendations"`
	LearningResources []LearningResource `json:"learning_resources"`
}

// AnswerDetail is one question/answer/evaluation triple fed into the
// final report prompt.
type AnswerDetail struct {
	Question   string           `json:"question"`
	Answer     string           `json:"answer"`
	Evaluation AnswerEvaluation `json:"evaluation"`
}

// FallbackReport is returned when report generation fails permanently;
// completing an interview never depends on the model being reachable.
func FallbackReport() Report {
	return Report{
		Summary:           "Interview completed. Detailed AI analysis unavailable at this moment.",
		Strengths:         []string{},
		Weaknesses:        []string{},
		Recommendations:   []string{},
		LearningResources: []LearningResource{},
	}
}
