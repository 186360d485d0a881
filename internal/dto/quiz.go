package dto

// QuizChoiceResponse is one selectable image in a generated quiz.
type QuizChoiceResponse struct {
	ID       int    `json:"id"`
	ImageURL string `json:"image_url"`
	Category string `json:"category"`
}

// QuizResponse represents a generated quiz in the API response
// @Description Quiz session without its answer
type QuizResponse struct {
	SessionID string               `json:"session_id"`
	Question  string               `json:"question"`
	Choices   []QuizChoiceResponse `json:"choices"`
}

// SubmitAnswerRequest represents a user's answer in the API request
// @Description Request body for submitting an answer
type SubmitAnswerRequest struct {
	SessionID        string `json:"session_id"`
	SelectedCategory string `json:"selected_category"`
}

// SubmitAnswerResponse is the verdict for a submission.
type SubmitAnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// CategoryResponse represents a category in the API response
type CategoryResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
