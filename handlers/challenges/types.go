package challenges

// Constants for error messages
const (
	ErrChallengeNotFound    = "Challenge not found"
	ErrAnswerRequired       = "Answer is required"
	ErrMustStartFirst       = "You must start the challenge first"
	ErrAlreadyCompleted     = "You have already completed this challenge"
	ErrNoHintsAvailable     = "No hints available for this challenge"
	ErrNoMoreHints          = "No more hints available"
	ErrFetchFailed          = "Failed to fetch challenges"
	ErrSubmitFailed         = "Failed to submit answer"
)

// SubmitAnswerRequest model for answer submission. Answer is either a raw
// legacy answer or a JSON object keyed by "question_<id>".
type SubmitAnswerRequest struct {
	Answer      string `json:"answer" binding:"required"`
	QuestionKey string `json:"question_key"`
}
