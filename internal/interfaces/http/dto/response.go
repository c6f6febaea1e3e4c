package dto

// ErrorResponse is the error body for every failed request: {"error": "..."}
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// AnswerResponse is the success body of the ask-ai endpoint
type AnswerResponse struct {
	Answer string `json:"answer"`
}
