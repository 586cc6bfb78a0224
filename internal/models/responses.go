package models

// MessageResponse is the success body of the submission endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the failure body of every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Client-facing messages. Internal error detail never reaches the caller.
const (
	MsgApplicationSubmitted = "Application submitted successfully."
	MsgContactSent          = "Message sent successfully."
	MsgInvalidApplication   = "Invalid application data."
	MsgInvalidContact       = "Invalid contact form data."
	MsgUnexpectedError      = "Unexpected server error."
	MsgRateLimited          = "Too many submissions. Please try again later."
)
