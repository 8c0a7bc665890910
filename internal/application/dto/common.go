package dto

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse generic confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
