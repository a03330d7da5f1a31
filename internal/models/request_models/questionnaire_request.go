package request_models

import "encoding/json"

// EditEventRequest names a profile field and its new value. Value is kept raw so each
// field can decode it the way its input control sends it (number, string or bool).
type EditEventRequest struct {
	Field string          `json:"field" binding:"required"`
	Value json.RawMessage `json:"value"`
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}
