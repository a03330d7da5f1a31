package utils

import "errors"

var (
	ErrSessionNotFound        = errors.New("questionnaire session not found")
	ErrInvalidEdit            = errors.New("invalid edit event")
	ErrFlowClosed             = errors.New("questionnaire flow already finished")
	ErrChatUnavailable        = errors.New("chat collaborator unavailable")
	ErrConversationNotFound   = errors.New("conversation not found")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected response from chat model")
	ErrInvalidInput           = errors.New("invalid input")
)
