package response_models

import (
	"tripzy/internal/models/trip_models"
)

type LocationSuggestions struct {
	Query       string   `json:"query"`
	Visible     bool     `json:"visible"`
	Suggestions []string `json:"suggestions"`
}

type QuestionnaireSessionResponse struct {
	SessionID        string                    `json:"session_id"`
	FlowVariant      string                    `json:"flow_variant"`
	Status           string                    `json:"status"`
	CurrentStep      int                       `json:"current_step"`
	TotalSteps       int                       `json:"total_steps"`
	StepID           string                    `json:"step_id"`
	Steps            []string                  `json:"steps"`
	ProgressPercent  int                       `json:"progress_percent"`
	ApplicableFields []trip_models.Field       `json:"applicable_fields"`
	Profile          trip_models.TripProfile   `json:"profile"`
	BudgetAmounts    trip_models.BudgetAmounts `json:"budget_amounts"`
	BudgetLabels     map[string]string         `json:"budget_labels"`
	Locations        LocationSuggestions       `json:"locations"`
	StartedAt        string                    `json:"started_at"`
}

type EditResultResponse struct {
	Applied bool                         `json:"applied"`
	Session QuestionnaireSessionResponse `json:"session"`
}

type ConversationResponse struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

type ChatReplyResponse struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

// TransitionResponse is returned by advance/retreat. Session is nil once the flow
// has completed or been aborted.
type TransitionResponse struct {
	Transition   string                        `json:"transition"`
	Session      *QuestionnaireSessionResponse `json:"session,omitempty"`
	Profile      *trip_models.TripProfile      `json:"profile,omitempty"`
	HandedOff    bool                          `json:"handed_off"`
	Conversation *ConversationResponse         `json:"conversation,omitempty"`
}

type BudgetBounds struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Step    int `json:"step"`
	Default int `json:"default"`
}

type VocabularyResponse struct {
	trip_models.Vocabulary
	Budget BudgetBounds `json:"budget"`
}
