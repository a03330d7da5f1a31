package services

import (
	"fmt"
	"math"
	"tripzy/internal/models/trip_models"
	"tripzy/pkg/utils"
)

type StepID string

const (
	StepLocation   StepID = "location"
	StepBudget     StepID = "budget"
	StepTripType   StepID = "trip_type"
	StepHealth     StepID = "health"
	StepFood       StepID = "food"
	StepTravelMode StepID = "travel_mode"
	StepInterests  StepID = "interests"
)

// FlowConfig is a named, ordered list of steps. A session picks one at start and keeps it.
type FlowConfig struct {
	Name  string
	Steps []StepID
}

var (
	FullFlow = FlowConfig{
		Name:  "full",
		Steps: []StepID{StepLocation, StepBudget, StepTripType, StepHealth, StepFood, StepTravelMode, StepInterests},
	}
	CompactFlow = FlowConfig{
		Name:  "compact",
		Steps: []StepID{StepBudget, StepTripType, StepHealth, StepFood, StepTravelMode, StepInterests},
	}
)

func FlowConfigByName(name string) (FlowConfig, error) {
	switch name {
	case "", FullFlow.Name:
		return FullFlow, nil
	case CompactFlow.Name:
		return CompactFlow, nil
	}
	return FlowConfig{}, fmt.Errorf("unknown flow variant %q", name)
}

type FlowStatus string

const (
	FlowActive    FlowStatus = "active"
	FlowCompleted FlowStatus = "completed"
	FlowAborted   FlowStatus = "aborted"
)

type TransitionKind string

const (
	TransitionMoved     TransitionKind = "moved"
	TransitionCompleted TransitionKind = "completed"
	TransitionAborted   TransitionKind = "aborted"
)

// Transition reports what a navigation event did. Profile is only set on completion
// and holds the snapshot handed to the chat collaborator.
type Transition struct {
	Kind    TransitionKind
	Step    int
	Profile *trip_models.TripProfile
}

// QuestionnaireFlow walks a FlowConfig strictly in order. Completion and abort are
// terminal; any navigation afterwards returns utils.ErrFlowClosed.
type QuestionnaireFlow struct {
	config  FlowConfig
	store   *ProfileStore
	current int
	status  FlowStatus
}

func NewQuestionnaireFlow(config FlowConfig, store *ProfileStore) *QuestionnaireFlow {
	store.mustBeActive()
	return &QuestionnaireFlow{
		config:  config,
		store:   store,
		current: 1,
		status:  FlowActive,
	}
}

func (f *QuestionnaireFlow) Advance() (Transition, error) {
	if f.status != FlowActive {
		return Transition{}, utils.ErrFlowClosed
	}
	if f.current < f.TotalSteps() {
		f.current++
		return Transition{Kind: TransitionMoved, Step: f.current}, nil
	}
	snapshot := f.store.Snapshot()
	f.status = FlowCompleted
	return Transition{Kind: TransitionCompleted, Step: f.current, Profile: &snapshot}, nil
}

func (f *QuestionnaireFlow) Retreat() (Transition, error) {
	if f.status != FlowActive {
		return Transition{}, utils.ErrFlowClosed
	}
	if f.current > 1 {
		f.current--
		return Transition{Kind: TransitionMoved, Step: f.current}, nil
	}
	f.status = FlowAborted
	return Transition{Kind: TransitionAborted, Step: f.current}, nil
}

func (f *QuestionnaireFlow) CurrentStep() int { return f.current }

func (f *QuestionnaireFlow) TotalSteps() int { return len(f.config.Steps) }

func (f *QuestionnaireFlow) CurrentStepID() StepID { return f.config.Steps[f.current-1] }

func (f *QuestionnaireFlow) Status() FlowStatus { return f.status }

func (f *QuestionnaireFlow) Config() FlowConfig { return f.config }

func (f *QuestionnaireFlow) Store() *ProfileStore { return f.store }

// Progress is current/total, for display only.
func (f *QuestionnaireFlow) Progress() float64 {
	return float64(f.current) / float64(f.TotalSteps())
}

func (f *QuestionnaireFlow) ProgressPercent() int {
	return int(math.Round(f.Progress() * 100))
}

// ApplicableFields lists the fields a step shows for the given profile. It is
// recomputed from the profile every time; hidden fields keep their values.
func ApplicableFields(step StepID, profile trip_models.TripProfile) []trip_models.Field {
	switch step {
	case StepLocation:
		return []trip_models.Field{trip_models.FieldFromLocation}
	case StepBudget:
		return []trip_models.Field{trip_models.FieldBudgetTotal, trip_models.FieldBudgetBreakdown}
	case StepTripType:
		fields := []trip_models.Field{trip_models.FieldTripType}
		switch profile.TripType {
		case trip_models.TripTypeFriends:
			fields = append(fields, trip_models.FieldGroupSize)
		case trip_models.TripTypeFamily:
			fields = append(fields, trip_models.FieldAdults, trip_models.FieldChildren)
		}
		return append(fields, trip_models.FieldTravelingWithPets)
	case StepHealth:
		return []trip_models.Field{trip_models.FieldHealthConditions, trip_models.FieldCustomHealthCondition}
	case StepFood:
		return []trip_models.Field{trip_models.FieldFoodPreferences}
	case StepTravelMode:
		return []trip_models.Field{trip_models.FieldTravelMode}
	case StepInterests:
		return []trip_models.Field{trip_models.FieldInterests, trip_models.FieldCustomInterests}
	}
	return nil
}
