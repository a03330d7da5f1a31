package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"
	"tripzy/internal/models/request_models"
	"tripzy/internal/models/response_models"
	"tripzy/internal/models/trip_models"
	mem "tripzy/pkg/memcache"
	"tripzy/pkg/utils"

	"github.com/google/uuid"
)

type QuestionnaireServiceInterface interface {
	StartSession(ctx context.Context) (response_models.QuestionnaireSessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (response_models.QuestionnaireSessionResponse, error)
	ApplyEdit(ctx context.Context, sessionID string, req request_models.EditEventRequest) (response_models.EditResultResponse, error)
	Advance(ctx context.Context, sessionID string) (response_models.TransitionResponse, error)
	Retreat(ctx context.Context, sessionID string) (response_models.TransitionResponse, error)
	Vocabulary() response_models.VocabularyResponse
	SuggestLocations(query string) []string
}

// QuestionnaireMetrics receives session lifecycle events.
type QuestionnaireMetrics interface {
	SessionStarted(flow string)
	TransitionRecorded(flow string, kind string)
}

// QuestionnaireSession is one user's pass through the questionnaire. Handlers on the
// same session run one at a time.
type QuestionnaireSession struct {
	ID        string
	StartedAt time.Time

	mu        sync.Mutex
	flow      *QuestionnaireFlow
	locations SuggestionBox
}

type QuestionnaireService struct {
	config     FlowConfig
	vocabulary *trip_models.Vocabulary
	locations  LocationServiceInterface
	chat       ChatServiceInterface
	sessions   mem.SessionStore[*QuestionnaireSession]
	metrics    QuestionnaireMetrics
	editors    map[trip_models.Field]editHandler
}

// editHandler applies one edit event against the store bound to ctx. It reports
// whether the profile changed; silent policy rejections return false with no error.
type editHandler func(ctx context.Context, sess *QuestionnaireSession, value json.RawMessage) (bool, error)

func NewQuestionnaireService(
	config FlowConfig,
	vocabulary *trip_models.Vocabulary,
	locations LocationServiceInterface,
	chat ChatServiceInterface,
	sessions mem.SessionStore[*QuestionnaireSession],
	metrics QuestionnaireMetrics,
) QuestionnaireServiceInterface {
	q := &QuestionnaireService{
		config:     config,
		vocabulary: vocabulary,
		locations:  locations,
		chat:       chat,
		sessions:   sessions,
		metrics:    metrics,
	}
	q.editors = map[trip_models.Field]editHandler{
		trip_models.FieldFromLocation:          q.editFromLocation,
		trip_models.FieldFromLocationSelect:    q.selectFromLocation,
		trip_models.FieldFromLocationFocus:     q.focusFromLocation,
		trip_models.FieldBudgetTotal:           q.editBudgetTotal,
		trip_models.FieldTripType:              q.editTripType,
		trip_models.FieldGroupSize:             q.editCount(2, func(p *trip_models.ProfilePatch, n int) { p.GroupSize = &n }),
		trip_models.FieldAdults:                q.editCount(1, func(p *trip_models.ProfilePatch, n int) { p.Adults = &n }),
		trip_models.FieldChildren:              q.editCount(0, func(p *trip_models.ProfilePatch, n int) { p.Children = &n }),
		trip_models.FieldTravelingWithPets:     q.editPets,
		trip_models.FieldHealthConditions:      q.editToggle(q.vocabulary.HasHealthCondition, healthConditionsSlot),
		trip_models.FieldCustomHealthCondition: q.editCustomHealthCondition,
		trip_models.FieldFoodPreferences:       q.editToggle(q.vocabulary.HasFoodPreference, foodPreferencesSlot),
		trip_models.FieldTravelMode:            q.editToggle(q.vocabulary.HasTravelMode, travelModeSlot),
		trip_models.FieldInterests:             q.editToggle(q.vocabulary.HasInterest, interestsSlot),
		trip_models.FieldCustomInterestsAdd:    q.editCustomInterests(utils.AppendUnique),
		trip_models.FieldCustomInterestsRemove: q.editCustomInterests(utils.Remove),
	}
	return q
}

func (q *QuestionnaireService) StartSession(ctx context.Context) (response_models.QuestionnaireSessionResponse, error) {
	sess := &QuestionnaireSession{
		ID:        uuid.New().String(),
		StartedAt: utils.NowIST(),
		flow:      NewQuestionnaireFlow(q.config, NewProfileStore()),
		locations: SuggestionBox{Suggestions: []string{}},
	}
	q.sessions.Set(sess.ID, sess)
	q.metrics.SessionStarted(q.config.Name)
	log.Printf("Questionnaire session %s started (%s flow, %d steps)", sess.ID, q.config.Name, sess.flow.TotalSteps())

	return q.view(sess), nil
}

func (q *QuestionnaireService) GetSession(ctx context.Context, sessionID string) (response_models.QuestionnaireSessionResponse, error) {
	var resp response_models.QuestionnaireSessionResponse
	err := q.withSession(ctx, sessionID, func(ctx context.Context, sess *QuestionnaireSession) error {
		resp = q.view(sess)
		return nil
	})
	return resp, err
}

func (q *QuestionnaireService) ApplyEdit(ctx context.Context, sessionID string, req request_models.EditEventRequest) (response_models.EditResultResponse, error) {
	handler, err := q.editorFor(trip_models.Field(req.Field))
	if err != nil {
		return response_models.EditResultResponse{}, err
	}

	var resp response_models.EditResultResponse
	err = q.withSession(ctx, sessionID, func(ctx context.Context, sess *QuestionnaireSession) error {
		if sess.flow.Status() != FlowActive {
			return utils.ErrFlowClosed
		}
		applied, err := handler(ctx, sess, req.Value)
		if err != nil {
			return err
		}
		resp = response_models.EditResultResponse{Applied: applied, Session: q.view(sess)}
		return nil
	})
	return resp, err
}

func (q *QuestionnaireService) Advance(ctx context.Context, sessionID string) (response_models.TransitionResponse, error) {
	var resp response_models.TransitionResponse
	err := q.withSession(ctx, sessionID, func(ctx context.Context, sess *QuestionnaireSession) error {
		tr, err := sess.flow.Advance()
		if err != nil {
			return err
		}
		q.metrics.TransitionRecorded(q.config.Name, string(tr.Kind))

		if tr.Kind != TransitionCompleted {
			view := q.view(sess)
			resp = response_models.TransitionResponse{Transition: string(tr.Kind), Session: &view}
			return nil
		}

		q.sessions.Delete(sess.ID)
		resp = response_models.TransitionResponse{Transition: string(tr.Kind), Profile: tr.Profile}

		conv, err := q.chat.StartConversation(ctx, *tr.Profile)
		if err != nil {
			log.Printf("Questionnaire session %s completed, handoff failed: %v", sess.ID, err)
			return nil
		}
		resp.HandedOff = true
		resp.Conversation = &conv
		log.Printf("Questionnaire session %s completed, handed off to conversation %s", sess.ID, conv.ConversationID)
		return nil
	})
	return resp, err
}

func (q *QuestionnaireService) Retreat(ctx context.Context, sessionID string) (response_models.TransitionResponse, error) {
	var resp response_models.TransitionResponse
	err := q.withSession(ctx, sessionID, func(ctx context.Context, sess *QuestionnaireSession) error {
		tr, err := sess.flow.Retreat()
		if err != nil {
			return err
		}
		q.metrics.TransitionRecorded(q.config.Name, string(tr.Kind))

		if tr.Kind == TransitionAborted {
			ProfileStoreFromContext(ctx).Reset()
			q.sessions.Delete(sess.ID)
			log.Printf("Questionnaire session %s aborted at step 1", sess.ID)
			resp = response_models.TransitionResponse{Transition: string(tr.Kind)}
			return nil
		}

		view := q.view(sess)
		resp = response_models.TransitionResponse{Transition: string(tr.Kind), Session: &view}
		return nil
	})
	return resp, err
}

func (q *QuestionnaireService) Vocabulary() response_models.VocabularyResponse {
	return response_models.VocabularyResponse{
		Vocabulary: *q.vocabulary,
		Budget: response_models.BudgetBounds{
			Min:     BudgetMin,
			Max:     BudgetMax,
			Step:    BudgetStep,
			Default: BudgetDefault,
		},
	}
}

func (q *QuestionnaireService) SuggestLocations(query string) []string {
	return q.locations.Suggest(query)
}

// withSession serialises work on one session and binds its profile store to ctx.
func (q *QuestionnaireService) withSession(ctx context.Context, sessionID string, fn func(ctx context.Context, sess *QuestionnaireSession) error) error {
	sess, ok := q.sessions.Get(sessionID)
	if !ok {
		return utils.ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(WithProfileStore(ctx, sess.flow.Store()), sess)
}

func (q *QuestionnaireService) editorFor(field trip_models.Field) (editHandler, error) {
	if handler, ok := q.editors[field]; ok {
		return handler, nil
	}
	if category, ok := strings.CutPrefix(string(field), trip_models.BudgetSharePrefix); ok {
		c := trip_models.BudgetCategory(category)
		if !c.Valid() {
			return nil, fmt.Errorf("%w: unknown budget category %q", utils.ErrInvalidEdit, category)
		}
		return q.editBudgetShare(c), nil
	}
	return nil, fmt.Errorf("%w: unknown field %q", utils.ErrInvalidEdit, field)
}

func (q *QuestionnaireService) view(sess *QuestionnaireSession) response_models.QuestionnaireSessionResponse {
	flow := sess.flow
	profile := flow.Store().Snapshot()
	amounts := DeriveAmounts(profile.BudgetTotal, profile.BudgetBreakdown)

	steps := make([]string, 0, flow.TotalSteps())
	for _, s := range flow.Config().Steps {
		steps = append(steps, string(s))
	}
	labels := make(map[string]string, len(trip_models.BudgetCategories)+1)
	labels["total"] = utils.FormatRupees(profile.BudgetTotal)
	for _, c := range trip_models.BudgetCategories {
		labels[string(c)] = utils.FormatRupees(amounts.Get(c))
	}

	return response_models.QuestionnaireSessionResponse{
		SessionID:        sess.ID,
		FlowVariant:      flow.Config().Name,
		Status:           string(flow.Status()),
		CurrentStep:      flow.CurrentStep(),
		TotalSteps:       flow.TotalSteps(),
		StepID:           string(flow.CurrentStepID()),
		Steps:            steps,
		ProgressPercent:  flow.ProgressPercent(),
		ApplicableFields: ApplicableFields(flow.CurrentStepID(), profile),
		Profile:          profile,
		BudgetAmounts:    amounts,
		BudgetLabels:     labels,
		Locations: response_models.LocationSuggestions{
			Query:       sess.locations.Query,
			Visible:     sess.locations.Visible,
			Suggestions: append([]string{}, sess.locations.Suggestions...),
		},
		StartedAt: utils.FormatIST(sess.StartedAt),
	}
}

func (q *QuestionnaireService) editFromLocation(ctx context.Context, sess *QuestionnaireSession, value json.RawMessage) (bool, error) {
	text, err := decodeString(value)
	if err != nil {
		return false, err
	}
	ProfileStoreFromContext(ctx).Update(trip_models.ProfilePatch{FromLocation: &text})
	sess.locations.Type(q.locations, text)
	return true, nil
}

func (q *QuestionnaireService) selectFromLocation(ctx context.Context, sess *QuestionnaireSession, value json.RawMessage) (bool, error) {
	name, err := decodeString(value)
	if err != nil {
		return false, err
	}
	if !q.vocabulary.HasPlace(name) {
		return false, fmt.Errorf("%w: %q is not a known place", utils.ErrInvalidEdit, name)
	}
	committed := sess.locations.Select(name)
	ProfileStoreFromContext(ctx).Update(trip_models.ProfilePatch{FromLocation: &committed})
	return true, nil
}

func (q *QuestionnaireService) focusFromLocation(ctx context.Context, sess *QuestionnaireSession, _ json.RawMessage) (bool, error) {
	sess.locations.Focus(q.locations, ProfileStoreFromContext(ctx).Snapshot().FromLocation)
	return false, nil
}

func (q *QuestionnaireService) editBudgetTotal(ctx context.Context, _ *QuestionnaireSession, value json.RawMessage) (bool, error) {
	var total int
	var typed string
	if err := json.Unmarshal(value, &typed); err == nil {
		total = ParseBudgetTotal(typed)
	} else if n, ok := decodeInt(value); ok {
		total = NormalizeBudgetTotal(n)
	} else {
		total = BudgetMin
	}
	ProfileStoreFromContext(ctx).Update(trip_models.ProfilePatch{BudgetTotal: &total})
	return true, nil
}

func (q *QuestionnaireService) editBudgetShare(category trip_models.BudgetCategory) editHandler {
	return func(ctx context.Context, _ *QuestionnaireSession, value json.RawMessage) (bool, error) {
		percent, ok := decodeInt(value)
		if !ok {
			return false, nil
		}
		store := ProfileStoreFromContext(ctx)
		next, accepted := ApplyPercentageEdit(store.Snapshot().BudgetBreakdown, category, percent)
		if !accepted {
			return false, nil
		}
		store.Update(trip_models.ProfilePatch{BudgetBreakdown: &next})
		return true, nil
	}
}

func (q *QuestionnaireService) editTripType(ctx context.Context, _ *QuestionnaireSession, value json.RawMessage) (bool, error) {
	raw, err := decodeString(value)
	if err != nil {
		return false, err
	}
	tripType := trip_models.TripType(raw)
	if !tripType.Valid() {
		return false, fmt.Errorf("%w: unknown trip type %q", utils.ErrInvalidEdit, raw)
	}
	ProfileStoreFromContext(ctx).Update(trip_models.ProfilePatch{TripType: &tripType})
	return true, nil
}

// editCount handles the head-count inputs: unparsable values fall back to floor, and
// values below floor are raised to it.
func (q *QuestionnaireService) editCount(floor int, set func(p *trip_models.ProfilePatch, n int)) editHandler {
	return func(ctx context.Context, _ *QuestionnaireSession, value json.RawMessage) (bool, error) {
		n, ok := decodeInt(value)
		if !ok || n < floor {
			n = floor
		}
		var patch trip_models.ProfilePatch
		set(&patch, n)
		ProfileStoreFromContext(ctx).Update(patch)
		return true, nil
	}
}

func (q *QuestionnaireService) editPets(ctx context.Context, _ *QuestionnaireSession, value json.RawMessage) (bool, error) {
	var pets bool
	if isNull(value) || json.Unmarshal(value, &pets) != nil {
		return false, fmt.Errorf("%w: travelingWithPets expects a boolean", utils.ErrInvalidEdit)
	}
	ProfileStoreFromContext(ctx).Update(trip_models.ProfilePatch{TravelingWithPets: &pets})
	return true, nil
}

func (q *QuestionnaireService) editCustomHealthCondition(ctx context.Context, _ *QuestionnaireSession, value json.RawMessage) (bool, error) {
	text, err := decodeString(value)
	if err != nil {
		return false, err
	}
	ProfileStoreFromContext(ctx).Update(trip_models.ProfilePatch{CustomHealthCondition: &text})
	return true, nil
}

// setSlot reads and writes one multi-select field of the profile.
type setSlot struct {
	get func(p trip_models.TripProfile) []string
	set func(p *trip_models.ProfilePatch, items []string)
}

var (
	healthConditionsSlot = setSlot{
		get: func(p trip_models.TripProfile) []string { return p.HealthConditions },
		set: func(p *trip_models.ProfilePatch, items []string) { p.HealthConditions = items },
	}
	foodPreferencesSlot = setSlot{
		get: func(p trip_models.TripProfile) []string { return p.FoodPreferences },
		set: func(p *trip_models.ProfilePatch, items []string) { p.FoodPreferences = items },
	}
	travelModeSlot = setSlot{
		get: func(p trip_models.TripProfile) []string { return p.TravelMode },
		set: func(p *trip_models.ProfilePatch, items []string) { p.TravelMode = items },
	}
	interestsSlot = setSlot{
		get: func(p trip_models.TripProfile) []string { return p.Interests },
		set: func(p *trip_models.ProfilePatch, items []string) { p.Interests = items },
	}
)

func (q *QuestionnaireService) editToggle(known func(string) bool, slot setSlot) editHandler {
	return func(ctx context.Context, _ *QuestionnaireSession, value json.RawMessage) (bool, error) {
		item, err := decodeString(value)
		if err != nil {
			return false, err
		}
		if !known(item) {
			return false, fmt.Errorf("%w: %q is not one of the offered options", utils.ErrInvalidEdit, item)
		}
		store := ProfileStoreFromContext(ctx)
		var patch trip_models.ProfilePatch
		slot.set(&patch, utils.Toggle(slot.get(store.Snapshot()), item))
		store.Update(patch)
		return true, nil
	}
}

func (q *QuestionnaireService) editCustomInterests(apply func(seq []string, item string) []string) editHandler {
	return func(ctx context.Context, _ *QuestionnaireSession, value json.RawMessage) (bool, error) {
		item, err := decodeString(value)
		if err != nil {
			return false, err
		}
		store := ProfileStoreFromContext(ctx)
		before := store.Snapshot().CustomInterests
		after := apply(before, item)
		if len(after) == len(before) {
			return false, nil
		}
		store.Update(trip_models.ProfilePatch{CustomInterests: after})
		return true, nil
	}
}

func decodeString(value json.RawMessage) (string, error) {
	var s string
	if isNull(value) || json.Unmarshal(value, &s) != nil {
		return "", fmt.Errorf("%w: expected a string value", utils.ErrInvalidEdit)
	}
	return s, nil
}

// isNull reports a missing or JSON null value, which unmarshals silently to the zero value.
func isNull(value json.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeInt accepts a JSON number or a numeric string, truncating fractions the way
// a number input does.
func decodeInt(value json.RawMessage) (int, bool) {
	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		if n > math.MaxInt32 {
			return math.MaxInt32, true
		}
		if n < math.MinInt32 {
			return math.MinInt32, true
		}
		return int(n), true
	case string:
		return parseTypedInt(n)
	}
	return 0, false
}
