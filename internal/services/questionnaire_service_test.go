package services

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"
	"tripzy/internal/models/request_models"
	"tripzy/internal/models/response_models"
	"tripzy/internal/models/trip_models"
	mem "tripzy/pkg/memcache"
	"tripzy/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVocabulary() *trip_models.Vocabulary {
	return &trip_models.Vocabulary{
		Gazetteer:        testGazetteer,
		HealthConditions: []string{"Heart condition", "Asthma", "Allergies", "None"},
		FoodPreferences:  []string{"Vegetarian", "Vegan", "Jain"},
		TravelModes: []trip_models.TravelModeOption{
			{Value: "bike", Label: "Bike"},
			{Value: "car", Label: "Car"},
			{Value: "train", Label: "Train"},
		},
		Interests: []string{"Hidden Gems", "Great Food", "Heritage Architecture"},
	}
}

type recordingMetrics struct {
	started     int
	transitions []string
}

func (m *recordingMetrics) SessionStarted(string) { m.started++ }

func (m *recordingMetrics) TransitionRecorded(_ string, kind string) {
	m.transitions = append(m.transitions, kind)
}

type fakeChatService struct {
	handedOff []trip_models.TripProfile
	err       error
}

func (f *fakeChatService) StartConversation(_ context.Context, profile trip_models.TripProfile) (response_models.ConversationResponse, error) {
	if f.err != nil {
		return response_models.ConversationResponse{}, f.err
	}
	f.handedOff = append(f.handedOff, profile)
	return response_models.ConversationResponse{ConversationID: "conv-1", Reply: "Vanakkam!"}, nil
}

func (f *fakeChatService) SendMessage(context.Context, string, string) (response_models.ChatReplyResponse, error) {
	return response_models.ChatReplyResponse{}, nil
}

func (f *fakeChatService) HasConversation(string) bool { return false }

type serviceFixture struct {
	svc      QuestionnaireServiceInterface
	chat     *fakeChatService
	metrics  *recordingMetrics
	sessions *mem.TTLSessions[*QuestionnaireSession]
}

func newServiceFixture(t *testing.T, cfg FlowConfig) serviceFixture {
	t.Helper()
	f := serviceFixture{
		chat:     &fakeChatService{},
		metrics:  &recordingMetrics{},
		sessions: mem.NewTTLSessions[*QuestionnaireSession](time.Minute),
	}
	vocab := testVocabulary()
	f.svc = NewQuestionnaireService(cfg, vocab, NewLocationService(vocab.Gazetteer, 0), f.chat, f.sessions, f.metrics)
	return f
}

func edit(t *testing.T, svc QuestionnaireServiceInterface, id string, field string, value any) response_models.EditResultResponse {
	t.Helper()
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	resp, err := svc.ApplyEdit(context.Background(), id, request_models.EditEventRequest{Field: field, Value: raw})
	require.NoError(t, err)
	return resp
}

func TestStartSession(t *testing.T) {
	f := newServiceFixture(t, FullFlow)
	resp, err := f.svc.StartSession(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 1, resp.CurrentStep)
	assert.Equal(t, 7, resp.TotalSteps)
	assert.Equal(t, "location", resp.StepID)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, DefaultTripProfile(), resp.Profile)
	assert.Equal(t, trip_models.BudgetAmounts{Accommodation: 20000, Transport: 15000, Food: 10000, Activities: 5000}, resp.BudgetAmounts)
	assert.Equal(t, "₹50,000", resp.BudgetLabels["total"])
	assert.Equal(t, 1, f.metrics.started)
	assert.Equal(t, 1, f.sessions.Count())
}

func TestGetSessionMissing(t *testing.T) {
	f := newServiceFixture(t, FullFlow)
	_, err := f.svc.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestLocationTypingAndSelection(t *testing.T) {
	f := newServiceFixture(t, FullFlow)
	s, _ := f.svc.StartSession(context.Background())

	resp := edit(t, f.svc, s.SessionID, "fromLocation", "oo")
	assert.True(t, resp.Session.Locations.Visible)
	assert.Contains(t, resp.Session.Locations.Suggestions, "Ooty")
	assert.Equal(t, "oo", resp.Session.Profile.FromLocation)

	resp = edit(t, f.svc, s.SessionID, "fromLocation.select", "Ooty")
	assert.Equal(t, "Ooty", resp.Session.Profile.FromLocation)
	assert.False(t, resp.Session.Locations.Visible)

	resp = edit(t, f.svc, s.SessionID, "fromLocation.focus", nil)
	assert.True(t, resp.Session.Locations.Visible)
	assert.Equal(t, []string{"Ooty"}, resp.Session.Locations.Suggestions)

	resp = edit(t, f.svc, s.SessionID, "fromLocation", "")
	assert.False(t, resp.Session.Locations.Visible)
}

func TestSelectUnknownPlaceIsInvalid(t *testing.T) {
	f := newServiceFixture(t, FullFlow)
	s, _ := f.svc.StartSession(context.Background())
	_, err := f.svc.ApplyEdit(context.Background(), s.SessionID, request_models.EditEventRequest{
		Field: "fromLocation.select",
		Value: json.RawMessage(`"Atlantis"`),
	})
	assert.ErrorIs(t, err, utils.ErrInvalidEdit)
}

func TestBudgetEdits(t *testing.T) {
	f := newServiceFixture(t, CompactFlow)
	s, _ := f.svc.StartSession(context.Background())

	resp := edit(t, f.svc, s.SessionID, "budgetTotal", 120000)
	assert.Equal(t, 120000, resp.Session.Profile.BudgetTotal)
	assert.Equal(t, 48000, resp.Session.BudgetAmounts.Accommodation)

	resp = edit(t, f.svc, s.SessionID, "budgetTotal", "not a number")
	assert.Equal(t, BudgetMin, resp.Session.Profile.BudgetTotal)

	resp = edit(t, f.svc, s.SessionID, "budgetTotal", 10_000_000)
	assert.Equal(t, BudgetMax, resp.Session.Profile.BudgetTotal)

	// typed digits beyond int range go to the nearest bound, same as a number
	resp = edit(t, f.svc, s.SessionID, "budgetTotal", "99999999999999999999")
	assert.Equal(t, BudgetMax, resp.Session.Profile.BudgetTotal)
	resp = edit(t, f.svc, s.SessionID, "budgetTotal", json.RawMessage(`99999999999999999999`))
	assert.Equal(t, BudgetMax, resp.Session.Profile.BudgetTotal)
	resp = edit(t, f.svc, s.SessionID, "budgetTotal", "-99999999999999999999")
	assert.Equal(t, BudgetMin, resp.Session.Profile.BudgetTotal)

	resp = edit(t, f.svc, s.SessionID, "budgetBreakdown.accommodation", 45)
	assert.False(t, resp.Applied)
	assert.Equal(t, DefaultBudgetBreakdown, resp.Session.Profile.BudgetBreakdown)

	resp = edit(t, f.svc, s.SessionID, "budgetBreakdown.accommodation", 35)
	assert.True(t, resp.Applied)
	assert.Equal(t, trip_models.BudgetBreakdown{Accommodation: 35, Transport: 30, Food: 20, Activities: 10}, resp.Session.Profile.BudgetBreakdown)

	resp = edit(t, f.svc, s.SessionID, "budgetBreakdown.food", "abc")
	assert.False(t, resp.Applied)

	_, err := f.svc.ApplyEdit(context.Background(), s.SessionID, request_models.EditEventRequest{
		Field: "budgetBreakdown.souvenirs",
		Value: json.RawMessage(`5`),
	})
	assert.ErrorIs(t, err, utils.ErrInvalidEdit)
}

func TestTripTypeKeepsDormantFields(t *testing.T) {
	f := newServiceFixture(t, CompactFlow)
	s, _ := f.svc.StartSession(context.Background())

	edit(t, f.svc, s.SessionID, "tripType", "family")
	edit(t, f.svc, s.SessionID, "adults", 2)
	resp := edit(t, f.svc, s.SessionID, "children", 1)
	assert.Equal(t, trip_models.TripTypeFamily, resp.Session.Profile.TripType)

	edit(t, f.svc, s.SessionID, "tripType", "solo")
	resp = edit(t, f.svc, s.SessionID, "tripType", "family")

	require.NotNil(t, resp.Session.Profile.Adults)
	require.NotNil(t, resp.Session.Profile.Children)
	assert.Equal(t, 2, *resp.Session.Profile.Adults)
	assert.Equal(t, 1, *resp.Session.Profile.Children)
}

func TestCountFallbacks(t *testing.T) {
	f := newServiceFixture(t, CompactFlow)
	s, _ := f.svc.StartSession(context.Background())

	resp := edit(t, f.svc, s.SessionID, "groupSize", "")
	assert.Equal(t, 2, *resp.Session.Profile.GroupSize)
	resp = edit(t, f.svc, s.SessionID, "groupSize", 1)
	assert.Equal(t, 2, *resp.Session.Profile.GroupSize)
	resp = edit(t, f.svc, s.SessionID, "groupSize", "6")
	assert.Equal(t, 6, *resp.Session.Profile.GroupSize)
	resp = edit(t, f.svc, s.SessionID, "adults", 0)
	assert.Equal(t, 1, *resp.Session.Profile.Adults)
	resp = edit(t, f.svc, s.SessionID, "children", -3)
	assert.Equal(t, 0, *resp.Session.Profile.Children)

	resp = edit(t, f.svc, s.SessionID, "groupSize", "99999999999999999999")
	assert.Equal(t, math.MaxInt32, *resp.Session.Profile.GroupSize)
	resp = edit(t, f.svc, s.SessionID, "adults", "-99999999999999999999")
	assert.Equal(t, 1, *resp.Session.Profile.Adults)
}

func TestNullValuesAreInvalid(t *testing.T) {
	f := newServiceFixture(t, CompactFlow)
	s, _ := f.svc.StartSession(context.Background())
	edit(t, f.svc, s.SessionID, "tripType", "friends")
	edit(t, f.svc, s.SessionID, "travelingWithPets", true)

	for _, field := range []string{"tripType", "travelingWithPets", "fromLocation", "customHealthCondition", "interests", "customInterests.add"} {
		_, err := f.svc.ApplyEdit(context.Background(), s.SessionID, request_models.EditEventRequest{
			Field: field,
			Value: json.RawMessage(`null`),
		})
		assert.ErrorIs(t, err, utils.ErrInvalidEdit, "field %s", field)
	}

	resp, err := f.svc.GetSession(context.Background(), s.SessionID)
	require.NoError(t, err)
	assert.Equal(t, trip_models.TripTypeFriends, resp.Profile.TripType)
	assert.True(t, resp.Profile.TravelingWithPets)
}

func TestInvalidEdits(t *testing.T) {
	f := newServiceFixture(t, CompactFlow)
	s, _ := f.svc.StartSession(context.Background())

	cases := []request_models.EditEventRequest{
		{Field: "tripType", Value: json.RawMessage(`"cruise"`)},
		{Field: "travelingWithPets", Value: json.RawMessage(`"yes"`)},
		{Field: "healthConditions", Value: json.RawMessage(`"Gout"`)},
		{Field: "travelMode", Value: json.RawMessage(`"Bike"`)},
		{Field: "nickname", Value: json.RawMessage(`"x"`)},
	}
	for _, c := range cases {
		_, err := f.svc.ApplyEdit(context.Background(), s.SessionID, c)
		assert.ErrorIs(t, err, utils.ErrInvalidEdit, "field %s", c.Field)
	}
}

func TestMultiSelectToggles(t *testing.T) {
	f := newServiceFixture(t, CompactFlow)
	s, _ := f.svc.StartSession(context.Background())

	edit(t, f.svc, s.SessionID, "healthConditions", "Asthma")
	edit(t, f.svc, s.SessionID, "healthConditions", "Allergies")
	resp := edit(t, f.svc, s.SessionID, "healthConditions", "Asthma")
	assert.Equal(t, []string{"Allergies"}, resp.Session.Profile.HealthConditions)

	resp = edit(t, f.svc, s.SessionID, "customHealthCondition", "Knee surgery last year")
	assert.Equal(t, "Knee surgery last year", resp.Session.Profile.CustomHealthCondition)
	assert.Equal(t, []string{"Allergies"}, resp.Session.Profile.HealthConditions)

	edit(t, f.svc, s.SessionID, "foodPreferences", "Jain")
	edit(t, f.svc, s.SessionID, "travelMode", "train")
	resp = edit(t, f.svc, s.SessionID, "interests", "Hidden Gems")
	assert.Equal(t, []string{"Jain"}, resp.Session.Profile.FoodPreferences)
	assert.Equal(t, []string{"train"}, resp.Session.Profile.TravelMode)
	assert.Equal(t, []string{"Hidden Gems"}, resp.Session.Profile.Interests)

	resp = edit(t, f.svc, s.SessionID, "travelingWithPets", true)
	assert.True(t, resp.Session.Profile.TravelingWithPets)
}

func TestCustomInterests(t *testing.T) {
	f := newServiceFixture(t, CompactFlow)
	s, _ := f.svc.StartSession(context.Background())

	edit(t, f.svc, s.SessionID, "customInterests.add", "Tea tasting")
	edit(t, f.svc, s.SessionID, "customInterests.add", "Toy train")
	resp := edit(t, f.svc, s.SessionID, "customInterests.add", "Tea tasting")
	assert.False(t, resp.Applied)
	assert.Equal(t, []string{"Tea tasting", "Toy train"}, resp.Session.Profile.CustomInterests)

	resp = edit(t, f.svc, s.SessionID, "customInterests.remove", "Tea tasting")
	assert.True(t, resp.Applied)
	assert.Equal(t, []string{"Toy train"}, resp.Session.Profile.CustomInterests)
}

func TestApplicableFieldsFollowTripType(t *testing.T) {
	f := newServiceFixture(t, CompactFlow)
	s, _ := f.svc.StartSession(context.Background())
	_, err := f.svc.Advance(context.Background(), s.SessionID)
	require.NoError(t, err)

	resp := edit(t, f.svc, s.SessionID, "tripType", "friends")
	assert.Equal(t, "trip_type", resp.Session.StepID)
	assert.Contains(t, resp.Session.ApplicableFields, trip_models.FieldGroupSize)

	resp = edit(t, f.svc, s.SessionID, "tripType", "partner")
	assert.NotContains(t, resp.Session.ApplicableFields, trip_models.FieldGroupSize)
}

func TestAdvanceToCompletionHandsOffProfile(t *testing.T) {
	f := newServiceFixture(t, CompactFlow)
	ctx := context.Background()
	s, _ := f.svc.StartSession(ctx)
	edit(t, f.svc, s.SessionID, "interests", "Great Food")

	var last response_models.TransitionResponse
	for i := 0; i < s.TotalSteps; i++ {
		var err error
		last, err = f.svc.Advance(ctx, s.SessionID)
		require.NoError(t, err)
		if i < s.TotalSteps-1 {
			require.Equal(t, "moved", last.Transition)
			require.NotNil(t, last.Session)
			assert.Equal(t, i+2, last.Session.CurrentStep)
		}
	}

	assert.Equal(t, "completed", last.Transition)
	assert.True(t, last.HandedOff)
	require.NotNil(t, last.Conversation)
	assert.Equal(t, "conv-1", last.Conversation.ConversationID)
	require.Len(t, f.chat.handedOff, 1)
	assert.Equal(t, []string{"Great Food"}, f.chat.handedOff[0].Interests)
	assert.Equal(t, 0, f.sessions.Count())

	_, err := f.svc.Advance(ctx, s.SessionID)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestCompletionWithoutChatStillCompletes(t *testing.T) {
	f := newServiceFixture(t, CompactFlow)
	f.chat.err = utils.ErrChatUnavailable
	ctx := context.Background()
	s, _ := f.svc.StartSession(ctx)

	var last response_models.TransitionResponse
	for i := 0; i < s.TotalSteps; i++ {
		last, _ = f.svc.Advance(ctx, s.SessionID)
	}
	assert.Equal(t, "completed", last.Transition)
	assert.False(t, last.HandedOff)
	require.NotNil(t, last.Profile)
}

func TestRetreatFromFirstStepAbortsSession(t *testing.T) {
	f := newServiceFixture(t, FullFlow)
	ctx := context.Background()
	s, _ := f.svc.StartSession(ctx)

	resp, err := f.svc.Retreat(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "aborted", resp.Transition)
	assert.Nil(t, resp.Session)
	assert.Equal(t, []string{"aborted"}, f.metrics.transitions)

	_, err = f.svc.GetSession(ctx, s.SessionID)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestVocabularyResponse(t *testing.T) {
	f := newServiceFixture(t, FullFlow)
	v := f.svc.Vocabulary()
	assert.Equal(t, 10000, v.Budget.Min)
	assert.Equal(t, 500000, v.Budget.Max)
	assert.Equal(t, 5000, v.Budget.Step)
	assert.NotEmpty(t, v.Gazetteer)
	assert.Equal(t, []string{"Ooty"}, f.svc.SuggestLocations("OOT"))
}
