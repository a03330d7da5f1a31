package services

import (
	"context"
	"tripzy/internal/models/trip_models"
)

// DefaultTripProfile is the profile every session starts from and Reset returns to.
func DefaultTripProfile() trip_models.TripProfile {
	return trip_models.TripProfile{
		BudgetTotal:      BudgetDefault,
		BudgetBreakdown:  DefaultBudgetBreakdown,
		TripType:         trip_models.TripTypeUnset,
		HealthConditions: []string{},
		FoodPreferences:  []string{},
		TravelMode:       []string{},
		Interests:        []string{},
		CustomInterests:  []string{},
	}
}

// ProfileStore accumulates questionnaire answers for one session. It performs no
// validation; callers apply policy before building a patch.
type ProfileStore struct {
	profile trip_models.TripProfile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profile: DefaultTripProfile()}
}

// Update shallow-merges the non-nil fields of patch. Nested values are replaced
// wholesale.
func (s *ProfileStore) Update(patch trip_models.ProfilePatch) {
	s.mustBeActive()
	p := &s.profile
	if patch.FromLocation != nil {
		p.FromLocation = *patch.FromLocation
	}
	if patch.BudgetTotal != nil {
		p.BudgetTotal = *patch.BudgetTotal
	}
	if patch.BudgetBreakdown != nil {
		p.BudgetBreakdown = *patch.BudgetBreakdown
	}
	if patch.TripType != nil {
		p.TripType = *patch.TripType
	}
	if patch.GroupSize != nil {
		p.GroupSize = intPtr(*patch.GroupSize)
	}
	if patch.Adults != nil {
		p.Adults = intPtr(*patch.Adults)
	}
	if patch.Children != nil {
		p.Children = intPtr(*patch.Children)
	}
	if patch.TravelingWithPets != nil {
		p.TravelingWithPets = *patch.TravelingWithPets
	}
	if patch.HealthConditions != nil {
		p.HealthConditions = copyStrings(patch.HealthConditions)
	}
	if patch.CustomHealthCondition != nil {
		p.CustomHealthCondition = *patch.CustomHealthCondition
	}
	if patch.FoodPreferences != nil {
		p.FoodPreferences = copyStrings(patch.FoodPreferences)
	}
	if patch.TravelMode != nil {
		p.TravelMode = copyStrings(patch.TravelMode)
	}
	if patch.Interests != nil {
		p.Interests = copyStrings(patch.Interests)
	}
	if patch.CustomInterests != nil {
		p.CustomInterests = copyStrings(patch.CustomInterests)
	}
}

func (s *ProfileStore) Reset() {
	s.mustBeActive()
	s.profile = DefaultTripProfile()
}

// Snapshot returns a deep copy of the current profile.
func (s *ProfileStore) Snapshot() trip_models.TripProfile {
	s.mustBeActive()
	return s.profile.Clone()
}

func (s *ProfileStore) mustBeActive() {
	if s == nil {
		panic("services: profile store used outside an active questionnaire session")
	}
}

type profileStoreKey struct{}

// WithProfileStore binds the session's store to ctx.
func WithProfileStore(ctx context.Context, store *ProfileStore) context.Context {
	return context.WithValue(ctx, profileStoreKey{}, store)
}

// ProfileStoreFromContext returns the store bound by WithProfileStore. Reaching for it
// without an active session is a wiring bug, so it panics instead of handing back a
// default profile.
func ProfileStoreFromContext(ctx context.Context) *ProfileStore {
	store, ok := ctx.Value(profileStoreKey{}).(*ProfileStore)
	if !ok || store == nil {
		panic("services: ProfileStoreFromContext called without an active questionnaire session")
	}
	return store
}

func intPtr(v int) *int {
	return &v
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
