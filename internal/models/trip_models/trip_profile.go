package trip_models

type TripType string

const (
	TripTypeUnset   TripType = ""
	TripTypeSolo    TripType = "solo"
	TripTypePartner TripType = "partner"
	TripTypeFriends TripType = "friends"
	TripTypeFamily  TripType = "family"
)

func (t TripType) Valid() bool {
	switch t {
	case TripTypeUnset, TripTypeSolo, TripTypePartner, TripTypeFriends, TripTypeFamily:
		return true
	}
	return false
}

type BudgetCategory string

const (
	CategoryAccommodation BudgetCategory = "accommodation"
	CategoryTransport     BudgetCategory = "transport"
	CategoryFood          BudgetCategory = "food"
	CategoryActivities    BudgetCategory = "activities"
)

// BudgetCategories is the fixed display order of the breakdown.
var BudgetCategories = []BudgetCategory{
	CategoryAccommodation,
	CategoryTransport,
	CategoryFood,
	CategoryActivities,
}

func (c BudgetCategory) Valid() bool {
	switch c {
	case CategoryAccommodation, CategoryTransport, CategoryFood, CategoryActivities:
		return true
	}
	return false
}

// BudgetBreakdown holds integer percentages per category.
type BudgetBreakdown struct {
	Accommodation int `json:"accommodation"`
	Transport     int `json:"transport"`
	Food          int `json:"food"`
	Activities    int `json:"activities"`
}

func (b BudgetBreakdown) Get(c BudgetCategory) int {
	switch c {
	case CategoryAccommodation:
		return b.Accommodation
	case CategoryTransport:
		return b.Transport
	case CategoryFood:
		return b.Food
	case CategoryActivities:
		return b.Activities
	}
	return 0
}

// With returns a copy with category c set to v. Unknown categories return b unchanged.
func (b BudgetBreakdown) With(c BudgetCategory, v int) BudgetBreakdown {
	switch c {
	case CategoryAccommodation:
		b.Accommodation = v
	case CategoryTransport:
		b.Transport = v
	case CategoryFood:
		b.Food = v
	case CategoryActivities:
		b.Activities = v
	}
	return b
}

func (b BudgetBreakdown) Sum() int {
	return b.Accommodation + b.Transport + b.Food + b.Activities
}

// BudgetAmounts is the money breakdown derived from a total and a BudgetBreakdown.
type BudgetAmounts struct {
	Accommodation int `json:"accommodation"`
	Transport     int `json:"transport"`
	Food          int `json:"food"`
	Activities    int `json:"activities"`
}

func (a BudgetAmounts) Get(c BudgetCategory) int {
	switch c {
	case CategoryAccommodation:
		return a.Accommodation
	case CategoryTransport:
		return a.Transport
	case CategoryFood:
		return a.Food
	case CategoryActivities:
		return a.Activities
	}
	return 0
}

func (a BudgetAmounts) Sum() int {
	return a.Accommodation + a.Transport + a.Food + a.Activities
}

type TripProfile struct {
	FromLocation          string          `json:"from_location"`
	BudgetTotal           int             `json:"budget_total"`
	BudgetBreakdown       BudgetBreakdown `json:"budget_breakdown"`
	TripType              TripType        `json:"trip_type"`
	GroupSize             *int            `json:"group_size,omitempty"`
	Adults                *int            `json:"adults,omitempty"`
	Children              *int            `json:"children,omitempty"`
	TravelingWithPets     bool            `json:"traveling_with_pets"`
	HealthConditions      []string        `json:"health_conditions"`
	CustomHealthCondition string          `json:"custom_health_condition"`
	FoodPreferences       []string        `json:"food_preferences"`
	TravelMode            []string        `json:"travel_mode"`
	Interests             []string        `json:"interests"`
	CustomInterests       []string        `json:"custom_interests"`
}

// Clone returns a deep copy so the result can be handed off by value.
func (p TripProfile) Clone() TripProfile {
	out := p
	out.GroupSize = cloneInt(p.GroupSize)
	out.Adults = cloneInt(p.Adults)
	out.Children = cloneInt(p.Children)
	out.HealthConditions = cloneStrings(p.HealthConditions)
	out.FoodPreferences = cloneStrings(p.FoodPreferences)
	out.TravelMode = cloneStrings(p.TravelMode)
	out.Interests = cloneStrings(p.Interests)
	out.CustomInterests = cloneStrings(p.CustomInterests)
	return out
}

// ProfilePatch is a partial update. Nil fields are left untouched; a non-nil empty
// slice clears the set.
type ProfilePatch struct {
	FromLocation          *string
	BudgetTotal           *int
	BudgetBreakdown       *BudgetBreakdown
	TripType              *TripType
	GroupSize             *int
	Adults                *int
	Children              *int
	TravelingWithPets     *bool
	HealthConditions      []string
	CustomHealthCondition *string
	FoodPreferences       []string
	TravelMode            []string
	Interests             []string
	CustomInterests       []string
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
