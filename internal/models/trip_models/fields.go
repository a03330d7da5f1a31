package trip_models

// Field names a profile slot as the questionnaire shell addresses it.
type Field string

const (
	FieldFromLocation          Field = "fromLocation"
	FieldBudgetTotal           Field = "budgetTotal"
	FieldBudgetBreakdown       Field = "budgetBreakdown"
	FieldTripType              Field = "tripType"
	FieldGroupSize             Field = "groupSize"
	FieldAdults                Field = "adults"
	FieldChildren              Field = "children"
	FieldTravelingWithPets     Field = "travelingWithPets"
	FieldHealthConditions      Field = "healthConditions"
	FieldCustomHealthCondition Field = "customHealthCondition"
	FieldFoodPreferences       Field = "foodPreferences"
	FieldTravelMode            Field = "travelMode"
	FieldInterests             Field = "interests"
	FieldCustomInterests       Field = "customInterests"
)

// Edit-only addresses that act on a field instead of overwriting it.
const (
	FieldFromLocationSelect    Field = "fromLocation.select"
	FieldFromLocationFocus     Field = "fromLocation.focus"
	FieldCustomInterestsAdd    Field = "customInterests.add"
	FieldCustomInterestsRemove Field = "customInterests.remove"

	// BudgetSharePrefix is followed by a BudgetCategory, e.g. "budgetBreakdown.food".
	BudgetSharePrefix = "budgetBreakdown."
)
