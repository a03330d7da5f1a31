package trip_models

import "slices"

type TravelModeOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon,omitempty" yaml:"icon"`
}

// Vocabulary is the fixed option data the questionnaire offers. It is loaded once at
// start and never mutated afterwards.
type Vocabulary struct {
	Gazetteer        []string           `json:"gazetteer" yaml:"gazetteer"`
	HealthConditions []string           `json:"health_conditions" yaml:"health_conditions"`
	FoodPreferences  []string           `json:"food_preferences" yaml:"food_preferences"`
	TravelModes      []TravelModeOption `json:"travel_modes" yaml:"travel_modes"`
	Interests        []string           `json:"interests" yaml:"interests"`
}

func (v *Vocabulary) HasPlace(name string) bool {
	return slices.Contains(v.Gazetteer, name)
}

func (v *Vocabulary) HasHealthCondition(item string) bool {
	return slices.Contains(v.HealthConditions, item)
}

func (v *Vocabulary) HasFoodPreference(item string) bool {
	return slices.Contains(v.FoodPreferences, item)
}

func (v *Vocabulary) HasTravelMode(value string) bool {
	return slices.ContainsFunc(v.TravelModes, func(o TravelModeOption) bool {
		return o.Value == value
	})
}

func (v *Vocabulary) HasInterest(item string) bool {
	return slices.Contains(v.Interests, item)
}
