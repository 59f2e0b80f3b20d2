package models

import "fmt"

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

var genders = []Gender{Male, Female}

// Genders returns the accepted gender labels in display order.
func Genders() []string {
	out := make([]string, len(genders))
	for i, g := range genders {
		out[i] = string(g)
	}
	return out
}

// ActivityLevel pairs a label with its TDEE multiplier.
type ActivityLevel struct {
	Label  string  `json:"label"`
	Factor float64 `json:"factor"`
}

const (
	Sedentary        = "Sedentary (little or no exercise)"
	LightlyActive    = "Lightly Active (light exercise 1-3 days/week)"
	ModeratelyActive = "Moderately Active (moderate exercise 3-5 days/week)"
	VeryActive       = "Very Active (hard exercise 6-7 days/week)"
	SuperActive      = "Super Active (very hard exercise, physical job)"
)

// activityLevels is read-only after init. Order is the display order.
var activityLevels = []ActivityLevel{
	{Label: Sedentary, Factor: 1.2},
	{Label: LightlyActive, Factor: 1.375},
	{Label: ModeratelyActive, Factor: 1.55},
	{Label: VeryActive, Factor: 1.725},
	{Label: SuperActive, Factor: 1.9},
}

var activityFactors = func() map[string]float64 {
	m := make(map[string]float64, len(activityLevels))
	for _, l := range activityLevels {
		m[l.Label] = l.Factor
	}
	return m
}()

// ActivityLevels returns a copy of the activity table.
func ActivityLevels() []ActivityLevel {
	out := make([]ActivityLevel, len(activityLevels))
	copy(out, activityLevels)
	return out
}

// ActivityLabels returns the activity labels in table order.
func ActivityLabels() []string {
	out := make([]string, len(activityLevels))
	for i, l := range activityLevels {
		out[i] = l.Label
	}
	return out
}

func ActivityFactor(label string) (float64, bool) {
	f, ok := activityFactors[label]
	return f, ok
}

// UserMeasurement is the calculator input. It is passed by value and never
// modified after decoding.
type UserMeasurement struct {
	Age           int     `json:"age"`
	Gender        Gender  `json:"gender"`
	WeightPounds  float64 `json:"weightPounds"`
	HeightFeet    int     `json:"heightFeet"`
	HeightInches  int     `json:"heightInches"`
	ActivityLevel string  `json:"activityLevel"`
}

// HeightDisplay formats the height as feet and inches, e.g. 5'10".
func (m UserMeasurement) HeightDisplay() string {
	return fmt.Sprintf("%d'%d\"", m.HeightFeet, m.HeightInches)
}

// ExampleMeasurement is the payload served by the example endpoint.
func ExampleMeasurement() UserMeasurement {
	return UserMeasurement{
		Age:           30,
		Gender:        Male,
		WeightPounds:  180.5,
		HeightFeet:    5,
		HeightInches:  10,
		ActivityLevel: ModeratelyActive,
	}
}
