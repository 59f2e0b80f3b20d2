package models

type CalorieGoals struct {
	Maintain   int `json:"maintain"`
	LoseWeight int `json:"loseWeight"`
	GainWeight int `json:"gainWeight"`
}

// UserInfo echoes the normalized input back to the caller.
type UserInfo struct {
	Age            int     `json:"age"`
	Gender         Gender  `json:"gender"`
	WeightPounds   float64 `json:"weightPounds"`
	HeightFeet     int     `json:"heightFeet"`
	HeightInches   int     `json:"heightInches"`
	Height         string  `json:"height"`
	ActivityLevel  string  `json:"activityLevel"`
	ActivityFactor float64 `json:"activityFactor"`
}

// Conversions holds metric values rounded to one decimal place.
type Conversions struct {
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
}

type CalculationResult struct {
	BMR          int          `json:"bmr"`
	TDEE         int          `json:"tdee"`
	CalorieGoals CalorieGoals `json:"calorieGoals"`
	UserInfo     UserInfo     `json:"userInfo"`
	Conversions  Conversions  `json:"conversions"`
}
