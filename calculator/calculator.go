package calculator

import (
	"fmt"
	"math"

	"github.com/aguxez/bmrcalc/models"
)

const (
	cmPerInch    = 2.54
	kgPerPound   = 0.453592
	goalDeltaCal = 500

	maleOffset   = 5.0
	femaleOffset = -161.0
)

// Calculator computes BMR and TDEE with the Mifflin-St Jeor equation. It holds
// no state and is safe for concurrent use.
type Calculator struct{}

func New() *Calculator {
	return &Calculator{}
}

// Compute validates the measurement and returns the rounded result. The
// returned error is a *ValidationError for rejected input.
func (c *Calculator) Compute(in models.UserMeasurement) (models.CalculationResult, error) {
	factor, err := Validate(in)
	if err != nil {
		return models.CalculationResult{}, err
	}

	heightCm := float64(in.HeightFeet*12+in.HeightInches) * cmPerInch
	weightKg := in.WeightPounds * kgPerPound

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(in.Age)
	if in.Gender == models.Male {
		bmr += maleOffset
	} else {
		bmr += femaleOffset
	}
	tdee := bmr * factor

	if math.IsNaN(tdee) || math.IsInf(tdee, 0) {
		return models.CalculationResult{}, fmt.Errorf("non-finite tdee for bmr %v and factor %v", bmr, factor)
	}

	maintain := int(math.Round(tdee))
	return models.CalculationResult{
		BMR:  int(math.Round(bmr)),
		TDEE: maintain,
		CalorieGoals: models.CalorieGoals{
			Maintain:   maintain,
			LoseWeight: maintain - goalDeltaCal,
			GainWeight: maintain + goalDeltaCal,
		},
		UserInfo: models.UserInfo{
			Age:            in.Age,
			Gender:         in.Gender,
			WeightPounds:   in.WeightPounds,
			HeightFeet:     in.HeightFeet,
			HeightInches:   in.HeightInches,
			Height:         in.HeightDisplay(),
			ActivityLevel:  in.ActivityLevel,
			ActivityFactor: factor,
		},
		Conversions: models.Conversions{
			WeightKg: roundTenth(weightKg),
			HeightCm: roundTenth(heightCm),
		},
	}, nil
}

// Compute runs a zero-value Calculator.
func Compute(in models.UserMeasurement) (models.CalculationResult, error) {
	return New().Compute(in)
}

// Validate checks the measurement in a fixed order and returns the first
// failure. On success it returns the activity factor for the level.
func Validate(in models.UserMeasurement) (float64, error) {
	if in.Age < 1 || in.Age > 120 {
		return 0, rangeError(ReasonAgeOutOfRange, "age", in.Age, "Age must be between 1 and 120")
	}
	// Written so that NaN fails too.
	if !(in.WeightPounds > 0 && in.WeightPounds <= 1000) {
		return 0, rangeError(ReasonWeightOutOfRange, "weightPounds", in.WeightPounds, "Weight must be between 0 and 1000 lbs")
	}
	if in.HeightFeet < 0 || in.HeightFeet > 8 {
		return 0, rangeError(ReasonHeightFeetOutOfRange, "heightFeet", in.HeightFeet, "Height in feet must be between 0 and 8")
	}
	if in.HeightInches < 0 || in.HeightInches > 11 {
		return 0, rangeError(ReasonHeightInchesOutOfRange, "heightInches", in.HeightInches, "Height in inches must be between 0 and 11")
	}
	if in.Gender != models.Male && in.Gender != models.Female {
		return 0, choiceError(ReasonUnknownGender, "gender", "gender", string(in.Gender), models.Genders(), ", ")
	}
	factor, ok := models.ActivityFactor(in.ActivityLevel)
	if !ok {
		// Labels contain commas, so they are joined with semicolons.
		return 0, choiceError(ReasonUnknownActivityLevel, "activityLevel", "activity level", in.ActivityLevel, models.ActivityLabels(), "; ")
	}
	return factor, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
