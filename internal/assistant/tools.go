package assistant

import (
	"context"
	"math"
)

type BMIResult struct {
	BMI      float64
	Category string
	WeightKg float64
	HeightCm float64
}

// CalculateBMI computes body mass index and, as a side effect, folds the
// submitted weight and height into the session profile so later context
// blocks reflect them.
func (s *Service) CalculateBMI(ctx context.Context, sessionID string, weightKg, heightCm float64) (BMIResult, error) {
	if weightKg <= 0 {
		return BMIResult{}, &ValidationError{Detail: "weight must be a positive number of kilograms"}
	}
	if heightCm <= 0 {
		return BMIResult{}, &ValidationError{Detail: "height must be a positive number of centimeters"}
	}

	meters := heightCm / 100
	bmi := math.Round(weightKg/(meters*meters)*10) / 10

	profile, err := s.loadProfile(ctx, sessionID)
	if err != nil {
		return BMIResult{}, err
	}
	profile = ApplyPatch(profile, ProfilePatch{
		WeightKg: &weightKg,
		HeightCm: &heightCm,
	})
	if err := s.saveProfile(ctx, sessionID, profile); err != nil {
		return BMIResult{}, err
	}

	return BMIResult{
		BMI:      bmi,
		Category: bmiCategory(bmi),
		WeightKg: weightKg,
		HeightCm: heightCm,
	}, nil
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// WaterIntakeLiters recommends a daily intake: 33 ml per kg of body weight
// plus 0.35 L per 30 minutes of exercise, rounded to two decimals. Pure
// arithmetic, no session state.
func WaterIntakeLiters(weightKg float64, activityMinutes int) (float64, error) {
	if weightKg <= 0 {
		return 0, &ValidationError{Detail: "weight must be a positive number of kilograms"}
	}
	if activityMinutes < 0 {
		return 0, &ValidationError{Detail: "activity minutes must not be negative"}
	}
	liters := weightKg*0.033 + float64(activityMinutes)/30*0.35
	return math.Round(liters*100) / 100, nil
}
