package utils

import "errors"

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	// same plausibility window as profile validation
	if heightCm < 50 || heightCm > 300 || weightKg < 20 || weightKg > 500 {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0
	return round2(weightKg / (h * h)), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

var activityFactors = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extremely_active":  1.9,
}

// EstimateDailyCalories uses Mifflin-St Jeor times an activity factor.
// Unknown gender averages the male and female offsets; unknown activity is
// treated as sedentary.
func EstimateDailyCalories(age int, gender string, heightCm, weightKg float64, activity string) (float64, error) {
	if age <= 0 || heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("age, height and weight are required")
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		bmr -= 78
	}
	factor, ok := activityFactors[activity]
	if !ok {
		factor = activityFactors["sedentary"]
	}
	return round2(bmr * factor), nil
}
