package utils

import (
	"fmt"
)

// AssessmentContext personalizes the daily limits. Zero values mean an adult
// on 2000 kcal.
type AssessmentContext struct {
	AgeYears      int
	CalorieTarget float64 // if 0, 2000 kcal is assumed for % of day conversions
}

// FlagSeverity categorizes how serious the flag is.
type FlagSeverity string

const (
	Info    FlagSeverity = "info"
	Caution FlagSeverity = "caution"
	High    FlagSeverity = "high"
)

// NutrientFlag is a structured finding about one serving.
type NutrientFlag struct {
	Code           string       `json:"code"`
	Severity       FlagSeverity `json:"severity"`
	Message        string       `json:"message"`
	Metric         string       `json:"metric,omitempty"`
	Value          float64      `json:"value,omitempty"`
	Limit          float64      `json:"limit,omitempty"`
	PercentOfLimit float64      `json:"percentOfLimit,omitempty"`
	Reference      string       `json:"reference,omitempty"`
}

// AssessServingFor screens one serving against daily limits scaled to the
// given context.
func AssessServingFor(per NutrientTotals, ctx AssessmentContext) []NutrientFlag {
	var flags []NutrientFlag

	kcal := per.Calories
	if kcal <= 0 {
		kcal = energyFromMacros(per.Carbs, per.Protein, per.Fat)
	}
	kcalTarget := ctx.CalorieTarget
	if kcalTarget <= 0 {
		kcalTarget = 2000
	}

	// 1) Sodium: share of the age-specific daily limit
	sodLimit := sodiumLimitByAge(ctx.AgeYears)
	if per.Sodium > 0 {
		share := per.Sodium / sodLimit
		switch {
		case share >= 0.40:
			flags = append(flags, NutrientFlag{
				Code:           "sodium_very_high_daily_share",
				Severity:       High,
				Message:        fmt.Sprintf("This serving provides ~%.0f%% of the daily sodium limit.", share*100),
				Metric:         "sodium_mg",
				Value:          round2(per.Sodium),
				Limit:          sodLimit,
				PercentOfLimit: round2(share * 100),
				Reference:      dgaRef("Sodium CDRR"),
			})
		case share >= 0.20:
			flags = append(flags, NutrientFlag{
				Code:           "sodium_high_daily_share",
				Severity:       Caution,
				Message:        fmt.Sprintf("High share of daily sodium from one serving (~%.0f%%).", share*100),
				Metric:         "sodium_mg",
				Value:          round2(per.Sodium),
				Limit:          sodLimit,
				PercentOfLimit: round2(share * 100),
				Reference:      dgaRef("Sodium CDRR"),
			})
		}
	}

	// 2) Sugars: total sugar as a proxy for added sugars, <10% kcal
	if kcal > 0 && per.Sugar > 0 {
		pct := (per.Sugar * 4.0) / kcal
		if pct >= 0.10 {
			flags = append(flags, NutrientFlag{
				Code:      "total_sugars_proxy_high",
				Severity:  Caution,
				Message:   fmt.Sprintf("High sugars for this serving (%.0f%% of its calories), may include added sugars.", pct*100),
				Metric:    "total_sugar_%_of_serving_kcal",
				Value:     round2(pct * 100),
				Limit:     10,
				Reference: dgaRef("Added sugars ≤10% kcal"),
			})
		}
		sugarDailyLimitG := (0.10 * kcalTarget) / 4.0
		if share := per.Sugar / sugarDailyLimitG; share >= 0.40 {
			flags = append(flags, NutrientFlag{
				Code:           "sugars_very_high_daily_share",
				Severity:       High,
				Message:        fmt.Sprintf("This serving provides ~%.0f%% of the daily sugar limit.", share*100),
				Metric:         "sugar_%_of_daily_limit",
				Value:          round2(share * 100),
				Limit:          100,
				PercentOfLimit: round2(share * 100),
				Reference:      dgaRef("<10% kcal/day from added sugars"),
			})
		}
	}

	// 3) Fat: AMDR upper bound 35% of energy
	if kcal > 0 && per.Fat > 0 {
		pct := (per.Fat * 9.0) / kcal
		if pct > 0.35 {
			flags = append(flags, NutrientFlag{
				Code:      "fat_above_amdr",
				Severity:  Caution,
				Message:   fmt.Sprintf("Fat supplies %.0f%% of this serving's calories (AMDR 20–35%%).", pct*100),
				Metric:    "fat_%_of_serving_kcal",
				Value:     round2(pct * 100),
				Limit:     35,
				Reference: dgaRef("AMDR for fat"),
			})
		}
	}

	// 4) Fiber: positive note at >= 20% of 28 g/2000 kcal
	fiberTarget := 14.0 * kcalTarget / 1000.0
	if per.Fiber >= 0.20*fiberTarget {
		flags = append(flags, NutrientFlag{
			Code:      "good_fiber_source",
			Severity:  Info,
			Message:   "Good source of dietary fiber.",
			Metric:    "fiber_g",
			Value:     round2(per.Fiber),
			Limit:     round2(fiberTarget),
			Reference: dgaRef("14 g fiber per 1000 kcal"),
		})
	}

	return flags
}

func energyFromMacros(carbG, protG, fatG float64) float64 {
	if carbG <= 0 && protG <= 0 && fatG <= 0 {
		return 0
	}
	return 4.0*carbG + 4.0*protG + 9.0*fatG
}

func sodiumLimitByAge(age int) float64 {
	switch {
	case age > 0 && age <= 3:
		return 1200 // mg/day
	case age >= 4 && age <= 8:
		return 1500
	case age >= 9 && age <= 13:
		return 1800
	default:
		return 2300
	}
}

func dgaRef(where string) string {
	return "Dietary Guidelines for Americans, 2020-2025: " + where
}
