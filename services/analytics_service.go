package services

import (
	"context"
	"errors"
	"math"
	"time"

	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/utils"
)

// MaxAnalyticsDays caps one report.
const MaxAnalyticsDays = 92

type AnalyticsService struct {
	plans MealPlanStore
	goals GoalStore
}

func NewAnalyticsService(plans MealPlanStore, goals GoalStore) *AnalyticsService {
	return &AnalyticsService{plans: plans, goals: goals}
}

type Metric struct {
	Actual  float64 `json:"actual"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
}

type DayNutrition struct {
	Date    string            `json:"date"`
	Meals   int               `json:"meals"`
	Metrics map[string]Metric `json:"metrics"`
}

type DailyNutritionReport struct {
	From string         `json:"from"`
	To   string         `json:"to"`
	Days []DayNutrition `json:"days"`
}

// DailyNutrition totals what is planned for each day of [from, to] and
// compares it with the user's daily goal. Each item counts its quantity in
// recipe servings.
func (s *AnalyticsService) DailyNutrition(ctx context.Context, userID string, from, to time.Time) (*DailyNutritionReport, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	from, to = utils.CalendarDay(from), utils.CalendarDay(to)
	verr := &utils.ValidationError{}
	if to.Before(from) {
		verr.Add("to", "must be on or after from")
	} else if int(to.Sub(from).Hours()/24)+1 > MaxAnalyticsDays {
		verr.Add("to", "range must not exceed %d days", MaxAnalyticsDays)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	plans, err := s.plans.ListMealPlans(ctx, userID, &repository.DateRange{Start: from, End: to})
	if err != nil {
		return nil, err
	}
	goal, err := s.goalSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := utils.ItemsBetween(utils.ItemsInRange(plans, from, to), from, to)
	byDay := map[string]utils.NutrientTotals{}
	count := map[string]int{}
	for _, it := range items {
		n, err := utils.ItemNutrition(it)
		if err != nil {
			return nil, err
		}
		key := utils.CalendarDay(it.Date).Format(utils.DateLayout)
		byDay[key] = byDay[key].Add(n)
		count[key]++
	}

	out := &DailyNutritionReport{
		From: from.Format(utils.DateLayout),
		To:   to.Format(utils.DateLayout),
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(utils.DateLayout)
		t := byDay[key]
		out.Days = append(out.Days, DayNutrition{
			Date:  key,
			Meals: count[key],
			Metrics: map[string]Metric{
				"calories":  metric(t.Calories, goal.Calories),
				"protein_g": metric(t.Protein, goal.Protein),
				"carbs_g":   metric(t.Carbs, goal.Carbs),
				"fat_g":     metric(t.Fat, goal.Fat),
				"fiber_g":   metric(t.Fiber, goal.Fiber),
				"sugar_g":   metric(t.Sugar, goal.Sugar),
				"sodium_mg": metric(t.Sodium, goal.Sodium),
			},
		})
	}
	return out, nil
}

func (s *AnalyticsService) goalSnapshot(ctx context.Context, userID string) (*models.DailyGoal, error) {
	g, err := s.goals.FindGoal(ctx, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return &models.DailyGoal{UserID: userID}, nil
	}
	return g, err
}

func metric(actual, target float64) Metric {
	return Metric{Actual: round2(actual), Target: round2(target), Percent: pct(actual, target)}
}

func pct(actual, goal float64) float64 {
	if goal <= 0 {
		if actual <= 0 {
			return 0
		}
		return 100
	}
	return round2((actual / goal) * 100.0)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
