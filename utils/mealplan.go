package utils

import (
	"sort"
	"time"

	"nutriplan/models"
)

// Overlaps reports whether the plan's window intersects [start, end], both
// ends inclusive, compared by calendar day.
func Overlaps(p models.MealPlan, start, end time.Time) bool {
	return !CalendarDay(p.StartDate).After(CalendarDay(end)) &&
		!CalendarDay(p.EndDate).Before(CalendarDay(start))
}

// PlansInRange keeps the plans overlapping [start, end] in their input order.
func PlansInRange(plans []models.MealPlan, start, end time.Time) []models.MealPlan {
	out := make([]models.MealPlan, 0, len(plans))
	for _, p := range plans {
		if Overlaps(p, start, end) {
			out = append(out, p)
		}
	}
	return out
}

// ItemsInRange returns every item of every plan overlapping [start, end].
// Items are not narrowed by their own date. The result is sorted with
// SortItems.
func ItemsInRange(plans []models.MealPlan, start, end time.Time) []models.MealPlanItem {
	var items []models.MealPlanItem
	for _, p := range plans {
		if Overlaps(p, start, end) {
			items = append(items, p.Items...)
		}
	}
	SortItems(items)
	return items
}

// ItemsBetween keeps items whose own date falls in [start, end] by calendar day.
func ItemsBetween(items []models.MealPlanItem, start, end time.Time) []models.MealPlanItem {
	from, to := CalendarDay(start), CalendarDay(end)
	var out []models.MealPlanItem
	for _, it := range items {
		d := CalendarDay(it.Date)
		if !d.Before(from) && !d.After(to) {
			out = append(out, it)
		}
	}
	return out
}

// ItemsForDay maps each meal slot to the first item, in input order, scheduled
// on day. Every slot is present; empty slots hold nil.
func ItemsForDay(items []models.MealPlanItem, day time.Time) map[models.MealType]*models.MealPlanItem {
	slots := make(map[models.MealType]*models.MealPlanItem, len(models.MealTypes))
	for _, t := range models.MealTypes {
		slots[t] = nil
	}
	for i := range items {
		it := &items[i]
		if !SameDay(it.Date, day) {
			continue
		}
		if cur, known := slots[it.MealType]; known && cur == nil {
			slots[it.MealType] = it
		}
	}
	return slots
}

// SortItems orders items by calendar day, then breakfast, lunch, dinner,
// snack. Ties keep their input order.
func SortItems(items []models.MealPlanItem) {
	sort.SliceStable(items, func(i, j int) bool {
		di, dj := CalendarDay(items[i].Date), CalendarDay(items[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return items[i].MealType.Rank() < items[j].MealType.Rank()
	})
}

// DayPlan is one calendar day of scheduled meals.
type DayPlan struct {
	Date  string                                   `json:"date"`
	Meals map[models.MealType]*models.MealPlanItem `json:"meals"`
}

// WeekView lays the items of the Sunday-start week containing day into seven
// four-slot days.
func WeekView(items []models.MealPlanItem, day time.Time) []DayPlan {
	start, end := WeekBounds(day)
	inWeek := ItemsBetween(items, start, end)
	days := make([]DayPlan, 0, 7)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, DayPlan{Date: d.Format(DateLayout), Meals: ItemsForDay(inWeek, d)})
	}
	return days
}
