package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/utils"
)

// Mailer sends a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type MealPlanService struct {
	plans   MealPlanStore
	recipes RecipeStore
	users   UserStore
	mailer  Mailer
	events  *EventBus
}

func NewMealPlanService(plans MealPlanStore, recipes RecipeStore, users UserStore, mailer Mailer, events *EventBus) *MealPlanService {
	return &MealPlanService{plans: plans, recipes: recipes, users: users, mailer: mailer, events: events}
}

// List returns the requester's plans, newest start first, with each plan's
// items in date and meal order. A non-nil range keeps only overlapping plans.
func (s *MealPlanService) List(ctx context.Context, userID string, rng *repository.DateRange) ([]models.MealPlan, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	plans, err := s.plans.ListMealPlans(ctx, userID, rng)
	if err != nil {
		return nil, err
	}
	if rng != nil {
		plans = utils.PlansInRange(plans, rng.Start, rng.End)
	}
	for i := range plans {
		utils.SortItems(plans[i].Items)
	}
	return plans, nil
}

// Items flattens every item of the plans overlapping [start, end].
func (s *MealPlanService) Items(ctx context.Context, userID string, start, end time.Time) ([]models.MealPlanItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	plans, err := s.plans.ListMealPlans(ctx, userID, &repository.DateRange{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	items := utils.ItemsInRange(plans, start, end)
	if items == nil {
		items = []models.MealPlanItem{}
	}
	return items, nil
}

// Day fills the four meal slots for one day.
func (s *MealPlanService) Day(ctx context.Context, userID string, day time.Time) (*utils.DayPlan, error) {
	items, err := s.Items(ctx, userID, day, day)
	if err != nil {
		return nil, err
	}
	return &utils.DayPlan{
		Date:  utils.CalendarDay(day).Format(utils.DateLayout),
		Meals: utils.ItemsForDay(items, day),
	}, nil
}

// Week lays out the Sunday-start week containing day.
func (s *MealPlanService) Week(ctx context.Context, userID string, day time.Time) ([]utils.DayPlan, error) {
	start, end := utils.WeekBounds(day)
	items, err := s.Items(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return utils.WeekView(items, day), nil
}

// Create validates the plan, checks every referenced recipe exists and is
// visible to the requester, and stores the plan with its items.
func (s *MealPlanService) Create(ctx context.Context, userID string, req models.MealPlanRequest) (*models.MealPlan, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	p, err := utils.MealPlanFromRequest(req)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, it := range p.Items {
		if it.RecipeID != nil {
			ids = append(ids, *it.RecipeID)
		}
	}
	if len(ids) > 0 {
		recipes, err := s.recipes.FindRecipesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		visible := make(map[string]bool, len(recipes))
		for _, r := range recipes {
			visible[r.ID] = r.VisibleTo(userID)
		}
		for _, id := range ids {
			if !visible[id] {
				return nil, utils.NotFound("recipe", id)
			}
		}
	}

	p.CreatedBy = userID
	if err := s.plans.CreateMealPlan(ctx, p); err != nil {
		return nil, err
	}
	utils.SortItems(p.Items)
	s.events.Emit(ctx, userID, "mealplan.created", fmt.Sprintf("Meal plan %q saved", p.Name), p,
		map[string]string{"mealPlanId": p.ID})
	return p, nil
}

// EmailDigest mails the plan's schedule and planned calories per day to the
// requester.
func (s *MealPlanService) EmailDigest(ctx context.Context, userID, planID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if s.mailer == nil {
		return fmt.Errorf("email is not configured")
	}
	p, err := s.plans.FindMealPlan(ctx, userID, planID)
	if err != nil {
		return err
	}
	u, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	body, err := PlanDigest(*p)
	if err != nil {
		return err
	}
	return s.mailer.Send(ctx, u.Email, "Your meal plan: "+p.Name, body)
}

// PlanDigest renders a plan as plain text, one block per scheduled day.
func PlanDigest(p models.MealPlan) (string, error) {
	items := append([]models.MealPlanItem(nil), p.Items...)
	utils.SortItems(items)

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s to %s)\n", p.Name,
		p.StartDate.Format(utils.DateLayout), p.EndDate.Format(utils.DateLayout))
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n", p.Description)
	}

	day := ""
	var kcal float64
	flush := func() {
		if day != "" {
			fmt.Fprintf(&b, "  planned: %.0f kcal\n", kcal)
		}
	}
	for _, it := range items {
		d := utils.CalendarDay(it.Date).Format(utils.DateLayout)
		if d != day {
			flush()
			day, kcal = d, 0
			fmt.Fprintf(&b, "\n%s\n", d)
		}
		n, err := utils.ItemNutrition(it)
		if err != nil {
			return "", err
		}
		kcal += n.Calories
		name := "(no recipe)"
		if it.Recipe != nil {
			name = it.Recipe.Name
		}
		fmt.Fprintf(&b, "  %-9s %s x%g (%.0f kcal)\n", it.MealType, name, it.Quantity, n.Calories)
	}
	flush()
	return b.String(), nil
}
