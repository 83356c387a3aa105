package services

import (
	"context"
	"fmt"
	"sync"

	"nutriplan/models"
	"nutriplan/repository"
	"nutriplan/utils"
)

// memStore returns every row it holds from list calls so the tests exercise
// the service-side filtering.
type memStore struct {
	seq     int
	foods   []models.FoodItem
	recipes []models.Recipe
	plans   []models.MealPlan
	users   []models.User
	goals   map[string]models.DailyGoal
	devices []models.UserDevice
}

func newMemStore() *memStore { return &memStore{goals: map[string]models.DailyGoal{}} }

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) ListFoods(_ context.Context, _ repository.FoodFilter) ([]models.FoodItem, error) {
	return append([]models.FoodItem(nil), m.foods...), nil
}

func (m *memStore) FindFoodsByIDs(_ context.Context, ids []string) ([]models.FoodItem, error) {
	var out []models.FoodItem
	for _, f := range m.foods {
		for _, id := range ids {
			if f.ID == id {
				out = append(out, f)
				break
			}
		}
	}
	return out, nil
}

func (m *memStore) CreateFoodItem(_ context.Context, f *models.FoodItem) error {
	if f.ID == "" {
		f.ID = m.nextID("food")
	}
	m.foods = append(m.foods, *f)
	return nil
}

func (m *memStore) CreateFoodItems(ctx context.Context, foods []models.FoodItem) error {
	for i := range foods {
		if err := m.CreateFoodItem(ctx, &foods[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memStore) food(id string) models.FoodItem {
	for _, f := range m.foods {
		if f.ID == id {
			return f
		}
	}
	return models.FoodItem{}
}

func (m *memStore) ListRecipes(_ context.Context, _ repository.RecipeFilter) ([]models.Recipe, error) {
	return append([]models.Recipe(nil), m.recipes...), nil
}

func (m *memStore) FindRecipe(_ context.Context, id string) (*models.Recipe, error) {
	for _, r := range m.recipes {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, utils.NotFound("recipe", id)
}

func (m *memStore) FindRecipesByIDs(_ context.Context, ids []string) ([]models.Recipe, error) {
	var out []models.Recipe
	for _, id := range ids {
		if r, err := m.FindRecipe(context.Background(), id); err == nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) CreateRecipe(_ context.Context, r *models.Recipe) error {
	if r.ID == "" {
		r.ID = m.nextID("recipe")
	}
	for i := range r.Ingredients {
		r.Ingredients[i].RecipeID = r.ID
		r.Ingredients[i].Food = m.food(r.Ingredients[i].FoodID)
	}
	m.recipes = append(m.recipes, *r)
	return nil
}

func (m *memStore) ListMealPlans(_ context.Context, ownerID string, _ *repository.DateRange) ([]models.MealPlan, error) {
	var out []models.MealPlan
	for _, p := range m.plans {
		if p.CreatedBy == ownerID {
			p.Items = append([]models.MealPlanItem(nil), p.Items...)
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) FindMealPlan(_ context.Context, ownerID, id string) (*models.MealPlan, error) {
	for _, p := range m.plans {
		if p.ID == id && p.CreatedBy == ownerID {
			return &p, nil
		}
	}
	return nil, utils.NotFound("meal plan", id)
}

func (m *memStore) CreateMealPlan(ctx context.Context, p *models.MealPlan) error {
	if p.ID == "" {
		p.ID = m.nextID("plan")
	}
	for i := range p.Items {
		p.Items[i].MealPlanID = p.ID
		if p.Items[i].RecipeID != nil {
			r, err := m.FindRecipe(ctx, *p.Items[i].RecipeID)
			if err != nil {
				return err
			}
			p.Items[i].Recipe = r
		}
	}
	m.plans = append(m.plans, *p)
	return nil
}

func (m *memStore) CreateUser(_ context.Context, u *models.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return &utils.StorageError{Op: "create user", Err: utils.ErrDuplicate}
		}
	}
	if u.ID == "" {
		u.ID = m.nextID("user")
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, utils.NotFound("user", email)
}

func (m *memStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, utils.NotFound("user", id)
}

func (m *memStore) SaveUser(_ context.Context, u *models.User) error {
	for i := range m.users {
		if m.users[i].ID == u.ID {
			m.users[i] = *u
			return nil
		}
	}
	return utils.NotFound("user", u.ID)
}

func (m *memStore) FindGoal(_ context.Context, userID string) (*models.DailyGoal, error) {
	g, ok := m.goals[userID]
	if !ok {
		return nil, utils.NotFound("daily goal", userID)
	}
	return &g, nil
}

func (m *memStore) SaveGoal(_ context.Context, g *models.DailyGoal) error {
	m.goals[g.UserID] = *g
	return nil
}

func (m *memStore) FindDevice(_ context.Context, userID, tokenHash string) (*models.UserDevice, error) {
	for _, d := range m.devices {
		if d.UserID == userID && d.TokenHash == tokenHash {
			return &d, nil
		}
	}
	return nil, utils.NotFound("device", "")
}

func (m *memStore) SaveDevice(_ context.Context, d *models.UserDevice) error {
	m.devices = append(m.devices, *d)
	return nil
}

func (m *memStore) ListEnabledDevices(_ context.Context, userID string) ([]models.UserDevice, error) {
	var out []models.UserDevice
	for _, d := range m.devices {
		if d.UserID == userID && d.Enabled {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memStore) SetDevicesEnabled(_ context.Context, userID string, enabled bool) error {
	for i := range m.devices {
		if m.devices[i].UserID == userID {
			m.devices[i].Enabled = enabled
		}
	}
	return nil
}

type pushed struct {
	userID, title, body string
	data                map[string]string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []pushed
}

func (n *fakeNotifier) PushToUser(_ context.Context, userID, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, pushed{userID, title, body, data})
	return nil
}

type fakeUploader struct{ keys []string }

func (u *fakeUploader) UploadBase64Image(_ context.Context, _, keyPrefix string) (string, error) {
	u.keys = append(u.keys, keyPrefix)
	return "https://cdn.example.com/" + keyPrefix + ".png", nil
}

type sentMail struct{ to, subject, body string }

type fakeMailer struct{ sent []sentMail }

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

type fakeLabels []string

func (l fakeLabels) DetectLabels(context.Context, string) ([]string, error) { return l, nil }

type fakeCatalog []models.FoodItem

func (c fakeCatalog) SearchFoods(context.Context, string) ([]models.FoodItem, error) { return c, nil }

func f64(v float64) *float64 { return &v }

// seedCatalog stores the sample foods plus a custom food owned by u1.
func seedCatalog(m *memStore) {
	for _, f := range []models.FoodItem{
		{ID: "chicken", Name: "Chicken Breast", Brand: "Organic Valley", Calories: 165, Protein: 31, Fat: 3.6, Sodium: 74, ServingSize: 100, ServingUnit: "grams"},
		{ID: "rice", Name: "Brown Rice", Brand: "Uncle Ben's", Calories: 111, Protein: 2.6, Carbs: 23, Fat: 0.9, Fiber: 1.8, Sugar: 0.4, Sodium: 5, ServingSize: 100, ServingUnit: "grams"},
		{ID: "broccoli", Name: "Broccoli", Brand: "Fresh Market", Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4, Fiber: 2.6, Sugar: 1.5, Sodium: 33, ServingSize: 100, ServingUnit: "grams"},
		{ID: "apple", Name: "Apple", Calories: 52, Carbs: 14, Fiber: 2.4, Sugar: 10, Sodium: 1, ServingSize: 100, ServingUnit: "grams"},
		{ID: "shake", Name: "MyShake", Calories: 200, ServingSize: 1, ServingUnit: "bottle", IsCustom: true, CreatedBy: "u1"},
	} {
		m.foods = append(m.foods, f)
	}
}

func sampleRecipeRequest(public bool) models.RecipeRequest {
	return models.RecipeRequest{
		Name:         "Grilled Chicken with Brown Rice and Broccoli",
		Instructions: "Grill the chicken, cook the rice, steam the broccoli.",
		Servings:     2,
		Difficulty:   "easy",
		Category:     "dinner",
		IsPublic:     public,
		Ingredients: []models.IngredientRequest{
			{FoodID: "chicken", Quantity: 200, Unit: "grams"},
			{FoodID: "rice", Quantity: 150, Unit: "grams"},
			{FoodID: "broccoli", Quantity: 200, Unit: "grams"},
		},
	}
}
