package repository

import (
	"context"
	"testing"
	"time"

	"nutriplan/models"
	"nutriplan/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.DailyGoal{}, &models.UserDevice{},
		&models.FoodItem{}, &models.Recipe{}, &models.Ingredient{},
		&models.MealPlan{}, &models.MealPlanItem{},
	))
	return New(db)
}

func day(s string) time.Time {
	t, err := time.Parse(utils.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedFoods(t *testing.T, s *Store) map[string]models.FoodItem {
	t.Helper()
	foods := []models.FoodItem{
		{Name: "Chicken Breast", Brand: "Organic Valley", Calories: 165, Protein: 31, Fat: 3.6, Sodium: 74, ServingSize: 100, ServingUnit: "grams"},
		{Name: "Brown Rice", Brand: "Uncle Ben's", Calories: 111, Protein: 2.6, Carbs: 23, Fat: 0.9, Fiber: 1.8, Sugar: 0.4, Sodium: 5, ServingSize: 100, ServingUnit: "grams"},
		{Name: "Broccoli", Brand: "Fresh Market", Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4, Fiber: 2.6, Sugar: 1.5, Sodium: 33, ServingSize: 100, ServingUnit: "grams"},
		{Name: "MyShake", Calories: 200, ServingSize: 1, ServingUnit: "bottle", IsCustom: true, CreatedBy: "u1"},
	}
	require.NoError(t, s.CreateFoodItems(context.Background(), foods))
	out := map[string]models.FoodItem{}
	for _, f := range foods {
		out[f.Name] = f
	}
	return out
}

func sampleRecipe(foods map[string]models.FoodItem, owner string, public bool) *models.Recipe {
	return &models.Recipe{
		Name:         "Grilled Chicken with Brown Rice and Broccoli",
		Instructions: "Grill, boil, steam.",
		Servings:     2,
		Category:     models.Dinner,
		IsPublic:     public,
		CreatedBy:    owner,
		Ingredients: []models.Ingredient{
			{FoodID: foods["Chicken Breast"].ID, Quantity: 200, Unit: "grams"},
			{FoodID: foods["Brown Rice"].ID, Quantity: 150, Unit: "grams"},
			{FoodID: foods["Broccoli"].ID, Quantity: 200, Unit: "grams"},
		},
	}
}

func TestListFoodsVisibility(t *testing.T) {
	s := newTestStore(t)
	seedFoods(t, s)
	ctx := context.Background()

	got, err := s.ListFoods(ctx, FoodFilter{RequesterID: "u2"})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = s.ListFoods(ctx, FoodFilter{RequesterID: "u1"})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "MyShake", got[3].Name)

	got, err = s.ListFoods(ctx, FoodFilter{RequesterID: "u2", Text: "CHIC"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Chicken Breast", got[0].Name)

	got, err = s.ListFoods(ctx, FoodFilter{RequesterID: "u2", Text: "fresh"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Broccoli", got[0].Name)
}

func TestListFoodsEscapesWildcards(t *testing.T) {
	s := newTestStore(t)
	seedFoods(t, s)
	got, err := s.ListFoods(context.Background(), FoodFilter{Text: "%"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateRecipeHydratesIngredientsInOrder(t *testing.T) {
	s := newTestStore(t)
	foods := seedFoods(t, s)
	ctx := context.Background()

	r := sampleRecipe(foods, "u1", true)
	require.NoError(t, s.CreateRecipe(ctx, r))
	require.NotEmpty(t, r.ID)

	got, err := s.FindRecipe(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 3)
	assert.Equal(t, "Chicken Breast", got.Ingredients[0].Food.Name)
	assert.Equal(t, "Broccoli", got.Ingredients[2].Food.Name)

	total, err := utils.Aggregate(got.Ingredients)
	require.NoError(t, err)
	assert.InDelta(t, 564.5, total.Calories, 1e-9)
}

func TestCreateRecipeRollsBackOnFailure(t *testing.T) {
	s := newTestStore(t)
	foods := seedFoods(t, s)
	ctx := context.Background()

	r := sampleRecipe(foods, "u1", true)
	r.Ingredients[1].ID = "dup"
	r.Ingredients[2].ID = "dup"
	require.Error(t, s.CreateRecipe(ctx, r))

	var recipes, lines int64
	s.DB().Model(&models.Recipe{}).Count(&recipes)
	s.DB().Model(&models.Ingredient{}).Count(&lines)
	assert.Zero(t, recipes)
	assert.Zero(t, lines)
}

func TestFindRecipeMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.FindRecipe(context.Background(), "nope")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestListRecipesVisibilityAndCategory(t *testing.T) {
	s := newTestStore(t)
	foods := seedFoods(t, s)
	ctx := context.Background()

	private := sampleRecipe(foods, "u1", false)
	private.Name = "Private Bowl"
	require.NoError(t, s.CreateRecipe(ctx, private))
	public := sampleRecipe(foods, "u2", true)
	require.NoError(t, s.CreateRecipe(ctx, public))

	got, err := s.ListRecipes(ctx, RecipeFilter{RequesterID: "u2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, public.ID, got[0].ID)

	got, err = s.ListRecipes(ctx, RecipeFilter{RequesterID: "u1", Category: "dinner"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Private Bowl", got[0].Name)

	got, err = s.ListRecipes(ctx, RecipeFilter{RequesterID: "u1", Text: "bowl", Category: "breakfast"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMealPlansRangeAndHydration(t *testing.T) {
	s := newTestStore(t)
	foods := seedFoods(t, s)
	ctx := context.Background()

	r := sampleRecipe(foods, "u1", true)
	require.NoError(t, s.CreateRecipe(ctx, r))

	early := &models.MealPlan{
		Name: "Week 1", StartDate: day("2024-01-01"), EndDate: day("2024-01-07"), CreatedBy: "u1",
		Items: []models.MealPlanItem{
			{Date: day("2024-01-02"), MealType: models.Dinner, RecipeID: &r.ID, Quantity: 1},
			{Date: day("2024-01-02"), MealType: models.Breakfast, Quantity: 1},
		},
	}
	late := &models.MealPlan{Name: "Week 3", StartDate: day("2024-01-15"), EndDate: day("2024-01-21"), CreatedBy: "u1"}
	other := &models.MealPlan{Name: "Theirs", StartDate: day("2024-01-01"), EndDate: day("2024-01-31"), CreatedBy: "u2"}
	for _, p := range []*models.MealPlan{early, late, other} {
		require.NoError(t, s.CreateMealPlan(ctx, p))
	}

	all, err := s.ListMealPlans(ctx, "u1", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Week 3", all[0].Name)

	inRange, err := s.ListMealPlans(ctx, "u1", &DateRange{Start: day("2024-01-05"), End: day("2024-01-10")})
	require.NoError(t, err)
	plans := utils.PlansInRange(inRange, day("2024-01-05"), day("2024-01-10"))
	require.Len(t, plans, 1)
	require.Len(t, plans[0].Items, 2)

	items := utils.ItemsInRange(plans, day("2024-01-05"), day("2024-01-10"))
	assert.Equal(t, models.Breakfast, items[0].MealType)
	require.NotNil(t, items[1].Recipe)
	n, err := utils.ItemNutrition(items[1])
	require.NoError(t, err)
	assert.InDelta(t, 282.25, n.Calories, 1e-9)

	_, err = s.FindMealPlan(ctx, "u2", early.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestGoalUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.FindGoal(ctx, "u1")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, s.SaveGoal(ctx, &models.DailyGoal{UserID: "u1", Calories: 2000}))
	require.NoError(t, s.SaveGoal(ctx, &models.DailyGoal{UserID: "u1", Calories: 1800}))

	g, err := s.FindGoal(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1800.0, g.Calories)

	var n int64
	s.DB().Model(&models.DailyGoal{}).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestUsersAndDevices(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &models.User{Email: "sam@example.com", Password: "x", Name: "Sam"}
	require.NoError(t, s.CreateUser(ctx, u))
	got, err := s.FindUserByEmail(ctx, "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	_, err = s.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	err = s.CreateUser(ctx, &models.User{Email: "sam@example.com", Password: "y", Name: "Other Sam"})
	assert.ErrorIs(t, err, utils.ErrDuplicate)
	var serr *utils.StorageError
	assert.ErrorAs(t, err, &serr)

	require.NoError(t, s.SaveDevice(ctx, &models.UserDevice{UserID: u.ID, TokenHash: "h", EndpointARN: "arn", Enabled: true}))
	devices, err := s.ListEnabledDevices(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, devices, 1)

	require.NoError(t, s.SetDevicesEnabled(ctx, u.ID, false))
	devices, err = s.ListEnabledDevices(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, devices)
}
