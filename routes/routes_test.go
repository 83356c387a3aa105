package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nutriplan/config"
	"nutriplan/repository"
	"nutriplan/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var secret = []byte("routes-test-secret")

type api struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	store := repository.New(db)
	require.NoError(t, config.Seed(context.Background(), store))

	hub := services.NewRealtimeHub()
	events := services.NewEventBus(hub, nil)
	r := SetupRouter(Deps{
		JWTSecret: secret,
		Auth:      services.NewAuthService(store, secret, time.Hour),
		Users:     services.NewUserService(store),
		Goals:     services.NewGoalService(store),
		Foods:     services.NewFoodService(store, nil, nil),
		Recipes:   services.NewRecipeService(store, store, store, store, nil, events),
		MealPlans: services.NewMealPlanService(store, store, store, nil, events),
		Analytics: services.NewAnalyticsService(store, store),
		Realtime:  hub,
	})
	return &api{t: t, router: r}
}

func (a *api) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var obj map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &obj)
	return w, obj
}

func (a *api) list(path string) []map[string]any {
	a.t.Helper()
	w, _ := a.do(http.MethodGet, path, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var out []map[string]any
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (a *api) login(email, password string) {
	a.t.Helper()
	w, body := a.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	a.token = body["token"].(string)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	a := newAPI(t)
	w, _ := a.do(http.MethodGet, "/foods", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	a.token = "garbage"
	w, _ = a.do(http.MethodGet, "/foods", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFailure(t *testing.T) {
	a := newAPI(t)
	w, _ := a.do(http.MethodPost, "/auth/login", map[string]string{"email": "sample@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFoodSearchOverHTTP(t *testing.T) {
	a := newAPI(t)
	a.login("sample@example.com", "sample-password")

	foods := a.list("/foods?q=chic")
	require.Len(t, foods, 1)
	assert.Equal(t, "Chicken Breast", foods[0]["name"])

	assert.Len(t, a.list("/foods"), 8)
	assert.Len(t, a.list("/foods?limit=3"), 3)

	w, body := a.do(http.MethodGet, "/foods?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := body["fields"].([]any)
	assert.Equal(t, "limit", fields[0].(map[string]any)["field"])
}

func TestRecipeNutritionOverHTTP(t *testing.T) {
	a := newAPI(t)
	a.login("sample@example.com", "sample-password")

	recipes := a.list("/recipes?category=Dinner")
	require.Len(t, recipes, 1)
	id := recipes[0]["id"].(string)

	w, body := a.do(http.MethodGet, "/recipes/"+id+"/nutrition", nil)
	require.Equal(t, http.StatusOK, w.Code)
	total := body["total"].(map[string]any)
	assert.InDelta(t, 564.5, total["calories"].(float64), 1e-9)

	w, _ = a.do(http.MethodGet, "/recipes/ghost/nutrition", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = a.do(http.MethodGet, "/recipes?category=brunch", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrivateRecipesStayPrivate(t *testing.T) {
	a := newAPI(t)
	w, body := a.do(http.MethodPost, "/auth/register", map[string]string{"email": "alex@example.com", "password": "password-1", "name": "Alex"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a.token = body["token"].(string)

	foods := a.list("/foods?q=banana")
	require.Len(t, foods, 1)
	w, _ = a.do(http.MethodPost, "/recipes", map[string]any{
		"name": "Banana Snack", "instructions": "Peel.", "servings": 1, "isPublic": false,
		"ingredients": []map[string]any{{"foodId": foods[0]["id"], "quantity": 120, "unit": "grams"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, a.list("/recipes"), 2)

	a.login("sample@example.com", "sample-password")
	recipes := a.list("/recipes")
	require.Len(t, recipes, 1)
	assert.Equal(t, "Grilled Chicken with Brown Rice and Broccoli", recipes[0]["name"])
}

func TestMealPlansOverHTTP(t *testing.T) {
	a := newAPI(t)
	a.login("sample@example.com", "sample-password")
	recipeID := a.list("/recipes")[0]["id"].(string)

	w, _ := a.do(http.MethodPost, "/meal-plans", map[string]any{
		"name": "Week 1", "startDate": "2024-01-01", "endDate": "2024-01-07",
		"items": []map[string]any{
			{"date": "2024-01-05", "mealType": "dinner", "recipeId": recipeID},
			{"date": "2024-01-05", "mealType": "breakfast"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Len(t, a.list("/meal-plans?startDate=2024-01-05&endDate=2024-01-10"), 1)
	assert.Empty(t, a.list("/meal-plans?startDate=2024-01-08&endDate=2024-01-10"))

	w, _ = a.do(http.MethodGet, "/meal-plans?endDate=2024-01-10", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body := a.do(http.MethodGet, "/meal-plans/day?date=2024-01-05", nil)
	require.Equal(t, http.StatusOK, w.Code)
	meals := body["meals"].(map[string]any)
	assert.NotNil(t, meals["dinner"])
	assert.Nil(t, meals["lunch"])

	w, body = a.do(http.MethodGet, "/analytics/daily?from=2024-01-05&to=2024-01-05", nil)
	require.Equal(t, http.StatusOK, w.Code)
	days := body["days"].([]any)
	cal := days[0].(map[string]any)["metrics"].(map[string]any)["calories"].(map[string]any)
	assert.Equal(t, 282.25, cal["actual"])

	w, _ = a.do(http.MethodPost, "/meal-plans", map[string]any{"name": "Bad", "startDate": "2024-01-07", "endDate": "2024-01-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
