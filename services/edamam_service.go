package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nutriplan/models"
)

const edamamParserURL = "https://api.edamam.com/api/food-database/v2/parser"

// EdamamService reads the Edamam food database. Parser hints carry nutrients
// per 100 g, so imported foods use a 100 g serving.
type EdamamService struct {
	appID, appKey string
	baseURL       string
	client        *http.Client
}

func NewEdamamService(appID, appKey string) *EdamamService {
	return &EdamamService{
		appID:   appID,
		appKey:  appKey,
		baseURL: edamamParserURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type foodParserResponse struct {
	Hints []struct {
		Food struct {
			FoodID    string             `json:"foodId"`
			Label     string             `json:"label"`
			Brand     string             `json:"brand"`
			Nutrients map[string]float64 `json:"nutrients"`
		} `json:"food"`
	} `json:"hints"`
}

func (s *EdamamService) SearchFoods(ctx context.Context, query string) ([]models.FoodItem, error) {
	u := fmt.Sprintf("%s?ingr=%s&app_id=%s&app_key=%s",
		s.baseURL, url.QueryEscape(query), url.QueryEscape(s.appID), url.QueryEscape(s.appKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Edamam request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Edamam parser: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Edamam parser response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edamam parser API error %d: %s", resp.StatusCode, string(body))
	}

	var pr foodParserResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse Edamam parser JSON: %w", err)
	}

	seen := map[string]bool{}
	results := make([]models.FoodItem, 0, len(pr.Hints))
	for _, h := range pr.Hints {
		label := strings.TrimSpace(h.Food.Label)
		if label == "" || seen[h.Food.FoodID] {
			continue
		}
		seen[h.Food.FoodID] = true
		n := h.Food.Nutrients
		results = append(results, models.FoodItem{
			Name:        label,
			Brand:       strings.TrimSpace(h.Food.Brand),
			Calories:    n["ENERC_KCAL"],
			Protein:     n["PROCNT"],
			Carbs:       n["CHOCDF"],
			Fat:         n["FAT"],
			Fiber:       n["FIBTG"],
			Sugar:       n["SUGAR"],
			Sodium:      n["NA"],
			ServingSize: 100,
			ServingUnit: "grams",
		})
	}
	return results, nil
}
