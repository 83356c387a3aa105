package utils

import (
	"sort"
	"strconv"
	"strings"

	"nutriplan/models"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// SearchCriteria is one of EmptyQuery, TextQuery, CategoryQuery or
// TextAndCategory.
type SearchCriteria interface {
	isSearchCriteria()
}

type EmptyQuery struct{}

type TextQuery struct{ Text string }

type CategoryQuery struct{ Category string }

type TextAndCategory struct {
	Text     string
	Category string
}

func (EmptyQuery) isSearchCriteria()      {}
func (TextQuery) isSearchCriteria()       {}
func (CategoryQuery) isSearchCriteria()   {}
func (TextAndCategory) isSearchCriteria() {}

// NewSearchCriteria builds the criteria for a raw query and category. Both are
// trimmed; blank values count as absent.
func NewSearchCriteria(query, category string) SearchCriteria {
	q, c := strings.TrimSpace(query), strings.TrimSpace(category)
	switch {
	case q == "" && c == "":
		return EmptyQuery{}
	case c == "":
		return TextQuery{Text: q}
	case q == "":
		return CategoryQuery{Category: c}
	default:
		return TextAndCategory{Text: q, Category: c}
	}
}

// Text returns the free-text part of c, or "".
func Text(c SearchCriteria) string {
	switch v := c.(type) {
	case TextQuery:
		return v.Text
	case TextAndCategory:
		return v.Text
	default:
		return ""
	}
}

// Category returns the category part of c, or "".
func Category(c SearchCriteria) string {
	switch v := c.(type) {
	case CategoryQuery:
		return v.Category
	case TextAndCategory:
		return v.Category
	default:
		return ""
	}
}

// ParseLimit reads the limit query parameter. Blank means the default; values
// outside [1, MaxSearchLimit] are rejected.
func ParseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSearchLimit, nil
	}
	n, err := strconv.Atoi(raw)
	verr := &ValidationError{}
	switch {
	case err != nil:
		verr.Add("limit", "must be an integer")
	case n < 1 || n > MaxSearchLimit:
		verr.Add("limit", "must be between 1 and %d", MaxSearchLimit)
	}
	if err := verr.Err(); err != nil {
		return 0, err
	}
	return n, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// FilterFoods applies the food visibility and text rules, then orders public
// foods before custom ones and by name, and caps the result at limit (the
// default when limit <= 0, at most MaxSearchLimit).
//
// With no text, only public foods and the requester's own custom foods are
// returned. With text, name or brand must contain it and visibility is not
// checked, so other users' custom foods can match.
func FilterFoods(candidates []models.FoodItem, criteria SearchCriteria, requesterID string, limit int) []models.FoodItem {
	text := Text(criteria)
	out := make([]models.FoodItem, 0, len(candidates))
	for _, f := range candidates {
		if text == "" {
			if f.IsCustom && !f.OwnedBy(requesterID) {
				continue
			}
		} else if !containsFold(f.Name, text) && !containsFold(f.Brand, text) {
			continue
		}
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsCustom != out[j].IsCustom {
			return !out[i].IsCustom
		}
		return nameLess(out[i].Name, out[j].Name)
	})

	switch {
	case limit <= 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FilterRecipes keeps public recipes and the requester's own, narrowed by
// text (name or description) and exact category. Private recipes sort before
// public ones, then by name.
func FilterRecipes(candidates []models.Recipe, criteria SearchCriteria, requesterID string) []models.Recipe {
	text, category := Text(criteria), Category(criteria)
	out := make([]models.Recipe, 0, len(candidates))
	for _, r := range candidates {
		if !r.VisibleTo(requesterID) {
			continue
		}
		if text != "" && !containsFold(r.Name, text) && !containsFold(r.Description, text) {
			continue
		}
		if category != "" && string(r.Category) != category {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPublic != out[j].IsPublic {
			return !out[i].IsPublic
		}
		return nameLess(out[i].Name, out[j].Name)
	})
	return out
}

// nameLess compares case-insensitively, falling back to byte order.
func nameLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
