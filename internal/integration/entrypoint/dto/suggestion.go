package dto

import "github.com/finsight/backend/internal/domain/entity"

// SuggestCategoryRequest is the payload for the category suggestion
// endpoint. Every field is optional; input without a usable signal yields
// the fallback suggestion. UserID scopes custom rules.
type SuggestCategoryRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Vendor      string  `json:"vendor"`
	Date        string  `json:"date"`
	UserID      string  `json:"user_id"`
}

// CategorySuggestionResponse is the wire form of one suggestion.
type CategorySuggestionResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// SuggestCategoryResponse wraps the ranked suggestions.
type SuggestCategoryResponse struct {
	Suggestions []CategorySuggestionResponse `json:"suggestions"`
}

// SuggestCategoryResponseFromEntities converts suggestions to wire form.
func SuggestCategoryResponseFromEntities(suggestions []*entity.CategorySuggestion) SuggestCategoryResponse {
	out := make([]CategorySuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		out[i] = CategorySuggestionResponse{
			Category:   s.Category,
			Confidence: s.Confidence,
			Reasoning:  s.Reasoning,
		}
	}
	return SuggestCategoryResponse{Suggestions: out}
}
