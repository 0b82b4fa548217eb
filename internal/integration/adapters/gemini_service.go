// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finsight/backend/config"
	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// GeminiService implements the SuggestionService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
	timeout   time.Duration
}

var _ adapter.SuggestionService = (*GeminiService)(nil)

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(cfg *config.AIConfig) *GeminiService {
	return &GeminiService{
		apiKey:    cfg.GeminiAPIKey,
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks Gemini for category suggestions for a single transaction.
func (s *GeminiService) Suggest(ctx context.Context, request adapter.SuggestionRequest) ([]*entity.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, domainerror.NewSuggestionError(
			domainerror.ErrCodeSuggestionInternalError,
			"gemini service is not configured",
			nil,
		)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Create client
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, domainerror.NewSuggestionError(
			domainerror.ErrCodeSuggestionInternalError,
			"failed to create gemini client",
			err,
		)
	}
	defer client.Close()

	// Get the model
	model := client.GenerativeModel(s.modelName)

	// Configure model for JSON output
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	// Generate response
	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(request)))
	if err != nil {
		return nil, domainerror.NewSuggestionError(
			domainerror.ErrCodeSuggestionInternalError,
			"failed to generate content",
			err,
		)
	}

	// Parse response
	suggestions, err := parseSuggestions(resp)
	if err != nil {
		return nil, domainerror.NewSuggestionError(
			domainerror.ErrCodeSuggestionInternalError,
			"failed to parse response",
			err,
		)
	}

	return suggestions, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(request adapter.SuggestionRequest) string {
	var sb strings.Builder

	sb.WriteString(`You are an expert at categorizing personal finance transactions. Suggest up to 3 spending categories for the transaction below.

RULES:
- Use short, conventional category names such as: Food & Dining, Groceries, Transportation, Shopping, Entertainment, Bills & Utilities, Healthcare, Salary, Rent, Education, Travel, Investment, Insurance, Personal Care, Transfers, Miscellaneous
- Order suggestions from most to least likely
- Confidence is a number between 0.0 and 1.0
- Reasoning is one short sentence

TRANSACTION:
`)
	sb.WriteString(fmt.Sprintf("- Description: %q\n", request.Description))
	if request.Vendor != "" {
		sb.WriteString(fmt.Sprintf("- Vendor: %q\n", request.Vendor))
	}
	if request.Amount != 0 {
		sb.WriteString(fmt.Sprintf("- Amount: %.2f\n", request.Amount))
	}
	if !request.Date.IsZero() {
		sb.WriteString(fmt.Sprintf("- Date: %s\n", request.Date.Format("2006-01-02")))
	}

	sb.WriteString(`
Respond with a JSON array of suggestions. Each suggestion must have:
{
  "category": "string",
  "confidence": 0.0-1.0,
  "reasoning": "string"
}

RESPONSE FORMAT: Return only the JSON array, no additional text.
`)

	return sb.String()
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// parseSuggestions parses the Gemini response into CategorySuggestions.
func parseSuggestions(resp *genai.GenerateContentResponse) ([]*entity.CategorySuggestion, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	// Get the text content from the response
	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Clean the response (remove markdown code blocks if present)
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	// Parse JSON
	var raw []geminiSuggestion
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	suggestions := make([]*entity.CategorySuggestion, 0, len(raw))
	for _, s := range raw {
		if s.Category == "" {
			continue
		}
		// Clamp out-of-range confidences instead of rejecting the suggestion
		if s.Confidence < 0 {
			s.Confidence = 0
		}
		if s.Confidence > 1 {
			s.Confidence = 1
		}
		suggestions = append(suggestions, &entity.CategorySuggestion{
			Category:   s.Category,
			Confidence: s.Confidence,
			Reasoning:  s.Reasoning,
		})
	}

	if len(suggestions) == 0 {
		return nil, fmt.Errorf("no usable suggestions in response")
	}
	return suggestions, nil
}
