package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/raushankrgupta/bundle-strategist/models"
)

// Category segments the profiling AI may pick from.
var categorySegments = []string{
	"Beauty Products", "Men's Clothing", "Women's Clothing", "Makeup",
	"Perfumes & Fragrances", "Sports & Outdoors", "Home & Kitchen",
	"Electronics", "Bags & Accessories", "Shoes", "Kids & Baby", "Jewelry",
	"Underwear & Lingerie", "Swimwear", "Home Decor", "Bath & Body",
	"Skin Care", "Hair Care", "Bedding", "Towels", "Christmas Decor",
	"Office Supplies", "Kitchenware", "Dining", "Athletic Clothing",
	"Outerwear", "Jeans", "Pajamas", "Socks & Hosiery", "Travel Accessories",
}

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// GeminiClassifier classifies shopping history using Gemini.
type GeminiClassifier struct {
	apiKey string
	model  string
}

// NewGeminiClassifier creates a Gemini-backed classifier.
func NewGeminiClassifier(apiKey, model string) *GeminiClassifier {
	return &GeminiClassifier{apiKey: apiKey, model: model}
}

// Classify asks Gemini for gender, price segment and category segment based
// on the shopping history. Callers handle errors by falling back; nothing
// here retries.
func (g *GeminiClassifier) Classify(ctx context.Context, shoppingLines []string) (models.UserAttributes, error) {
	if g.apiKey == "" {
		return models.UserAttributes{}, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return models.UserAttributes{}, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	prompt := "You're a customer profiling AI. Based on the shopping data below, determine:\n" +
		"- Gender (male, female, or undetermined) (not all items need to be male or female - just consider the majority of them)\n" +
		"- Price segment (cheap, average, luxury, or undetermined)\n" +
		"- Category segment (only choose one from: " + strings.Join(categorySegments, ", ") + ")\n\n" +
		"Shopping history:\n" + strings.Join(shoppingLines, "\n") +
		"\n\nRespond in JSON format like this:\n" +
		"{\n  \"gender\": \"...\",\n  \"price_segment\": \"...\",\n  \"category_segment\": \"...\"\n}"

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.UserAttributes{}, fmt.Errorf("failed to generate content: %v", err)
	}

	raw, err := firstTextPart(resp)
	if err != nil {
		return models.UserAttributes{}, err
	}
	return parseAttributes(raw)
}

func firstTextPart(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("unexpected response format (no text part)")
}

// parseAttributes extracts the JSON block from the model response. The
// category segment sometimes comes back as a bare string and sometimes as a
// list, so both shapes are accepted.
func parseAttributes(raw string) (models.UserAttributes, error) {
	block := jsonBlockRe.FindString(raw)
	if block == "" {
		return models.UserAttributes{}, fmt.Errorf("no JSON found in Gemini response")
	}

	var parsed struct {
		Gender          string          `json:"gender"`
		PriceSegment    string          `json:"price_segment"`
		CategorySegment json.RawMessage `json:"category_segment"`
	}
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return models.UserAttributes{}, fmt.Errorf("failed to parse Gemini response: %v", err)
	}

	attrs := models.UserAttributes{
		Gender:       parsed.Gender,
		PriceSegment: parsed.PriceSegment,
	}
	if attrs.Gender == "" {
		attrs.Gender = "undetermined"
	}
	if attrs.PriceSegment == "" {
		attrs.PriceSegment = "average"
	}

	var single string
	if err := json.Unmarshal(parsed.CategorySegment, &single); err == nil && single != "" {
		attrs.CategorySegment = []string{single}
	} else if err := json.Unmarshal(parsed.CategorySegment, &attrs.CategorySegment); err != nil || len(attrs.CategorySegment) == 0 {
		attrs.CategorySegment = []string{"other"}
	}
	return attrs, nil
}
