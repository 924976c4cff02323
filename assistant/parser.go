// Package assistant turns free-text merchandiser requests into structured
// bundle requests using Gemini.
package assistant

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

// ParsedRequest is the structured form of a chat message like
// "create 3 thematic bundles with SKU priority".
type ParsedRequest struct {
	Priority   bool   `json:"priority"`
	BundleType string `json:"bundle_type"`
	Depth      int    `json:"depth"`
}

// Parser extracts a ParsedRequest from free text. Implementations return an
// error when the text cannot be understood; callers surface that to the
// user instead of guessing.
type Parser interface {
	Parse(ctx context.Context, text string) (ParsedRequest, error)
}

var knownBundleTypes = []string{
	models.BundleComplementary,
	models.BundleThematic,
	models.BundleSeasonal,
	models.BundleCrossMargin,
	models.BundlePersonalFrequent,
	models.BundlePersonalSeasonal,
	models.BundlePersonalizedDiscount,
}

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// GeminiParser parses chat requests with Gemini.
type GeminiParser struct {
	apiKey string
	model  string
}

// NewGeminiParser creates a Gemini-backed request parser.
func NewGeminiParser(apiKey, model string) *GeminiParser {
	return &GeminiParser{apiKey: apiKey, model: model}
}

// Parse asks Gemini to map the request text onto a known bundle type, a
// depth and the SKU priority flag.
func (g *GeminiParser) Parse(ctx context.Context, text string) (ParsedRequest, error) {
	if g.apiKey == "" {
		return ParsedRequest{}, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return ParsedRequest{}, fmt.Errorf("failed to create Gemini client: %v", err)
	}
	defer client.Close()

	prompt := "You translate merchandiser requests about product bundles into JSON.\n" +
		"Allowed bundle types: " + strings.Join(knownBundleTypes, ", ") + ".\n" +
		"Respond with only this JSON shape:\n" +
		"{\"priority\": true|false, \"bundle_type\": \"...\", \"depth\": <integer>}\n" +
		"priority is true when the request mentions SKU priority or stock priority.\n" +
		"depth is how many bundles were asked for (default 5).\n\n" +
		"Request: " + text

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ParsedRequest{}, fmt.Errorf("failed to generate content: %v", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ParsedRequest{}, fmt.Errorf("no content generated")
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			raw = string(t)
			break
		}
	}
	return parseResponse(raw)
}

func parseResponse(raw string) (ParsedRequest, error) {
	block := jsonBlockRe.FindString(raw)
	if block == "" {
		return ParsedRequest{}, fmt.Errorf("no JSON found in Gemini response")
	}

	var parsed ParsedRequest
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return ParsedRequest{}, fmt.Errorf("failed to parse Gemini response: %v", err)
	}
	if !validBundleType(parsed.BundleType) {
		return ParsedRequest{}, fmt.Errorf("unknown bundle type %q in parsed request", parsed.BundleType)
	}
	if parsed.Depth <= 0 {
		parsed.Depth = 5
	}
	return parsed, nil
}

func validBundleType(t string) bool {
	for _, known := range knownBundleTypes {
		if t == known {
			return true
		}
	}
	return false
}
