package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/utils"
)

// ChatRequest is a free-text bundle request from the assistant UI.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
	Season  string `json:"season,omitempty"`
}

// ChatHandler parses a free-text request like "create 3 thematic bundles
// with SKU priority" and runs the matching strategy.
func (s *Server) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Chat API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		utils.RespondError(w, &logMessageBuilder, "Please provide a 'message' in the JSON body", http.StatusBadRequest)
		return
	}

	if s.Parser == nil {
		utils.RespondError(w, &logMessageBuilder, "Assistant is not configured", http.StatusServiceUnavailable)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Parsing request: %s", req.Message))

	parsed, err := s.Parser.Parse(r.Context(), req.Message)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Parse failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Sorry, I could not understand that request", http.StatusBadRequest)
		return
	}

	bundleReq := base.Request{
		Type:   parsed.BundleType,
		Depth:  parsed.Depth,
		UserID: req.UserID,
		Season: req.Season,
	}
	if parsed.Priority {
		bundleReq.Priority = base.PrioritySKU
	}

	evaluated, err := s.Bundles.GetBundles(r.Context(), bundleReq)
	if err != nil {
		s.respondBundleError(w, &logMessageBuilder, err)
		return
	}

	if len(evaluated) == 0 {
		utils.AddToLogMessage(&logMessageBuilder, "No bundles found")
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "no bundles found",
			"bundles": []BundleResponse{},
			"request": parsed,
		})
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Returning %d bundles", len(evaluated)))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"bundles": toBundleResponses(evaluated),
		"request": parsed,
	})
}
