package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/raushankrgupta/bundle-strategist/bundles"
	"github.com/raushankrgupta/bundle-strategist/bundles/base"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/store"
	"github.com/raushankrgupta/bundle-strategist/utils"
)

// BundleResponse is one evaluated bundle as returned to clients.
type BundleResponse struct {
	Bundle      []string `json:"bundle"`
	AddedProfit float64  `json:"added_profit"`
	BundleType  string   `json:"bundle_type"`
}

func toBundleResponses(evaluated []models.EvaluatedBundle) []BundleResponse {
	out := make([]BundleResponse, 0, len(evaluated))
	for _, eb := range evaluated {
		out = append(out, BundleResponse{
			Bundle:      eb.Bundle.ProductNames(),
			AddedProfit: eb.AddedProfit,
			BundleType:  eb.Bundle.Type,
		})
	}
	return out
}

// GetBundlesHandler runs one bundle strategy.
// Query params: type (required), depth, user_id, priority (SKU), season.
func (s *Server) GetBundlesHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get Bundles API]")

	req := base.Request{
		Type:     r.URL.Query().Get("type"),
		UserID:   r.URL.Query().Get("user_id"),
		Priority: r.URL.Query().Get("priority"),
		Season:   r.URL.Query().Get("season"),
	}
	if rawDepth := r.URL.Query().Get("depth"); rawDepth != "" {
		depth, err := strconv.Atoi(rawDepth)
		if err != nil || depth <= 0 {
			utils.RespondError(w, &logMessageBuilder, "depth must be a positive integer", http.StatusBadRequest)
			return
		}
		req.Depth = depth
	}
	if req.Type == "" {
		utils.RespondError(w, &logMessageBuilder, "Please provide a 'type' query parameter", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generating %s bundles (depth %d)", req.Type, req.Limit()))

	evaluated, err := s.Bundles.GetBundles(r.Context(), req)
	if err != nil {
		s.respondBundleError(w, &logMessageBuilder, err)
		return
	}

	if len(evaluated) == 0 {
		utils.AddToLogMessage(&logMessageBuilder, "No bundles found")
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "no bundles found",
			"bundles": []BundleResponse{},
		})
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Returning %d bundles", len(evaluated)))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"bundles": toBundleResponses(evaluated),
	})
}

// GetAllBundlesHandler runs every strategy and returns the ranked result
// plus the estimated added profit per day.
func (s *Server) GetAllBundlesHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Get All Bundles API]")

	userID := r.URL.Query().Get("user_id")
	priority := r.URL.Query().Get("priority")

	ranked, avgPerDay, err := s.Bundles.GetAllBundles(r.Context(), userID, priority)
	if err != nil {
		s.respondBundleError(w, &logMessageBuilder, err)
		return
	}

	if len(ranked) == 0 {
		utils.AddToLogMessage(&logMessageBuilder, "No bundles found")
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"message":                      "no bundles found",
			"bundles":                      []BundleResponse{},
			"average_added_profit_per_day": 0,
		})
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Returning %d ranked bundles", len(ranked)))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"bundles":                      toBundleResponses(ranked),
		"average_added_profit_per_day": avgPerDay,
	})
}

// respondBundleError maps the error taxonomy onto HTTP statuses. Unknown
// products and bad bundle sizes are data bugs, not user errors.
func (s *Server) respondBundleError(w http.ResponseWriter, logger *strings.Builder, err error) {
	switch {
	case errors.Is(err, store.ErrUnknownProduct):
		utils.RespondError(w, logger, fmt.Sprintf("Catalog inconsistency: %v", err), http.StatusInternalServerError)
	case errors.Is(err, bundles.ErrBundleSize):
		utils.RespondError(w, logger, fmt.Sprintf("Invalid bundle: %v", err), http.StatusInternalServerError)
	default:
		utils.RespondError(w, logger, fmt.Sprintf("Bundle generation failed: %v", err), http.StatusBadRequest)
	}
}
