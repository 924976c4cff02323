package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/bundle-strategist/profile"
	"github.com/raushankrgupta/bundle-strategist/utils"
)

// ProfileHandler returns the derived purchasing profile for one user.
func (s *Server) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Profile API]")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		utils.RespondError(w, &logMessageBuilder, "Please provide a 'user_id' query parameter", http.StatusBadRequest)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Building profile for user %s", userID))

	userProfile, err := s.Profiles.Build(r.Context(), userID)
	if err != nil {
		if errors.Is(err, profile.ErrNoOrders) {
			utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("No orders found for user %s", userID), http.StatusNotFound)
			return
		}
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to build profile: %v", err), http.StatusInternalServerError)
		return
	}

	// The cadence sentinel is a string in the response, matching how the
	// merchandiser UI displays it.
	response := map[string]interface{}{
		"user_id":                userProfile.UserID,
		"most_frequent_products": userProfile.MostFrequentProducts,
		"seasonal_trend":         userProfile.SeasonalTrend,
		"discount_preference":    userProfile.DiscountPreference,
		"average_discount":       userProfile.AverageDiscount,
		"user_attributes":        userProfile.UserAttributes,
	}
	if userProfile.SingleOrder {
		response["average_days_between_orders"] = "Only one order"
	} else {
		response["average_days_between_orders"] = userProfile.AverageDaysBetween
	}

	utils.AddToLogMessage(&logMessageBuilder, "Profile built")
	utils.RespondJSON(w, http.StatusOK, response)
}
