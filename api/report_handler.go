package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/bundle-strategist/config"
	"github.com/raushankrgupta/bundle-strategist/models"
	"github.com/raushankrgupta/bundle-strategist/utils"
)

// ReportRequest asks for a full ranked bundle report.
type ReportRequest struct {
	UserID   string `json:"user_id,omitempty"`
	Priority string `json:"priority,omitempty"`
	Email    string `json:"email,omitempty"` // when set, the report is mailed
}

// ReportHandler runs every strategy, ranks the output and exports the
// result: persisted to MongoDB, uploaded to S3 as CSV, and optionally
// emailed. Export failures are logged but do not fail the report.
func (s *Server) ReportHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Report API]")
	if merchandiserID, err := GetUserIDFromContext(r.Context()); err == nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Requested by %s", merchandiserID))
	}

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ReportRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req) // empty body means a default report
	}

	ranked, avgPerDay, err := s.Bundles.GetAllBundles(r.Context(), req.UserID, req.Priority)
	if err != nil {
		s.respondBundleError(w, &logMessageBuilder, err)
		return
	}

	report := models.BundleReport{
		GeneratedAt:          time.Now(),
		UserID:               req.UserID,
		Bundles:              ranked,
		AvgAddedProfitPerDay: avgPerDay,
	}

	csvData, err := utils.WriteBundleReportCSV(report)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Failed to render report: %v", err), http.StatusInternalServerError)
		return
	}

	var downloadURL string
	if config.AWSBucketName != "" {
		objectKey := fmt.Sprintf("bundle_reports/report_%d.csv", report.GeneratedAt.Unix())
		if _, err := utils.UploadFileToS3(r.Context(), bytes.NewReader(csvData), objectKey, "text/csv"); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to upload report: %v", err))
		} else {
			report.ReportKey = objectKey
			if url, err := utils.GetPresignedURL(r.Context(), objectKey); err == nil {
				downloadURL = url
			}
		}
	}

	if s.Mongo != nil {
		if err := s.Mongo.SaveReport(r.Context(), report); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to persist report: %v", err))
		} else {
			utils.AddToLogMessage(&logMessageBuilder, "Report saved to MongoDB")
		}
	}

	if req.Email != "" {
		subject := "Your bundle report"
		text := fmt.Sprintf("Top %d bundles attached. Estimated added profit per day: %.2f", len(ranked), avgPerDay)
		html := fmt.Sprintf("<p>Top %d bundles.</p><p>Estimated added profit per day: <strong>%.2f</strong></p><pre>%s</pre>",
			len(ranked), avgPerDay, string(csvData))
		if err := utils.SendEmail("Merchandiser", req.Email, subject, text, html); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to send report email: %v", err))
		} else {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Report emailed to %s", req.Email))
		}
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Report with %d bundles generated", len(ranked)))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"bundles":                      toBundleResponses(ranked),
		"average_added_profit_per_day": avgPerDay,
		"download_url":                 downloadURL,
	})
}
