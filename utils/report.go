package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/raushankrgupta/bundle-strategist/models"
)

// WriteBundleReportCSV renders a ranked bundle report as CSV, one row per
// bundle, products joined with " + ".
func WriteBundleReportCSV(report models.BundleReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Rank", "BundleType", "Products", "SKUs", "AddedProfit"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %v", err)
	}
	for i, eb := range report.Bundles {
		row := []string{
			fmt.Sprintf("%d", i+1),
			eb.Bundle.Type,
			strings.Join(eb.Bundle.ProductNames(), " + "),
			strings.Join(eb.Bundle.SKUs(), " + "),
			fmt.Sprintf("%.2f", eb.AddedProfit),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %v", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %v", err)
	}
	return buf.Bytes(), nil
}
