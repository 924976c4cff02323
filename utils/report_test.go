package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raushankrgupta/bundle-strategist/models"
)

func TestWriteBundleReportCSV(t *testing.T) {
	report := models.BundleReport{
		Bundles: []models.EvaluatedBundle{
			{
				Bundle: models.Bundle{
					Type: models.BundleComplementary,
					Products: []models.Product{
						{SKU: "E1", ProductName: "Espresso Machine"},
						{SKU: "E2", ProductName: "Grinder"},
					},
				},
				AddedProfit: 12.3456,
			},
		},
	}

	data, err := WriteBundleReportCSV(report)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Rank,BundleType,Products,SKUs,AddedProfit")
	assert.Contains(t, out, "1,complementary,Espresso Machine + Grinder,E1 + E2,12.35")
}

func TestWriteBundleReportCSVEmpty(t *testing.T) {
	data, err := WriteBundleReportCSV(models.BundleReport{})
	require.NoError(t, err)
	assert.Equal(t, "Rank,BundleType,Products,SKUs,AddedProfit\n", string(data))
}
