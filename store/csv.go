package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/raushankrgupta/bundle-strategist/models"
)

// The CSV tables come from the merchandising export with these exact headers.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

type csvTable struct {
	header map[string]int
	rows   [][]string
}

func readCSVTable(path string) (*csvTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	return &csvTable{header: header, rows: records[1:]}, nil
}

func (t *csvTable) get(row []string, column string) (string, error) {
	idx, ok := t.header[column]
	if !ok {
		return "", fmt.Errorf("missing column %q", column)
	}
	if idx >= len(row) {
		return "", nil
	}
	return strings.TrimSpace(row[idx]), nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// LoadInventoryCSV loads the enriched inventory table.
func LoadInventoryCSV(path string) ([]models.Product, error) {
	table, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	for i, row := range table.rows {
		var p models.Product
		fields := []struct {
			column string
			dest   *string
		}{
			{"SKU", &p.SKU},
			{"ProductCategory", &p.ProductCategory},
			{"ProductName", &p.ProductName},
			{"Seasonality", &p.Seasonality},
		}
		for _, f := range fields {
			if *f.dest, err = table.get(row, f.column); err != nil {
				return nil, fmt.Errorf("inventory row %d: %w", i+2, err)
			}
		}

		if raw, err := table.get(row, "Quantity"); err == nil && raw != "" {
			if p.Quantity, err = strconv.Atoi(raw); err != nil {
				return nil, fmt.Errorf("inventory row %d: invalid Quantity %q", i+2, raw)
			}
		}
		if p.Margin, err = floatColumn(table, row, "Margin", i); err != nil {
			return nil, err
		}
		if p.AverageDiscount, err = floatColumn(table, row, "AverageDiscount", i); err != nil {
			return nil, err
		}
		if p.BasePrice, err = floatColumn(table, row, "BasePrice", i); err != nil {
			return nil, err
		}

		ratio, err := table.get(row, "OrderCount_Ratio_Discounted_vs_FullPrice")
		if err != nil {
			return nil, fmt.Errorf("inventory row %d: %w", i+2, err)
		}
		p.DiscountRatio, err = parseDiscountRatio(ratio)
		if err != nil {
			return nil, fmt.Errorf("inventory row %d: %w", i+2, err)
		}

		products = append(products, p)
	}
	return products, nil
}

func floatColumn(table *csvTable, row []string, column string, i int) (float64, error) {
	raw, err := table.get(row, column)
	if err != nil {
		return 0, fmt.Errorf("inventory row %d: %w", i+2, err)
	}
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("inventory row %d: invalid %s %q", i+2, column, raw)
	}
	return v, nil
}

func parseDiscountRatio(raw string) (models.DiscountRatio, error) {
	switch strings.ToLower(raw) {
	case "", "0":
		return models.FiniteRatio(0), nil
	case "inf", "infinity", "+inf":
		return models.AlwaysDiscountedRatio(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.DiscountRatio{}, fmt.Errorf("invalid discount ratio %q", raw)
	}
	return models.FiniteRatio(v), nil
}

// LoadOrdersCSV loads the cleaned orders table. Lines without a UserID are
// kept; they still count for co-purchases and seasonality.
func LoadOrdersCSV(path string) ([]models.OrderLine, error) {
	table, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}

	var lines []models.OrderLine
	for i, row := range table.rows {
		var l models.OrderLine
		if l.OrderNumber, err = table.get(row, "OrderNumber"); err != nil {
			return nil, fmt.Errorf("orders row %d: %w", i+2, err)
		}
		if l.SKU, err = table.get(row, "SKU"); err != nil {
			return nil, fmt.Errorf("orders row %d: %w", i+2, err)
		}
		l.UserID, _ = table.get(row, "UserID")
		l.Category, _ = table.get(row, "Category")
		l.Brand, _ = table.get(row, "Brand")
		l.ItemTitle, _ = table.get(row, "Item title")

		if raw, err := table.get(row, "Quantity"); err == nil && raw != "" {
			if l.Quantity, err = strconv.Atoi(raw); err != nil {
				return nil, fmt.Errorf("orders row %d: invalid Quantity %q", i+2, raw)
			}
		}
		if raw, err := table.get(row, "OriginalUnitPrice"); err == nil && raw != "" {
			if l.OriginalUnitPrice, err = strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("orders row %d: invalid OriginalUnitPrice %q", i+2, raw)
			}
		}
		if raw, err := table.get(row, "FinalUnitPrice"); err == nil && raw != "" {
			if l.FinalUnitPrice, err = strconv.ParseFloat(raw, 64); err != nil {
				return nil, fmt.Errorf("orders row %d: invalid FinalUnitPrice %q", i+2, raw)
			}
		}

		rawDate, err := table.get(row, "CreatedDate")
		if err != nil {
			return nil, fmt.Errorf("orders row %d: %w", i+2, err)
		}
		if rawDate != "" {
			if l.CreatedDate, err = parseDate(rawDate); err != nil {
				return nil, fmt.Errorf("orders row %d: %w", i+2, err)
			}
		}

		lines = append(lines, l)
	}
	return lines, nil
}

// LoadCoPurchaseCSV loads a precomputed bought-together table.
func LoadCoPurchaseCSV(path string) ([]models.CoPurchasePair, error) {
	table, err := readCSVTable(path)
	if err != nil {
		return nil, err
	}

	var pairs []models.CoPurchasePair
	for i, row := range table.rows {
		var pair models.CoPurchasePair
		if pair.SKUA, err = table.get(row, "ProductA"); err != nil {
			return nil, fmt.Errorf("pairs row %d: %w", i+2, err)
		}
		if pair.SKUB, err = table.get(row, "ProductB"); err != nil {
			return nil, fmt.Errorf("pairs row %d: %w", i+2, err)
		}
		raw, err := table.get(row, "Count")
		if err != nil {
			return nil, fmt.Errorf("pairs row %d: %w", i+2, err)
		}
		if pair.Count, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("pairs row %d: invalid Count %q", i+2, raw)
		}
		// Keep the pair canonical even if the export wasn't.
		if pair.SKUB < pair.SKUA {
			pair.SKUA, pair.SKUB = pair.SKUB, pair.SKUA
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}
