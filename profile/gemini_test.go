package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributes(t *testing.T) {
	raw := "Here you go:\n```json\n{\"gender\": \"female\", \"price_segment\": \"luxury\", \"category_segment\": \"Jewelry\"}\n```"
	attrs, err := parseAttributes(raw)
	require.NoError(t, err)
	assert.Equal(t, "female", attrs.Gender)
	assert.Equal(t, "luxury", attrs.PriceSegment)
	assert.Equal(t, []string{"Jewelry"}, attrs.CategorySegment)
}

func TestParseAttributesCategoryList(t *testing.T) {
	raw := `{"gender": "male", "price_segment": "cheap", "category_segment": ["Shoes", "Jeans"]}`
	attrs, err := parseAttributes(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shoes", "Jeans"}, attrs.CategorySegment)
}

func TestParseAttributesFillsDefaults(t *testing.T) {
	attrs, err := parseAttributes(`{"category_segment": ""}`)
	require.NoError(t, err)
	assert.Equal(t, "undetermined", attrs.Gender)
	assert.Equal(t, "average", attrs.PriceSegment)
	assert.Equal(t, []string{"other"}, attrs.CategorySegment)
}

func TestParseAttributesNoJSON(t *testing.T) {
	_, err := parseAttributes("sorry, I can't classify that")
	require.Error(t, err)
}
