package product

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func Test_Input_Validate(t *testing.T) {
	testCases := []struct {
		name     string
		input    Input
		expected []FieldError
	}{
		{
			name:     "Success - valid input with description",
			input:    Input{Name: strPtr("Laptop"), Price: floatPtr(999.99), Description: strPtr("x")},
			expected: nil,
		},
		{
			name:     "Success - valid input without description",
			input:    Input{Name: strPtr("Mouse"), Price: floatPtr(0.01)},
			expected: nil,
		},
		{
			name:  "Error - name missing",
			input: Input{Price: floatPtr(10)},
			expected: []FieldError{
				{Loc: []string{"body", "name"}, Msg: "field required", Type: "value_error.missing"},
			},
		},
		{
			name:  "Error - name empty",
			input: Input{Name: strPtr(""), Price: floatPtr(10)},
			expected: []FieldError{
				{Loc: []string{"body", "name"}, Msg: "ensure this value has at least 1 characters", Type: "value_error.any_str.min_length"},
			},
		},
		{
			name:  "Error - price missing",
			input: Input{Name: strPtr("Laptop")},
			expected: []FieldError{
				{Loc: []string{"body", "price"}, Msg: "field required", Type: "value_error.missing"},
			},
		},
		{
			name:  "Error - price zero",
			input: Input{Name: strPtr("Laptop"), Price: floatPtr(0)},
			expected: []FieldError{
				{Loc: []string{"body", "price"}, Msg: "ensure this value is greater than 0", Type: "value_error.number.not_gt"},
			},
		},
		{
			name:  "Error - price negative",
			input: Input{Name: strPtr("Laptop"), Price: floatPtr(-5)},
			expected: []FieldError{
				{Loc: []string{"body", "price"}, Msg: "ensure this value is greater than 0", Type: "value_error.number.not_gt"},
			},
		},
		{
			name:  "Error - both fields missing",
			input: Input{},
			expected: []FieldError{
				{Loc: []string{"body", "name"}, Msg: "field required", Type: "value_error.missing"},
				{Loc: []string{"body", "price"}, Msg: "field required", Type: "value_error.missing"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			errs := tc.input.Validate()
			// then
			assert.Equal(t, tc.expected, errs)
		})
	}
}

func Test_Input_Validate_IsPure(t *testing.T) {
	// given
	in := Input{Name: strPtr(""), Price: floatPtr(-1)}
	// when
	errs := in.Validate()
	// then
	require.NotEmpty(t, errs)
	assert.Equal(t, "", *in.Name, "validation must not modify its input")
	assert.Equal(t, float64(-1), *in.Price)
}

func Test_Product_JSONRoundTrip(t *testing.T) {
	testCases := []struct {
		name    string
		product Product
	}{
		{
			name:    "with description",
			product: Product{ID: 1, Name: "Laptop", Price: 999.99, Description: strPtr("Gaming laptop")},
		},
		{
			name:    "absent description stays null",
			product: Product{ID: 2, Name: "Mouse", Price: 19.9},
		},
		{
			name:    "empty description is distinct from absent",
			product: Product{ID: 3, Name: "Cable", Price: 2.5, Description: strPtr("")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			raw, err := json.Marshal(tc.product)
			require.NoError(t, err)
			var decoded Product
			require.NoError(t, json.Unmarshal(raw, &decoded))
			// then
			assert.Equal(t, tc.product, decoded)
			if tc.product.Description == nil {
				assert.Contains(t, string(raw), `"description":null`)
			}
		})
	}
}
