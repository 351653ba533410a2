package match

import (
	"slices"
	"sort"
	"testing"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ZipCode", "zipcode"},
		{"zip_code", "zipcode"},
		{"zip-code", "zipcode"},
		{"ZIP_CODE", "zipcode"},
		{"customer.name", "customername"},
		{"E-Mail", "email"},
		{"Post Leitzahl", "postleitzahl"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeIdent(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeIdent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"first_name", "first"},
		{"Customer_ID", "customer"},
		{"order_nr", "order"},
		{"phone_number", "phone"},
		{"house_no", "house"},
		{"item_num", "item"},
		{"zip_code", "zip_code"},
		{"name", "name"},
		// one suffix only
		{"a_id_name", "a_id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := baseName(tt.input)
			if result != tt.expected {
				t.Errorf("baseName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSynonymTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"vorname", []string{"first", "vorname"}},
		{"zip_code", []string{"code", "plz", "zip"}},
		{"plz", []string{"plz"}},
		{"unrelated_x", []string{"unrelated", "x"}},
		{"straße", []string{"straße", "street"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var result []string
			for tok := range synonymTokens(tt.input) {
				result = append(result, tok)
			}

			sort.Strings(result)

			if !slices.Equal(result, tt.expected) {
				t.Errorf("synonymTokens(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestVariationLookupOrder(t *testing.T) {
	// zip is listed under both zip and plz; the later entry wins
	if got := variationLookup["zip"]; got != "plz" {
		t.Errorf("variationLookup[zip] = %q, want plz", got)
	}

	if got := variationLookup["postleitzahl"]; got != "plz" {
		t.Errorf("variationLookup[postleitzahl] = %q, want plz", got)
	}

	if got := variationLookup["nr"]; got != "number" {
		t.Errorf("variationLookup[nr] = %q, want number", got)
	}
}

func TestTokenizeCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"PostalCode", []string{"Postal", "Code"}},
		{"customerName", []string{"customer", "Name"}},
		{"PLZCode", []string{"PLZ", "Code"}},
		{"zip_code", []string{"zip", "code"}},
		{"customer.zip", []string{"customer", "zip"}},
		{"ALLCAPS", []string{"ALLCAPS"}},
		{"", nil},
		{"a", []string{"a"}},
		{"ABcD", []string{"A", "Bc", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := tokenizeCamelCase(tt.input)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("tokenizeCamelCase(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
