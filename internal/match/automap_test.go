package match_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2json/internal/diagnostic"
	"csv2json/internal/match"
)

func ExampleAutoMap() {
	fm := match.AutoMap(
		[]string{"name", "zip_code", "first_name", "city", "unrelated_x"},
		[]string{"Name", "PLZ", "Vorname", "Ort", "totally_different_y"},
	)

	for target, source := range fm.All() {
		fmt.Println(target, "<-", source)
	}
	// Output:
	// name <- Name
	// zip_code <- PLZ
	// first_name <- Vorname
	// city <- Ort
}

func TestAutoMapExamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		targets []string
		sources []string
		want    map[string]string
	}{
		{
			name:    "special case table",
			targets: []string{"zip_code"},
			sources: []string{"PLZ"},
			want:    map[string]string{"zip_code": "PLZ"},
		},
		{
			name:    "synonym",
			targets: []string{"first_name"},
			sources: []string{"Vorname"},
			want:    map[string]string{"first_name": "Vorname"},
		},
		{
			name:    "unrelated stays unmapped",
			targets: []string{"unrelated_x"},
			sources: []string{"totally_different_y"},
			want:    map[string]string{},
		},
		{
			name:    "exact beats case-insensitive",
			targets: []string{"email"},
			sources: []string{"EMAIL", "email"},
			want:    map[string]string{"email": "email"},
		},
		{
			name:    "case-insensitive takes first source",
			targets: []string{"city"},
			sources: []string{"CITY", "City"},
			want:    map[string]string{"city": "CITY"},
		},
		{
			name:    "special case takes first source in source order",
			targets: []string{"phone"},
			sources: []string{"Tel", "Telefon"},
			want:    map[string]string{"phone": "Tel"},
		},
		{
			name:    "special case miss falls back to synonyms",
			targets: []string{"country"},
			sources: []string{"LAND"},
			want:    map[string]string{"country": "LAND"},
		},
		{
			name:    "token overlap with boost",
			targets: []string{"customer_street"},
			sources: []string{"kunde", "customer_strasse"},
			want:    map[string]string{"customer_street": "customer_strasse"},
		},
		{
			name:    "not injective",
			targets: []string{"zip", "plz"},
			sources: []string{"postleitzahl"},
			want:    map[string]string{"zip": "postleitzahl", "plz": "postleitzahl"},
		},
		{
			name:    "empty inputs",
			targets: nil,
			sources: []string{"a"},
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fm := match.AutoMap(tt.targets, tt.sources)

			got := map[string]string{}
			for target, source := range fm.All() {
				got[target] = source
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAutoMapDeterministic(t *testing.T) {
	t.Parallel()

	targets := []string{"address", "street", "zip", "last_name", "amount", "price", "date"}
	sources := []string{"Anschrift", "Strasse", "Postleitzahl", "Nachname", "Menge", "Preis", "Datum", "extra"}

	first := match.AutoMapDetailed(targets, sources)

	for range 20 {
		again := match.AutoMapDetailed(targets, sources)
		require.Equal(t, first.Proposals, again.Proposals)
		require.Equal(t, first.Mapping.Pairs(), again.Mapping.Pairs())
	}

	assert.Equal(t, []string{"address", "street", "zip", "last_name", "amount", "price", "date"}, first.Mapping.Targets())
}

func TestAutoMapDetailed(t *testing.T) {
	t.Parallel()

	res := match.AutoMapDetailed(
		[]string{"name", "Name2", "zip_code", "first_name", "customer_city", "emial"},
		[]string{"name", "name2", "PLZ", "Vorname", "customer_ort", "email"},
	)

	require.Len(t, res.Proposals, 6)

	strategies := make([]match.Strategy, len(res.Proposals))
	for i, p := range res.Proposals {
		strategies[i] = p.Strategy
	}

	assert.Equal(t, []match.Strategy{
		match.StrategyExact,
		match.StrategyCaseInsensitive,
		match.StrategySpecialCase,
		match.StrategySynonymDirect,
		match.StrategySynonymScore,
		match.StrategyUnmapped,
	}, strategies)

	assert.InDelta(t, 0.9, res.Proposals[3].Score, 1e-9)
	assert.InDelta(t, 1.0, res.Proposals[4].Score, 1e-9)
	assert.Contains(t, res.Proposals[4].Explanation, "city")

	unmapped := res.Proposals[5]
	assert.False(t, unmapped.Mapped())
	assert.Equal(t, []string{"email"}, unmapped.Suggestions)
	assert.Equal(t, []string{"emial"}, res.Unmapped())

	var diags diagnostic.Diagnostics

	res.Report(&diags)

	warnings := diags.ByCode(diagnostic.CodeUnmappedTarget)
	require.Len(t, warnings, 1)
	assert.Equal(t, "emial", warnings[0].Column)
	assert.Equal(t, []string{"email"}, warnings[0].Suggestions)
}

func TestAutoMapTieKeepsFirstSource(t *testing.T) {
	t.Parallel()

	res := match.AutoMapDetailed([]string{"order_date"}, []string{"datum", "tag"})

	require.Len(t, res.Proposals, 1)
	assert.Equal(t, "datum", res.Proposals[0].Source)
	assert.True(t, res.Proposals[0].Ambiguous)
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	sources := []string{"customer_name", "CustomerName", "zip", "amount_total"}

	assert.Equal(t, []string{"customer_name", "CustomerName"}, match.Suggest("customerName", sources, 3))
	assert.Equal(t, []string{"customer_name"}, match.Suggest("customerName", sources, 1))
	assert.Empty(t, match.Suggest("qqqq", sources, 3))

	ranked := match.RankSuggestions("zip", sources)
	require.NotNil(t, ranked.Best())
	assert.Equal(t, "zip", ranked.Best().Source)
}

func TestStrategyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exact", match.StrategyExact.String())
	assert.Equal(t, "synonym_score", match.StrategySynonymScore.String())
	assert.Equal(t, "unmapped", match.Strategy(99).String())
}
