package mapping

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"csv2json/internal/diagnostic"
	"csv2json/internal/record"
)

func TestFieldMappingOrder(t *testing.T) {
	t.Parallel()

	fm := New()
	fm.Set("zip_code", "PLZ")
	fm.Set("first_name", "Vorname")
	fm.Set("city", "Ort")
	fm.Set("zip_code", "Postleitzahl")

	assert.Equal(t, []string{"zip_code", "first_name", "city"}, fm.Targets())

	src, ok := fm.Get("zip_code")
	require.True(t, ok)
	assert.Equal(t, "Postleitzahl", src)

	assert.True(t, fm.Delete("city"))
	assert.False(t, fm.Delete("city"))
	assert.Equal(t, 2, fm.Len())

	var nilMapping *FieldMapping
	assert.Equal(t, 0, nilMapping.Len())
	assert.Empty(t, nilMapping.Pairs())
}

func TestFieldMappingJSONOrder(t *testing.T) {
	t.Parallel()

	fm := FromPairs(Pair{"b", "B"}, Pair{"a", "A"})

	data, err := json.Marshal(fm)
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":"B","a":"A"}`, string(data))
	assert.Equal(t, `{"b":"B","a":"A"}`, string(data))

	var back FieldMapping
	require.NoError(t, json.Unmarshal([]byte(`{"z":"Z","y":"Y","x":"X"}`), &back))
	assert.Equal(t, []string{"z", "y", "x"}, back.Targets())
}

func TestFieldMappingYAML(t *testing.T) {
	t.Parallel()

	var fm FieldMapping
	require.NoError(t, yaml.Unmarshal([]byte("z: Z\nx: X\n"), &fm))
	assert.Equal(t, []Pair{{"z", "Z"}, {"x", "X"}}, fm.Pairs())

	out, err := yaml.Marshal(&fm)
	require.NoError(t, err)
	assert.Equal(t, "z: Z\nx: X\n", string(out))

	var bad FieldMapping
	assert.Error(t, yaml.Unmarshal([]byte("- a\n- b\n"), &bad))
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		format  Format
		want    []Pair
		wantErr bool
	}{
		{
			name:   "json file",
			input:  `{"version": "1.0", "type": "csv2json_mapping", "mapping": {"zip_code": "PLZ", "first_name": "Vorname"}}`,
			format: FormatJSON,
			want:   []Pair{{"zip_code", "PLZ"}, {"first_name", "Vorname"}},
		},
		{
			name:   "defaults for missing version and type",
			input:  `{"mapping": {"a": "A"}}`,
			format: FormatJSON,
			want:   []Pair{{"a", "A"}},
		},
		{
			name:   "yaml file",
			input:  "version: \"1.0\"\nmapping:\n  city: Ort\n  zip_code: PLZ\n",
			format: FormatYAML,
			want:   []Pair{{"city", "Ort"}, {"zip_code", "PLZ"}},
		},
		{
			name:    "missing mapping key",
			input:   `{"version": "1.0", "type": "csv2json_mapping"}`,
			format:  FormatJSON,
			wantErr: true,
		},
		{
			name:    "foreign type marker",
			input:   `{"type": "something_else", "mapping": {}}`,
			format:  FormatJSON,
			wantErr: true,
		},
		{
			name:    "broken json",
			input:   `{"mapping": `,
			format:  FormatJSON,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := Parse([]byte(tt.input), tt.format)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidMappingFile))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, FileVersion, f.Version)
			assert.Equal(t, FileType, f.Type)
			assert.Equal(t, tt.want, f.Mapping.Pairs())
		})
	}
}

func TestWriteAndLoadFile(t *testing.T) {
	t.Parallel()

	fm := FromPairs(Pair{"zip_code", "PLZ"}, Pair{"first_name", "Vorname"})

	for _, name := range []string{"nested/dir/mapping.json", "mapping.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, WriteFile(fm, path))

		loaded, err := LoadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, fm.Pairs(), loaded.Mapping.Pairs(), name)
	}

	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, WriteFile(fm, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{
    "version": "1.0",
    "type": "csv2json_mapping",
    "mapping": {
        "zip_code": "PLZ",
        "first_name": "Vorname"
    }
}
`, string(data))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMarshalJSONUnicode(t *testing.T) {
	t.Parallel()

	fm := FromPairs(Pair{"street", "Straße"}, Pair{"city", "Ort"})

	data, err := Marshal(fm, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, `{
    "version": "1.0",
    "type": "csv2json_mapping",
    "mapping": {
        "street": "Straße",
        "city": "Ort"
    }
}
`, string(data))

	f, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, fm.Pairs(), f.Mapping.Pairs())
}

func TestFormatFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FormatYAML, FormatFor("m.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("m.YML"))
	assert.Equal(t, FormatJSON, FormatFor("m.json"))
	assert.Equal(t, FormatJSON, FormatFor("m"))
}

func TestApply(t *testing.T) {
	t.Parallel()

	input := &record.Table{
		Headers: []string{"PLZ", "Vorname", "Extra"},
		Records: []*record.Record{
			record.Of("PLZ", "10115", "Vorname", "Anna", "Extra", 1),
			record.Of("PLZ", "80331", "Vorname", "Ben", "Extra", 2),
		},
	}

	fm := FromPairs(
		Pair{"first_name", "Vorname"},
		Pair{"zip_code", "PLZ"},
		Pair{"phone", "Telefon"},
	)

	ring := diagnostic.NewRing(10)
	out := Apply(input, fm, ring)

	assert.Equal(t, []string{"first_name", "zip_code"}, out.Headers)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, []string{"first_name", "zip_code"}, out.Records[0].Keys())
	assert.Equal(t, "Anna", out.Records[0].Value("first_name"))
	assert.Equal(t, "80331", out.Records[1].Value("zip_code"))

	diags := ring.Snapshot()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.CodeMappingSourceMissing, diags[0].Code)
	assert.Equal(t, "Telefon", diags[0].Column)

	// the input is left alone
	assert.Equal(t, []string{"PLZ", "Vorname", "Extra"}, input.Records[0].Keys())
}

func TestApplyNothingMapped(t *testing.T) {
	t.Parallel()

	input := &record.Table{
		Headers: []string{"a"},
		Records: []*record.Record{record.Of("a", 1)},
	}

	ring := diagnostic.NewRing(10)
	out := Apply(input, FromPairs(Pair{"x", "missing"}), ring)

	assert.Same(t, input, out)
	assert.Equal(t, 2, ring.Count(diagnostic.DiagnosticWarning))

	codes := []string{}
	for _, d := range ring.Snapshot() {
		codes = append(codes, d.Code)
	}

	assert.Equal(t, []string{diagnostic.CodeMappingSourceMissing, diagnostic.CodeMappingEmpty}, codes)
	assert.Same(t, input, Apply(input, New(), nil))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	fm := FromPairs(Pair{"zip_code", "PLZ"}, Pair{"ghost", "Vorname"}, Pair{"city", "Stadt"})

	res := Validate(fm, []string{"zip_code", "city"}, []string{"PLZ", "Vorname", "Ort"})
	assert.False(t, res.HasErrors())
	assert.Len(t, res.ByCode(diagnostic.CodeUnknownTarget), 1)
	assert.Len(t, res.ByCode(diagnostic.CodeUnknownSource), 1)

	res = Validate(fm, nil, nil)
	assert.Equal(t, 0, res.Len())

	res = Validate(New(), nil, nil)
	assert.Len(t, res.ByCode(diagnostic.CodeMappingEmpty), 1)
}
