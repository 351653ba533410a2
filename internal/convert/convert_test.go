package convert_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2json/internal/convert"
	"csv2json/internal/diagnostic"
	"csv2json/internal/logging"
	"csv2json/internal/mapping"
	"csv2json/internal/record"
	"csv2json/internal/schema"
	"csv2json/primitive"
)

var ordered = cmp.Transformer("pairs", func(r *record.Record) []record.Pair {
	return r.Pairs()
})

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestConvertOrders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "orders.csv", "name;amount\nwidget;10,5\ngadget;3\n")
	schemaPath := writeFile(t, dir, "orders.yaml", "fields:\n  name: str\n  amount: float\n")

	c := convert.Converter{Logger: logging.NewTestLogger(t)}

	res, err := c.Convert(context.Background(), convert.Request{
		Root:       "orders",
		InputPath:  input,
		SchemaPath: schemaPath,
		InferTypes: true,
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "orders.json"), res.OutputPath)
	assert.Equal(t, 2, res.Records)
	assert.False(t, res.Diagnostics.HasWarnings())

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, `{
    "orders": [
        {
            "name": "widget",
            "amount": 10.5
        },
        {
            "name": "gadget",
            "amount": 3.0
        }
    ]
}
`, string(data))
}

func TestConvertNestedWithMapping(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "people.csv",
		"Vorname;PLZ;Ort;Notiz\nAnna;01067;Dresden;\nBen;80331;München;vip\n")

	s := schema.New(
		schema.Field{Name: "first_name", Kind: primitive.KindString},
		schema.Field{Name: "address.zip", Kind: primitive.KindString},
		schema.Field{Name: "address.city", Kind: primitive.KindString},
		schema.Field{Name: "note", Kind: primitive.KindString},
	)
	s.Root = "people"

	fm := mapping.FromPairs(
		mapping.Pair{Target: "first_name", Source: "Vorname"},
		mapping.Pair{Target: "address.zip", Source: "PLZ"},
		mapping.Pair{Target: "address.city", Source: "Ort"},
		mapping.Pair{Target: "note", Source: "Notiz"},
	)

	ring := diagnostic.NewRing(0)
	c := convert.Converter{Sink: ring}

	res, err := c.Documents(context.Background(), convert.Request{
		InputPath:  input,
		Schema:     s,
		Mapping:    fm,
		StripNulls: true,
		InferTypes: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "people", res.Root)

	want := []*record.Record{
		record.Of("first_name", "Anna", "address", record.Of("zip", "01067", "city", "Dresden")),
		record.Of("first_name", "Ben", "address", record.Of("zip", "80331", "city", "München"), "note", "vip"),
	}

	if diff := cmp.Diff(want, res.Documents, ordered); diff != "" {
		t.Errorf("documents mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 0, ring.Count(diagnostic.DiagnosticWarning))
}

func TestConvertCoercionWarning(t *testing.T) {
	t.Parallel()

	tbl := &record.Table{
		Headers: []string{"id", "qty"},
		Records: []*record.Record{
			record.Of("id", "1", "qty", "2"),
			record.Of("id", "2", "qty", "many"),
		},
	}

	s := schema.New(
		schema.Field{Name: "id", Kind: primitive.KindInt},
		schema.Field{Name: "qty", Kind: primitive.KindInt},
		schema.Field{Name: "price", Kind: primitive.KindFloat},
	)

	var c convert.Converter

	res, err := c.Documents(context.Background(), convert.Request{Root: "items", Table: tbl, Schema: s})
	require.NoError(t, err)

	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeColumnCoercion), 1)
	assert.Len(t, res.Diagnostics.ByCode(diagnostic.CodeMissingSchemaColumn), 1)

	assert.Equal(t, int64(2), res.Documents[1].Value("id"))
	assert.Equal(t, "many", res.Documents[1].Value("qty"))
}

func TestConvertErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "in.csv", "a\n1\n")

	var c convert.Converter

	_, err := c.Convert(context.Background(), convert.Request{InputPath: input})
	assert.ErrorIs(t, err, convert.ErrNoRoot)

	_, err = c.Convert(context.Background(), convert.Request{Root: "r"})
	assert.ErrorIs(t, err, convert.ErrNoOutput)

	_, err = c.Documents(context.Background(), convert.Request{Root: "r"})
	assert.ErrorIs(t, err, convert.ErrNoInput)

	ring := diagnostic.NewRing(0)
	c.Sink = ring

	_, err = c.Convert(context.Background(), convert.Request{
		Root: "r", InputPath: input, SchemaPath: filepath.Join(dir, "nope.dt"),
	})
	require.Error(t, err)

	var parseErr *schema.SchemaParseError
	require.True(t, errors.As(err, &parseErr))
	assert.ErrorIs(t, err, schema.ErrNotFound)
	assert.Equal(t, 1, ring.Count(diagnostic.DiagnosticError))

	_, err = c.Convert(context.Background(), convert.Request{Root: "r", InputPath: filepath.Join(dir, "gone.csv")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.csv")

	_, statErr := os.Stat(filepath.Join(dir, "in.json"))
	assert.True(t, os.IsNotExist(statErr))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Convert(ctx, convert.Request{Root: "r", InputPath: input})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertCompactOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "out.json")

	var c convert.Converter

	_, err := c.Convert(context.Background(), convert.Request{
		Root:       "rows",
		Table:      &record.Table{Headers: []string{"a"}, Records: []*record.Record{record.Of("a", "<b>")}},
		OutputPath: out,
		Compact:    true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{\"rows\":[{\"a\":\"<b>\"}]}\n", string(data))
}

func TestEncode(t *testing.T) {
	t.Parallel()

	doc := record.Of(
		"nan", math.NaN(),
		"inf", math.Inf(1),
		"ch", make(chan int),
		"fn", func() {},
		"c", complex(1, 2),
		"list", []any{1, math.NaN(), "x"},
		"typed", []int64{1, 2},
		"empty", record.New(),
		"none", []any{},
		"ok", 1.25,
		"whole", 10.0,
		"negative", float32(-2),
		"large", 1e21,
		"count", int64(10),
	)

	diags := &diagnostic.Diagnostics{}

	var buf bytes.Buffer
	require.NoError(t, convert.Encode(&buf, doc, 2, diags))

	assert.Equal(t, `{
  "list": [
    1,
    "x"
  ],
  "typed": [
    1,
    2
  ],
  "empty": {},
  "none": [],
  "ok": 1.25,
  "whole": 10.0,
  "negative": -2.0,
  "large": 1e+21,
  "count": 10
}
`, buf.String())

	skips := diags.ByCode(diagnostic.CodeSerializationSkip)
	require.Len(t, skips, 6)
	assert.Equal(t, "nan", skips[0].Column)
	assert.Equal(t, "list[1]", skips[5].Column)
	assert.Equal(t, diagnostic.DiagnosticDebug, skips[0].Severity)
}

func TestWrap(t *testing.T) {
	t.Parallel()

	got := convert.Wrap("orders", []*record.Record{record.Of("a", 1)})
	assert.Equal(t, []string{"orders"}, got.Keys())
	assert.Len(t, got.Value("orders"), 1)
}

func ExampleEncode() {
	doc := record.Of("customer", record.Of("name", "Anna & Co", "city", "Köln"))

	_ = convert.Encode(os.Stdout, doc, 4, nil)
	// Output:
	// {
	//     "customer": {
	//         "name": "Anna & Co",
	//         "city": "Köln"
	//     }
	// }
}

func TestConvertGzipOutput(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "rows.json.gz")

	var c convert.Converter

	_, err := c.Convert(context.Background(), convert.Request{
		Root:       "rows",
		Table:      &record.Table{Headers: []string{"a"}, Records: []*record.Record{record.Of("a", int64(1))}},
		OutputPath: out,
	})
	require.NoError(t, err)

	fh, err := os.Open(out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fh.Close() })

	zr, err := pgzip.NewReader(fh)
	require.NoError(t, err)

	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"rows\": [\n        {\n            \"a\": 1\n        }\n    ]\n}\n", string(data))
	assert.Equal(t, "rows.json", zr.Name)
}
