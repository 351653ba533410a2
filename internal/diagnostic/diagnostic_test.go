package diagnostic_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csv2json/internal/diagnostic"
)

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	var d diagnostic.Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning(diagnostic.CodeColumnCoercion, "could not apply dtype 'int' to column 'amount'", "amount")
	d.AddInfo(diagnostic.CodeReshapeInvariant, "kept flat", "a.b")
	d.Report(diagnostic.Debug(diagnostic.CodeSerializationSkip, "x", "dropped NaN"))

	assert.True(t, d.HasWarnings())
	assert.False(t, d.HasErrors())
	assert.Equal(t, 3, d.Len())
	require.Len(t, d.ByCode(diagnostic.CodeColumnCoercion), 1)

	d.AddError(diagnostic.CodeSchemaParse, "bad schema", "")
	assert.False(t, d.IsValid())
	require.EqualError(t, d.Error(), "[schema_parse] bad schema")

	all := d.All()
	require.Len(t, all, 4)
	assert.Equal(t, diagnostic.DiagnosticError, all[0].Severity)
	assert.Equal(t, diagnostic.DiagnosticDebug, all[3].Severity)

	var other diagnostic.Diagnostics
	other.Merge(d)
	assert.Equal(t, 4, other.Len())
}

func TestDiagnosticString(t *testing.T) {
	t.Parallel()

	d := diagnostic.Warning(diagnostic.CodeColumnCoercion, "amount", "bad value").AtRow(3)
	assert.Equal(t, "amount row 3: [column_coercion] bad value", d.String())

	d = diagnostic.Info(diagnostic.CodeUnmappedTarget, "", "no source").WithSuggestions("plz", "zip")
	assert.Equal(t, "[unmapped_target] no source (did you mean: plz, zip?)", d.String())

	assert.Equal(t, "warning", diagnostic.DiagnosticWarning.String())
	assert.Equal(t, "unknown", diagnostic.DiagnosticSeverity(42).String())
}

func TestRing(t *testing.T) {
	t.Parallel()

	r := diagnostic.NewRing(3)
	for i := range 5 {
		r.Report(diagnostic.Warning("c", fmt.Sprint(i), "m"))
	}

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 2, r.Dropped())
	assert.Equal(t, 5, r.Count(diagnostic.DiagnosticWarning))
	assert.Equal(t, 0, r.Count(diagnostic.DiagnosticError))

	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "2", snap[0].Column)
	assert.Equal(t, "4", snap[2].Column)
}

func TestRingConcurrent(t *testing.T) {
	t.Parallel()

	r := diagnostic.NewRing(0)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 200 {
				r.Report(diagnostic.Info("c", "", "m"))
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, diagnostic.DefaultRingSize, r.Len())
	assert.Equal(t, 600, r.Dropped())
	assert.Equal(t, 1600, r.Count(diagnostic.DiagnosticInfo))
}

func TestTeeAndLogSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var collected diagnostic.Diagnostics

	sink := diagnostic.Tee(&collected, nil, diagnostic.LogSink{Logger: logger}, diagnostic.Discard)
	sink.Report(diagnostic.Warning(diagnostic.CodeMissingSchemaColumn, "price", "column not found").AtRow(2))

	assert.Equal(t, 1, collected.Len())
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "code=missing_schema_column")
	assert.Contains(t, buf.String(), "column=price")
	assert.Contains(t, buf.String(), "row=2")

	diagnostic.OrDiscard(nil).Report(diagnostic.Info("x", "", "y"))
	diagnostic.LogSink{}.Report(diagnostic.Info("x", "", "y"))

	var calls int

	diagnostic.SinkFunc(func(diagnostic.Diagnostic) { calls++ }).Report(diagnostic.Info("x", "", "y"))
	assert.Equal(t, 1, calls)
}
