package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"csv2json/internal/coerce"
	"csv2json/internal/common"
	"csv2json/internal/diagnostic"
	"csv2json/internal/logging"
	"csv2json/internal/mapping"
	"csv2json/internal/record"
	"csv2json/internal/reshape"
	"csv2json/internal/schema"
	"csv2json/internal/tabular"
)

// DefaultIndent is the number of spaces per JSON nesting level.
const DefaultIndent = 4

var (
	// ErrNoRoot is returned when neither the request nor the schema names
	// the root element.
	ErrNoRoot = errors.New("no root element name")
	// ErrNoInput is returned when a request has neither an input path nor
	// a table.
	ErrNoInput = errors.New("no input")
	// ErrNoOutput is returned when the output path cannot be derived.
	ErrNoOutput = errors.New("no output path")
)

// Request describes one conversion.
type Request struct {
	// Root names the top level key. Empty means the schema's root.
	Root string

	// InputPath is read with the tabular package unless Table is set.
	InputPath string
	Table     *record.Table

	// OutputPath defaults to InputPath with a .json extension. A .gz
	// suffix writes gzip compressed JSON.
	OutputPath string

	// StripNulls drops null values from the documents.
	StripNulls bool

	// Schema wins over SchemaPath. Without either no column is coerced.
	SchemaPath string
	Schema     *schema.Schema

	// Mapping renames input columns before typing.
	Mapping *mapping.FieldMapping

	SkipRows      int
	ReaderOptions []tabular.Option

	// InferTypes types columns the schema does not declare.
	InferTypes bool
	// DeepNesting splits dotted keys below the first level too.
	DeepNesting bool

	// Indent is the number of spaces per level, DefaultIndent when zero.
	// Compact writes everything on one line.
	Indent  int
	Compact bool
}

// Result describes a finished conversion.
type Result struct {
	Root       string
	OutputPath string
	Documents  []*reshape.Document
	// Records is the number of input rows converted.
	Records     int
	Diagnostics *diagnostic.Diagnostics
}

// Converter runs requests. The zero value is ready to use and discards
// logs and diagnostics beyond those collected on each Result.
type Converter struct {
	Logger *slog.Logger
	Sink   diagnostic.Sink
}

// Convert runs the pipeline and writes the output file.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	outputPath := req.OutputPath
	if outputPath == "" {
		if req.InputPath == "" {
			return nil, ErrNoOutput
		}

		outputPath = common.ReplaceExt(req.InputPath, ".json")
	}

	res, err := c.Documents(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	indent := req.Indent
	if indent == 0 {
		indent = DefaultIndent
	}

	if req.Compact {
		indent = 0
	}

	sink := diagnostic.Tee(res.Diagnostics, c.Sink)

	var buf bytes.Buffer
	if err := Encode(&buf, Wrap(res.Root, res.Documents), indent, sink); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", outputPath, err)
	}

	data, err := Compress(outputPath, buf.Bytes())
	if err != nil {
		return nil, err
	}

	if err := WriteFileAtomic(outputPath, data); err != nil {
		return nil, err
	}

	res.OutputPath = outputPath

	c.logger().Info("conversion finished",
		slog.String("output", outputPath),
		slog.Int("records", res.Records),
		slog.Int("warnings", len(res.Diagnostics.Warnings)))

	return res, nil
}

// Documents runs the pipeline up to the reshaped documents without writing
// anything.
func (c *Converter) Documents(ctx context.Context, req Request) (*Result, error) {
	log := c.logger()
	diags := &diagnostic.Diagnostics{}
	sink := diagnostic.Tee(diags, c.Sink)

	s, err := loadSchema(req)
	if err != nil {
		sink.Report(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeSchemaParse,
			Message:  err.Error(),
		})

		return nil, err
	}

	if s != nil {
		log.Debug("schema loaded", slog.String("path", s.Path), slog.Int("fields", s.Len()),
			slog.String("format", s.Format.String()))

		if log.Enabled(ctx, slog.LevelDebug) {
			log.Debug("schema dump", slog.String("schema", s.Dump()))
		}
	}

	root := req.Root
	if root == "" && s != nil {
		root = s.Root
	}

	if root == "" {
		return nil, ErrNoRoot
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := readTable(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Debug("input read", slog.String("input", req.InputPath),
		slog.Int("rows", t.Len()), slog.Int("columns", len(t.Headers)))

	if req.Mapping.Len() > 0 {
		t = mapping.Apply(t, req.Mapping, sink)
		log.Debug("mapping applied", slog.Int("entries", req.Mapping.Len()), slog.Any("columns", t.Headers))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.InferTypes {
		t = coerce.Infer(t, s, sink)
	}

	if s != nil {
		t = coerce.Coerce(t, s, sink)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := []reshape.Option{reshape.WithSink(sink)}
	if req.DeepNesting {
		opts = append(opts, reshape.WithDeepNesting())
	}

	docs := reshape.ReshapeAll(t.Records, req.StripNulls, opts...)

	log.Debug("records reshaped", slog.Int("documents", len(docs)), slog.Bool("strip_nulls", req.StripNulls))

	return &Result{
		Root:        root,
		Documents:   docs,
		Records:     t.Len(),
		Diagnostics: diags,
	}, nil
}

func (c *Converter) logger() *slog.Logger {
	return logging.OrDiscard(c.Logger)
}

func loadSchema(req Request) (*schema.Schema, error) {
	switch {
	case req.Schema != nil:
		return req.Schema, nil
	case req.SchemaPath != "":
		return schema.LoadFile(req.SchemaPath)
	default:
		return nil, nil
	}
}

func readTable(ctx context.Context, req Request) (*record.Table, error) {
	if req.Table != nil {
		return req.Table, nil
	}

	if req.InputPath == "" {
		return nil, ErrNoInput
	}

	opts := req.ReaderOptions
	if req.SkipRows > 0 {
		opts = append(opts[:len(opts):len(opts)], tabular.WithSkipRows(req.SkipRows))
	}

	return tabular.Read(ctx, req.InputPath, opts...)
}

// Wrap builds the output object {root: [documents...]}.
func Wrap(root string, docs []*reshape.Document) *record.Record {
	items := make([]any, len(docs))
	for i, d := range docs {
		items[i] = d
	}

	return record.Of(root, items)
}
