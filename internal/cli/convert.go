package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"csv2json/internal/common"
	"csv2json/internal/convert"
	"csv2json/internal/mapping"
	"csv2json/internal/schema"
)

type convertFlags struct {
	output  string
	schema  string
	mapping string
}

func newConvertCmd(e *env) *cobra.Command {
	var f convertFlags

	cmd := &cobra.Command{
		Use:   "convert <root> <input>...",
		Short: "Convert CSV or Excel files to JSON",
		Long: `Convert one or more input files into {"<root>": [documents...]} JSON files.

The schema defaults to the file named after <root> (<root>.dt, .yaml, .yml or
.json) in the working directory or any of the schema directories. Several
inputs are converted in parallel, each next to its input with a .json
extension.`,
		Example: `  # Convert orders.csv with orders.dt into orders.json
  csv2json convert orders orders.csv

  # Explicit schema and output, dropping empty cells
  csv2json convert orders export.xlsx -d schemas/orders.yaml -o out/orders.json -n

  # Rename columns with a mapping file first
  csv2json convert people people.csv -m people.mapping.json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, e, f, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file (only with a single input)")
	fs.StringVarP(&f.schema, "schema", "d", "", "schema file (default: resolved from <root>)")
	fs.StringVarP(&f.mapping, "mapping", "m", "", "mapping file renaming input columns")
	fs.BoolP("strip-nulls", "n", false, "drop null values from the documents")
	fs.Bool("deep-nesting", false, "nest every level of dotted column names")
	fs.Bool("no-infer", false, "leave columns without a schema type as text")
	fs.Int("indent", 0, "spaces per nesting level, 0 writes compact JSON (default 4)")
	fs.Int("parallel", 0, "maximum number of files converted at once (default 4)")
	addReaderFlags(fs)

	return cmd
}

func runConvert(cmd *cobra.Command, e *env, f convertFlags, args []string) error {
	root, inputs := args[0], args[1:]
	cfg := e.cfg

	if f.output != "" && common.IsMultiple(inputs) {
		return errors.New("--output can only be used with a single input")
	}

	s, err := resolveSchema(e, root, f.schema)
	if err != nil {
		return err
	}

	var fm *mapping.FieldMapping

	if f.mapping != "" {
		file, err := mapping.LoadFile(f.mapping)
		if err != nil {
			return err
		}

		fm = file.Mapping
	}

	results := make([]*convert.Result, len(inputs))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Parallel)

	for i, input := range inputs {
		g.Go(func() error {
			logger := e.logger.With(slog.String("input", input))
			c := convert.Converter{Logger: logger, Sink: e.sink()}

			res, err := c.Convert(ctx, convert.Request{
				Root:          root,
				InputPath:     input,
				OutputPath:    f.output,
				StripNulls:    cfg.StripNulls,
				Schema:        s,
				Mapping:       fm,
				ReaderOptions: readerOptions(cfg),
				InferTypes:    cfg.InferTypes,
				DeepNesting:   cfg.DeepNesting,
				Indent:        cfg.Indent,
				Compact:       cfg.Indent == 0,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}

			results[i] = res

			return nil
		})
	}

	err = g.Wait()

	for _, res := range results {
		if res == nil {
			continue
		}

		warnings := len(res.Diagnostics.Warnings)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d record(s)", res.OutputPath, res.Records)

		if warnings > 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), ", %d warning(s)", warnings)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	e.summarize(cmd.ErrOrStderr())

	return err
}

// resolveSchema loads the schema given with --schema, or the one named after
// root in the schema dirs. Without --schema a missing file is not an error:
// the input is converted without coercion.
func resolveSchema(e *env, root, explicit string) (*schema.Schema, error) {
	path := explicit
	if path == "" {
		var err error

		path, err = schema.Resolve(root, e.cfg.SchemaDirs...)
		if errors.Is(err, schema.ErrNotFound) {
			e.logger.Debug("no schema found, converting without one", slog.String("root", root))
			return nil, nil
		}

		if err != nil {
			return nil, err
		}
	}

	s, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("schema loaded", slog.String("path", path), slog.Int("fields", s.Len()))
	e.logger.Debug("schema dump", slog.String("schema", s.Dump()))

	return s, nil
}
