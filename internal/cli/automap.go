package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"csv2json/internal/common"
	"csv2json/internal/diagnostic"
	"csv2json/internal/mapping"
	"csv2json/internal/match"
	"csv2json/internal/schema"
	"csv2json/internal/tabular"
	"csv2json/utils"
)

// ErrCheckFailed is returned by automap --check when the mapping is
// incomplete or inconsistent.
var ErrCheckFailed = errors.New("mapping check failed")

type automapFlags struct {
	output  string
	mapping string
	check   bool
}

func newAutomapCmd(e *env) *cobra.Command {
	var f automapFlags

	cmd := &cobra.Command{
		Use:   "automap <schema|targets.txt> <input>",
		Short: "Propose a mapping from target fields to input columns",
		Long: `Match target field names against the header row of an input file.

Targets come from a schema (a file path or a name resolved like in convert)
or from a text file with one target per line. Matching tries exact names,
case-insensitive names, known special cases and finally German/English
synonyms with similarity scoring. Unmapped targets list look-alike columns.`,
		Example: `  # Show proposals and save them
  csv2json automap people people.xlsx -o people.mapping.json

  # Verify an existing mapping against schema and input
  csv2json automap people people.csv -m people.mapping.json --check`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAutomap(cmd, e, f, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "write the proposed mapping to this file (.json or .yaml)")
	fs.StringVarP(&f.mapping, "mapping", "m", "", "validate this mapping file instead of proposing one")
	fs.BoolVar(&f.check, "check", false, "fail when targets stay unmapped or the mapping does not fit")
	addReaderFlags(fs)

	return cmd
}

func runAutomap(cmd *cobra.Command, e *env, f automapFlags, args []string) error {
	targetArg, input := utils.Unpack2(args)

	targets, err := loadTargets(targetArg, e.cfg.SchemaDirs)
	if err != nil {
		return err
	}

	sources, err := tabular.Headers(cmd.Context(), input, readerOptions(e.cfg)...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if f.mapping != "" {
		file, err := mapping.LoadFile(f.mapping)
		if err != nil {
			return err
		}

		diags := mapping.Validate(file.Mapping, targets, sources)
		for _, target := range targets {
			if _, ok := file.Mapping.Get(target); !ok {
				diags.Report(diagnostic.Warning(diagnostic.CodeUnmappedTarget, target,
					fmt.Sprintf("target '%s' has no source", target)).
					WithSuggestions(match.Suggest(target, sources, 3)...))
			}
		}

		renderDiagnostics(out, diags)

		if f.check && diags.HasWarnings() {
			return fmt.Errorf("%w: %d problem(s)", ErrCheckFailed, diags.Len())
		}

		return nil
	}

	res := match.AutoMapDetailed(targets, sources)
	res.Report(e.sink())
	renderProposals(out, res)

	if f.output != "" {
		if err := mapping.WriteFile(res.Mapping, f.output); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "mapping written to %s\n", f.output)
	}

	if unmapped := res.Unmapped(); f.check && len(unmapped) > 0 {
		return fmt.Errorf("%w: unmapped targets: %s", ErrCheckFailed, strings.Join(unmapped, ", "))
	}

	return nil
}

// loadTargets reads target names from a .txt list or a schema.
func loadTargets(arg string, dirs []string) ([]string, error) {
	if common.Ext(arg) == ".txt" {
		fh, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read targets file %s: %w", arg, err)
		}
		defer fh.Close()

		return readTargets(fh)
	}

	path, err := schema.Resolve(arg, dirs...)
	if err != nil {
		return nil, err
	}

	s, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}

	return s.Names(), nil
}

// readTargets returns the non-empty lines of r, without # comments and
// duplicates.
func readTargets(r io.Reader) ([]string, error) {
	var targets []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		targets = append(targets, line)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return common.Unique(targets), nil
}

func renderProposals(w io.Writer, res match.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Target", "Source", "Strategy", "Score", "Notes"})

	for _, p := range res.Proposals {
		score := ""
		if p.Mapped() {
			score = strconv.FormatFloat(p.Score, 'f', 2, 64)
		}

		notes := p.Explanation
		if p.Ambiguous {
			notes += " (ambiguous)"
		}

		switch {
		case common.IsSingle(p.Suggestions):
			notes += "; did you mean " + p.Suggestions[0] + "?"
		case common.IsMultiple(p.Suggestions):
			notes += "; did you mean one of: " + strings.Join(p.Suggestions, ", ")
		}

		t.AppendRow(table.Row{p.Target, p.Source, p.Strategy.String(), score, notes})
	}

	t.AppendFooter(table.Row{"", "", "mapped", fmt.Sprintf("%d/%d", res.Mapping.Len(), len(res.Proposals)), ""})
	t.Render()
}

func renderDiagnostics(w io.Writer, diags *diagnostic.Diagnostics) {
	if diags.Len() == 0 {
		_, _ = fmt.Fprintln(w, "mapping OK")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Severity", "Code", "Column", "Message"})

	for _, d := range diags.All() {
		msg := d.Message
		if len(d.Suggestions) > 0 {
			msg += " (did you mean: " + strings.Join(d.Suggestions, ", ") + "?)"
		}

		t.AppendRow(table.Row{d.Severity.String(), d.Code, d.Column, msg})
	}

	t.Render()
}
