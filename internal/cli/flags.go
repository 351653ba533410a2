package cli

import (
	"github.com/spf13/pflag"

	"csv2json/internal/config"
	"csv2json/internal/tabular"
)

// addReaderFlags registers the flags controlling how inputs are read.
// Defaults live in the config package; the flags only override.
func addReaderFlags(fs *pflag.FlagSet) {
	fs.String("delimiter", "", "field delimiter of delimited input (default \";\")")
	fs.String("encoding", "", "input encoding, e.g. utf-8, windows-1252, iso-8859-1")
	fs.Int("skip-rows", 0, "lines to skip before the header row")
	fs.String("sheet", "", "worksheet to read from Excel input (default: first)")
}

func readerOptions(cfg *config.Config) []tabular.Option {
	return []tabular.Option{
		tabular.WithDelimiter(cfg.DelimiterRune()),
		tabular.WithEncoding(cfg.Encoding),
		tabular.WithSkipRows(cfg.SkipRows),
		tabular.WithSheet(cfg.Sheet),
	}
}
