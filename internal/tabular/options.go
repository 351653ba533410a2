package tabular

// DefaultDelimiter separates fields in delimited input unless overridden.
const DefaultDelimiter = ';'

// Options control how input files are read.
type Options struct {
	// Delimiter separates fields in delimited text.
	Delimiter rune
	// SkipRows drops leading lines before the header row.
	SkipRows int
	// Encoding names the input character set, see Decoder.
	Encoding string
	// Sheet selects the worksheet of a workbook. Empty means the first one.
	Sheet string
}

type Option func(*Options)

func WithDelimiter(r rune) Option {
	return func(o *Options) {
		if r != 0 {
			o.Delimiter = r
		}
	}
}

func WithSkipRows(n int) Option {
	return func(o *Options) {
		o.SkipRows = max(n, 0)
	}
}

func WithEncoding(name string) Option {
	return func(o *Options) {
		o.Encoding = name
	}
}

func WithSheet(name string) Option {
	return func(o *Options) {
		o.Sheet = name
	}
}

func newOptions(opts []Option) Options {
	o := Options{Delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
