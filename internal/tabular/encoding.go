package tabular

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var encodings = map[string]encoding.Encoding{
	"":             unicode.UTF8,
	"utf8":         unicode.UTF8,
	"utf-8":        unicode.UTF8,
	"utf-8-sig":    unicode.UTF8,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"latin1":       charmap.ISO8859_1,
	"latin-1":      charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"cp850":        charmap.CodePage850,
}

// Decoder wraps r so that it yields UTF-8. A leading byte order mark
// always wins over the named encoding and is stripped. Names not in the
// built-in table are looked up in the WHATWG encoding index.
func Decoder(r io.Reader, name string) (io.Reader, error) {
	enc, ok := encodings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		var err error

		enc, err = htmlindex.Get(name)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
		}
	}

	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}
