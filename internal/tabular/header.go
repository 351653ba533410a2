package tabular

import (
	"strconv"
	"strings"
)

// uniqueHeaders renames blank and repeated header cells.
func uniqueHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]struct{}, len(raw))
	counts := make(map[string]int, len(raw))

	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		if _, dup := used[name]; dup {
			base := name
			n := counts[base]

			for {
				n++

				name = base + "." + strconv.Itoa(n)
				if _, taken := used[name]; !taken {
					break
				}
			}

			counts[base] = n
		}

		used[name] = struct{}{}
		headers[i] = name
	}

	return headers
}
