package srcset

import (
	"fmt"
	"strings"
	"time"
)

// now is stubbed in tests to pin cache-bust sampling behavior.
var now = time.Now

// Build assembles the srcset descriptor string for one size map and usage
// context. Keys are emitted in canonical order, so descriptor widths are
// non-decreasing left to right; keys absent from sizes contribute nothing.
// An empty size map yields an empty string.
//
// With cacheBust set, a freshness parameter timestamp=<epochMillis> is
// appended to each URL, joined with '&' when the URL already has a query
// string and '?' otherwise. The timestamp is sampled once per descriptor,
// not once per call.
func Build(sizes SizeMap, context string, cacheBust bool) string {
	table := Table(context)

	var descriptors []string
	for _, key := range canonicalKeys {
		url, ok := sizes[key]
		if !ok {
			continue
		}
		if cacheBust {
			url = appendTimestamp(url)
		}
		descriptors = append(descriptors, fmt.Sprintf("%s %dw", url, table[key]))
	}
	return strings.Join(descriptors, ", ")
}

// appendTimestamp adds the freshness query parameter to a URL.
func appendTimestamp(url string) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%stimestamp=%d", url, sep, now().UnixMilli())
}
