package srcset

import "github.com/mlorenz/picset/pkg/hypermedia"

// Classify partitions a flat, unordered link collection into one size map
// per media type.
//
// For each link, the size tier is determined by testing class membership in
// fixed priority min, mid, max. The first match wins, so a link claiming
// several size classes resolves to the earliest tier rather than producing
// an error. The density tier is high exactly when the link carries the
// high-density class. Links with no size-tier class are unmappable and
// skipped entirely.
//
// Within one (mediaType, sizeKey) slot, later links overwrite earlier ones.
// Media types appear in the result in the order they were first encountered.
func Classify(links []hypermedia.Link) *LinksByType {
	byType := &LinksByType{}
	for _, link := range links {
		key, ok := classifyLink(link)
		if !ok {
			continue
		}
		byType.put(link.MediaType(), key, link.URL())
	}
	return byType
}

// classifyLink resolves a link's size key from its class tags.
// Returns false for links with no size-tier class.
func classifyLink(link hypermedia.Link) (SizeKey, bool) {
	high := link.HasClass(ClassHighDensity)
	for _, tier := range sizeTiers {
		if !link.HasClass(tier.class) {
			continue
		}
		if high {
			return tier.high, true
		}
		return tier.low, true
	}
	return "", false
}
