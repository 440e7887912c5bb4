package srcset

// Class tags with meaning to the classifier. Any other class on a link is
// ignored here; selection by semantic class (e.g. "tile") happens upstream.
const (
	ClassMin = "min"
	ClassMid = "mid"
	ClassMax = "max"

	// ClassHighDensity marks a variant targeting high-pixel-density
	// displays. Absence implies the low density tier.
	ClassHighDensity = "high-density"
)

// MediaTypeJPEG is the baseline media type preferred by [SelectBest].
const MediaTypeJPEG = "image/jpeg"

// SizeKey identifies one (density tier, size tier) slot of an image.
// There are exactly six values, see [CanonicalKeys].
type SizeKey string

// The six size keys.
const (
	LowMin  SizeKey = "lowMin"
	LowMid  SizeKey = "lowMid"
	LowMax  SizeKey = "lowMax"
	HighMin SizeKey = "highMin"
	HighMid SizeKey = "highMid"
	HighMax SizeKey = "highMax"
)

// canonicalKeys is the canonical size-key order: density groups together,
// ascending size within each density group. Breakpoint tables are
// width-ascending along this order, so iterating it yields descriptors
// smallest to largest.
var canonicalKeys = [6]SizeKey{LowMin, LowMid, LowMax, HighMin, HighMid, HighMax}

// CanonicalKeys returns the six size keys in canonical order.
func CanonicalKeys() []SizeKey {
	keys := canonicalKeys
	return keys[:]
}

// defaultLinkOrder is the preference order for picking a single fallback
// URL: prefer larger size tiers, and high density over low at equal tier.
// Note this is size-major, unlike the density-major canonical order.
var defaultLinkOrder = [6]SizeKey{HighMax, LowMax, HighMid, LowMid, HighMin, LowMin}

// sizeTiers lists the size-tier classes in classification priority order.
// A link claiming several size classes resolves to the first match.
var sizeTiers = []struct {
	class string
	low   SizeKey
	high  SizeKey
}{
	{ClassMin, LowMin, HighMin},
	{ClassMid, LowMid, HighMid},
	{ClassMax, LowMax, HighMax},
}

// SizeMap maps size keys to variant URLs. At most six entries; keys absent
// from the map simply contribute nothing to the output.
type SizeMap map[SizeKey]string

// LinksByType holds one SizeMap per media type, preserving the order in
// which media types were first encountered while scanning the input links.
// Insertion order matters: [SelectBest] falls back to the first type seen.
type LinksByType struct {
	order []string
	types map[string]SizeMap
}

// Types returns the media types in first-seen order.
func (bt *LinksByType) Types() []string {
	if bt == nil {
		return nil
	}
	return bt.order
}

// Get returns the size map for a media type.
func (bt *LinksByType) Get(mediaType string) (SizeMap, bool) {
	if bt == nil {
		return nil, false
	}
	m, ok := bt.types[mediaType]
	return m, ok
}

// Len returns the number of media types present.
func (bt *LinksByType) Len() int {
	if bt == nil {
		return 0
	}
	return len(bt.order)
}

// put writes url under (mediaType, key), overwriting any prior value for
// that exact pair. Later links win.
func (bt *LinksByType) put(mediaType string, key SizeKey, url string) {
	if bt.types == nil {
		bt.types = make(map[string]SizeMap)
	}
	m, ok := bt.types[mediaType]
	if !ok {
		m = make(SizeMap)
		bt.types[mediaType] = m
		bt.order = append(bt.order, mediaType)
	}
	m[key] = url
}
