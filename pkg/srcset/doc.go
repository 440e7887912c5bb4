// Package srcset derives browser-ready responsive-image descriptors from the
// classified links of a hypermedia image resource.
//
// An image resource exposes several renditions of the same subject as typed
// links tagged with class strings: a size tier (min, mid, max) and an
// optional high-density marker. This package turns that unordered link set
// into the strings an <img srcset> or <picture><source> attribute expects.
//
// # Pipeline
//
// Three pure functions cooperate:
//
//  1. [Classify] partitions links into media type → (density, size) → URL.
//  2. [SelectBest] picks one media type's size map when a single flat link
//     set is needed (JPEG preferred as the universally supported baseline).
//  3. [Build] assembles the ordered, comma-separated width-descriptor
//     string for one size map and a usage context.
//
// Callers either fan out over all media types (Classify → Build per type,
// see [PictureSources]) or collapse to a single string (Classify →
// SelectBest → Build, see [ImageSrcset]).
//
// # Size keys
//
// Each link maps to one of six size keys, the concatenation of a density
// tier and a size tier. Their canonical order is density-major:
//
//	lowMin, lowMid, lowMax, highMin, highMid, highMax
//
// Output descriptors always follow this order, which is width-ascending
// within every breakpoint table, so srcset candidates are emitted smallest
// to largest.
//
// # Usage contexts
//
// A usage context names an image-placement scenario ("tile", "narrow") and
// selects the breakpoint table mapping size keys to concrete pixel widths.
// Unknown contexts fall back to the narrow table. Additional contexts can be
// registered at startup with [RegisterContext].
//
// # Error handling
//
// Nothing here returns an error. Degenerate input (absent or unhydrated
// images, links with no size tier, empty size maps, unknown contexts)
// degrades to absent results or empty strings, never to a panic.
//
// All functions are safe for concurrent use: they operate only on their
// arguments and tables that are immutable after startup.
package srcset
