package srcset

import "github.com/mlorenz/picset/pkg/hypermedia"

// DefaultClass is the image class assumed when callers pass an empty one.
const DefaultClass = ContextTile

// Source pairs a media type with its srcset string, ready for a
// <picture><source type srcset> element.
type Source struct {
	MediaType string `json:"media_type" bson:"media_type"`
	Srcset    string `json:"srcset" bson:"srcset"`
}

// PictureSources returns one srcset per media type found on the image's
// links carrying imageClass, in first-seen media-type order. The class also
// names the usage context that selects the breakpoint table. Returns nil for
// an absent or unhydrated image.
func PictureSources(img *hypermedia.Image, imageClass string, cacheBust bool) []Source {
	if !img.Hydrated() {
		return nil
	}
	if imageClass == "" {
		imageClass = DefaultClass
	}

	byType := Classify(img.LinksWithClass(imageClass))
	sources := make([]Source, 0, byType.Len())
	for _, mediaType := range byType.Types() {
		sizes, _ := byType.Get(mediaType)
		sources = append(sources, Source{
			MediaType: mediaType,
			Srcset:    Build(sizes, imageClass, cacheBust),
		})
	}
	return sources
}

// ImageSrcset returns the single-type srcset string for an <img> element:
// the best media type's size map (JPEG preferred) built against the class's
// breakpoint table. Returns false for an absent or unhydrated image, or when
// no link is classifiable.
func ImageSrcset(img *hypermedia.Image, imageClass string, cacheBust bool) (string, bool) {
	if !img.Hydrated() {
		return "", false
	}
	if imageClass == "" {
		imageClass = DefaultClass
	}

	sizes, ok := SelectBest(Classify(img.LinksWithClass(imageClass)))
	if !ok {
		return "", false
	}
	return Build(sizes, imageClass, cacheBust), true
}

// DefaultLink returns a single fallback URL for an <img src> attribute,
// chosen from the best media type's size map by size-major preference:
// highMax, lowMax, highMid, lowMid, highMin, lowMin. Returns false when no
// size is classifiable.
func DefaultLink(img *hypermedia.Image, imageClass string) (string, bool) {
	if !img.Hydrated() {
		return "", false
	}
	if imageClass == "" {
		imageClass = DefaultClass
	}

	sizes, ok := SelectBest(Classify(img.LinksWithClass(imageClass)))
	if !ok {
		return "", false
	}
	for _, key := range defaultLinkOrder {
		if url, ok := sizes[key]; ok {
			return url, true
		}
	}
	return "", false
}
