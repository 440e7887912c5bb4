package hypermedia

import "encoding/json"

// Image is a hypermedia image resource. A hydrated image carries the full
// link set of its variants; an unhydrated one is a bare reference with only
// an href.
//
// The zero value is a valid (unhydrated, empty) image.
type Image struct {
	Href  string           `json:"href,omitempty" bson:"href,omitempty"`
	Links []ClassifiedLink `json:"links,omitempty" bson:"links,omitempty"`
}

// Hydrated reports whether the image has embedded link data. A nil image or
// a link-only reference (bare href, no links) is not hydrated, and nothing
// can be derived from it.
func (img *Image) Hydrated() bool {
	return img != nil && len(img.Links) > 0
}

// LinksWithClass returns the links that carry the given class tag, in
// document order. Returns nil for an unhydrated image or when no link
// matches.
func (img *Image) LinksWithClass(class string) []Link {
	if !img.Hydrated() {
		return nil
	}
	var out []Link
	for _, l := range img.Links {
		if l.HasClass(class) {
			out = append(out, l)
		}
	}
	return out
}

// UnmarshalImage deserializes JSON bytes to an Image.
func UnmarshalImage(data []byte) (*Image, error) {
	var img Image
	if err := json.Unmarshal(data, &img); err != nil {
		return nil, err
	}
	return &img, nil
}
