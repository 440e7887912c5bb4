package hypermedia

import "slices"

// Link is the capability set the classification layer depends on: a target
// URL, a media-type string, and a class-membership predicate. Any hydration
// layer can satisfy it; [ClassifiedLink] is the built-in implementation.
type Link interface {
	// URL returns the link target.
	URL() string

	// MediaType returns the media-type string (e.g. "image/jpeg").
	// May be empty for links that don't declare one.
	MediaType() string

	// HasClass reports whether the link carries the given class tag.
	HasClass(class string) bool
}

// ClassifiedLink is a typed link with free-form class tags. It is the wire
// representation of one image variant and implements [Link].
type ClassifiedLink struct {
	Rel     string   `json:"rel,omitempty" bson:"rel,omitempty"`
	Href    string   `json:"href" bson:"href"`
	Type    string   `json:"type,omitempty" bson:"type,omitempty"`
	Classes []string `json:"classes,omitempty" bson:"classes,omitempty"`
}

// URL returns the link target.
func (l ClassifiedLink) URL() string { return l.Href }

// MediaType returns the declared media type.
func (l ClassifiedLink) MediaType() string { return l.Type }

// HasClass reports whether the link carries the given class tag.
func (l ClassifiedLink) HasClass(class string) bool {
	return slices.Contains(l.Classes, class)
}

// Ensure ClassifiedLink implements Link.
var _ Link = ClassifiedLink{}
