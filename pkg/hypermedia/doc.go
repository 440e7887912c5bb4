// Package hypermedia defines the in-memory model for image resources that
// expose their variants as typed, classified links.
//
// An image resource is a hypermedia entity: a document that carries a set of
// links, each pointing at one rendition of the same subject (different
// encoding, pixel density, or nominal width). The package models two states
// of such an entity:
//
//   - Hydrated: the entity has been fetched and expanded, and its links are
//     available as an object graph ([Image.Links] is non-empty).
//   - Unhydrated: the entity is a bare reference, exposing only an href with
//     no embedded link data. Consumers must not derive anything from it.
//
// Use [Image.Hydrated] to distinguish the two before classification.
//
// # Links
//
// Links are modeled by the [Link] interface: a target URL, a media-type
// string, and a class-membership predicate. Classes are free-form tags; this
// package attaches no meaning to them. The srcset package interprets the
// tier tags (min/mid/max, high-density), and [Image.LinksWithClass] selects
// which links are visible under a given semantic class.
//
// # Wire format
//
// The canonical JSON shape is a flat link list:
//
//	{
//	  "href": "https://api.example.com/images/42",
//	  "links": [
//	    {"rel": "variant", "href": "a.jpg", "type": "image/jpeg", "classes": ["tile", "min"]},
//	    {"rel": "variant", "href": "b.jpg", "type": "image/jpeg", "classes": ["tile", "min", "high-density"]}
//	  ]
//	}
//
// Types carry bson tags as well so entities can be stored as-is in document
// stores.
//
// This package never fetches, validates, or caches documents itself; it only
// models entities that are already in memory.
package hypermedia
