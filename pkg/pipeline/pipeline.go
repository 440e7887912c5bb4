// Package pipeline provides the fetch → hydrate → derive pipeline for
// picset.
//
// This package implements the complete flow from an image-resource URL to
// browser-ready srcset strings, shared by the CLI and the HTTP API so both
// entry points cache and log the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: retrieve the image-resource document (JSON or HTML) over HTTP,
//     backed by the entity cache
//  2. Hydrate: expand the document into a hypermedia image entity
//  3. Derive: classify the entity's links and build srcset strings,
//     backed by the derived-payload cache
//
// Derivation itself is pure and never fails; all errors come from the fetch
// and hydrate stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    URL:   "https://api.example.com/images/42",
//	    Class: "tile",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Srcset)
package pipeline

import (
	"strings"

	"github.com/mlorenz/picset/pkg/errors"
	"github.com/mlorenz/picset/pkg/srcset"
)

// DefaultClass is the image class assumed when options leave it empty.
const DefaultClass = srcset.DefaultClass

// Options configures one pipeline execution.
// This struct supports JSON serialization for API requests.
type Options struct {
	// URL of the image resource to fetch.
	URL string `json:"url"`

	// Class selects which links are visible and which breakpoint table
	// applies. Defaults to tile.
	Class string `json:"class,omitempty"`

	// CacheBust appends a freshness parameter to every variant URL.
	// Cache-busted payloads are never read from or written to the
	// derived cache.
	CacheBust bool `json:"cache_bust,omitempty"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if err := errors.ValidateURL(o.URL); err != nil {
		return err
	}
	if o.Class == "" {
		o.Class = DefaultClass
	}
	if strings.ContainsAny(o.Class, " \t\n") {
		return errors.New(errors.ErrCodeInvalidContext, "image class %q contains whitespace", o.Class)
	}
	return nil
}

// Payload is the derived output for one (entity, class) pair. It is what
// gets cached and what the API returns.
type Payload struct {
	// Sources holds one type/srcset pair per media type, for
	// <picture><source> elements.
	Sources []srcset.Source `json:"sources" bson:"sources"`

	// Srcset is the single best-type descriptor string for <img srcset>.
	Srcset string `json:"srcset" bson:"srcset"`

	// DefaultLink is the fallback URL for <img src>.
	DefaultLink string `json:"default_link,omitempty" bson:"default_link,omitempty"`
}
