// Package htmlpage extracts classified image links from existing HTML
// markup, so a page already serving responsive images can be re-ingested as
// a hypermedia image entity.
//
// Extraction looks at <img> and <source> elements that carry class tags:
//
//	<picture>
//	  <source type="image/webp" srcset="a.webp" class="tile min">
//	  <img src="a.jpg" class="tile min">
//	</picture>
//
// Each matching element becomes one classified link. The media type is taken
// from the type attribute when present, otherwise guessed from the URL's
// file extension.
package htmlpage

import (
	"io"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mlorenz/picset/pkg/hypermedia"
)

// extensionTypes maps file extensions to media types for elements without a
// type attribute.
var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".svg":  "image/svg+xml",
}

// Extract parses HTML from r and returns the image entity assembled from its
// <img> and <source> elements. Elements without a class attribute or without
// a resolvable URL are skipped. The result may be unhydrated (no links) when
// the markup contains no classified images.
func Extract(r io.Reader) (*hypermedia.Image, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	img := &hypermedia.Image{}
	doc.Find("img, source").Each(func(_ int, sel *goquery.Selection) {
		link, ok := linkFromElement(sel)
		if !ok {
			return
		}
		img.Links = append(img.Links, link)
	})
	return img, nil
}

// ExtractString is a convenience wrapper around [Extract] for markup already
// held in memory.
func ExtractString(markup string) (*hypermedia.Image, error) {
	return Extract(strings.NewReader(markup))
}

// linkFromElement converts one <img> or <source> element to a classified
// link.
func linkFromElement(sel *goquery.Selection) (hypermedia.ClassifiedLink, bool) {
	classAttr, ok := sel.Attr("class")
	if !ok || strings.TrimSpace(classAttr) == "" {
		return hypermedia.ClassifiedLink{}, false
	}

	url := elementURL(sel)
	if url == "" {
		return hypermedia.ClassifiedLink{}, false
	}

	mediaType, _ := sel.Attr("type")
	if mediaType == "" {
		mediaType = extensionTypes[strings.ToLower(path.Ext(urlPath(url)))]
	}

	return hypermedia.ClassifiedLink{
		Rel:     "variant",
		Href:    url,
		Type:    mediaType,
		Classes: strings.Fields(classAttr),
	}, true
}

// elementURL resolves the element's target: src for <img>, the first srcset
// candidate for <source> (or <img srcset> without src).
func elementURL(sel *goquery.Selection) string {
	if src, ok := sel.Attr("src"); ok && src != "" {
		return src
	}
	srcset, ok := sel.Attr("srcset")
	if !ok {
		return ""
	}
	// First candidate, stripped of its width/density descriptor
	first := strings.Split(srcset, ",")[0]
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// urlPath strips any query string so extension lookup sees the path only.
func urlPath(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}
