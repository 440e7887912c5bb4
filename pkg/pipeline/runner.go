package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mlorenz/picset/pkg/cache"
	"github.com/mlorenz/picset/pkg/errors"
	"github.com/mlorenz/picset/pkg/httputil"
	"github.com/mlorenz/picset/pkg/hypermedia"
	"github.com/mlorenz/picset/pkg/observability"
	"github.com/mlorenz/picset/pkg/source/htmlpage"
	"github.com/mlorenz/picset/pkg/srcset"
)

// DefaultEntityTTL bounds how long fetched documents stay valid. Image link
// sets change rarely, but "never expire" would make stale renditions
// permanent.
const DefaultEntityTTL = 24 * time.Hour

// Runner executes the pipeline with caching. It is stateless apart from the
// cache, client, and logger; multiple goroutines can safely share one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Client *httputil.Client
	Logger *log.Logger

	// EntityTTL is the cache lifetime of fetched documents.
	EntityTTL time.Duration
}

// NewRunner creates a runner. Nil arguments get working defaults: a
// NullCache (caching disabled), the default keyer, a default HTTP client,
// and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, client *httputil.Client, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if client == nil {
		client = httputil.NewClient(0)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Client:    client,
		Logger:    logger,
		EntityTTL: DefaultEntityTTL,
	}
}

// Result is the pipeline output: the derived payload plus execution
// metadata.
type Result struct {
	Payload

	// EntityHash identifies the exact document the payload was derived
	// from; useful as an ETag.
	EntityHash string `json:"entity_hash"`

	// CacheInfo reports which stages were served from cache.
	CacheInfo struct {
		EntityHit  bool `json:"entity_hit"`
		PayloadHit bool `json:"payload_hit"`
	} `json:"cache_info"`

	// Stats reports stage timings.
	Stats struct {
		FetchTime  time.Duration `json:"fetch_time"`
		DeriveTime time.Duration `json:"derive_time"`
	} `json:"stats"`
}

// Execute runs the complete fetch → hydrate → derive pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	fetchStart := time.Now()
	observability.Pipeline().OnFetchStart(ctx, opts.URL)
	doc, entityHit, err := r.FetchDocument(ctx, opts.URL)
	if err != nil {
		observability.Pipeline().OnFetchComplete(ctx, opts.URL, 0, time.Since(fetchStart), err)
		return nil, err
	}
	result.Stats.FetchTime = time.Since(fetchStart)
	observability.Pipeline().OnFetchComplete(ctx, opts.URL, len(doc.Body), result.Stats.FetchTime, nil)
	result.CacheInfo.EntityHit = entityHit
	result.EntityHash = cache.Hash(doc.Body)

	r.Logger.Debug("fetched image resource",
		"url", opts.URL,
		"cached", entityHit,
		"bytes", len(doc.Body),
		"duration", result.Stats.FetchTime)

	img, err := Hydrate(doc)
	if err != nil {
		return nil, err
	}
	if !img.Hydrated() {
		return nil, errors.New(errors.ErrCodeNotHydrated,
			"resource %s is a bare reference with no link data", opts.URL)
	}

	deriveStart := time.Now()
	observability.Pipeline().OnDeriveStart(ctx, opts.Class)
	payload, payloadHit := r.derivePayload(ctx, img, result.EntityHash, opts)
	result.Payload = payload
	result.Stats.DeriveTime = time.Since(deriveStart)
	result.CacheInfo.PayloadHit = payloadHit
	observability.Pipeline().OnDeriveComplete(ctx, opts.Class, len(payload.Sources), result.Stats.DeriveTime, nil)

	r.Logger.Debug("derived srcsets",
		"class", opts.Class,
		"media_types", len(payload.Sources),
		"cached", payloadHit,
		"duration", result.Stats.DeriveTime)

	return result, nil
}

// FetchDocument retrieves a document through the entity cache.
func (r *Runner) FetchDocument(ctx context.Context, url string) (*httputil.Document, bool, error) {
	key := r.Keyer.EntityKey(url)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var doc httputil.Document
		if err := json.Unmarshal(data, &doc); err == nil {
			observability.Cache().OnCacheHit(ctx, "entity")
			return &doc, true, nil
		}
		// Corrupt entry; refetch
		_ = r.Cache.Delete(ctx, key)
	} else if err != nil {
		r.Logger.Warn("entity cache read failed", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "entity")

	doc, err := r.Client.FetchDocument(ctx, url)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(doc); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.EntityTTL); err != nil {
			r.Logger.Warn("entity cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "entity", len(data))
		}
	}
	return doc, false, nil
}

// Hydrate expands a fetched document into an image entity. HTML documents go
// through markup extraction; everything else is treated as the JSON wire
// format.
func Hydrate(doc *httputil.Document) (*hypermedia.Image, error) {
	if strings.Contains(doc.ContentType, "html") {
		img, err := htmlpage.Extract(strings.NewReader(string(doc.Body)))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidEntity, err, "extract links from markup")
		}
		return img, nil
	}

	img, err := hypermedia.UnmarshalImage(doc.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEntity, err, "decode image document")
	}
	return img, nil
}

// Derive computes the payload for a hydrated entity. Pure; never fails.
func Derive(img *hypermedia.Image, class string, cacheBust bool) Payload {
	var p Payload
	p.Sources = srcset.PictureSources(img, class, cacheBust)
	p.Srcset, _ = srcset.ImageSrcset(img, class, cacheBust)
	p.DefaultLink, _ = srcset.DefaultLink(img, class)
	return p
}

// derivePayload wraps Derive with the derived-payload cache. Cache-busted
// output carries request-time timestamps and is always computed fresh.
func (r *Runner) derivePayload(ctx context.Context, img *hypermedia.Image, entityHash string, opts Options) (Payload, bool) {
	if opts.CacheBust {
		return Derive(img, opts.Class, true), false
	}

	key := r.Keyer.SrcsetKey(entityHash, cache.SrcsetKeyOpts{Class: opts.Class})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var p Payload
		if err := json.Unmarshal(data, &p); err == nil {
			observability.Cache().OnCacheHit(ctx, "srcset")
			return p, true
		}
		_ = r.Cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "srcset")

	p := Derive(img, opts.Class, false)
	if data, err := json.Marshal(p); err == nil {
		// Payloads derive from a content-hashed key, so they never go
		// stale; reuse the entity TTL to bound growth.
		if err := r.Cache.Set(ctx, key, data, r.EntityTTL); err != nil {
			r.Logger.Warn("payload cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "srcset", len(data))
		}
	}
	return p, false
}
