// Package httputil provides the HTTP plumbing for fetching hypermedia image
// resources.
//
// # Overview
//
//   - [Client]: fetches image-resource documents (JSON or HTML) with
//     automatic retry for transient failures
//   - [Retry]: generic retry with exponential backoff
//
// # Retry
//
// Transient failures (network errors and 5xx responses) are wrapped in
// [RetryableError] so [Retry] attempts them again with exponential backoff,
// honoring any Retry-After hint from the server. Other 4xx responses are
// permanent and returned immediately.
//
// # Caching
//
// This package does not cache; the pipeline layer caches fetched documents
// through pkg/cache so CLI and server share one policy.
package httputil
