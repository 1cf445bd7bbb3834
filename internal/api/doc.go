// Package api provides a client for the CryptoCompare min-api REST endpoints
// used by the pipeline: top-by-market-cap listing, daily history, and full quotes.
//
// Requests rotate round-robin through a pool of API keys, one advance per
// attempt, so retries land on a different key whenever more than one is
// configured. Transient failures are retried with a fixed delay; after the
// attempt budget is spent the caller gets an error and treats the call as
// having produced no data.
package api
