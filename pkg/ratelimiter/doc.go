// Package ratelimiter is a keyed token bucket limiter with HTTP middleware.
//
// Each key gets a bucket of Capacity tokens that refills by RefillRate every
// RefillInterval. A request takes one token; a request that finds too few is
// denied without consuming any. notedeck puts it in front of the publish
// endpoints, keyed by client address, so one client cannot flood every
// viewport with toasts:
//
//	limiter := ratelimiter.MustNewBucket(cfg)
//	vp := viewport.New(engine, viewport.WithPublishMiddleware(
//		ratelimiter.Middleware(limiter, clientip.Key),
//	))
//
// Buckets live in memory and are swept after DefaultIdleTTL without use.
package ratelimiter
