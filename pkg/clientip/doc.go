// Package clientip resolves the address of the client behind an HTTP request.
//
// Proxy headers are trusted in this order: CF-Connecting-IP, DO-Connecting-IP,
// X-Forwarded-For (first valid entry), X-Real-IP, then RemoteAddr. Deploy
// behind a proxy that overwrites them, since clients can set any of them.
//
// notedeck uses the address to key the publish rate limiter and to tag log
// records.
package clientip
