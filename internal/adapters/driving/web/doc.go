// Package web exposes topic search and topic management over HTTP.
//
// Routes are served by a gorilla/mux router:
//
//	GET    /api/search?q=
//	GET    /api/topics
//	POST   /api/topics
//	GET    /api/topics/{id}
//	PUT    /api/topics/{id}
//	DELETE /api/topics/{id}
//	GET    /api/corpus
//	POST   /api/corpus/invalidate
//	GET    /metrics
//	GET    /healthz
//
// Every response carries an X-Request-ID header. Requests under /api are
// rate limited with a token bucket and answered with 429 when it is empty.
package web
