// Package api is the HTTP boundary: typed request and response shapes per
// endpoint, validated before anything reaches the pipeline or the searcher.
//
// Endpoints:
//
//	POST /api/save            capture a text note
//	GET  /api/search          keyword search, ?q=
//	GET  /api/semantic-search similarity search, ?q=, at most five hits
//	POST /api/upload-image    capture an image note via OCR
//	GET  /api/analytics       corpus summary
//	GET  /api/filter          date range + tag filter, DD-MM-YYYY bounds
package api
