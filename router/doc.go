// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

Uses Go 1.22+ method+path patterns on the standard ServeMux:

	GET  /health
	GET  /api/events
	GET  /api/votes
	POST /api/votes

All API routes are wrapped with request logging; CORS is applied to
the whole mux in main.
*/
package router
