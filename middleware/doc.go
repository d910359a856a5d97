// Copyright (c) 2025 Mythenpark.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

  - WithLogging: structured request logging with status and duration
  - CORS: cross-origin headers for the website frontend
  - JSONResponse / ErrorResponse: JSON encoding helpers
  - ParseJSONBody: request body decoding
  - GetClientIP: client IP extraction behind proxies
*/
package middleware
