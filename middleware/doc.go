// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Every response carries an X-Request-ID header, taken from the request or
generated as a UUID. Completion is logged with method, path, status,
request_id and duration_ms.

# Caller Authentication

Mutating routes require X-Caller-ID and X-Caller-Key:

	mux.HandleFunc("POST /votes", middleware.RequireCaller(salt, h.CastVote))

The key is auth.GenerateCallerKey(identity, salt). Missing or wrong keys
get 401 before the handler runs. Handlers read the verified identity with:

	caller := middleware.CallerID(r.Context())

# Rate Limiting

A token bucket per client IP (golang.org/x/time/rate):

	limiter := middleware.NewRateLimiter(20, 40, middleware.WithTrustProxy(cfg.TrustProxy))
	handler := limiter.Middleware(mux)

Requests over the limit get 429 with Retry-After. Buckets are keyed on the
peer address unless the proxy is trusted, and at most DefaultMaxClients are
kept, evicting the least recently seen.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, X-Caller-ID, X-Caller-Key, X-Request-ID.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the client IP. X-Forwarded-For and X-Real-IP are only read when the
server sits behind a trusted proxy:

	ip := middleware.ClientIP(r, cfg.TrustProxy)

Used for rate limiting and for the hashed IP stored with each vote.
*/
package middleware
