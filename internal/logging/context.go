// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	// requestIDKey is the context key for HTTP request IDs.
	requestIDKey contextKey = "request_id"

	// queryKey is the context key for the catalog query being executed.
	queryKey contextKey = "query"
)

// GenerateRequestID creates a new unique request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if not present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithQuery tags the context with the catalog query slug so every
// log line written while the query runs carries it.
func ContextWithQuery(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, queryKey, slug)
}

// QueryFromContext retrieves the catalog query slug from context.
func QueryFromContext(ctx context.Context) string {
	if slug, ok := ctx.Value(queryKey).(string); ok {
		return slug
	}
	return ""
}

// Ctx returns the global logger with request_id and query fields from ctx.
//
//	logging.Ctx(ctx).Info().Msg("Query executed")
//	// {"level":"info","request_id":"uuid","query":"drug-related-vehicles","message":"Query executed"}
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := Logger().With()

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logCtx = logCtx.Str("request_id", requestID)
	}
	if slug := QueryFromContext(ctx); slug != "" {
		logCtx = logCtx.Str("query", slug)
	}

	logger := logCtx.Logger()
	return &logger
}
