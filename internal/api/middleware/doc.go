// Package middleware provides gin middleware for CORS and rate limiting.
package middleware
