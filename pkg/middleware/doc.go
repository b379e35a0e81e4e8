// Package middleware adapts a resolver to net/http. Decorate builds a handler
// wrapper that collects request parameters, resolves a fixed request and
// merges the result into a request scoped data container before calling the
// next handler.
package middleware
