// Package loaders exposes the content loader contract used by the resolver:
// a Loader turns a file name into data. Loaders are looked up by file
// extension through a Table that every resolver owns, so extending one
// instance never affects another. Built-in loaders decode JSON, JSONC, YAML,
// CSV/TSV, plain text, CBOR, HCL attribute files, Markdown, sanitised HTML and
// OpenAPI documents; all of them read bytes through a Reader implementation
// that lives under internal/fetch.
package loaders
