// Package config loads resolver configuration from a YAML file overlaid with
// FESTOON_ environment variables and explicit overrides.
//
//	base_path: ./data
//	default_loader: text
//	pattern: ":(\\w+)"
//	max_reference_depth: 16
//	http:
//	  enabled: true
//	  timeout: 5s
//	loaders:
//	  oas: openapi
//	sources:
//	  users: users.csv
//	  user: "#users"
//	  pair: [a.json, b.json]
//	  nested: {left: a.json, right: {file: b.json}}
//
// Sources may also be a list of {id, file} or {id, source} entries. Source ids
// must not contain dots, which the configuration layer uses as its key path
// delimiter.
package config
