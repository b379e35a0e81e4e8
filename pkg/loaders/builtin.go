package loaders

import "fmt"

// Built-in loader names, usable from configuration files.
const (
	NameJSON     = "json"
	NameJSONC    = "jsonc"
	NameYAML     = "yaml"
	NameCSV      = "csv"
	NameTSV      = "tsv"
	NameText     = "text"
	NameCBOR     = "cbor"
	NameHCL      = "hcl"
	NameMarkdown = "markdown"
	NameHTML     = "html"
	NameOpenAPI  = "openapi"
)

var builtinDecoders = map[string]Decoder{
	NameJSON:     DecodeJSON,
	NameJSONC:    DecodeJSONC,
	NameYAML:     DecodeYAML,
	NameCSV:      DecodeCSV,
	NameTSV:      DecodeTSV,
	NameText:     DecodeText,
	NameCBOR:     DecodeCBOR,
	NameHCL:      DecodeHCL,
	NameMarkdown: DecodeMarkdown,
	NameHTML:     DecodeHTML,
	NameOpenAPI:  DecodeOpenAPI,
}

// DefaultExtensions maps file extensions to built-in loader names. OpenAPI has
// no extension of its own; map one explicitly when needed.
var DefaultExtensions = map[string]string{
	"json":     NameJSON,
	"jsonc":    NameJSONC,
	"yaml":     NameYAML,
	"yml":      NameYAML,
	"csv":      NameCSV,
	"tsv":      NameTSV,
	"txt":      NameText,
	"cbor":     NameCBOR,
	"hcl":      NameHCL,
	"md":       NameMarkdown,
	"markdown": NameMarkdown,
	"html":     NameHTML,
	"htm":      NameHTML,
}

// Builtin returns the named built-in loader reading through reader.
func Builtin(name string, reader Reader) (Loader, error) {
	decode, ok := builtinDecoders[name]
	if !ok {
		return nil, fmt.Errorf("loaders: unknown built-in loader %q", name)
	}
	return FromDecoder(reader, decode), nil
}

// IsBuiltin reports whether name is a built-in loader name.
func IsBuiltin(name string) bool {
	_, ok := builtinDecoders[name]
	return ok
}

// NewDefaultTable returns a table with every DefaultExtensions entry wired to
// its built-in loader and no fallback.
func NewDefaultTable(reader Reader) *Table {
	table := NewTable()
	for ext, name := range DefaultExtensions {
		loader, err := Builtin(name, reader)
		if err != nil {
			panic(err)
		}
		table.loaders[ext] = loader
	}
	return table
}
