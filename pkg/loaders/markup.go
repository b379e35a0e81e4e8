package loaders

import (
	"bytes"
	"context"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy

	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

func htmlSanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		htmlPolicy = policy
	})
	return htmlPolicy
}

// DecodeHTML returns the document as a sanitised HTML string.
func DecodeHTML(_ context.Context, _ string, data []byte) (any, error) {
	return htmlSanitizer().Sanitize(string(data)), nil
}

// DecodeMarkdown renders Markdown (GitHub flavoured) to sanitised HTML.
func DecodeMarkdown(_ context.Context, _ string, data []byte) (any, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(data, &buf); err != nil {
		return nil, err
	}
	return htmlSanitizer().Sanitize(buf.String()), nil
}
