// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown renders the structured Markdown body of a content item
// into its derived HTML and plaintext forms using goldmark. Raw HTML
// pass-through is enabled so existing raw-HTML content renders correctly.
package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // GitHub-Flavored Markdown: tables, strikethrough, autolinks, task lists
		extension.Typographer, // Smart quotes and dashes
		highlighting.NewHighlighting( // Syntax highlighting for fenced code blocks
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(), // Auto-generate heading IDs for anchors
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // Allow raw HTML blocks for backward compat with existing HTML content
	),
)

// stripTags removes every HTML element, leaving only text nodes.
var stripTags = bluemonday.StrictPolicy()

// ToHTML converts Markdown source into HTML. Raw HTML embedded in the
// Markdown is passed through unchanged (WithUnsafe).
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToPlaintext derives the plaintext form of already-rendered HTML: tags are
// stripped, entities unescaped, and whitespace collapsed.
func ToPlaintext(renderedHTML string) string {
	text := stripTags.Sanitize(renderedHTML)
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

// Render produces both derived forms of a Markdown body in one call.
func Render(source string) (htmlOut, plaintext string, err error) {
	htmlOut, err = ToHTML(source)
	if err != nil {
		return "", "", err
	}
	return htmlOut, ToPlaintext(htmlOut), nil
}
