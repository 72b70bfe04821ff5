// Package assets embeds the web UI served by cmd/server.
package assets

import (
	_ "embed"
)

// IndexTemplate is the text/template source of the single page UI.
//
//go:embed index.html.tpl
var IndexTemplate string
