// Package webui carries the embedded palette viewer page served at the
// server root.
package webui

import _ "embed"

//go:embed static/index.html
var index []byte

// Index returns the viewer page.
func Index() []byte { return index }
