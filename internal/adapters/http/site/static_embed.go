package site

import (
	_ "embed"
)

// indexHTML is the landing page listing the API routes.
//
//go:embed static/index.html
var indexHTML []byte
