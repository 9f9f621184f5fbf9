package main

import "embed"

// views holds the templates rendered by Renderer.
//
//go:embed views/*.tmpl
var views embed.FS
