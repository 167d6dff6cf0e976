// Package web bundles the dashboard templates and stylesheet into the binary.
package web

import "embed"

// Templates holds layouts, partials and pages, one directory level deep.
//
//go:embed templates/**/*.html
var Templates embed.FS

// Static holds the assets served under /static/.
//
//go:embed static/**/*
var Static embed.FS
