// Package views holds the page templates. Components live in the subpackages.
package views

import "embed"

//go:embed all:layouts all:shared all:login all:errors
var FS embed.FS
