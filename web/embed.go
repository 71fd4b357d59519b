// Package web embeds static assets shipped with the server binary.
package web

import "embed"

//go:embed translations
var Assets embed.FS
