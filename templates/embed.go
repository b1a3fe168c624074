package templates

import "embed"

// FS contains the embedded templates rendered by `clever-review init --workflow`.
//
//go:embed workflows/*.tmpl
var FS embed.FS
