// Package schemas embeds the review-app.yaml JSON Schema and registers it
// with the config package on import:
//
//	import _ "github.com/kjourdan1/clever-review/schemas"
package schemas

import (
	"embed"

	"github.com/kjourdan1/clever-review/internal/config"
)

//go:embed review-app-v1.schema.json
var fs embed.FS

func init() {
	data, err := fs.ReadFile("review-app-v1.schema.json")
	if err != nil {
		panic("schemas: failed to read embedded review-app-v1.schema.json: " + err.Error())
	}
	config.SetSchema(data)
}
