package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticData embed.FS

// FS gibt die eingebetteten Standard-Assets (index.html, style.css) zurück.
func FS() fs.FS {
	sub, err := fs.Sub(staticData, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
