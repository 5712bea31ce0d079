// Package assets embeds the bundled levels and message catalogs.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed all:levels all:messages
var assetFS embed.FS

// FS returns the embedded assets rooted at this directory, so level paths
// read "levels/world1/level1.lvlb".
func FS() fs.FS {
	return assetFS
}
