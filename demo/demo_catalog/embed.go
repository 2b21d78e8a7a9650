package demo_catalog

import (
	"embed"
)

// Name 為內嵌目錄的檔名。
const Name = "games.json"

// FS provides the embedded sample catalog for demos and tests.
//
//go:embed games.json
var FS embed.FS
