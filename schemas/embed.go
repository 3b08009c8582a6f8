package schemas

import "embed"

// SchemasFS содержит JSON-схемы событий шины.
//
//go:embed events
var SchemasFS embed.FS
