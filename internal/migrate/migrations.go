package migrate

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Embedded returns the SQL scripts shipped with the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		// embed guarantees the directory exists at build time
		panic(err)
	}
	return sub
}
