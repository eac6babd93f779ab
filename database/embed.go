// Package database embed dosyası — migration SQL dosyalarını binary'ye gömer.
//
// Go'nun embed paketi, derleme zamanında dosyaları binary'nin içine gömer.
// Bu sayede deploy edilen binary yanında migration dosyalarına ihtiyaç duymaz.
// //go:embed directive'i derleyiciye hangi dosyaları gömeceğini söyler.
package database

import (
	"embed"
	"io/fs"
)

// EmbeddedMigrations, migrations/ dizinindeki SQL dosyalarını içerir.
//
//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS

// Migrations, gömülü migration dosyalarını kök düzeyde sunan fs.FS döner.
// embed.FS dosyaları "migrations/001_init.sql" path'iyle tutar; New ise
// kök dizinde .sql dosyaları bekler — fs.Sub bu farkı kapatır.
func Migrations() fs.FS {
	sub, err := fs.Sub(EmbeddedMigrations, "migrations")
	if err != nil {
		// //go:embed directive'i derleme zamanında garanti eder, buraya düşülmez
		panic(err)
	}
	return sub
}
