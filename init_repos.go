// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository bir SQL.DB bağlantısı alır ve interface döner.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/akinalp/playtube/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? 11 ayrı repository değişkeni yerine tek struct kullanmak:
// 1. Fonksiyon imzalarını temiz tutar (tek parametre yerine 11 parametre)
// 2. Yeni repository eklendiğinde sadece struct + initRepositories güncellenir
// 3. IDE auto-complete ile kolay erişim (repos.User, repos.Video, vb.)
type Repositories struct {
	User          repository.UserRepository
	Session       repository.SessionRepository
	PasswordReset repository.PasswordResetRepository
	Video         repository.VideoRepository
	Comment       repository.CommentRepository
	Reaction      repository.ReactionRepository
	Subscription  repository.SubscriptionRepository
	Playlist      repository.PlaylistRepository
	Tweet         repository.TweetRepository
	Notification  repository.NotificationRepository
	Category      repository.CategoryRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:          repository.NewSQLiteUserRepo(conn),
		Session:       repository.NewSQLiteSessionRepo(conn),
		PasswordReset: repository.NewSQLitePasswordResetRepo(conn),
		Video:         repository.NewSQLiteVideoRepo(conn),
		Comment:       repository.NewSQLiteCommentRepo(conn),
		Reaction:      repository.NewSQLiteReactionRepo(conn),
		Subscription:  repository.NewSQLiteSubscriptionRepo(conn),
		Playlist:      repository.NewSQLitePlaylistRepo(conn),
		Tweet:         repository.NewSQLiteTweetRepo(conn),
		Notification:  repository.NewSQLiteNotificationRepo(conn),
		Category:      repository.NewSQLiteCategoryRepo(conn),
	}
}
