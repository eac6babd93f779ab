// Package main, playtube backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'lar çalışır)
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. WebSocket Hub'ı başlat
//  5. Service'leri oluştur (repository'ler + hub ile)
//  6. Handler'ları oluştur (service'ler ile)
//  7. HTTP router'ı kur, route'ları bağla
//  8. CORS yapılandır
//  9. HTTP Server'ı başlat + periyodik session temizliği
// 10. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/akinalp/playtube/config"
	"github.com/akinalp/playtube/database"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] playtube server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d, env=%s)", cfg.Server.Port, cfg.Server.Environment)

	// Production'da error response'lara stack trace eklenmez
	pkg.SetProduction(cfg.Server.IsProduction())

	// ─── 2. Database ───
	// Migration'lar binary'ye gömülüdür — deploy ederken ayrı SQL
	// dosyası taşınmaz.
	db, err := database.New(cfg.Database.Path, database.Migrations())
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	repos := initRepositories(db.Conn)

	// ─── 4. WebSocket Hub ───
	//
	// Hub, tüm WebSocket bağlantılarını ve odaları yöneten merkezi yapıdır.
	// `go hub.Run()` ayrı bir goroutine'de event loop başlatır:
	// register/unregister channel'larını dinler ve client/room map'lerini günceller.
	// Hub aynı zamanda EventPublisher interface'ini implement eder —
	// service'ler hub'a doğrudan bağımlı olmak yerine interface üzerinden erişir.
	hub := ws.NewHub()
	go hub.Run()

	// ─── 5. Service Layer ───
	svcs, limiters, err := initServices(repos, hub, cfg)
	if err != nil {
		log.Fatalf("[main] failed to initialize services: %v", err)
	}

	// ─── 6. Handler Layer ───
	h := initHandlers(svcs, limiters, hub, cfg)

	// ─── 7. HTTP Router ───
	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, repos.User, cfg)

	// ─── 8. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true, // Cookie tabanlı auth için şart
	})
	handler := corsHandler.Handler(mux)

	// ─── 9. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // Video upload uzun sürebilir
		IdleTimeout:  60 * time.Second,
	}

	// Periyodik bakım: süresi dolmuş session'lar her saat temizlenir.
	// stopCleanup kapatıldığında goroutine çıkar.
	stopCleanup := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := repos.Session.DeleteExpired(context.Background())
				if err != nil {
					log.Printf("[maintenance] session cleanup failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("[maintenance] removed %d expired sessions", n)
				}
			case <-stopCleanup:
				return
			}
		}
	}()

	// ─── 10. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")
	close(stopCleanup)

	// Önce WebSocket bağlantılarını kapat — client'lar temiz kopar.
	// Sonra HTTP server'ı kapat — yeni request kabul etmeyi durdurur,
	// mevcut request'lerin bitmesini bekler (5sn timeout).
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
