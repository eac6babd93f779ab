// CommentRateLimiter — Yorum/tweet spam koruması için kullanıcı bazlı rate limiting.
//
// LoginRateLimiter'dan farklar:
// - Key: userID (IP değil) — authenticated endpoint, kullanıcı bazlı takip.
// - Cooldown: Window süresi ve ceza süresi (cooldown) ayrıdır.
//   Limit aşıldığında kullanıcı cooldown süresi kadar bekler.
//
// Tasarım:
// - 30 saniye window içinde 5 yorum → izin verilir.
// - 6. yorumda cooldown başlar → 60 saniye boyunca tüm yorumlar reddedilir.
// - Cooldown bitince window sıfırlanır, kullanıcı tekrar yazabilir.
package ratelimit

import (
	"sync"
	"time"
)

// commentBucket, bir kullanıcı için yorum sayacı ve cooldown bilgisi tutar.
type commentBucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time // zero value = cooldown yok
}

// CommentRateLimiter, kullanıcı bazlı yorum spam koruması.
//
// Kullanım:
//
//	limiter := NewCommentRateLimiter(5, 30*time.Second, time.Minute)
//	// Comment handler'da:
//	if !limiter.Allow(userID) { return 429 }
type CommentRateLimiter struct {
	mu          sync.RWMutex
	buckets     map[string]*commentBucket
	maxComments int
	window      time.Duration
	cooldown    time.Duration
	stopCleanup chan struct{}
}

// NewCommentRateLimiter, yeni yorum rate limiter oluşturur ve arka plan
// temizleme goroutine'ini başlatır.
func NewCommentRateLimiter(maxComments int, window, cooldown time.Duration) *CommentRateLimiter {
	rl := &CommentRateLimiter{
		buckets:     make(map[string]*commentBucket),
		maxComments: maxComments,
		window:      window,
		cooldown:    cooldown,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, verilen kullanıcının yorum yazmasına izin verilip verilmediğini kontrol eder.
//
// Akış:
// 1. Cooldown'daysa → reject (cooldown bitmeden hiçbir yorum geçmez).
// 2. Window dolmuşsa → yeni pencere başlat.
// 3. Window içindeyse → count artır, max aşıldıysa cooldown başlat.
func (rl *CommentRateLimiter) Allow(userID string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[userID]
	if !exists {
		rl.buckets[userID] = &commentBucket{count: 1, windowStart: now}
		return true
	}

	// Cooldown'da mıyız?
	if !b.cooldownUntil.IsZero() && now.Before(b.cooldownUntil) {
		return false
	}

	// Cooldown bittiyse → yeni pencere başlat
	if !b.cooldownUntil.IsZero() {
		b.count = 1
		b.windowStart = now
		b.cooldownUntil = time.Time{}
		return true
	}

	// Window süresi dolmuş mu?
	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	if b.count > rl.maxComments {
		b.cooldownUntil = now.Add(rl.cooldown)
		return false
	}

	return true
}

// CooldownSeconds, rate limit aşıldığında kalan cooldown süresini saniye
// cinsinden döner. HTTP Retry-After header değeri olarak kullanılır.
func (rl *CommentRateLimiter) CooldownSeconds(userID string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	b, exists := rl.buckets[userID]
	if !exists || b.cooldownUntil.IsZero() {
		return 0
	}

	remaining := time.Until(b.cooldownUntil)
	if remaining <= 0 {
		return 0
	}

	return int(remaining.Seconds()) + 1
}

// cleanupLoop, arka planda süresi dolmuş bucket'ları temizler.
func (rl *CommentRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup, hem window'u hem cooldown'ı geçmiş bucket'ları siler.
// Cooldown'daki kullanıcıların bucket'ı yanlışlıkla silinmez.
func (rl *CommentRateLimiter) cleanup() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for userID, b := range rl.buckets {
		windowExpired := now.Sub(b.windowStart) > rl.window
		cooldownExpired := b.cooldownUntil.IsZero() || now.After(b.cooldownUntil)

		if windowExpired && cooldownExpired {
			delete(rl.buckets, userID)
		}
	}
}
