// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir. Sabit sentinel'ler tanımlayıp
// service katmanında fmt.Errorf("%w: ...") ile sarıyoruz; response.go
// bunları errors.Is ile yakalayıp HTTP status'a çevirir:
//
//	return fmt.Errorf("%w: you do not own this video", pkg.ErrForbidden)
//	// → handler'da pkg.Error(w, err) → 403
//
// String karşılaştırması yerine referans karşılaştırması — typo'ya
// kapalı, sarılan mesaj istemciye aynen gider.
package pkg

import "errors"

// Domain-level error'lar. Status eşlemesi response.go'dadır:
// ErrNotFound→404, ErrUnauthorized→401, ErrForbidden→403,
// ErrAlreadyExists→409, ErrBadRequest→400, geri kalanı 500.
var (
	ErrNotFound      = errors.New("not found")      // video/yorum/kullanıcı yok
	ErrUnauthorized  = errors.New("unauthorized")   // token yok, geçersiz veya süresi dolmuş
	ErrForbidden     = errors.New("forbidden")      // kaynak var ama sahibi değilsin
	ErrAlreadyExists = errors.New("already exists") // UNIQUE ihlali (username, email, slug)
	ErrBadRequest    = errors.New("bad request")    // validation hatası
	ErrInternal      = errors.New("internal error")
)
