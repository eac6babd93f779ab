package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, access token (JWT) içinde taşınan veriler.
//
// jwt.RegisteredClaims embed edilerek standart alanlar (exp, iat, sub)
// miras alınır — üstüne kendi custom alanlarımızı ekleriz.
type TokenClaims struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair, login/refresh sonucu dönen token çifti.
// Aynı değerler httpOnly cookie olarak da set edilir — body'deki kopya
// cookie kullanamayan client'lar (mobil vb.) içindir.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse, başarılı login'in response body'si.
type LoginResponse struct {
	User UserSummary `json:"user"`
	TokenPair
}
