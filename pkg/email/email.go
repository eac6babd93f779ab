// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile email gönderim detayları soyutlanır (Dependency Inversion).
// Şu anki implementasyon Resend API kullanır. İleride farklı bir sağlayıcıya
// geçmek için sadece yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
//
// Bu paket dışarıya iki şey sunar:
// 1. EmailSender interface — service'ler buna bağımlı olur
// 2. NewResendSender constructor — main.go'da wire-up için
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	// SendPasswordReset, kullanıcıya şifre sıfırlama linki içeren email gönderir.
	// toEmail: alıcı email adresi, token: plaintext reset token (link'e gömülecek).
	SendPasswordReset(ctx context.Context, toEmail, token string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client       *resend.Client
	from         string // Gönderici (ör: Playtube <noreply@playtube.dev>)
	resetBaseURL string // Frontend'in reset sayfası (ör: https://playtube.dev/reset-password)
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// from: Gönderici — Resend'de doğrulanmış domain altında olmalı.
// resetBaseURL: Reset link'lerinin base URL'i.
func NewResendSender(apiKey, from, resetBaseURL string) EmailSender {
	return &resendSender{
		client:       resend.NewClient(apiKey),
		from:         from,
		resetBaseURL: resetBaseURL,
	}
}

// SendPasswordReset, şifre sıfırlama email'i gönderir.
//
// Link format: {resetBaseURL}?token={token}
//
// Token email'de plaintext olarak bulunur (DB'de SHA-256 hash saklanır).
// Kullanıcı link'e tıkladığında frontend token'ı URL'den okur
// ve POST /api/v1/auth/reset-password endpoint'ine gönderir.
func (s *resendSender) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	resetLink := fmt.Sprintf("%s?token=%s", s.resetBaseURL, token)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#0f0f0f;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#0f0f0f;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#1c1c1c;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#f1f1f1;font-size:24px;margin:0 0 8px 0;">playtube</h1>
              <h2 style="color:#f1f1f1;font-size:18px;margin:0 0 24px 0;">Password Reset Request</h2>
              <p style="color:#aaaaaa;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                We received a request to reset your password. Click the button below to choose a new password.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#ff0033;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Reset Password
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#717171;font-size:13px;line-height:1.6;margin:0 0 16px 0;">
                This link will expire in 20 minutes. If you didn't request a password reset, you can safely ignore this email.
              </p>
              <p style="color:#555555;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                If the button doesn't work, copy and paste this link:<br>
                <a href="%s" style="color:#ff0033;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, resetLink, resetLink, resetLink)

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Reset Your Password — playtube",
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

// noopSender, RESEND_API_KEY tanımlı değilken kullanılan EmailSender.
// Development ortamında gerçek email göndermek yerine token log'a yazılır.
type noopSender struct{}

// NewNoopSender, email gönderimi devre dışıyken kullanılan sender'ı döner.
func NewNoopSender() EmailSender {
	return noopSender{}
}

// SendPasswordReset, hiçbir şey yapmaz — caller token'ı kendisi loglar.
func (noopSender) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	return nil
}
