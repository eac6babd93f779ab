package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
)

// production, stack trace'lerin error response'larına eklenip eklenmeyeceğini belirler.
// main.go startup'ta SetProduction(cfg.IsProduction()) ile set eder.
// Production'da stack trace SIZDIRILMAZ — internal path'ler ve kod yapısı gizli kalır.
var production bool

// SetProduction, response katmanının production modunu ayarlar.
func SetProduction(p bool) {
	production = p
}

// APIResponse, başarılı API yanıtları için standart zarf (envelope).
// Frontend her zaman aynı yapıyı bekler — tutarlılık önemli.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// APIErrorResponse, hata yanıtları için standart zarf.
// Stack sadece production dışında doldurulur (debug kolaylığı).
type APIErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
	Stack      string   `json:"stack,omitempty"`
}

// JSON, başarılı bir yanıt gönderir.
// "any" Go'da generic tip — herhangi bir veri tipini kabul eder.
func JSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < 400,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// Error, hata yanıtı gönderir.
// Domain error'ları otomatik olarak uygun HTTP status code'a çevrilir.
func Error(w http.ResponseWriter, err error) {
	writeError(w, mapErrorToStatus(err), err.Error())
}

// ErrorWithMessage, özel mesajlı ve status'lu hata yanıtı gönderir.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	writeError(w, status, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := APIErrorResponse{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     []string{message},
	}

	// Stack trace sadece development'ta — production'da internal detay sızdırılmaz.
	if !production {
		resp.Stack = string(debug.Stack())
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode error response", http.StatusInternalServerError)
	}
}

// mapErrorToStatus, domain error'ları HTTP status code'larına eşler.
// errors.Is() kullanarak error chain'ini kontrol eder —
// wrap edilmiş error'lar da doğru match eder.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
