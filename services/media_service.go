package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/akinalp/playtube/pkg"
)

// MediaService, yüklenen dosyaları (video, thumbnail, avatar, cover)
// diske kaydeden servis.
//
// DB kaydı BURADA tutulmaz — URL döner, hangi tabloya yazılacağına
// çağıran servis karar verir (video mu, user avatar'ı mı vb.).
type MediaService interface {
	// SaveVideo, video dosyasını doğrular ve kaydeder, public URL döner.
	SaveVideo(file multipart.File, header *multipart.FileHeader) (string, error)
	// SaveImage, görsel dosyasını (thumbnail/avatar/cover) doğrular ve kaydeder.
	SaveImage(file multipart.File, header *multipart.FileHeader) (string, error)
	// Remove, daha önce kaydedilmiş bir dosyayı URL'inden bulup siler.
	// Dosya zaten yoksa hata dönmez.
	Remove(fileURL string) error
}

type mediaService struct {
	uploadDir    string
	maxVideoSize int64
	maxImageSize int64
}

// NewMediaService, constructor. videos/ ve images/ alt dizinlerini oluşturur.
func NewMediaService(uploadDir string, maxVideoSize, maxImageSize int64) (MediaService, error) {
	for _, sub := range []string{"videos", "images"} {
		if err := os.MkdirAll(filepath.Join(uploadDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &mediaService{
		uploadDir:    uploadDir,
		maxVideoSize: maxVideoSize,
		maxImageSize: maxImageSize,
	}, nil
}

// videoMimeTypes, yüklemeye izin verilen video türleri.
var videoMimeTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
	"video/ogg":  true,
}

// imageMimeTypes, yüklemeye izin verilen görsel türleri.
var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func (s *mediaService) SaveVideo(file multipart.File, header *multipart.FileHeader) (string, error) {
	return s.save(file, header, "videos", videoMimeTypes, s.maxVideoSize)
}

func (s *mediaService) SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	return s.save(file, header, "images", imageMimeTypes, s.maxImageSize)
}

// save, ortak kaydetme akışı: boyut + MIME kontrolü, unique dosya adı,
// diske kopyalama.
func (s *mediaService) save(file multipart.File, header *multipart.FileHeader, subdir string, allowed map[string]bool, maxSize int64) (string, error) {
	// Boyut kontrolü
	if header.Size > maxSize {
		return "", fmt.Errorf("%w: file too large (max %dMB)", pkg.ErrBadRequest, maxSize/(1024*1024))
	}

	// MIME type kontrolü
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	// Sadece base MIME type'ı al (charset vb. parametre olabilir)
	mimeBase := strings.TrimSpace(strings.Split(contentType, ";")[0])

	if !allowed[mimeBase] {
		return "", fmt.Errorf("%w: file type not allowed: %s", pkg.ErrBadRequest, mimeBase)
	}

	// Unique dosya adı — {random_hex}_{original_filename}
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random filename: %w", err)
	}
	diskFilename := hex.EncodeToString(randomBytes) + "_" + sanitizeFilename(header.Filename)

	destPath := filepath.Join(s.uploadDir, subdir, diskFilename)
	destFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, file); err != nil {
		// Hata durumunda yarım dosyayı temizle
		os.Remove(destPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/api/uploads/" + subdir + "/" + diskFilename, nil
}

// Remove, "/api/uploads/..." URL'ini disk yoluna çevirip dosyayı siler.
func (s *mediaService) Remove(fileURL string) error {
	rel, ok := strings.CutPrefix(fileURL, "/api/uploads/")
	if !ok {
		return nil // Bizim serve ettiğimiz bir dosya değil
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}

	err := os.Remove(filepath.Join(s.uploadDir, rel))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// sanitizeFilename, dosya adını güvenli hale getirir.
// Path traversal saldırılarını önler (../../etc/passwd gibi).
func sanitizeFilename(name string) string {
	// Sadece dosya adını al (dizin yolunu kaldır)
	name = filepath.Base(name)

	// Tehlikeli karakterleri kaldır
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '\x00' {
			return -1 // Karakteri sil
		}
		return r
	}, name)

	if name == "" || name == "." || name == ".." {
		name = "unnamed"
	}

	return name
}
