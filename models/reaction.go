package models

import "fmt"

// ReactionKind, bir reaksiyonun türü: like veya dislike.
// Bir kullanıcının bir hedef üzerinde aynı anda tek reaksiyonu olabilir —
// bu, reactions tablosundaki UNIQUE(target_type, target_id, user_id)
// kısıtıyla veritabanı seviyesinde garanti edilir.
type ReactionKind string

// İzin verilen ReactionKind değerleri.
const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Valid, kind'ın bilinen bir değer olup olmadığını kontrol eder.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// ReactionTarget, reaksiyon verilebilen varlık türü.
type ReactionTarget string

// İzin verilen ReactionTarget değerleri.
const (
	TargetVideo   ReactionTarget = "video"
	TargetComment ReactionTarget = "comment"
	TargetTweet   ReactionTarget = "tweet"
)

// Valid, target'ın bilinen bir değer olup olmadığını kontrol eder.
func (t ReactionTarget) Valid() bool {
	return t == TargetVideo || t == TargetComment || t == TargetTweet
}

// ParseReactionTarget, string'den ReactionTarget üretir.
func ParseReactionTarget(s string) (ReactionTarget, error) {
	t := ReactionTarget(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown reaction target: %q", s)
	}
	return t, nil
}

// Reaction, tek bir kullanıcının tek bir hedefe reaksiyonu.
// Satır yoksa reaksiyon yoktur — "boş aggregate" diye ayrı bir durum
// tutulmaz, iki sayaç da sıfırsa hiç satır kalmamıştır.
type Reaction struct {
	TargetType ReactionTarget `json:"target_type"`
	TargetID   string         `json:"target_id"`
	UserID     string         `json:"user_id"`
	Kind       ReactionKind   `json:"kind"`
}

// ReactionCounts, bir hedefin güncel like/dislike toplamları.
// Her toggle sonrası storage'dan yeniden sayılır, cache'lenmez.
type ReactionCounts struct {
	TotalLike   int `json:"total_like"`
	TotalUnlike int `json:"total_unlike"`
}

// ToggleResult, bir toggle işleminin sonucu.
// Added=true → reaksiyon eklendi/değişti, false → kaldırıldı.
type ToggleResult struct {
	Added  bool           `json:"added"`
	Kind   ReactionKind   `json:"kind"`
	Counts ReactionCounts `json:"counts"`
}
