package services

import (
	"context"
	"fmt"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/repository"
	"github.com/akinalp/playtube/ws"
)

// ReactionService, like/dislike toggle iş mantığı.
//
// Toggle semantiği (üç durum):
//   - Reaksiyon yok + like isteği  → like eklenir        → reaction_add
//   - like var     + like isteği   → like kaldırılır     → reaction_remove
//   - like var     + dislike isteği → dislike'a çevrilir → reaction_add
//
// Event her zaman hedefin bağlı olduğu VIDEO odasına gider — video
// reaksiyonu da, o videonun altındaki yorum reaksiyonu da aynı
// izleyici kitlesini ilgilendirir.
type ReactionService interface {
	Toggle(ctx context.Context, userID string, target models.ReactionTarget, targetID string, kind models.ReactionKind) (*models.ToggleResult, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
	tweetRepo    repository.TweetRepository
	publisher    ws.EventPublisher
}

// NewReactionService, constructor.
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
	publisher ws.EventPublisher,
) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		videoRepo:    videoRepo,
		commentRepo:  commentRepo,
		tweetRepo:    tweetRepo,
		publisher:    publisher,
	}
}

func (s *reactionService) Toggle(ctx context.Context, userID string, target models.ReactionTarget, targetID string, kind models.ReactionKind) (*models.ToggleResult, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: invalid reaction target", pkg.ErrBadRequest)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: invalid reaction kind", pkg.ErrBadRequest)
	}

	// Hedef gerçekten var mı? Reactions tablosu polimorfik olduğu için
	// FK yok — kontrol burada yapılır. roomVideoID, event'in gideceği
	// video odasını belirler (tweet'lerin odası yok).
	roomVideoID, err := s.resolveTarget(ctx, target, targetID)
	if err != nil {
		return nil, err
	}

	result, err := s.reactionRepo.Toggle(ctx, target, targetID, userID, kind)
	if err != nil {
		return nil, err
	}

	if roomVideoID != "" {
		op := ws.OpReactionAdd
		if !result.Added {
			op = ws.OpReactionRemove
		}
		s.publisher.EmitToRoom(ws.VideoRoom(roomVideoID), ws.Event{
			Op: op,
			Data: ws.ReactionEventData{
				TargetType:  string(target),
				TargetID:    targetID,
				ActorID:     userID,
				Kind:        string(result.Kind),
				TotalLike:   result.Counts.TotalLike,
				TotalUnlike: result.Counts.TotalUnlike,
			},
		})
	}

	return result, nil
}

// resolveTarget, hedefin varlığını doğrular ve event'in yayınlanacağı
// video id'sini döner (tweet hedefinde boş string).
func (s *reactionService) resolveTarget(ctx context.Context, target models.ReactionTarget, targetID string) (string, error) {
	switch target {
	case models.TargetVideo:
		if _, err := s.videoRepo.GetByID(ctx, targetID); err != nil {
			return "", err
		}
		return targetID, nil
	case models.TargetComment:
		comment, err := s.commentRepo.GetByID(ctx, targetID)
		if err != nil {
			return "", err
		}
		return comment.VideoID, nil
	case models.TargetTweet:
		if _, err := s.tweetRepo.GetByID(ctx, targetID); err != nil {
			return "", err
		}
		return "", nil
	default:
		return "", fmt.Errorf("%w: invalid reaction target", pkg.ErrBadRequest)
	}
}
