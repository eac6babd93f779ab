package services

import (
	"context"
	"fmt"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/repository"
	"github.com/akinalp/playtube/ws"
)

// CommentService, yorum iş mantığı.
//
// Her yazma işlemi (create/update/delete) önce DB'ye kaydedilir,
// SONRA video odasına realtime event gönderilir. Event sayaçları
// (total_comments) her seferinde storage'dan yeniden sayılır.
type CommentService interface {
	Create(ctx context.Context, userID, videoID string, req *models.CreateCommentRequest) (*models.Comment, error)
	ListByVideo(ctx context.Context, videoID, viewerID string, page, limit int) (*models.CommentPage, error)
	Update(ctx context.Context, userID, commentID string, req *models.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, userID, commentID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	userRepo    repository.UserRepository
	publisher   ws.EventPublisher
}

// NewCommentService, constructor.
func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	publisher ws.EventPublisher,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

func (s *commentService) Create(ctx context.Context, userID, videoID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Video var mı? Yoksa yorum da yok.
	if _, err := s.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		VideoID: videoID,
		OwnerID: userID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Event payload'ında owner bilgisi de taşınır — frontend ekstra
	// fetch yapmadan yorumu listeye ekler.
	if owner, err := s.userRepo.GetByID(ctx, userID); err == nil {
		summary := owner.Summary()
		comment.Owner = &summary
	}

	s.emitCommentEvent(ctx, ws.OpCommentAdd, comment)
	return comment, nil
}

func (s *commentService) ListByVideo(ctx context.Context, videoID, viewerID string, page, limit int) (*models.CommentPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return s.commentRepo.ListByVideo(ctx, videoID, viewerID, page, limit)
}

func (s *commentService) Update(ctx context.Context, userID, commentID string, req *models.UpdateCommentRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.OwnerID != userID {
		return nil, fmt.Errorf("%w: you do not own this comment", pkg.ErrForbidden)
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.emitCommentEvent(ctx, ws.OpCommentUpdate, comment)
	return comment, nil
}

// Delete, yorumu siler. Yorumun sahibi VEYA videonun sahibi silebilir —
// kanal sahibi kendi videosunun altını moderasyon edebilir.
func (s *commentService) Delete(ctx context.Context, userID, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.OwnerID != userID {
		video, err := s.videoRepo.GetByID(ctx, comment.VideoID)
		if err != nil {
			return err
		}
		if video.OwnerID != userID {
			return fmt.Errorf("%w: you cannot delete this comment", pkg.ErrForbidden)
		}
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	s.emitCommentEvent(ctx, ws.OpCommentDelete, comment)
	return nil
}

// emitCommentEvent, video odasına yorum event'i gönderir.
// Sayaç hatası event'i engellemez — 0 ile gönderilir ve loglanmaz;
// frontend zaten listeden sayabilir.
func (s *commentService) emitCommentEvent(ctx context.Context, op string, comment *models.Comment) {
	total, _ := s.commentRepo.CountByVideo(ctx, comment.VideoID)
	s.publisher.EmitToRoom(ws.VideoRoom(comment.VideoID), ws.Event{
		Op: op,
		Data: ws.CommentEventData{
			Comment:       comment,
			VideoID:       comment.VideoID,
			TotalComments: total,
		},
	})
}
