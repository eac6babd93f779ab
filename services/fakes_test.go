package services

// Test fake'leri — service testleri gerçek DB yerine in-memory
// repository implementasyonları ve kaydedici bir EventPublisher kullanır.
// Repository katmanının kendi testleri gerçek SQLite ile çalışır.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akinalp/playtube/models"
	"github.com/akinalp/playtube/pkg"
	"github.com/akinalp/playtube/ws"
)

// ─── EventPublisher ───

type emittedEvent struct {
	Room  string
	Event ws.Event
}

// recordingPublisher, emit edilen event'leri sırasıyla kaydeder.
type recordingPublisher struct {
	mu     sync.Mutex
	events []emittedEvent
}

func (p *recordingPublisher) EmitToRoom(room string, event ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, emittedEvent{Room: room, Event: event})
}

func (p *recordingPublisher) EmitToUser(userID string, event ws.Event) {
	p.EmitToRoom(ws.NotificationRoom(userID), event)
}

func (p *recordingPublisher) all() []emittedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]emittedEvent(nil), p.events...)
}

// ─── UserRepository ───

type fakeUserRepo struct {
	users  map[string]*models.User // id → user
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == "" {
		r.nextID++
		user.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return fmt.Errorf("%w: username or email already taken", pkg.ErrAlreadyExists)
		}
	}
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pkg.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	user, ok := r.users[userID]
	if !ok {
		return pkg.ErrNotFound
	}
	user.AvatarURL = avatarURL
	return nil
}

func (r *fakeUserRepo) UpdateCover(ctx context.Context, userID, coverURL string) error {
	user, ok := r.users[userID]
	if !ok {
		return pkg.ErrNotFound
	}
	user.CoverURL = &coverURL
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID, newPasswordHash string) error {
	user, ok := r.users[userID]
	if !ok {
		return pkg.ErrNotFound
	}
	user.PasswordHash = newPasswordHash
	return nil
}

// ─── SessionRepository ───

type fakeSessionRepo struct {
	sessions map[string]*models.Session // id → session
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	r.nextID++
	session.ID = fmt.Sprintf("session-%d", r.nextID)
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	for _, s := range r.sessions {
		if s.RefreshTokenHash == tokenHash {
			return s, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return pkg.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// ─── PasswordResetRepository ───

type fakeResetRepo struct {
	resets map[string]*models.PasswordReset
	nextID int
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{resets: make(map[string]*models.PasswordReset)}
}

func (r *fakeResetRepo) Create(ctx context.Context, reset *models.PasswordReset) error {
	r.nextID++
	reset.ID = fmt.Sprintf("reset-%d", r.nextID)
	r.resets[reset.ID] = reset
	return nil
}

func (r *fakeResetRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordReset, error) {
	for _, reset := range r.resets {
		if reset.TokenHash == tokenHash {
			return reset, nil
		}
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeResetRepo) MarkUsed(ctx context.Context, id string) error {
	reset, ok := r.resets[id]
	if !ok || reset.UsedAt != nil {
		return pkg.ErrNotFound
	}
	now := time.Now()
	reset.UsedAt = &now
	return nil
}

func (r *fakeResetRepo) InvalidateForUser(ctx context.Context, userID string) error {
	for id, reset := range r.resets {
		if reset.UserID == userID && reset.UsedAt == nil {
			delete(r.resets, id)
		}
	}
	return nil
}

// ─── VideoRepository ───

type fakeVideoRepo struct {
	videos    map[string]*models.Video
	lastQuery models.VideoListQuery
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[string]*models.Video)}
}

func (r *fakeVideoRepo) Create(ctx context.Context, video *models.Video) error {
	if video.ID == "" {
		video.ID = fmt.Sprintf("video-%d", len(r.videos)+1)
	}
	r.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) GetByID(ctx context.Context, id string) (*models.Video, error) {
	if video, ok := r.videos[id]; ok {
		return video, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeVideoRepo) List(ctx context.Context, q models.VideoListQuery) (*models.VideoPage, error) {
	r.lastQuery = q

	var videos []*models.Video
	for _, v := range r.videos {
		if q.OwnerID != "" && v.OwnerID != q.OwnerID {
			continue
		}
		if !q.IncludeUnpublished && !v.IsPublished {
			continue
		}
		videos = append(videos, v)
	}
	return &models.VideoPage{Videos: videos, Total: len(videos), Page: q.Page, Limit: q.Limit}, nil
}

func (r *fakeVideoRepo) Update(ctx context.Context, video *models.Video) error {
	if _, ok := r.videos[video.ID]; !ok {
		return pkg.ErrNotFound
	}
	r.videos[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) Delete(ctx context.Context, id string) error {
	delete(r.videos, id)
	return nil
}

func (r *fakeVideoRepo) TogglePublish(ctx context.Context, id string) (bool, error) {
	video, ok := r.videos[id]
	if !ok {
		return false, pkg.ErrNotFound
	}
	video.IsPublished = !video.IsPublished
	return video.IsPublished, nil
}

func (r *fakeVideoRepo) IncrementViews(ctx context.Context, id string) error { return nil }

func (r *fakeVideoRepo) RecordWatch(ctx context.Context, userID, videoID string) error { return nil }

func (r *fakeVideoRepo) GetWatchHistory(ctx context.Context, userID string, limit int) ([]*models.WatchHistoryEntry, error) {
	return nil, nil
}

func (r *fakeVideoRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	return 0, nil
}

func (r *fakeVideoRepo) SumViewsByOwner(ctx context.Context, ownerID string) (int64, error) {
	return 0, nil
}

// ─── CommentRepository ───

type fakeCommentRepo struct {
	comments map[string]*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*models.Comment)}
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = fmt.Sprintf("comment-%d", len(r.comments)+1)
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	if comment, ok := r.comments[id]; ok {
		return comment, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *fakeCommentRepo) ListByVideo(ctx context.Context, videoID, viewerID string, page, limit int) (*models.CommentPage, error) {
	return &models.CommentPage{Page: page, Limit: limit}, nil
}

func (r *fakeCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return pkg.ErrNotFound
	}
	r.comments[comment.ID] = comment
	return nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) CountByVideo(ctx context.Context, videoID string) (int, error) {
	count := 0
	for _, c := range r.comments {
		if c.VideoID == videoID {
			count++
		}
	}
	return count, nil
}

// ─── ReactionRepository ───

// fakeReactionRepo, gerçek toggle state machine'in in-memory kopyası.
type fakeReactionRepo struct {
	reactions map[string]models.ReactionKind // "<target>:<id>:<user>" → kind
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{reactions: make(map[string]models.ReactionKind)}
}

func reactionKey(target models.ReactionTarget, targetID, userID string) string {
	return string(target) + ":" + targetID + ":" + userID
}

func (r *fakeReactionRepo) Toggle(ctx context.Context, target models.ReactionTarget, targetID, userID string, kind models.ReactionKind) (*models.ToggleResult, error) {
	key := reactionKey(target, targetID, userID)
	current, exists := r.reactions[key]

	added := true
	if exists && current == kind {
		delete(r.reactions, key)
		added = false
	} else {
		r.reactions[key] = kind
	}

	counts, _ := r.Counts(ctx, target, targetID)
	return &models.ToggleResult{Added: added, Kind: kind, Counts: *counts}, nil
}

func (r *fakeReactionRepo) Counts(ctx context.Context, target models.ReactionTarget, targetID string) (*models.ReactionCounts, error) {
	prefix := string(target) + ":" + targetID + ":"
	counts := &models.ReactionCounts{}
	for key, kind := range r.reactions {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			if kind == models.ReactionLike {
				counts.TotalLike++
			} else {
				counts.TotalUnlike++
			}
		}
	}
	return counts, nil
}

func (r *fakeReactionRepo) Get(ctx context.Context, target models.ReactionTarget, targetID, userID string) (*models.Reaction, error) {
	kind, ok := r.reactions[reactionKey(target, targetID, userID)]
	if !ok {
		return nil, pkg.ErrNotFound
	}
	return &models.Reaction{TargetType: target, TargetID: targetID, UserID: userID, Kind: kind}, nil
}

func (r *fakeReactionRepo) ListLikedVideos(ctx context.Context, userID string, limit int) ([]*models.Video, error) {
	return nil, nil
}

func (r *fakeReactionRepo) CountLikesForOwner(ctx context.Context, ownerID string) (int, error) {
	return 0, nil
}

// ─── SubscriptionRepository ───

type fakeSubscriptionRepo struct {
	subs map[string]bool // "<subscriber>:<channel>" → true
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]bool)}
}

func subKey(subscriberID, channelID string) string {
	return subscriberID + ":" + channelID
}

func (r *fakeSubscriptionRepo) Toggle(ctx context.Context, subscriberID, channelID string) (*models.SubscriptionToggleResult, error) {
	key := subKey(subscriberID, channelID)
	subscribed := !r.subs[key]
	if subscribed {
		r.subs[key] = true
	} else {
		delete(r.subs, key)
	}
	total, _ := r.CountSubscribers(ctx, channelID)
	return &models.SubscriptionToggleResult{Subscribed: subscribed, TotalSubscribers: total}, nil
}

func (r *fakeSubscriptionRepo) IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error) {
	return r.subs[subKey(subscriberID, channelID)], nil
}

func (r *fakeSubscriptionRepo) CountSubscribers(ctx context.Context, channelID string) (int, error) {
	ids, _ := r.ListSubscriberIDs(ctx, channelID)
	return len(ids), nil
}

func (r *fakeSubscriptionRepo) CountSubscribedChannels(ctx context.Context, subscriberID string) (int, error) {
	count := 0
	prefix := subscriberID + ":"
	for key := range r.subs {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubscriptionRepo) ListSubscribers(ctx context.Context, channelID string) ([]*models.ChannelSubscriber, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriberID string) ([]*models.SubscribedChannel, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) ListSubscriberIDs(ctx context.Context, channelID string) ([]string, error) {
	var ids []string
	for key := range r.subs {
		suffix := ":" + channelID
		if len(key) > len(suffix) && key[len(key)-len(suffix):] == suffix {
			ids = append(ids, key[:len(key)-len(suffix)])
		}
	}
	return ids, nil
}

// ─── NotificationRepository ───

type fakeNotificationRepo struct {
	created []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) CreateBatch(ctx context.Context, notifications []*models.Notification) error {
	for i, n := range notifications {
		n.ID = fmt.Sprintf("notif-%d", len(r.created)+i+1)
	}
	r.created = append(r.created, notifications...)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, page, limit int) (*models.NotificationPage, error) {
	return &models.NotificationPage{Page: page, Limit: limit}, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, userID, notificationID string) error {
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	return nil
}
