package service

import (
	"context"
	"time"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/session"
	"github.com/SangJLee1103/InstagramClone/internal/store"

	"github.com/google/uuid"
)

// NotificationService 处理通知的写入与读取。通知按接收者分子集合存储，
// 文档内冗余一份自身ID以便解析。
type NotificationService struct {
	docs    store.DocumentStore
	session *session.Manager
}

// NewNotificationService 创建一个新的 NotificationService 实例
func NewNotificationService(docs store.DocumentStore, sess *session.Manager) *NotificationService {
	return &NotificationService{docs: docs, session: sess}
}

// Upload 向 toUID 投递一条通知。给自己投递会被静默跳过，
// 行为者信息取自会话用户快照；like/comment 类型附带帖子引用。
func (s *NotificationService) Upload(ctx context.Context, toUID string, typ model.NotificationType, post *model.Post) error {
	user, ok := s.session.Current()
	if !ok {
		return errors.New(errors.ErrMissingToken, "no session user")
	}
	if toUID == user.UID {
		return nil
	}

	n := &model.Notification{
		ID:                  uuid.NewString(),
		UID:                 user.UID,
		Type:                typ,
		Username:            user.Username,
		UserProfileImageURL: user.ProfileImageURL,
		Timestamp:           time.Now(),
	}
	if post != nil {
		n.PostID = post.PostID
		n.PostImageURL = post.ImageURL
	}

	if err := s.docs.Set(ctx, store.UserNotificationsPath(toUID), n.ID, n.Fields()); err != nil {
		return errors.From(err)
	}
	return nil
}

// Fetch 按时间倒序读取当前用户的全部通知
func (s *NotificationService) Fetch(ctx context.Context) ([]*model.Notification, error) {
	uid, err := s.session.UID()
	if err != nil {
		return nil, errors.From(err)
	}

	docs, err := s.docs.List(ctx, store.UserNotificationsPath(uid), store.OrderByDesc("timestamp"))
	if err != nil {
		return nil, errors.From(err)
	}

	notifications := make([]*model.Notification, 0, len(docs))
	for _, doc := range docs {
		n, err := model.ParseNotification(doc.Fields)
		if err != nil {
			return nil, errors.From(err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

type NotificationServiceInterface interface {
	Upload(ctx context.Context, toUID string, typ model.NotificationType, post *model.Post) error
	Fetch(ctx context.Context) ([]*model.Notification, error)
}

var _ NotificationServiceInterface = (*NotificationService)(nil)
