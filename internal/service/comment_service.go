package service

import (
	"context"
	"time"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/session"
	"github.com/SangJLee1103/InstagramClone/internal/store"
)

// CommentService 处理帖子评论的写入与读取
type CommentService struct {
	docs    store.DocumentStore
	session *session.Manager
}

// NewCommentService 创建一个新的 CommentService 实例
func NewCommentService(docs store.DocumentStore, sess *session.Manager) *CommentService {
	return &CommentService{docs: docs, session: sess}
}

// UploadComment 写入评论，作者信息取自会话用户的快照。
// 返回值由客户端侧数据构造，不回读刚写入的文档。
func (s *CommentService) UploadComment(ctx context.Context, postID, text string) (*model.Comment, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, errors.New(errors.ErrMissingToken, "no session user")
	}

	comment := &model.Comment{
		UID:             user.UID,
		Username:        user.Username,
		ProfileImageURL: user.ProfileImageURL,
		Text:            text,
		Timestamp:       time.Now(),
	}

	id, err := s.docs.Add(ctx, store.PostCommentsPath(postID), comment.Fields())
	if err != nil {
		return nil, errors.From(err)
	}
	comment.ID = id
	return comment, nil
}

// FetchComments 按时间倒序读取帖子的全部评论
func (s *CommentService) FetchComments(ctx context.Context, postID string) ([]*model.Comment, error) {
	docs, err := s.docs.List(ctx, store.PostCommentsPath(postID), store.OrderByDesc("timestamp"))
	if err != nil {
		return nil, errors.From(err)
	}

	comments := make([]*model.Comment, 0, len(docs))
	for _, doc := range docs {
		comment, err := model.ParseComment(doc.ID, doc.Fields)
		if err != nil {
			return nil, errors.From(err)
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

type CommentServiceInterface interface {
	UploadComment(ctx context.Context, postID, text string) (*model.Comment, error)
	FetchComments(ctx context.Context, postID string) ([]*model.Comment, error)
}

var _ CommentServiceInterface = (*CommentService)(nil)
