package service

import (
	"context"
	"sort"
	"time"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/session"
	"github.com/SangJLee1103/InstagramClone/internal/store"
	"github.com/SangJLee1103/InstagramClone/internal/util"

	"go.uber.org/zap"
)

// PostService 处理帖子的创建、读取与点赞
type PostService struct {
	docs     store.DocumentStore
	uploader ImageUploaderInterface
	session  *session.Manager
}

// NewPostService 创建一个新的 PostService 实例
func NewPostService(docs store.DocumentStore, uploader ImageUploaderInterface, sess *session.Manager) *PostService {
	return &PostService{docs: docs, uploader: uploader, session: sess}
}

// UploadPost 发布帖子：先上传图片，再写入带所有者快照的帖子文档
func (s *PostService) UploadPost(ctx context.Context, caption string, image []byte) (*model.Post, error) {
	user, ok := s.session.Current()
	if !ok {
		return nil, errors.New(errors.ErrMissingToken, "no session user")
	}

	imageURL, err := s.uploader.UploadImage(ctx, image)
	if err != nil {
		return nil, errors.From(err)
	}

	post := &model.Post{
		OwnerUID:      user.UID,
		OwnerUsername: user.Username,
		OwnerImageURL: user.ProfileImageURL,
		ImageURL:      imageURL,
		Caption:       caption,
		Likes:         0,
		Timestamp:     time.Now(),
	}

	id, err := s.docs.Add(ctx, store.CollectionPosts, post.Fields())
	if err != nil {
		return nil, errors.From(err)
	}
	post.PostID = id

	util.Logger.Info("post uploaded", zap.String("postId", id), zap.String("ownerUid", user.UID))
	return post, nil
}

// FetchPosts 按时间倒序读取全部帖子
func (s *PostService) FetchPosts(ctx context.Context) ([]*model.Post, error) {
	docs, err := s.docs.List(ctx, store.CollectionPosts, store.OrderByDesc("timestamp"))
	if err != nil {
		return nil, errors.From(err)
	}
	return parsePosts(docs)
}

// FetchPostsForUser 读取某个用户的全部帖子。过滤与排序分开做，
// 排序在客户端完成，避免要求文档库建复合索引。
func (s *PostService) FetchPostsForUser(ctx context.Context, uid string) ([]*model.Post, error) {
	docs, err := s.docs.List(ctx, store.CollectionPosts, store.WhereEq("ownerUid", uid))
	if err != nil {
		return nil, errors.From(err)
	}

	posts, err := parsePosts(docs)
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})
	return posts, nil
}

// FetchPost 读取单个帖子
func (s *PostService) FetchPost(ctx context.Context, postID string) (*model.Post, error) {
	fields, err := s.docs.Get(ctx, store.CollectionPosts, postID)
	if err != nil {
		return nil, errors.From(err)
	}
	post, err := model.ParsePost(postID, fields)
	if err != nil {
		return nil, errors.From(err)
	}
	return post, nil
}

// LikePost 点赞：依次执行计数更新、帖子侧成员记录、用户侧成员记录三次写入
func (s *PostService) LikePost(ctx context.Context, post *model.Post) error {
	uid, err := s.session.UID()
	if err != nil {
		return errors.From(err)
	}

	if err := s.docs.Update(ctx, store.CollectionPosts, post.PostID, store.Fields{"likes": post.Likes + 1}); err != nil {
		return errors.From(err)
	}
	if err := s.docs.Set(ctx, store.PostLikesPath(post.PostID), uid, store.Fields{}); err != nil {
		return errors.From(err)
	}
	if err := s.docs.Set(ctx, store.UserLikesPath(uid), post.PostID, store.Fields{}); err != nil {
		return errors.From(err)
	}
	return nil
}

// UnlikePost 取消点赞。计数已为零时拒绝递减，不做任何写入。
func (s *PostService) UnlikePost(ctx context.Context, post *model.Post) error {
	uid, err := s.session.UID()
	if err != nil {
		return errors.From(err)
	}

	if post.Likes <= 0 {
		util.Logger.Warn("unlike refused: like count already zero", zap.String("postId", post.PostID))
		return nil
	}

	if err := s.docs.Update(ctx, store.CollectionPosts, post.PostID, store.Fields{"likes": post.Likes - 1}); err != nil {
		return errors.From(err)
	}
	if err := s.docs.Delete(ctx, store.PostLikesPath(post.PostID), uid); err != nil {
		return errors.From(err)
	}
	if err := s.docs.Delete(ctx, store.UserLikesPath(uid), post.PostID); err != nil {
		return errors.From(err)
	}
	return nil
}

// DidLike 判断当前用户是否点赞过该帖子，任何读取失败都按未点赞处理
func (s *PostService) DidLike(ctx context.Context, postID string) (bool, error) {
	uid, err := s.session.UID()
	if err != nil {
		return false, nil
	}

	liked, err := s.docs.Exists(ctx, store.UserLikesPath(uid), postID)
	if err != nil {
		return false, nil
	}
	return liked, nil
}

func parsePosts(docs []store.Document) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(docs))
	for _, doc := range docs {
		post, err := model.ParsePost(doc.ID, doc.Fields)
		if err != nil {
			return nil, errors.From(err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

type PostServiceInterface interface {
	UploadPost(ctx context.Context, caption string, image []byte) (*model.Post, error)
	FetchPosts(ctx context.Context) ([]*model.Post, error)
	FetchPostsForUser(ctx context.Context, uid string) ([]*model.Post, error)
	FetchPost(ctx context.Context, postID string) (*model.Post, error)
	LikePost(ctx context.Context, post *model.Post) error
	UnlikePost(ctx context.Context, post *model.Post) error
	DidLike(ctx context.Context, postID string) (bool, error)
}

var _ PostServiceInterface = (*PostService)(nil)
