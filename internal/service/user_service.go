package service

import (
	"context"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/session"
	"github.com/SangJLee1103/InstagramClone/internal/store"
	"github.com/SangJLee1103/InstagramClone/internal/util"

	"go.uber.org/zap"
)

// UserService 处理用户读取与关注关系
type UserService struct {
	docs    store.DocumentStore
	session *session.Manager
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(docs store.DocumentStore, sess *session.Manager) *UserService {
	return &UserService{docs: docs, session: sess}
}

// FetchUser 读取单个用户
func (s *UserService) FetchUser(ctx context.Context, uid string) (*model.User, error) {
	fields, err := s.docs.Get(ctx, store.CollectionUsers, uid)
	if err != nil {
		if errors.Is(err, errors.ErrResourceNotFound) {
			return nil, errors.Wrap(errors.ErrUserNotFound, "user not found", err)
		}
		return nil, errors.From(err)
	}
	user, err := model.ParseUser(fields)
	if err != nil {
		return nil, errors.From(err)
	}
	return user, nil
}

// FetchUsers 读取全部用户（搜索页）
func (s *UserService) FetchUsers(ctx context.Context) ([]*model.User, error) {
	docs, err := s.docs.List(ctx, store.CollectionUsers)
	if err != nil {
		return nil, errors.From(err)
	}

	users := make([]*model.User, 0, len(docs))
	for _, doc := range docs {
		user, err := model.ParseUser(doc.Fields)
		if err != nil {
			return nil, errors.From(err)
		}
		users = append(users, user)
	}
	return users, nil
}

// Follow 建立双向关注边：先写当前用户的 following 记录，再写对方的
// followers 记录。两条记录必须同时存在，先写失败则整体失败。
func (s *UserService) Follow(ctx context.Context, uid string) error {
	currentUID, err := s.session.UID()
	if err != nil {
		return errors.From(err)
	}

	if err := s.docs.Set(ctx, store.UserFollowingPath(currentUID), uid, store.Fields{}); err != nil {
		return errors.From(err)
	}
	if err := s.docs.Set(ctx, store.UserFollowersPath(uid), currentUID, store.Fields{}); err != nil {
		util.Logger.Error("follow: followers-side record failed, graph may be inconsistent",
			zap.Error(err), zap.String("uid", uid), zap.String("currentUid", currentUID))
		return errors.From(err)
	}
	return nil
}

// Unfollow 删除双向关注边的两条记录
func (s *UserService) Unfollow(ctx context.Context, uid string) error {
	currentUID, err := s.session.UID()
	if err != nil {
		return errors.From(err)
	}

	if err := s.docs.Delete(ctx, store.UserFollowingPath(currentUID), uid); err != nil {
		return errors.From(err)
	}
	if err := s.docs.Delete(ctx, store.UserFollowersPath(uid), currentUID); err != nil {
		util.Logger.Error("unfollow: followers-side record failed, graph may be inconsistent",
			zap.Error(err), zap.String("uid", uid), zap.String("currentUid", currentUID))
		return errors.From(err)
	}
	return nil
}

// IsFollowed 判断当前用户是否已关注 uid
func (s *UserService) IsFollowed(ctx context.Context, uid string) (bool, error) {
	currentUID, err := s.session.UID()
	if err != nil {
		return false, errors.From(err)
	}

	followed, err := s.docs.Exists(ctx, store.UserFollowingPath(currentUID), uid)
	if err != nil {
		return false, errors.From(err)
	}
	return followed, nil
}

// FetchUserStats 按需聚合粉丝数、关注数与帖子数
func (s *UserService) FetchUserStats(ctx context.Context, uid string) (model.UserStats, error) {
	followers, err := s.docs.Count(ctx, store.UserFollowersPath(uid))
	if err != nil {
		return model.UserStats{}, errors.From(err)
	}
	following, err := s.docs.Count(ctx, store.UserFollowingPath(uid))
	if err != nil {
		return model.UserStats{}, errors.From(err)
	}
	posts, err := s.docs.Count(ctx, store.CollectionPosts, store.WhereEq("ownerUid", uid))
	if err != nil {
		return model.UserStats{}, errors.From(err)
	}

	return model.UserStats{
		Followers: followers,
		Following: following,
		Posts:     posts,
	}, nil
}

type UserServiceInterface interface {
	FetchUser(ctx context.Context, uid string) (*model.User, error)
	FetchUsers(ctx context.Context) ([]*model.User, error)
	Follow(ctx context.Context, uid string) error
	Unfollow(ctx context.Context, uid string) error
	IsFollowed(ctx context.Context, uid string) (bool, error)
	FetchUserStats(ctx context.Context, uid string) (model.UserStats, error)
}

var _ UserServiceInterface = (*UserService)(nil)
