package reactor

import (
	"context"

	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/service"
)

// FeedCellAction 为单个帖子格子的外部意图
type FeedCellAction interface{ feedCellAction() }

type FeedCellLikeTapped struct{}

func (FeedCellLikeTapped) feedCellAction() {}

type feedCellMutation interface{ feedCellMutation() }

type feedCellSetLiked struct{ liked bool }
type feedCellSetLikesCount struct{ count int }

func (feedCellSetLiked) feedCellMutation()      {}
func (feedCellSetLikesCount) feedCellMutation() {}

// FeedCellState 为帖子格子状态，点赞标记与计数在构造时取自帖子快照
type FeedCellState struct {
	Post       *model.Post
	IsLiked    bool
	LikesCount int
}

// FeedCellReactor 驱动单个帖子格子的点赞交互。计数按点按乐观 ±1，
// 外部调用失败不回滚计数（与线上行为一致），只把点赞标记翻回去。
type FeedCellReactor struct {
	*Container[FeedCellAction, feedCellMutation, FeedCellState]
	posts service.PostServiceInterface
}

// NewFeedCellReactor 创建帖子格子容器
func NewFeedCellReactor(posts service.PostServiceInterface, post *model.Post) *FeedCellReactor {
	r := &FeedCellReactor{posts: posts}
	initial := FeedCellState{Post: post, IsLiked: post.DidLike, LikesCount: post.Likes}
	r.Container = NewContainer(initial, r.mutate, reduceFeedCell)
	return r
}

func (r *FeedCellReactor) mutate(ctx context.Context, action FeedCellAction, emit func(feedCellMutation)) {
	switch action.(type) {
	case FeedCellLikeTapped:
		state := r.CurrentState()
		liking := !state.IsLiked

		if liking {
			if err := r.posts.LikePost(ctx, state.Post); err != nil {
				emit(feedCellSetLiked{false})
			} else {
				emit(feedCellSetLiked{true})
			}
			emit(feedCellSetLikesCount{state.LikesCount + 1})
		} else {
			if err := r.posts.UnlikePost(ctx, state.Post); err != nil {
				emit(feedCellSetLiked{true})
			} else {
				emit(feedCellSetLiked{false})
			}
			emit(feedCellSetLikesCount{state.LikesCount - 1})
		}
	}
}

func reduceFeedCell(state FeedCellState, mutation feedCellMutation) FeedCellState {
	switch m := mutation.(type) {
	case feedCellSetLiked:
		state.IsLiked = m.liked
	case feedCellSetLikesCount:
		state.LikesCount = m.count
		if state.LikesCount < 0 {
			state.LikesCount = 0
		}
	}
	return state
}
