package reactor

import (
	"context"
	"sync"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/service"
)

// FeedAction 为首页信息流的全部外部意图
type FeedAction interface{ feedAction() }

type FeedFetchPosts struct{}
type FeedRefresh struct{}
type FeedCheckIfUserLikedPosts struct{}

func (FeedFetchPosts) feedAction()            {}
func (FeedRefresh) feedAction()               {}
func (FeedCheckIfUserLikedPosts) feedAction() {}

type feedMutation interface{ feedMutation() }

type feedSetPosts struct{ posts []*model.Post }
type feedSetLikeStatus struct {
	postID  string
	didLike bool
}
type feedSetError struct{ message string }

func (feedSetPosts) feedMutation()      {}
func (feedSetLikeStatus) feedMutation() {}
func (feedSetError) feedMutation()      {}

// FeedState 为信息流状态
type FeedState struct {
	Posts        []*model.Post
	ErrorMessage string
}

// FeedReactor 驱动信息流。两种互斥模式在构造时固定：列表模式拉取全量
// 帖子，置顶模式只展示传入的单个帖子。
type FeedReactor struct {
	*Container[FeedAction, feedMutation, FeedState]
	posts  service.PostServiceInterface
	pinned *model.Post
}

// NewFeedReactor 创建列表模式的信息流容器
func NewFeedReactor(posts service.PostServiceInterface) *FeedReactor {
	r := &FeedReactor{posts: posts}
	r.Container = NewContainer(FeedState{}, r.mutate, reduceFeed)
	return r
}

// NewPinnedFeedReactor 创建置顶模式的信息流容器，只展示 post 一个帖子
func NewPinnedFeedReactor(posts service.PostServiceInterface, post *model.Post) *FeedReactor {
	r := &FeedReactor{posts: posts, pinned: post}
	r.Container = NewContainer(FeedState{}, r.mutate, reduceFeed)
	return r
}

func (r *FeedReactor) mutate(ctx context.Context, action FeedAction, emit func(feedMutation)) {
	switch action.(type) {
	case FeedFetchPosts, FeedRefresh:
		if r.pinned != nil {
			emit(feedSetPosts{[]*model.Post{r.pinned}})
			return
		}
		posts, err := r.posts.FetchPosts(ctx)
		if err != nil {
			emit(feedSetError{errors.UserMessage(err)})
			return
		}
		emit(feedSetPosts{posts})
	case FeedCheckIfUserLikedPosts:
		r.checkIfUserLikedPosts(ctx, emit)
	}
}

// checkIfUserLikedPosts 对当前状态里的每个帖子并发发起一次点赞查询，
// 结果按帖子ID折叠，完成顺序不影响最终状态。
func (r *FeedReactor) checkIfUserLikedPosts(ctx context.Context, emit func(feedMutation)) {
	posts := r.CurrentState().Posts

	var wg sync.WaitGroup
	for _, post := range posts {
		wg.Add(1)
		go func(post *model.Post) {
			defer wg.Done()
			didLike, _ := r.posts.DidLike(ctx, post.PostID)
			emit(feedSetLikeStatus{postID: post.PostID, didLike: didLike})
		}(post)
	}
	wg.Wait()
}

func reduceFeed(state FeedState, mutation feedMutation) FeedState {
	switch m := mutation.(type) {
	case feedSetPosts:
		state.Posts = m.posts
	case feedSetLikeStatus:
		posts := make([]*model.Post, len(state.Posts))
		for i, post := range state.Posts {
			if post.PostID == m.postID {
				updated := *post
				updated.DidLike = m.didLike
				posts[i] = &updated
			} else {
				posts[i] = post
			}
		}
		state.Posts = posts
	case feedSetError:
		state.ErrorMessage = m.message
	}
	return state
}
