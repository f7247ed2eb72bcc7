package reactor

import (
	"context"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/service"
)

// CommentAction 为评论页的外部意图
type CommentAction interface{ commentAction() }

type CommentFetch struct{}
type CommentUpload struct{ Text string }
type CommentSetError struct{ Message string }

func (CommentFetch) commentAction()    {}
func (CommentUpload) commentAction()   {}
func (CommentSetError) commentAction() {}

type commentMutation interface{ commentMutation() }

type commentsFetched struct{ comments []*model.Comment }
type commentAppended struct{ comment *model.Comment }
type commentSetLoading struct{ loading bool }
type commentSetError struct{ message string }

func (commentsFetched) commentMutation()   {}
func (commentAppended) commentMutation()   {}
func (commentSetLoading) commentMutation() {}
func (commentSetError) commentMutation()   {}

// CommentState 为评论页状态
type CommentState struct {
	Comments     []*model.Comment
	IsLoading    bool
	ErrorMessage string
}

// CommentReactor 驱动某个帖子的评论页。拉取到的评论追加到已有列表之后
// 而不是整体替换，乐观追加的新评论因此不会被后续拉取冲掉。
type CommentReactor struct {
	*Container[CommentAction, commentMutation, CommentState]
	comments      service.CommentServiceInterface
	notifications service.NotificationServiceInterface
	post          *model.Post
}

// NewCommentReactor 创建评论页容器
func NewCommentReactor(comments service.CommentServiceInterface, notifications service.NotificationServiceInterface, post *model.Post) *CommentReactor {
	r := &CommentReactor{comments: comments, notifications: notifications, post: post}
	r.Container = NewContainer(CommentState{}, r.mutate, reduceComment)
	return r
}

func (r *CommentReactor) mutate(ctx context.Context, action CommentAction, emit func(commentMutation)) {
	switch a := action.(type) {
	case CommentFetch:
		fetched, err := r.comments.FetchComments(ctx, r.post.PostID)
		if err != nil {
			emit(commentSetError{errors.UserMessage(err)})
			return
		}
		emit(commentsFetched{fetched})
	case CommentUpload:
		emit(commentSetLoading{true})
		r.uploadCommentAndNotify(ctx, a.Text, emit)
		emit(commentSetLoading{false})
	case CommentSetError:
		emit(commentSetError{a.Message})
	}
}

// uploadCommentAndNotify 为三段链：写评论 → 通知帖子所有者 → 追加到
// 本地列表。任一段失败即发出错误并放弃其余段。
func (r *CommentReactor) uploadCommentAndNotify(ctx context.Context, text string, emit func(commentMutation)) {
	comment, err := r.comments.UploadComment(ctx, r.post.PostID, text)
	if err != nil {
		emit(commentSetError{errors.UserMessage(err)})
		return
	}

	if err := r.notifications.Upload(ctx, r.post.OwnerUID, model.NotificationComment, r.post); err != nil {
		emit(commentSetError{errors.UserMessage(err)})
		return
	}

	emit(commentAppended{comment})
}

func reduceComment(state CommentState, mutation commentMutation) CommentState {
	switch m := mutation.(type) {
	case commentsFetched:
		merged := make([]*model.Comment, 0, len(state.Comments)+len(m.comments))
		merged = append(merged, state.Comments...)
		merged = append(merged, m.comments...)
		state.Comments = merged
	case commentAppended:
		state.Comments = append(append([]*model.Comment{}, state.Comments...), m.comment)
	case commentSetLoading:
		state.IsLoading = m.loading
	case commentSetError:
		state.ErrorMessage = m.message
	}
	return state
}
