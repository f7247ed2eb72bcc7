package reactor

import (
	"context"
	"sync"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/service"
)

// NotificationAction 为通知页的外部意图
type NotificationAction interface{ notificationAction() }

type NotificationFetch struct{}
type NotificationRefresh struct{}
type NotificationFollow struct{ UID string }
type NotificationUnfollow struct{ UID string }
type NotificationFetchPost struct{ PostID string }

func (NotificationFetch) notificationAction()     {}
func (NotificationRefresh) notificationAction()   {}
func (NotificationFollow) notificationAction()    {}
func (NotificationUnfollow) notificationAction()  {}
func (NotificationFetchPost) notificationAction() {}

type notificationMutation interface{ notificationMutation() }

type notifSetList struct{ notifications []*model.Notification }
type notifSetFollowed struct {
	uid      string
	followed bool
}
type notifShowPost struct{ post *model.Post }
type notifSetLoading struct{ loading bool }
type notifSetError struct{ message string }

func (notifSetList) notificationMutation()     {}
func (notifSetFollowed) notificationMutation() {}
func (notifShowPost) notificationMutation()    {}
func (notifSetLoading) notificationMutation()  {}
func (notifSetError) notificationMutation()    {}

// NotificationState 为通知页状态。SelectionSeq 在每次 showPost 折叠时
// 递增，表现层据此区分"新选中"与"仍持有旧选中"，选中信号因此是一次性的。
type NotificationState struct {
	Notifications []*model.Notification
	IsLoading     bool
	ErrorMessage  string
	SelectedPost  *model.Post
	SelectionSeq  uint64
}

// NotificationReactor 驱动通知页
type NotificationReactor struct {
	*Container[NotificationAction, notificationMutation, NotificationState]
	notifications service.NotificationServiceInterface
	users         service.UserServiceInterface
	posts         service.PostServiceInterface
}

// NewNotificationReactor 创建通知页容器
func NewNotificationReactor(notifications service.NotificationServiceInterface, users service.UserServiceInterface, posts service.PostServiceInterface) *NotificationReactor {
	r := &NotificationReactor{notifications: notifications, users: users, posts: posts}
	r.Container = NewContainer(NotificationState{}, r.mutate, reduceNotification)
	return r
}

func (r *NotificationReactor) mutate(ctx context.Context, action NotificationAction, emit func(notificationMutation)) {
	switch a := action.(type) {
	case NotificationFetch, NotificationRefresh:
		r.fetchNotifications(ctx, emit)
	case NotificationFollow:
		if err := r.users.Follow(ctx, a.UID); err != nil {
			emit(notifSetError{errors.UserMessage(err)})
			return
		}
		emit(notifSetFollowed{uid: a.UID, followed: true})
	case NotificationUnfollow:
		if err := r.users.Unfollow(ctx, a.UID); err != nil {
			emit(notifSetError{errors.UserMessage(err)})
			return
		}
		emit(notifSetFollowed{uid: a.UID, followed: false})
	case NotificationFetchPost:
		post, err := r.posts.FetchPost(ctx, a.PostID)
		if err != nil {
			emit(notifSetError{errors.UserMessage(err)})
			return
		}
		emit(notifShowPost{post})
	}
}

// fetchNotifications 拉取列表后，对刚拉取到的每条 follow 类型通知并发
// 查询回关状态，结果按行为者ID折叠。
func (r *NotificationReactor) fetchNotifications(ctx context.Context, emit func(notificationMutation)) {
	emit(notifSetLoading{true})

	notifications, err := r.notifications.Fetch(ctx)
	if err != nil {
		emit(notifSetError{errors.UserMessage(err)})
		emit(notifSetLoading{false})
		return
	}
	emit(notifSetList{notifications})
	emit(notifSetLoading{false})

	var wg sync.WaitGroup
	for _, n := range notifications {
		if n.Type != model.NotificationFollow {
			continue
		}
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			followed, err := r.users.IsFollowed(ctx, uid)
			if err != nil {
				emit(notifSetError{errors.UserMessage(err)})
				return
			}
			emit(notifSetFollowed{uid: uid, followed: followed})
		}(n.UID)
	}
	wg.Wait()
}

func reduceNotification(state NotificationState, mutation notificationMutation) NotificationState {
	switch m := mutation.(type) {
	case notifSetList:
		state.Notifications = m.notifications
	case notifSetFollowed:
		// 回关标记只对 follow 类型有意义，按 (uid, type) 身份匹配，
		// 与到达顺序无关
		notifications := make([]*model.Notification, len(state.Notifications))
		for i, n := range state.Notifications {
			if n.UID == m.uid && n.Type == model.NotificationFollow {
				updated := *n
				updated.UserIsFollowed = m.followed
				notifications[i] = &updated
			} else {
				notifications[i] = n
			}
		}
		state.Notifications = notifications
	case notifShowPost:
		state.SelectedPost = m.post
		state.SelectionSeq++
	case notifSetLoading:
		state.IsLoading = m.loading
	case notifSetError:
		state.ErrorMessage = m.message
	}
	return state
}
