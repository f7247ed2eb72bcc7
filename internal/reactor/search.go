package reactor

import (
	"context"
	"strings"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/model"
	"github.com/SangJLee1103/InstagramClone/internal/service"
)

// SearchAction 为搜索页的外部意图
type SearchAction interface{ searchAction() }

type SearchFetchUsers struct{}
type SearchQuery struct{ Query string }

func (SearchFetchUsers) searchAction() {}
func (SearchQuery) searchAction()      {}

type searchMutation interface{ searchMutation() }

type searchSetUsers struct{ users []*model.User }
type searchSetFiltered struct{ users []*model.User }
type searchSetError struct{ message string }

func (searchSetUsers) searchMutation()    {}
func (searchSetFiltered) searchMutation() {}
func (searchSetError) searchMutation()    {}

// SearchState 为搜索页状态。IsSearchMode 定义为过滤结果非空，
// 没有匹配项与没有在搜索不作区分（沿用线上行为）。
type SearchState struct {
	Users         []*model.User
	FilteredUsers []*model.User
	IsSearchMode  bool
	ErrorMessage  string
}

// SearchReactor 驱动搜索页。过滤是纯同步计算，对用户名或全名做
// 大小写不敏感的子串匹配。
type SearchReactor struct {
	*Container[SearchAction, searchMutation, SearchState]
	users service.UserServiceInterface
}

// NewSearchReactor 创建搜索页容器
func NewSearchReactor(users service.UserServiceInterface) *SearchReactor {
	r := &SearchReactor{users: users}
	r.Container = NewContainer(SearchState{}, r.mutate, reduceSearch)
	return r
}

func (r *SearchReactor) mutate(ctx context.Context, action SearchAction, emit func(searchMutation)) {
	switch a := action.(type) {
	case SearchFetchUsers:
		users, err := r.users.FetchUsers(ctx)
		if err != nil {
			emit(searchSetError{errors.UserMessage(err)})
			return
		}
		emit(searchSetUsers{users})
	case SearchQuery:
		query := strings.ToLower(a.Query)
		var filtered []*model.User
		for _, user := range r.CurrentState().Users {
			if strings.Contains(strings.ToLower(user.Username), query) ||
				strings.Contains(strings.ToLower(user.Fullname), query) {
				filtered = append(filtered, user)
			}
		}
		emit(searchSetFiltered{filtered})
	}
}

func reduceSearch(state SearchState, mutation searchMutation) SearchState {
	switch m := mutation.(type) {
	case searchSetUsers:
		state.Users = m.users
	case searchSetFiltered:
		state.FilteredUsers = m.users
		state.IsSearchMode = len(m.users) > 0
	case searchSetError:
		state.ErrorMessage = m.message
	}
	return state
}
