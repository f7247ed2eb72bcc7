package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/store"
)

// TestGetMissingDocument 测试读取不存在的文档
func TestGetMissingDocument(t *testing.T) {
	s := New()
	_, err := s.Get(context.Background(), "users", "nope")
	assert.True(t, errors.Is(err, errors.ErrResourceNotFound))
}

// TestSetGetRoundTrip 测试写入后读回且互不共享底层map
func TestSetGetRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	fields := store.Fields{"username": "anna"}
	require.NoError(t, s.Set(ctx, "users", "u1", fields))

	got, err := s.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "anna", got["username"])

	// 修改读回的map不影响库内数据
	got["username"] = "mutated"
	again, err := s.Get(ctx, "users", "u1")
	require.NoError(t, err)
	assert.Equal(t, "anna", again["username"])
}

// TestListFilterAndOrder 测试等值过滤与按时间倒序
func TestListFilterAndOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, s.Set(ctx, "posts", "a", store.Fields{"ownerUid": "u1", "timestamp": base}))
	require.NoError(t, s.Set(ctx, "posts", "b", store.Fields{"ownerUid": "u2", "timestamp": base.Add(time.Minute)}))
	require.NoError(t, s.Set(ctx, "posts", "c", store.Fields{"ownerUid": "u1", "timestamp": base.Add(2 * time.Minute)}))

	docs, err := s.List(ctx, "posts", store.WhereEq("ownerUid", "u1"), store.OrderByDesc("timestamp"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "c", docs[0].ID)
	assert.Equal(t, "a", docs[1].ID)
}

// TestCountAndExists 测试计数与存在性检查
func TestCountAndExists(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "following/u1/user-following", "u2", store.Fields{}))
	require.NoError(t, s.Set(ctx, "following/u1/user-following", "u3", store.Fields{}))

	count, err := s.Count(ctx, "following/u1/user-following")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	exists, err := s.Exists(ctx, "following/u1/user-following", "u2")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, "following/u1/user-following", "u2"))
	exists, err = s.Exists(ctx, "following/u1/user-following", "u2")
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestUpdateMergesFields 测试部分更新只覆盖给定字段
func TestUpdateMergesFields(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "posts", "p1", store.Fields{"caption": "hi", "likes": 0}))
	require.NoError(t, s.Update(ctx, "posts", "p1", store.Fields{"likes": 1}))

	got, err := s.Get(ctx, "posts", "p1")
	require.NoError(t, err)
	assert.Equal(t, "hi", got["caption"])
	assert.Equal(t, 1, got["likes"])
}

// TestAddAssignsUniqueIDs 测试 Add 分配的ID互不相同且保持插入序
func TestAddAssignsUniqueIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	id1, err := s.Add(ctx, "posts", store.Fields{"n": 1})
	require.NoError(t, err)
	id2, err := s.Add(ctx, "posts", store.Fields{"n": 2})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	docs, err := s.List(ctx, "posts")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, id1, docs[0].ID)
	assert.Equal(t, id2, docs[1].ID)
}
