package emulator

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SangJLee1103/InstagramClone/config"
	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/storage"
	"github.com/SangJLee1103/InstagramClone/internal/store"
	"github.com/SangJLee1103/InstagramClone/internal/store/memory"
	"github.com/SangJLee1103/InstagramClone/internal/store/rest"
)

func newTestClient(t *testing.T) *rest.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"

	server := NewServer(memory.New(), storage.NewMemoryStorage())
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return rest.NewClient(ts.URL)
}

// TestAccountRoundTrip 测试注册、登录与会话查询的HTTP往返
func TestAccountRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	uid, err := client.CreateAccount(ctx, "user@test.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	current, err := client.CurrentUID(ctx)
	require.NoError(t, err)
	assert.Equal(t, uid, current)

	require.NoError(t, client.SignOut(ctx))
	_, err = client.CurrentUID(ctx)
	assert.True(t, errors.Is(err, errors.ErrMissingToken))

	signedIn, err := client.SignIn(ctx, "user@test.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, uid, signedIn)

	_, err = client.SignIn(ctx, "user@test.com", "wrong")
	assert.True(t, errors.Is(err, errors.ErrWrongCredentials))
}

// TestDocumentRoundTrip 测试文档接口经HTTP的读写、过滤与排序
func TestDocumentRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateAccount(ctx, "user@test.com", "password123")
	require.NoError(t, err)

	base := time.Now()
	require.NoError(t, client.Set(ctx, "posts", "a", store.Fields{"ownerUid": "u1", "timestamp": base.Format(time.RFC3339Nano)}))
	require.NoError(t, client.Set(ctx, "posts", "b", store.Fields{"ownerUid": "u1", "timestamp": base.Add(time.Minute).Format(time.RFC3339Nano)}))
	require.NoError(t, client.Set(ctx, "posts", "c", store.Fields{"ownerUid": "u2", "timestamp": base.Add(2 * time.Minute).Format(time.RFC3339Nano)}))

	fields, err := client.Get(ctx, "posts", "a")
	require.NoError(t, err)
	assert.Equal(t, "u1", fields["ownerUid"])

	docs, err := client.List(ctx, "posts", store.WhereEq("ownerUid", "u1"), store.OrderByDesc("timestamp"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b", docs[0].ID)

	count, err := client.Count(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	exists, err := client.Exists(ctx, "posts", "c")
	require.NoError(t, err)
	assert.True(t, exists)

	id, err := client.Add(ctx, "posts", store.Fields{"ownerUid": "u3"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, client.Update(ctx, "posts", "a", store.Fields{"caption": "hello"}))
	fields, err = client.Get(ctx, "posts", "a")
	require.NoError(t, err)
	assert.Equal(t, "hello", fields["caption"])

	require.NoError(t, client.Delete(ctx, "posts", "a"))
	_, err = client.Get(ctx, "posts", "a")
	assert.True(t, errors.Is(err, errors.ErrResourceNotFound))
}

// TestDocumentsRequireSession 测试未登录时文档接口拒绝访问
func TestDocumentsRequireSession(t *testing.T) {
	client := newTestClient(t)
	_, err := client.Get(context.Background(), "posts", "a")
	assert.True(t, errors.Is(err, errors.ErrMissingToken))
}

// TestBlobUpload 测试对象上传返回可访问URL
func TestBlobUpload(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateAccount(ctx, "user@test.com", "password123")
	require.NoError(t, err)

	url, err := client.Upload(ctx, "profile_images/x.jpg", []byte{0xff, 0xd8}, "image/jpeg")
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}
