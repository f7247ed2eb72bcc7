package store

import "context"

// Fields 为文档的原始字段
type Fields = map[string]interface{}

// Document 为带ID的文档快照
type Document struct {
	ID     string
	Fields Fields
}

// DocumentStore 定义远端文档库的最小操作集。实现负责把底层错误在边界上
// 分类为 internal/errors 的错误码，调用方不会看到原始后端错误。
type DocumentStore interface {
	// Get 读取单个文档，不存在时返回 ErrResourceNotFound
	Get(ctx context.Context, collection, id string) (Fields, error)
	// List 按条件列出集合内的文档
	List(ctx context.Context, collection string, opts ...QueryOption) ([]Document, error)
	// Count 统计集合内的文档数
	Count(ctx context.Context, collection string, opts ...QueryOption) (int, error)
	// Exists 判断文档是否存在（成员记录检查）
	Exists(ctx context.Context, collection, id string) (bool, error)
	// Set 以指定ID写入文档
	Set(ctx context.Context, collection, id string, fields Fields) error
	// Add 写入文档并由文档库分配ID
	Add(ctx context.Context, collection string, fields Fields) (string, error)
	// Update 部分更新文档字段
	Update(ctx context.Context, collection, id string, fields Fields) error
	// Delete 删除文档
	Delete(ctx context.Context, collection, id string) error
}

// Authenticator 定义认证提供方的最小操作集
type Authenticator interface {
	CreateAccount(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context) error
	// CurrentUID 返回当前会话用户ID；无会话时返回 ErrMissingToken，
	// 会话过期时返回 ErrTokenExpired。
	CurrentUID(ctx context.Context) (string, error)
}
