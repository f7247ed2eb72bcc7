package mysqldoc

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/store"
)

// Store 把 MySQL 适配为 DocumentStore：单表 documents 以
// (collection, id) 为主键，字段序列化为 JSON 列。时间字段序列化为
// RFC3339Nano 字符串，字典序即时间序，可直接用于 ORDER BY。
type Store struct {
	db *sql.DB
}

// NewStore 创建一个新的 Store 实例
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema 建表（幂等）
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS documents (
        collection VARCHAR(255) NOT NULL,
        id VARCHAR(255) NOT NULL,
        fields JSON NOT NULL,
        PRIMARY KEY (collection, id)
    )`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return errors.Wrap(errors.ErrInternal, "create documents table", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Fields, error) {
	var raw []byte
	query := `SELECT fields FROM documents WHERE collection = ? AND id = ?`
	err := s.db.QueryRowContext(ctx, query, collection, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrResourceNotFound, "document not found")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "query document", err)
	}
	return decodeFields(raw)
}

func (s *Store) List(ctx context.Context, collection string, opts ...store.QueryOption) ([]store.Document, error) {
	spec := store.BuildQuery(opts)

	var sb strings.Builder
	sb.WriteString(`SELECT id, fields FROM documents WHERE collection = ?`)
	args := []interface{}{collection}
	for _, w := range spec.Wheres {
		fmt.Fprintf(&sb, ` AND JSON_UNQUOTE(JSON_EXTRACT(fields, '$.%s')) = ?`, w.Field)
		args = append(args, fmt.Sprint(w.Value))
	}
	if spec.OrderField != "" {
		fmt.Fprintf(&sb, ` ORDER BY JSON_UNQUOTE(JSON_EXTRACT(fields, '$.%s'))`, spec.OrderField)
		if spec.Descending {
			sb.WriteString(` DESC`)
		}
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "query documents", err)
	}
	defer rows.Close()

	var docs []store.Document
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrInternal, "scan document row", err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, store.Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "iterate document rows", err)
	}
	return docs, nil
}

func (s *Store) Count(ctx context.Context, collection string, opts ...store.QueryOption) (int, error) {
	spec := store.BuildQuery(opts)

	var sb strings.Builder
	sb.WriteString(`SELECT COUNT(*) FROM documents WHERE collection = ?`)
	args := []interface{}{collection}
	for _, w := range spec.Wheres {
		fmt.Fprintf(&sb, ` AND JSON_UNQUOTE(JSON_EXTRACT(fields, '$.%s')) = ?`, w.Field)
		args = append(args, fmt.Sprint(w.Value))
	}

	var count int
	if err := s.db.QueryRowContext(ctx, sb.String(), args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrInternal, "count documents", err)
	}
	return count, nil
}

func (s *Store) Exists(ctx context.Context, collection, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM documents WHERE collection = ? AND id = ?)`
	if err := s.db.QueryRowContext(ctx, query, collection, id).Scan(&exists); err != nil {
		return false, errors.Wrap(errors.ErrInternal, "check document existence", err)
	}
	return exists, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields store.Fields) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "encode document fields", err)
	}
	query := `INSERT INTO documents (collection, id, fields) VALUES (?, ?, ?)
              ON DUPLICATE KEY UPDATE fields = VALUES(fields)`
	if _, err := s.db.ExecContext(ctx, query, collection, id, raw); err != nil {
		return errors.Wrap(errors.ErrInternal, "write document", err)
	}
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, fields store.Fields) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection, id, fields); err != nil {
		return "", err
	}
	return id, nil
}

// Update 做读改写合并。文档只被单个客户端写，不需要行锁。
func (s *Store) Update(ctx context.Context, collection, id string, fields store.Fields) error {
	current, err := s.Get(ctx, collection, id)
	if err != nil {
		return err
	}
	for k, v := range fields {
		current[k] = v
	}
	return s.Set(ctx, collection, id, current)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = ? AND id = ?`
	if _, err := s.db.ExecContext(ctx, query, collection, id); err != nil {
		return errors.Wrap(errors.ErrInternal, "delete document", err)
	}
	return nil
}

func decodeFields(raw []byte) (store.Fields, error) {
	var fields store.Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.Wrap(errors.ErrMalformedRecord, "decode document fields", err)
	}
	return fields, nil
}

var _ store.DocumentStore = (*Store)(nil)
