package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/store"
)

// Store 把 Cloud Firestore 适配为 DocumentStore。集合路径直接使用
// 斜杠分隔的嵌套路径（如 posts/{id}/comments）。
type Store struct {
	client *firestore.Client
}

// NewStore 创建 Firestore 客户端。credentialsFile 为空时使用
// 应用默认凭据。
func NewStore(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "create firestore client", err)
	}
	return &Store{client: client}, nil
}

// Close 释放底层客户端
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Fields, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, classify(err)
	}
	return snap.Data(), nil
}

func (s *Store) List(ctx context.Context, collection string, opts ...store.QueryOption) ([]store.Document, error) {
	iter := s.buildQuery(collection, opts).Documents(ctx)
	defer iter.Stop()

	var docs []store.Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify(err)
		}
		docs = append(docs, store.Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}
	return docs, nil
}

func (s *Store) Count(ctx context.Context, collection string, opts ...store.QueryOption) (int, error) {
	iter := s.buildQuery(collection, opts).Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, classify(err)
		}
		count++
	}
	return count, nil
}

func (s *Store) Exists(ctx context.Context, collection, id string) (bool, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, classify(err)
	}
	return snap.Exists(), nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields store.Fields) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, fields); err != nil {
		return classify(err)
	}
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, fields store.Fields) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", classify(err)
	}
	return ref.ID, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields store.Fields) error {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, fields, firestore.MergeAll); err != nil {
		return classify(err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return classify(err)
	}
	return nil
}

func (s *Store) buildQuery(collection string, opts []store.QueryOption) firestore.Query {
	spec := store.BuildQuery(opts)
	q := s.client.Collection(collection).Query
	for _, w := range spec.Wheres {
		q = q.Where(w.Field, "==", w.Value)
	}
	if spec.OrderField != "" {
		dir := firestore.Asc
		if spec.Descending {
			dir = firestore.Desc
		}
		q = q.OrderBy(spec.OrderField, dir)
	}
	return q
}

// classify 在边界上把 Firestore RPC 错误归类到本仓库的错误码
func classify(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return errors.Wrap(errors.ErrResourceNotFound, "document not found", err)
	case codes.DeadlineExceeded:
		return errors.Wrap(errors.ErrTimeout, "firestore call timed out", err)
	case codes.Unavailable:
		return errors.Wrap(errors.ErrNetwork, "firestore unavailable", err)
	case codes.Unauthenticated:
		return errors.Wrap(errors.ErrTokenExpired, "firestore credentials rejected", err)
	default:
		return errors.Wrap(errors.ErrInternal, "firestore call failed", err)
	}
}

var _ store.DocumentStore = (*Store)(nil)
