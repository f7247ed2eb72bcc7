package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/store"

	"github.com/google/uuid"
)

// Store 为内存文档库实现，主要用于测试与本地开发。
// 同一实例可被多个 goroutine 并发使用。
type Store struct {
	mu    sync.RWMutex
	docs  map[string]map[string]store.Fields // collection path -> id -> fields
	order map[string][]string                // collection path -> insertion order
}

// New 创建一个新的内存文档库实例
func New() *Store {
	return &Store{
		docs:  make(map[string]map[string]store.Fields),
		order: make(map[string][]string),
	}
}

var _ store.DocumentStore = (*Store)(nil)

func (s *Store) Get(ctx context.Context, collection, id string) (store.Fields, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.docs[collection][id]
	if !ok {
		return nil, errors.New(errors.ErrResourceNotFound, "document not found: "+collection+"/"+id)
	}
	return cloneFields(fields), nil
}

func (s *Store) List(ctx context.Context, collection string, opts ...store.QueryOption) ([]store.Document, error) {
	q := store.BuildQuery(opts)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Document
	for _, id := range s.order[collection] {
		fields, ok := s.docs[collection][id]
		if !ok || !matches(fields, q) {
			continue
		}
		out = append(out, store.Document{ID: id, Fields: cloneFields(fields)})
	}

	if q.OrderField != "" {
		sort.SliceStable(out, func(i, j int) bool {
			less := compareValues(out[i].Fields[q.OrderField], out[j].Fields[q.OrderField]) < 0
			if q.Descending {
				return !less
			}
			return less
		})
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, collection string, opts ...store.QueryOption) (int, error) {
	q := store.BuildQuery(opts)

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, fields := range s.docs[collection] {
		if matches(fields, q) {
			count++
		}
	}
	return count, nil
}

func (s *Store) Exists(ctx context.Context, collection, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[collection][id]
	return ok, nil
}

func (s *Store) Set(ctx context.Context, collection, id string, fields store.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, id, fields)
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, fields store.Fields) (string, error) {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, id, fields)
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields store.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.docs[collection][id]
	if !ok {
		return errors.New(errors.ErrResourceNotFound, "document not found: "+collection+"/"+id)
	}
	for k, v := range fields {
		existing[k] = v
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[collection][id]; !ok {
		return nil
	}
	delete(s.docs[collection], id)

	ids := s.order[collection]
	for i, existing := range ids {
		if existing == id {
			s.order[collection] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// put 要求调用方已持有写锁
func (s *Store) put(collection, id string, fields store.Fields) {
	if s.docs[collection] == nil {
		s.docs[collection] = make(map[string]store.Fields)
	}
	if _, ok := s.docs[collection][id]; !ok {
		s.order[collection] = append(s.order[collection], id)
	}
	s.docs[collection][id] = cloneFields(fields)
}

func cloneFields(fields store.Fields) store.Fields {
	out := make(store.Fields, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func matches(fields store.Fields, q store.Query) bool {
	for _, cond := range q.Wheres {
		if fields[cond.Field] != cond.Value {
			return false
		}
	}
	return true
}

func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case int:
		if bv, ok := b.(int); ok {
			return av - bv
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return int(av - bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}
	return 0
}
