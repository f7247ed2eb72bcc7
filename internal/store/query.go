package store

// Condition 为等值过滤条件
type Condition struct {
	Field string
	Value interface{}
}

// Query 为 List/Count 的查询参数
type Query struct {
	Wheres     []Condition
	OrderField string
	Descending bool
}

// QueryOption 配置查询参数
type QueryOption func(*Query)

// WhereEq 追加一个等值过滤条件
func WhereEq(field string, value interface{}) QueryOption {
	return func(q *Query) {
		q.Wheres = append(q.Wheres, Condition{Field: field, Value: value})
	}
}

// OrderByDesc 按字段倒序排序
func OrderByDesc(field string) QueryOption {
	return func(q *Query) {
		q.OrderField = field
		q.Descending = true
	}
}

// BuildQuery 供各实现聚合查询参数
func BuildQuery(opts []QueryOption) Query {
	var q Query
	for _, opt := range opts {
		opt(&q)
	}
	return q
}
