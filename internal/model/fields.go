package model

import (
	"time"

	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/util"

	"go.uber.org/zap"
)

// fieldReader 按字段类型读取原始文档数据，记录缺失与被默认值填充的字段。
// 必填字段缺失会使解析失败（ErrMalformedRecord），可选字段的默认值会被
// 显式记录，绝不静默丢弃。
type fieldReader struct {
	fields    map[string]interface{}
	missing   []string
	defaulted []string
}

func newFieldReader(fields map[string]interface{}) *fieldReader {
	return &fieldReader{fields: fields}
}

func (r *fieldReader) str(key string) string {
	if v, ok := r.fields[key].(string); ok && v != "" {
		return v
	}
	r.missing = append(r.missing, key)
	return ""
}

func (r *fieldReader) optStr(key string) string {
	if v, ok := r.fields[key].(string); ok {
		return v
	}
	r.defaulted = append(r.defaulted, key)
	return ""
}

func (r *fieldReader) optInt(key string) int {
	switch v := r.fields[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	r.defaulted = append(r.defaulted, key)
	return 0
}

func (r *fieldReader) timeAt(key string) time.Time {
	switch v := r.fields[key].(type) {
	case time.Time:
		return v
	case string:
		// JSON 后端以 RFC3339 字符串传输时间戳
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	}
	r.missing = append(r.missing, key)
	return time.Time{}
}

// finish 在解析结束时汇总结果：必填字段缺失即失败，默认值填充仅记录日志。
func (r *fieldReader) finish(record string) error {
	if len(r.defaulted) > 0 {
		util.Logger.Debug("document fields defaulted",
			zap.String("record", record),
			zap.Strings("fields", r.defaulted))
	}
	if len(r.missing) > 0 {
		return errors.New(errors.ErrMalformedRecord,
			record+" document missing required fields: "+joinFields(r.missing))
	}
	return nil
}

func joinFields(fields []string) string {
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += ", "
		}
		out += f
	}
	return out
}
