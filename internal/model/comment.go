package model

import "time"

// Comment 评论创建后不可变，作者信息在写入时快照（不再回查）
type Comment struct {
	ID              string
	UID             string
	Username        string
	ProfileImageURL string
	Text            string
	Timestamp       time.Time
}

// Fields 返回写入文档库的字段
func (c *Comment) Fields() map[string]interface{} {
	return map[string]interface{}{
		"uid":             c.UID,
		"username":        c.Username,
		"profileImageUrl": c.ProfileImageURL,
		"comment":         c.Text,
		"timestamp":       c.Timestamp,
	}
}

// ParseComment 从原始文档字段解析评论
func ParseComment(id string, fields map[string]interface{}) (*Comment, error) {
	r := newFieldReader(fields)
	comment := &Comment{
		ID:              id,
		UID:             r.str("uid"),
		Username:        r.str("username"),
		ProfileImageURL: r.optStr("profileImageUrl"),
		Text:            r.str("comment"),
		Timestamp:       r.timeAt("timestamp"),
	}
	if err := r.finish("comment"); err != nil {
		return nil, err
	}
	return comment, nil
}
