package model

import "time"

// Post 结构体表示帖子模型
type Post struct {
	PostID        string
	OwnerUID      string
	OwnerUsername string
	OwnerImageURL string
	ImageURL      string
	Caption       string
	Likes         int
	Timestamp     time.Time

	// DidLike 为当前会话用户的临时状态，不持久化在帖子文档上
	DidLike bool
}

// Fields 返回写入文档库的字段（不含临时状态）
func (p *Post) Fields() map[string]interface{} {
	return map[string]interface{}{
		"ownerUid":      p.OwnerUID,
		"ownerUsername": p.OwnerUsername,
		"ownerImageUrl": p.OwnerImageURL,
		"imageUrl":      p.ImageURL,
		"caption":       p.Caption,
		"likes":         p.Likes,
		"timestamp":     p.Timestamp,
	}
}

// ParsePost 从原始文档字段解析帖子，postID 由文档库分配
func ParsePost(postID string, fields map[string]interface{}) (*Post, error) {
	r := newFieldReader(fields)
	post := &Post{
		PostID:        postID,
		OwnerUID:      r.str("ownerUid"),
		OwnerUsername: r.optStr("ownerUsername"),
		OwnerImageURL: r.optStr("ownerImageUrl"),
		ImageURL:      r.str("imageUrl"),
		Caption:       r.optStr("caption"),
		Likes:         r.optInt("likes"),
		Timestamp:     r.timeAt("timestamp"),
	}
	if err := r.finish("post"); err != nil {
		return nil, err
	}
	return post, nil
}
