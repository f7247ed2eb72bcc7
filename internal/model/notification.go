package model

import "time"

// NotificationType 通知类型
type NotificationType int

const (
	NotificationLike NotificationType = iota
	NotificationFollow
	NotificationComment
)

// Message 通知文案
func (t NotificationType) Message() string {
	switch t {
	case NotificationLike:
		return "님이 회원님의 게시물을 좋아합니다."
	case NotificationFollow:
		return "님이 회원님을 팔로우하기 시작했습니다."
	case NotificationComment:
		return "님이 회원님의 게시물에 댓글을 달았습니다."
	}
	return ""
}

// Notification 通知文档。接收者由存储位置（per-recipient 子集合）决定，
// 行为者信息写入时快照。
type Notification struct {
	ID                  string
	UID                 string
	Type                NotificationType
	Username            string
	UserProfileImageURL string
	Timestamp           time.Time

	// 仅 like / comment 类型携带
	PostID       string
	PostImageURL string

	// UserIsFollowed 为临时字段，仅对 follow 类型在列表加载时计算
	UserIsFollowed bool
}

// Fields 返回写入文档库的字段
func (n *Notification) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"id":                  n.ID,
		"uid":                 n.UID,
		"type":                int(n.Type),
		"username":            n.Username,
		"userProfileImageUrl": n.UserProfileImageURL,
		"timestamp":           n.Timestamp,
	}
	if n.PostID != "" {
		fields["postId"] = n.PostID
		fields["postImageUrl"] = n.PostImageURL
	}
	return fields
}

// ParseNotification 从原始文档字段解析通知
func ParseNotification(fields map[string]interface{}) (*Notification, error) {
	r := newFieldReader(fields)
	n := &Notification{
		ID:                  r.str("id"),
		UID:                 r.str("uid"),
		Type:                NotificationType(r.optInt("type")),
		Username:            r.str("username"),
		UserProfileImageURL: r.optStr("userProfileImageUrl"),
		Timestamp:           r.timeAt("timestamp"),
		PostID:              r.optStr("postId"),
		PostImageURL:        r.optStr("postImageUrl"),
	}
	if err := r.finish("notification"); err != nil {
		return nil, err
	}
	return n, nil
}
