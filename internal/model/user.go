package model

// UserStats 为派生聚合数据，不落库，按需统计
type UserStats struct {
	Followers int
	Following int
	Posts     int
}

// User 结构体表示用户模型
type User struct {
	UID             string
	Email           string
	Fullname        string
	Username        string
	ProfileImageURL string

	// IsFollowed 与 Stats 为临时字段，按屏幕访问重新计算，不持久化
	IsFollowed bool
	Stats      UserStats
}

// IsCurrentUser 判断该用户是否为当前会话用户
func (u *User) IsCurrentUser(sessionUID string) bool {
	return sessionUID != "" && u.UID == sessionUID
}

// Fields 返回写入文档库的字段
func (u *User) Fields() map[string]interface{} {
	return map[string]interface{}{
		"uid":             u.UID,
		"email":           u.Email,
		"fullname":        u.Fullname,
		"username":        u.Username,
		"profileImageUrl": u.ProfileImageURL,
	}
}

// ParseUser 从原始文档字段解析用户
func ParseUser(fields map[string]interface{}) (*User, error) {
	r := newFieldReader(fields)
	user := &User{
		UID:             r.str("uid"),
		Email:           r.str("email"),
		Fullname:        r.str("fullname"),
		Username:        r.str("username"),
		ProfileImageURL: r.optStr("profileImageUrl"),
	}
	if err := r.finish("user"); err != nil {
		return nil, err
	}
	return user, nil
}
