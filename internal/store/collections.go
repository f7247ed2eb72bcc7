package store

// 顶级集合
const (
	CollectionUsers         = "users"
	CollectionPosts         = "posts"
	CollectionFollowers     = "followers"
	CollectionFollowing     = "following"
	CollectionNotifications = "notifications"
)

// 嵌套集合路径。关注关系、点赞均为成员记录（存在即关系），
// 关注是双向成对的两条记录。

func UserFollowingPath(uid string) string {
	return CollectionFollowing + "/" + uid + "/user-following"
}

func UserFollowersPath(uid string) string {
	return CollectionFollowers + "/" + uid + "/user-followers"
}

func PostCommentsPath(postID string) string {
	return CollectionPosts + "/" + postID + "/comments"
}

func PostLikesPath(postID string) string {
	return CollectionPosts + "/" + postID + "/post-likes"
}

func UserLikesPath(uid string) string {
	return CollectionUsers + "/" + uid + "/user-likes"
}

func UserNotificationsPath(uid string) string {
	return CollectionNotifications + "/" + uid + "/user-notifications"
}
