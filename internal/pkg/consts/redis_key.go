package consts

const (
	UserSimpleInfoKey     = "user:simple:info:"
	UserFollowerKey       = "user:follower:"
	UserFollowingKey      = "user:following:"
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	UserFollowDirtyKey    = "user:follow:dirty"
	UserMetrics7DaysKey   = "user:metrics:7days:"
	UserMetrics30DaysKey  = "user:metrics:30days:"
	ProfileViewCountKey   = "user:profile:view:count:"
)

const (
	UserMetricDailyLock = "lock:user:metric:daily:"
)
