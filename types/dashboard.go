package types

// DashboardStats 首页统计卡片
type DashboardStats struct {
	TotalUsers          int64 `json:"total_users"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
	TotalProducts       int64 `json:"total_products"`
	PointsIssued        int64 `json:"points_issued"`
}

type LoginStatPoint struct {
	Date    string `json:"date"`
	Logins  int64  `json:"logins"`
	Unique  int64  `json:"unique_users"`
	Failure int64  `json:"failures"`
}

type LoginStats struct {
	Range  string           `json:"range"`
	Series []LoginStatPoint `json:"series"`
}

// Panel 单个面板的结果，Error 非空时 Data 为空，不影响其它面板
type Panel[T any] struct {
	Data  *T     `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type PendingReviews struct {
	Count int `json:"count"`
}

type Overview struct {
	Stats          Panel[DashboardStats] `json:"stats"`
	LoginStats     Panel[LoginStats]     `json:"login_stats"`
	PendingReviews Panel[PendingReviews] `json:"pending_reviews"`
}
