package domain

// MonthBucket is one (year, month) aggregation bucket. Months with zero
// records do not appear; buckets are ordered ascending by (year, month).
type MonthBucket struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// RoleCount is one entry of the role distribution.
type RoleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

// Stats holds the dashboard headline counters.
type Stats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalProjects int64 `json:"totalProjects"`
	TotalMessages int64 `json:"totalMessages"`
	AdminUsers    int64 `json:"adminUsers"`
}
