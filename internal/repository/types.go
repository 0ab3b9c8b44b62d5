package repository

import "time"

// ScammerReportListFilter 查询举报列表的过滤条件
type ScammerReportListFilter struct {
	Page        int
	PageSize    int
	Category    string
	Keyword     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
