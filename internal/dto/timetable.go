package dto

// ── 课表视图 DTO ──
// 周课表以显式视图模型返回：5 个节次行 × 7 个星期列，由前端直接渲染。

// GridCell 课表格子：某 (节次, 星期) 上的课程；空格子在 Cells 中为 nil
type GridCell struct {
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	Teacher  string `json:"teacher"`
	Location string `json:"location"`
}

// GridRow 课表行：一个节次及其 7 天的格子（下标 0 = 星期一）
type GridRow struct {
	PeriodSlot string      `json:"period_slot"`
	Label      string      `json:"label"`      // 如 "第1-2节"
	TimeRange  string      `json:"time_range"` // 如 "08:00-09:40"
	Cells      []*GridCell `json:"cells"`
}

// WeekGridResponse 周课表响应
type WeekGridResponse struct {
	Week     int       `json:"week"`
	DayNames []string  `json:"day_names"` // 星期一 … 星期日
	Rows     []GridRow `json:"rows"`
}
