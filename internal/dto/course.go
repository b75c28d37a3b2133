package dto

import "fmt"

// ── 课程模块 DTO ──

// SlotRef 一个 (教学周, 节次) 槽位引用，用于冲突清单与失败清单
type SlotRef struct {
	Week       int    `json:"week"`
	PeriodSlot string `json:"period_slot"`
}

// String 槽位的人读形式，如 "第4周 第1-2节"
func (s SlotRef) String() string {
	return fmt.Sprintf("第%d周 第%s节", s.Week, s.PeriodSlot)
}

// AddCourseRequest 批量排课请求
// Weeks 与 WeekStart/WeekEnd 二选一：显式周次列表，或 [start, end] 区间速选。
type AddCourseRequest struct {
	Name      string   `json:"name"        binding:"required,max=100"`
	Teacher   string   `json:"teacher"     binding:"required,max=100"`
	DayOfWeek int      `json:"day_of_week" binding:"required"`
	Location  string   `json:"location"    binding:"required,max=100"`
	Periods   []string `json:"periods"     binding:"required"`
	Weeks     []int    `json:"weeks"`
	WeekStart *int     `json:"week_start"`
	WeekEnd   *int     `json:"week_end"`
}

// AddCourseResponse 批量排课结果
// Created 为成功写入的课时数；Failures 为写入阶段失败的槽位（冲突在写入前已整体拦截）。
type AddCourseResponse struct {
	Created  int       `json:"created"`
	Failures []SlotRef `json:"failures"`
}

// RemoveCourseRequest 删除课程请求 — 按五元组精确匹配
// week 必填：多周批量排入的课程没有共享标识，按周逐一删除。
type RemoveCourseRequest struct {
	Name       string `json:"name"        binding:"required"`
	DayOfWeek  int    `json:"day_of_week" binding:"required"`
	PeriodSlot string `json:"period_slot" binding:"required"`
	Week       int    `json:"week"        binding:"required"`
}

// RemoveCourseResponse 删除课程结果
type RemoveCourseResponse struct {
	Deleted bool `json:"deleted"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Teacher    string `json:"teacher"`
	DayOfWeek  int    `json:"day_of_week"`
	DayName    string `json:"day_name"`
	PeriodSlot string `json:"period_slot"`
	Location   string `json:"location"`
	Week       int    `json:"week"`
}
