package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classtable/backend/internal/dto"
	"classtable/backend/internal/model"
	"classtable/backend/internal/repository"
)

// ── 排课模块业务错误 ──

var (
	ErrCourseNameRequired = errors.New("课程名不能为空")
	ErrTeacherRequired    = errors.New("授课教师不能为空")
	ErrLocationRequired   = errors.New("上课地点不能为空")
	ErrInvalidDayOfWeek   = errors.New("星期取值无效")
	ErrNoPeriodsSelected  = errors.New("请至少选择一个节次")
	ErrInvalidPeriodSlot  = errors.New("节次取值无效")
	ErrNoWeeksSelected    = errors.New("请至少选择一个教学周")
	ErrInvalidWeek        = errors.New("教学周必须在 1-18 之间")
	ErrInvalidWeekRange   = errors.New("周次区间无效：起始周不能大于结束周")
)

// ConflictError 排课冲突错误
// 携带全部冲突槽位：调用方需要向用户展示每一个已被占用的 (周, 节次)，
// 而不只是第一个，因此不能用哨兵错误表达。整批排课在冲突时不产生任何写入。
type ConflictError struct {
	Conflicts []dto.SlotRef
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = c.String()
	}
	return "以下时间段已有课程: " + strings.Join(parts, "、")
}

// ScheduleService 排课业务接口
type ScheduleService interface {
	// AddCourseBatch 按 周次 × 节次 批量排入一门课程
	AddCourseBatch(ctx context.Context, userID string, req *dto.AddCourseRequest) (*dto.AddCourseResponse, error)
	// RemoveCourse 按五元组精确删除一节课，返回是否删到
	RemoveCourse(ctx context.Context, userID string, req *dto.RemoveCourseRequest) (bool, error)
	// ListWeek 查询某教学周的全部课程
	ListWeek(ctx context.Context, userID string, week int) ([]dto.CourseResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// AddCourseBatch — 冲突预检 + 逐槽位写入
// ════════════════════════════════════════════════════════════
//
// 三阶段：
//  1. 校验：模板字段、节次集合、周次集合（含区间速选展开）
//  2. 冲突预检：扫描 周次 × 节次 全积，收集全部冲突槽位；有任一冲突则整批终止，不写入
//  3. 写入：每个槽位独立插入，单槽位失败不中断其余槽位，最终返回成功数与失败清单

func (s *scheduleService) AddCourseBatch(ctx context.Context, userID string, req *dto.AddCourseRequest) (*dto.AddCourseResponse, error) {
	// ── 阶段1: 校验 ──

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrCourseNameRequired
	}
	if strings.TrimSpace(req.Teacher) == "" {
		return nil, ErrTeacherRequired
	}
	if strings.TrimSpace(req.Location) == "" {
		return nil, ErrLocationRequired
	}
	if !model.ValidDayOfWeek(req.DayOfWeek) {
		return nil, ErrInvalidDayOfWeek
	}

	periods, err := normalizePeriods(req.Periods)
	if err != nil {
		return nil, err
	}

	weeks, err := expandWeeks(req.Weeks, req.WeekStart, req.WeekEnd)
	if err != nil {
		return nil, err
	}

	// ── 阶段2: 冲突预检（任何写入之前） ──

	var conflicts []dto.SlotRef
	for _, week := range weeks {
		existing, err := s.repo.Course.ListByUserAndWeek(ctx, userID, week)
		if err != nil {
			s.logger.Error("查询周课程失败", zap.Int("week", week), zap.Error(err))
			return nil, err
		}
		for _, period := range periods {
			for _, c := range existing {
				if c.DayOfWeek == req.DayOfWeek && c.PeriodSlot == period {
					conflicts = append(conflicts, dto.SlotRef{Week: week, PeriodSlot: period})
					break
				}
			}
		}
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	// ── 阶段3: 逐槽位写入 ──

	resp := &dto.AddCourseResponse{Failures: make([]dto.SlotRef, 0)}
	for _, week := range weeks {
		for _, period := range periods {
			course := &model.Course{
				UserID:     userID,
				Name:       req.Name,
				Teacher:    req.Teacher,
				DayOfWeek:  req.DayOfWeek,
				PeriodSlot: period,
				Location:   req.Location,
				Week:       week,
			}
			if err := s.repo.Course.Create(ctx, course); err != nil {
				// 预检与写入之间被并发写占位时，唯一约束把它变成一次普通的槽位失败
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					s.logger.Warn("槽位在预检后被占用",
						zap.Int("week", week), zap.String("period", period))
				} else {
					s.logger.Error("插入课程失败",
						zap.Int("week", week), zap.String("period", period), zap.Error(err))
				}
				resp.Failures = append(resp.Failures, dto.SlotRef{Week: week, PeriodSlot: period})
				continue
			}
			resp.Created++
		}
	}

	s.logger.Info("批量排课完成",
		zap.String("course", req.Name),
		zap.Int("created", resp.Created),
		zap.Int("failed", len(resp.Failures)),
	)
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// RemoveCourse — 五元组精确删除
// ════════════════════════════════════════════════════════════

func (s *scheduleService) RemoveCourse(ctx context.Context, userID string, req *dto.RemoveCourseRequest) (bool, error) {
	if !model.ValidDayOfWeek(req.DayOfWeek) {
		return false, ErrInvalidDayOfWeek
	}
	if !model.ValidPeriodSlot(req.PeriodSlot) {
		return false, ErrInvalidPeriodSlot
	}
	if !model.ValidWeek(req.Week) {
		return false, ErrInvalidWeek
	}

	rows, err := s.repo.Course.DeleteExact(ctx, userID, req.Name, req.DayOfWeek, req.PeriodSlot, req.Week)
	if err != nil {
		s.logger.Error("删除课程失败", zap.String("course", req.Name), zap.Error(err))
		return false, err
	}
	return rows > 0, nil
}

// ════════════════════════════════════════════════════════════
// ListWeek — 查询某教学周的课程
// ════════════════════════════════════════════════════════════

func (s *scheduleService) ListWeek(ctx context.Context, userID string, week int) ([]dto.CourseResponse, error) {
	if !model.ValidWeek(week) {
		return nil, ErrInvalidWeek
	}

	courses, err := s.repo.Course.ListByUserAndWeek(ctx, userID, week)
	if err != nil {
		s.logger.Error("查询周课程失败", zap.Int("week", week), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ════════════════════════════════════════════════════════════
// 内部辅助方法
// ════════════════════════════════════════════════════════════

// normalizePeriods 校验节次集合并按固定节次表的顺序去重
func normalizePeriods(periods []string) ([]string, error) {
	if len(periods) == 0 {
		return nil, ErrNoPeriodsSelected
	}
	requested := make(map[string]bool, len(periods))
	for _, p := range periods {
		if !model.ValidPeriodSlot(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPeriodSlot, p)
		}
		requested[p] = true
	}
	result := make([]string, 0, len(requested))
	for _, info := range model.PeriodSlots {
		if requested[info.Slot] {
			result = append(result, info.Slot)
		}
	}
	return result, nil
}

// expandWeeks 合并显式周次列表与区间速选，校验范围后升序去重
func expandWeeks(weeks []int, start, end *int) ([]int, error) {
	selected := make(map[int]bool)
	for _, w := range weeks {
		if !model.ValidWeek(w) {
			return nil, ErrInvalidWeek
		}
		selected[w] = true
	}

	if start != nil || end != nil {
		if start == nil || end == nil {
			return nil, ErrInvalidWeekRange
		}
		if !model.ValidWeek(*start) || !model.ValidWeek(*end) {
			return nil, ErrInvalidWeek
		}
		if *start > *end {
			return nil, ErrInvalidWeekRange
		}
		for w := *start; w <= *end; w++ {
			selected[w] = true
		}
	}

	if len(selected) == 0 {
		return nil, ErrNoWeeksSelected
	}

	result := make([]int, 0, len(selected))
	for w := range selected {
		result = append(result, w)
	}
	sort.Ints(result)
	return result, nil
}

// toCourseResponse 转换课程为响应
func toCourseResponse(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:         c.CourseID,
		Name:       c.Name,
		Teacher:    c.Teacher,
		DayOfWeek:  c.DayOfWeek,
		DayName:    model.DayNames[c.DayOfWeek],
		PeriodSlot: c.PeriodSlot,
		Location:   c.Location,
		Week:       c.Week,
	}
}
