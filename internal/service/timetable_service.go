package service

import (
	"context"

	"go.uber.org/zap"

	"classtable/backend/internal/dto"
	"classtable/backend/internal/model"
	"classtable/backend/internal/repository"
)

// TimetableService 课表视图业务接口
type TimetableService interface {
	// GetWeekGrid 构建某教学周的网格视图模型（节次行 × 星期列）
	GetWeekGrid(ctx context.Context, userID string, week int) (*dto.WeekGridResponse, error)
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// GetWeekGrid — 周课表网格
// ════════════════════════════════════════════════════════════
//
// 行 = 固定节次表的 5 个节次（含显示名与上课时间）
// 列 = 星期一至星期日，Cells 下标 0 对应星期一
// 同一槽位至多一门课（由排课冲突不变量保证），空槽位为 nil

func (s *timetableService) GetWeekGrid(ctx context.Context, userID string, week int) (*dto.WeekGridResponse, error) {
	if !model.ValidWeek(week) {
		return nil, ErrInvalidWeek
	}

	courses, err := s.repo.Course.ListByUserAndWeek(ctx, userID, week)
	if err != nil {
		s.logger.Error("查询周课程失败", zap.Int("week", week), zap.Error(err))
		return nil, err
	}

	// 槽位索引: "period:day" → Course
	type slotKey struct {
		period string
		day    int
	}
	index := make(map[slotKey]*model.Course, len(courses))
	for i := range courses {
		c := &courses[i]
		index[slotKey{period: c.PeriodSlot, day: c.DayOfWeek}] = c
	}

	resp := &dto.WeekGridResponse{
		Week:     week,
		DayNames: model.DayNames[1:],
		Rows:     make([]dto.GridRow, 0, len(model.PeriodSlots)),
	}

	for _, info := range model.PeriodSlots {
		row := dto.GridRow{
			PeriodSlot: info.Slot,
			Label:      info.Label,
			TimeRange:  info.TimeRange,
			Cells:      make([]*dto.GridCell, 7),
		}
		for day := 1; day <= 7; day++ {
			if c, ok := index[slotKey{period: info.Slot, day: day}]; ok {
				row.Cells[day-1] = &dto.GridCell{
					CourseID: c.CourseID,
					Name:     c.Name,
					Teacher:  c.Teacher,
					Location: c.Location,
				}
			}
		}
		resp.Rows = append(resp.Rows, row)
	}

	return resp, nil
}
