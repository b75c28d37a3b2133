package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"classtable/backend/internal/model"
	"classtable/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoCourses    = errors.New("该教学周暂无课程")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 周课表导出为 Excel (.xlsx)，一个 Sheet 即一周的网格
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 行 = 节次（含上课时间），列 = 星期一至星期日
type ExportService interface {
	// ExportWeek 导出某教学周课表为 Excel，返回内容与建议文件名
	ExportWeek(ctx context.Context, userID string, week int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportWeek — 导出周课表为 Excel
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportWeek(ctx context.Context, userID string, week int) (*bytes.Buffer, string, error) {
	if !model.ValidWeek(week) {
		return nil, "", ErrInvalidWeek
	}

	courses, err := s.repo.Course.ListByUserAndWeek(ctx, userID, week)
	if err != nil {
		s.logger.Error("查询周课程失败", zap.Int("week", week), zap.Error(err))
		return nil, "", err
	}
	if len(courses) == 0 {
		return nil, "", ErrExportNoCourses
	}

	// 槽位索引: "period:day" → 单元格文本
	cellIndex := make(map[string]string, len(courses))
	for i := range courses {
		c := &courses[i]
		key := fmt.Sprintf("%s:%d", c.PeriodSlot, c.DayOfWeek)
		cellIndex[key] = fmt.Sprintf("%s\n%s\n%s", c.Name, c.Teacher, c.Location)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("第%d周", week)
	f.SetSheetName("Sheet1", sheet)

	// 表头：节次\星期 + 星期一 … 星期日
	if err := f.SetCellValue(sheet, "A1", "节次\\星期"); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	for day := 1; day <= 7; day++ {
		cell, _ := excelize.CoordinatesToCellName(day+1, 1)
		if err := f.SetCellValue(sheet, cell, model.DayNames[day]); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	// 数据行：每个节次一行
	for i, info := range model.PeriodSlots {
		rowNum := i + 2
		head, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetCellValue(sheet, head, info.Label+"\n"+info.TimeRange); err != nil {
			return nil, "", ErrExportGenerateFail
		}
		for day := 1; day <= 7; day++ {
			key := fmt.Sprintf("%s:%d", info.Slot, day)
			text, ok := cellIndex[key]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(day+1, rowNum)
			if err := f.SetCellValue(sheet, cell, text); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	// 列宽与行高：保证多行单元格可读
	if err := f.SetColWidth(sheet, "A", "H", 16); err != nil {
		return nil, "", ErrExportGenerateFail
	}
	for i := range model.PeriodSlots {
		if err := f.SetRowHeight(sheet, i+2, 48); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 缓冲失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("课程表_第%d周.xlsx", week)
	return buf, filename, nil
}
