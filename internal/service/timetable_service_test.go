package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"classtable/backend/internal/model"
)

func setupTestTimetableService() (TimetableService, *mockCourseRepo) {
	repo, _, courseRepo := newTestRepository()
	svc := NewTimetableService(repo, zap.NewNop())
	return svc, courseRepo
}

func TestTimetableService_GetWeekGrid_Shape(t *testing.T) {
	svc, _ := setupTestTimetableService()

	grid, err := svc.GetWeekGrid(context.Background(), "user-1", 1)
	if err != nil {
		t.Fatalf("GetWeekGrid 应成功: %v", err)
	}

	if grid.Week != 1 {
		t.Errorf("期望 Week=1，实际=%d", grid.Week)
	}
	// 固定5个节次行 × 7列，空课表全部为 nil
	if len(grid.Rows) != 5 {
		t.Fatalf("期望5行，实际=%d", len(grid.Rows))
	}
	if len(grid.DayNames) != 7 {
		t.Fatalf("期望7个星期名，实际=%d", len(grid.DayNames))
	}
	if grid.DayNames[0] != "星期一" || grid.DayNames[6] != "星期日" {
		t.Errorf("星期名顺序错误: %v", grid.DayNames)
	}
	for i, row := range grid.Rows {
		if row.PeriodSlot != model.PeriodSlots[i].Slot {
			t.Errorf("第%d行期望节次=%s，实际=%s", i, model.PeriodSlots[i].Slot, row.PeriodSlot)
		}
		if len(row.Cells) != 7 {
			t.Fatalf("第%d行期望7列，实际=%d", i, len(row.Cells))
		}
		for j, cell := range row.Cells {
			if cell != nil {
				t.Errorf("空课表单元格 (%d,%d) 应为 nil", i, j)
			}
		}
	}
}

func TestTimetableService_GetWeekGrid_Placement(t *testing.T) {
	svc, courseRepo := setupTestTimetableService()

	// 星期三 5-6节 第7周
	seeded := &model.Course{
		UserID: "user-1", Name: "操作系统", Teacher: "陈老师",
		DayOfWeek: 3, PeriodSlot: "5-6", Location: "实验楼501", Week: 7,
	}
	if err := courseRepo.Create(context.Background(), seeded); err != nil {
		t.Fatalf("种子数据写入失败: %v", err)
	}

	grid, err := svc.GetWeekGrid(context.Background(), "user-1", 7)
	if err != nil {
		t.Fatalf("GetWeekGrid 应成功: %v", err)
	}

	// "5-6" 是第3行（下标2），星期三是第3列（下标2）
	cell := grid.Rows[2].Cells[2]
	if cell == nil {
		t.Fatal("期望单元格有课")
	}
	if cell.Name != "操作系统" || cell.Teacher != "陈老师" || cell.Location != "实验楼501" {
		t.Errorf("单元格内容不一致: %+v", cell)
	}
	if grid.Rows[2].Label != "第5-6节" || grid.Rows[2].TimeRange != "14:00-15:40" {
		t.Errorf("节次行元信息错误: %+v", grid.Rows[2])
	}

	// 其余槽位仍为空
	if grid.Rows[2].Cells[3] != nil || grid.Rows[0].Cells[2] != nil {
		t.Error("未排课的槽位应为 nil")
	}
}

func TestTimetableService_GetWeekGrid_InvalidWeek(t *testing.T) {
	svc, _ := setupTestTimetableService()

	if _, err := svc.GetWeekGrid(context.Background(), "user-1", 0); !errors.Is(err, ErrInvalidWeek) {
		t.Errorf("期望 ErrInvalidWeek，实际: %v", err)
	}
	if _, err := svc.GetWeekGrid(context.Background(), "user-1", 19); !errors.Is(err, ErrInvalidWeek) {
		t.Errorf("期望 ErrInvalidWeek，实际: %v", err)
	}
}
