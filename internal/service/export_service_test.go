package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"classtable/backend/internal/model"
)

func setupTestExportService() (ExportService, *mockCourseRepo) {
	repo, _, courseRepo := newTestRepository()
	svc := NewExportService(repo, zap.NewNop())
	return svc, courseRepo
}

func TestExportService_ExportWeek_Success(t *testing.T) {
	svc, courseRepo := setupTestExportService()

	seeded := &model.Course{
		UserID: "user-1", Name: "计算机网络", Teacher: "孙老师",
		DayOfWeek: 5, PeriodSlot: "3-4", Location: "教学楼C302", Week: 12,
	}
	if err := courseRepo.Create(context.Background(), seeded); err != nil {
		t.Fatalf("种子数据写入失败: %v", err)
	}

	buf, filename, err := svc.ExportWeek(context.Background(), "user-1", 12)
	if err != nil {
		t.Fatalf("ExportWeek 应成功: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Fatal("导出内容不应为空")
	}
	if filename != "课程表_第12周.xlsx" {
		t.Errorf("期望文件名=课程表_第12周.xlsx，实际=%s", filename)
	}

	// 验证生成的工作簿内容
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("打开导出文件失败: %v", err)
	}
	defer f.Close()

	sheet := "第12周"
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		t.Fatalf("期望 Sheet=%s，实际列表=%v", sheet, f.GetSheetList())
	}
	// "3-4" 是第2个节次 → 行3；星期五 → 列F
	got, err := f.GetCellValue(sheet, "F3")
	if err != nil {
		t.Fatalf("读取单元格失败: %v", err)
	}
	want := "计算机网络\n孙老师\n教学楼C302"
	if got != want {
		t.Errorf("期望单元格内容=%q，实际=%q", want, got)
	}
	if head, _ := f.GetCellValue(sheet, "F1"); head != "星期五" {
		t.Errorf("期望表头=星期五，实际=%s", head)
	}
}

func TestExportService_ExportWeek_NoCourses(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportWeek(context.Background(), "user-1", 3)
	if !errors.Is(err, ErrExportNoCourses) {
		t.Errorf("期望 ErrExportNoCourses，实际: %v", err)
	}
}

func TestExportService_ExportWeek_InvalidWeek(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportWeek(context.Background(), "user-1", 99)
	if !errors.Is(err, ErrInvalidWeek) {
		t.Errorf("期望 ErrInvalidWeek，实际: %v", err)
	}
}
