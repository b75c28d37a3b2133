package repository

import (
	"context"

	"gorm.io/gorm"

	"classtable/backend/internal/model"
)

// CourseRepository 课程数据访问接口
// Create 依赖 (user_id, day_of_week, period_slot, week) 上的唯一约束：
// 槽位已被占用时返回 gorm.ErrDuplicatedKey，排课引擎将其记为该槽位的写入失败。
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	ListByUserAndWeek(ctx context.Context, userID string, week int) ([]model.Course, error)
	// DeleteExact 按 (user_id, name, day_of_week, period_slot, week) 五元组精确删除，
	// 返回删除行数（0 = 未找到）。
	DeleteExact(ctx context.Context, userID, name string, dayOfWeek int, periodSlot string, week int) (int64, error)
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) ListByUserAndWeek(ctx context.Context, userID string, week int) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week = ?", userID, week).
		Order("day_of_week ASC, period_slot ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) DeleteExact(ctx context.Context, userID, name string, dayOfWeek int, periodSlot string, week int) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? AND day_of_week = ? AND period_slot = ? AND week = ?",
			userID, name, dayOfWeek, periodSlot, week).
		Delete(&model.Course{})
	return result.RowsAffected, result.Error
}
