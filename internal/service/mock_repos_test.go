package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"classtable/backend/internal/model"
	"classtable/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: UserID
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	// 模拟 users.username 唯一约束
	for _, u := range m.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course // key: CourseID
	seq     int
	// failOn 模拟写入阶段的存储故障: "week:period" → 返回的错误
	failOn map[string]error
	// listErr 模拟查询故障
	listErr error
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{
		courses: make(map[string]*model.Course),
		failOn:  make(map[string]error),
	}
}

func slotFailKey(week int, period string) string {
	return fmt.Sprintf("%d:%s", week, period)
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if err, ok := m.failOn[slotFailKey(course.Week, course.PeriodSlot)]; ok {
		return err
	}
	// 模拟 (user_id, day_of_week, period_slot, week) 唯一约束
	for _, c := range m.courses {
		if c.UserID == course.UserID && c.DayOfWeek == course.DayOfWeek &&
			c.PeriodSlot == course.PeriodSlot && c.Week == course.Week {
			return gorm.ErrDuplicatedKey
		}
	}
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%d", m.seq)
	}
	cp := *course
	m.courses[course.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) ListByUserAndWeek(_ context.Context, userID string, week int) ([]model.Course, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Course
	for _, c := range m.courses {
		if c.UserID == userID && c.Week == week {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) DeleteExact(_ context.Context, userID, name string, dayOfWeek int, periodSlot string, week int) (int64, error) {
	var deleted int64
	for id, c := range m.courses {
		if c.UserID == userID && c.Name == name && c.DayOfWeek == dayOfWeek &&
			c.PeriodSlot == periodSlot && c.Week == week {
			delete(m.courses, id)
			deleted++
		}
	}
	return deleted, nil
}

// count 当前存储的课程总数（断言"存储未被改动"用）
func (m *mockCourseRepo) count() int { return len(m.courses) }

// ── 聚合辅助 ──

func newTestRepository() (*repository.Repository, *mockUserRepo, *mockCourseRepo) {
	userRepo := newMockUserRepo()
	courseRepo := newMockCourseRepo()
	repo := &repository.Repository{
		User:   userRepo,
		Course: courseRepo,
	}
	return repo, userRepo, courseRepo
}
