package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"classtable/backend/internal/dto"
	"classtable/backend/internal/service"
	"classtable/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	scheduleSvc service.ScheduleService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(scheduleSvc service.ScheduleService) *CourseHandler {
	return &CourseHandler{scheduleSvc: scheduleSvc}
}

// AddCourse 批量排课（周次 × 节次）
// POST /api/v1/courses
func (h *CourseHandler) AddCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.AddCourseBatch(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, result)
}

// RemoveCourse 按五元组精确删除一节课
// DELETE /api/v1/courses
func (h *CourseHandler) RemoveCourse(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RemoveCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12001, "参数校验失败")
		return
	}

	deleted, err := h.scheduleSvc.RemoveCourse(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, dto.RemoveCourseResponse{Deleted: deleted})
}

// ListWeek 查询某教学周的全部课程
// GET /api/v1/courses?week=N
func (h *CourseHandler) ListWeek(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	week, err := strconv.Atoi(c.Query("week"))
	if err != nil {
		response.BadRequest(c, 12001, "week 参数无效")
		return
	}

	courses, err := h.scheduleSvc.ListWeek(c.Request.Context(), userID, week)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, courses)
}

func (h *CourseHandler) handleScheduleError(c *gin.Context, err error) {
	// 冲突错误携带完整冲突清单，整体返回给前端展示
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		response.Conflict(c, 12002, conflictErr.Error(), gin.H{"conflicts": conflictErr.Conflicts})
		return
	}

	switch {
	case errors.Is(err, service.ErrCourseNameRequired),
		errors.Is(err, service.ErrTeacherRequired),
		errors.Is(err, service.ErrLocationRequired),
		errors.Is(err, service.ErrInvalidDayOfWeek),
		errors.Is(err, service.ErrNoPeriodsSelected),
		errors.Is(err, service.ErrInvalidPeriodSlot),
		errors.Is(err, service.ErrNoWeeksSelected),
		errors.Is(err, service.ErrInvalidWeek),
		errors.Is(err, service.ErrInvalidWeekRange):
		response.BadRequest(c, 12001, err.Error())
	default:
		response.InternalError(c)
	}
}
