package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"classtable/backend/internal/service"
	"classtable/backend/pkg/response"
)

// TimetableHandler 课表视图模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// GetWeekGrid 获取某教学周的课表网格
// GET /api/v1/timetable?week=N
func (h *TimetableHandler) GetWeekGrid(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	week, err := strconv.Atoi(c.Query("week"))
	if err != nil {
		response.BadRequest(c, 14001, "week 参数无效")
		return
	}

	grid, err := h.timetableSvc.GetWeekGrid(c.Request.Context(), userID, week)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWeek) {
			response.BadRequest(c, 14001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, grid)
}
