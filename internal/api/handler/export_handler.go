package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"classtable/backend/internal/service"
	"classtable/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWeek 导出某教学周课表为 Excel
// GET /api/v1/export/timetable?week=N
func (h *ExportHandler) ExportWeek(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	week, err := strconv.Atoi(c.Query("week"))
	if err != nil {
		response.BadRequest(c, 15001, "week 参数无效")
		return
	}

	buf, filename, err := h.exportSvc.ExportWeek(c.Request.Context(), userID, week)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidWeek):
		response.BadRequest(c, 15001, err.Error())
	case errors.Is(err, service.ErrExportNoCourses):
		response.NotFound(c, 15002, "该教学周暂无课程")
	default:
		response.InternalError(c)
	}
}
