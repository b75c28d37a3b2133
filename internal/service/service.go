package service

import (
	"go.uber.org/zap"

	"classtable/backend/config"
	"classtable/backend/internal/repository"
	"classtable/backend/pkg/jwt"
	"classtable/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Schedule  ScheduleService
	Timetable TimetableService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Schedule:  NewScheduleService(repo, logger),
		Timetable: NewTimetableService(repo, logger),
		Export:    NewExportService(repo, logger),
	}
}
