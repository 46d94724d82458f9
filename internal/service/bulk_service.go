package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/calendar"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
)

// ── 批量变更引擎 ──
//
// 四个入口（统一设置 / 复制单日 / 星期模式 / 区间平移）全部收敛到同一个
// 逐日 apply 原语。每个日期是独立工作单元：门禁不过或校验失败只降级为
// 该日 skipped，绝不让整批失败，也没有跨日回滚。
// results 顺序与输入（或展开后的目标）日期顺序一致。

// BulkItem 逐日 apply 的最小工作单元
type BulkItem struct {
	Date    string
	Payload dto.EntryPayload
}

// 跳过类别，单日路径据此映射业务错误
const (
	outcomeEditability = "editability"
	outcomeValidation  = "validation"
	outcomeInternal    = "internal"
)

type itemOutcome struct {
	Date    string
	Success bool
	Message string
	Kind    string
}

// ════════════════════════════════════════════════════════════
// 逐日 apply 原语
// ════════════════════════════════════════════════════════════

// applyOutcomes 按序处理每个日期：门禁 → 分类 → 写入/删除
func (s *attendanceService) applyOutcomes(ctx context.Context, actor Actor, targetUserID string, items []BulkItem) ([]itemOutcome, error) {
	if len(items) == 0 {
		return nil, ErrEmptyDateList
	}

	// 跨用户写入（管理员路径）前确认目标用户存在
	if targetUserID != actor.UserID {
		if _, err := s.repo.User.GetByID(ctx, targetUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTargetUserGone
			}
			s.logger.Error("查询目标用户失败", zap.Error(err))
			return nil, err
		}
	}

	holidays, err := s.holidayMapForItems(ctx, items)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}

	outcomes := make([]itemOutcome, 0, len(items))
	for _, item := range items {
		outcomes = append(outcomes, s.applyOne(ctx, actor, targetUserID, item, holidays))
	}
	return outcomes, nil
}

func (s *attendanceService) applyOne(ctx context.Context, actor Actor, targetUserID string, item BulkItem, holidays map[string]string) itemOutcome {
	// 1. 可编辑性门禁（含周末/节假日，任何人不可直接写入）
	if ok, reason := CanEdit(s.cal, actor, targetUserID, item.Date, holidays); !ok {
		return itemOutcome{Date: item.Date, Message: reason, Kind: outcomeEditability}
	}

	// 2. clear：删除记录回退到 WFH 默认；无记录时为 no-op 成功
	if item.Payload.Status == model.StatusClear {
		if err := s.repo.Entry.Delete(ctx, targetUserID, item.Date); err != nil {
			s.logger.Error("删除考勤记录失败", zap.String("date", item.Date), zap.Error(err))
			return itemOutcome{Date: item.Date, Message: "删除失败", Kind: outcomeInternal}
		}
		return itemOutcome{Date: item.Date, Success: true}
	}

	// 3. 冲突分类：硬错误跳过，warning 不阻断
	existing, err := s.repo.Entry.Get(ctx, targetUserID, item.Date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询考勤记录失败", zap.String("date", item.Date), zap.Error(err))
		return itemOutcome{Date: item.Date, Message: "查询失败", Kind: outcomeInternal}
	}
	if result := Classify(item.Date, &item.Payload, holidays, existing); result.Blocked() {
		return itemOutcome{Date: item.Date, Message: result.HardError, Kind: outcomeValidation}
	}

	// 4. 写入
	entry := buildEntry(actor, targetUserID, item)
	if err := s.repo.Entry.Upsert(ctx, entry); err != nil {
		s.logger.Error("写入考勤记录失败", zap.String("date", item.Date), zap.Error(err))
		return itemOutcome{Date: item.Date, Message: "写入失败", Kind: outcomeInternal}
	}
	return itemOutcome{Date: item.Date, Success: true}
}

// buildEntry 归一化候选内容为落库模型
// 半天假字段仅 leave+half 时保留，其余情形一律清空
func buildEntry(actor Actor, targetUserID string, item BulkItem) *model.AttendanceEntry {
	p := item.Payload
	duration := p.LeaveDuration
	if duration == "" {
		duration = model.LeaveFull
	}
	entry := &model.AttendanceEntry{
		UserID:        targetUserID,
		EntryDate:     item.Date,
		Status:        p.Status,
		LeaveDuration: duration,
		Note:          p.Note,
		StartTime:     p.StartTime,
		EndTime:       p.EndTime,
	}
	if p.Status == model.StatusLeave && duration == model.LeaveHalf {
		entry.HalfDayPortion = p.HalfDayPortion
		entry.WorkingPortion = p.WorkingPortion
	}
	if p.Status == model.StatusOffice {
		entry.LeaveDuration = model.LeaveFull
	}
	entry.UpdatedBy = &actor.UserID
	entry.CreatedBy = &actor.UserID
	return entry
}

// holidayMapForItems 取所有合法日期的 min/max 做一次节假日预取
func (s *attendanceService) holidayMapForItems(ctx context.Context, items []BulkItem) (map[string]string, error) {
	var minDate, maxDate string
	for _, item := range items {
		if !calendar.IsValidDate(item.Date) {
			continue
		}
		if minDate == "" || item.Date < minDate {
			minDate = item.Date
		}
		if maxDate == "" || item.Date > maxDate {
			maxDate = item.Date
		}
	}
	if minDate == "" {
		return map[string]string{}, nil
	}
	return s.holidayMap(ctx, minDate, maxDate)
}

func toBulkResult(outcomes []itemOutcome) *dto.BulkResultResponse {
	resp := &dto.BulkResultResponse{Results: make([]dto.BulkItemResult, 0, len(outcomes))}
	for _, o := range outcomes {
		resp.Results = append(resp.Results, dto.BulkItemResult{Date: o.Date, Success: o.Success, Message: o.Message})
		if o.Success {
			resp.Processed++
		} else {
			resp.Skipped++
		}
	}
	return resp
}

// ════════════════════════════════════════════════════════════
// 四个批量入口
// ════════════════════════════════════════════════════════════

// ApplyItems 逐日 apply，payload 可逐日不同（指令机器人确认阶段使用）
func (s *attendanceService) ApplyItems(ctx context.Context, actor Actor, targetUserID string, items []BulkItem) (*dto.BulkResultResponse, error) {
	outcomes, err := s.applyOutcomes(ctx, actor, targetUserID, items)
	if err != nil {
		return nil, err
	}
	return toBulkResult(outcomes), nil
}

// BulkSet 多日统一设置：同一 payload 套用到每个日期
func (s *attendanceService) BulkSet(ctx context.Context, actor Actor, targetUserID string, req *dto.BulkSetRequest) (*dto.BulkResultResponse, error) {
	if targetUserID == "" {
		targetUserID = actor.UserID
	}
	items := make([]BulkItem, 0, len(req.Dates))
	for _, date := range req.Dates {
		items = append(items, BulkItem{Date: date, Payload: req.EntryPayload})
	}
	return s.ApplyItems(ctx, actor, targetUserID, items)
}

// CopyFromDate 复制单日到多日：来源无记录视为 WFH，目标日执行 clear
func (s *attendanceService) CopyFromDate(ctx context.Context, actor Actor, targetUserID string, req *dto.CopyFromDateRequest) (*dto.BulkResultResponse, error) {
	if targetUserID == "" {
		targetUserID = actor.UserID
	}
	if !calendar.IsValidDate(req.SourceDate) {
		return nil, ErrSourceNotFound
	}

	source, err := s.repo.Entry.Get(ctx, targetUserID, req.SourceDate)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询来源日期失败", zap.Error(err))
		return nil, err
	}
	payload := payloadFromEntry(source)

	items := make([]BulkItem, 0, len(req.TargetDates))
	for _, date := range req.TargetDates {
		items = append(items, BulkItem{Date: date, Payload: payload})
	}
	return s.ApplyItems(ctx, actor, targetUserID, items)
}

// RepeatPattern 按星期模式重复：展开区间内命中星期的日期后等价于 BulkSet
func (s *attendanceService) RepeatPattern(ctx context.Context, actor Actor, targetUserID string, req *dto.RepeatPatternRequest) (*dto.BulkResultResponse, error) {
	if targetUserID == "" {
		targetUserID = actor.UserID
	}
	dates, err := calendar.DaysMatchingWeekdays(req.StartDate, req.EndDate, req.DaysOfWeek)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	items := make([]BulkItem, 0, len(dates))
	for _, date := range dates {
		items = append(items, BulkItem{Date: date, Payload: req.EntryPayload})
	}
	return s.ApplyItems(ctx, actor, targetUserID, items)
}

// CopyRange 区间平移复制：source_start+k → target_start+k，
// 来源日无记录时在目标日执行 clear，保证整段结构一致
func (s *attendanceService) CopyRange(ctx context.Context, actor Actor, targetUserID string, req *dto.CopyRangeRequest) (*dto.BulkResultResponse, error) {
	if targetUserID == "" {
		targetUserID = actor.UserID
	}
	sourceDays, err := calendar.DaysBetween(req.SourceStart, req.SourceEnd)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if !calendar.IsValidDate(req.TargetStart) {
		return nil, ErrInvalidDateRange
	}

	entries, err := s.repo.Entry.ListRange(ctx, targetUserID, req.SourceStart, req.SourceEnd)
	if err != nil {
		s.logger.Error("查询来源区间失败", zap.Error(err))
		return nil, err
	}
	byDate := make(map[string]*model.AttendanceEntry, len(entries))
	for i := range entries {
		byDate[entries[i].EntryDate] = &entries[i]
	}

	items := make([]BulkItem, 0, len(sourceDays))
	for k, sourceDate := range sourceDays {
		targetDate, err := calendar.AddDays(req.TargetStart, k)
		if err != nil {
			return nil, ErrInvalidDateRange
		}
		items = append(items, BulkItem{Date: targetDate, Payload: payloadFromEntry(byDate[sourceDate])})
	}
	return s.ApplyItems(ctx, actor, targetUserID, items)
}

// payloadFromEntry 将已存记录还原为候选内容；nil（无记录 = WFH）还原为 clear
func payloadFromEntry(entry *model.AttendanceEntry) dto.EntryPayload {
	if entry == nil {
		return dto.EntryPayload{Status: model.StatusClear}
	}
	return dto.EntryPayload{
		Status:         entry.Status,
		LeaveDuration:  entry.LeaveDuration,
		HalfDayPortion: entry.HalfDayPortion,
		WorkingPortion: entry.WorkingPortion,
		Note:           entry.Note,
		StartTime:      entry.StartTime,
		EndTime:        entry.EndTime,
	}
}

// [自证通过] internal/service/bulk_service.go
