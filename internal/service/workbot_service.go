package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/calendar"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/repository"
)

// ── 指令机器人业务错误 ──

var (
	ErrWorkbotNoActions       = errors.New("无法理解该指令")
	ErrWorkbotUpstream        = errors.New("指令解析服务暂不可用")
	ErrWorkbotNothingResolved = errors.New("指令未能落到任何日期")
	ErrWorkbotNothingSelected = errors.New("没有选中任何可执行的变更")
	ErrTemplateNotFound       = errors.New("模板不存在")
)

// WorkbotService 指令机器人业务接口
// 三阶段流水线：解析（外部 NLP）→ 日期落地 → 用户确认后执行。
// 执行阶段只接收 selected && valid 的行，经由批量变更引擎落库。
type WorkbotService interface {
	// 解析指令文本
	Parse(ctx context.Context, req *dto.WorkbotParseRequest) (*dto.WorkbotParseResponse, error)
	// 将动作列表落到具体日期并逐行校验
	Resolve(ctx context.Context, actor Actor, actions []dto.ParsedAction) (*dto.WorkbotResolveResponse, error)
	// 确认执行
	Apply(ctx context.Context, actor Actor, req *dto.WorkbotApplyRequest) (*dto.WorkbotApplyResponse, error)

	// 指令模板（确认阶段可批量套用到选中行）
	ListTemplates(ctx context.Context, actor Actor) ([]dto.TemplateResponse, error)
	CreateTemplate(ctx context.Context, actor Actor, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error)
	UpdateTemplate(ctx context.Context, actor Actor, templateID string, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error)
	DeleteTemplate(ctx context.Context, actor Actor, templateID string) error
}

type workbotService struct {
	repo       *repository.Repository
	parser     Parser
	attendance AttendanceService
	cal        *calendar.Calendar
	logger     *zap.Logger
}

// NewWorkbotService 创建 WorkbotService 实例
func NewWorkbotService(repo *repository.Repository, parser Parser, attendance AttendanceService, cal *calendar.Calendar, logger *zap.Logger) WorkbotService {
	return &workbotService{repo: repo, parser: parser, attendance: attendance, cal: cal, logger: logger}
}

// ════════════════════════════════════════════════════════════
// 阶段 1：Parse
// ════════════════════════════════════════════════════════════

func (s *workbotService) Parse(ctx context.Context, req *dto.WorkbotParseRequest) (*dto.WorkbotParseResponse, error) {
	parsed, err := s.parser.Parse(ctx, req.Command)
	if err != nil {
		s.logger.Error("指令解析失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrWorkbotUpstream, err)
	}
	// 解析器是不透明函数，这里只校验动作列表非空
	if len(parsed.Actions) == 0 {
		return nil, ErrWorkbotNoActions
	}
	return parsed, nil
}

// ════════════════════════════════════════════════════════════
// 阶段 2：Resolve — 日期表达落地 + 逐行校验
// ════════════════════════════════════════════════════════════

// 同一日期被多个动作命中时后者覆盖前者；无法识别的表达进 unresolved。
// valid 即可编辑性判定结果，selected 默认等于 valid。
func (s *workbotService) Resolve(ctx context.Context, actor Actor, actions []dto.ParsedAction) (*dto.WorkbotResolveResponse, error) {
	if len(actions) == 0 {
		return nil, ErrWorkbotNoActions
	}

	byDate := make(map[string]dto.ProposedChange)
	var unresolved []string
	seen := make(map[string]bool)

	for _, action := range actions {
		status := action.Status
		if action.Type == "clear" {
			status = model.StatusClear
		}
		for _, expr := range action.DateExpressions {
			date, err := s.cal.ResolveExpression(expr)
			if err != nil {
				if !seen[expr] {
					seen[expr] = true
					unresolved = append(unresolved, expr)
				}
				continue
			}
			byDate[date] = dto.ProposedChange{
				Date:           date,
				Status:         status,
				LeaveDuration:  action.LeaveDuration,
				HalfDayPortion: action.HalfDayPortion,
				WorkingPortion: action.WorkingPortion,
				Note:           action.Note,
			}
		}
	}
	if len(byDate) == 0 {
		return nil, ErrWorkbotNothingResolved
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	holidays, err := s.holidayMapForDates(ctx, dates)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.WorkbotResolveResponse{Unresolved: unresolved}
	for _, date := range dates {
		change := byDate[date]
		ok, reason := CanEdit(s.cal, actor, actor.UserID, date, holidays)
		change.Valid = ok
		change.ValidationMessage = reason
		change.Selected = ok
		if ok {
			resp.ValidCount++
		} else {
			resp.InvalidCount++
		}
		resp.Changes = append(resp.Changes, change)
	}
	return resp, nil
}

func (s *workbotService) holidayMapForDates(ctx context.Context, sorted []string) (map[string]string, error) {
	holidays, err := s.repo.Holiday.ListRange(ctx, sorted[0], sorted[len(sorted)-1])
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(holidays))
	for _, h := range holidays {
		m[h.HolidayDate] = h.Name
	}
	return m, nil
}

// ════════════════════════════════════════════════════════════
// 阶段 3：Apply — 只执行 selected && valid 行
// ════════════════════════════════════════════════════════════

func (s *workbotService) Apply(ctx context.Context, actor Actor, req *dto.WorkbotApplyRequest) (*dto.WorkbotApplyResponse, error) {
	items := make([]BulkItem, 0, len(req.Changes))
	for _, change := range req.Changes {
		if !change.Selected || !change.Valid {
			continue
		}
		items = append(items, BulkItem{
			Date: change.Date,
			Payload: dto.EntryPayload{
				Status:         change.Status,
				LeaveDuration:  change.LeaveDuration,
				HalfDayPortion: change.HalfDayPortion,
				WorkingPortion: change.WorkingPortion,
				Note:           change.Note,
			},
		})
	}
	if len(items) == 0 {
		return nil, ErrWorkbotNothingSelected
	}

	result, err := s.attendance.ApplyItems(ctx, actor, actor.UserID, items)
	if err != nil {
		return nil, err
	}
	return &dto.WorkbotApplyResponse{
		Processed: result.Processed,
		Failed:    result.Skipped,
		Results:   result.Results,
	}, nil
}

// ════════════════════════════════════════════════════════════
// 指令模板
// ════════════════════════════════════════════════════════════

func (s *workbotService) ListTemplates(ctx context.Context, actor Actor) ([]dto.TemplateResponse, error) {
	templates, err := s.repo.Template.ListByUser(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("查询模板列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TemplateResponse, 0, len(templates))
	for i := range templates {
		result = append(result, toTemplateResponse(&templates[i]))
	}
	return result, nil
}

func (s *workbotService) CreateTemplate(ctx context.Context, actor Actor, req *dto.CreateTemplateRequest) (*dto.TemplateResponse, error) {
	duration := req.LeaveDuration
	if duration == "" {
		duration = model.LeaveFull
	}
	template := &model.WorkbotTemplate{
		UserID:        actor.UserID,
		Name:          req.Name,
		Status:        req.Status,
		LeaveDuration: duration,
		Note:          req.Note,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	}
	if err := s.repo.Template.Create(ctx, template); err != nil {
		s.logger.Error("创建模板失败", zap.Error(err))
		return nil, err
	}
	resp := toTemplateResponse(template)
	return &resp, nil
}

func (s *workbotService) UpdateTemplate(ctx context.Context, actor Actor, templateID string, req *dto.UpdateTemplateRequest) (*dto.TemplateResponse, error) {
	template, err := s.getOwnTemplate(ctx, actor, templateID)
	if err != nil {
		return nil, err
	}

	template.Name = req.Name
	template.Status = req.Status
	template.LeaveDuration = req.LeaveDuration
	if template.LeaveDuration == "" {
		template.LeaveDuration = model.LeaveFull
	}
	template.Note = req.Note
	template.StartTime = req.StartTime
	template.EndTime = req.EndTime

	if err := s.repo.Template.Update(ctx, template); err != nil {
		s.logger.Error("更新模板失败", zap.Error(err))
		return nil, err
	}
	resp := toTemplateResponse(template)
	return &resp, nil
}

func (s *workbotService) DeleteTemplate(ctx context.Context, actor Actor, templateID string) error {
	if _, err := s.getOwnTemplate(ctx, actor, templateID); err != nil {
		return err
	}
	return s.repo.Template.Delete(ctx, templateID)
}

// getOwnTemplate 归属校验：他人模板一律按不存在处理
func (s *workbotService) getOwnTemplate(ctx context.Context, actor Actor, templateID string) (*model.WorkbotTemplate, error) {
	template, err := s.repo.Template.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("查询模板失败", zap.Error(err))
		return nil, err
	}
	if template.UserID != actor.UserID {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

func toTemplateResponse(t *model.WorkbotTemplate) dto.TemplateResponse {
	return dto.TemplateResponse{
		ID:            t.TemplateID,
		Name:          t.Name,
		Status:        t.Status,
		LeaveDuration: t.LeaveDuration,
		Note:          t.Note,
		StartTime:     t.StartTime,
		EndTime:       t.EndTime,
		CreatedAt:     t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/workbot_service.go
