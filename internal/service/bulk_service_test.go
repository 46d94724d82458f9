package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/repository"
)

// 固定时钟：今天 2026-03-10（周二），窗口 [2026-03-01, 2026-06-08]
// 2026-03 周末：1/7/8/14/15/21/22/28/29
func newTestAttendanceService() (AttendanceService, *mockEntryRepo, *mockHolidayRepo) {
	entries := newMockEntryRepo()
	holidays := newMockHolidayRepo()
	users := newMockUserRepo()
	users.users[memberActor.UserID] = &model.User{UserID: memberActor.UserID, Name: "成员", Role: model.RoleMember}
	users.users[adminActor.UserID] = &model.User{UserID: adminActor.UserID, Name: "管理员", Role: model.RoleAdmin}
	repo := &repository.Repository{
		Entry:   entries,
		Holiday: holidays,
		User:    users,
	}
	svc := NewAttendanceService(repo, fixedTestCalendar(), zap.NewNop())
	return svc, entries, holidays
}

func TestBulkSetMixedEditability(t *testing.T) {
	svc, _, holidays := newTestAttendanceService()
	holidays.add("2026-03-12", "Holi")

	req := &dto.BulkSetRequest{
		Dates:        []string{"2026-03-11", "2026-03-14", "2026-03-12"},
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	}
	result, err := svc.BulkSet(context.Background(), memberActor, "", req)
	if err != nil {
		t.Fatalf("不应整批失败: %v", err)
	}
	if result.Processed != 1 || result.Skipped != 2 {
		t.Fatalf("期望 processed=1 skipped=2，实际=%d/%d", result.Processed, result.Skipped)
	}
	if len(result.Results) != 3 {
		t.Fatalf("results 应逐日返回，实际=%d", len(result.Results))
	}

	// results 顺序与输入一致
	for i, date := range req.Dates {
		if result.Results[i].Date != date {
			t.Errorf("results[%d] 顺序错乱：期望 %s，实际=%s", i, date, result.Results[i].Date)
		}
	}
	if !result.Results[0].Success {
		t.Errorf("2026-03-11 应写入成功: %s", result.Results[0].Message)
	}
	if result.Results[1].Success || result.Results[1].Message != ReasonWeekend {
		t.Errorf("2026-03-14 应因周末跳过，实际=%+v", result.Results[1])
	}
	if result.Results[2].Success || result.Results[2].Message != ReasonHoliday {
		t.Errorf("2026-03-12 应因节假日跳过，实际=%+v", result.Results[2])
	}
}

func TestBulkSetWindowBounds(t *testing.T) {
	svc, _, _ := newTestAttendanceService()

	// 窗口 [2026-03-01, 2026-06-08]：之前/之后的工作日各跳过一个
	req := &dto.BulkSetRequest{
		Dates:        []string{"2026-03-10", "2026-02-26", "2026-06-09"},
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	}
	result, err := svc.BulkSet(context.Background(), memberActor, "", req)
	if err != nil {
		t.Fatalf("不应整批失败: %v", err)
	}
	if result.Processed != 1 || result.Skipped != 2 {
		t.Fatalf("期望 processed=1 skipped=2，实际=%d/%d", result.Processed, result.Skipped)
	}
	if result.Results[1].Message != ReasonBeforeWindow {
		t.Errorf("2026-02-26 跳过原因错误: %q", result.Results[1].Message)
	}
	if result.Results[2].Message != ReasonBeyondHorizon {
		t.Errorf("2026-06-09 跳过原因错误: %q", result.Results[2].Message)
	}
}

func TestBulkSetValidationSkipsOnlyBadDates(t *testing.T) {
	svc, _, _ := newTestAttendanceService()

	// 时间段残缺是硬错误，但只降级为该日 skipped
	start := "09:00"
	req := &dto.BulkSetRequest{
		Dates:        []string{"2026-03-11", "2026-03-16"},
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice, StartTime: &start},
	}
	result, err := svc.BulkSet(context.Background(), memberActor, "", req)
	if err != nil {
		t.Fatalf("不应整批失败: %v", err)
	}
	if result.Processed != 0 || result.Skipped != 2 {
		t.Fatalf("期望全部跳过，实际 processed=%d skipped=%d", result.Processed, result.Skipped)
	}
	for _, r := range result.Results {
		if r.Message != HardTimeWindowIncomplete {
			t.Errorf("%s 跳过原因错误：%q", r.Date, r.Message)
		}
	}
}

func TestApplyItemsRejectsUnknownStatus(t *testing.T) {
	svc, entries, _ := newTestAttendanceService()
	ctx := context.Background()

	// 状态域收口在逐日 apply 内部，不依赖 DTO 层的 binding 校验
	items := []BulkItem{{Date: "2026-03-11", Payload: dto.EntryPayload{Status: "purple"}}}
	result, err := svc.ApplyItems(ctx, memberActor, memberActor.UserID, items)
	if err != nil {
		t.Fatalf("不应整批失败: %v", err)
	}
	if result.Processed != 0 || result.Skipped != 1 {
		t.Fatalf("非法状态应跳过，实际=%+v", result)
	}
	if result.Results[0].Message != HardInvalidStatus {
		t.Errorf("跳过原因错误: %q", result.Results[0].Message)
	}
	if _, err := entries.Get(ctx, memberActor.UserID, "2026-03-11"); err == nil {
		t.Error("非法状态不应落库")
	}
}

func TestBulkSetTargetUserGone(t *testing.T) {
	svc, _, _ := newTestAttendanceService()

	_, err := svc.BulkSet(context.Background(), adminActor, "user-ghost", &dto.BulkSetRequest{
		Dates:        []string{"2026-03-11"},
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	})
	if !errors.Is(err, ErrTargetUserGone) {
		t.Errorf("目标用户不存在期望 ErrTargetUserGone，实际=%v", err)
	}

	// 存在的目标用户正常写入
	result, err := svc.BulkSet(context.Background(), adminActor, memberActor.UserID, &dto.BulkSetRequest{
		Dates:        []string{"2026-03-11"},
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	})
	if err != nil || result.Processed != 1 {
		t.Fatalf("管理员跨用户写入失败: %v %+v", err, result)
	}
}

func TestBulkSetEmptyDates(t *testing.T) {
	svc, _, _ := newTestAttendanceService()
	_, err := svc.BulkSet(context.Background(), memberActor, "", &dto.BulkSetRequest{
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	})
	if !errors.Is(err, ErrEmptyDateList) {
		t.Errorf("期望 ErrEmptyDateList，实际=%v", err)
	}
}

func TestBulkSetIdempotent(t *testing.T) {
	svc, entries, _ := newTestAttendanceService()
	req := &dto.BulkSetRequest{
		Dates:        []string{"2026-03-11"},
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	}

	for i := 0; i < 2; i++ {
		result, err := svc.BulkSet(context.Background(), memberActor, "", req)
		if err != nil || result.Processed != 1 {
			t.Fatalf("第%d次写入失败: %v %+v", i+1, err, result)
		}
	}
	entry, err := entries.Get(context.Background(), memberActor.UserID, "2026-03-11")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if entry.Status != model.StatusOffice {
		t.Errorf("期望 office，实际=%s", entry.Status)
	}
	if entry.Version != 2 {
		t.Errorf("重复写入应走 upsert 提升版本，实际 version=%d", entry.Version)
	}
}

func TestClearMissingEntryIsNoopSuccess(t *testing.T) {
	svc, _, _ := newTestAttendanceService()
	req := &dto.BulkSetRequest{
		Dates:        []string{"2026-03-11"},
		EntryPayload: dto.EntryPayload{Status: model.StatusClear},
	}
	result, err := svc.BulkSet(context.Background(), memberActor, "", req)
	if err != nil {
		t.Fatalf("clear 无记录应为 no-op 成功: %v", err)
	}
	if result.Processed != 1 || result.Skipped != 0 {
		t.Errorf("期望 processed=1，实际=%+v", result)
	}
}

func TestUpsertEntryErrorMapping(t *testing.T) {
	svc, _, _ := newTestAttendanceService()
	ctx := context.Background()

	// 单日路径：门禁不过映射为 ErrNotEditable
	_, err := svc.UpsertEntry(ctx, memberActor, "", &dto.UpsertEntryRequest{
		Date:         "2026-03-14",
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	})
	if !errors.Is(err, ErrNotEditable) {
		t.Errorf("周末期望 ErrNotEditable，实际=%v", err)
	}

	// 校验硬错误映射为 ErrEntryValidation
	start, end := "18:00", "09:00"
	_, err = svc.UpsertEntry(ctx, memberActor, "", &dto.UpsertEntryRequest{
		Date:         "2026-03-11",
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice, StartTime: &start, EndTime: &end},
	})
	if !errors.Is(err, ErrEntryValidation) {
		t.Errorf("时间段倒置期望 ErrEntryValidation，实际=%v", err)
	}
}

func TestUpsertEntryHalfDayNormalization(t *testing.T) {
	svc, entries, _ := newTestAttendanceService()
	ctx := context.Background()
	portion := model.PortionFirstHalf
	working := model.StatusWFH

	day, err := svc.UpsertEntry(ctx, memberActor, "", &dto.UpsertEntryRequest{
		Date: "2026-03-11",
		EntryPayload: dto.EntryPayload{
			Status:         model.StatusLeave,
			LeaveDuration:  model.LeaveHalf,
			HalfDayPortion: &portion,
			WorkingPortion: &working,
			Note:           "半天看牙",
		},
	})
	if err != nil {
		t.Fatalf("半天假写入失败: %v", err)
	}
	if day.EffectiveStatus != model.StatusLeave {
		t.Errorf("期望派生状态 leave，实际=%s", day.EffectiveStatus)
	}
	if day.Entry == nil || day.Entry.HalfDayPortion == nil || *day.Entry.HalfDayPortion != model.PortionFirstHalf {
		t.Errorf("半天假字段丢失: %+v", day.Entry)
	}

	// office 强制 full 且清空半天字段
	_, err = svc.UpsertEntry(ctx, memberActor, "", &dto.UpsertEntryRequest{
		Date: "2026-03-11",
		EntryPayload: dto.EntryPayload{
			Status:         model.StatusOffice,
			LeaveDuration:  model.LeaveHalf,
			HalfDayPortion: &portion,
		},
	})
	if err != nil {
		t.Fatalf("覆盖写入失败: %v", err)
	}
	entry, _ := entries.Get(ctx, memberActor.UserID, "2026-03-11")
	if entry.LeaveDuration != model.LeaveFull {
		t.Errorf("office 应归一化为 full，实际=%s", entry.LeaveDuration)
	}
	if entry.HalfDayPortion != nil || entry.WorkingPortion != nil {
		t.Errorf("office 不应保留半天字段: %+v", entry)
	}
}

func TestCopyFromDateRoundTrip(t *testing.T) {
	svc, entries, _ := newTestAttendanceService()
	ctx := context.Background()
	start, end := "10:00", "16:00"
	portion := model.PortionSecondHalf
	working := model.StatusOffice

	// 先铺一个带全部字段的来源日
	_, err := svc.UpsertEntry(ctx, memberActor, "", &dto.UpsertEntryRequest{
		Date: "2026-03-11",
		EntryPayload: dto.EntryPayload{
			Status:         model.StatusLeave,
			LeaveDuration:  model.LeaveHalf,
			HalfDayPortion: &portion,
			WorkingPortion: &working,
			Note:           "下午半天",
			StartTime:      &start,
			EndTime:        &end,
		},
	})
	if err != nil {
		t.Fatalf("来源日写入失败: %v", err)
	}

	result, err := svc.CopyFromDate(ctx, memberActor, "", &dto.CopyFromDateRequest{
		SourceDate:  "2026-03-11",
		TargetDates: []string{"2026-03-16", "2026-03-17"},
	})
	if err != nil || result.Processed != 2 {
		t.Fatalf("复制失败: %v %+v", err, result)
	}

	for _, date := range []string{"2026-03-16", "2026-03-17"} {
		entry, err := entries.Get(ctx, memberActor.UserID, date)
		if err != nil {
			t.Fatalf("%s 未写入: %v", date, err)
		}
		if entry.Status != model.StatusLeave || entry.LeaveDuration != model.LeaveHalf {
			t.Errorf("%s 状态未复制: %+v", date, entry)
		}
		if entry.HalfDayPortion == nil || *entry.HalfDayPortion != model.PortionSecondHalf {
			t.Errorf("%s 半天字段未复制", date)
		}
		if entry.Note != "下午半天" || entry.StartTime == nil || *entry.StartTime != "10:00" {
			t.Errorf("%s 备注/时间段未复制: %+v", date, entry)
		}
	}
}

func TestCopyFromEmptySourceClearsTargets(t *testing.T) {
	svc, entries, _ := newTestAttendanceService()
	ctx := context.Background()

	// 目标日已有记录，来源日无记录（= WFH），复制应清除目标
	_, err := svc.UpsertEntry(ctx, memberActor, "", &dto.UpsertEntryRequest{
		Date:         "2026-03-16",
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	})
	if err != nil {
		t.Fatalf("预置目标日失败: %v", err)
	}

	result, err := svc.CopyFromDate(ctx, memberActor, "", &dto.CopyFromDateRequest{
		SourceDate:  "2026-03-11",
		TargetDates: []string{"2026-03-16"},
	})
	if err != nil || result.Processed != 1 {
		t.Fatalf("复制空来源失败: %v %+v", err, result)
	}
	if _, err := entries.Get(ctx, memberActor.UserID, "2026-03-16"); err == nil {
		t.Error("目标日应被清除回退到 WFH")
	}
}

func TestRepeatPattern(t *testing.T) {
	svc, _, _ := newTestAttendanceService()

	// 2026-03-16（周一）～ 2026-03-27（周五），周一/三/五
	result, err := svc.RepeatPattern(context.Background(), memberActor, "", &dto.RepeatPatternRequest{
		StartDate:    "2026-03-16",
		EndDate:      "2026-03-27",
		DaysOfWeek:   []int{1, 3, 5},
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	})
	if err != nil {
		t.Fatalf("星期模式失败: %v", err)
	}
	wantDates := []string{"2026-03-16", "2026-03-18", "2026-03-20", "2026-03-23", "2026-03-25", "2026-03-27"}
	if result.Processed != len(wantDates) {
		t.Fatalf("期望 processed=%d，实际=%d", len(wantDates), result.Processed)
	}
	for i, r := range result.Results {
		if r.Date != wantDates[i] {
			t.Errorf("results[%d]：期望 %s，实际=%s", i, wantDates[i], r.Date)
		}
	}
}

func TestRepeatPatternInvertedRange(t *testing.T) {
	svc, _, _ := newTestAttendanceService()
	_, err := svc.RepeatPattern(context.Background(), memberActor, "", &dto.RepeatPatternRequest{
		StartDate:    "2026-03-27",
		EndDate:      "2026-03-16",
		DaysOfWeek:   []int{1},
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("倒置区间期望 ErrInvalidDateRange，实际=%v", err)
	}
}

func TestCopyRangePositionalShift(t *testing.T) {
	svc, entries, _ := newTestAttendanceService()
	ctx := context.Background()

	// 来源 2026-03-11（周三）～03-13（周五）：11 办公、12 空、13 请假
	seed := []dto.UpsertEntryRequest{
		{Date: "2026-03-11", EntryPayload: dto.EntryPayload{Status: model.StatusOffice}},
		{Date: "2026-03-13", EntryPayload: dto.EntryPayload{Status: model.StatusLeave}},
	}
	for _, req := range seed {
		if _, err := svc.UpsertEntry(ctx, memberActor, "", &req); err != nil {
			t.Fatalf("预置来源区间失败: %v", err)
		}
	}
	// 目标区间 03-19 预置记录，验证空来源日会把它清掉
	if _, err := svc.UpsertEntry(ctx, memberActor, "", &dto.UpsertEntryRequest{
		Date:         "2026-03-19",
		EntryPayload: dto.EntryPayload{Status: model.StatusOffice},
	}); err != nil {
		t.Fatalf("预置目标日失败: %v", err)
	}

	// 平移到 2026-03-18（周三）起：18←11、19←12、20←13
	result, err := svc.CopyRange(ctx, memberActor, "", &dto.CopyRangeRequest{
		SourceStart: "2026-03-11",
		SourceEnd:   "2026-03-13",
		TargetStart: "2026-03-18",
	})
	if err != nil {
		t.Fatalf("区间平移失败: %v", err)
	}
	if result.Processed != 3 {
		t.Fatalf("期望 processed=3，实际=%+v", result)
	}

	if e, err := entries.Get(ctx, memberActor.UserID, "2026-03-18"); err != nil || e.Status != model.StatusOffice {
		t.Errorf("2026-03-18 期望 office，实际=%v %v", e, err)
	}
	if _, err := entries.Get(ctx, memberActor.UserID, "2026-03-19"); err == nil {
		t.Error("2026-03-19 来源日为空，应被清除")
	}
	if e, err := entries.Get(ctx, memberActor.UserID, "2026-03-20"); err != nil || e.Status != model.StatusLeave {
		t.Errorf("2026-03-20 期望 leave，实际=%v %v", e, err)
	}
}

func TestListDaysDerivedView(t *testing.T) {
	svc, _, holidays := newTestAttendanceService()
	ctx := context.Background()
	holidays.add("2026-03-12", "Holi")

	if _, err := svc.UpsertEntry(ctx, memberActor, "", &dto.UpsertEntryRequest{
		Date:         "2026-03-11",
		EntryPayload: dto.EntryPayload{Status: model.StatusLeave},
	}); err != nil {
		t.Fatalf("预置失败: %v", err)
	}

	days, err := svc.ListDays(ctx, memberActor, &dto.ListEntriesRequest{
		StartDate: "2026-03-11",
		EndDate:   "2026-03-14",
	})
	if err != nil {
		t.Fatalf("查询区间失败: %v", err)
	}
	if len(days) != 4 {
		t.Fatalf("期望4天，实际=%d", len(days))
	}

	// 派生优先级：weekend > holiday > 存储状态 > wfh
	want := map[string]string{
		"2026-03-11": model.StatusLeave,
		"2026-03-12": model.EffectiveHoliday,
		"2026-03-13": model.StatusWFH,
		"2026-03-14": model.EffectiveWeekend,
	}
	for _, d := range days {
		if d.EffectiveStatus != want[d.Date] {
			t.Errorf("%s 期望 %s，实际=%s", d.Date, want[d.Date], d.EffectiveStatus)
		}
	}
	if days[1].HolidayName != "Holi" {
		t.Errorf("节假日名缺失: %+v", days[1])
	}
	if days[1].Editable || days[3].Editable {
		t.Error("节假日/周末不应可编辑")
	}
	if !days[2].Editable {
		t.Error("工作日应可编辑")
	}
	if days[2].Entry != nil {
		t.Error("无记录日不应返回 entry")
	}
}

// [自证通过] internal/service/bulk_service_test.go
