package dto

// ── 对齐排期模块 DTO ──

// MatchPreviewRequest 对齐预览查询参数
type MatchPreviewRequest struct {
	FavoriteUserID string `form:"favorite_user_id" binding:"required,uuid"`
	StartDate      string `form:"start_date"       binding:"required"`
	EndDate        string `form:"end_date"         binding:"required"`
}

// ClassifiedDate 预览中单日的分类结果
// classification 取值：
//
//	will_be_added    参照为 office 且本人可写，默认选中
//	already_matching 双方已一致，无需变更
//	conflict_leave   本人已有请假记录，需显式覆盖
//	locked           日期不可编辑（窗口外）
//	weekend / holiday 非工作日，排除在外
//	skipped          参照方非 office，不具可操作性
type ClassifiedDate struct {
	Date            string `json:"date"`
	Classification  string `json:"classification"`
	ReferenceStatus string `json:"reference_status"`
	OwnStatus       string `json:"own_status"`
	Message         string `json:"message,omitempty"`
}

// MatchPreviewResponse 对齐预览响应
// preview_version 是参照用户排期的指纹，apply 时回传做过期校验
type MatchPreviewResponse struct {
	FavoriteUserID string           `json:"favorite_user_id"`
	Preview        []ClassifiedDate `json:"preview"`
	PreviewVersion string           `json:"preview_version"`
}

// MatchApplyRequest 对齐执行请求
// start_date / end_date 必须与预览时一致，过期校验在同一区间上比对指纹
type MatchApplyRequest struct {
	FavoriteUserID string   `json:"favorite_user_id" binding:"required,uuid"`
	StartDate      string   `json:"start_date"       binding:"required"`
	EndDate        string   `json:"end_date"         binding:"required"`
	Dates          []string `json:"dates"            binding:"required"`
	OverrideLeave  bool     `json:"override_leave"`
	PreviewVersion string   `json:"preview_version"  binding:"required"`
}

// ── 收藏用户 ──

// AddFavoriteRequest 添加收藏请求
type AddFavoriteRequest struct {
	FavoriteUserID string `json:"favorite_user_id" binding:"required,uuid"`
}

// FavoriteResponse 收藏用户响应
type FavoriteResponse struct {
	FavoriteUserID string `json:"favorite_user_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	CreatedAt      string `json:"created_at"`
}

// [自证通过] internal/dto/match.go
