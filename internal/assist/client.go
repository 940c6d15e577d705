package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"netinv/internal/importer"
	"netinv/internal/model"
	"netinv/internal/parser"
)

// Client 辅助分类服务客户端。
// 服务不可用时各调用方直接跳过该阶段，不影响主流程。
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
}

// NewClient 创建辅助服务客户端，baseURL 为空表示禁用
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		enabled:    baseURL != "",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Available 探测服务可用性
func (c *Client) Available(ctx context.Context) bool {
	if !c.enabled {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// sheetSummary 发给辅助服务的工作表摘要（只带表头和样本行）
type sheetSummary struct {
	Name       string     `json:"name"`
	Headers    []string   `json:"headers"`
	RowCount   int        `json:"rowCount"`
	SampleRows [][]string `json:"sampleRows"`
}

// AnalyzeSheets 请求对各工作表的列映射与类别建议。
// 返回按工作表名索引的建议；失败时返回错误，由调用方降级。
func (c *Client) AnalyzeSheets(ctx context.Context, sheets []parser.SheetDescriptor) (map[string]*parser.AssistSuggestion, error) {
	if !c.enabled {
		return nil, nil
	}

	summaries := make([]sheetSummary, len(sheets))
	for i, s := range sheets {
		summaries[i] = sheetSummary{
			Name:       s.Name,
			Headers:    s.Headers,
			RowCount:   s.RowCount,
			SampleRows: s.SampleRows,
		}
	}

	var out struct {
		Sheets []struct {
			Name       string                  `json:"name"`
			Suggestion parser.AssistSuggestion `json:"suggestion"`
		} `json:"sheets"`
	}
	if err := c.postJSON(ctx, "/analyze-sheets", map[string]interface{}{"sheets": summaries}, &out); err != nil {
		return nil, err
	}

	suggestions := make(map[string]*parser.AssistSuggestion, len(out.Sheets))
	for i := range out.Sheets {
		s := out.Sheets[i].Suggestion
		suggestions[out.Sheets[i].Name] = &s
	}
	return suggestions, nil
}

// deviceSummary 发给辅助服务的单行摘要
type deviceSummary struct {
	Model        string `json:"model,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Hostname     string `json:"hostname,omitempty"`
	Description  string `json:"description,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
}

// Categorization 辅助服务返回的单行类别建议
type Categorization struct {
	OriginalIndex int              `json:"original_index"`
	Category      string           `json:"suggested_category"`
	Confidence    model.Confidence `json:"confidence"`
	Reason        string           `json:"reason,omitempty"`
	Manufacturer  string           `json:"manufacturer,omitempty"`
}

// CategorizeDevices 请求对未定类别的行做分类建议
func (c *Client) CategorizeDevices(ctx context.Context, devices []model.Device, categories []string) ([]Categorization, error) {
	if !c.enabled {
		return nil, nil
	}

	summaries := make([]deviceSummary, len(devices))
	for i, d := range devices {
		summaries[i] = deviceSummary{
			Model:        d.Model,
			Manufacturer: d.Manufacturer,
			Hostname:     d.Hostname,
			Description:  d.Description,
			SerialNumber: d.SerialNumber,
		}
	}

	var out struct {
		Categorizations []Categorization `json:"categorizations"`
	}
	payload := map[string]interface{}{
		"devices":    summaries,
		"categories": categories,
	}
	if err := c.postJSON(ctx, "/categorize-devices", payload, &out); err != nil {
		return nil, err
	}
	return out.Categorizations, nil
}

// ToAssistCategories 把建议列表转成按行下标索引的映射
func ToAssistCategories(cats []Categorization) map[int]importer.AssistCategory {
	out := make(map[int]importer.AssistCategory, len(cats))
	for _, c := range cats {
		out[c.OriginalIndex] = importer.AssistCategory{
			Category:   c.Category,
			Confidence: c.Confidence,
			Reason:     c.Reason,
		}
	}
	return out
}

func (c *Client) postJSON(ctx context.Context, path string, payload, v interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("assist request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("assist service returned %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
