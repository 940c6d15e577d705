package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"netinv/internal/model"
)

// Client 设备注册中心客户端
// 注册中心负责设备记录的持久化和写并发控制，这里只做协议封装。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建注册中心客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// bulkUpsertRequest 批量提交请求体
type bulkUpsertRequest struct {
	ProjectID string         `json:"projectId"`
	Devices   []model.Device `json:"devices"`
}

// BulkUpsert 批量提交设备（insert 或按决策 update/merge 后的整行）
func (c *Client) BulkUpsert(ctx context.Context, projectID string, devices []model.Device) (model.BatchOutcome, error) {
	var outcome model.BatchOutcome

	body, err := json.Marshal(bulkUpsertRequest{ProjectID: projectID, Devices: devices})
	if err != nil {
		return outcome, fmt.Errorf("marshal bulk upsert request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/devices/bulk-upsert", bytes.NewReader(body))
	if err != nil {
		return outcome, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Project-ID", projectID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return outcome, fmt.Errorf("bulk upsert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return outcome, fmt.Errorf("bulk upsert: registry returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return outcome, fmt.Errorf("decode bulk upsert response: %w", err)
	}
	return outcome, nil
}

// ListDevices 列出项目下已有设备，用于重复检测
func (c *Client) ListDevices(ctx context.Context, projectID string) ([]model.RegistryDevice, error) {
	var out struct {
		Devices []model.RegistryDevice `json:"devices"`
	}
	if err := c.getJSON(ctx, "/devices?project_id="+url.QueryEscape(projectID), projectID, &out); err != nil {
		return nil, err
	}
	return out.Devices, nil
}

// ListCategories 列出类别参考数据
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out struct {
		Categories []model.Category `json:"categories"`
	}
	if err := c.getJSON(ctx, "/categories", "", &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// ListVLANs 列出项目下的 VLAN 参考数据
func (c *Client) ListVLANs(ctx context.Context, projectID string) ([]model.VLAN, error) {
	var out struct {
		VLANs []model.VLAN `json:"vlans"`
	}
	if err := c.getJSON(ctx, "/vlans?project_id="+url.QueryEscape(projectID), projectID, &out); err != nil {
		return nil, err
	}
	return out.VLANs, nil
}

func (c *Client) getJSON(ctx context.Context, path, projectID string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if projectID != "" {
		req.Header.Set("X-Project-ID", projectID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("registry request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("registry returned %d for %s: %s", resp.StatusCode, path, bytes.TrimSpace(msg))
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
