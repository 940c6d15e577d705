package model

// BatchOutcome 注册中心批量提交的返回结果
type BatchOutcome struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// ImportBatchResult 单批提交结果
type ImportBatchResult struct {
	BatchIndex int      `json:"batchIndex"` // 从 1 开始
	Size       int      `json:"size"`
	Success    int      `json:"success"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// ImportProgress 进度计数
type ImportProgress struct {
	Current      int `json:"current"`
	Total        int `json:"total"`
	CurrentBatch int `json:"currentBatch"`
	TotalBatches int `json:"totalBatches"`
	Percentage   int `json:"percentage"`
}

// ImportSummary 会话级导入汇总
type ImportSummary struct {
	Success   int                 `json:"success"`
	Failed    int                 `json:"failed"`
	Errors    []string            `json:"errors,omitempty"`
	Batches   []ImportBatchResult `json:"batches,omitempty"`
	Progress  ImportProgress      `json:"progress"`
	Cancelled bool                `json:"cancelled,omitempty"`
}

// CorrectionRecord 单个 IP 修正记录
type CorrectionRecord struct {
	Original     string     `json:"original"`
	Corrected    string     `json:"corrected,omitempty"` // 未修正时为空
	WasCorrected bool       `json:"wasCorrected"`
	Confidence   Confidence `json:"confidence,omitempty"`
	Method       string     `json:"method,omitempty"`
	Serial       string     `json:"serial,omitempty"`
	Model        string     `json:"model,omitempty"`
}

// CorrectionStats IP 修正统计
type CorrectionStats struct {
	Total     int `json:"total"`
	Corrected int `json:"corrected"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}
