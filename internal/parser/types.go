package parser

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat 不支持的文件格式
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseError 文件损坏或无法解码
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SampleRowLimit 预览样本行上限
const SampleRowLimit = 5

// SheetDescriptor 工作表描述
// 内容在解析后不可变，配置（映射、类别）通过 SheetConfig 调整。
type SheetDescriptor struct {
	Name           string            `json:"name"`
	Headers        []string          `json:"headers"`
	HeaderRowIndex int               `json:"headerRowIndex"`
	RowCount       int               `json:"rowCount"`
	SampleRows     [][]string        `json:"sampleRows"`
	Rows           [][]string        `json:"-"` // 全量数据行，仅服务端持有
	AutoMapping    map[string]string `json:"autoMapping"`
	Suggestion     *AssistSuggestion `json:"suggestion,omitempty"`
}

// AssistSuggestion 辅助分析服务对单个工作表的建议
type AssistSuggestion struct {
	IsDeviceSheet  bool              `json:"isDeviceSheet"`
	Category       string            `json:"category,omitempty"`
	Mapping        map[string]string `json:"mapping,omitempty"`
	EstimatedCount int               `json:"estimatedCount,omitempty"`
	Confidence     float64           `json:"confidence,omitempty"`
	Reason         string            `json:"reason,omitempty"`
}

// SheetConfig 操作员对单个工作表的配置决定
type SheetConfig struct {
	SheetName string            `json:"sheetName"`
	Enabled   bool              `json:"enabled"`
	Category  string            `json:"category,omitempty"` // 空或 "auto" 表示自动
	Mapping   map[string]string `json:"mapping,omitempty"`  // 手动覆盖，规范字段 -> 表头
}
