package importer

import (
	"context"
	"fmt"
	"time"

	"netinv/internal/model"
)

// BatchSize 每批提交的行数
const BatchSize = 50

// DefaultBatchPause 批间停顿，降低注册中心压力
const DefaultBatchPause = 100 * time.Millisecond

// BulkUpserter 注册中心批量提交接口
type BulkUpserter interface {
	BulkUpsert(ctx context.Context, projectID string, devices []model.Device) (model.BatchOutcome, error)
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/batch_start/batch_done/done/error
	Message   string      `json:"message"`   // 事件消息
	Data      interface{} `json:"data"`      // 附加数据
	Timestamp time.Time   `json:"timestamp"` // 时间戳
}

// Orchestrator 批量导入编排器
// 顺序提交、逐批隔离失败、进度单调递增。
type Orchestrator struct {
	registry   BulkUpserter
	batchSize  int
	batchPause time.Duration
}

// NewOrchestrator 创建批量导入编排器
func NewOrchestrator(registry BulkUpserter) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		batchSize:  BatchSize,
		batchPause: DefaultBatchPause,
	}
}

// SetBatchPause 调整批间停顿（测试用）
func (o *Orchestrator) SetBatchPause(d time.Duration) {
	o.batchPause = d
}

// Run 异步执行导入，返回进度通道和汇总通道。
// 进度事件尽力送达，消费不及时会丢弃；汇总走独立的单槽通道，
// 在进度通道关闭后必达一次，调用方以它为准。
func (o *Orchestrator) Run(ctx context.Context, projectID string, devices []model.Device) (<-chan ProgressEvent, <-chan model.ImportSummary) {
	progressChan := make(chan ProgressEvent, 100)
	summaryChan := make(chan model.ImportSummary, 1)

	go func() {
		summary := o.Execute(ctx, projectID, devices, progressChan)
		close(progressChan)
		summaryChan <- summary
	}()

	return progressChan, summaryChan
}

// Execute 同步执行导入。
// 整批失败时该批全部行计为失败并追加一条带批次号的错误，后续批次照常执行；
// 取消只在批与批之间生效，已提交的批次保持已提交。
func (o *Orchestrator) Execute(ctx context.Context, projectID string, devices []model.Device, progressChan chan ProgressEvent) model.ImportSummary {
	total := len(devices)
	totalBatches := (total + o.batchSize - 1) / o.batchSize

	summary := model.ImportSummary{
		Progress: model.ImportProgress{
			Total:        total,
			TotalBatches: totalBatches,
		},
	}

	o.sendProgress(progressChan, ProgressEvent{
		Type:    "start",
		Message: fmt.Sprintf("开始导入 %d 台设备，共 %d 批", total, totalBatches),
		Data: map[string]int{
			"total":        total,
			"totalBatches": totalBatches,
		},
		Timestamp: time.Now(),
	})

	processed := 0
	for i := 0; i < totalBatches; i++ {
		if err := ctx.Err(); err != nil {
			summary.Cancelled = true
			o.sendProgress(progressChan, ProgressEvent{
				Type:      "error",
				Message:   fmt.Sprintf("导入在第 %d 批前被取消", i+1),
				Timestamp: time.Now(),
			})
			break
		}

		start := i * o.batchSize
		end := start + o.batchSize
		if end > total {
			end = total
		}
		batch := devices[start:end]

		o.sendProgress(progressChan, ProgressEvent{
			Type:    "batch_start",
			Message: fmt.Sprintf("正在提交第 %d/%d 批 (%d 行)", i+1, totalBatches, len(batch)),
			Data: map[string]int{
				"batchIndex": i + 1,
				"size":       len(batch),
			},
			Timestamp: time.Now(),
		})

		result := model.ImportBatchResult{
			BatchIndex: i + 1,
			Size:       len(batch),
		}

		outcome, err := o.registry.BulkUpsert(ctx, projectID, batch)
		if err != nil {
			result.Failed = len(batch)
			result.Errors = []string{fmt.Sprintf("批次 %d: %v", i+1, err)}
		} else {
			result.Success = outcome.Success
			result.Failed = outcome.Failed
			result.Errors = outcome.Errors
		}

		summary.Success += result.Success
		summary.Failed += result.Failed
		summary.Errors = append(summary.Errors, result.Errors...)
		summary.Batches = append(summary.Batches, result)

		processed += len(batch)
		if processed > total {
			processed = total
		}
		summary.Progress.Current = processed
		summary.Progress.CurrentBatch = i + 1
		summary.Progress.Percentage = percentage(processed, total)

		o.sendProgress(progressChan, ProgressEvent{
			Type:      "batch_done",
			Message:   fmt.Sprintf("第 %d/%d 批完成: 成功 %d, 失败 %d", i+1, totalBatches, result.Success, result.Failed),
			Data:      result,
			Timestamp: time.Now(),
		})

		// 批间停顿
		if i < totalBatches-1 && o.batchPause > 0 {
			time.Sleep(o.batchPause)
		}
	}

	o.sendProgress(progressChan, ProgressEvent{
		Type:      "done",
		Message:   fmt.Sprintf("导入完成: 成功 %d, 失败 %d", summary.Success, summary.Failed),
		Data:      summary,
		Timestamp: time.Now(),
	})

	return summary
}

func percentage(current, total int) int {
	if total == 0 {
		return 100
	}
	return int(float64(current)/float64(total)*100 + 0.5)
}

// sendProgress 发送进度事件
func (o *Orchestrator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- event:
	default:
		// 通道已满，丢弃事件
	}
}
