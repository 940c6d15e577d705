package importer

import (
	"testing"

	"netinv/internal/model"
)

func TestIsMalformedIP(t *testing.T) {
	t.Parallel()

	malformed := []string{"10000045", "45", "192168001100"}
	for _, s := range malformed {
		if !IsMalformedIP(s) {
			t.Fatalf("%s 应判定为畸形 IP", s)
		}
	}
	notMalformed := []string{"192.168.1.1", "", "abc", "1234567890123", "SN-45"}
	for _, s := range notMalformed {
		if IsMalformedIP(s) {
			t.Fatalf("%s 不应判定为畸形 IP", s)
		}
	}
}

func TestSuggestCorrection_LastDigits(t *testing.T) {
	t.Parallel()

	corrected, confidence, ok := SuggestCorrection("10000045", "10.0.0", 3)
	if !ok {
		t.Fatalf("expected correction")
	}
	if corrected != "10.0.0.45" {
		t.Fatalf("corrected: got %q", corrected)
	}
	// 末 3 位 "045" 仍属于 hostDigits < len 的情形
	if confidence != model.ConfidenceMedium {
		t.Fatalf("confidence: got %q", confidence)
	}
}

func TestSuggestCorrection_FullValueHighConfidence(t *testing.T) {
	t.Parallel()

	corrected, confidence, ok := SuggestCorrection("45", "10.0.0", 2)
	if !ok || corrected != "10.0.0.45" {
		t.Fatalf("corrected: %q ok=%v", corrected, ok)
	}
	if confidence != model.ConfidenceHigh {
		t.Fatalf("全部位数作主机号应为 high, got %q", confidence)
	}
}

func TestSuggestCorrection_TwoOctetPrefix(t *testing.T) {
	t.Parallel()

	// 前导数字充当第三段
	corrected, _, ok := SuggestCorrection("5100", "10.0", 2)
	if !ok || corrected != "10.0.51.0" {
		t.Fatalf("corrected: %q ok=%v", corrected, ok)
	}

	// 第三段超 255 则失败
	if _, _, ok := SuggestCorrection("999100", "10.0", 2); ok {
		t.Fatalf("第三段超界应失败")
	}
}

func TestSuggestCorrection_Failures(t *testing.T) {
	t.Parallel()

	if _, _, ok := SuggestCorrection("45", "", 2); ok {
		t.Fatalf("无前缀应失败")
	}
	if _, _, ok := SuggestCorrection("999", "10.0.0", 3); ok {
		t.Fatalf("主机号超 255 应失败")
	}
	if _, _, ok := SuggestCorrection("4", "10.0.0", 3); ok {
		t.Fatalf("位数不足应失败")
	}
	if _, _, ok := SuggestCorrection("45", "10", 2); ok {
		t.Fatalf("单段前缀应失败")
	}
}

func TestDetectPrefix(t *testing.T) {
	t.Parallel()

	// 3/4 覆盖过半
	ips := []string{"192.168.1.10", "192.168.1.11", "192.168.1.12", "10.0.0.1"}
	if got := DetectPrefix(ips); got != "192.168.1" {
		t.Fatalf("prefix: got %q", got)
	}

	// 均分时仍满足一半覆盖，取字典序靠前者
	even := []string{"192.168.1.10", "10.0.0.1"}
	if got := DetectPrefix(even); got != "10.0.0" {
		t.Fatalf("prefix: got %q", got)
	}

	if got := DetectPrefix(nil); got != "" {
		t.Fatalf("空集应返回空, got %q", got)
	}
}

func TestAnalyzeIPs(t *testing.T) {
	t.Parallel()

	devices := make([]model.Device, 3)
	devices[0].IPAddress = "192.168.1.10"
	devices[1].IPAddress = "192.168.1.11"
	devices[2].IPAddress = "19216800145"

	analysis := AnalyzeIPs(devices)
	if !analysis.HasMalformed || analysis.MalformedCount != 1 {
		t.Fatalf("analysis: %+v", analysis)
	}
	if analysis.ValidCount != 2 {
		t.Fatalf("valid count: got %d", analysis.ValidCount)
	}
	if analysis.DetectedPrefix != "192.168.1" {
		t.Fatalf("prefix: got %q", analysis.DetectedPrefix)
	}
	if analysis.SuggestedAction != "use_detected_prefix" {
		t.Fatalf("action: got %q", analysis.SuggestedAction)
	}
	if len(analysis.Samples[11]) != 1 {
		t.Fatalf("samples: %+v", analysis.Samples)
	}
}

func TestAnalyzeIPs_NoMalformed(t *testing.T) {
	t.Parallel()

	devices := make([]model.Device, 1)
	devices[0].IPAddress = "192.168.1.10"

	analysis := AnalyzeIPs(devices)
	if analysis.SuggestedAction != "none" {
		t.Fatalf("action: got %q", analysis.SuggestedAction)
	}
}

func TestApplyCorrections(t *testing.T) {
	t.Parallel()

	devices := make([]model.Device, 3)
	devices[0].IPAddress = "10000045"
	devices[0].SerialNumber = "SN0000001"
	devices[0].Model = "DS-2CD2385"
	devices[0].Validation = Validate(&devices[0])
	devices[1].IPAddress = "10.0.0.1"
	devices[1].SerialNumber = "SN0000002"
	devices[1].Model = "DS-7732NI"
	devices[1].Validation = Validate(&devices[1])
	devices[2].SerialNumber = "SN0000003"
	devices[2].Validation = Validate(&devices[2])

	out, stats, records := ApplyCorrections(devices, "10.0.0", 3)

	if stats.Total != 3 || stats.Corrected != 1 || stats.Unchanged != 2 || stats.Failed != 0 {
		t.Fatalf("stats: %+v", stats)
	}
	if len(records) != len(out) {
		t.Fatalf("记录应与设备逐行对齐: %d vs %d", len(records), len(out))
	}

	d := out[0]
	if d.IPAddress != "10.0.0.45" || !d.IPCorrected || d.OriginalIP != "10000045" {
		t.Fatalf("corrected device: %+v", d)
	}
	if !records[0].WasCorrected || records[0].Corrected != "10.0.0.45" {
		t.Fatalf("record: %+v", records[0])
	}
	// 修正方式是对外字段，和其余契约串一样走英文
	if d.CorrectionMethod != "10.0.0.x + last 3 digits" {
		t.Fatalf("correction method: %q", d.CorrectionMethod)
	}
	if records[0].Method != d.CorrectionMethod {
		t.Fatalf("record method: %q", records[0].Method)
	}
	// 修正后重新校验，畸形 IP 警告消失
	if !d.Validation.Valid {
		t.Fatalf("修正行应重新通过校验: %+v", d.Validation)
	}
	for _, w := range d.Validation.Warnings {
		if w == "malformed IP format" {
			t.Fatalf("修正后不应再有畸形警告: %v", d.Validation.Warnings)
		}
	}

	// 原切片不被改写
	if devices[0].IPAddress != "10000045" {
		t.Fatalf("输入切片被修改: %q", devices[0].IPAddress)
	}
}

func TestApplyCorrections_UniquenessDowngrade(t *testing.T) {
	t.Parallel()

	devices := make([]model.Device, 2)
	devices[0].IPAddress = "45"
	devices[0].SerialNumber = "SN0000001"
	devices[1].IPAddress = "45"
	devices[1].SerialNumber = "SN0000002"

	out, _, records := ApplyCorrections(devices, "10.0.0", 2)

	for i := range out {
		if out[i].CorrectionConfidence != model.ConfidenceMedium {
			t.Fatalf("冲突的 high 应降为 medium, device %d: %q", i, out[i].CorrectionConfidence)
		}
		if records[i].Confidence != model.ConfidenceMedium {
			t.Fatalf("record %d confidence: %q", i, records[i].Confidence)
		}
	}
}
