package importer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"netinv/internal/model"
	"netinv/internal/parser"
)

// IsMalformedIP 判断是否为疑似去掉点号的 IP 值（纯数字 1-12 位）
func IsMalformedIP(value string) bool {
	s := strings.TrimSpace(value)
	if s == "" || len(s) > 12 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return !parser.IsWellFormedIP(s)
}

// IPAnalysis 畸形 IP 分析结果
type IPAnalysis struct {
	HasMalformed    bool             `json:"hasMalformed"`
	MalformedCount  int              `json:"malformedCount"`
	ValidCount      int              `json:"validCount"`
	Samples         map[int][]string `json:"samples"` // 按位数分组的样本
	DetectedPrefix  string           `json:"detectedPrefix,omitempty"`
	SuggestedAction string           `json:"suggestedAction"` // use_detected_prefix / request_prefix / none
}

// AnalyzeIPs 扫描设备集中的畸形 IP，并尝试从规范 IP 推断网段前缀
func AnalyzeIPs(devices []model.Device) IPAnalysis {
	analysis := IPAnalysis{
		Samples: make(map[int][]string),
	}

	var valid []string
	for i := range devices {
		ip := devices[i].IPAddress
		if ip == "" {
			continue
		}
		if IsMalformedIP(ip) {
			analysis.MalformedCount++
			if len(analysis.Samples[len(ip)]) < 5 {
				analysis.Samples[len(ip)] = append(analysis.Samples[len(ip)], ip)
			}
		} else if parser.IsWellFormedIP(ip) {
			valid = append(valid, ip)
		}
	}

	analysis.HasMalformed = analysis.MalformedCount > 0
	analysis.ValidCount = len(valid)
	analysis.DetectedPrefix = DetectPrefix(valid)

	switch {
	case !analysis.HasMalformed:
		analysis.SuggestedAction = "none"
	case analysis.DetectedPrefix != "":
		analysis.SuggestedAction = "use_detected_prefix"
	default:
		analysis.SuggestedAction = "request_prefix"
	}

	return analysis
}

// DetectPrefix 从规范 IP 中推断三段式网段前缀。
// 当某个前缀覆盖至少一半的规范 IP 时采纳，否则返回空。
func DetectPrefix(validIPs []string) string {
	if len(validIPs) == 0 {
		return ""
	}

	counts := make(map[string]int)
	for _, ip := range validIPs {
		parts := strings.Split(ip, ".")
		prefix := strings.Join(parts[:3], ".")
		counts[prefix]++
	}

	type prefixCount struct {
		prefix string
		count  int
	}
	sorted := make([]prefixCount, 0, len(counts))
	for p, c := range counts {
		sorted = append(sorted, prefixCount{p, c})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].prefix < sorted[j].prefix
	})

	if sorted[0].count*2 >= len(validIPs) {
		return sorted[0].prefix
	}
	return ""
}

// SuggestCorrection 按"末尾 N 位为主机号"策略把纯数字值还原为点分地址。
// 前缀为两段时，剩余前导数字充当第三段；无法凑出合法八位组则修正失败。
func SuggestCorrection(malformed, networkPrefix string, hostDigits int) (corrected string, confidence model.Confidence, ok bool) {
	str := strings.TrimSpace(malformed)
	if networkPrefix == "" || hostDigits < 1 || hostDigits > 3 || len(str) < hostDigits {
		return "", "", false
	}

	prefixParts := splitPrefix(networkPrefix)
	if len(prefixParts) < 2 || len(prefixParts) > 3 {
		return "", "", false
	}

	hostStr := str[len(str)-hostDigits:]
	hostNum, err := strconv.Atoi(hostStr)
	if err != nil || hostNum > 255 {
		return "", "", false
	}

	leading := str[:len(str)-hostDigits]

	var full string
	if len(prefixParts) == 3 {
		full = fmt.Sprintf("%s.%d", strings.Join(prefixParts, "."), hostNum)
	} else {
		third := 0
		if leading != "" {
			third, err = strconv.Atoi(leading)
			if err != nil || third > 255 {
				return "", "", false
			}
		}
		full = fmt.Sprintf("%s.%d.%d", strings.Join(prefixParts, "."), third, hostNum)
	}

	if !parser.IsWellFormedIP(full) {
		return "", "", false
	}

	switch {
	case hostDigits == len(str):
		confidence = model.ConfidenceHigh
	case hostDigits >= 2:
		confidence = model.ConfidenceMedium
	default:
		confidence = model.ConfidenceLow
	}

	return full, confidence, true
}

func splitPrefix(prefix string) []string {
	raw := strings.Split(strings.TrimSuffix(strings.TrimSpace(prefix), "."), ".")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// ApplyCorrections 对整个设备集应用 IP 修正。
// 只改写 ip_address，其余字段保持原样；已规范的值原样通过。
// 修正成功的行重新校验，使其可进入提交集。
func ApplyCorrections(devices []model.Device, networkPrefix string, hostDigits int) ([]model.Device, model.CorrectionStats, []model.CorrectionRecord) {
	if hostDigits < 1 || hostDigits > 3 {
		hostDigits = 3
	}

	stats := model.CorrectionStats{Total: len(devices)}
	records := make([]model.CorrectionRecord, 0, len(devices))
	out := make([]model.Device, len(devices))
	copy(out, devices)

	// 修正后地址的出现次数，用于唯一性降级
	correctedCounts := make(map[string]int)

	for i := range out {
		d := &out[i]
		record := model.CorrectionRecord{
			Original: d.IPAddress,
			Serial:   d.SerialNumber,
			Model:    d.Model,
		}

		if d.IPAddress == "" || parser.IsWellFormedIP(d.IPAddress) || !IsMalformedIP(d.IPAddress) {
			stats.Unchanged++
			records = append(records, record)
			continue
		}

		corrected, confidence, ok := SuggestCorrection(d.IPAddress, networkPrefix, hostDigits)
		if !ok {
			stats.Failed++
			records = append(records, record)
			continue
		}

		d.OriginalIP = d.IPAddress
		d.IPAddress = corrected
		d.IPCorrected = true
		d.CorrectionConfidence = confidence
		d.CorrectionMethod = fmt.Sprintf("%s.x + last %d digits", networkPrefix, hostDigits)
		d.Validation = Validate(d)
		stats.Corrected++
		correctedCounts[corrected]++

		record.Corrected = corrected
		record.WasCorrected = true
		record.Confidence = confidence
		record.Method = d.CorrectionMethod
		records = append(records, record)
	}

	// 高置信度要求修正结果在本批内唯一，冲突则降为 medium
	for i := range out {
		d := &out[i]
		if d.IPCorrected && d.CorrectionConfidence == model.ConfidenceHigh && correctedCounts[d.IPAddress] > 1 {
			d.CorrectionConfidence = model.ConfidenceMedium
			records[i].Confidence = model.ConfidenceMedium
		}
	}

	return out, stats, records
}
