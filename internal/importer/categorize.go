package importer

import (
	"regexp"
	"strings"

	"netinv/internal/model"
)

// DetectDeviceType 基于型号字符串的子串规则推断设备类别。
// 规则按优先级排列，全部不命中回退 other。
func DetectDeviceType(modelStr string) string {
	m := strings.ToLower(modelStr)

	switch {
	case strings.Contains(m, "ds-k"), strings.Contains(m, "controller"):
		return "controller"
	case strings.Contains(m, "ds-2cd"), strings.Contains(m, "camera"), strings.Contains(m, "cam"):
		return "camera"
	case strings.Contains(m, "nvr"), strings.Contains(m, "ds-7"):
		return "nvr"
	case strings.Contains(m, "dvr"):
		return "dvr"
	case strings.Contains(m, "switch"):
		return "switch"
	case strings.Contains(m, "router"):
		return "router"
	case strings.Contains(m, "firewall"):
		return "firewall"
	case strings.Contains(m, "ap"), strings.Contains(m, "wifi"):
		return "access_point"
	}
	return model.CategoryOther
}

// categoryAliases 常见类别写法归一
var categoryAliases = map[string]string{
	"cameras":       "camera",
	"switches":      "switch",
	"routers":       "router",
	"access points": "access_point",
	"access_points": "access_point",
	"ap_wifi":       "access_point",
	"nvrs":          "nvr",
	"server":        "controller",
	"sensor":        "converter",
}

// NormalizeCategorySlug 把类别写法归一到约定集合，未知类别回退 other
func NormalizeCategorySlug(slug string) string {
	s := strings.ToLower(strings.TrimSpace(slug))
	if s == "" {
		return model.CategoryOther
	}
	if mapped, ok := categoryAliases[s]; ok {
		s = mapped
	}
	if model.IsKnownCategory(s) {
		return s
	}
	if trimmed := strings.TrimSuffix(s, "s"); model.IsKnownCategory(trimmed) {
		return trimmed
	}
	return model.CategoryOther
}

// AssistCategory 辅助服务对单行的类别建议
type AssistCategory struct {
	Category   string           `json:"category"`
	Confidence model.Confidence `json:"confidence"`
	Reason     string           `json:"reason,omitempty"`
}

// Categorize 为设备集分配类别。
// 优先级：工作表级指定 > 辅助建议 > 型号子串规则。
func Categorize(devices []model.Device, sheetOverrides map[string]string, assisted map[int]AssistCategory) []model.Device {
	out := make([]model.Device, len(devices))
	copy(out, devices)

	for i := range out {
		d := &out[i]

		if override, ok := sheetOverrides[d.SourceSheet]; ok && override != "" && override != "auto" {
			d.Category = NormalizeCategorySlug(override)
			d.CategoryConfidence = model.ConfidenceHigh
			d.CategoryReason = "sheet override"
			continue
		}

		if suggestion, ok := assisted[i]; ok && suggestion.Category != "" {
			d.Category = NormalizeCategorySlug(suggestion.Category)
			d.CategoryConfidence = suggestion.Confidence
			if d.CategoryConfidence == "" {
				d.CategoryConfidence = model.ConfidenceMedium
			}
			d.CategoryReason = suggestion.Reason
			if d.CategoryReason == "" {
				d.CategoryReason = "assisted suggestion"
			}
			continue
		}

		d.Category = DetectDeviceType(d.Model)
		if d.Category == model.CategoryOther {
			d.CategoryConfidence = model.ConfidenceLow
			d.CategoryReason = "fallback"
		} else {
			d.CategoryConfidence = model.ConfidenceMedium
			d.CategoryReason = "model keyword match"
		}
	}

	return out
}

// 型号前缀对应的厂商规则
var manufacturerPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"Hikvision", regexp.MustCompile(`(?i)^(ds-2cd|ds-2td|ds-7|ds-96|ds-k|ds-)|hikvision`)},
	{"Dahua", regexp.MustCompile(`(?i)^(dh-|dhi-|ipc-hdw|xvr)|dahua`)},
	{"Intelbras", regexp.MustCompile(`(?i)^(vip-|vhd-|vhl-|mhdx|imhdx|nvd)|intelbras`)},
	{"HiLook", regexp.MustCompile(`(?i)^(ipc-b|ipc-t)|hilook`)},
	{"Axis", regexp.MustCompile(`(?i)^[pmqf]\d{4}|axis`)},
	{"Cisco", regexp.MustCompile(`(?i)^(ws-|ie-|c9|cat|sg|sf)|cisco`)},
	{"Ubiquiti", regexp.MustCompile(`(?i)^(usg|usw|uap|udm|uvc)|ubiquiti|unifi`)},
	{"TP-Link", regexp.MustCompile(`(?i)^(tl-|archer|deco)|tp-link`)},
	{"MikroTik", regexp.MustCompile(`(?i)^(rb|ccr|crs|hex|hap)|mikrotik|routerboard`)},
}

// DetectManufacturer 从型号或序列号推断厂商，识别不出返回空
func DetectManufacturer(modelStr, serialNumber string) string {
	for _, p := range manufacturerPatterns {
		if p.pattern.MatchString(modelStr) || p.pattern.MatchString(serialNumber) {
			return p.name
		}
	}
	return ""
}

// FillManufacturer 厂商字段为空时尝试自动推断
func FillManufacturer(devices []model.Device) []model.Device {
	out := make([]model.Device, len(devices))
	copy(out, devices)
	for i := range out {
		if out[i].Manufacturer == "" {
			out[i].Manufacturer = DetectManufacturer(out[i].Model, out[i].SerialNumber)
		}
	}
	return out
}
