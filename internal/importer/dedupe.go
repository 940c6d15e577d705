package importer

import (
	"strings"

	"netinv/internal/model"
)

// FindDuplicates 将入库行与注册中心已有记录做匹配。
// 匹配顺序：先按 IP（忽略大小写精确匹配），再按序列号；
// 两者都命中的行只报告一次，标记为 IP 命中。默认动作 update。
// 返回匹配列表和未命中行的下标。
func FindDuplicates(incoming []model.Device, existing []model.RegistryDevice) (matches []model.DuplicateMatch, newIndexes []int) {
	existingByIP := make(map[string]model.RegistryDevice)
	existingBySerial := make(map[string]model.RegistryDevice)

	for _, e := range existing {
		if e.IPAddress != "" {
			key := strings.ToLower(e.IPAddress)
			if _, ok := existingByIP[key]; !ok {
				existingByIP[key] = e
			}
		}
		if e.SerialNumber != "" {
			if _, ok := existingBySerial[e.SerialNumber]; !ok {
				existingBySerial[e.SerialNumber] = e
			}
		}
	}

	for i, d := range incoming {
		var matched model.RegistryDevice
		var matchedBy string

		if d.IPAddress != "" {
			if e, ok := existingByIP[strings.ToLower(d.IPAddress)]; ok {
				matched = e
				matchedBy = model.FieldIPAddress
			}
		}
		if matchedBy == "" && d.SerialNumber != "" {
			if e, ok := existingBySerial[d.SerialNumber]; ok {
				matched = e
				matchedBy = model.FieldSerialNumber
			}
		}

		if matchedBy == "" {
			newIndexes = append(newIndexes, i)
			continue
		}

		matches = append(matches, model.DuplicateMatch{
			Index:     i,
			Incoming:  d,
			Existing:  matched,
			MatchedBy: matchedBy,
			Action:    model.ActionUpdate,
		})
	}

	return matches, newIndexes
}

// MergeFields 字段级合并：已有值非空则保留，否则取入库值
func MergeFields(existing, incoming model.DeviceFields) model.DeviceFields {
	merged := existing
	for _, field := range model.CanonicalFields {
		if merged.Get(field) == "" {
			merged.Set(field, incoming.Get(field))
		}
	}
	return merged
}

// ResolveDecisions 按决策动作生成最终提交集。
// update 整体替换，skip 丢弃入库行，merge 按字段合并；未命中的行原样插入。
func ResolveDecisions(incoming []model.Device, matches []model.DuplicateMatch) []model.Device {
	decisionByIndex := make(map[int]model.DuplicateMatch, len(matches))
	for _, m := range matches {
		decisionByIndex[m.Index] = m
	}

	out := make([]model.Device, 0, len(incoming))
	for i, d := range incoming {
		m, matched := decisionByIndex[i]
		if !matched {
			out = append(out, d)
			continue
		}

		switch m.Action {
		case model.ActionSkip:
			continue
		case model.ActionMerge:
			d.DeviceFields = MergeFields(m.Existing.DeviceFields, d.DeviceFields)
			d.Decision = model.ActionMerge
			d.ExistingID = m.Existing.ID
		default:
			d.Decision = model.ActionUpdate
			d.ExistingID = m.Existing.ID
		}
		out = append(out, d)
	}

	return out
}
