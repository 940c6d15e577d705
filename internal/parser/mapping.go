package parser

import "netinv/internal/model"

// MergeMapping 合成有效列映射。
// 优先级：手动覆盖 > 辅助建议 > 自动别名匹配；都没有则该字段不映射。
// 纯函数，对相同输入输出恒定。
func MergeMapping(auto, assisted, manual map[string]string) map[string]string {
	effective := make(map[string]string)

	for _, field := range model.CanonicalFields {
		if header, ok := manual[field]; ok && header != "" {
			effective[field] = header
			continue
		}
		if header, ok := assisted[field]; ok && header != "" {
			effective[field] = header
			continue
		}
		if header, ok := auto[field]; ok && header != "" {
			effective[field] = header
		}
	}

	return effective
}

// EffectiveMapping 根据工作表描述和操作员配置计算有效映射
func EffectiveMapping(sheet *SheetDescriptor, config *SheetConfig) map[string]string {
	var assisted map[string]string
	if sheet.Suggestion != nil {
		assisted = sheet.Suggestion.Mapping
	}
	var manual map[string]string
	if config != nil {
		manual = config.Mapping
	}
	return MergeMapping(sheet.AutoMapping, assisted, manual)
}
