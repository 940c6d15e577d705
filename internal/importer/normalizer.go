package importer

import (
	"fmt"
	"strings"

	"netinv/internal/model"
	"netinv/internal/parser"
)

// 校验错误/警告文案（对外契约，保持英文）
const (
	errIPMissing     = "IP address missing"
	errSerialMissing = "Serial number missing"
	warnModelMissing = "Model missing"
	warnMalformedIP  = "malformed IP format"
)

// NormalizeSheet 将单个工作表的原始行按有效映射转换为规范设备记录。
// 完全空白的行（关键字段全部为空）在校验前被过滤掉。
func NormalizeSheet(sheet *parser.SheetDescriptor, mapping map[string]string) []model.Device {
	columnIndex := make(map[string]int, len(sheet.Headers))
	for i, header := range sheet.Headers {
		if header == "" {
			continue
		}
		if _, ok := columnIndex[header]; !ok {
			columnIndex[header] = i
		}
	}

	devices := make([]model.Device, 0, len(sheet.Rows))
	for rowIdx, row := range sheet.Rows {
		device := model.Device{
			SourceSheet: sheet.Name,
			RowIndex:    rowIdx,
		}

		for field, header := range mapping {
			col, ok := columnIndex[header]
			if !ok || col >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[col])
			if field == model.FieldIPAddress {
				// IP 字段内部空白一并去除
				value = strings.Join(strings.Fields(value), "")
			}
			device.Set(field, value)
		}

		if isEmptyDevice(&device) {
			continue
		}

		device.Status = NormalizeStatus(device.Status)
		device.Validation = Validate(&device)
		devices = append(devices, device)
	}

	return devices
}

// isEmptyDevice 关键字段全部为空视为空行
func isEmptyDevice(d *model.Device) bool {
	return d.IPAddress == "" &&
		d.SerialNumber == "" &&
		d.MACAddress == "" &&
		d.Model == "" &&
		d.Hostname == ""
}

// Validate 逐项校验单条设备记录，所有错误/警告独立累积，不短路。
// 有任一错误则该行无效，除非后续修正后重新校验。
func Validate(d *model.Device) model.ValidationResult {
	var errors []string
	var warnings []string

	if d.IPAddress == "" {
		errors = append(errors, errIPMissing)
	}
	if d.SerialNumber == "" {
		errors = append(errors, errSerialMissing)
	}
	if d.Model == "" {
		warnings = append(warnings, warnModelMissing)
	}

	if d.IPAddress != "" && !parser.IsWellFormedIP(d.IPAddress) {
		warnings = append(warnings, warnMalformedIP)
	}

	if d.MACAddress != "" && !parser.IsWellFormedMAC(d.MACAddress) {
		warnings = append(warnings, fmt.Sprintf("MAC address may be invalid: %s", d.MACAddress))
	}

	return model.ValidationResult{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// statusMappings 常见状态写法归一
var statusMappings = map[string]string{
	"online":  model.StatusActive,
	"on":      model.StatusActive,
	"ok":      model.StatusActive,
	"up":      model.StatusActive,
	"offline": model.StatusInactive,
	"off":     model.StatusInactive,
	"down":    model.StatusInactive,
}

// NormalizeStatus 状态归一化，非法值回退为 active
func NormalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return model.StatusActive
	}
	if mapped, ok := statusMappings[s]; ok {
		return mapped
	}
	switch s {
	case model.StatusActive, model.StatusInactive, model.StatusMaintenance, model.StatusError:
		return s
	}
	return model.StatusActive
}

// CountValid 统计有效/无效行数
func CountValid(devices []model.Device) (valid, invalid int) {
	for i := range devices {
		if devices[i].Validation.Valid {
			valid++
		} else {
			invalid++
		}
	}
	return valid, invalid
}
