package parser

import "netinv/internal/model"

// fieldAliases 规范字段 -> 可接受的表头别名（精确匹配，区分大小写）。
// 覆盖通用命名和 SADP 发现工具导出的表头。
// 注意 SADP 的 "Device Type" 实际是型号列，映射到 model。
var fieldAliases = map[string][]string{
	model.FieldIPAddress: {
		"ip_address", "ip", "IP", "IP Address", "IPv4 Address", "IPV4 Address", "IPv4",
	},
	model.FieldSerialNumber: {
		"serial_number", "serial", "Serial", "Serial Number", "Device Serial Number", "SN", "S/N",
	},
	model.FieldModel: {
		"model", "Model", "Model Name", "Device Type", "device_type", "Product", "Type",
	},
	model.FieldManufacturer: {
		"manufacturer", "Manufacturer", "Vendor", "Brand", "Make",
	},
	model.FieldHostname: {
		"hostname", "Hostname", "Host", "Device Name", "device_name", "Name", "Tag",
	},
	model.FieldMACAddress: {
		"mac_address", "mac", "MAC", "MAC Address", "Physical Address",
	},
	model.FieldFirmwareVersion: {
		"firmware", "firmware_version", "Firmware", "Firmware Version", "Software Version", "Version",
	},
	model.FieldStatus: {
		"status", "Status", "State",
	},
	model.FieldLocation: {
		"location", "Location", "Site", "Rack", "Area",
	},
	model.FieldDescription: {
		"description", "Description", "Notes", "Comments",
	},
	model.FieldGateway: {
		"gateway", "Gateway", "IPv4 Gateway", "Default Gateway", "GW",
	},
	model.FieldSubnetMask: {
		"subnet_mask", "subnet", "Subnet Mask", "Netmask",
	},
	model.FieldHTTPPort: {
		"http_port", "HTTP Port", "Port", "Web Port",
	},
}

// AutoDetectMapping 根据别名表生成自动列映射。
// 对每个规范字段取第一个命中的表头，未命中的字段不出现在结果中。
func AutoDetectMapping(headers []string) map[string]string {
	mapping := make(map[string]string)

	for _, field := range model.CanonicalFields {
		aliases := fieldAliases[field]
		for _, header := range headers {
			if header == "" {
				continue
			}
			if matchesAlias(header, aliases) {
				mapping[field] = header
				break
			}
		}
	}

	return mapping
}

func matchesAlias(header string, aliases []string) bool {
	for _, alias := range aliases {
		if header == alias {
			return true
		}
	}
	return false
}

// RecognizedFieldCount 统计表头中能识别出的规范字段数量
// 用于 txt 文件的分隔符回退判断。
func RecognizedFieldCount(headers []string) int {
	return len(AutoDetectMapping(headers))
}
