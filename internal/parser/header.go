package parser

import (
	"regexp"
	"strings"
)

// headerKeywords 表头行的典型关键词（小写包含匹配）
var headerKeywords = []string{
	"ip", "address",
	"serial", "sn",
	"model", "type",
	"manufacturer", "vendor", "brand",
	"hostname", "host", "name", "device",
	"mac", "location", "site", "rack",
	"status", "state", "description",
	"tag", "firmware", "version",
	"gateway", "subnet", "vlan", "port",
}

// 数据单元格的特征模式，命中则否决表头判定
var (
	ipPattern     = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
	macPattern    = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$|^([0-9A-Fa-f]{4}\.){2}[0-9A-Fa-f]{4}$|^[0-9A-Fa-f]{12}$`)
	serialPattern = regexp.MustCompile(`^[A-Za-z0-9]{8,}$`)
)

// IsWellFormedIP 判断是否为规范的点分 IPv4 地址
func IsWellFormedIP(s string) bool {
	return ipPattern.MatchString(s)
}

// IsWellFormedMAC 判断是否为规范的 MAC 地址
func IsWellFormedMAC(s string) bool {
	return macPattern.MatchString(s)
}

// IsHeaderRow 判断一行是否像表头行
// 非空单元格中关键词占比达到 30% 且不含数据特征值时判定为表头。
func IsHeaderRow(row []string) bool {
	headerScore := 0
	dataScore := 0
	totalCells := 0

	for _, cell := range row {
		cellStr := strings.ToLower(strings.TrimSpace(cell))
		if cellStr == "" {
			continue
		}
		totalCells++

		for _, kw := range headerKeywords {
			if strings.Contains(cellStr, kw) {
				headerScore++
				break
			}
		}

		if ipPattern.MatchString(cellStr) ||
			macPattern.MatchString(cellStr) ||
			(serialPattern.MatchString(cellStr) && len(cellStr) > 10) {
			dataScore++
		}
	}

	if totalCells == 0 {
		return false
	}
	threshold := (totalCells*3 + 9) / 10 // ceil(totalCells * 0.3)
	return headerScore >= threshold && dataScore == 0
}

// headerSearchRows 表头搜索的行数上限
const headerSearchRows = 10

// FindHeaderRow 在前若干行内自动定位表头行
// 找不到表头特征时取第一个非空行。
func FindHeaderRow(rows [][]string) (headerIndex int, headers []string) {
	maxRows := len(rows)
	if maxRows > headerSearchRows {
		maxRows = headerSearchRows
	}

	for i := 0; i < maxRows; i++ {
		if IsHeaderRow(rows[i]) {
			return i, trimCells(rows[i])
		}
	}

	for i := 0; i < maxRows; i++ {
		if !isEmptyRow(rows[i]) {
			return i, trimCells(rows[i])
		}
	}

	return 0, nil
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
