package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Parse 解析上传文件，按扩展名分发到对应格式。
// 工作簿类格式每个内嵌 Sheet 产出一个描述；平面文本格式产出单个描述，
// 以文件名（去扩展名）作为 Sheet 名。
func Parse(filename string, data []byte) ([]SheetDescriptor, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".csv":
		return parseDelimited(filename, data, ',')
	case ".xlsx", ".xls":
		return parseWorkbook(filename, data)
	case ".txt":
		return parseTXT(filename, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// parseWorkbook 解析 Excel 工作簿，逐 Sheet 自动定位表头
func parseWorkbook(filename string, data []byte) ([]SheetDescriptor, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	defer file.Close()

	sheetList := file.GetSheetList()
	sheets := make([]SheetDescriptor, 0, len(sheetList))

	for _, sheetName := range sheetList {
		rows, err := file.GetRows(sheetName)
		if err != nil {
			return nil, &ParseError{Filename: filename, Err: fmt.Errorf("read sheet %s: %w", sheetName, err)}
		}

		headerIndex, headers := FindHeaderRow(rows)
		dataRows := filterDataRows(rows, headerIndex+1, headers)

		sheets = append(sheets, newDescriptor(sheetName, headers, headerIndex, dataRows))
	}

	return sheets, nil
}

// parseDelimited 解析分隔符文本（csv / tab）
func parseDelimited(filename string, data []byte, delim rune) ([]SheetDescriptor, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{Filename: filename, Err: fmt.Errorf("empty file")}
	}

	headers := trimCells(records[0])
	dataRows := filterDataRows(records, 1, headers)

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return []SheetDescriptor{newDescriptor(name, headers, 0, dataRows)}, nil
}

// parseTXT 解析 txt：先按逗号切分，表头识别出的规范字段不足 2 个时按 Tab 重试
func parseTXT(filename string, data []byte) ([]SheetDescriptor, error) {
	sheets, err := parseDelimited(filename, data, ',')
	if err == nil && len(sheets) == 1 && RecognizedFieldCount(sheets[0].Headers) >= 2 {
		return sheets, nil
	}

	tabSheets, tabErr := parseDelimited(filename, data, '\t')
	if tabErr != nil {
		if err != nil {
			return nil, err
		}
		return sheets, nil
	}
	if err != nil {
		return tabSheets, nil
	}

	// 两种切分都成功时取识别字段更多的那个
	if RecognizedFieldCount(tabSheets[0].Headers) > RecognizedFieldCount(sheets[0].Headers) {
		return tabSheets, nil
	}
	return sheets, nil
}

// filterDataRows 取表头之后的数据行，跳过空行和与已识别表头完全相同的重复行。
// 只按整行相等判断重复，含表头关键词的纯文本数据行（如备注列）要保留，
// 留给后续校验去报缺字段，而不是在这里悄悄丢掉。
func filterDataRows(rows [][]string, start int, headers []string) [][]string {
	if start >= len(rows) {
		return nil
	}

	out := make([][]string, 0, len(rows)-start)
	for _, row := range rows[start:] {
		if isEmptyRow(row) {
			continue
		}
		trimmed := trimCells(row)
		if isRepeatedHeader(trimmed, headers) {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// isRepeatedHeader 判断一行是否与表头逐格相同，行尾空格补齐后比较
func isRepeatedHeader(row, headers []string) bool {
	if len(headers) == 0 {
		return false
	}

	n := len(row)
	if len(headers) > n {
		n = len(headers)
	}
	for i := 0; i < n; i++ {
		var cell, header string
		if i < len(row) {
			cell = row[i]
		}
		if i < len(headers) {
			header = headers[i]
		}
		if !strings.EqualFold(cell, header) {
			return false
		}
	}
	return true
}

func newDescriptor(name string, headers []string, headerIndex int, dataRows [][]string) SheetDescriptor {
	sampleCount := len(dataRows)
	if sampleCount > SampleRowLimit {
		sampleCount = SampleRowLimit
	}

	return SheetDescriptor{
		Name:           name,
		Headers:        headers,
		HeaderRowIndex: headerIndex,
		RowCount:       len(dataRows),
		SampleRows:     dataRows[:sampleCount],
		Rows:           dataRows,
		AutoMapping:    AutoDetectMapping(headers),
	}
}

// ReadAll 便捷封装：从 io.Reader 读取后解析
func ReadAll(filename string, r io.Reader) ([]SheetDescriptor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Filename: filename, Err: err}
	}
	return Parse(filename, data)
}
