package parser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"netinv/internal/model"
)

const sadpCSV = `Device Serial Number,IPv4 Address,Device Type,MAC Address,Software Version,Status,Device Name
DS-2CD2385G120200312AAWRC567,192.168.1.101,DS-2CD2385G1,a4:d5:c2:44:55:66,V5.6.3,Active,Lobby Camera
DS-7732NI-I420190920BBXYZ901,192.168.1.102,DS-7732NI-I4,a4:d5:c2:77:88:99,V4.30.085,Active,Main NVR
`

func TestParse_CSV(t *testing.T) {
	t.Parallel()

	sheets, err := Parse("sadp_export.csv", []byte(sadpCSV))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("sheet count: got %d", len(sheets))
	}

	sheet := sheets[0]
	if sheet.Name != "sadp_export" {
		t.Fatalf("sheet name: got %q", sheet.Name)
	}
	if sheet.RowCount != 2 {
		t.Fatalf("row count: got %d", sheet.RowCount)
	}
	if sheet.AutoMapping[model.FieldIPAddress] != "IPv4 Address" {
		t.Fatalf("auto mapping: got %v", sheet.AutoMapping)
	}
	if len(sheet.SampleRows) != 2 {
		t.Fatalf("sample rows: got %d", len(sheet.SampleRows))
	}
}

func TestParse_CSVSkipsEmptyAndRepeatedHeaderRows(t *testing.T) {
	t.Parallel()

	data := "IP Address,Serial Number,Model\n" +
		"192.168.1.1,SN0000001,DS-7732NI\n" +
		",,\n" +
		"IP Address,Serial Number,Model\n" +
		"192.168.1.2,SN0000002,DS-2CD2385\n"

	sheets, err := Parse("inventory.csv", []byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sheets[0].RowCount != 2 {
		t.Fatalf("空行和重复表头应被跳过, got %d 行", sheets[0].RowCount)
	}
}

func TestParse_CSVKeepsKeywordTextRows(t *testing.T) {
	t.Parallel()

	// 纯文本数据行撞上表头关键词（Type、Converter）也不能丢，
	// 应保留到预览里报缺字段
	data := "IP Address,Serial Number,Model\n" +
		"192.168.1.1,SN0000001,DS-7732NI\n" +
		",,Type C Converter\n"

	sheets, err := Parse("inventory.csv", []byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sheets[0].RowCount != 2 {
		t.Fatalf("关键词文本行不应被当作表头丢弃, got %d 行", sheets[0].RowCount)
	}
	if sheets[0].Rows[1][2] != "Type C Converter" {
		t.Fatalf("rows: %v", sheets[0].Rows)
	}
}

func TestParse_TXTTabFallback(t *testing.T) {
	t.Parallel()

	data := "IP Address\tSerial Number\tModel\n" +
		"192.168.1.1\tSN0000001\tDS-7732NI\n"

	sheets, err := Parse("devices.txt", []byte(data))
	if err != nil {
		t.Fatalf("parse txt: %v", err)
	}
	if len(sheets[0].Headers) != 3 {
		t.Fatalf("期望按 Tab 切出 3 列, got %v", sheets[0].Headers)
	}
	if sheets[0].RowCount != 1 {
		t.Fatalf("row count: got %d", sheets[0].RowCount)
	}
}

func TestParse_TXTCommaPreferred(t *testing.T) {
	t.Parallel()

	data := "IP Address,Serial Number,Model\n192.168.1.1,SN0000001,DS-7732NI\n"

	sheets, err := Parse("devices.txt", []byte(data))
	if err != nil {
		t.Fatalf("parse txt: %v", err)
	}
	if sheets[0].AutoMapping[model.FieldIPAddress] != "IP Address" {
		t.Fatalf("逗号切分应直接生效, got %v", sheets[0].AutoMapping)
	}
}

func TestParse_XLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	_ = f.SetSheetRow("Sheet1", "A1", &[]interface{}{"IP Address", "Serial Number", "Model"})
	_ = f.SetSheetRow("Sheet1", "A2", &[]interface{}{"192.168.1.1", "SN0000001", "DS-7732NI"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	sheets, err := Parse("devices.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("parse xlsx: %v", err)
	}
	if len(sheets) != 1 || sheets[0].Name != "Sheet1" {
		t.Fatalf("sheets: got %+v", sheets)
	}
	if sheets[0].RowCount != 1 {
		t.Fatalf("row count: got %d", sheets[0].RowCount)
	}
	if sheets[0].HeaderRowIndex != 0 {
		t.Fatalf("header row index: got %d", sheets[0].HeaderRowIndex)
	}
}

func TestParse_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := Parse("devices.pdf", []byte("whatever"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParse_CorruptXLSX(t *testing.T) {
	t.Parallel()

	_, err := Parse("broken.xlsx", []byte("not a zip"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}
