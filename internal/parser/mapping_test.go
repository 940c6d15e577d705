package parser

import (
	"reflect"
	"testing"

	"netinv/internal/model"
)

func TestMergeMapping_Precedence(t *testing.T) {
	t.Parallel()

	auto := map[string]string{
		model.FieldIPAddress:    "IP",
		model.FieldSerialNumber: "SN",
		model.FieldModel:        "Type",
	}
	assisted := map[string]string{
		model.FieldIPAddress: "IPv4 Address",
		model.FieldHostname:  "Device Name",
	}
	manual := map[string]string{
		model.FieldIPAddress: "Address Col",
	}

	effective := MergeMapping(auto, assisted, manual)

	if effective[model.FieldIPAddress] != "Address Col" {
		t.Fatalf("manual 应覆盖其他来源, got %q", effective[model.FieldIPAddress])
	}
	if effective[model.FieldHostname] != "Device Name" {
		t.Fatalf("assisted 应覆盖 auto, got %q", effective[model.FieldHostname])
	}
	if effective[model.FieldSerialNumber] != "SN" {
		t.Fatalf("auto 兜底, got %q", effective[model.FieldSerialNumber])
	}
}

func TestMergeMapping_EmptyValueSkipped(t *testing.T) {
	t.Parallel()

	auto := map[string]string{model.FieldIPAddress: "IP"}
	manual := map[string]string{model.FieldIPAddress: ""}

	effective := MergeMapping(auto, nil, manual)
	if effective[model.FieldIPAddress] != "IP" {
		t.Fatalf("空的手动值不应遮蔽 auto, got %q", effective[model.FieldIPAddress])
	}
}

func TestMergeMapping_Idempotent(t *testing.T) {
	t.Parallel()

	auto := map[string]string{model.FieldIPAddress: "IP", model.FieldModel: "Type"}
	assisted := map[string]string{model.FieldHostname: "Name"}
	manual := map[string]string{model.FieldModel: "Model Col"}

	first := MergeMapping(auto, assisted, manual)
	second := MergeMapping(auto, assisted, manual)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("同输入两次合成结果不一致: %v vs %v", first, second)
	}
}
