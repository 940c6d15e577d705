package model

// 规范字段名常量
const (
	FieldIPAddress       = "ip_address"
	FieldSerialNumber    = "serial_number"
	FieldModel           = "model"
	FieldManufacturer    = "manufacturer"
	FieldHostname        = "hostname"
	FieldMACAddress      = "mac_address"
	FieldFirmwareVersion = "firmware_version"
	FieldStatus          = "status"
	FieldLocation        = "location"
	FieldDescription     = "description"
	FieldGateway         = "gateway"
	FieldSubnetMask      = "subnet_mask"
	FieldHTTPPort        = "http_port"
)

// CanonicalFields 规范字段的固定顺序
var CanonicalFields = []string{
	FieldIPAddress,
	FieldSerialNumber,
	FieldModel,
	FieldManufacturer,
	FieldHostname,
	FieldMACAddress,
	FieldFirmwareVersion,
	FieldStatus,
	FieldLocation,
	FieldDescription,
	FieldGateway,
	FieldSubnetMask,
	FieldHTTPPort,
}

// DeviceFields 设备规范字段
type DeviceFields struct {
	IPAddress       string `json:"ip_address"`
	SerialNumber    string `json:"serial_number"`
	Model           string `json:"model"`
	Manufacturer    string `json:"manufacturer"`
	Hostname        string `json:"hostname"`
	MACAddress      string `json:"mac_address"`
	FirmwareVersion string `json:"firmware_version"`
	Status          string `json:"status"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	Gateway         string `json:"gateway"`
	SubnetMask      string `json:"subnet_mask"`
	HTTPPort        string `json:"http_port"`
}

// Get 按规范字段名取值
func (f *DeviceFields) Get(field string) string {
	switch field {
	case FieldIPAddress:
		return f.IPAddress
	case FieldSerialNumber:
		return f.SerialNumber
	case FieldModel:
		return f.Model
	case FieldManufacturer:
		return f.Manufacturer
	case FieldHostname:
		return f.Hostname
	case FieldMACAddress:
		return f.MACAddress
	case FieldFirmwareVersion:
		return f.FirmwareVersion
	case FieldStatus:
		return f.Status
	case FieldLocation:
		return f.Location
	case FieldDescription:
		return f.Description
	case FieldGateway:
		return f.Gateway
	case FieldSubnetMask:
		return f.SubnetMask
	case FieldHTTPPort:
		return f.HTTPPort
	}
	return ""
}

// Set 按规范字段名赋值
func (f *DeviceFields) Set(field, value string) {
	switch field {
	case FieldIPAddress:
		f.IPAddress = value
	case FieldSerialNumber:
		f.SerialNumber = value
	case FieldModel:
		f.Model = value
	case FieldManufacturer:
		f.Manufacturer = value
	case FieldHostname:
		f.Hostname = value
	case FieldMACAddress:
		f.MACAddress = value
	case FieldFirmwareVersion:
		f.FirmwareVersion = value
	case FieldStatus:
		f.Status = value
	case FieldLocation:
		f.Location = value
	case FieldDescription:
		f.Description = value
	case FieldGateway:
		f.Gateway = value
	case FieldSubnetMask:
		f.SubnetMask = value
	case FieldHTTPPort:
		f.HTTPPort = value
	}
}

// ValidationResult 单行校验结果
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Confidence 置信度等级
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Device 规范化后的设备记录
// 由 Normalizer 创建；IP 修正阶段只改写 ip_address 并打上修正标记，
// 重复解析阶段只附加决策，其余字段不再变更。
type Device struct {
	DeviceFields

	SourceSheet string `json:"source_sheet"`
	RowIndex    int    `json:"row_index"`

	Validation ValidationResult `json:"validation"`

	Category           string     `json:"category,omitempty"`
	CategoryConfidence Confidence `json:"category_confidence,omitempty"`
	CategoryReason     string     `json:"category_reason,omitempty"`

	IPCorrected          bool       `json:"ip_corrected,omitempty"`
	OriginalIP           string     `json:"original_ip,omitempty"`
	CorrectionMethod     string     `json:"correction_method,omitempty"`
	CorrectionConfidence Confidence `json:"correction_confidence,omitempty"`

	// 重复解析结果
	Decision   DecisionAction `json:"decision,omitempty"`
	ExistingID string         `json:"existing_id,omitempty"`
}

// RegistryDevice 注册中心已有的设备记录
type RegistryDevice struct {
	ID string `json:"id"`
	DeviceFields
	UpdatedAt string `json:"updated_at,omitempty"`
}

// DecisionAction 重复设备的处理动作
type DecisionAction string

const (
	ActionUpdate DecisionAction = "update"
	ActionSkip   DecisionAction = "skip"
	ActionMerge  DecisionAction = "merge"
)

// DuplicateMatch 入库行与已有记录的匹配对
type DuplicateMatch struct {
	Index     int            `json:"index"`     // 入库行的下标
	Incoming  Device         `json:"incoming"`  // 入库行
	Existing  RegistryDevice `json:"existing"`  // 已有记录
	MatchedBy string         `json:"matchedBy"` // ip_address / serial_number
	Action    DecisionAction `json:"action"`
}
