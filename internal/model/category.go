package model

// CategoryOther 兜底类别
const CategoryOther = "other"

// KnownCategorySlugs 注册中心约定的设备类别
var KnownCategorySlugs = []string{
	"camera",
	"nvr",
	"dvr",
	"switch",
	"router",
	"firewall",
	"access_point",
	"reader",
	"controller",
	"converter",
	CategoryOther,
}

// IsKnownCategory 判断类别是否在约定集合内
func IsKnownCategory(slug string) bool {
	for _, s := range KnownCategorySlugs {
		if s == slug {
			return true
		}
	}
	return false
}

// 设备状态
const (
	StatusActive      = "active"
	StatusInactive    = "inactive"
	StatusMaintenance = "maintenance"
	StatusError       = "error"
)

// Category 注册中心的类别参考数据
type Category struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// VLAN 注册中心的 VLAN 参考数据
type VLAN struct {
	ID     string `json:"id"`
	VLANID int    `json:"vlan_id"`
	Name   string `json:"name"`
}
