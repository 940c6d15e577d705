package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SADP 格式示例模板，带三行典型设备数据
const templateCSV = `Device Serial Number,IPv4 Address,Device Type,MAC Address,Software Version,Status,Device Name
DS-K1T671M20210805V030230ENAB1234567,192.168.1.100,DS-K1T671M,a4:d5:c2:11:22:33,V3.2.30,Active,Entrance Controller
DS-2CD2385G120200312AAWRC5678901234,192.168.1.101,DS-2CD2385G1,a4:d5:c2:44:55:66,V5.6.3,Active,Lobby Camera
DS-7732NI-I420190920BBXYZ9012345678,192.168.1.102,DS-7732NI-I4,a4:d5:c2:77:88:99,V4.30.085,Active,Main NVR
`

// DownloadTemplate 下载导入模板
// GET /api/import/template
func (h *Handler) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="device_import_template.csv"`)
	c.String(http.StatusOK, templateCSV)
}
