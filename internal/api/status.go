package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"effrecon/internal/model"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Version          string `json:"version"`
	Uptime           string `json:"uptime"`
	PendingDownloads int    `json:"pendingDownloads"` // 未过期的下载
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	success(c, StatusResponse{
		Version:          h.version,
		Uptime:           time.Since(h.startedAt).Round(time.Second).String(),
		PendingDownloads: h.downloads.len(),
	})
}

// SchemaTable 一类输入表的上传字段与必需字段
type SchemaTable struct {
	Kind     model.TableKind `json:"kind"`
	Required []string        `json:"required"`
}

// SchemaResponse 字段说明
type SchemaResponse struct {
	Tables  []SchemaTable       `json:"tables"`
	Aliases map[string][]string `json:"aliases"`
}

// GetSchema 必需字段与生效的列名别名
// GET /api/schema
func (h *Handler) GetSchema(c *gin.Context) {
	tables := make([]SchemaTable, 0, len(model.AllTableKinds()))
	for _, kind := range model.AllTableKinds() {
		tables = append(tables, SchemaTable{Kind: kind, Required: model.RequiredFields(kind)})
	}
	success(c, SchemaResponse{
		Tables:  tables,
		Aliases: h.mapper.Aliases(),
	})
}
