package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"effrecon/internal/exporter"
)

// DownloadExport 下载对账结果；token 在有效期内可重复下载不同格式
// GET /api/export/download/:token?format=csv|xlsx&scope=all|gaps
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		errorResponse(c, http.StatusNotFound, CodeBadRequest, "下载链接已失效", nil)
		return
	}

	scope := h.defaultScope
	if v := c.Query("scope"); v != "" {
		s, err := exporter.ParseScope(v)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, CodeBadRequest, err.Error(), nil)
			return
		}
		scope = s
	}
	opts := exporter.Options{Scope: scope}
	logger := h.logger.With(zap.String("run_id", item.runID), zap.String("scope", string(scope)))

	switch format := strings.ToLower(c.DefaultQuery("format", "csv")); format {
	case "csv":
		c.Header("Content-Disposition", buildContentDisposition(exporter.FileName(scope, "csv")))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if err := exporter.WriteCSV(c.Writer, item.result.Records, opts); err != nil {
			logger.Error("write csv export", zap.Error(err))
		}
	case "xlsx":
		opts.Progress = func(e exporter.ProgressEvent) {
			logger.Debug("build workbook", zap.Int("percent", e.Percent), zap.String("stage", e.Stage))
		}
		f, err := exporter.BuildWorkbook(item.result, opts)
		if err != nil {
			logger.Error("build workbook", zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, CodeInternal, "生成工作簿失败", nil)
			return
		}
		defer f.Close()

		c.Header("Content-Disposition", buildContentDisposition(exporter.FileName(scope, "xlsx")))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := f.Write(c.Writer); err != nil {
			logger.Error("write xlsx export", zap.Error(err))
		}
	default:
		errorResponse(c, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("unknown export format %q", format), nil)
	}
}

func buildContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", filename, url.PathEscape(filename))
}
