package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"effrecon/internal/importer"
	"effrecon/internal/model"
	"effrecon/internal/parser"
)

// ReconcileResponse 对账响应
type ReconcileResponse struct {
	RunID     string                 `json:"runId"`
	Token     string                 `json:"token"`
	ExpiresAt time.Time              `json:"expiresAt"`
	Report    *importer.ImportReport `json:"report"`
	Summary   model.Summary          `json:"summary"`
	Records   []model.ResolvedRecord `json:"records"`
	Downloads map[string]string      `json:"downloads"`
}

// Reconcile 上传五张表并执行对账
// POST /api/reconcile（multipart 字段：staff / styles / raw_eff / gwc / individual_eff）
func (h *Handler) Reconcile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorResponse(c, http.StatusRequestEntityTooLarge, CodeBadRequest,
				fmt.Sprintf("上传文件过大，最大支持 %dMB", h.maxUpload>>20), nil)
			return
		}
		errorResponse(c, http.StatusBadRequest, CodeBadRequest, "无效的表单数据", nil)
		return
	}
	defer form.RemoveAll()

	files := make(map[model.TableKind]importer.FileInput, len(model.AllTableKinds()))
	var missing []string
	for _, kind := range model.AllTableKinds() {
		headers := form.File[string(kind)]
		if len(headers) == 0 {
			missing = append(missing, string(kind))
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("open upload", zap.String("field", string(kind)), zap.Error(err))
			errorResponse(c, http.StatusInternalServerError, CodeInternal, "读取上传文件失败", nil)
			return
		}
		defer f.Close()
		files[kind] = importer.FileInput{Filename: fh.Filename, Reader: f}
	}
	if len(missing) > 0 {
		errorResponse(c, http.StatusBadRequest, CodeBadRequest,
			"缺少上传文件: "+strings.Join(missing, ", "), gin.H{"missing": missing})
		return
	}

	outcome, err := h.coordinator.Run(c.Request.Context(), files, func(e importer.ProgressEvent) {
		h.logger.Debug("reconcile progress", zap.String("type", e.Type), zap.String("message", e.Message))
	})
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	token, expiresAt := h.downloads.put(outcome.Report.RunID, outcome.Result, h.ttl)
	prefix := strings.TrimSuffix(c.Request.URL.Path, "/reconcile")
	downloadURL := fmt.Sprintf("%s/export/download/%s", prefix, token)

	success(c, ReconcileResponse{
		RunID:     outcome.Report.RunID,
		Token:     token,
		ExpiresAt: expiresAt,
		Report:    outcome.Report,
		Summary:   outcome.Result.Summary,
		Records:   outcome.Result.Records,
		Downloads: map[string]string{
			"csv":      downloadURL + "?format=csv&scope=all",
			"xlsx":     downloadURL + "?format=xlsx&scope=all",
			"gapsCsv":  downloadURL + "?format=csv&scope=gaps",
			"gapsXlsx": downloadURL + "?format=xlsx&scope=gaps",
		},
	})
}

// writeRunError 把对账错误映射为业务错误码
func (h *Handler) writeRunError(c *gin.Context, err error) {
	if schemaErrs := parser.SchemaErrors(err); len(schemaErrs) > 0 {
		errorResponse(c, http.StatusUnprocessableEntity, CodeSchemaError, "输入表缺少必需字段", schemaErrs)
		return
	}

	var missing *importer.MissingFileError
	if errors.As(err, &missing) {
		errorResponse(c, http.StatusBadRequest, CodeBadRequest, err.Error(), gin.H{"missing": []string{string(missing.Kind)}})
		return
	}

	h.logger.Warn("reconcile failed", zap.Error(err))
	errorResponse(c, http.StatusBadRequest, CodeUnreadableFile, "文件读取失败: "+err.Error(), nil)
}
