// Package api 对账服务的 HTTP 接口。
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"effrecon/internal/exporter"
	"effrecon/internal/importer"
	"effrecon/internal/parser"
)

// Options 处理器配置
type Options struct {
	Mapper         *parser.FieldMapper
	ReadOptions    parser.ReadOptions
	MaxUploadBytes int64
	DownloadTTL    time.Duration
	DefaultScope   exporter.Scope
	Version        string
	Logger         *zap.Logger
}

// Handler API 处理器
type Handler struct {
	mapper       *parser.FieldMapper
	coordinator  *importer.Coordinator
	downloads    *downloadStore
	maxUpload    int64
	ttl          time.Duration
	defaultScope exporter.Scope
	version      string
	startedAt    time.Time
	logger       *zap.Logger
}

// NewHandler 创建 API 处理器
func NewHandler(opts Options) *Handler {
	if opts.Mapper == nil {
		opts.Mapper = parser.NewFieldMapper(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 64 << 20
	}
	if opts.DownloadTTL <= 0 {
		opts.DownloadTTL = 30 * time.Minute
	}
	if opts.DefaultScope == "" {
		opts.DefaultScope = exporter.ScopeAll
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	return &Handler{
		mapper:       opts.Mapper,
		coordinator:  importer.NewCoordinator(opts.Mapper, opts.ReadOptions, opts.Logger),
		downloads:    newDownloadStore(time.Now),
		maxUpload:    opts.MaxUploadBytes,
		ttl:          opts.DownloadTTL,
		defaultScope: opts.DefaultScope,
		version:      opts.Version,
		startedAt:    time.Now(),
		logger:       opts.Logger,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	// 必需字段与别名
	router.GET("/schema", h.GetSchema)

	// 上传并对账
	router.POST("/reconcile", h.Reconcile)

	// 下载结果
	router.GET("/export/download/:token", h.DownloadExport)
}
