package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"effrecon/internal/model"
	"effrecon/internal/parser"
	"effrecon/internal/reconcile"
)

// Coordinator 对账协调器：读取 -> 规范化 -> 校验 -> 解码 -> 对账
type Coordinator struct {
	mapper   *parser.FieldMapper
	readOpts parser.ReadOptions
	logger   *zap.Logger
}

// NewCoordinator 创建对账协调器
func NewCoordinator(mapper *parser.FieldMapper, readOpts parser.ReadOptions, logger *zap.Logger) *Coordinator {
	if mapper == nil {
		mapper = parser.NewFieldMapper(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		mapper:   mapper,
		readOpts: readOpts,
		logger:   logger,
	}
}

// FileInput 一个上传文件
type FileInput struct {
	Filename string
	Reader   io.Reader
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/table_done/warning/done/error
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data"`    // 附加数据
	Timestamp time.Time   `json:"timestamp"`
}

// ProgressFunc 进度回调，同步调用
type ProgressFunc func(ProgressEvent)

// ImportReport 一次对账的导入报告
type ImportReport struct {
	RunID        string               `json:"runId"`
	TotalTables  int                  `json:"totalTables"`
	TotalRows    int                  `json:"totalRows"`
	WarningCount int                  `json:"warningCount"`
	Duration     time.Duration        `json:"duration"`
	Tables       []parser.ParseResult `json:"tables"`
	Notes        []string             `json:"notes,omitempty"`
}

// Outcome 对账产物
type Outcome struct {
	Report *ImportReport     `json:"report"`
	Result *reconcile.Result `json:"result"`
}

// MissingFileError 缺少某类上传文件
type MissingFileError struct {
	Kind model.TableKind
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("missing upload for table %s", e.Kind)
}

// runContext 单次运行上下文
type runContext struct {
	startTime time.Time
	report    *ImportReport
	progress  ProgressFunc
	logger    *zap.Logger
}

// Run 执行一次完整对账；任一表缺少必需字段时在连接前中止，并一次性返回全部缺失
func (c *Coordinator) Run(ctx context.Context, files map[model.TableKind]FileInput, progress ProgressFunc) (*Outcome, error) {
	runID := uuid.NewString()
	rc := &runContext{
		startTime: time.Now(),
		report: &ImportReport{
			RunID:  runID,
			Tables: []parser.ParseResult{},
		},
		progress: progress,
		logger:   c.logger.With(zap.String("run_id", runID)),
	}

	rc.send(ProgressEvent{Type: "start", Message: "开始对账", Data: map[string]any{"runId": runID}})

	tables, err := c.readAll(ctx, rc, files)
	if err != nil {
		rc.fail(err)
		return &Outcome{Report: rc.finish()}, err
	}

	if err := parser.ValidateAll(tables); err != nil {
		for _, se := range parser.SchemaErrors(err) {
			rc.markTableError(se)
		}
		rc.fail(err)
		return &Outcome{Report: rc.finish()}, fmt.Errorf("validate schema: %w", err)
	}

	in := c.decodeAll(rc, tables)

	result := reconcile.Run(in)
	rc.logger.Info("reconcile finished",
		zap.Int("records", result.Summary.Total),
		zap.Int("gaps", result.Summary.Gaps),
		zap.Int("unresolved", result.Summary.UnresolvedEfficiency),
	)

	report := rc.finish()
	rc.send(ProgressEvent{Type: "done", Message: "对账完成", Data: result.Summary})

	return &Outcome{Report: report, Result: result}, nil
}

// readAll 按固定顺序读取五张表并完成列名映射与规范化
func (c *Coordinator) readAll(ctx context.Context, rc *runContext, files map[model.TableKind]FileInput) ([]parser.Table, error) {
	tables := make([]parser.Table, 0, len(model.AllTableKinds()))
	for _, kind := range model.AllTableKinds() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		in, ok := files[kind]
		if !ok || in.Reader == nil {
			return nil, &MissingFileError{Kind: kind}
		}

		raw, err := parser.ReadTable(in.Filename, kind, in.Reader, c.readOpts)
		if err != nil {
			return nil, fmt.Errorf("read %s table: %w", kind, err)
		}

		mapped, notes := c.mapper.MapTable(raw)
		for _, note := range notes {
			rc.note(fmt.Sprintf("%s: %s", raw.Name, note))
		}
		table := parser.NormalizeTable(mapped)
		if other, ok := parser.Misplaced(table); ok {
			rc.note(fmt.Sprintf("%s: columns match the %s table; check the upload field", raw.Name, other))
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// decodeAll 把表解码为记录，转换失败只记提示不中止
func (c *Coordinator) decodeAll(rc *runContext, tables []parser.Table) reconcile.Inputs {
	var in reconcile.Inputs
	for _, t := range tables {
		started := time.Now()
		var warnings []parser.TypeCoercionWarning

		switch t.Kind {
		case model.TableKindStaff:
			in.Staff, warnings = parser.DecodeStaff(t)
		case model.TableKindStyles:
			in.Styles, warnings = parser.DecodeStyles(t)
		case model.TableKindRawEfficiency:
			in.Raw, warnings = parser.DecodeRawEfficiency(t)
		case model.TableKindGroups:
			in.Groups, warnings = parser.DecodeGroups(t)
		case model.TableKindIndividual:
			in.Individual, warnings = parser.DecodeIndividual(t)
		}

		rc.recordTableResult(parser.ParseResult{
			TableName:    t.Name,
			Kind:         t.Kind,
			Status:       "imported",
			ImportedRows: len(t.Rows),
			Warnings:     warnings,
			Duration:     time.Since(started),
		})
	}
	return in
}

func (rc *runContext) recordTableResult(result parser.ParseResult) {
	rc.report.Tables = append(rc.report.Tables, result)
	rc.report.TotalTables++
	rc.report.TotalRows += result.ImportedRows
	rc.report.WarningCount += len(result.Warnings)

	if len(result.Warnings) > 0 {
		rc.logger.Warn("type coercion warnings",
			zap.String("table", result.TableName),
			zap.Int("count", len(result.Warnings)),
		)
	}

	rc.send(ProgressEvent{
		Type:    "table_done",
		Message: fmt.Sprintf("表 \"%s\" 读取完成: %d 行", result.TableName, result.ImportedRows),
		Data: map[string]any{
			"table":    result.TableName,
			"kind":     result.Kind,
			"rows":     result.ImportedRows,
			"warnings": len(result.Warnings),
		},
	})
}

func (rc *runContext) markTableError(se *parser.SchemaError) {
	rc.report.Tables = append(rc.report.Tables, parser.ParseResult{
		TableName: se.Table,
		Kind:      se.Kind,
		Status:    "error",
		Errors:    []string{se.Error()},
	})
}

func (rc *runContext) note(msg string) {
	rc.report.Notes = append(rc.report.Notes, msg)
	rc.logger.Info("column mapping", zap.String("note", msg))
	rc.send(ProgressEvent{Type: "warning", Message: msg})
}

func (rc *runContext) fail(err error) {
	rc.logger.Error("reconcile aborted", zap.Error(err))
	rc.send(ProgressEvent{Type: "error", Message: fmt.Sprintf("对账失败: %v", err)})
}

func (rc *runContext) finish() *ImportReport {
	rc.report.Duration = time.Since(rc.startTime)
	return rc.report
}

// send 发送进度事件
func (rc *runContext) send(event ProgressEvent) {
	if rc.progress == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	rc.progress(event)
}
