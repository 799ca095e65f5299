package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"effrecon/internal/model"
)

// ReadOptions 读取选项
type ReadOptions struct {
	// Encoding CSV 编码：utf-8（默认）/ windows-874 / tis-620 / utf-16
	// 文件带 BOM 时以 BOM 为准
	Encoding string
	// Sheet 指定 xlsx 工作表，为空时取第一个有数据的工作表
	Sheet string
}

// ErrEmptyTable 文件里没有表头
var ErrEmptyTable = errors.New("table has no header row")

// ReadTable 按扩展名读取 CSV 或 xlsx
func ReadTable(filename string, kind model.TableKind, r io.Reader, opts ReadOptions) (Table, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbookRows(r, opts.Sheet)
	default:
		rows, err = readCSVRows(r, opts.Encoding)
	}
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", filename, err)
	}

	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("read %s: %w", filename, ErrEmptyTable)
	}

	header := rows[0]
	body := rows[1:]
	for i, row := range body {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			body[i] = padded
		}
	}

	return Table{
		Name:    filepath.Base(filename),
		Kind:    kind,
		Columns: append([]string(nil), header...),
		Rows:    body,
	}, nil
}

func textEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", "utf-8-sig":
		return unicode.UTF8, nil
	case "windows-874", "cp874", "tis-620", "tis620":
		return charmap.Windows874, nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}

func readCSVRows(r io.Reader, encName string) ([][]string, error) {
	enc, err := textEncoding(encName)
	if err != nil {
		return nil, err
	}

	decoded, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = sniffDelimiter(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

// sniffDelimiter 根据首行判断分隔符（逗号 / 分号 / 制表符）
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func readWorkbookRows(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	if sheet != "" {
		return f.GetRows(sheet)
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if len(dropBlankRows(rows)) > 0 {
			return rows, nil
		}
	}
	return nil, nil
}

func dropBlankRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		blank := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}
