package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	floatIntegerRe = regexp.MustCompile(`^([+-]?\d+)\.0+$`)
	thousandsRe    = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?%?$`)
)

// nullTokens 表格软件导出的“空值”写法，按缺失处理
var nullTokens = map[string]struct{}{
	"nan":  {},
	"null": {},
	"none": {},
	"n/a":  {},
	"#n/a": {},
}

// NormalizeColumnName 规范化列名：去 BOM、去首尾空白、压缩内部空白、转小写
func NormalizeColumnName(name string) string {
	name = strings.ReplaceAll(name, "\ufeff", "")
	name = strings.TrimSpace(name)
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.ToLower(name)
}

// CleanText 去首尾空白；空值写法返回空串
func CleanText(value string) string {
	value = strings.TrimSpace(value)
	if _, ok := nullTokens[strings.ToLower(value)]; ok {
		return ""
	}
	return value
}

// NormalizeKey 把标识类键统一为字符串
// 表格软件常把数字编号存成浮点，"1001.0" 与 "1001" 视为同一个键
func NormalizeKey(value string) string {
	value = CleanText(value)
	if m := floatIntegerRe.FindStringSubmatch(value); m != nil {
		return m[1]
	}
	return value
}

// ParseNumber 解析数值，允许千分位与百分号；空值返回 nil
func ParseNumber(value string) (*float64, error) {
	value = CleanText(value)
	if value == "" {
		return nil, nil
	}
	// 逗号只能是千分位；"75,5" 这类小数逗号不猜测，报错由调用方记提示
	if strings.Contains(value, ",") {
		if !thousandsRe.MatchString(value) {
			return nil, fmt.Errorf("ambiguous comma in number: %q", value)
		}
		value = strings.ReplaceAll(value, ",", "")
	}
	value = strings.TrimSuffix(value, "%")
	value = strings.TrimSpace(value)
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("not a number: %q", value)
	}
	return &f, nil
}
