package feishu

import (
	"fmt"
	"strconv"
	"strings"
)

// CellString 把多维表格单元格的值归一化为纯文本。
//
// 同一个文本字段，后端可能返回标量、字符串列表，或单元素的富文本对象列表
// （{"text": ..., "link": ...}）。形态差异必须在这一个函数内消化，内部
// 逻辑只见到纯字符串。
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []any:
		if len(x) == 0 {
			return ""
		}
		if m, ok := x[0].(map[string]any); ok {
			return CellString(m["text"])
		}
		return CellString(x[0])
	case map[string]any:
		return CellString(x["text"])
	case float64:
		// 数字字段（含作为数字存的 ID）：禁止科学计数法形态。
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// CellInt 把数字类单元格归一化为 int64；解析不出时返回 0。
// 0 与缺失在完整性判定里同义（沿用既有口径）。
func CellInt(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return int64(x)
	case int64:
		return x
	case int:
		return int64(x)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		n, err := strconv.ParseInt(CellString(v), 10, 64)
		if err != nil {
			return 0
		}
		return n
	}
}
