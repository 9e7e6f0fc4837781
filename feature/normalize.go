package feature

import (
	"fmt"
	"strings"
)

// NormalizeGenres 把形状不定的流派列值规整为干净的字符串列表。
//
// 流派列会经过扁平文本格式（CSV 快照）的往返：采集时是 list[string]，
// 落盘再读回后变成形如 "['progressive metal', 'sludge metal']" 的字面量文本，
// 手工维护的数据还可能是 "metal, djent" 这种裸逗号文本。
// 这里按优先级逐层降级，保证常见形态无损还原、其余形态优雅退化，绝不报错：
//
//  1. 已是字符串列表 → 原样返回（结构化来源默认干净，不再 trim）
//  2. nil → 空列表
//  3. 可按列表字面量解析的文本 → 逐元素转字符串并 trim
//  4. 带外层方括号但解析失败的文本 → 剥掉方括号后走规则 5
//  5. 其他非空文本 → 按逗号切分、trim、丢弃空段
//  6. 其他类型 → 空列表
func NormalizeGenres(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		if val == nil {
			return []string{}
		}
		return val
	case []any:
		// JSON 解码常得到 []any，视作已结构化的序列
		out := make([]string, 0, len(val))
		for _, e := range val {
			if s, ok := e.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(e))
		}
		return out
	case string:
		return normalizeGenreText(val)
	default:
		return []string{}
	}
}

func normalizeGenreText(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{}
	}

	// 列表字面量文本："['a', 'b']" / '["a", "b"]'
	if elems, ok := parseListLiteral(trimmed); ok {
		return elems
	}

	// 有外层方括号但不是合法字面量：剥掉方括号再按逗号切
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		trimmed = strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	}

	return splitComma(trimmed)
}

// splitComma 按逗号切分并 trim，空段丢弃。
func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// parseListLiteral 尝试把文本按列表字面量解析（Python repr / JSON 数组两种引号都接受）。
// 元素可以是引号包裹的字符串（支持 \' \" \\ 转义）或裸 token；
// 引号不闭合、缺右括号、元素间缺逗号等都视为解析失败。
func parseListLiteral(s string) ([]string, bool) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}
	inner := s[1 : len(s)-1]

	elems := []string{}
	i := 0
	n := len(inner)
	for {
		// 跳过空白
		for i < n && (inner[i] == ' ' || inner[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}

		var elem string
		if inner[i] == '\'' || inner[i] == '"' {
			quote := inner[i]
			i++
			var sb strings.Builder
			closed := false
			for i < n {
				c := inner[i]
				if c == '\\' && i+1 < n {
					sb.WriteByte(inner[i+1])
					i += 2
					continue
				}
				if c == quote {
					closed = true
					i++
					break
				}
				sb.WriteByte(c)
				i++
			}
			if !closed {
				return nil, false
			}
			elem = strings.TrimSpace(sb.String())
		} else {
			// 裸 token（数字等），读到逗号为止
			start := i
			for i < n && inner[i] != ',' {
				i++
			}
			elem = strings.TrimSpace(inner[start:i])
		}
		elems = append(elems, elem)

		// 元素后只允许空白，然后要么逗号要么结束
		for i < n && (inner[i] == ' ' || inner[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		if inner[i] != ',' {
			return nil, false
		}
		i++
	}

	return elems, true
}
