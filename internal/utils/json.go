package utils

import (
	"encoding/json"
	"strings"

	"k8s.io/klog/v2"
)

// ExtractJSON 从文本中提取第一个完整的 JSON 对象
func ExtractJSON(content string) string {
	start := -1
	end := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range content {
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if start != -1 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start != -1 {
				end = i + 1
			}
		}
		if end != -1 {
			break
		}
	}

	if start >= 0 && end > start {
		return content[start:end]
	}

	return content
}

// ToJSON 序列化为单行 JSON，失败返回空串
func ToJSON(v any) string {
	jsonData, err := json.Marshal(v)
	if err != nil {
		klog.Errorf("JSON序列化失败: %v", err)
		return ""
	}
	return string(jsonData)
}

// StripCodeFence 去掉模型回复外层的 ```json ... ``` 包裹
func StripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseModelJSON 解析模型回复中的 JSON。
// 先去掉代码块包裹直接解析，失败时再尝试截取文本中的第一个对象。
func ParseModelJSON(content string, out any) error {
	stripped := StripCodeFence(content)
	err := json.Unmarshal([]byte(stripped), out)
	if err == nil {
		return nil
	}
	extracted := ExtractJSON(stripped)
	if extracted == stripped {
		return err
	}
	klog.V(6).Infof("[ParseModelJSON] 直接解析失败，改用截取的 JSON 对象: %v", err)
	return json.Unmarshal([]byte(extracted), out)
}
