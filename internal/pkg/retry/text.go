package retry

import (
	"fmt"
	"reflect"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
)

type texter interface {
	Text() string
}

type contenter interface {
	Content() string
}

var resultKeys = []string{"output", "text", "content"}

// ToText flattens a raw model result into plain text.
func ToText(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case *schema.Message:
		if v == nil {
			return ""
		}
		return v.Content
	case schema.Message:
		return v.Content
	case texter:
		return v.Text()
	case contenter:
		return v.Content()
	case map[string]string:
		for _, key := range resultKeys {
			if s, ok := v[key]; ok {
				return s
			}
		}
	case map[string]any:
		for _, key := range resultKeys {
			if inner, ok := v[key]; ok {
				return ToText(inner)
			}
		}
	case fmt.Stringer:
		return v.String()
	}

	switch reflect.ValueOf(raw).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
		if s, err := sonic.MarshalString(raw); err == nil {
			return s
		}
	}

	return fmt.Sprint(raw)
}
