package changediff

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

type FieldKind string

const (
	PlainText  FieldKind = "plain_text"
	Image      FieldKind = "image"
	Structured FieldKind = "structured"
)

// Classifier 仅根据字段名决定展示方式
type Classifier func(field string) FieldKind

// ClassifyByName 图片字段显示缩略图，结构化字段格式化输出，其余按文本
func ClassifyByName(imageFields, structuredFields []string) Classifier {
	images := toSet(imageFields)
	structured := toSet(structuredFields)
	return func(field string) FieldKind {
		if _, ok := images[field]; ok {
			return Image
		}
		if _, ok := structured[field]; ok {
			return Structured
		}
		return PlainText
	}
}

type Entry struct {
	Field    string    `json:"field"`
	OldValue any       `json:"old_value"`
	NewValue any       `json:"new_value"`
	Kind     FieldKind `json:"field_kind"`
}

// Diff 对比当前数据与申请数据，只遍历 requested 中的字段。
// hidden 中的字段即使变化也不输出；比较为结构相等。结果按字段名排序。
func Diff(current, requested map[string]any, hidden []string, classify Classifier) []Entry {
	keys := make([]string, 0, len(requested))
	for k := range requested {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	skip := toSet(hidden)
	entries := make([]Entry, 0)
	for _, k := range keys {
		if _, ok := skip[k]; ok {
			continue
		}
		oldV := current[k]
		newV := requested[k]
		if equalValue(oldV, newV) {
			continue
		}
		entries = append(entries, newEntry(k, oldV, newV, classify))
	}
	return entries
}

// DiffJSON 与 Diff 规则相同，但保留 requested 文档中的字段顺序
func DiffJSON(current, requested []byte, hidden []string, classify Classifier) ([]Entry, error) {
	if !gjson.ValidBytes(current) {
		return nil, &FormatError{Which: "current"}
	}
	if !gjson.ValidBytes(requested) {
		return nil, &FormatError{Which: "requested"}
	}
	cur := gjson.ParseBytes(current)
	req := gjson.ParseBytes(requested)
	if !req.IsObject() {
		return nil, &FormatError{Which: "requested"}
	}

	skip := toSet(hidden)
	entries := make([]Entry, 0)
	req.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, ok := skip[k]; ok {
			return true
		}
		var oldV any
		if old := cur.Get(gjson.Escape(k)); old.Exists() {
			oldV = decodeRaw(old.Raw)
		}
		newV := decodeRaw(value.Raw)
		if !equalValue(oldV, newV) {
			entries = append(entries, newEntry(k, oldV, newV, classify))
		}
		return true
	})
	return entries, nil
}

// decodeRaw 数字保留为 json.Number，避免超过 2^53 的 ID 被 float64 截断
func decodeRaw(raw string) any {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// equalValue 结构相等，数字按数值比较（30 与 30.0 相等）
func equalValue(a, b any) bool {
	switch av := a.(type) {
	case json.Number:
		bv, ok := b.(json.Number)
		if !ok {
			return false
		}
		return numberEqual(av, bv)
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !equalValue(v, w) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValue(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func numberEqual(a, b json.Number) bool {
	da, errA := decimal.NewFromString(a.String())
	db, errB := decimal.NewFromString(b.String())
	if errA != nil || errB != nil {
		return a == b
	}
	return da.Equal(db)
}

type FormatError struct {
	Which string
}

func (e *FormatError) Error() string {
	return "changediff: " + e.Which + " data is not a valid JSON object"
}

func newEntry(field string, oldV, newV any, classify Classifier) Entry {
	kind := PlainText
	if classify != nil {
		kind = classify(field)
	}
	return Entry{Field: field, OldValue: oldV, NewValue: newV, Kind: kind}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
