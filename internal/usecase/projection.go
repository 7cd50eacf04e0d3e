package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/union-tracker/internal/domain"
)

// project returns u restricted to the selected field paths. The id is
// always included. Paths that resolve to nothing are omitted.
func project(u *domain.Union, fields []string) (map[string]interface{}, error) {
	raw, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("marshal union: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal union: %w", err)
	}

	out := map[string]interface{}{domain.FieldIDName: u.ID}
	for _, path := range fields {
		if v, ok := lookupPath(doc, path); ok {
			setPath(out, path, v)
		}
	}
	return out, nil
}

func lookupPath(doc map[string]interface{}, path string) (interface{}, bool) {
	var cur interface{} = doc
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func setPath(doc map[string]interface{}, path string, v interface{}) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}
