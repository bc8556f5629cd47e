package searchproxy

import (
	"sort"
	"strconv"
	"strings"

	"sonnimal/internal/models"
)

// match is a place found in a search response and the shape it came from.
type match struct {
	meta  models.PlaceMetadata
	shape string
}

// extractPlace inspects the response shapes in priority order and returns the
// first entry that carries a name.
func extractPlace(data map[string]interface{}) (match, bool) {
	if kg, ok := data["knowledge_graph"].(map[string]interface{}); ok {
		if m, ok := placeFrom(kg, "review_count"); ok {
			return match{m, "knowledge_graph"}, true
		}
	}

	for _, key := range []string{"places_results", "local_results"} {
		if first, ok := firstObject(data[key]); ok {
			if m, ok := placeFrom(first, "review_count", "reviews"); ok {
				return match{m, key}, true
			}
		}
	}

	if first, ok := firstObject(data["organic_results"]); ok {
		title := str(first["title"])
		if title != "" && strings.Contains(str(first["link"]), "place.naver.com") {
			return match{models.PlaceMetadata{Name: title}, "organic_results"}, true
		}
	}

	if m, path, ok := scan(data, ""); ok {
		return match{m, "scan:" + path}, true
	}

	return match{}, false
}

func placeFrom(obj map[string]interface{}, countKeys ...string) (models.PlaceMetadata, bool) {
	name := str(obj["title"])
	if name == "" {
		name = str(obj["name"])
	}
	if name == "" {
		return models.PlaceMetadata{}, false
	}

	meta := models.PlaceMetadata{
		Name:        name,
		Category:    str(obj["category"]),
		Address:     str(obj["address"]),
		ReviewScore: num(obj["rating"]),
	}
	for _, k := range countKeys {
		if n := int(num(obj[k])); n > 0 {
			meta.ReviewCount = n
			break
		}
	}
	return meta, true
}

// scan walks the response depth-first, keys in sorted order, looking for any
// array whose first object has a name.
func scan(v interface{}, path string) (models.PlaceMetadata, string, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if m, p, ok := scan(t[k], joinPath(path, k)); ok {
				return m, p, true
			}
		}
	case []interface{}:
		if first, ok := firstObject(t); ok {
			if m, ok := placeFrom(first, "review_count", "reviews"); ok {
				return m, path, true
			}
		}
		for i, item := range t {
			if m, p, ok := scan(item, joinPath(path, strconv.Itoa(i))); ok {
				return m, p, true
			}
		}
	}
	return models.PlaceMetadata{}, "", false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func firstObject(v interface{}) (map[string]interface{}, bool) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) == 0 {
		return nil, false
	}
	obj, ok := arr[0].(map[string]interface{})
	return obj, ok
}

func str(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// num accepts JSON numbers and numeric strings such as "4.5" or "1,234".
func num(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
		if err == nil {
			return f
		}
	}
	return 0
}
