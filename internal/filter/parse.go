package filter

import (
	"github.com/theographic/theodb/pkg"
)

// Parse decodes a raw where object using the declared kind of each field.
// Unknown fields and malformed filter objects are dropped; nil raw input
// yields a nil Where.
func Parse(kinds map[string]Kind, raw map[string]any) Where {
	if raw == nil {
		return nil
	}

	where := Where{}
	for name, value := range raw {
		kind, ok := kinds[name]
		if !ok || value == nil {
			continue
		}

		obj, ok := value.(map[string]any)
		if !ok {
			pkg.DebugLog("ignoring malformed filter for", name)
			continue
		}

		f, ok := parseFilter(kind, obj)
		if !ok {
			pkg.DebugLog("ignoring malformed", kind, "filter for", name)
			continue
		}
		where[name] = f
	}
	return where
}

func parseFilter(kind Kind, obj map[string]any) (Filter, bool) {
	switch kind {
	case KindString:
		var f StringFilter
		for op, v := range obj {
			if v == nil {
				continue
			}
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			switch op {
			case "eq":
				f.Eq = &s
			case "contains":
				f.Contains = &s
			default:
				return nil, false
			}
		}
		return f, true
	case KindInt:
		var f IntFilter
		for op, v := range obj {
			if v == nil {
				continue
			}
			if !pkg.IsIntegral(v) {
				return nil, false
			}
			n := pkg.NumToInt(v)
			switch op {
			case "eq":
				f.Eq = &n
			case "gte":
				f.Gte = &n
			case "lte":
				f.Lte = &n
			default:
				return nil, false
			}
		}
		return f, true
	case KindBool:
		var f BoolFilter
		for op, v := range obj {
			if v == nil {
				continue
			}
			b, ok := v.(bool)
			if !ok || op != "eq" {
				return nil, false
			}
			f.Eq = &b
		}
		return f, true
	}
	return nil, false
}
