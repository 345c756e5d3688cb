package llm

// Helper functions for building JSON Schema objects.

func Prop(typ, desc string) map[string]any {
	return map[string]any{"type": typ, "description": desc}
}

// Enum is a string property restricted to the given values.
func Enum(desc string, values ...string) map[string]any {
	p := Prop("string", desc)
	p["enum"] = values
	return p
}

// ArrayOf is an array property whose items use the given schema.
func ArrayOf(items map[string]any, desc string) map[string]any {
	return map[string]any{"type": "array", "items": items, "description": desc}
}

func Obj(properties map[string]any) map[string]any {
	if properties == nil {
		properties = map[string]any{}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
	}
}

func ObjReq(properties map[string]any, required ...string) map[string]any {
	s := Obj(properties)
	s["required"] = required
	return s
}
