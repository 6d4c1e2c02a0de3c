package lua

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// TimeLayout is the format of times passed to Lua.
const TimeLayout = "2006-01-02T15:04:05.000"

var timeType = reflect.TypeOf(time.Time{})

// toLua converts a Go value to a Lua value.
//
// Structs become tables keyed by their yaml field names, with embedded
// ",inline" structs flattened. Values with a LogName or FullName method get
// log_name or full_name keys. Zero times become nil.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case time.Time:
		if val.IsZero() {
			return lua.LNil
		}
		return lua.LString(val.Format(TimeLayout))
	case time.Duration:
		return lua.LNumber(val.Seconds())
	case []string:
		t := L.CreateTable(len(val), 0)
		for i, s := range val {
			t.RawSetInt(i+1, lua.LString(s))
		}
		return t
	case map[string]string:
		t := L.CreateTable(0, len(val))
		for k, s := range val {
			t.RawSetString(k, lua.LString(s))
		}
		return t
	case map[string]any:
		t := L.CreateTable(0, len(val))
		for k, item := range val {
			t.RawSetString(k, toLua(L, item))
		}
		return t
	}
	return reflectToLua(L, reflect.ValueOf(v))
}

func reflectToLua(L *lua.LState, rv reflect.Value) lua.LValue {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return lua.LNil
		}
		if rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Struct && rv.Elem().Type() != timeType {
			t := L.NewTable()
			fillStruct(L, t, rv.Elem())
			addNames(t, rv.Interface())
			return t
		}
		return toLua(L, rv.Elem().Interface())
	case reflect.Struct:
		if rv.Type() == timeType {
			return toLua(L, rv.Interface())
		}
		t := L.NewTable()
		fillStruct(L, t, rv)
		addNames(t, rv.Interface())
		return t
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return L.NewTable()
		}
		t := L.CreateTable(rv.Len(), 0)
		for i := 0; i < rv.Len(); i++ {
			t.RawSetInt(i+1, toLua(L, rv.Index(i).Interface()))
		}
		return t
	case reflect.Map:
		t := L.CreateTable(0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			t.RawSetString(fmt.Sprint(iter.Key().Interface()), toLua(L, iter.Value().Interface()))
		}
		return t
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return lua.LNumber(rv.Float())
	case reflect.Bool:
		return lua.LBool(rv.Bool())
	case reflect.String:
		return lua.LString(rv.String())
	}
	return lua.LString(fmt.Sprint(rv.Interface()))
}

// fillStruct sets the exported fields of rv on t.
func fillStruct(L *lua.LState, t *lua.LTable, rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name, inline := yamlName(field)
		if name == "-" {
			continue
		}
		fv := rv.Field(i)
		if inline && fv.Kind() == reflect.Struct {
			fillStruct(L, t, fv)
			continue
		}
		t.RawSetString(name, toLua(L, fv.Interface()))
	}
}

func yamlName(field reflect.StructField) (name string, inline bool) {
	tag := field.Tag.Get("yaml")
	parts := strings.Split(tag, ",")
	for _, opt := range parts[1:] {
		if opt == "inline" {
			inline = true
		}
	}
	if parts[0] != "" {
		return parts[0], inline
	}
	if field.Anonymous {
		return field.Name, true
	}
	return strings.ToLower(field.Name), inline
}

func addNames(t *lua.LTable, v any) {
	if n, ok := v.(interface{ LogName() string }); ok {
		t.RawSetString("log_name", lua.LString(n.LogName()))
	}
	if n, ok := v.(interface{ FullName() string }); ok {
		t.RawSetString("full_name", lua.LString(n.FullName()))
	}
}
