// Package inspector renders struct fields as a debug panel, driven by
// `inspect` struct tags:
//
//	`inspect:"bar,max:625"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"angle"`
//	`inspect:"skip"`
package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"angle": WidgetAngle,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

// Field is one struct field with its drawing hints.
type Field struct {
	Name   string
	Value  any
	Widget Widget
	Format string  // printf verb for labels
	Max    float64 // full scale for bars
}

// ParseTag reads a widget name followed by optional fmt and max settings.
// Unknown widgets and settings are ignored.
func ParseTag(tag string) Field {
	f := Field{Max: 1}
	name, rest, _ := strings.Cut(tag, ",")
	f.Widget = widgetNames[strings.TrimSpace(name)]

	for _, opt := range strings.Split(rest, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(opt), ":")
		if !ok {
			continue
		}
		switch key {
		case "fmt":
			f.Format = val
		case "max":
			if m, err := strconv.ParseFloat(val, 64); err == nil && m != 0 {
				f.Max = m
			}
		}
	}
	return f
}

// ExtractFields lists the exported, non-skipped fields of a struct or
// pointer to struct. Anything else yields nil.
func ExtractFields(v any) []Field {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	t := rv.Type()
	var fields []Field
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		f := ParseTag(sf.Tag.Get("inspect"))
		if f.Widget == WidgetSkip {
			continue
		}
		f.Name = sf.Name
		f.Value = rv.Field(i).Interface()
		if f.Widget == WidgetAuto {
			f.Widget = WidgetLabel
			if _, ok := f.Value.(bool); ok {
				f.Widget = WidgetBool
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// Text formats the field value for a label.
func (f Field) Text() string {
	if f.Format != "" {
		return fmt.Sprintf(f.Format, f.Value)
	}
	switch v := f.Value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(f.Value)
}

// Float returns the value as a float64 for bars and angles.
func (f Field) Float() (float64, bool) {
	switch v := f.Value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}
