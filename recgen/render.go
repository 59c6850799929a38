package recgen

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// RenderConfig specifies the settings for generating Go code from a record
// layout.
type RenderConfig struct {
	// PackageName is the name of the Go package for the generated code.
	PackageName string
	// ModulePath is the module import path for the 'rec' package.
	ModulePath string
	// UseAcronyms, if true, applies Go acronym naming conventions (e.g., 'ID' instead of 'Id').
	UseAcronyms bool
	// Register, if true, emits a RegisterAll function that registers every
	// generated record type with the rec registry.
	Register bool
	// LayoutVersion is an optional string included in the generated file header.
	LayoutVersion string
}

// DefaultConfig returns a standard RenderConfig with sensible defaults.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		PackageName: "records",
		ModulePath:  "github.com/netlark/go-recdal/rec",
		UseAcronyms: true,
		Register:    true,
	}
}

// Render processes a Layout and writes the generated Go source code to the
// provided writer.
func Render(w io.Writer, layout *Layout, cfg RenderConfig) error {
	if cfg.PackageName == "" {
		cfg.PackageName = "records"
	}
	if cfg.ModulePath == "" {
		cfg.ModulePath = "github.com/netlark/go-recdal/rec"
	}

	data := &renderData{
		PackageName:   cfg.PackageName,
		ModulePath:    cfg.ModulePath,
		Register:      cfg.Register,
		LayoutVersion: cfg.LayoutVersion,
		NeedsTime:     needsTimeImport(layout),
	}

	for _, r := range layout.Records {
		recCtx, lineCtxs := buildRecordCtx(r, cfg)
		data.Records = append(data.Records, recCtx)
		data.Lines = append(data.Lines, lineCtxs...)
	}

	return renderTemplate.Execute(w, data)
}

// --- Template context types ---

type renderData struct {
	PackageName   string
	ModulePath    string
	Register      bool
	LayoutVersion string
	NeedsTime     bool
	Records       []recordCtx
	Lines         []lineCtx
}

type recordCtx struct {
	GoName   string
	TypeName string // platform record type
	Fields   []fieldCtx
}

type lineCtx struct {
	GoName       string
	RecordGoName string
	SublistID    string
	Fields       []fieldCtx
}

type fieldCtx struct {
	GoName string
	GoType string
	Tag    string
}

// --- Context builders ---

func buildRecordCtx(r RecordSpec, cfg RenderConfig) (recordCtx, []lineCtx) {
	ctx := recordCtx{
		GoName:   goName(r.Name, cfg),
		TypeName: r.Name,
	}

	for _, f := range r.Fields {
		ctx.Fields = append(ctx.Fields, buildFieldCtxs(f, cfg)...)
	}
	for _, s := range r.Subrecords {
		ctx.Fields = append(ctx.Fields, buildSubrecordCtx(s, cfg))
	}

	var lines []lineCtx
	for _, s := range r.Sublists {
		lc := lineCtx{
			GoName:       ctx.GoName + goName(s.Name, cfg) + "Line",
			RecordGoName: ctx.GoName,
			SublistID:    s.Name,
		}
		for _, f := range s.Fields {
			lc.Fields = append(lc.Fields, buildFieldCtxs(f, cfg)...)
		}
		for _, sr := range s.Subrecords {
			lc.Fields = append(lc.Fields, buildSubrecordCtx(sr, cfg))
		}
		lines = append(lines, lc)

		ctx.Fields = append(ctx.Fields, fieldCtx{
			GoName: goName(s.Name, cfg) + "Lines",
			GoType: "[]" + lc.GoName,
			Tag:    fmt.Sprintf("`rec:\"%s,sublist\"`", s.Name),
		})
	}

	return ctx, lines
}

// buildFieldCtxs builds the value binding for a field plus, when the layout
// requests it, the companion text binding.
func buildFieldCtxs(f FieldSpec, cfg RenderConfig) []fieldCtx {
	valueTag := []string{f.Name}
	if f.FieldID != "" {
		valueTag = append(valueTag, "field:"+f.FieldID)
	}
	if isNumericValueType(f.ValueType) {
		valueTag = append(valueTag, "numeric")
	}

	ctxs := []fieldCtx{{
		GoName: goName(f.Name, cfg),
		GoType: valueTypeToGo(f.ValueType),
		Tag:    fmt.Sprintf("`rec:\"%s\"`", strings.Join(valueTag, ",")),
	}}

	if f.Text {
		textTag := []string{f.Name + "Text"}
		if f.FieldID != "" {
			textTag = append(textTag, "text", "field:"+f.FieldID)
		}
		ctxs = append(ctxs, fieldCtx{
			GoName: goName(f.Name, cfg) + "Text",
			GoType: "string",
			Tag:    fmt.Sprintf("`rec:\"%s\"`", strings.Join(textTag, ",")),
		})
	}

	return ctxs
}

func buildSubrecordCtx(s SubrecordSpec, cfg RenderConfig) fieldCtx {
	return fieldCtx{
		GoName: goName(s.Name, cfg),
		GoType: "*" + goName(s.RecordType, cfg),
		Tag:    fmt.Sprintf("`rec:\"%s,subrecord\"`", s.Name),
	}
}

func goName(name string, cfg RenderConfig) string {
	if cfg.UseAcronyms {
		return ToPascalCaseAcronyms(name)
	}
	return ToPascalCase(name)
}

// valueTypeToGo maps a platform value type to its Go representation.
func valueTypeToGo(vtype string) string {
	switch vtype {
	case "text", "textarea", "select", "email", "phone", "url":
		return "string"
	case "number", "currency", "percent":
		return "float64"
	case "integer":
		return "int64"
	case "date", "datetime":
		return "time.Time"
	case "checkbox":
		return "bool"
	default:
		return "string"
	}
}

func isNumericValueType(vtype string) bool {
	switch vtype {
	case "number", "currency", "percent", "integer":
		return true
	}
	return false
}

func needsTimeImport(layout *Layout) bool {
	check := func(fields []FieldSpec) bool {
		for _, f := range fields {
			if valueTypeToGo(f.ValueType) == "time.Time" {
				return true
			}
		}
		return false
	}
	for _, r := range layout.Records {
		if check(r.Fields) {
			return true
		}
		for _, s := range r.Sublists {
			if check(s.Fields) {
				return true
			}
		}
	}
	return false
}

// --- Go template ---

var renderTemplate = template.Must(template.New("records").Parse(`// Code generated by recgen. DO NOT EDIT.
{{- if .LayoutVersion}}
// Layout version: {{.LayoutVersion}}
{{- end}}

package {{.PackageName}}

import (
	"{{.ModulePath}}"
{{- if .NeedsTime}}
	"time"
{{- end}}
)
{{range .Lines}}
// {{.GoName}} is one {{.SublistID}} line of a {{.RecordGoName}} record.
type {{.GoName}} struct {
	rec.BaseLine
{{- range .Fields}}
	{{.GoName}} {{.GoType}} {{.Tag}}
{{- end}}
}
{{end}}
{{- range .Records}}
// {{.GoName}} maps the "{{.TypeName}}" record type.
type {{.GoName}} struct {
	rec.BaseRecord ` + "`rec:\"type:{{.TypeName}}\"`" + `
{{- range .Fields}}
	{{.GoName}} {{.GoType}} {{.Tag}}
{{- end}}
}
{{end}}
{{- if .Register}}
// RegisterAll registers every generated record type.
func RegisterAll() {
{{- range .Records}}
	rec.MustRegister[{{.GoName}}]()
{{- end}}
}
{{- end}}`))
