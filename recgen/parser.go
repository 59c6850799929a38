package recgen

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// --- Participle grammar structs ---
// These define the record layout grammar using struct tags. A layout file is
// a sequence of record blocks holding field, subrecord, and sublist
// definitions.

// recordDefP parses: record name { item* }
type recordDefP struct {
	Name  string        `parser:"'record' @Ident '{'"`
	Items []recordItemP `parser:"@@* '}'"`
}

// recordItemP is one of: field, subrecord, or sublist.
type recordItemP struct {
	Field     *fieldDefP     `parser:"  @@"`
	Subrecord *subrecordDefP `parser:"| @@"`
	Sublist   *sublistDefP   `parser:"| @@"`
}

// fieldDefP parses: field name value-type [@text] [@id(platform-id)]
type fieldDefP struct {
	Name   string   `parser:"'field' @Ident"`
	Type   string   `parser:"@Ident"`
	Annots []annotP `parser:"@@*"`
}

// annotP parses: @text or @id(...)
type annotP struct {
	Text bool      `parser:"  @'@text'"`
	ID   *idAnnotP `parser:"| @@"`
}

// idAnnotP parses: @id(platform-field-id)
type idAnnotP struct {
	Value string `parser:"'@id' '(' @Ident ')'"`
}

// subrecordDefP parses: subrecord field-name record-type
type subrecordDefP struct {
	Name       string `parser:"'subrecord' @Ident"`
	RecordType string `parser:"@Ident"`
}

// sublistDefP parses: sublist name { (field | subrecord)* }
type sublistDefP struct {
	Name  string      `parser:"'sublist' @Ident '{'"`
	Items []lineItemP `parser:"@@* '}'"`
}

// lineItemP is one of: field or subrecord.
type lineItemP struct {
	Field     *fieldDefP     `parser:"  @@"`
	Subrecord *subrecordDefP `parser:"| @@"`
}

// layoutFileP is the top-level grammar for a layout file.
type layoutFileP struct {
	Records []recordDefP `parser:"@@*"`
}

var layoutLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},
	{Name: "Keyword", Pattern: `\b(record|field|subrecord|sublist)\b`},
	{Name: "AnnotKW", Pattern: `@(text|id)`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[{}()]`},
})

// ParseLayout parses a record layout string into a Layout structure.
func ParseLayout(input string) (*Layout, error) {
	parser, err := participle.Build[layoutFileP](
		participle.Lexer(layoutLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("build parser: %w", err)
	}

	ast, err := parser.ParseString("layout.rdl", input)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	return convertLayout(ast), nil
}

// ParseLayoutFile reads a record layout from the specified file path and
// parses it.
func ParseLayoutFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayout(string(data))
}

// convertLayout converts the participle AST to the domain model.
func convertLayout(file *layoutFileP) *Layout {
	layout := &Layout{}
	for _, r := range file.Records {
		spec := RecordSpec{Name: r.Name}
		for _, item := range r.Items {
			switch {
			case item.Field != nil:
				spec.Fields = append(spec.Fields, convertField(item.Field))
			case item.Subrecord != nil:
				spec.Subrecords = append(spec.Subrecords, SubrecordSpec{
					Name:       item.Subrecord.Name,
					RecordType: item.Subrecord.RecordType,
				})
			case item.Sublist != nil:
				spec.Sublists = append(spec.Sublists, convertSublist(item.Sublist))
			}
		}
		layout.Records = append(layout.Records, spec)
	}
	return layout
}

func convertSublist(s *sublistDefP) SublistSpec {
	spec := SublistSpec{Name: s.Name}
	for _, item := range s.Items {
		switch {
		case item.Field != nil:
			spec.Fields = append(spec.Fields, convertField(item.Field))
		case item.Subrecord != nil:
			spec.Subrecords = append(spec.Subrecords, SubrecordSpec{
				Name:       item.Subrecord.Name,
				RecordType: item.Subrecord.RecordType,
			})
		}
	}
	return spec
}

func convertField(f *fieldDefP) FieldSpec {
	spec := FieldSpec{Name: f.Name, ValueType: f.Type}
	for _, ann := range f.Annots {
		if ann.Text {
			spec.Text = true
		}
		if ann.ID != nil {
			spec.FieldID = ann.ID.Value
		}
	}
	return spec
}
