package parse

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/gaurav-prasanna/pygmalion/core"
)

func txt(s string) *core.Text { return &core.Text{Value: s} }

func para(in ...core.Inline) *core.Paragraph { return &core.Paragraph{Inlines: in} }

func item(in ...core.Inline) core.ListItem { return core.ListItem{Inlines: in} }

func mustParse(t *testing.T, input string) *core.Document {
	t.Helper()
	doc, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", input, err)
	}
	return doc
}

// TestParseEmpty tests that empty and blank input yields no blocks
func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "\n", "  \n\t\n\n"} {
		doc := mustParse(t, input)
		if doc.Blocks == nil {
			t.Errorf("Parse(%q): expected non-nil block slice", input)
		}
		if len(doc.Blocks) != 0 {
			t.Errorf("Parse(%q): expected 0 blocks, got %d", input, len(doc.Blocks))
		}
	}
}

// TestParseBlocks tests block-level constructs
func TestParseBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []core.Block
	}{
		{"paragraph", "Hello", []core.Block{para(txt("Hello"))}},
		{"joined lines", "one\ntwo  \n  three", []core.Block{para(txt("one two three"))}},
		{"crlf", "a\r\nb\r\n", []core.Block{para(txt("a b"))}},
		{"two paragraphs", "a\n\nb", []core.Block{para(txt("a")), para(txt("b"))}},
		{"hashtag is text", "#tag", []core.Block{para(txt("#tag"))}},
		{
			"headings",
			"# Title\n\n###### Deep  ",
			[]core.Block{
				&core.Heading{Level: 1, Inlines: []core.Inline{txt("Title")}},
				&core.Heading{Level: 6, Inlines: []core.Inline{txt("Deep")}},
			},
		},
		{
			"fenced code",
			"```go\nfmt.Println()\n\n  x := 1\n```",
			[]core.Block{&core.CodeBlock{Info: "go", Text: "fmt.Println()\n\n  x := 1"}},
		},
		{"empty fence", "```\n```", []core.Block{&core.CodeBlock{}}},
		{"indented closing fence", "```\nx\n   ```  ", []core.Block{&core.CodeBlock{Text: "x"}}},
		{"indented fence pair", "  ```sh\n  ls\n  ```\n\nafter", []core.Block{&core.CodeBlock{Info: "sh", Text: "  ls"}, para(txt("after"))}},
		{"fence with text stays open", "```\n```x\n``` y\n```", []core.Block{&core.CodeBlock{Text: "```x\n``` y"}}},
		{"code is verbatim", "```\n*not* `parsed\n```", []core.Block{&core.CodeBlock{Text: "*not* `parsed"}}},
		{"rules", "---\n* * *\n___", []core.Block{&core.Rule{}, &core.Rule{}, &core.Rule{}}},
		{
			"bullet list",
			"- a\n* b\n  continued\n+ c",
			[]core.Block{&core.List{Items: []core.ListItem{
				item(txt("a")), item(txt("b continued")), item(txt("c")),
			}}},
		},
		{
			"ordered list",
			"3. x\n4. y",
			[]core.Block{&core.List{Ordered: true, Start: 3, Items: []core.ListItem{item(txt("x")), item(txt("y"))}}},
		},
		{
			"list kind change",
			"- a\n1. b",
			[]core.Block{
				&core.List{Items: []core.ListItem{item(txt("a"))}},
				&core.List{Ordered: true, Start: 1, Items: []core.ListItem{item(txt("b"))}},
			},
		},
		{"quote", "> a\n>b\n>\n> c", []core.Block{&core.Quote{Inlines: []core.Inline{txt("a b c")}}}},
		{
			"mixed",
			"# T\npara\n- item\n\n> q",
			[]core.Block{
				&core.Heading{Level: 1, Inlines: []core.Inline{txt("T")}},
				para(txt("para")),
				&core.List{Items: []core.ListItem{item(txt("item"))}},
				&core.Quote{Inlines: []core.Inline{txt("q")}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			if !reflect.DeepEqual(doc.Blocks, tt.want) {
				t.Errorf("blocks mismatch\nwant %#v\ngot  %#v", tt.want, doc.Blocks)
			}
		})
	}
}

// TestParseInlines tests inline markup inside a paragraph
func TestParseInlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []core.Inline
	}{
		{"plain", "just text", []core.Inline{txt("just text")}},
		{
			"all spans",
			"*a* **b** `c` [d](http://e)",
			[]core.Inline{
				&core.Emphasis{Children: []core.Inline{txt("a")}},
				txt(" "),
				&core.Strong{Children: []core.Inline{txt("b")}},
				txt(" "),
				&core.Code{Value: "c"},
				txt(" "),
				&core.Link{Children: []core.Inline{txt("d")}, URL: "http://e"},
			},
		},
		{"spaced star", "2 * 3 = 6", []core.Inline{txt("2 * 3 = 6")}},
		{"snake case", "snake_case_name", []core.Inline{txt("snake_case_name")}},
		{"escapes", `\*not\* \[x\]`, []core.Inline{txt("*not* [x]")}},
		{"literal backslash", `C:\path`, []core.Inline{txt(`C:\path`)}},
		{"bracket without link", "[x] y", []core.Inline{txt("[x] y")}},
		{"underscore emphasis", "_a_", []core.Inline{&core.Emphasis{Children: []core.Inline{txt("a")}}}},
		{
			"nested",
			"**a *b* c**",
			[]core.Inline{&core.Strong{Children: []core.Inline{
				txt("a "), &core.Emphasis{Children: []core.Inline{txt("b")}}, txt(" c"),
			}}},
		},
		{
			"link label markup",
			"[**x**](u)",
			[]core.Inline{&core.Link{Children: []core.Inline{&core.Strong{Children: []core.Inline{txt("x")}}}, URL: "u"}},
		},
		{
			"span across join",
			"a *b*\nc",
			[]core.Inline{txt("a "), &core.Emphasis{Children: []core.Inline{txt("b")}}, txt(" c")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			if len(doc.Blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
			}
			p, ok := doc.Blocks[0].(*core.Paragraph)
			if !ok {
				t.Fatalf("expected *core.Paragraph, got %T", doc.Blocks[0])
			}
			if !reflect.DeepEqual(p.Inlines, tt.want) {
				t.Errorf("inlines mismatch\nwant %#v\ngot  %#v", tt.want, p.Inlines)
			}
		})
	}
}

// TestParseErrors builds inputs with a single known defect
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  core.ParseErrorKind
		pos   core.Position
	}{
		{"heading too deep", "####### x", core.InvalidSyntax, core.Position{Offset: 6, Line: 1, Column: 7}},
		{"empty heading", "ok\n\n##", core.InvalidSyntax, core.Position{Offset: 6, Line: 3, Column: 3}},
		{"empty list item", "para\n- ", core.InvalidSyntax, core.Position{Offset: 6, Line: 2, Column: 2}},
		{"unterminated code span", "hello `world", core.InvalidSyntax, core.Position{Offset: 6, Line: 1, Column: 7}},
		{"unterminated emphasis", "ok\nsome *emph", core.InvalidSyntax, core.Position{Offset: 8, Line: 2, Column: 6}},
		{"unterminated strong", "**bold", core.InvalidSyntax, core.Position{Offset: 0, Line: 1, Column: 1}},
		{"empty strong", "a ****", core.InvalidSyntax, core.Position{Offset: 2, Line: 1, Column: 3}},
		{"unterminated link", "see [x](http://a", core.InvalidSyntax, core.Position{Offset: 7, Line: 1, Column: 8}},
		{"empty link", "[x]()", core.InvalidSyntax, core.Position{Offset: 3, Line: 1, Column: 4}},
		{"heading inline", "# a *b", core.InvalidSyntax, core.Position{Offset: 4, Line: 1, Column: 5}},
		{"indented quote", "  > *x", core.InvalidSyntax, core.Position{Offset: 4, Line: 1, Column: 5}},
		{"multibyte column", "héllo `x", core.InvalidSyntax, core.Position{Offset: 7, Line: 1, Column: 7}},
		{"list continuation", "- a\n  b `c", core.InvalidSyntax, core.Position{Offset: 8, Line: 2, Column: 5}},
		{"open fence", "```\ncode", core.UnexpectedEOF, core.Position{Offset: 8, Line: 2, Column: 5}},
		{"open fence trailing newline", "text\n\n```sh\nls\n", core.UnexpectedEOF, core.Position{Offset: 15, Line: 5, Column: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("expected error, got document with %d blocks", len(doc.Blocks))
			}
			if doc != nil {
				t.Errorf("expected no document on error")
			}
			var perr *core.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *core.ParseError, got %T", err)
			}
			if perr.Kind != tt.kind {
				t.Errorf("kind: want %v got %v (%v)", tt.kind, perr.Kind, perr)
			}
			if perr.Pos != tt.pos {
				t.Errorf("position: want %+v got %+v (%v)", tt.pos, perr.Pos, perr)
			}
		})
	}
}

// TestParseStopsAtFirstError checks that the earliest defect is reported
func TestParseStopsAtFirstError(t *testing.T) {
	_, err := Parse("`a\n\n**b")
	var perr *core.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *core.ParseError, got %v", err)
	}
	if perr.Pos.Line != 1 {
		t.Errorf("expected error on line 1, got %v", perr.Pos)
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("x `y")
	want := "1:3: invalid syntax: unterminated code span"
	if err == nil || err.Error() != want {
		t.Errorf("want %q got %v", want, err)
	}
}

func TestParseDeterministic(t *testing.T) {
	input := "# T\n\nSome *text* with `code`.\n\n1. a\n2. b\n\n```\nx\n```"
	first := mustParse(t, input)
	second := mustParse(t, input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two parses of the same input differ")
	}
}

func TestParseConcurrent(t *testing.T) {
	p := New()
	input := "# Head\n\n- one\n- **two**\n\n> quote"
	want := mustParse(t, input)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := p.Parse(input)
			if err != nil {
				errs <- err
				return
			}
			if !reflect.DeepEqual(doc, want) {
				errs <- errors.New("concurrent parse produced a different document")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// TestParsedKindsAreValid checks the closed variant contract on a document
// that uses every construct
func TestParsedKindsAreValid(t *testing.T) {
	doc := mustParse(t, "# h\n\np *e* **s** `c` [l](u)\n\n```\nc\n```\n\n---\n\n- i\n\n1. o\n\n> q")
	seen := map[core.BlockKind]bool{}
	for _, b := range doc.Blocks {
		if !b.Kind().Valid() {
			t.Errorf("invalid block kind %v", b.Kind())
		}
		if in, bad := core.CheckInlines(b); bad {
			t.Errorf("invalid inline %v in %v", in, b.Kind())
		}
		seen[b.Kind()] = true
	}
	for k := core.KindParagraph; k <= core.KindRule; k++ {
		if !seen[k] {
			t.Errorf("expected a %v block", k)
		}
	}
}
