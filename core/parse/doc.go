// Package parse implements the core.Parser for Pygmalion's markup dialect.
//
// The dialect is a small, line-oriented subset of Markdown. Blank lines
// separate blocks; leading spaces and tabs are ignored when a line's block
// type is decided.
//
//	# Heading            1-6 '#' then a space
//	```go                fenced code, closed by a line holding only ```
//	---                  rule: 3+ of the same '-', '*' or '_'
//	- item               bullet list ('-', '*' or '+')
//	3. item              ordered list, starting at 3
//	> quoted             quote; consecutive '>' lines merge
//	anything else        paragraph; lines are joined with one space
//
// An indented line directly after a list item continues that item. Fences
// may be indented like any other block, and so may the closing ``` line;
// any other text on that line keeps it inside the code.
//
// Inline markup is parsed per line and every span must close on the line
// that opens it:
//
//	`code`  *emphasis*  _emphasis_  **strong**  [label](url)  \* (escape)
//
// Parsing stops at the first defect and returns a *core.ParseError. An
// unclosed code fence is reported as core.UnexpectedEOF at the end of the
// input; every other defect is core.InvalidSyntax at the offending column.
package parse
