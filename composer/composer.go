// Package composer provides cursor-aware markdown editing operations for
// post composition. Every operation is a pure function over a text buffer
// and a selection range: inputs are never mutated, and each returns the new
// buffer together with the new cursor position. Offsets are byte offsets.
package composer

import (
	"fmt"
	"strings"
)

// Selection is a half-open [Start, End) byte range in the buffer. A caret
// with no selected text has Start == End.
type Selection struct {
	Start int
	End   int
}

func (s Selection) clamp(n int) Selection {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End > n {
		s.End = n
	}
	if s.End < s.Start {
		s.End = s.Start
	}
	return s
}

// Edit is the result of an operation: the new buffer, the new cursor
// position, and, for wrapping operations, a selection spanning the wrapped
// text for a possible follow-up edit.
type Edit struct {
	Text      string
	Cursor    int
	Selection *Selection
}

// wrap surrounds the selected text with prefix and suffix. The cursor lands
// immediately after the suffix; the returned selection spans the originally
// selected, now wrapped, text.
func wrap(text string, sel Selection, prefix, suffix string) Edit {
	sel = sel.clamp(len(text))
	selected := text[sel.Start:sel.End]

	return Edit{
		Text:   text[:sel.Start] + prefix + selected + suffix + text[sel.End:],
		Cursor: sel.End + len(prefix) + len(suffix),
		Selection: &Selection{
			Start: sel.Start + len(prefix),
			End:   sel.End + len(prefix),
		},
	}
}

// Bold wraps the selection in **.
func Bold(text string, sel Selection) Edit {
	return wrap(text, sel, "**", "**")
}

// Italic wraps the selection in *.
func Italic(text string, sel Selection) Edit {
	return wrap(text, sel, "*", "*")
}

// Underline wraps the selection in <u> tags; markdown has no underline
// syntax and the renderer's whitelist passes <u> through.
func Underline(text string, sel Selection) Edit {
	return wrap(text, sel, "<u>", "</u>")
}

// Strikethrough wraps the selection in ~~.
func Strikethrough(text string, sel Selection) Edit {
	return wrap(text, sel, "~~", "~~")
}

// InlineCode wraps the selection in backticks.
func InlineCode(text string, sel Selection) Edit {
	return wrap(text, sel, "`", "`")
}

// insertAt places snippet at the selection, replacing any selected text.
// cursorOffset positions the cursor relative to the start of the snippet.
func insertAt(text string, sel Selection, snippet string, cursorOffset int) Edit {
	sel = sel.clamp(len(text))
	return Edit{
		Text:   text[:sel.Start] + snippet + text[sel.End:],
		Cursor: sel.Start + cursorOffset,
	}
}

// atLineStart reports whether pos sits at the start of a line, found by
// scanning back from pos to the nearest preceding newline or buffer start.
func atLineStart(text string, pos int) bool {
	return pos == 0 || text[pos-1] == '\n'
}

// blockSnippet prefixes snippet with a newline unless the selection already
// sits at a true line start.
func blockSnippet(text string, sel Selection, snippet string) string {
	if atLineStart(text, sel.clamp(len(text)).Start) {
		return snippet
	}
	return "\n" + snippet
}

// InsertLink inserts [label](url). With an active selection and an empty
// label the selected text becomes the label. The cursor lands after the
// closing parenthesis, or inside the empty component so the author can fill
// it in.
func InsertLink(text string, sel Selection, label, url string) Edit {
	sel = sel.clamp(len(text))
	if label == "" {
		label = text[sel.Start:sel.End]
	}
	snippet := "[" + label + "](" + url + ")"
	switch {
	case label == "":
		return insertAt(text, sel, snippet, 1)
	case url == "":
		return insertAt(text, sel, snippet, len(snippet)-1)
	default:
		return insertAt(text, sel, snippet, len(snippet))
	}
}

// InsertImage inserts ![alt](url).
func InsertImage(text string, sel Selection, alt, url string) Edit {
	snippet := "![" + alt + "](" + url + ")"
	if url == "" {
		return insertAt(text, sel, snippet, len(snippet)-1)
	}
	return insertAt(text, sel, snippet, len(snippet))
}

// InsertCodeBlock wraps the selection in a fenced code block with the given
// language tag. The cursor lands at the start of the block's body.
func InsertCodeBlock(text string, sel Selection, language string) Edit {
	sel = sel.clamp(len(text))
	selected := text[sel.Start:sel.End]
	open := blockSnippet(text, sel, "```"+language+"\n")
	snippet := open + selected + "\n```\n"
	return insertAt(text, sel, snippet, len(open)+len(selected))
}

// InsertBlockquote starts a blockquote at the cursor.
func InsertBlockquote(text string, sel Selection) Edit {
	snippet := blockSnippet(text, sel, "> ")
	return insertAt(text, sel, snippet, len(snippet))
}

// InsertBulletList starts a bulleted list item at the cursor.
func InsertBulletList(text string, sel Selection) Edit {
	snippet := blockSnippet(text, sel, "- ")
	return insertAt(text, sel, snippet, len(snippet))
}

// InsertNumberedList starts a numbered list item at the cursor.
func InsertNumberedList(text string, sel Selection) Edit {
	snippet := blockSnippet(text, sel, "1. ")
	return insertAt(text, sel, snippet, len(snippet))
}

// InsertHeading starts a heading of the given level (clamped to 1..6) at
// the cursor.
func InsertHeading(text string, sel Selection, level int) Edit {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	snippet := blockSnippet(text, sel, strings.Repeat("#", level)+" ")
	return insertAt(text, sel, snippet, len(snippet))
}

// InsertTable inserts an empty rows x cols markdown table. The cursor lands
// in the first header cell.
func InsertTable(text string, sel Selection, rows, cols int) Edit {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("|   ", cols) + "|\n")
	b.WriteString(strings.Repeat("|---", cols) + "|\n")
	for i := 0; i < rows; i++ {
		b.WriteString(strings.Repeat("|   ", cols) + "|\n")
	}

	snippet := blockSnippet(text, sel, b.String())
	// Land inside the first header cell.
	return insertAt(text, sel, snippet, len(snippet)-len(b.String())+2)
}

// InsertSpoiler inserts a spoiler block revealing the selected text behind
// the given summary.
func InsertSpoiler(text string, sel Selection, summary string) Edit {
	sel = sel.clamp(len(text))
	if summary == "" {
		summary = "Reveal spoiler"
	}
	selected := text[sel.Start:sel.End]
	snippet := blockSnippet(text, sel, ">! ["+summary+"] "+selected)
	return insertAt(text, sel, snippet, len(snippet))
}

// InsertHorizontalRule inserts a thematic break on its own line.
func InsertHorizontalRule(text string, sel Selection) Edit {
	snippet := blockSnippet(text, sel, "---\n")
	return insertAt(text, sel, snippet, len(snippet))
}

// InsertEmoji inserts a :owner/name: emoji token at the cursor.
func InsertEmoji(text string, sel Selection, owner, name string) Edit {
	token := ":" + name + ":"
	if owner != "" {
		token = ":" + owner + "/" + name + ":"
	}
	return insertAt(text, sel, token, len(token))
}

// InsertMention inserts an @account mention at the cursor.
func InsertMention(text string, sel Selection, account string) Edit {
	snippet := "@" + account
	return insertAt(text, sel, snippet, len(snippet))
}

// InsertGIF inserts a GIF as a markdown image with a uniform alt tag.
func InsertGIF(text string, sel Selection, url string) Edit {
	snippet := fmt.Sprintf("![gif](%s)", url)
	return insertAt(text, sel, snippet, len(snippet))
}
