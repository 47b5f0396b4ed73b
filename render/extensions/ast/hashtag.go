package ast

import (
	"fmt"

	gast "github.com/yuin/goldmark/ast"
)

// A Hashtag node represents an inline #tag reference.
type Hashtag struct {
	gast.BaseInline

	// Tag is the tag text without the leading #, original casing preserved.
	Tag []byte
}

var KindHashtag = gast.NewNodeKind("Hashtag")

func (n *Hashtag) Kind() gast.NodeKind {
	return KindHashtag
}

func (n *Hashtag) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Tag": fmt.Sprintf("%s", n.Tag),
	}, nil)
}

func NewHashtag(tag []byte) *Hashtag {
	return &Hashtag{Tag: tag}
}
