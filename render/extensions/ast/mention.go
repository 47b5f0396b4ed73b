package ast

import (
	"fmt"

	gast "github.com/yuin/goldmark/ast"
)

// A Mention node represents an inline @account reference.
type Mention struct {
	gast.BaseInline

	// Account is the account name without the leading @.
	Account []byte
}

var KindMention = gast.NewNodeKind("Mention")

func (n *Mention) Kind() gast.NodeKind {
	return KindMention
}

func (n *Mention) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{
		"Account": fmt.Sprintf("%s", n.Account),
	}, nil)
}

func NewMention(account []byte) *Mention {
	return &Mention{Account: account}
}
