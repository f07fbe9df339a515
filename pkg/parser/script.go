package parser

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

var (
	// scriptLexer tokenizes just enough SQL to find statement boundaries.
	// Quoted text and dollar-quoted bodies are opaque so that keywords inside
	// function bodies or literals are never mistaken for statements.
	scriptLexer = lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Comment", Pattern: `--[^\r\n]*`},
			{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
			{Name: "String", Pattern: `'([^']|'')*'`},
			{Name: "QuotedIdent", Pattern: `"([^"]|"")*"|` + "`[^`]*`"},
			{Name: "DollarOpen", Pattern: `\$([A-Za-z_][A-Za-z0-9_]*|)\$`, Action: lexer.Push("Dollar")},
			{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_$]*`},
			{Name: "Semicolon", Pattern: `;`},
			{Name: "Whitespace", Pattern: `\s+`},
			{Name: "Other", Pattern: `.`},
		},
		"Dollar": {
			{Name: "DollarClose", Pattern: `\$\1\$`, Action: lexer.Pop()},
			{Name: "DollarBody", Pattern: `[^$]+|\$`},
		},
	})

	scriptSymbols = scriptLexer.Symbols()

	transactionKeywords = map[string]bool{
		"BEGIN":    true,
		"COMMIT":   true,
		"ROLLBACK": true,
	}
)

// HasTransactionControl reports whether the script contains a statement that
// manages its own transaction: BEGIN, COMMIT, ROLLBACK or START TRANSACTION at
// the start of a statement. Such scripts must not be wrapped in another
// transaction by the caller.
//
// Statement boundaries are plain semicolons outside quoted text, so a BEGIN
// opening a nested block inside an unquoted procedure body also counts.
func HasTransactionControl(r io.Reader) (bool, error) {
	lex, err := scriptLexer.Lex("", r)
	if err != nil {
		return false, errors.Wrap(err, "failed to tokenize script")
	}

	var (
		statementStart = true
		pendingStart   = false
	)

	for {
		tok, err := lex.Next()
		if err != nil {
			return false, errors.Wrap(err, "failed to tokenize script")
		}

		if tok.EOF() {
			return false, nil
		}

		switch tok.Type {
		case scriptSymbols["Whitespace"], scriptSymbols["Comment"], scriptSymbols["MultilineComment"]:
			continue
		case scriptSymbols["Semicolon"]:
			statementStart = true
			pendingStart = false
			continue
		}

		word := strings.ToUpper(tok.Value)
		isIdent := tok.Type == scriptSymbols["Ident"]

		if pendingStart {
			if isIdent && word == "TRANSACTION" {
				return true, nil
			}
			pendingStart = false
		}

		if statementStart && isIdent {
			if transactionKeywords[word] {
				return true, nil
			}
			pendingStart = word == "START"
		}

		statementStart = false
	}
}
