package asm

import (
	"strings"
	"text/scanner"
	"unicode"
)

// Character starting a comment that extends to the end of the line
const CommentChar = "!"

type tokenKind uint

const (
	token_EOF tokenKind = iota
	token_Ident
	token_Number
	token_Punct
)

type token struct {
	kind   tokenKind
	text   string
	column int
}

func isIdentRune(ch rune, i int) bool {
	return ch == '_' || ch == '.' || ch == '$' || unicode.IsLetter(ch) || (unicode.IsDigit(ch) && i > 0)
}

// Splits a line of assembly into tokens. Comments are dropped
func tokenize(line string) ([]token, error) {
	if comment := strings.Index(line, CommentChar); comment >= 0 {
		line = line[:comment]
	}

	var s scanner.Scanner
	var scanErr error

	s.Init(strings.NewReader(line))
	s.Mode = scanner.ScanIdents | scanner.ScanInts
	s.IsIdentRune = isIdentRune
	s.Error = func(s *scanner.Scanner, msg string) {
		if scanErr == nil {
			scanErr = newSyntaxError(s.Pos().Column, "%v", msg)
		}
	}

	tokens := []token{}

	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		t := token{text: s.TokenText(), column: s.Position.Column}

		switch tok {
		case scanner.Ident:
			t.kind = token_Ident
		case scanner.Int:
			t.kind = token_Number
		default:
			t.kind = token_Punct
		}

		tokens = append(tokens, t)
	}

	if scanErr != nil {
		return nil, scanErr
	}

	return append(tokens, token{kind: token_EOF, column: len(line) + 1}), nil
}
