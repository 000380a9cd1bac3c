// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package manifest

import (
	"fmt"
	"strings"
)

type tokenType int

const (
	tokenEof tokenType = iota
	tokenIdent
	tokenString
	tokenNumber
	tokenLParen
	tokenRParen
	tokenLAngle
	tokenRAngle
	tokenComma
	tokenSemicolon
)

var tokenTypeNames = map[tokenType]string{
	tokenEof:       "end of input",
	tokenIdent:     "identifier",
	tokenString:    "string literal",
	tokenNumber:    "number literal",
	tokenLParen:    "'('",
	tokenRParen:    "')'",
	tokenLAngle:    "'<'",
	tokenRAngle:    "'>'",
	tokenComma:     "','",
	tokenSemicolon: "';'",
}

func (t tokenType) String() string {
	return tokenTypeNames[t]
}

type token struct {
	Type    tokenType
	Literal string
	Line    int
	Column  int
}

type lexer struct {
	src    string
	pos    int
	line   int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{
		src:    src,
		line:   1,
		column: 1,
	}
}

// tokenize converts the entire source into a token list, ending with EOF
func (l *lexer) tokenize() ([]token, error) {
	var tokens []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == tokenEof {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespaceAndComments()
	line, column := l.line, l.column
	if l.pos >= len(l.src) {
		return token{Type: tokenEof, Line: line, Column: column}, nil
	}
	c := l.src[l.pos]
	switch {
	case c == '(':
		l.advance()
		return token{Type: tokenLParen, Literal: "(", Line: line, Column: column}, nil
	case c == ')':
		l.advance()
		return token{Type: tokenRParen, Literal: ")", Line: line, Column: column}, nil
	case c == '<':
		l.advance()
		return token{Type: tokenLAngle, Literal: "<", Line: line, Column: column}, nil
	case c == '>':
		l.advance()
		return token{Type: tokenRAngle, Literal: ">", Line: line, Column: column}, nil
	case c == ',':
		l.advance()
		return token{Type: tokenComma, Literal: ",", Line: line, Column: column}, nil
	case c == ';':
		l.advance()
		return token{Type: tokenSemicolon, Literal: ";", Line: line, Column: column}, nil
	case c == '"':
		return l.lexString(line, column)
	case c == '-' || isDigit(c):
		return l.lexNumber(line, column)
	case isIdentStart(c):
		return l.lexIdent(line, column)
	default:
		return token{}, &SyntaxError{
			Line:    line,
			Column:  column,
			Message: fmt.Sprintf("unexpected character %q", c),
		}
	}
}

func (l *lexer) lexString(line, column int) (token, error) {
	// Skip opening quote
	l.advance()
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return token{}, &SyntaxError{
				Line:    line,
				Column:  column,
				Message: "unterminated string literal",
			}
		}
		c := l.src[l.pos]
		if c == '"' {
			l.advance()
			return token{
				Type:    tokenString,
				Literal: sb.String(),
				Line:    line,
				Column:  column,
			}, nil
		}
		if c == '\\' {
			l.advance()
			if l.pos >= len(l.src) {
				return token{}, &SyntaxError{
					Line:    line,
					Column:  column,
					Message: "unterminated string literal",
				}
			}
			escaped := l.src[l.pos]
			switch escaped {
			case '"', '\\':
				sb.WriteByte(escaped)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				return token{}, &SyntaxError{
					Line:    l.line,
					Column:  l.column,
					Message: fmt.Sprintf("invalid escape sequence \\%c", escaped),
				}
			}
			l.advance()
			continue
		}
		sb.WriteByte(c)
		l.advance()
	}
}

func (l *lexer) lexNumber(line, column int) (token, error) {
	start := l.pos
	if l.src[l.pos] == '-' {
		l.advance()
	}
	digits := 0
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		digits++
		l.advance()
	}
	if digits == 0 {
		return token{}, &SyntaxError{
			Line:    line,
			Column:  column,
			Message: "expected digits after '-'",
		}
	}
	// The type suffix (u8, i64, ...) is part of the literal
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.advance()
	}
	return token{
		Type:    tokenNumber,
		Literal: l.src[start:l.pos],
		Line:    line,
		Column:  column,
	}, nil
}

func (l *lexer) lexIdent(line, column int) (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.advance()
	}
	return token{
		Type:    tokenIdent,
		Literal: l.src[start:l.pos],
		Line:    line,
		Column:  column,
	}, nil
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			l.advance()
			continue
		}
		if c == '#' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
			continue
		}
		return
	}
}

func (l *lexer) advance() {
	if l.pos < len(l.src) {
		if l.src[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
