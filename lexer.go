// lexer.go — tokenizer for mathfp source text.
//
// The lexer is a plain byte-walker over the source string. It produces the
// complete token slice up front (EOF token included); the stream is
// "restartable" only in the sense that the caller can rescan the source.
// Every token records the 1-based line and column of its first character.
//
// Recognized syntax:
//   - numbers: 123, 45.67, .5 (a dot must be followed by a digit)
//   - identifiers: [A-Za-z_][A-Za-z0-9_]* ; keywords: if, then, else
//   - operators: + - * / %  < <= > >= == !=  :=  |->
//   - punctuation: ( ) , ;
//   - comments: '#' to end of line (skipped)
//
// The two-character operators are matched greedily before the single-char
// fallbacks. A lone ':', '|', '=' or '!' is a lexical error, since none of
// them is an operator on its own.
package mathfp

import "strconv"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LROUND // "("
	RROUND // ")"
	COMMA  // ","
	SEMI   // ";"

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	MOD
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	EQ  // "=="
	NEQ // "!="

	BIND   // ":="
	MAPSTO // "|->"

	// Literals & identifiers
	NUMBER
	ID

	// Keywords
	IF
	THEN
	ELSE
)

var tokenNames = map[TokenType]string{
	EOF:        "end of input",
	ILLEGAL:    "illegal token",
	LROUND:     "'('",
	RROUND:     "')'",
	COMMA:      "','",
	SEMI:       "';'",
	PLUS:       "'+'",
	MINUS:      "'-'",
	MULT:       "'*'",
	DIV:        "'/'",
	MOD:        "'%'",
	LESS:       "'<'",
	LESS_EQ:    "'<='",
	GREATER:    "'>'",
	GREATER_EQ: "'>='",
	EQ:         "'=='",
	NEQ:        "'!='",
	BIND:       "':='",
	MAPSTO:     "'|->'",
	NUMBER:     "number",
	ID:         "identifier",
	IF:         "'if'",
	THEN:       "'then'",
	ELSE:       "'else'",
}

// Name returns a human-readable description of the token type, as used in
// parse error messages ("expected ')' ...").
func (tt TokenType) Name() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "unknown token"
}

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string  // raw text slice
	Literal float64 // parsed value for NUMBER tokens
	Line    int     // 1-based
	Col     int     // 1-based column of the first character
}

// keywords map
var keywords = map[string]TokenType{
	"if":   IF,
	"then": THEN,
	"else": ELSE,
}

// Lexer scans a mathfp source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 1-based column of the next unread byte
	tokens []Token

	// position of the current token's first character
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  1,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) rewindToStart() {
	// Rewinds within the current token. The consumed prefix will be
	// advanced over again, so line/col return to the token start too;
	// otherwise every rescanned byte would be counted twice.
	l.cur = l.start
	l.line = l.tokStartLine
	l.col = l.tokStartCol
}

func (l *Lexer) addToken(tt TokenType, lit float64) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		case '#':
			for {
				b, ok := l.peek()
				if !ok || b == '\n' {
					break
				}
				l.advance()
			}
			l.start = l.cur
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

func (l *Lexer) err(msg string) error {
	return &Diagnostic{Kind: DiagLex, Msg: msg, Line: l.tokStartLine, Col: l.tokStartCol}
}

// scanNumber parses an integer or decimal literal: 123, 45.67, .5.
// A decimal point must be followed by at least one digit; "1." is reported
// as an unterminated numeric literal rather than silently read as 1.0.
func (l *Lexer) scanNumber() (float64, error) {
	sawDigits := false
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
		sawDigits = true
	}

	if b, ok := l.peek(); ok && b == '.' {
		b2, ok2 := l.peekN(1)
		if !ok2 || !isDigit(b2) {
			l.advance() // include the dot in the reported lexeme
			return 0, l.err("unterminated numeric literal")
		}
		l.advance() // consume '.'
		for {
			b, ok := l.peek()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
		}
		sawDigits = true
	}

	if !sawDigits {
		return 0, l.err("unterminated numeric literal")
	}

	lex := l.src[l.start:l.cur]
	v, convErr := strconv.ParseFloat(lex, 64)
	if convErr != nil {
		return 0, l.err("invalid numeric literal " + strconv.Quote(lex))
	}
	return v, nil
}

// dotStartsNumber reports whether the '.' just consumed begins a
// dot-fraction literal like .5.
func (l *Lexer) dotStartsNumber() bool {
	b, ok := l.peek()
	return ok && isDigit(b)
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespaceAndComments()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addToken(EOF, 0), nil
	}

	ch, _ := l.advance()

	switch ch {
	case '(':
		return l.addToken(LROUND, 0), nil
	case ')':
		return l.addToken(RROUND, 0), nil
	case ',':
		return l.addToken(COMMA, 0), nil
	case ';':
		return l.addToken(SEMI, 0), nil
	case '+':
		return l.addToken(PLUS, 0), nil
	case '-':
		return l.addToken(MINUS, 0), nil
	case '*':
		return l.addToken(MULT, 0), nil
	case '/':
		return l.addToken(DIV, 0), nil
	case '%':
		return l.addToken(MOD, 0), nil
	}

	// Two-char operators with maximal munch; the bare prefix characters are
	// not operators themselves.
	switch ch {
	case '<':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(LESS_EQ, 0), nil
		}
		return l.addToken(LESS, 0), nil
	case '>':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(GREATER_EQ, 0), nil
		}
		return l.addToken(GREATER, 0), nil
	case ':':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(BIND, 0), nil
		}
		return Token{}, l.err("invalid character ':' (expected ':=')")
	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(EQ, 0), nil
		}
		return Token{}, l.err("invalid character '=' (expected '==' or ':=')")
	case '!':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(NEQ, 0), nil
		}
		return Token{}, l.err("invalid character '!' (expected '!=')")
	case '|':
		b1, ok1 := l.peek()
		b2, ok2 := l.peekN(1)
		if ok1 && ok2 && b1 == '-' && b2 == '>' {
			l.advance()
			l.advance()
			return l.addToken(MAPSTO, 0), nil
		}
		return Token{}, l.err("invalid character '|' (expected '|->')")
	}

	// Numbers (starting with a digit or a dot-fraction like .5)
	if isDigit(ch) || (ch == '.' && l.dotStartsNumber()) {
		l.rewindToStart()
		v, err := l.scanNumber()
		if err != nil {
			return Token{}, err
		}
		return l.addToken(NUMBER, v), nil
	}

	// Identifiers / keywords
	if isAlpha(ch) {
		l.rewindToStart()
		lex := l.scanIdentifier()
		if tt, ok := keywords[lex]; ok {
			return l.addToken(tt, 0), nil
		}
		return l.addToken(ID, 0), nil
	}

	return Token{}, l.err("invalid character " + strconv.QuoteRune(rune(ch)))
}

// Scan tokenizes the entire source and returns tokens (EOF included).
// The first lexical error stops the scan; no partial token stream is kept.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
