package toml

import (
	"math"
	"strconv"
	"strings"
)

// Parser builds a map[string]any document from tokens
// Tables are map[string]any, arrays []any, arrays of tables []map[string]any
type Parser struct {
	lexer *Lexer
	cur   Token
	peek  Token
	root  map[string]any
	scope map[string]any
	// tables records explicitly declared [tables] to reject redefinition
	tables map[string]bool
}

func NewParser(input []byte) *Parser {
	p := &Parser{
		lexer:  NewLexer(input),
		root:   make(map[string]any),
		tables: make(map[string]bool),
	}
	p.next()
	p.next()
	p.scope = p.root
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lexer.NextToken()
	for p.peek.Type == TokenComment {
		p.peek = p.lexer.NextToken()
	}
}

// Parse consumes the whole input
func (p *Parser) Parse() (map[string]any, error) {
	for p.cur.Type != TokenEOF {
		switch p.cur.Type {
		case TokenNewline, TokenComment:
			p.next()
			continue
		case TokenLBracket:
			if err := p.tableHeader(); err != nil {
				return nil, err
			}
		case TokenIdent, TokenString, TokenInteger, TokenBool:
			if err := p.keyValue(p.scope); err != nil {
				return nil, err
			}
		case TokenError:
			return nil, errorAt(p.cur.Pos, "%s", p.cur.Literal)
		default:
			return nil, errorAt(p.cur.Pos, "unexpected %s", p.cur)
		}
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
	}
	return p.root, nil
}

func (p *Parser) endOfStatement() error {
	switch p.cur.Type {
	case TokenNewline:
		p.next()
		return nil
	case TokenEOF:
		return nil
	}
	return errorAt(p.cur.Pos, "expected end of line, got %s", p.cur)
}

// tableHeader handles [a.b] and [[a.b]]
func (p *Parser) tableHeader() error {
	pos := p.cur.Pos
	array := p.peek.Type == TokenLBracket
	p.next()
	if array {
		p.next()
	}
	keys, err := p.key()
	if err != nil {
		return err
	}
	for i := 0; i < 1+boolInt(array); i++ {
		if p.cur.Type != TokenRBracket {
			return errorAt(p.cur.Pos, "expected ] to close table header")
		}
		p.next()
	}

	parent := p.root
	for _, k := range keys[:len(keys)-1] {
		if parent, err = descend(parent, k, pos); err != nil {
			return err
		}
	}
	last := keys[len(keys)-1]

	if array {
		var list []map[string]any
		switch v := parent[last].(type) {
		case nil:
		case []map[string]any:
			list = v
		default:
			return errorAt(pos, "key %q is not an array of tables", last)
		}
		tbl := make(map[string]any)
		parent[last] = append(list, tbl)
		p.scope = tbl
		// sub-tables of the previous element may be declared again for this one
		prefix := strings.Join(keys, ".") + "."
		for path := range p.tables {
			if strings.HasPrefix(path, prefix) {
				delete(p.tables, path)
			}
		}
		return nil
	}

	path := strings.Join(keys, ".")
	if p.tables[path] {
		return errorAt(pos, "table [%s] defined twice", path)
	}
	p.tables[path] = true
	tbl, err := descend(parent, last, pos)
	if err != nil {
		return err
	}
	p.scope = tbl
	return nil
}

// descend returns the table under k, creating it, or the last element of an array of tables
func descend(m map[string]any, k string, pos Pos) (map[string]any, error) {
	switch v := m[k].(type) {
	case nil:
		child := make(map[string]any)
		m[k] = child
		return child, nil
	case map[string]any:
		return v, nil
	case []map[string]any:
		if len(v) == 0 {
			return nil, errorAt(pos, "empty array of tables %q", k)
		}
		return v[len(v)-1], nil
	}
	return nil, errorAt(pos, "key %q is not a table", k)
}

func (p *Parser) keyValue(scope map[string]any) error {
	pos := p.cur.Pos
	keys, err := p.key()
	if err != nil {
		return err
	}
	if p.cur.Type != TokenEqual {
		return errorAt(p.cur.Pos, "expected = after key, got %s", p.cur)
	}
	p.next()
	val, err := p.value()
	if err != nil {
		return err
	}

	for _, k := range keys[:len(keys)-1] {
		if scope, err = descend(scope, k, pos); err != nil {
			return err
		}
	}
	last := keys[len(keys)-1]
	if _, dup := scope[last]; dup {
		return errorAt(pos, "duplicate key %q", last)
	}
	scope[last] = val
	return nil
}

// key reads a dotted key; bare numbers and booleans are valid key parts
func (p *Parser) key() ([]string, error) {
	var keys []string
	for {
		switch p.cur.Type {
		case TokenIdent, TokenString, TokenInteger, TokenBool:
			keys = append(keys, p.cur.Literal)
		case TokenFloat:
			// 1.2 = x lexes as a float; it is two key parts
			keys = append(keys, strings.Split(p.cur.Literal, ".")...)
		default:
			return nil, errorAt(p.cur.Pos, "expected key, got %s", p.cur)
		}
		p.next()
		if p.cur.Type != TokenDot {
			return keys, nil
		}
		p.next()
	}
}

func (p *Parser) value() (any, error) {
	tok := p.cur
	switch tok.Type {
	case TokenString:
		p.next()
		return tok.Literal, nil
	case TokenBool:
		p.next()
		return tok.Literal == "true", nil
	case TokenInteger:
		p.next()
		return parseInt(tok)
	case TokenFloat:
		p.next()
		return parseFloat(tok)
	case TokenLBracket:
		return p.array()
	case TokenLBrace:
		return p.inlineTable()
	case TokenError:
		return nil, errorAt(tok.Pos, "%s", tok.Literal)
	}
	return nil, errorAt(tok.Pos, "unexpected value %s", tok)
}

func parseInt(tok Token) (any, error) {
	lit := strings.ReplaceAll(tok.Literal, "_", "")
	digits := strings.TrimLeft(lit, "+-")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		base = 0
	}
	n, err := strconv.ParseInt(lit, base, 64)
	if err != nil {
		return nil, errorAt(tok.Pos, "invalid integer %q", tok.Literal)
	}
	return int(n), nil
}

func parseFloat(tok Token) (any, error) {
	lit := strings.ReplaceAll(tok.Literal, "_", "")
	switch strings.TrimLeft(lit, "+") {
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "-nan":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, errorAt(tok.Pos, "invalid float %q", tok.Literal)
	}
	return f, nil
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == TokenNewline {
		p.next()
	}
}

func (p *Parser) array() ([]any, error) {
	p.next()
	arr := make([]any, 0)
	for {
		p.skipNewlines()
		if p.cur.Type == TokenRBracket {
			p.next()
			return arr, nil
		}
		val, err := p.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
		p.skipNewlines()
		switch p.cur.Type {
		case TokenComma:
			p.next()
		case TokenRBracket:
		default:
			return nil, errorAt(p.cur.Pos, "expected , or ] in array, got %s", p.cur)
		}
	}
}

func (p *Parser) inlineTable() (map[string]any, error) {
	p.next()
	m := make(map[string]any)
	if p.cur.Type == TokenRBrace {
		p.next()
		return m, nil
	}
	for {
		if err := p.keyValue(m); err != nil {
			return nil, err
		}
		switch p.cur.Type {
		case TokenComma:
			p.next()
		case TokenRBrace:
			p.next()
			return m, nil
		default:
			return nil, errorAt(p.cur.Pos, "expected , or } in inline table, got %s", p.cur)
		}
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
