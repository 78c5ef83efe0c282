package fontinfo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// A layer expression is the older way of listing layers in the default
// section:
//
//	layers = [Layer(color=body, effects=[outline, shadow], blend=blendmultiply, opacity=0.5),
//	          Layer(color=glow, mask=None)]
//
// Expressions are tokenized and matched against this grammar only; they are
// never evaluated.

var errSyntax = errors.New("syntax error")

// layerExpr is one Layer(...) call.
type layerExpr struct {
	pos  scanner.Position
	args []kwarg
}

type kwarg struct {
	key string
	val exprValue
}

// exprValue is a name, number or string, or a bracketed list of names.
type exprValue struct {
	text   string
	list   []string
	isList bool
}

func (v exprValue) String() string {
	if v.isList {
		return "[" + strings.Join(v.list, ", ") + "]"
	}
	return v.text
}

// isLayerExpr reports whether a layers value uses the expression syntax.
func isLayerExpr(s string) bool {
	return strings.Contains(s, "(")
}

type exprParser struct {
	s   scanner.Scanner
	tok rune
	err error
}

func newExprParser(src string) *exprParser {
	p := &exprParser{}
	p.s.Init(strings.NewReader(src))
	p.s.Filename = "layers"
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.fail(s.Pos(), "%s", msg)
	}
	p.next()
	return p
}

func (p *exprParser) next() { p.tok = p.s.Scan() }

func (p *exprParser) fail(pos scanner.Position, format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf("%w at column %d: %s", errSyntax, pos.Column, fmt.Sprintf(format, args...))
	}
}

func (p *exprParser) expect(tok rune) bool {
	if p.tok != tok {
		p.fail(p.s.Position, "expected %s, found %q", scanner.TokenString(tok), p.s.TokenText())
		return false
	}
	p.next()
	return true
}

// parseLayerExprs parses a comma separated list of Layer(...) calls,
// optionally wrapped in square brackets or parentheses.
func parseLayerExprs(src string) ([]layerExpr, error) {
	p := newExprParser(src)
	closer := rune(scanner.EOF)
	switch p.tok {
	case '[':
		closer = ']'
		p.next()
	case '(':
		closer = ')'
		p.next()
	}

	var out []layerExpr
	for p.err == nil && p.tok != closer && p.tok != scanner.EOF {
		if e, ok := p.layer(); ok {
			out = append(out, e)
		}
		if p.tok == ',' {
			p.next()
		} else {
			break
		}
	}
	if closer != scanner.EOF {
		p.expect(closer)
	}
	if p.err == nil && p.tok != scanner.EOF {
		p.fail(p.s.Position, "unexpected %q after layer list", p.s.TokenText())
	}
	if p.err != nil {
		return nil, p.err
	}
	return out, nil
}

func (p *exprParser) layer() (layerExpr, bool) {
	e := layerExpr{pos: p.s.Position}
	if p.tok != scanner.Ident || p.s.TokenText() != "Layer" {
		p.fail(p.s.Position, "expected Layer(...), found %q", p.s.TokenText())
		return e, false
	}
	p.next()
	if !p.expect('(') {
		return e, false
	}
	seen := make(map[string]bool)
	for p.err == nil && p.tok != ')' {
		if p.tok != scanner.Ident {
			p.fail(p.s.Position, "expected argument name, found %q", p.s.TokenText())
			return e, false
		}
		key := strings.ToLower(p.s.TokenText())
		if seen[key] {
			p.fail(p.s.Position, "duplicate argument %q", key)
			return e, false
		}
		seen[key] = true
		p.next()
		if !p.expect('=') {
			return e, false
		}
		val, ok := p.value()
		if !ok {
			return e, false
		}
		e.args = append(e.args, kwarg{key: key, val: val})
		if p.tok != ',' {
			break
		}
		p.next()
	}
	return e, p.expect(')')
}

func (p *exprParser) value() (exprValue, bool) {
	switch p.tok {
	case scanner.Ident, scanner.Int, scanner.Float:
		v := exprValue{text: p.s.TokenText()}
		p.next()
		return v, true
	case '-':
		p.next()
		if p.tok != scanner.Int && p.tok != scanner.Float {
			p.fail(p.s.Position, "expected number after '-'")
			return exprValue{}, false
		}
		v := exprValue{text: "-" + p.s.TokenText()}
		p.next()
		return v, true
	case scanner.String:
		s, err := strconv.Unquote(p.s.TokenText())
		if err != nil {
			p.fail(p.s.Position, "bad string %s", p.s.TokenText())
			return exprValue{}, false
		}
		p.next()
		return exprValue{text: s}, true
	case '\'':
		// single quoted name
		p.next()
		if p.tok != scanner.Ident {
			p.fail(p.s.Position, "expected name in quotes")
			return exprValue{}, false
		}
		v := exprValue{text: p.s.TokenText()}
		p.next()
		return v, p.expect('\'')
	case '[':
		p.next()
		v := exprValue{isList: true}
		for p.err == nil && p.tok != ']' {
			if p.tok != scanner.Ident {
				p.fail(p.s.Position, "expected name in list, found %q", p.s.TokenText())
				return exprValue{}, false
			}
			v.list = append(v.list, p.s.TokenText())
			p.next()
			if p.tok != ',' {
				break
			}
			p.next()
		}
		return v, p.expect(']')
	}
	p.fail(p.s.Position, "unexpected %q", p.s.TokenText())
	return exprValue{}, false
}
