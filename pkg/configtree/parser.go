package configtree

import (
	"fmt"
	"strings"
)

// parser builds a config tree from lexer tokens.
type parser struct {
	lex    *lexer
	tok    token
	peeked bool
}

// Parse converts configuration text into a Tree. The full text is lexed;
// "//" line comments are skipped as structure, and the leading and trailing
// blocks of full "//" lines are captured verbatim as the version banner,
// re-appended on output. Stray backslashes are pre-escaped so quoted values
// survive a round-trip unchanged. Malformed input fails with a *SyntaxError
// citing the offending position.
func Parse(text string) (*Tree, error) {
	p := &parser{lex: newLexer(EscapeBackslash(text))}
	root := &Node{}
	if err := p.parseBody(root, true); err != nil {
		return nil, err
	}
	return &Tree{root: root, version: ExtractVersion(text)}, nil
}

// ExtractVersion returns the version banner of configuration text: the
// block of lines beginning with "//" before the first structural line,
// plus the block after the last one. Interior "//" comment lines are not
// part of the banner.
func ExtractVersion(text string) string {
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder

	i := 0
	for i < len(lines) && strings.HasPrefix(lines[i], "//") {
		b.WriteString(lines[i])
		i++
	}

	end := len(lines)
	for end > i && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	start := end
	for start > i && strings.HasPrefix(lines[start-1], "//") {
		start--
	}
	for _, line := range lines[start:end] {
		b.WriteString(line)
	}
	return b.String()
}

func (p *parser) next() token {
	if p.peeked {
		p.peeked = false
		return p.tok
	}
	return p.lex.next()
}

func (p *parser) peek() token {
	if !p.peeked {
		p.tok = p.lex.next()
		p.peeked = true
	}
	return p.tok
}

func (p *parser) skipNewlines() {
	for p.peek().Type == tokenNewline {
		p.next()
	}
}

func (p *parser) errorf(tok token, format string, args ...interface{}) error {
	return &SyntaxError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseBody parses statements into parent until the closing brace (or EOF
// when topLevel is true).
func (p *parser) parseBody(parent *Node, topLevel bool) error {
	for {
		p.skipNewlines()
		tok := p.peek()

		switch tok.Type {
		case tokenEOF:
			if !topLevel {
				return p.errorf(tok, "unexpected end of input, expected '}'")
			}
			return nil
		case tokenRBrace:
			if topLevel {
				return p.errorf(tok, "unexpected '}'")
			}
			p.next()
			return nil
		case tokenIdentifier, tokenString:
			if err := p.parseStatement(parent); err != nil {
				return err
			}
		case tokenError:
			return p.errorf(tok, "%s", tok.Value)
		default:
			return p.errorf(tok, "unexpected %s", tok)
		}
	}
}

// parseStatement parses one node statement:
//
//	name value...          leaf line; repeated names accumulate values
//	name {...}             container node
//	name instance {...}    tag node instance
func (p *parser) parseStatement(parent *Node) error {
	var words []token
	for {
		tok := p.peek()
		if tok.Type == tokenIdentifier || tok.Type == tokenString {
			words = append(words, p.next())
			continue
		}
		break
	}

	switch tok := p.peek(); tok.Type {
	case tokenLBrace:
		p.next()
		switch len(words) {
		case 1:
			child, err := p.openContainer(parent, words[0], false)
			if err != nil {
				return err
			}
			return p.parseBody(child, false)
		case 2:
			tagParent, err := p.openTagParent(parent, words[0])
			if err != nil {
				return err
			}
			instance, err := p.openContainer(tagParent, words[1], true)
			if err != nil {
				return err
			}
			return p.parseBody(instance, false)
		default:
			return p.errorf(tok, "unexpected '{' after %q", words[2].Value)
		}
	case tokenNewline, tokenEOF, tokenRBrace:
		if tok.Type == tokenNewline {
			p.next()
		}
		return p.addLeafLine(parent, words)
	case tokenError:
		return p.errorf(tok, "%s", tok.Value)
	default:
		return p.errorf(tok, "unexpected %s", tok)
	}
}

// openContainer finds or creates a child for a brace block. A node may be
// defined by value lines and one brace block under the same name (they
// merge), but two brace blocks with the same name are a duplicate.
func (p *parser) openContainer(parent *Node, nameTok token, tagInstance bool) (*Node, error) {
	if existing := parent.FindChild(nameTok.Value); existing != nil {
		if existing.braceDefined && !tagInstance {
			return nil, p.errorf(nameTok, "duplicate node name %q", nameTok.Value)
		}
		if existing.braceDefined && tagInstance {
			return nil, p.errorf(nameTok, "duplicate tag instance %q", nameTok.Value)
		}
		existing.braceDefined = true
		return existing, nil
	}
	child := &Node{Name: nameTok.Value}
	child.braceDefined = true
	parent.Children = append(parent.Children, child)
	return child, nil
}

// openTagParent finds or creates the parent node of a "name instance {"
// line and marks it as a tag parent. Repeated tag lines with the same name
// merge; a name already defined as a plain container cannot be reused.
func (p *parser) openTagParent(parent *Node, nameTok token) (*Node, error) {
	if existing := parent.FindChild(nameTok.Value); existing != nil {
		if existing.braceDefined && !existing.Tag {
			return nil, p.errorf(nameTok, "node %q is already defined as a non-tag node", nameTok.Value)
		}
		existing.Tag = true
		return existing, nil
	}
	child := &Node{Name: nameTok.Value, Tag: true}
	parent.Children = append(parent.Children, child)
	return child, nil
}

// addLeafLine records a "name value..." line. Consecutive lines with the
// same leading name accumulate as a multi-value node. When name is already
// a tag parent the line reads "parent instance value..." and the values
// belong to the instance.
func (p *parser) addLeafLine(parent *Node, words []token) error {
	if len(words) == 0 {
		return nil
	}
	name := words[0].Value
	child := parent.FindChild(name)
	if child == nil {
		child = &Node{Name: name}
		parent.Children = append(parent.Children, child)
	}
	if child.Tag && len(words) >= 2 {
		inst := child.FindChild(words[1].Value)
		if inst == nil {
			inst = &Node{Name: words[1].Value}
			child.Children = append(child.Children, inst)
		}
		for _, w := range words[2:] {
			inst.Values = append(inst.Values, w.Value)
		}
		return nil
	}
	for _, w := range words[1:] {
		child.Values = append(child.Values, w.Value)
	}
	return nil
}
