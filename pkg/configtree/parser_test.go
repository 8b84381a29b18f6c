package configtree

import (
	"errors"
	"testing"
)

func TestLexer(t *testing.T) {
	input := `system {
    host-name router1
}
`
	lex := newLexer(input)
	expected := []struct {
		typ tokenType
		val string
	}{
		{tokenIdentifier, "system"},
		{tokenLBrace, "{"},
		{tokenNewline, ""},
		{tokenIdentifier, "host-name"},
		{tokenIdentifier, "router1"},
		{tokenNewline, ""},
		{tokenRBrace, "}"},
		{tokenNewline, ""},
		{tokenEOF, ""},
	}

	for i, exp := range expected {
		tok := lex.next()
		if tok.Type != exp.typ {
			t.Errorf("token %d: expected type %s, got %s (value=%q)", i, exp.typ, tok.Type, tok.Value)
		}
		if exp.val != "" && tok.Value != exp.val {
			t.Errorf("token %d: expected value %q, got %q", i, exp.val, tok.Value)
		}
	}
}

func TestLexerComments(t *testing.T) {
	input := `# leading comment
system {
    /* block comment */
    host-name router1
}
`
	tree, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := tree.ReturnValue([]string{"system", "host-name"})
	if err != nil {
		t.Fatalf("return value: %v", err)
	}
	if v != "router1" {
		t.Errorf("expected router1, got %q", v)
	}
}

func TestLexerQuotedString(t *testing.T) {
	lex := newLexer(`description "core router \"east\" \\ wing"`)
	tok := lex.next()
	if tok.Type != tokenIdentifier || tok.Value != "description" {
		t.Fatalf("expected identifier, got %s", tok)
	}
	tok = lex.next()
	if tok.Type != tokenString {
		t.Fatalf("expected string, got %s", tok)
	}
	want := `core router "east" \ wing`
	if tok.Value != want {
		t.Errorf("expected %q, got %q", want, tok.Value)
	}
}

func TestParseHierarchical(t *testing.T) {
	input := `system {
    host-name router1
    login {
        user admin {
            level admin
        }
    }
}
`
	tree, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !tree.Exists([]string{"system", "login", "user", "admin", "level"}) {
		t.Error("nested path missing")
	}
	v, err := tree.ReturnValue([]string{"system", "login", "user", "admin", "level"})
	if err != nil || v != "admin" {
		t.Errorf("level = %q, err %v", v, err)
	}
}

func TestParseMultiValue(t *testing.T) {
	input := `system {
    name-server 10.0.0.1
    name-server 10.0.0.2
    name-server 10.0.0.3
}
`
	tree, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	values, err := tree.ReturnValues([]string{"system", "name-server"})
	if err != nil {
		t.Fatalf("return values: %v", err)
	}
	want := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}
	if !stringsEqual(values, want) {
		t.Errorf("expected %v, got %v", want, values)
	}
}

func TestParseTagNodes(t *testing.T) {
	input := `interfaces {
    ethernet eth0 {
        address 192.168.1.1/24
    }
    ethernet eth1 {
        disable
    }
}
`
	tree, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !tree.IsTag([]string{"interfaces", "ethernet", "eth0"}) {
		t.Error("eth0 should sit under a tag parent")
	}
	names, err := tree.ListNodes([]string{"interfaces", "ethernet"})
	if err != nil {
		t.Fatalf("list nodes: %v", err)
	}
	if !stringsEqual(names, []string{"eth0", "eth1"}) {
		t.Errorf("expected [eth0 eth1], got %v", names)
	}
	if !tree.Exists([]string{"interfaces", "ethernet", "eth1", "disable"}) {
		t.Error("valueless leaf under tag instance missing")
	}
}

func TestParseVersionBanner(t *testing.T) {
	input := `system {
    host-name router1
}
// vyos-config-version: "system@21:interfaces@26"
// release version: 1.4
`
	tree, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	wantVersion := "// vyos-config-version: \"system@21:interfaces@26\"\n// release version: 1.4\n"
	if tree.Version() != wantVersion {
		t.Errorf("version = %q, want %q", tree.Version(), wantVersion)
	}
	if !tree.Exists([]string{"system", "host-name"}) {
		t.Error("structural section not parsed")
	}
}

func TestParseLeadingVersionBanner(t *testing.T) {
	input := `// vyos-config-version: "system@21"
system {
    host-name router1
}
`
	tree, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !tree.Exists([]string{"system", "host-name"}) {
		t.Error("structural section not parsed")
	}
	if want := "// vyos-config-version: \"system@21\"\n"; tree.Version() != want {
		t.Errorf("version = %q, want %q", tree.Version(), want)
	}
}

func TestParseInteriorLineComment(t *testing.T) {
	input := "system {\n// note\n    host-name router1\n}\n"
	tree, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := tree.ReturnValue([]string{"system", "host-name"})
	if err != nil || v != "router1" {
		t.Errorf("host-name = %q, err %v", v, err)
	}
	if tree.Version() != "" {
		t.Errorf("interior comment captured as banner: %q", tree.Version())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated quote", "description \"oops\n"},
		{"unmatched open brace", "system {\n    host-name r1\n"},
		{"stray close brace", "}\n"},
		{"duplicate node", "system {\n}\nsystem {\n}\n"},
		{"duplicate tag instance", "ethernet eth0 {\n}\nethernet eth0 {\n}\n"},
		{"too many words before brace", "a b c {\n}\n"},
		{"tag name reuses container", "a {\n}\na b {\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected parse error")
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
			}
			if serr.Line == 0 {
				t.Errorf("error carries no position: %v", serr)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	input := `interfaces {
    ethernet eth0 {
        address 192.168.1.1/24
        address 192.168.2.1/24
        description "uplink to core"
    }
    ethernet eth1 {
        disable
    }
}
system {
    host-name router1
    name-server 10.0.0.1
    name-server 10.0.0.2
}
// vyos-config-version: "system@21"
`
	tree, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := tree.ToText(true)
	if out != input {
		t.Errorf("round trip mismatch:\n--- in ---\n%s--- out ---\n%s", input, out)
	}

	again, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !tree.Equal(again) {
		t.Error("reparsed tree differs structurally")
	}
}

func TestRoundTripMutationBuilt(t *testing.T) {
	tree := New()
	mustSet(t, tree, []string{"service", "dns", "forwarding", "listen-address"}, "127.0.0.1", false)
	mustSet(t, tree, []string{"service", "dns", "forwarding", "listen-address"}, "::1", false)
	mustSet(t, tree, []string{"service", "ssh", "port"}, "22", true)
	if err := tree.SetValueless([]string{"service", "ssh", "disable-host-validation"}); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetValueless([]string{"interfaces", "ethernet", "eth0"}); err != nil {
		t.Fatal(err)
	}
	if err := tree.SetTag([]string{"interfaces", "ethernet"}); err != nil {
		t.Fatal(err)
	}
	mustSet(t, tree, []string{"interfaces", "ethernet", "eth0", "address"}, "10.1.1.1/24", true)

	again, err := Parse(tree.ToText(true))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !tree.Equal(again) {
		t.Errorf("round trip mismatch:\n%s\nvs\n%s", tree.ToText(true), again.ToText(true))
	}
	if !again.IsTag([]string{"interfaces", "ethernet", "eth0"}) {
		t.Error("tag flag lost in round trip")
	}
}

func TestTagInstanceValuesRoundTrip(t *testing.T) {
	tree := New()
	mustSet(t, tree, []string{"eth", "e0"}, "v", false)
	if err := tree.SetTag([]string{"eth"}); err != nil {
		t.Fatal(err)
	}
	if got, want := tree.ToText(true), "eth e0 {\n}\neth e0 v\n"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}

	mustSet(t, tree, []string{"eth", "e0"}, "w", false)
	mustSet(t, tree, []string{"eth", "e0", "mtu"}, "9000", true)

	again, err := Parse(tree.ToText(true))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !tree.Equal(again) {
		t.Errorf("round trip mismatch:\n%s\nvs\n%s", tree.ToText(true), again.ToText(true))
	}
	got, err := again.ReturnValues([]string{"eth", "e0"})
	if err != nil {
		t.Fatal(err)
	}
	if !stringsEqual(got, []string{"v", "w"}) {
		t.Errorf("instance values = %v", got)
	}
}

func TestQuotedValueRoundTrip(t *testing.T) {
	values := []string{
		`plain`,
		`has spaces`,
		`embedded "quotes" here`,
		`back\slash`,
		`trailing backslash \`,
		`tab	and
newline`,
		``,
	}
	tree := New()
	for _, v := range values {
		mustSet(t, tree, []string{"test", "value"}, v, false)
	}

	again, err := Parse(tree.ToText(true))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	got, err := again.ReturnValues([]string{"test", "value"})
	if err != nil {
		t.Fatal(err)
	}
	if !stringsEqual(got, values) {
		t.Errorf("values mangled in round trip:\nwant %q\ngot  %q", values, got)
	}
}

func TestEscapeBackslash(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`no backslash`, `no backslash`},
		{`a\zb`, `a\\zb`},
		{`a\nb`, `a\nb`},
		{`a\\b`, `a\\b`},
		{`trailing\`, `trailing\\`},
		{`quote\"q`, `quote\"q`},
	}
	for _, tt := range tests {
		if got := EscapeBackslash(tt.in); got != tt.want {
			t.Errorf("EscapeBackslash(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing", "a {\n}\n// v1\n// v2\n", "// v1\n// v2\n"},
		{"leading", "// v1\na {\n}\n", "// v1\n"},
		{"leading and trailing", "// v1\na {\n}\n// v2\n", "// v1\n// v2\n"},
		{"banner only", "// only banner\n", "// only banner\n"},
		{"interior comment is not a banner", "a {\n// note\n}\n", ""},
		{"no banner", "a {\n}\n", ""},
	}
	for _, tt := range tests {
		if got := ExtractVersion(tt.in); got != tt.want {
			t.Errorf("%s: ExtractVersion(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func mustSet(t *testing.T, tree *Tree, path []string, value string, replace bool) {
	t.Helper()
	if err := tree.Set(path, value, replace); err != nil {
		t.Fatalf("set %v: %v", path, err)
	}
}
