package configtree

import (
	"strings"
	"testing"
)

func TestToText(t *testing.T) {
	tree := New()
	mustSet(t, tree, []string{"system", "host-name"}, "router1", true)
	mustSet(t, tree, []string{"system", "name-server"}, "10.0.0.2", false)
	mustSet(t, tree, []string{"system", "name-server"}, "10.0.0.1", false)

	want := `system {
    host-name router1
    name-server 10.0.0.2
    name-server 10.0.0.1
}
`
	if got := tree.ToText(true); got != want {
		t.Errorf("ordered output:\n%s\nwant:\n%s", got, want)
	}

	// Sorted mode reorders multi-value nodes for deterministic diffs.
	wantSorted := `system {
    host-name router1
    name-server 10.0.0.1
    name-server 10.0.0.2
}
`
	if got := tree.ToText(false); got != wantSorted {
		t.Errorf("sorted output:\n%s\nwant:\n%s", got, wantSorted)
	}
}

func TestToTextQuoting(t *testing.T) {
	tree := New()
	mustSet(t, tree, []string{"interfaces", "ethernet", "eth0", "description"}, "WAN uplink (primary)", true)

	out := tree.ToText(true)
	if !strings.Contains(out, `description "WAN uplink (primary)"`) {
		t.Errorf("value not quoted:\n%s", out)
	}
}

func TestToTextValuelessLeaf(t *testing.T) {
	tree := New()
	if err := tree.SetValueless([]string{"service", "ssh"}); err != nil {
		t.Fatal(err)
	}
	want := "service {\n    ssh\n}\n"
	if got := tree.ToText(true); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestToCommands(t *testing.T) {
	input := `interfaces {
    ethernet eth0 {
        address 192.168.1.1/24
    }
    ethernet eth1 {
        disable
    }
}
system {
    host-name router1
}
`
	tree, err := Parse(input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := "set interfaces ethernet eth0 address '192.168.1.1/24'\n" +
		"set interfaces ethernet eth1 disable\n" +
		"set system host-name 'router1'\n"
	if got := tree.ToCommands("set"); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	wantDel := "delete interfaces ethernet eth0 address '192.168.1.1/24'\n" +
		"delete interfaces ethernet eth1 disable\n" +
		"delete system host-name 'router1'\n"
	if got := tree.ToCommands("delete"); got != wantDel {
		t.Errorf("got:\n%s\nwant:\n%s", got, wantDel)
	}
}

func TestToJSON(t *testing.T) {
	tree := New()
	mustSet(t, tree, []string{"system", "host-name"}, "router1", true)
	mustSet(t, tree, []string{"system", "name-server"}, "10.0.0.1", false)
	mustSet(t, tree, []string{"system", "name-server"}, "10.0.0.2", false)
	if err := tree.SetValueless([]string{"service", "ssh"}); err != nil {
		t.Fatal(err)
	}

	got, err := tree.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"service":{"ssh":{}},"system":{"host-name":"router1","name-server":["10.0.0.1","10.0.0.2"]}}`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestToJSONAst(t *testing.T) {
	tree := New()
	mustSet(t, tree, []string{"interfaces", "ethernet", "eth0", "address"}, "10.0.0.1/24", true)
	if err := tree.SetTag([]string{"interfaces", "ethernet"}); err != nil {
		t.Fatal(err)
	}

	got, err := tree.ToJSONAst()
	if err != nil {
		t.Fatal(err)
	}
	// The AST form retains what plain JSON discards: the tag flag.
	if !strings.Contains(got, `"name":"ethernet","tag":true`) {
		t.Errorf("tag flag missing from AST: %s", got)
	}
	if !strings.Contains(got, `"values":["10.0.0.1/24"]`) {
		t.Errorf("values missing from AST: %s", got)
	}

	plain, err := tree.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain, "tag") {
		t.Errorf("plain JSON should not carry tag markers: %s", plain)
	}
}
