package block

import "testing"

func TestLeafEnd(t *testing.T) {
	l := Leaf{Path: "header", Offset: 10, Length: 26}
	if got := l.End(); got != 36 {
		t.Errorf("Leaf.End() = %d, want 36", got)
	}
}

func TestContainerEnd(t *testing.T) {
	c := Container{Path: "layers", Offset: 100, Length: 50}
	if got := c.End(); got != 150 {
		t.Errorf("Container.End() = %d, want 150", got)
	}
}

func TestPathPush(t *testing.T) {
	p := Path{}.Push("header").Push("version")
	if got, want := p.String(), "header.version"; got != want {
		t.Errorf("Path.String() = %q, want %q", got, want)
	}
}

func TestPathPushIsImmutable(t *testing.T) {
	base := Path{}.Push("layers")
	a := base.Push("alpha")
	b := base.Push("beta")
	if got, want := a.String(), "layers.alpha"; got != want {
		t.Errorf("a.String() = %q, want %q", got, want)
	}
	if got, want := b.String(), "layers.beta"; got != want {
		t.Errorf("b.String() = %q, want %q", got, want)
	}
	if got, want := base.String(), "layers"; got != want {
		t.Errorf("base.String() should be unaffected by children, got %q, want %q", got, want)
	}
}

func TestPathIndexed(t *testing.T) {
	p := Path{}.Push("layers").Indexed("layer", 3)
	if got, want := p.String(), "layers.layer_3"; got != want {
		t.Errorf("Path.Indexed = %q, want %q", got, want)
	}
}

func TestPathStringEmpty(t *testing.T) {
	if got := (Path{}).String(); got != "" {
		t.Errorf("empty Path.String() = %q, want \"\"", got)
	}
}
