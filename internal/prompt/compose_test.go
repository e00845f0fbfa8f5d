package prompt

import "testing"

func TestComposeNoModifiers(t *testing.T) {
	if got := Compose("Hello", NewSet()); got != "Hello" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestComposeShort(t *testing.T) {
	got := Compose("Hello", NewSet(Short))
	if got != "Hello short answer." {
		t.Errorf("short suffix mismatch: %q", got)
	}
}

func TestComposeInfographicPrefix(t *testing.T) {
	got := Compose("Hello", NewSet(Infographic))
	want := prefixInfographic + "Hello"
	if got != want {
		t.Errorf("infographic prefix must immediately precede the input, got %q", got)
	}
}

func TestComposeFixedSuffixOrder(t *testing.T) {
	got := Compose("Hello", NewSet(CodeBlock, Jobs, Interactive, Short, Infographic))
	want := prefixInfographic + "Hello" + suffixShort + suffixInteractive + suffixJobs + suffixCodeBlock
	if got != want {
		t.Errorf("suffix order must be fixed regardless of selection order:\ngot  %q\nwant %q", got, want)
	}
}

func TestComposeUnknownModifierIsNoOp(t *testing.T) {
	if got := Compose("Hello", NewSet(Modifier("bogus"))); got != "Hello" {
		t.Errorf("unknown modifier must not change output, got %q", got)
	}
}

func TestToggle(t *testing.T) {
	s := NewSet()

	if !s.Toggle(Short) {
		t.Error("first toggle should enable")
	}
	if s.Toggle(Short) {
		t.Error("second toggle should disable")
	}
	if s.Has(Short) {
		t.Error("set should not contain a toggled-off modifier")
	}
}
