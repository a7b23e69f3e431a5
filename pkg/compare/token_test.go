package compare

import (
	"strings"
	"testing"
)

func TestTokenizeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"hello world",
		"  leading and trailing  ",
		"multiple   spaces\tand\ttabs\nand newlines",
		"no-spaces-but-punct, here!",
	}
	for _, in := range inputs {
		tokens := Tokenize(in)
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.Text)
		}
		if b.String() != in {
			t.Fatalf("round-trip failed for %q: got %q", in, b.String())
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if tokens := Tokenize(""); tokens != nil {
		t.Fatalf("expected nil for empty input, got %v", tokens)
	}
}

func TestTokenizeWhitespaceFlag(t *testing.T) {
	tokens := Tokenize("foo bar")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %+v", len(tokens), tokens)
	}
	if tokens[0].Whitespace || tokens[0].Text != "foo" {
		t.Fatalf("unexpected first token: %+v", tokens[0])
	}
	if !tokens[1].Whitespace || tokens[1].Text != " " {
		t.Fatalf("unexpected middle token: %+v", tokens[1])
	}
	if tokens[2].Whitespace || tokens[2].Text != "bar" {
		t.Fatalf("unexpected last token: %+v", tokens[2])
	}
}
