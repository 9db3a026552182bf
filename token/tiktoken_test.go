package token

import "testing"

func TestTiktokenCount(t *testing.T) {
	c, err := NewTiktoken("cl100k_base")
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}
	if got := c.Count("hello world"); got < 1 {
		t.Errorf("expected a positive token count, got %d", got)
	}
	if c.Count("") != 0 {
		t.Error("expected 0 tokens for empty text")
	}
	if c.Name() != "tiktoken/cl100k_base" {
		t.Errorf("unexpected name %q", c.Name())
	}
	if c.ContextSize() != 8192 {
		t.Errorf("expected cl100k_base context hint 8192, got %d", c.ContextSize())
	}
}

func TestTiktokenUnknownEncoding(t *testing.T) {
	if _, err := NewTiktoken("no-such-encoding"); err == nil {
		t.Error("expected an error for an unknown encoding")
	}
}
