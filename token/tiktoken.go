package token

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// contextSizes maps shipped encodings to a conservative context window,
// used as the chunk-size fallback when the caller provides none.
var contextSizes = map[string]int{
	"cl100k_base": 8192,
	"o200k_base":  128000,
	"p50k_base":   4096,
	"r50k_base":   2048,
}

// Tiktoken counts tokens with a real BPE encoding.
type Tiktoken struct {
	enc  *tiktoken.Tiktoken
	name string
	ctx  int
}

// NewTiktoken builds a counter for a named encoding such as "cl100k_base".
func NewTiktoken(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("token: get encoding %q: %w", encoding, err)
	}
	return &Tiktoken{enc: enc, name: "tiktoken/" + encoding, ctx: contextSizes[encoding]}, nil
}

// NewTiktokenForModel builds a counter for a model name such as "gpt-4o".
func NewTiktokenForModel(model string) (*Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("token: encoding for model %q: %w", model, err)
	}
	return &Tiktoken{enc: enc, name: "tiktoken/" + model}, nil
}

func (t *Tiktoken) Name() string { return t.name }

func (t *Tiktoken) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

// ContextSize reports the encoding's context window when known, else 0.
func (t *Tiktoken) ContextSize() int { return t.ctx }
