package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"textchunk/chunker"
	"textchunk/internal/app"
	"textchunk/internal/config"
)

var (
	flagSize     int
	flagOverlap  float64
	flagCounter  string
	flagEncoding string
	flagJSON     bool
	flagNoMemo   bool
)

var rootCmd = &cobra.Command{
	Use:   "chunkctl [files...]",
	Short: "Split text into token-budgeted chunks",
	Long: `chunkctl splits text into chunks that fit a token budget, cutting at the
most meaningful boundary available: paragraphs first, then lines, whitespace
runs, sentence and clause punctuation, words, and finally single characters.

It reads the named files, or stdin when none are given. Configuration comes
from flags, falling back to CHUNK_SIZE, CHUNK_OVERLAP, COUNTER,
TIKTOKEN_ENCODING, CACHE_SIZE and LOG_LEVEL environment variables.

Examples:
  # Chunk a document into 512-token pieces with the cl100k_base tokenizer
  chunkctl report.txt

  # 100-word chunks with 20% overlap, one JSON object per chunk
  chunkctl --counter words --size 100 --overlap 0.2 --json notes.md

  # Chunk stdin
  cat README.md | chunkctl --size 256`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	rootCmd.Flags().IntVarP(&flagSize, "size", "s", 0, "Chunk size in tokens (default $CHUNK_SIZE or 512)")
	rootCmd.Flags().Float64Var(&flagOverlap, "overlap", 0, "Overlap between chunks: fraction below 1 or absolute tokens")
	rootCmd.Flags().StringVar(&flagCounter, "counter", "", "Counter: tiktoken, words, runes or estimate")
	rootCmd.Flags().StringVar(&flagEncoding, "encoding", "", "Tiktoken encoding name")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "Emit one JSON object per chunk, with offsets and token count")
	rootCmd.Flags().BoolVar(&flagNoMemo, "no-memoize", false, "Disable token count caching")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	deps, err := app.Build(func(cfg *config.Config) {
		if cmd.Flags().Changed("size") {
			cfg.ChunkSize = flagSize
		}
		if cmd.Flags().Changed("overlap") {
			cfg.Overlap = flagOverlap
		}
		if flagCounter != "" {
			cfg.Counter = flagCounter
		}
		if flagEncoding != "" {
			cfg.Encoding = flagEncoding
		}
	})
	if err != nil {
		return err
	}

	ck, err := chunker.NewFromCounter(deps.Counter, deps.Config.ChunkSize, chunker.Options{
		Overlap:   deps.Config.Overlap,
		NoMemoize: flagNoMemo,
		CacheSize: deps.Config.CacheSize,
	})
	if err != nil {
		return err
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		chunks, err := ck.Chunk(in.text)
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		deps.Log.Debug("chunked input", "input", in.name, "chunks", len(chunks))
		if err := emit(os.Stdout, deps, in.name, chunks); err != nil {
			return err
		}
	}
	return nil
}

type input struct {
	name string
	text string
}

func readInputs(args []string) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []input{{name: "stdin", text: string(data)}}, nil
	}
	inputs := make([]input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		inputs = append(inputs, input{name: path, text: string(data)})
	}
	return inputs, nil
}

// chunkRecord is the JSON output shape for one chunk.
type chunkRecord struct {
	Input  string `json:"input"`
	Index  int    `json:"index"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Tokens int    `json:"tokens"`
	Text   string `json:"text"`
}

func emit(w io.Writer, deps app.Deps, name string, chunks []chunker.Chunk) error {
	if flagJSON {
		enc := json.NewEncoder(w)
		for i, c := range chunks {
			rec := chunkRecord{
				Input:  name,
				Index:  i,
				Start:  c.Start,
				End:    c.End,
				Tokens: deps.Counter.Count(c.Text),
				Text:   c.Text,
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	}
	for i, c := range chunks {
		if i > 0 {
			if _, err := fmt.Fprintln(w, "---"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, c.Text); err != nil {
			return err
		}
	}
	return nil
}
