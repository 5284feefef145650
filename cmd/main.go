// Command vizhener brute-forces a Vigenère-encrypted Russian text: every
// long enough word of the corpus is tried as the key and the decodings are
// ranked by how many of their words are in the corpus.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"vizhener/internal/cipher"
	"vizhener/internal/config"
	"vizhener/internal/cracker"
	"vizhener/internal/customdict"
	"vizhener/internal/dictionary"
	"vizhener/internal/i18n"
	"vizhener/internal/logging"
	"vizhener/pkg/options"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "vizhener [ciphertext]",
		Short: "Brute-force a Vigenère cipher over the Russian alphabet with a word list",
		Long: `vizhener tries every corpus word longer than --min-key-length as a key,
decodes the ciphertext with it and ranks the results by the number of
decoded words found in the corpus. Without an argument or --text the
ciphertext is read from the first line of standard input.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, cfgFile)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Text = args[0]
			}
			return run(cmd.Context(), cfg, in, out)
		},
	}
	cmd.Version = version
	cmd.SetIn(in)
	cmd.SetOut(out)

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./vizhener.yaml)")
	pf.String("lang", "ru", `report language ("ru", "en")`)
	pf.Bool("debug", false, "enable debug logging")

	f := cmd.Flags()
	f.String("dictionary", "russian.txt", "word list, one word per line")
	f.String("text", "", "ciphertext; prompts on stdin when empty")
	f.Int("top", 10, "number of best candidates to print")
	f.Int("workers", 1, "parallel workers; 0 means one per CPU")
	f.Int("min-key-length", dictionary.DefaultMinKeyLength, "only words longer than this are tried as keys")
	f.Int("progress-every", 10_000, "print progress every N keys; 0 disables it")
	f.String("redis-addr", "", "Redis address of the custom dictionary; empty disables it")
	f.String("redis-password", "", "Redis password")
	f.Int("redis-db", 0, "Redis database")
	f.String("redis-key", customdict.DefaultKey, "Redis set holding custom words")

	cmd.AddCommand(newShiftCmd("encode", "Encrypt text with a known key", &cfgFile, in, out))
	cmd.AddCommand(newShiftCmd("decode", "Decrypt text with a known key", &cfgFile, in, out))
	return cmd
}

// newShiftCmd builds the encode/decode helpers around cipher.Engine.
func newShiftCmd(name, short string, cfgFile *string, in io.Reader, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " --key KEY [text]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(cmd, *cfgFile); err != nil {
				return err
			}
			key, _ := cmd.Flags().GetString("key")
			a := cipher.MustAlphabet(cipher.Russian)
			norm := cipher.NewNormalizer(a)
			if norm.Letters(key) == "" {
				return fmt.Errorf("key %q has no Russian letters", key)
			}

			var raw string
			if len(args) == 1 {
				raw = args[0]
			} else {
				line, err := readLine(in)
				if err != nil {
					return err
				}
				raw = line
			}

			text := norm.Normalize(strings.TrimSpace(raw))
			if text == "" {
				fmt.Fprintln(out, i18n.T("empty_text", nil))
				return nil
			}
			e := cipher.NewEngine(a)
			if name == "encode" {
				fmt.Fprintln(out, e.Encode(text, key))
			} else {
				fmt.Fprintln(out, e.Decode(text, key))
			}
			return nil
		},
	}
	cmd.Flags().String("key", "", "cipher key")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func setup(cmd *cobra.Command, cfgFile string) (config.Config, error) {
	cfg, err := config.Load(cmd, cfgFile)
	if err != nil {
		return cfg, err
	}
	logging.SetDebug(cfg.Debug)
	i18n.Init(cfg.Lang)
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	a := cipher.MustAlphabet(cipher.Russian)
	norm := cipher.NewNormalizer(a)

	lines, err := dictionary.LoadFile(cfg.Dictionary)
	if err != nil {
		logging.Errorf("load dictionary: %v", err)
		return err
	}
	corpus := dictionary.Build(lines, norm, cfg.MinKeyLength)
	index := corpus.Index
	logging.Debugf("%s", i18n.T("corpus_loaded", map[string]any{
		"Words": len(corpus.Words), "Unique": index.Len(), "Keys": len(corpus.Candidates),
	}))

	if cfg.Redis.Addr != "" {
		index = withCustomWords(ctx, cfg, index, norm)
	}

	raw := cfg.Text
	if raw == "" {
		fmt.Fprint(out, i18n.T("prompt", nil))
		if raw, err = readLine(in); err != nil {
			logging.Errorf("read ciphertext: %v", err)
			return err
		}
	}

	cr := cracker.New(cipher.NewEngine(a), index,
		options.WithTopK(cfg.Top),
		options.WithWorkers(cfg.Workers),
		options.WithProgressEvery(cfg.ProgressEvery),
		options.WithProgress(progressPrinter(out)),
	)
	logging.Debugf("ranking %d keys with %d workers", len(corpus.Candidates), cr.Config().Workers)

	rep, err := cr.Crack(ctx, raw, corpus.Candidates)
	if errors.Is(err, cracker.ErrEmptyCiphertext) {
		fmt.Fprintln(out, i18n.T("empty_text", nil))
		return nil
	}
	if err != nil {
		return err
	}
	writeReport(out, rep, cr.Config().TopK)
	fmt.Fprintln(out, i18n.T("elapsed", map[string]any{"Millis": rep.Elapsed.Milliseconds()}))
	return nil
}

// withCustomWords extends index with the Redis set. Redis being down is not
// fatal: the run continues with the corpus alone.
func withCustomWords(ctx context.Context, cfg config.Config, index *dictionary.Index, norm *cipher.Normalizer) *dictionary.Index {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	words, err := dictionary.LoadCustom(ctx, customdict.New(client, cfg.Redis.Key), norm)
	if err != nil {
		logging.Warnf("custom dictionary unavailable: %v", err)
		return index
	}
	logging.Debugf("custom dictionary: %d words", len(words))
	return index.With(words)
}

// readLine returns the first line of r without the line break. EOF is not
// an error: an empty answer is reported as empty ciphertext later.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
