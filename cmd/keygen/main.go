// Command keygen generates secret keys and derives their public keys.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type generateCommand struct {
	Type string `long:"type" description:"key algorithm" choice:"ed25519" choice:"sumed25519_12" choice:"curve25519_2hashdh" default:"ed25519"`
	Seed string `long:"seed" description:"hex encoded 32 byte seed; random if omitted"`

	rand   io.Reader
	stdout io.Writer
}

func (c *generateCommand) Execute([]string) error {
	alg, ok := keys.AlgorithmByName(c.Type)
	if !ok {
		return fmt.Errorf("unknown key type %q", c.Type)
	}
	seed := make([]byte, keys.SeedSize)
	if c.Seed != "" {
		decoded, err := hex.DecodeString(c.Seed)
		if err != nil {
			return fmt.Errorf("decode seed: %w", err)
		}
		seed = decoded
	} else if _, err := io.ReadFull(c.rand, seed); err != nil {
		return fmt.Errorf("read random seed: %w", err)
	}

	secret, err := keys.GenerateBech32(alg, seed)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, secret)
	return err
}

type toPublicCommand struct {
	Input string `long:"input" description:"secret key file; standard input if omitted"`

	stdin  io.Reader
	stdout io.Writer
}

func (c *toPublicCommand) Execute([]string) error {
	var (
		data []byte
		err  error
	)
	if c.Input == "" {
		data, err = io.ReadAll(c.stdin)
	} else {
		data, err = os.ReadFile(c.Input)
	}
	if err != nil {
		return fmt.Errorf("read secret key: %w", err)
	}

	public, err := keys.PublicBech32(string(data))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.stdout, public)
	return err
}

func newParser(random, stdin io.Reader, stdout io.Writer) (*flags.Parser, error) {
	parser := flags.NewNamedParser("keygen", flags.Default)
	if _, err := parser.AddCommand("generate", "generate a secret key",
		"Print the bech32 secret key of the chosen algorithm.",
		&generateCommand{rand: random, stdout: stdout}); err != nil {
		return nil, err
	}
	if _, err := parser.AddCommand("to-public", "derive a public key",
		"Print the bech32 public key of a bech32 secret key of any algorithm.",
		&toPublicCommand{stdin: stdin, stdout: stdout}); err != nil {
		return nil, err
	}
	return parser, nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	parser, err := newParser(rand.Reader, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("failed to build parser", zap.Error(err))
	}
	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("keygen failed", zap.Error(err))
	}
}
