// Command make-witness signs a transaction id for one chain and prints the witness text.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goodnatureofminers/chainauth/internal/metrics"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"github.com/goodnatureofminers/chainauth/internal/witness"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type options struct {
	Type                   witness.Kind     `long:"type" description:"witness kind" choice:"utxo" choice:"legacy-utxo" choice:"account" required:"true"`
	GenesisBlockHash       model.HeaderHash `long:"genesis-block-hash" description:"hex hash of the genesis block of the target chain" required:"true"`
	AccountSpendingCounter *uint32          `long:"account-spending-counter" description:"spending counter of the account, required for --type account"`
	Args                   struct {
		TransactionID model.TransactionID `positional-arg-name:"TRANSACTION_ID" description:"hex transaction id" required:"true"`
		Output        string              `positional-arg-name:"OUTPUT" description:"output file, standard output if omitted"`
		Secret        string              `positional-arg-name:"SECRET" description:"secret key file, standard input if omitted"`
	} `positional-args:"yes"`
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, logger); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("make witness failed", zap.Error(err))
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger *zap.Logger) error {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "make-witness"
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	secret, err := readSecret(opts.Args.Secret, stdin)
	if err != nil {
		return err
	}
	req := witness.Request{
		Kind:          opts.Type,
		GenesisHash:   opts.GenesisBlockHash,
		TransactionID: opts.Args.TransactionID,
		SecretKey:     secret,
	}
	if opts.AccountSpendingCounter != nil {
		counter := model.SpendingCounter(*opts.AccountSpendingCounter)
		req.SpendingCounter = &counter
	}

	builder, err := witness.NewBuilder(metrics.NewWitnessBuilder(), logger)
	if err != nil {
		return err
	}
	w, err := builder.Build(req)
	if err != nil {
		return err
	}
	text, err := witness.Encode(w)
	if err != nil {
		return err
	}
	return writeOutput(opts.Args.Output, stdout, text)
}

func readSecret(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read secret key from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read secret key file: %w", err)
	}
	return string(data), nil
}

// writeOutput writes the witness only after it was built, so a failed run leaves no file.
func writeOutput(path string, stdout io.Writer, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write witness: %w", err)
	}
	return nil
}
