package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/typedjson"
	"github.com/unkn0wn-root/typedjson/codec"
	"github.com/unkn0wn-root/typedjson/internal/wire"
	zapadapter "github.com/unkn0wn-root/typedjson/log/zap"
)

type app struct {
	verbose bool
	log     typedjson.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: typedjson.NopLogger{}}
	root := &cobra.Command{
		Use:          "typedjson",
		Short:        "Work with typed JSON documents",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !a.verbose {
				return nil
			}
			a.log = zapadapter.ZapLogger{L: newZap(cmd.ErrOrStderr())}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log each step to stderr")

	root.AddCommand(
		a.convertCmd(),
		a.fmtCmd(),
		a.fingerprintCmd(),
		a.equalCmd(),
		a.attrsCmd(),
		formatsCmd(),
	)
	return root
}

func newZap(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.DebugLevel))
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// writeOutput writes to a file, or stdout when path is "" or "-".
func writeOutput(cmd *cobra.Command, path string, b []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// decodeAny decodes b with the frame's format when b is framed, with def
// otherwise.
func decodeAny(b []byte, def codec.Format) (any, codec.Format, error) {
	f := def
	if wire.IsFrame(b) {
		name, payload, err := wire.Decode(b)
		if err != nil {
			return nil, nil, err
		}
		if f, err = codec.Lookup(name); err != nil {
			return nil, nil, err
		}
		b = payload
	}
	v, err := typedjson.New(typedjson.Options{Format: f}).Decode(b)
	if err != nil {
		return nil, nil, err
	}
	return v, f, nil
}

func lookupFormat(name, indent string) (codec.Format, error) {
	if name == "json" {
		return codec.JSON{Indent: indent}, nil
	}
	f, err := codec.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w (known: %v)", err, codec.Names())
	}
	return f, nil
}
