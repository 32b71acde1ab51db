package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/typedjson"
	"github.com/unkn0wn-root/typedjson/codec"
	"github.com/unkn0wn-root/typedjson/internal/wire"
	"github.com/unkn0wn-root/typedjson/store"
)

var errDiffer = errors.New("values differ")

func (a *app) convertCmd() *cobra.Command {
	var from, to, out, indent string
	var frame bool
	cmd := &cobra.Command{
		Use:   "convert <in|->",
		Short: "Re-encode a document in another carrier format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := lookupFormat(from, "")
			if err != nil {
				return err
			}
			dst, err := lookupFormat(to, indent)
			if err != nil {
				return err
			}
			b, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			v, used, err := decodeAny(b, src)
			if err != nil {
				return err
			}
			enc, err := typedjson.New(typedjson.Options{Format: dst}).Encode(v)
			if err != nil {
				return err
			}
			if frame {
				enc = wire.Encode(dst.Name(), enc)
			}
			a.log.Debug("typedjson.cli.converted", typedjson.Fields{
				"from":  used.Name(),
				"to":    dst.Name(),
				"in":    len(b),
				"out":   len(enc),
				"frame": frame,
			})
			return writeOutput(cmd, out, enc)
		},
	}
	cmd.Flags().StringVar(&from, "from", "json", "input format when the input is not framed")
	cmd.Flags().StringVar(&to, "to", "json", "output format")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&indent, "indent", "", "indent for JSON output")
	cmd.Flags().BoolVar(&frame, "frame", false, "wrap the output in a store frame")
	return cmd
}

func (a *app) fmtCmd() *cobra.Command {
	var indent string
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt <file|->",
		Short: "Re-indent typed JSON text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			v, err := typedjson.Unmarshal(b)
			if err != nil {
				return err
			}
			enc, err := typedjson.MarshalIndent(v, indent)
			if err != nil {
				return err
			}
			enc = append(enc, '\n')
			a.log.Debug("typedjson.cli.formatted", typedjson.Fields{"in": len(b), "out": len(enc)})
			if write && args[0] != "-" {
				return writeOutput(cmd, args[0], enc)
			}
			return writeOutput(cmd, "", enc)
		},
	}
	cmd.Flags().StringVar(&indent, "indent", "  ", "indent string; empty for compact output")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place")
	return cmd
}

func (a *app) fingerprintCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "fingerprint <file|->...",
		Short: "Print the canonical BLAKE2b-256 fingerprint of each document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := lookupFormat(from, "")
			if err != nil {
				return err
			}
			for _, path := range args {
				b, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				v, _, err := decodeAny(b, f)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				sum, err := typedjson.Fingerprint(v)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hex.EncodeToString(sum[:]), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "json", "input format when the input is not framed")
	return cmd
}

func (a *app) equalCmd() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "equal <a> <b>",
		Short: "Exit non-zero unless both documents hold the same value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := lookupFormat(from, "")
			if err != nil {
				return err
			}
			vs := make([]any, 2)
			for i, path := range args {
				b, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				if vs[i], _, err = decodeAny(b, f); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			if !typedjson.Equal(vs[0], vs[1]) {
				return errDiffer
			}
			fmt.Fprintln(cmd.OutOrStdout(), "equal")
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "json", "input format when the input is not framed")
	return cmd
}

func (a *app) attrsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attrs <file>",
		Short: "List the attributes of a saved snapshot with their kinds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bag, err := store.LoadBagFile(args[0])
			if err != nil {
				return err
			}
			a.log.Debug("typedjson.cli.attrs", typedjson.Fields{"count": bag.Len()})
			for _, at := range bag.Attributes() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", at.Name, typedjson.KindOf(at.Value))
			}
			return nil
		},
	}
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the carrier formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, n := range codec.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
		},
	}
}
