package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var valuesPath string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a YAML value mapping into a hex bitstream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := readValuesFile(valuesPath)
			if err != nil {
				return err
			}

			data, err := a.codec.Encode(values)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			a.log.Info().
				Str("message", a.codec.Name()).
				Int("bits", a.codec.BitLength()).
				Int("bytes", len(data)).
				Msg("encoded")

			fmt.Println(hex.EncodeToString(data))

			return nil
		},
	}

	cmd.Flags().StringVar(&valuesPath, "values", "-", "YAML value file (- for stdin)")

	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	var bits int

	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a hex bitstream into a YAML value mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hex.DecodeString(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("decode hex: %w", err)
			}

			d, err := decodeStream(a, data, bits)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			if d.Trailing > 0 {
				// Transport padding is expected; anything longer is
				// worth a look but not a failure.
				a.log.Warn().
					Int("bits", d.Trailing).
					Msg("trailing data beyond message layout")
			}

			return writeValues(os.Stdout, a.codec, d.Values)
		},
	}

	cmd.Flags().IntVar(&bits, "bits", 0, "exact bit length of the stream (default: all bits)")

	return cmd
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the message layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%s: %d bits\n\n", a.codec.Name(), a.codec.BitLength())

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tBITS\tKIND\tREQUIRED\tUNAVAILABLE\tRANGE\tUNITS")

			for _, fl := range a.codec.Fields() {
				f := fl.Field

				required := "-"
				if f.Required != nil {
					required = fmt.Sprint(*f.Required)
				}

				unavailable := "-"
				if f.Unavailable != nil {
					unavailable = fmt.Sprint(*f.Unavailable)
				}

				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
					fl.Name, f.Bits, f.Kind,
					required, unavailable,
					rangeString(f), f.Units,
				)
			}

			return w.Flush()
		},
	}
}
