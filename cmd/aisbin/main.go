// Command aisbin encodes and decodes AIS binary application messages
// against a field-layout schema. The whale detection notice is built
// in; other layouts load from an XML schema file.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ecmurnane/noaadata/codec"
	"github.com/ecmurnane/noaadata/schema"
	"github.com/ecmurnane/noaadata/whale"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "aisbin: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	log   zerolog.Logger
	codec *codec.Codec

	configPath string
	schemaPath string
	message    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "aisbin",
		Short:         "Encode and decode AIS binary application messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	addGlobalFlags(root.PersistentFlags(), a)

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newInfoCmd(a),
	)

	return root
}

func addGlobalFlags(fs *pflag.FlagSet, a *app) {
	fs.StringVar(&a.configPath, "config", "", "TOML config file")
	fs.StringVar(&a.schemaPath, "schema", "", "XML schema file (default: built-in whale notice)")
	fs.StringVar(&a.message, "message", "", "message struct name within the schema file")
	fs.StringVar(&a.logLevel, "level", "", "log level (trace, debug, info, warn, error)")
}

func (a *app) init() error {
	cfg := defaultConfig()

	if a.configPath != "" {
		loaded, err := loadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags win over the config file.
	if a.schemaPath == "" {
		a.schemaPath = cfg.Schema
	}
	if a.message == "" {
		a.message = cfg.Message
	}
	if a.logLevel == "" {
		a.logLevel = cfg.LogLevel
	}

	level, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	a.codec, err = a.buildCodec()
	if err != nil {
		a.log.Error().Err(err).Msg("building codec")

		return err
	}

	a.log.Debug().
		Str("message", a.codec.Name()).
		Int("bits", a.codec.BitLength()).
		Msg("codec ready")

	return nil
}

func (a *app) buildCodec() (*codec.Codec, error) {
	if a.schemaPath == "" {
		return whale.New()
	}

	structs, err := schema.LoadFile(a.schemaPath)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	if a.message == "" {
		return nil, fmt.Errorf("--message is required with --schema (schema declares %d structs)", len(structs))
	}

	st, ok := structs[a.message]
	if !ok {
		return nil, fmt.Errorf("schema %s declares no struct %q", a.schemaPath, a.message)
	}

	return codec.New(st)
}
