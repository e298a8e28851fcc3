package main

import (
	"os"

	"github.com/woozymasta/geoshape/internal/codec"
	"github.com/woozymasta/geoshape/internal/config"
	"github.com/woozymasta/geoshape/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
}

var (
	opts Options
	cfg  *config.Config
)

func main() {
	parser := flags.NewParser(&opts, flags.Default)

	mustAdd(parser, "convert", "Convert geometry files", "Decode each input (path, URL or - for stdin) and encode it in another format.", &convertCommand{})
	mustAdd(parser, "box", "Build a rectangle", "Build a rectangular polygon from its bounds.", &boxCommand{})
	mustAdd(parser, "empty", "Print an empty geometry", "Print the empty geometry of a kind.", &emptyCommand{})
	mustAdd(parser, "kinds", "List geometry kinds", "List the supported geometry type names.", &kindsCommand{})
	mustAdd(parser, "formats", "List formats", "List the supported encodings.", &formatsCommand{})

	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		opts.Logger.Setup()

		var err error
		if cfg, err = config.LoadOrDefault(opts.ConfigFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func mustAdd(p *flags.Parser, name, short, long string, data any) {
	if _, err := p.AddCommand(name, short, long, data); err != nil {
		log.Fatal().Err(err).Str("command", name).Msg("Failed to register command")
	}
}

// encoderOptions merges command line overrides into the configured options.
func encoderOptions(srid, indent int) (codec.Options, error) {
	o, err := codec.OptionsFromConfig(cfg)
	if err != nil {
		return codec.Options{}, err
	}
	if srid != 0 {
		o.SRID = srid
	}
	if indent != 0 {
		o.Indent = indent
	}
	return o, nil
}

// outputFormat parses name, or the configured format when name is empty.
func outputFormat(name string) (codec.Format, error) {
	if name == "" {
		name = cfg.Format
	}
	if name == "" {
		return codec.GeoJSON, nil
	}
	return codec.ParseFormat(name)
}
