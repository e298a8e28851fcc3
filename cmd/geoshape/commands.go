package main

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/woozymasta/geoshape/internal/codec"
	"github.com/woozymasta/geoshape/internal/geo"
	"github.com/woozymasta/geoshape/internal/processor"

	"github.com/rs/zerolog/log"
	"github.com/twpayne/go-geom"
)

// EncodeFlags are the output options shared by commands printing a geometry.
type EncodeFlags struct {
	Format string `short:"f" long:"format" env:"OUTPUT_FORMAT" description:"Output format (geojson, yaml, bson, wkt, wkb, wkbhex, ewkb, svg, webp)"`
	Out    string `short:"o" long:"out"    description:"Output file or directory. Writes to stdout if empty"`
	SRID   int    `long:"srid"             description:"SRID stamped into EWKB output"`
	Indent int    `long:"indent"           description:"GeoJSON indentation"`
}

type convertCommand struct {
	EncodeFlags

	InFormat    string `short:"i" long:"in-format"   description:"Input format, detected when empty"`
	Concurrency int    `short:"p" long:"concurrency" env:"CONCURRENCY" description:"Concurrency"`
	Force       bool   `long:"force"                 description:"Force overwrite of existing files"`

	Args struct {
		Inputs []string `positional-arg-name:"input" description:"Input path, URL or - for stdin"`
	} `positional-args:"yes"`
}

func (c *convertCommand) Execute(_ []string) error {
	format, err := outputFormat(c.Format)
	if err != nil {
		return err
	}
	encOpts, err := encoderOptions(c.SRID, c.Indent)
	if err != nil {
		return err
	}

	var in codec.Format
	if c.InFormat != "" {
		if in, err = codec.ParseFormat(c.InFormat); err != nil {
			return err
		}
	}

	inputs := c.Args.Inputs
	if len(inputs) == 0 {
		inputs = []string{processor.StdinSource}
	}

	toDir := c.Out != "" && (len(inputs) > 1 || filepath.Ext(c.Out) == "" || isDir(c.Out))
	jobs := make([]processor.Job, len(inputs))
	for i, input := range inputs {
		jobs[i] = processor.Job{Input: input, InputFormat: in}
		switch {
		case toDir:
			jobs[i].Output = processor.OutputPath(c.Out, input, format)
		case c.Out != "":
			jobs[i].Output = c.Out
		}
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}

	log.Info().
		Int("inputs", len(jobs)).
		Str("format", format.String()).
		Int("concurrency", concurrency).
		Msg("Starting conversion")

	results := processor.ProcessBatch(newClient(), jobs, concurrency, processor.Options{
		Codec:  encOpts,
		Format: format,
		Force:  c.Force,
	})

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		if r.Data != nil {
			if _, err := os.Stdout.Write(r.Data); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(results))
	}
	return nil
}

type boxCommand struct {
	EncodeFlags

	MinX float64 `long:"minx" required:"true" description:"Minimum x"`
	MinY float64 `long:"miny" required:"true" description:"Minimum y"`
	MaxX float64 `long:"maxx" required:"true" description:"Maximum x"`
	MaxY float64 `long:"maxy" required:"true" description:"Maximum y"`
	CW   bool    `long:"cw"                   description:"Clockwise winding"`
	CCW  bool    `long:"ccw"                  description:"Counter-clockwise winding"`
}

func (c *boxCommand) Execute(_ []string) error {
	ccw := cfg.Box.CCW
	switch {
	case c.CW && c.CCW:
		return fmt.Errorf("--cw and --ccw are mutually exclusive")
	case c.CW:
		ccw = false
	case c.CCW:
		ccw = true
	}
	return emit(geo.Box(c.MinX, c.MinY, c.MaxX, c.MaxY, ccw), c.EncodeFlags)
}

type emptyCommand struct {
	EncodeFlags

	Args struct {
		Kind string `positional-arg-name:"kind" required:"yes" description:"Geometry type name"`
	} `positional-args:"yes"`
}

func (c *emptyCommand) Execute(_ []string) error {
	g, err := geo.EmptyOf(c.Args.Kind)
	if err != nil {
		return err
	}
	return emit(g, c.EncodeFlags)
}

type kindsCommand struct{}

func (c *kindsCommand) Execute(_ []string) error {
	for _, k := range geo.Kinds() {
		fmt.Println(k)
	}
	return nil
}

type formatsCommand struct{}

func (c *formatsCommand) Execute(_ []string) error {
	for _, f := range codec.Formats() {
		fmt.Printf("%-8s %-9s %s\n", f, f.Extension(), f.ContentType())
	}
	return nil
}

// emit encodes g to the flagged output file or stdout.
func emit(g geom.T, f EncodeFlags) error {
	format, err := outputFormat(f.Format)
	if err != nil {
		return err
	}
	encOpts, err := encoderOptions(f.SRID, f.Indent)
	if err != nil {
		return err
	}

	data, err := codec.Encode(g, format, encOpts)
	if err != nil {
		return err
	}
	if !format.Binary() {
		data = append(data, '\n')
	}

	if f.Out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Out), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(f.Out, data, 0644); err != nil {
		return err
	}
	log.Info().Str("path", f.Out).Str("format", format.String()).Msg("Geometry written")
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func newClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			TLSNextProto:        make(map[string]func(string, *tls.Conn) http.RoundTripper),
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
		Timeout: 15 * time.Second,
	}
}
