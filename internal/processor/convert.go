package processor

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/woozymasta/geoshape/internal/codec"
	"github.com/woozymasta/geoshape/internal/geo"

	"github.com/rs/zerolog/log"
)

// Job describes one conversion. An empty Output keeps the result in memory,
// "-" writes it to Options.Stdout.
type Job struct {
	Input       string
	Output      string
	InputFormat codec.Format
}

// Result is the outcome of a Job.
type Result struct {
	Err     error
	Job     Job
	Data    []byte
	Input   codec.Format
	Kind    geo.Kind
	Skipped bool
}

// Options are shared by every job of a run.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Codec  codec.Options
	Format codec.Format
	Force  bool
}

// OutputPath places the converted source in dir with the extension of f.
func OutputPath(dir, source string, f codec.Format) string {
	return filepath.Join(dir, sourceName(source)+f.Extension())
}

// Convert reads, decodes, encodes and writes a single job.
func Convert(client *http.Client, j Job, opts Options) Result {
	res := Result{Job: j}

	if j.Output != "" && j.Output != StdinSource && !opts.Force {
		if _, err := os.Stat(j.Output); err == nil {
			log.Debug().Str("output", j.Output).Msg("Output exists, skipping")
			res.Skipped = true
			return res
		}
	}

	data, err := ReadSource(client, j.Input, opts.Stdin)
	if err != nil {
		res.Err = err
		return res
	}

	in := j.InputFormat
	if in == codec.Unknown {
		if in = codec.FormatFromPath(j.Input); in.OutputOnly() || in == codec.Unknown {
			if in, err = codec.Sniff(data); err != nil {
				res.Err = err
				return res
			}
		}
	}
	res.Input = in

	g, err := codec.Decode(data, in)
	if err != nil {
		res.Err = err
		return res
	}
	res.Kind = geo.KindOf(g)

	out, err := codec.Encode(g, opts.Format, opts.Codec)
	if err != nil {
		res.Err = err
		return res
	}
	if !opts.Format.Binary() && len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}

	switch j.Output {
	case "":
		res.Data = out
	case StdinSource:
		w := opts.Stdout
		if w == nil {
			w = os.Stdout
		}
		_, res.Err = w.Write(out)
	default:
		res.Err = writeFile(j.Output, out)
	}

	if res.Err == nil {
		log.Debug().
			Str("input", j.Input).
			Str("from", in.String()).
			Str("to", opts.Format.String()).
			Str("kind", res.Kind.String()).
			Msg("Geometry converted")
	}
	return res
}

// writeFile creates path and its parent directories.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	_, err = f.Write(data)
	return err
}
