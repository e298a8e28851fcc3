// Package processor reads, converts and writes geometry files.
package processor

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// StdinSource is the input name that reads standard input.
const StdinSource = "-"

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ReadSource loads the bytes of a file path, an http(s) URL or stdin.
func ReadSource(client *http.Client, source string, stdin io.Reader) ([]byte, error) {
	switch {
	case source == StdinSource:
		if stdin == nil {
			stdin = os.Stdin
		}
		return io.ReadAll(stdin)

	case isURL(source):
		if client == nil {
			client = http.DefaultClient
		}
		log.Debug().Str("url", source).Msg("Downloading source")
		resp, err := client.Get(source)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("download failed: %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)

	default:
		return os.ReadFile(source)
	}
}

// sourceName is the base name of a source without its extension.
func sourceName(source string) string {
	name := source
	switch {
	case source == StdinSource:
		return "stdin"
	case isURL(source):
		if u, err := url.Parse(source); err == nil {
			name = path.Base(u.Path)
		}
	default:
		name = filepath.Base(source)
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == "/" {
		return "geometry"
	}
	return name
}
