package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"regexp"
)

// ErrUnknownFormat is returned by Sniff when no format matches.
var ErrUnknownFormat = errors.New("cannot detect input format")

var (
	wktPrefix = regexp.MustCompile(`(?i)^(POINT|LINESTRING|POLYGON|MULTIPOINT|MULTILINESTRING|MULTIPOLYGON|GEOMETRYCOLLECTION)\b`)
	hexOnly   = regexp.MustCompile(`^(?:[0-9A-Fa-f]{2})+$`)
)

const ewkbFlags = 0x20000000 | 0x40000000 | 0x80000000

// Sniff guesses the format of an encoded geometry.
func Sniff(data []byte) (Format, error) {
	if isBSON(data) {
		return BSON, nil
	}
	if len(data) >= 5 && (data[0] == 0 || data[0] == 1) {
		var order binary.ByteOrder = binary.BigEndian
		if data[0] == 1 {
			order = binary.LittleEndian
		}
		if order.Uint32(data[1:5])&ewkbFlags != 0 {
			return EWKB, nil
		}
		return WKB, nil
	}

	text := bytes.TrimSpace(data)
	switch {
	case len(text) == 0:
		return Unknown, ErrUnknownFormat
	case text[0] == '{':
		return GeoJSON, nil
	case wktPrefix.Match(text):
		return WKT, nil
	case hexOnly.Match(text):
		return WKBHex, nil
	case bytes.Contains(text, []byte("type:")):
		return YAML, nil
	}
	return Unknown, ErrUnknownFormat
}

// isBSON matches a document whose length prefix covers exactly data.
func isBSON(data []byte) bool {
	if len(data) < 5 || data[len(data)-1] != 0 {
		return false
	}
	return int(binary.LittleEndian.Uint32(data[:4])) == len(data)
}
