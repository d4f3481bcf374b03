package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/medialib/gallerybot/internal/domain"
)

// ErrNotJPEG signals that the file does not start with a JPEG SOI marker.
// It unwraps to domain.ErrUnsupportedFormat so callers can separate "not a
// JPEG at all" from a probe failure inside a real JPEG.
var ErrNotJPEG = fmt.Errorf("%w: missing JPEG signature", domain.ErrUnsupportedFormat)

// JPEG markers relevant to the entropy-coding probe.
const (
	markerSOI = 0xD8
	markerEOI = 0xD9
	markerSOS = 0xDA
	markerDAC = 0xCC // define arithmetic conditioning
)

// ProbeArithmeticJPEG reports whether a JPEG file uses arithmetic entropy
// coding, the non-default variant most decoders cannot handle. It walks the
// marker segments up to the first scan. Malformed segment lengths surface as
// errors; callers resolve those conservatively as "uses the variant".
func ProbeArithmeticJPEG(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var magic [2]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return false, fmt.Errorf("read SOI: %w", err)
	}
	if magic[0] != 0xFF || magic[1] != markerSOI {
		return false, ErrNotJPEG
	}

	for {
		marker, err := nextMarker(f)
		if err != nil {
			return false, err
		}

		switch {
		case isArithmeticSOF(marker) || marker == markerDAC:
			return true, nil
		case isHuffmanSOF(marker):
			return false, nil
		case marker == markerSOS, marker == markerEOI:
			// No frame header seen before the scan; nothing more to learn.
			return false, nil
		}

		if err := skipSegment(f); err != nil {
			return false, err
		}
	}
}

// nextMarker consumes fill bytes and returns the next marker code.
func nextMarker(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("read marker: %w", err)
	}
	if b[0] != 0xFF {
		return 0, fmt.Errorf("expected marker prefix, got 0x%02X", b[0])
	}
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, fmt.Errorf("read marker: %w", err)
		}
		if b[0] != 0xFF { // 0xFF fill bytes may precede the marker code
			return b[0], nil
		}
	}
}

// skipSegment skips over a marker segment's length-prefixed payload.
// Standalone markers (RST, TEM) carry no payload.
func skipSegment(f *os.File) error {
	var lenBuf [2]byte
	if _, err := io.ReadFull(f, lenBuf[:]); err != nil {
		return fmt.Errorf("read segment length: %w", err)
	}
	segLen := binary.BigEndian.Uint16(lenBuf[:])
	if segLen < 2 {
		return fmt.Errorf("segment length %d out of range", segLen)
	}
	if _, err := f.Seek(int64(segLen)-2, io.SeekCurrent); err != nil {
		return fmt.Errorf("skip segment: %w", err)
	}
	return nil
}

// isArithmeticSOF matches SOF9..SOF11 and the differential SOF13..SOF15,
// the arithmetic coding frame headers.
func isArithmeticSOF(marker byte) bool {
	return (marker >= 0xC9 && marker <= 0xCB) || (marker >= 0xCD && marker <= 0xCF)
}

// isHuffmanSOF matches SOF0..SOF7 frame headers except DHT (0xC4).
func isHuffmanSOF(marker byte) bool {
	return marker >= 0xC0 && marker <= 0xC7 && marker != 0xC4
}
