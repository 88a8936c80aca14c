package jpegcodec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var errNoFrame = errors.New("no JPEG frame header before scan data")

// FrameInfo is what the first SOF segment of a JPEG stream says about it.
type FrameInfo struct {
	Marker      byte
	Progressive bool
	Width       int
	Height      int
}

// ReadFrameInfo walks JPEG segments up to the first start-of-frame marker.
// Pixel data is never read.
func ReadFrameInfo(r io.Reader) (FrameInfo, error) {
	br := bufio.NewReader(r)

	soi := make([]byte, 2)
	if _, err := io.ReadFull(br, soi); err != nil {
		return FrameInfo{}, fmt.Errorf("read SOI: %w", err)
	}
	if soi[0] != 0xff || soi[1] != 0xd8 {
		return FrameInfo{}, errors.New("invalid JPEG SOI")
	}

	for {
		markerPrefix, err := br.ReadByte()
		if err != nil {
			return FrameInfo{}, err
		}
		for markerPrefix != 0xff {
			markerPrefix, err = br.ReadByte()
			if err != nil {
				return FrameInfo{}, err
			}
		}

		marker, err := br.ReadByte()
		if err != nil {
			return FrameInfo{}, err
		}
		for marker == 0xff {
			marker, err = br.ReadByte()
			if err != nil {
				return FrameInfo{}, err
			}
		}

		switch {
		case marker == 0xd9, marker == 0xda: // EOI, SOS
			return FrameInfo{}, errNoFrame
		case marker == 0x01, marker >= 0xd0 && marker <= 0xd7: // TEM, RSTn
			continue
		}

		lenBuf := make([]byte, 2)
		if _, err := io.ReadFull(br, lenBuf); err != nil {
			return FrameInfo{}, err
		}
		segLen := int(binary.BigEndian.Uint16(lenBuf))
		if segLen < 2 {
			return FrameInfo{}, errors.New("invalid JPEG segment length")
		}
		payloadLen := segLen - 2

		if isSOF(marker) {
			payload := make([]byte, payloadLen)
			if _, err := io.ReadFull(br, payload); err != nil {
				return FrameInfo{}, err
			}
			if len(payload) < 5 {
				return FrameInfo{}, errors.New("short JPEG frame header")
			}
			return FrameInfo{
				Marker:      marker,
				Progressive: isProgressiveSOF(marker),
				Height:      int(binary.BigEndian.Uint16(payload[1:3])),
				Width:       int(binary.BigEndian.Uint16(payload[3:5])),
			}, nil
		}

		if _, err := br.Discard(payloadLen); err != nil {
			return FrameInfo{}, err
		}
	}
}

// SOF0..SOF15 minus DHT (c4), JPG (c8) and DAC (cc).
func isSOF(marker byte) bool {
	if marker < 0xc0 || marker > 0xcf {
		return false
	}
	return marker != 0xc4 && marker != 0xc8 && marker != 0xcc
}

func isProgressiveSOF(marker byte) bool {
	switch marker {
	case 0xc2, 0xc6, 0xca, 0xce:
		return true
	default:
		return false
	}
}
