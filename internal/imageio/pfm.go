package imageio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Portable float map: an ASCII header ("PF" for RGB, "Pf" for gray, then
// width, height and a scale whose sign gives the byte order) followed by raw
// float32 scanlines stored bottom row first.

const maxPFMDimension = 1 << 16

func decodePFM(r io.Reader) (Spec, []float32, error) {
	br := bufio.NewReader(r)
	spec, order, err := readPFMHeader(br)
	if err != nil {
		return Spec{}, nil, err
	}
	width, height, channels := spec.Width, spec.Height, spec.Channels

	// Grow with the data actually read; header dimensions are not trusted
	// for allocation.
	row := width * channels
	raw := make([]byte, row*4)
	var pixels []float32
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(br, raw); err != nil {
			return Spec{}, nil, fmt.Errorf("reading float map scanline %d of %d: %w", y, height, err)
		}
		for i := 0; i < row; i++ {
			pixels = append(pixels, math.Float32frombits(order.Uint32(raw[i*4:])))
		}
	}

	// Scanlines are stored bottom row first.
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pixels[top*row : (top+1)*row]
		b := pixels[bottom*row : (bottom+1)*row]
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
	return spec, pixels, nil
}

// readPFMHeader parses the header and leaves br at the first pixel byte.
func readPFMHeader(br *bufio.Reader) (Spec, binary.ByteOrder, error) {
	magic, err := pfmToken(br)
	if err != nil {
		return Spec{}, nil, err
	}
	var channels int
	switch magic {
	case "PF":
		channels = 3
	case "Pf":
		channels = 1
	default:
		return Spec{}, nil, fmt.Errorf("%w: bad float map magic %q", ErrUnsupportedFormat, magic)
	}

	width, err := pfmInt(br)
	if err != nil {
		return Spec{}, nil, err
	}
	height, err := pfmInt(br)
	if err != nil {
		return Spec{}, nil, err
	}
	scaleTok, err := pfmToken(br)
	if err != nil {
		return Spec{}, nil, err
	}
	scale, err := strconv.ParseFloat(scaleTok, 64)
	if err != nil || scale == 0 {
		return Spec{}, nil, fmt.Errorf("invalid float map scale %q", scaleTok)
	}
	if width > maxPFMDimension || height > maxPFMDimension {
		return Spec{}, nil, fmt.Errorf("%w: float map too large (%dx%d)", ErrInvalidSpec, width, height)
	}

	spec := Spec{Width: width, Height: height, Channels: channels, Format: Float32}
	if err := spec.Validate(); err != nil {
		return Spec{}, nil, err
	}

	var order binary.ByteOrder = binary.BigEndian
	if scale < 0 {
		order = binary.LittleEndian
	}
	return spec, order, nil
}

// encodePFM writes a little-endian float map. Images with alpha are written
// as RGB.
func encodePFM(w io.Writer, spec Spec, pixels []float32) error {
	magic, outChannels := "PF", 3
	if spec.Channels == 1 {
		magic, outChannels = "Pf", 1
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n-1.0\n", magic, spec.Width, spec.Height); err != nil {
		return err
	}

	row := spec.Width * spec.Channels
	raw := make([]byte, spec.Width*outChannels*4)
	for y := spec.Height - 1; y >= 0; y-- {
		src := pixels[y*row : (y+1)*row]
		o := 0
		for x := 0; x < spec.Width; x++ {
			for c := 0; c < outChannels; c++ {
				binary.LittleEndian.PutUint32(raw[o:], math.Float32bits(src[x*spec.Channels+c]))
				o += 4
			}
		}
		if _, err := bw.Write(raw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// pfmToken reads one whitespace-delimited header token. The single whitespace
// byte after the scale token is consumed, so the reader is left at the first
// byte of pixel data.
func pfmToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(tok) > 0 {
				return string(tok), nil
			}
			return "", fmt.Errorf("reading float map header: %w", err)
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if len(tok) > 0 {
				return string(tok), nil
			}
			continue
		}
		tok = append(tok, b)
	}
}

func pfmInt(br *bufio.Reader) (int, error) {
	tok, err := pfmToken(br)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid float map dimension %q", tok)
	}
	return v, nil
}
