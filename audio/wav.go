package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ErrNotWAV is returned when the stream is not a RIFF/WAVE file.
var ErrNotWAV = errors.New("not a WAVE file")

// WAVHeader holds the parsed RIFF/WAV header fields.
type WAVHeader struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	BitsPerSample uint16
	DataSize      uint32
}

// NumFrames returns the number of sample frames in the data chunk.
func (h WAVHeader) NumFrames() int {
	frame := int(h.NumChannels) * int(h.BitsPerSample) / 8
	if frame == 0 {
		return 0
	}
	return int(h.DataSize) / frame
}

// Duration returns the length of the recording.
func (h WAVHeader) Duration() time.Duration {
	if h.SampleRate == 0 {
		return 0
	}
	return time.Duration(h.NumFrames()) * time.Second / time.Duration(h.SampleRate)
}

// ReadHeader reads the fmt and data chunk headers. Samples are not decoded;
// the reader is left positioned at the start of the sample data.
func ReadHeader(r io.ReadSeeker) (WAVHeader, error) {
	var header WAVHeader

	var riff struct {
		ID   [4]byte
		Size uint32
		Wave [4]byte
	}
	if err := binary.Read(r, binary.LittleEndian, &riff); err != nil {
		return header, fmt.Errorf("%w: read RIFF header: %v", ErrNotWAV, err)
	}
	if string(riff.ID[:]) != "RIFF" || string(riff.Wave[:]) != "WAVE" {
		return header, ErrNotWAV
	}

	var fmtFound bool
	for {
		var chunkID [4]byte
		if err := binary.Read(r, binary.LittleEndian, &chunkID); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return header, fmt.Errorf("read chunk ID: %w", err)
		}

		var chunkSize uint32
		if err := binary.Read(r, binary.LittleEndian, &chunkSize); err != nil {
			return header, fmt.Errorf("read chunk size: %w", err)
		}

		switch string(chunkID[:]) {
		case "fmt ":
			if err := readFmtChunk(r, chunkSize, &header); err != nil {
				return header, err
			}
			fmtFound = true

		case "data":
			if !fmtFound {
				return header, errors.New("data chunk before fmt chunk")
			}
			header.DataSize = chunkSize
			return header, nil

		default:
			// chunks are padded to an even size
			skip := int64(chunkSize)
			if chunkSize%2 != 0 {
				skip++
			}
			if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
				return header, fmt.Errorf("skip chunk %q: %w", chunkID, err)
			}
		}
	}

	if !fmtFound {
		return header, errors.New("missing fmt chunk")
	}
	return header, errors.New("missing data chunk")
}

// ReadHeaderFile opens path and reads its header.
func ReadHeaderFile(path string) (WAVHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return WAVHeader{}, err
	}
	defer f.Close()

	h, err := ReadHeader(f)
	if err != nil {
		return h, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

func readFmtChunk(r io.ReadSeeker, size uint32, h *WAVHeader) error {
	if size < 16 {
		return fmt.Errorf("fmt chunk too short (%d bytes)", size)
	}

	var body struct {
		AudioFormat   uint16
		NumChannels   uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &body); err != nil {
		return fmt.Errorf("read fmt chunk: %w", err)
	}
	if body.NumChannels == 0 {
		return errors.New("fmt chunk declares zero channels")
	}
	h.AudioFormat = body.AudioFormat
	h.NumChannels = body.NumChannels
	h.SampleRate = body.SampleRate
	h.BitsPerSample = body.BitsPerSample

	// extension bytes of WAVE_FORMAT_EXTENSIBLE and friends
	extra := int64(size) - 16
	if size%2 != 0 {
		extra++
	}
	if extra > 0 {
		if _, err := r.Seek(extra, io.SeekCurrent); err != nil {
			return fmt.Errorf("skip extra fmt bytes: %w", err)
		}
	}
	return nil
}
