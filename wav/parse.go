package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

const formatPCM = 1

const readFrames = 8192

// Wave is a decoded 16-bit PCM file, de-interleaved into one sample slice
// per channel. All channel slices have equal length.
type Wave struct {
	SampleRate uint32
	Channels   [][]int16
}

// FrameCount is the number of samples per channel.
func (wave *Wave) FrameCount() int {
	if len(wave.Channels) == 0 {
		return 0
	}

	return len(wave.Channels[0])
}

// Parse decodes a RIFF/WAVE stream. Only 16-bit integer PCM is accepted;
// anything else the encoder cannot consume is rejected up front.
func Parse(reader io.ReadSeeker) (*Wave, error) {
	var decoder = gowav.NewDecoder(reader)

	if !decoder.IsValidFile() {
		return nil, errors.New("not a RIFF/WAVE file")
	}

	if decoder.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("audio format %d is not PCM", decoder.WavAudioFormat)
	}

	if decoder.BitDepth != 16 {
		return nil, fmt.Errorf("%d bits per sample, expected 16", decoder.BitDepth)
	}

	var channelCount = int(decoder.NumChans)

	if channelCount == 0 {
		return nil, errors.New("no channels")
	}

	var buffer = &audio.IntBuffer{Data: make([]int, readFrames*channelCount), Format: &audio.Format{}}
	var data []int

	for {
		n, err := decoder.PCMBuffer(buffer)

		if err != nil {
			return nil, fmt.Errorf("reading PCM data: %w", err)
		}

		if n == 0 {
			break
		}

		data = append(data, buffer.Data[:n]...)
	}

	var frameCount = len(data) / channelCount

	if frameCount == 0 {
		return nil, errors.New("no samples")
	}

	var result = Wave{SampleRate: decoder.SampleRate}

	result.Channels = make([][]int16, channelCount)
	for channel := range result.Channels {
		result.Channels[channel] = make([]int16, frameCount)
	}

	for frame := 0; frame < frameCount; frame = frame + 1 {
		for channel := 0; channel < channelCount; channel = channel + 1 {
			result.Channels[channel][frame] = int16(data[frame*channelCount+channel])
		}
	}

	return &result, nil
}

func ParseFile(filename string) (*Wave, error) {
	file, err := os.Open(filename)

	if err != nil {
		return nil, err
	}

	defer file.Close()

	return Parse(file)
}
