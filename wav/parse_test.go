package wav

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildWav(t *testing.T, channels int, sampleRate uint32, bitsPerSample int, samples []int16) []byte {
	t.Helper()

	var data bytes.Buffer
	for _, sample := range samples {
		binary.Write(&data, binary.LittleEndian, sample)
	}

	var blockAlign = channels * bitsPerSample / 8

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(36+data.Len()))
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	binary.Write(&out, binary.LittleEndian, uint32(16))
	binary.Write(&out, binary.LittleEndian, uint16(1))
	binary.Write(&out, binary.LittleEndian, uint16(channels))
	binary.Write(&out, binary.LittleEndian, sampleRate)
	binary.Write(&out, binary.LittleEndian, sampleRate*uint32(blockAlign))
	binary.Write(&out, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&out, binary.LittleEndian, uint16(bitsPerSample))

	out.WriteString("data")
	binary.Write(&out, binary.LittleEndian, uint32(data.Len()))
	out.Write(data.Bytes())

	return out.Bytes()
}

func TestParseMono(t *testing.T) {
	var samples = []int16{0, 100, -100, 32767, -32768, 7}
	var raw = buildWav(t, 1, 32000, 16, samples)

	wave, err := Parse(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, uint32(32000), wave.SampleRate)
	require.Len(t, wave.Channels, 1)
	assert.Equal(t, samples, wave.Channels[0])
	assert.Equal(t, len(samples), wave.FrameCount())
}

func TestParseStereoDeinterleaves(t *testing.T) {
	var interleaved = []int16{1, -1, 2, -2, 3, -3, 4, -4}
	var raw = buildWav(t, 2, 44100, 16, interleaved)

	wave, err := Parse(bytes.NewReader(raw))
	require.NoError(t, err)

	require.Len(t, wave.Channels, 2)
	assert.Equal(t, []int16{1, 2, 3, 4}, wave.Channels[0])
	assert.Equal(t, []int16{-1, -2, -3, -4}, wave.Channels[1])
	assert.Equal(t, 4, wave.FrameCount())
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("JUNKJUNKJUNKJUNKJUNKJUNK")))
	assert.Error(t, err)
}

func TestParseRejectsWrongBitDepth(t *testing.T) {
	var raw = buildWav(t, 1, 32000, 16, []int16{1, 2, 3, 4})

	// Patch bits per sample to 8.
	raw[34] = 8
	raw[32] = 1 // block align follows suit

	_, err := Parse(bytes.NewReader(raw))
	assert.Error(t, err)
}

func TestParseRejectsEmptyData(t *testing.T) {
	var raw = buildWav(t, 1, 32000, 16, nil)

	_, err := Parse(bytes.NewReader(raw))
	assert.Error(t, err)
}
