package lyn

import (
	"bytes"
	"encoding/binary"
	"errors"
)

func writeChunk(out *bytes.Buffer, id string, body []byte) {
	out.WriteString(id)
	binary.Write(out, binary.LittleEndian, uint32(len(body)))
	out.Write(body)
}

func (audio *Audio) fmtChunk() []byte {
	var result bytes.Buffer

	if audio.FourChannel {
		// WAVEFORMATEXTENSIBLE shape, channels 2 and 3 mirror 0 and 1.
		binary.Write(&result, binary.LittleEndian, uint16(formatTagExtensible))
		binary.Write(&result, binary.LittleEndian, uint16(4))
		binary.Write(&result, binary.LittleEndian, audio.SampleRate)
		binary.Write(&result, binary.LittleEndian, uint32(dspByteRate))
		binary.Write(&result, binary.LittleEndian, uint16(0))
		binary.Write(&result, binary.LittleEndian, uint16(4))
		binary.Write(&result, binary.LittleEndian, uint16(0x16))
		binary.Write(&result, binary.LittleEndian, uint16(0))
		binary.Write(&result, binary.LittleEndian, uint32(0))
		result.Write(dspSubformat[:])
	} else if audio.Codec == CodecDSP {
		binary.Write(&result, binary.LittleEndian, uint16(formatTagDSP))
		binary.Write(&result, binary.LittleEndian, uint16(audio.Channels))
		binary.Write(&result, binary.LittleEndian, audio.SampleRate)
		binary.Write(&result, binary.LittleEndian, uint32(dspByteRate))
		binary.Write(&result, binary.LittleEndian, uint16(4))
		binary.Write(&result, binary.LittleEndian, uint16(4))
		binary.Write(&result, binary.LittleEndian, uint16(0))
	} else {
		binary.Write(&result, binary.LittleEndian, uint16(formatTagOGG))
		binary.Write(&result, binary.LittleEndian, uint16(audio.Channels))
		binary.Write(&result, binary.LittleEndian, audio.SampleRate)
		binary.Write(&result, binary.LittleEndian, audio.SampleRate*uint32(audio.Channels)*2)
		binary.Write(&result, binary.LittleEndian, uint16(4))
		binary.Write(&result, binary.LittleEndian, uint16(16))
		binary.Write(&result, binary.LittleEndian, uint16(0))
	}

	return result.Bytes()
}

func (audio *Audio) factChunk(format Format) []byte {
	var result bytes.Buffer

	binary.Write(&result, binary.LittleEndian, audio.NumSamples)
	result.WriteString("LyN ")

	if format == FormatSON {
		binary.Write(&result, binary.LittleEndian, uint32(4))
		binary.Write(&result, binary.LittleEndian, uint32(14))
	} else {
		binary.Write(&result, binary.LittleEndian, uint32(3))
		binary.Write(&result, binary.LittleEndian, uint32(7))
	}

	return result.Bytes()
}

func (audio *Audio) lyseChunk() []byte {
	// Streams longer than ten seconds are flagged so the engine streams
	// them instead of loading them whole.
	var flag uint32 = 0
	if audio.NumSamples > audio.SampleRate*10 {
		flag = 0x21
	}

	var result bytes.Buffer

	binary.Write(&result, binary.LittleEndian, uint32(1))
	binary.Write(&result, binary.LittleEndian, uint32(0x10))
	binary.Write(&result, binary.LittleEndian, flag)
	binary.Write(&result, binary.LittleEndian, uint32(0))

	return result.Bytes()
}

func (audio *Audio) buildRIFF(format Format, extras Extras, beats *Beats) []byte {
	var chunks bytes.Buffer

	if format == FormatSON {
		writeChunk(&chunks, "LySE", audio.lyseChunk())
	}

	writeChunk(&chunks, "fmt ", audio.fmtChunk())
	writeChunk(&chunks, "fact", audio.factChunk(format))

	if extras == ExtrasCustomBeats && beats != nil {
		// Raw harvested bytes, cue chunk header included.
		chunks.Write(beats.Bytes)
	}

	writeChunk(&chunks, "data", audio.Payload)

	var result bytes.Buffer

	result.WriteString("RIFF")
	binary.Write(&result, binary.LittleEndian, uint32(4+chunks.Len()))
	result.WriteString("WAVE")
	result.Write(chunks.Bytes())

	return result.Bytes()
}

// BuildSNS assembles the RIFF-shaped SNS container, optionally with the
// Just Dance prefix or a spliced beat chunk.
func BuildSNS(audio *Audio, extras Extras, beats *Beats) ([]byte, error) {
	if audio.FourChannel {
		return nil, errors.New("four channel output is only valid for SON")
	}

	if extras == ExtrasCustomBeats && (beats == nil || len(beats.Bytes) == 0) {
		return nil, errors.New("no harvested beats to splice")
	}

	var riff = audio.buildRIFF(FormatSNS, extras, beats)

	if extras == ExtrasJustDance {
		return append(append([]byte(nil), justDancePrefix...), riff...), nil
	}

	return riff, nil
}

// BuildSON wraps an SNS-shaped RIFF, with a leading LySE descriptor and the
// SON fact trailer, inside the outer SON box.
func BuildSON(audio *Audio) ([]byte, error) {
	if audio.FourChannel && audio.Channels != 4 {
		return nil, errors.New("four channel SON needs four payload channels")
	}

	var riff = audio.buildRIFF(FormatSON, ExtrasNone, nil)

	var sonSize = uint32(len(riff) + 8)

	var result bytes.Buffer

	binary.Write(&result, binary.LittleEndian, sonSize)
	binary.Write(&result, binary.LittleEndian, sonSize)
	binary.Write(&result, binary.LittleEndian, uint32(0))
	binary.Write(&result, binary.LittleEndian, uint32(2))
	binary.Write(&result, binary.LittleEndian, uint32(0))
	result.WriteString("SON\x00")
	binary.Write(&result, binary.LittleEndian, uint64(0))
	result.Write(riff)
	binary.Write(&result, binary.LittleEndian, uint32(0))

	return result.Bytes(), nil
}
