package lyn

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// Beats holds the raw beat-marker bytes harvested from a reference SNS,
// spanning the cue chunk up to (not including) the data chunk.
type Beats struct {
	Bytes []byte
	Count int32
}

// HarvestBeats copies the beat byte range out of a reference SNS. The cue
// chunk's beat count is surfaced for reporting only; the bytes are spliced
// verbatim into later containers.
func HarvestBeats(reference []byte) (*Beats, error) {
	var cuePos = bytes.Index(reference, []byte("cue "))

	if cuePos < 0 || cuePos+12 > len(reference) {
		return nil, errors.New("reference has no cue chunk")
	}

	var chunkSize = binary.LittleEndian.Uint32(reference[cuePos+4:])
	var count = int32(binary.LittleEndian.Uint32(reference[cuePos+8:]))

	var searchFrom = cuePos + 8 + int(chunkSize)

	if searchFrom < 0 || searchFrom > len(reference) {
		return nil, errors.New("cue chunk overruns the reference")
	}

	var dataOffset = bytes.Index(reference[searchFrom:], []byte("data"))

	if dataOffset < 0 {
		return nil, errors.New("reference has no data chunk after cue")
	}

	var dataPos = searchFrom + dataOffset

	return &Beats{
		Bytes: append([]byte(nil), reference[cuePos:dataPos]...),
		Count: count,
	}, nil
}
