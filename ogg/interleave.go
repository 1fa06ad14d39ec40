package ogg

import (
	"bytes"
	"encoding/binary"
)

// InterleaveBlock is the multiplex stride for multi-channel Vorbis payloads.
const InterleaveBlock = 0x2134

// InterleaveBlocks pads every stream with zero bytes up to a block boundary
// and concatenates them round robin: block b of channel 0, block b of
// channel 1, and so on. The payload opens with the block size and the
// logical (unpadded) length of every channel.
func InterleaveBlocks(streams [][]byte) []byte {
	var blockCount = 0

	for _, stream := range streams {
		var blocks = (len(stream) + InterleaveBlock - 1) / InterleaveBlock

		if blocks > blockCount {
			blockCount = blocks
		}
	}

	var result bytes.Buffer

	binary.Write(&result, binary.LittleEndian, uint32(InterleaveBlock))

	for _, stream := range streams {
		binary.Write(&result, binary.LittleEndian, uint32(len(stream)))
	}

	for block := 0; block < blockCount; block = block + 1 {
		for _, stream := range streams {
			var chunk [InterleaveBlock]byte

			var offset = block * InterleaveBlock
			if offset < len(stream) {
				var end = offset + InterleaveBlock
				if end > len(stream) {
					end = len(stream)
				}
				copy(chunk[:], stream[offset:end])
			}

			result.Write(chunk[:])
		}
	}

	return result.Bytes()
}
