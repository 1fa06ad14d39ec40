package gcadpcm

// Interleave multiplexes per-channel frame streams at 8-byte granularity:
// block b of channel 0, block b of channel 1, and so on. Shorter streams are
// padded with zero bytes, not zero-valued frames, up to the longest stream.
func Interleave(channels [][]byte) []byte {
	var maxLen = 0
	for _, channel := range channels {
		if len(channel) > maxLen {
			maxLen = len(channel)
		}
	}

	var result = make([]byte, 0, maxLen*len(channels))

	for offset := 0; offset < maxLen; offset += FrameBytes {
		for _, channel := range channels {
			var block [FrameBytes]byte

			if offset < len(channel) {
				var end = offset + FrameBytes
				if end > len(channel) {
					end = len(channel)
				}
				copy(block[:], channel[offset:end])
			}

			result = append(result, block[:]...)
		}
	}

	return result
}
