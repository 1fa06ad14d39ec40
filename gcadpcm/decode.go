package gcadpcm

// Decode replays encoded frames through the same feedback rule the encoder
// simulates. The output history after any frame matches the history the
// encoder carried into the next one.
func Decode(data []byte) []int16 {
	var frameCount = len(data) / FrameBytes
	var result = make([]int16, 0, frameCount*FrameSamples)

	var state history

	for frameIndex := 0; frameIndex < frameCount; frameIndex = frameIndex + 1 {
		var frame = data[frameIndex*FrameBytes : (frameIndex+1)*FrameBytes]

		var coef = int(frame[0]>>4) & 7
		var scaleFactor = int32(1) << (frame[0] & 0xf)
		var c1 = CoefTable[coef][0]
		var c2 = CoefTable[coef][1]

		for i := 0; i < FrameSamples; i = i + 1 {
			var nibble int32
			if i%2 == 0 {
				nibble = int32(frame[1+i/2] >> 4)
			} else {
				nibble = int32(frame[1+i/2] & 0xf)
			}
			if nibble > nibbleMax {
				nibble = nibble - 16
			}

			var decoded = decodeSample(nibble, scaleFactor, c1, c2, state)
			result = append(result, int16(decoded))

			state.h2 = state.h1
			state.h1 = decoded
		}
	}

	return result
}
