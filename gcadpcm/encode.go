package gcadpcm

func predict(c1 int32, c2 int32, state history) int32 {
	return (c1*state.h1 + c2*state.h2 + 1024) >> 11
}

func decodeSample(nibble int32, scaleFactor int32, c1 int32, c2 int32, state history) int32 {
	var result = ((nibble*scaleFactor)<<11 + 1024 + c1*state.h1 + c2*state.h2) >> 11
	return clip(result, -32768, 32767)
}

// quantize rounds residual/scaleFactor half up for positive residuals and
// toward zero for negative ones. Truncating division keeps the output
// bit-identical with the engine's own encoder.
func quantize(residual int32, scaleFactor int32) int32 {
	return clip((residual+(scaleFactor>>1))/scaleFactor, nibbleMin, nibbleMax)
}

func encodeFrame(samples *[FrameSamples]int16, start history) ([FrameBytes]byte, history) {
	var bestError int64
	var bestScale int32
	var bestCoef int
	var bestNibbles [FrameSamples]int32
	var bestState history

	for coef := 0; coef < len(CoefTable); coef = coef + 1 {
		var c1 = CoefTable[coef][0]
		var c2 = CoefTable[coef][1]

		// First pass: residuals against the ideal predictor path, where the
		// history advances by the true input sample. Only the peak residual
		// matters here; it picks the scale exponent.
		var ideal = start
		var maxResidual int32 = 0

		for i := 0; i < FrameSamples; i = i + 1 {
			var residual = int32(samples[i]) - predict(c1, c2, ideal)

			if iabs(residual) > maxResidual {
				maxResidual = iabs(residual)
			}

			ideal.h2 = ideal.h1
			ideal.h1 = int32(samples[i])
		}

		// Smallest scale whose nibble range covers the peak residual. Caps at
		// 12; anything still out of range gets clamped by the nibble clip.
		var scale int32 = 0
		for scale < maxScale && maxResidual > (1<<scale)*8-1 {
			scale = scale + 1
		}

		// Second pass: simulate quantization with decoder feedback, exactly
		// as the engine will replay it, and accumulate the squared error.
		var scaleFactor int32 = 1 << scale
		var state = start
		var totalError int64 = 0
		var nibbles [FrameSamples]int32

		for i := 0; i < FrameSamples; i = i + 1 {
			var residual = int32(samples[i]) - predict(c1, c2, state)
			var nibble = quantize(residual, scaleFactor)
			nibbles[i] = nibble

			var decoded = decodeSample(nibble, scaleFactor, c1, c2, state)
			var sampleError = int64(int32(samples[i]) - decoded)
			totalError += sampleError * sampleError

			state.h2 = state.h1
			state.h1 = decoded
		}

		if coef == 0 || totalError < bestError {
			bestError = totalError
			bestScale = scale
			bestCoef = coef
			bestNibbles = nibbles
			bestState = state
		}
	}

	var result [FrameBytes]byte

	result[0] = byte(bestCoef<<4) | byte(bestScale&0xf)

	for i := 0; i < FrameSamples; i = i + 2 {
		result[1+i/2] = byte(bestNibbles[i]&0xf)<<4 | byte(bestNibbles[i+1]&0xf)
	}

	return result, bestState
}

// Encode compresses a mono 16-bit stream into 8-byte frames of 14 samples
// each. A trailing partial frame is padded with zero samples. The encoder is
// total; any input produces ceil(len/14)*8 bytes.
func Encode(samples []int16, progress ProgressFunc) []byte {
	var frameCount = (len(samples) + FrameSamples - 1) / FrameSamples
	var result = make([]byte, 0, frameCount*FrameBytes)

	var state history
	var frame [FrameSamples]int16

	for frameIndex := 0; frameIndex < frameCount; frameIndex = frameIndex + 1 {
		var base = frameIndex * FrameSamples

		for i := 0; i < FrameSamples; i = i + 1 {
			if base+i < len(samples) {
				frame[i] = samples[base+i]
			} else {
				frame[i] = 0
			}
		}

		var encoded, nextState = encodeFrame(&frame, state)
		state = nextState
		result = append(result, encoded[:]...)

		if progress != nil {
			progress(frameIndex+1, frameCount)
		}
	}

	return result
}
