package gcadpcm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refFrame mirrors the per-frame search independently of encodeFrame so the
// tests can check coefficient choice, packing and history advance.
type refFrame struct {
	coef    int
	scale   int32
	nibbles [FrameSamples]int32
	state   history
	err     int64
}

func refSimulate(samples [FrameSamples]int16, start history) refFrame {
	var best refFrame

	for coef := 0; coef < len(CoefTable); coef++ {
		var c1 = CoefTable[coef][0]
		var c2 = CoefTable[coef][1]

		var ideal = start
		var maxResidual int32 = 0

		for i := 0; i < FrameSamples; i++ {
			var pred = (c1*ideal.h1 + c2*ideal.h2 + 1024) >> 11
			var residual = int32(samples[i]) - pred

			if iabs(residual) > maxResidual {
				maxResidual = iabs(residual)
			}

			ideal.h2 = ideal.h1
			ideal.h1 = int32(samples[i])
		}

		var scale int32 = 0
		for scale < 12 && maxResidual > (1<<scale)*8-1 {
			scale++
		}

		var scaleFactor = int32(1) << scale
		var state = start
		var totalError int64 = 0
		var nibbles [FrameSamples]int32

		for i := 0; i < FrameSamples; i++ {
			var pred = (c1*state.h1 + c2*state.h2 + 1024) >> 11
			var residual = int32(samples[i]) - pred
			var nibble = clip((residual+(scaleFactor>>1))/scaleFactor, -8, 7)
			nibbles[i] = nibble

			var decoded = clip(((nibble*scaleFactor)<<11+1024+c1*state.h1+c2*state.h2)>>11, -32768, 32767)

			var sampleError = int64(int32(samples[i]) - decoded)
			totalError += sampleError * sampleError

			state.h2 = state.h1
			state.h1 = decoded
		}

		if coef == 0 || totalError < best.err {
			best = refFrame{coef, scale, nibbles, state, totalError}
		}
	}

	return best
}

func randomSamples(count int, amplitude int, seed int64) []int16 {
	var source = rand.New(rand.NewSource(seed))
	var result = make([]int16, count)

	for i := range result {
		result[i] = int16(source.Intn(2*amplitude) - amplitude)
	}

	return result
}

func TestEncodeSilence(t *testing.T) {
	var encoded = Encode(make([]int16, FrameSamples), nil)

	require.Len(t, encoded, FrameBytes)

	// Zero residuals fit at scale 0 for every pair; the tie break picks
	// coefficient 0 and all nibbles stay 0.
	assert.Equal(t, make([]byte, FrameBytes), encoded)
}

func TestEncodeFraming(t *testing.T) {
	tests := []struct {
		samples  int
		expected int
	}{
		{0, 0},
		{1, FrameBytes},
		{13, FrameBytes},
		{14, FrameBytes},
		{15, 2 * FrameBytes},
		{140, 10 * FrameBytes},
		{141, 11 * FrameBytes},
	}

	for _, tt := range tests {
		var encoded = Encode(randomSamples(tt.samples, 20000, 7), nil)
		assert.Len(t, encoded, tt.expected, "samples=%d", tt.samples)
	}
}

func TestEncodeMatchesReferenceSearch(t *testing.T) {
	var samples = randomSamples(14*25, 28000, 42)
	var encoded = Encode(samples, nil)

	var state history

	for frame := 0; frame*FrameBytes < len(encoded); frame++ {
		var input [FrameSamples]int16
		copy(input[:], samples[frame*FrameSamples:(frame+1)*FrameSamples])

		var expected = refSimulate(input, state)
		var header = encoded[frame*FrameBytes]

		require.Equal(t, expected.coef, int(header>>4), "frame %d coefficient", frame)
		require.Equal(t, expected.scale, int32(header&0xf), "frame %d scale", frame)

		for i := 0; i < FrameSamples; i++ {
			var stored int32
			if i%2 == 0 {
				stored = int32(encoded[frame*FrameBytes+1+i/2] >> 4)
			} else {
				stored = int32(encoded[frame*FrameBytes+1+i/2] & 0xf)
			}
			require.Equal(t, expected.nibbles[i]&0xf, stored, "frame %d nibble %d", frame, i)
		}

		state = expected.state
	}
}

func TestEncodeRamp(t *testing.T) {
	var samples = make([]int16, FrameSamples)
	for i := range samples {
		samples[i] = int16(i * 100)
	}

	var encoded = Encode(samples, nil)
	require.Len(t, encoded, FrameBytes)

	var input [FrameSamples]int16
	copy(input[:], samples)
	var expected = refSimulate(input, history{})

	assert.Equal(t, byte(expected.coef<<4)|byte(expected.scale&0xf), encoded[0])

	// An independent decode must land on exactly the history the search
	// selected.
	var decoded = Decode(encoded)
	require.Len(t, decoded, FrameSamples)
	assert.Equal(t, int16(expected.state.h1), decoded[FrameSamples-1])
	assert.Equal(t, int16(expected.state.h2), decoded[FrameSamples-2])
}

func TestDecodeReproducesEncoderFeedback(t *testing.T) {
	var samples = randomSamples(14*40, 30000, 99)
	var encoded = Encode(samples, nil)
	var decoded = Decode(encoded)

	require.Len(t, decoded, len(samples))

	// Accumulate the reference search's per-frame error and compare with
	// the actual reconstruction error of the decoded stream.
	var state history
	var expectedError int64 = 0

	for frame := 0; frame*FrameSamples < len(samples); frame++ {
		var input [FrameSamples]int16
		copy(input[:], samples[frame*FrameSamples:(frame+1)*FrameSamples])

		var ref = refSimulate(input, state)
		expectedError += ref.err
		state = ref.state
	}

	var actualError int64 = 0
	for i := range samples {
		var diff = int64(samples[i]) - int64(decoded[i])
		actualError += diff * diff
	}

	assert.Equal(t, expectedError, actualError)
}

func TestEncodeProgress(t *testing.T) {
	var calls []int

	Encode(make([]int16, 14*3+1), func(done int, total int) {
		require.Equal(t, 4, total)
		calls = append(calls, done)
	})

	assert.Equal(t, []int{1, 2, 3, 4}, calls)
}
