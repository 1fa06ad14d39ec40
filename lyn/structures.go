package lyn

type Codec int

const (
	CodecDSP Codec = iota
	CodecOGG
)

type Format int

const (
	FormatSNS Format = iota
	FormatSON
)

type Extras int

const (
	ExtrasNone Extras = iota
	ExtrasJustDance
	ExtrasCustomBeats
)

const (
	formatTagDSP        = 0x5050
	formatTagOGG        = 0x3156
	formatTagExtensible = 0xFFFE
)

// The engine reads DSP streams at a fixed nominal rate regardless of the
// audio sample rate.
const dspByteRate = 128000

// Subformat GUID of the 4-channel WAVEFORMATEXTENSIBLE fmt chunk.
var dspSubformat = [16]byte{
	0x50, 0x50, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
	0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

// The 20-byte Just Dance prefix: "LySE" then 12, 0, 12, 31.
var justDancePrefix = []byte{
	'L', 'y', 'S', 'E',
	0x0C, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x0C, 0x00, 0x00, 0x00,
	0x1F, 0x00, 0x00, 0x00,
}

// Audio is one encoded stream ready for container assembly. Payload is the
// already interleaved codec data that becomes the data chunk body.
type Audio struct {
	Codec       Codec
	Channels    int
	SampleRate  uint32
	NumSamples  uint32
	FourChannel bool
	Payload     []byte
}
