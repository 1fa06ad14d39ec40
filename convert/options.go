package convert

import (
	"github.com/Eggscantfly/Rabbids-Go-Home-SNS-Audio-Converter/lyn"
)

type Codec int

const (
	CodecDSP Codec = iota
	CodecOGG
)

// ProgressFunc receives coarse synchronous progress: the current stage and
// a fraction in [0, 1].
type ProgressFunc func(stage string, fraction float64)

type Options struct {
	Codec       Codec
	Format      lyn.Format
	SampleRate  uint32 // 0 keeps the input rate
	ForceMono   bool
	Normalize   bool
	FourChannel bool
	Extras      lyn.Extras
	Beats       *lyn.Beats
	Progress    ProgressFunc
}

func (options *Options) report(stage string, fraction float64) {
	if options.Progress != nil {
		options.Progress(stage, fraction)
	}
}

func validateOptions(options *Options) error {
	if options.FourChannel {
		if options.Format != lyn.FormatSON {
			return errorf(InputInvalid, "four channel output needs a SON container")
		}

		if options.Codec != CodecDSP {
			return errorf(InputInvalid, "four channel output only supports the DSP codec")
		}
	}

	if options.Format == lyn.FormatSON && options.Extras != lyn.ExtrasNone {
		return errorf(InputInvalid, "extras are only valid for SNS output")
	}

	if options.Extras == lyn.ExtrasCustomBeats && (options.Beats == nil || len(options.Beats.Bytes) == 0) {
		return errorf(InputInvalid, "custom beats requested but none harvested")
	}

	return nil
}
