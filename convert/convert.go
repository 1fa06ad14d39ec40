package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Eggscantfly/Rabbids-Go-Home-SNS-Audio-Converter/gcadpcm"
	"github.com/Eggscantfly/Rabbids-Go-Home-SNS-Audio-Converter/lyn"
	"github.com/Eggscantfly/Rabbids-Go-Home-SNS-Audio-Converter/ogg"
	"github.com/Eggscantfly/Rabbids-Go-Home-SNS-Audio-Converter/preprocess"
	"github.com/Eggscantfly/Rabbids-Go-Home-SNS-Audio-Converter/wav"
)

type toolset struct {
	ffmpeg string
	oggenc string
}

func (tools *toolset) locate(options *Options, settings preprocess.Settings) error {
	if settings.Active() || options.Codec == CodecOGG {
		path, err := preprocess.FindTool("ffmpeg")

		if err != nil {
			return wrap(ExternalMissing, err)
		}

		tools.ffmpeg = path
	}

	if options.Codec == CodecOGG {
		// oggenc is preferred but ffmpeg's libvorbis backend covers its
		// absence, so a miss here is not fatal.
		if path, err := preprocess.FindTool("oggenc", "oggenc2"); err == nil {
			tools.oggenc = path
		}
	}

	return nil
}

// ConvertFile runs the full pipeline for one input WAV and writes the
// finished container in a single atomic step; a partially written output is
// never observable.
func ConvertFile(input string, output string, options *Options) error {
	if err := validateOptions(options); err != nil {
		return err
	}

	var settings = preprocess.Settings{
		SampleRate: options.SampleRate,
		ForceMono:  options.ForceMono,
		Normalize:  options.Normalize,
	}

	var tools toolset

	if err := tools.locate(options, settings); err != nil {
		return err
	}

	temp, err := preprocess.NewTempDir()

	if err != nil {
		return wrap(IO, err)
	}

	defer temp.Release()

	var source = input

	if settings.Active() {
		source = temp.File("preprocessed.wav")

		if err := preprocess.RunFFmpeg(tools.ffmpeg, input, source, settings); err != nil {
			return wrap(ExternalFailed, err)
		}
	}

	wave, err := wav.ParseFile(source)

	if err != nil {
		if os.IsNotExist(err) {
			return wrap(IO, err)
		}
		return wrap(InputInvalid, err)
	}

	var audio *lyn.Audio

	switch options.Codec {
	case CodecDSP:
		audio, err = buildDSP(wave, options)
	case CodecOGG:
		audio, err = buildOGG(wave, source, temp, tools, options)
	default:
		err = errorf(InputInvalid, "unknown codec %d", options.Codec)
	}

	if err != nil {
		return err
	}

	var container []byte

	if options.Format == lyn.FormatSON {
		container, err = lyn.BuildSON(audio)
	} else {
		container, err = lyn.BuildSNS(audio, options.Extras, options.Beats)
	}

	if err != nil {
		return wrap(InputInvalid, err)
	}

	if err := writeAtomic(output, container); err != nil {
		return wrap(IO, err)
	}

	return nil
}

func buildDSP(wave *wav.Wave, options *Options) (*lyn.Audio, error) {
	var channelCount = len(wave.Channels)

	if channelCount != 1 && channelCount != 2 {
		return nil, errorf(InputInvalid, "DSP output supports 1 or 2 input channels, got %d", channelCount)
	}

	if options.FourChannel && channelCount != 2 {
		return nil, errorf(InputInvalid, "four channel output needs stereo input")
	}

	var encoded = make([][]byte, 0, 4)

	for index, samples := range wave.Channels {
		var channelIndex = index

		encoded = append(encoded, gcadpcm.Encode(samples, func(done int, total int) {
			options.report("encode", (float64(channelIndex)+float64(done)/float64(total))/float64(channelCount))
		}))
	}

	if options.FourChannel {
		// Channels 2 and 3 duplicate 0 and 1.
		encoded = append(encoded, encoded[0], encoded[1])
	}

	var payload []byte

	if len(encoded) == 1 {
		payload = encoded[0]
	} else {
		payload = gcadpcm.Interleave(encoded)
	}

	return &lyn.Audio{
		Codec:       lyn.CodecDSP,
		Channels:    len(encoded),
		SampleRate:  wave.SampleRate,
		NumSamples:  uint32(wave.FrameCount()),
		FourChannel: options.FourChannel,
		Payload:     payload,
	}, nil
}

func buildOGG(wave *wav.Wave, source string, temp *preprocess.TempDir, tools toolset, options *Options) (*lyn.Audio, error) {
	var channelCount = len(wave.Channels)

	var streams = make([][]byte, 0, channelCount)

	for channel := 0; channel < channelCount; channel = channel + 1 {
		var monoWav = source

		if channelCount > 1 {
			monoWav = temp.File(fmt.Sprintf("channel%d.wav", channel))

			if err := preprocess.SplitChannel(tools.ffmpeg, source, monoWav, channel); err != nil {
				return nil, wrap(ExternalFailed, err)
			}
		}

		var oggPath = temp.File(fmt.Sprintf("channel%d.ogg", channel))

		if err := preprocess.EncodeVorbis(tools.oggenc, tools.ffmpeg, monoWav, oggPath); err != nil {
			return nil, wrap(ExternalFailed, err)
		}

		data, err := os.ReadFile(oggPath)

		if err != nil {
			return nil, wrap(IO, err)
		}

		streams = append(streams, ogg.Repackage(data))

		options.report("vorbis", float64(channel+1)/float64(channelCount))
	}

	var payload []byte

	if len(streams) == 1 {
		payload = streams[0]
	} else {
		payload = ogg.InterleaveBlocks(streams)
	}

	return &lyn.Audio{
		Codec:      lyn.CodecOGG,
		Channels:   channelCount,
		SampleRate: wave.SampleRate,
		NumSamples: uint32(wave.FrameCount()),
		Payload:    payload,
	}, nil
}

// writeAtomic stages the container next to the destination and renames it
// into place once every byte is ready.
func writeAtomic(filename string, data []byte) error {
	file, err := os.CreateTemp(filepath.Dir(filename), ".sns-*")

	if err != nil {
		return err
	}

	var tempName = file.Name()

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tempName)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tempName)
		return err
	}

	if err := os.Rename(tempName, filename); err != nil {
		os.Remove(tempName)
		return err
	}

	return nil
}
