package preprocess

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jfreymuth/oggvorbis"
)

// Settings selects the preprocessing work delegated to ffmpeg before any
// encoding happens.
type Settings struct {
	SampleRate uint32 // 0 keeps the input rate
	ForceMono  bool
	Normalize  bool
}

// Active reports whether a preprocessing pass is needed at all.
func (settings *Settings) Active() bool {
	return settings.SampleRate != 0 || settings.ForceMono || settings.Normalize
}

// RunFFmpeg resamples, downmixes and/or loudness-normalizes input into a
// fresh 16-bit PCM WAV at output.
func RunFFmpeg(ffmpeg string, input string, output string, settings Settings) error {
	var args = []string{"-y", "-i", input}

	if settings.ForceMono {
		args = append(args, "-ac", "1")
	}

	if settings.SampleRate != 0 {
		args = append(args, "-ar", strconv.Itoa(int(settings.SampleRate)))
	}

	if settings.Normalize {
		args = append(args, "-af", "loudnorm=I=-16:TP=-1.5:LRA=11")
	}

	args = append(args, output)

	return runCommand(ffmpeg, args...)
}

// SplitChannel extracts one channel of input into a mono WAV.
func SplitChannel(ffmpeg string, input string, output string, channel int) error {
	var filter = fmt.Sprintf("[0:a]pan=mono|c0=c%d[a]", channel)

	return runCommand(ffmpeg, "-y", "-i", input, "-filter_complex", filter, "-map", "[a]", output)
}

// EncodeVorbis compresses a mono WAV with oggenc when available, falling
// back to ffmpeg's libvorbis backend. The result is decoded once to confirm
// the external tool produced a readable mono stream.
func EncodeVorbis(oggenc string, ffmpeg string, input string, output string) error {
	var err error

	if oggenc != "" {
		err = runCommand(oggenc, "-q", "6", "-o", output, input)
	} else {
		err = runCommand(ffmpeg, "-y", "-i", input, "-c:a", "libvorbis", "-q:a", "6", output)
	}

	if err != nil {
		return err
	}

	return probeVorbis(output)
}

func probeVorbis(filename string) error {
	file, err := os.Open(filename)

	if err != nil {
		return err
	}

	defer file.Close()

	_, format, err := oggvorbis.ReadAll(file)

	if err != nil {
		return fmt.Errorf("unreadable vorbis stream %s: %w", filename, err)
	}

	if format.Channels != 1 {
		return fmt.Errorf("vorbis stream %s has %d channels, expected mono", filename, format.Channels)
	}

	return nil
}
