package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Eggscantfly/Rabbids-Go-Home-SNS-Audio-Converter/convert"
	"github.com/Eggscantfly/Rabbids-Go-Home-SNS-Audio-Converter/lyn"
)

func buildArgs() Args {
	var args = NewArgs(`Usage
	sns-converter input.wav output.sns [options]
	sns-converter input.wav output.son --son [options]`)

	args.AddStringArg([]string{"-c", "--codec"}, "payload codec, dsp or ogg", "dsp")
	args.AddFlagArg([]string{"--son"}, "emit a SON streaming container instead of SNS")
	args.AddIntegerArg([]string{"-r", "--sample-rate"}, "resample to this rate before encoding", 0, 0, 192000)
	args.AddFlagArg([]string{"-m", "--mono"}, "downmix to a single channel")
	args.AddFlagArg([]string{"-n", "--normalize"}, "apply a loudness normalization pass")
	args.AddFlagArg([]string{"--four-channel"}, "SON only, duplicate stereo into four channels")
	args.AddFlagArg([]string{"--just-dance"}, "SNS only, prepend the Just Dance header")
	args.AddStringArg([]string{"-b", "--beats"}, "SNS only, copy the beat chunk from a reference SNS", "")

	return args
}

func main() {
	var args = buildArgs()

	namedArgs, orderedArgs, errs := args.Parse(os.Args[1:])

	if len(errs) != 0 {
		for _, err := range errs {
			log.Println(err.Error())
		}
		log.Fatal(args.CreateHelpMessage())
	}

	if len(orderedArgs) != 2 {
		log.Fatal(args.CreateHelpMessage())
	}

	var input = orderedArgs[0]
	var output = orderedArgs[1]

	var options convert.Options

	switch namedArgs["--codec"].(string) {
	case "dsp":
		options.Codec = convert.CodecDSP
	case "ogg":
		options.Codec = convert.CodecOGG
	default:
		log.Fatal("--codec should be dsp or ogg")
	}

	options.Format = lyn.FormatSNS
	if namedArgs["--son"].(bool) {
		options.Format = lyn.FormatSON
	}

	options.SampleRate = uint32(namedArgs["--sample-rate"].(int64))
	options.ForceMono = namedArgs["--mono"].(bool)
	options.Normalize = namedArgs["--normalize"].(bool)
	options.FourChannel = namedArgs["--four-channel"].(bool)

	var justDance = namedArgs["--just-dance"].(bool)
	var beatsFile = namedArgs["--beats"].(string)

	if justDance && beatsFile != "" {
		log.Fatal("--just-dance and --beats are exclusive")
	}

	if justDance {
		options.Extras = lyn.ExtrasJustDance
	}

	if beatsFile != "" {
		reference, err := os.ReadFile(beatsFile)

		if err != nil {
			log.Fatal(err)
		}

		beats, err := lyn.HarvestBeats(reference)

		if err != nil {
			log.Println(err.Error())
			fmt.Printf("Beats found: -1\n")
		} else {
			fmt.Printf("Beats found: %d\n", beats.Count)
			options.Extras = lyn.ExtrasCustomBeats
			options.Beats = beats
		}
	}

	err := convert.ConvertFile(input, output, &options)

	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Wrote %s\n", output)
}
