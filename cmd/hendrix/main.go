// Command hendrix runs a guitar signal through an effect chain.
//
// Usage:
//
//	hendrix [flags]
//
// Without -in a synthetic guitar note is processed. Without -chain or
// -preset the classic chain (fuzz, wah, vibe, octave, rotary, tape) is used.
//
// Examples:
//
//	hendrix -out hendrix.wav
//	hendrix -in riff.wav -chain "fuzz:drive=12, wah:rate_hz=3, tape" -stems stems
//	hendrix -preset crosstown.yaml -spectrum spectrum.csv
//	hendrix -chain "tape:delay_ms=250" -impulse ir.csv
//	hendrix -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

type options struct {
	in         string
	out        string
	chain      string
	preset     string
	savePreset string
	stems      string
	spectrum   string
	impulse    string
	window     string
	dbfs       bool
	rate       int
	toneHz     float64
	toneSec    float64
	list       bool
	verbose    bool

	toneSet bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}

	fs := flag.NewFlagSet("hendrix", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.in, "in", "", "input WAV file (mono or first channel); a synthetic note is used if empty")
	fs.StringVar(&o.out, "out", "hendrix_out.wav", "output WAV file")
	fs.StringVar(&o.chain, "chain", "", `effect chain, e.g. "fuzz:drive=10, wah:rate_hz=2, tape"`)
	fs.StringVar(&o.preset, "preset", "", "YAML preset with the effect chain")
	fs.StringVar(&o.savePreset, "save-preset", "", "write the effective chain as a YAML preset")
	fs.StringVar(&o.stems, "stems", "", "directory for per-stage WAV files")
	fs.StringVar(&o.spectrum, "spectrum", "", "write clean and processed spectra as CSV")
	fs.StringVar(&o.window, "window", "hann", "spectrum window: rectangular, hann, hamming or blackman")
	fs.BoolVar(&o.dbfs, "spectrum-dbfs", false, "scale the spectrum so a full-scale sine reads 0 dB")
	fs.StringVar(&o.impulse, "impulse", "", "write the tape echo impulse response as CSV and exit")
	fs.IntVar(&o.rate, "rate", 48000, "processing sample rate in Hz")
	fs.Float64Var(&o.toneHz, "tone-hz", 220, "synthetic note frequency in Hz")
	fs.Float64Var(&o.toneSec, "tone-sec", 4, "synthetic note length in seconds")
	fs.BoolVar(&o.list, "list", false, "list available effects and parameters")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: hendrix [flags]\n\n")
		fmt.Fprintf(stderr, "Runs a guitar signal through an effect chain.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if o.chain != "" && o.preset != "" {
		return nil, errors.New("-chain and -preset are mutually exclusive")
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "tone-hz" || f.Name == "tone-sec" {
			o.toneSet = true
		}
	})

	return o, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	app := newApp(o, stdout, stderr)

	switch {
	case o.list:
		return app.listEffects()
	case o.impulse != "":
		return app.writeImpulse()
	default:
		return app.process()
	}
}
