package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pion/logging"

	"github.com/cwbudde/algo-hendrix/dsp/core"
	"github.com/cwbudde/algo-hendrix/dsp/effectchain"
	"github.com/cwbudde/algo-hendrix/dsp/effects"
	"github.com/cwbudde/algo-hendrix/dsp/signal"
	"github.com/cwbudde/algo-hendrix/dsp/window"
	"github.com/cwbudde/algo-hendrix/internal/preset"
	"github.com/cwbudde/algo-hendrix/internal/wavio"
	"github.com/cwbudde/algo-hendrix/measure/echo"
	"github.com/cwbudde/algo-hendrix/measure/spectrum"
)

type app struct {
	opts   *options
	stdout io.Writer
	chain  *effectchain.Chain
	log    logging.LeveledLogger
}

func newApp(o *options, stdout, stderr io.Writer) *app {
	level := logging.LogLevelInfo
	if o.verbose {
		level = logging.LogLevelDebug
	}

	factory := &logging.DefaultLoggerFactory{
		Writer:          stderr,
		DefaultLogLevel: level,
		ScopeLevels:     map[string]logging.LogLevel{},
	}

	return &app{
		opts:   o,
		stdout: stdout,
		chain:  effectchain.New(effectchain.WithLoggerFactory(factory)),
		log:    factory.NewLogger("hendrix"),
	}
}

// steps returns the chain from -chain, -preset or the default, and the
// preset when one was loaded.
func (a *app) steps() ([]effectchain.Step, *preset.Preset, error) {
	switch {
	case a.opts.chain != "":
		steps, err := effectchain.ParseSteps(a.opts.chain)
		if err != nil {
			return nil, nil, err
		}

		if len(steps) == 0 {
			return nil, nil, fmt.Errorf("%w: -chain has no steps", core.ErrInvalidParameter)
		}

		return steps, nil, nil
	case a.opts.preset != "":
		p, err := preset.Load(a.opts.preset)
		if err != nil {
			return nil, nil, err
		}

		return p.Steps(), p, nil
	default:
		return effectchain.DefaultChain(), nil, nil
	}
}

func (a *app) source(p *preset.Preset) (*signal.Signal, error) {
	if a.opts.in != "" {
		a.log.Debugf("loading %s at %d Hz", a.opts.in, a.opts.rate)

		return wavio.Load(a.opts.in, a.opts.rate)
	}

	hz, sec := a.opts.toneHz, a.opts.toneSec
	if p != nil && p.Tone != nil && !a.opts.toneSet {
		hz, sec = p.Tone.FreqHz, p.Tone.Seconds
	}

	a.log.Debugf("synthesizing %.1f Hz note for %.2f s", hz, sec)

	return signal.NewGenerator(core.WithSampleRate(float64(a.opts.rate))).GuitarNote(hz, sec)
}

func (a *app) process() error {
	steps, p, err := a.steps()
	if err != nil {
		return err
	}

	// Fail on a bad chain or window before touching any input or output file.
	if err := a.chain.Validate(steps); err != nil {
		return err
	}

	var spectrumOpts []spectrum.Option
	if a.opts.spectrum != "" {
		if spectrumOpts, err = a.spectrumOptions(); err != nil {
			return err
		}
	}

	clean, err := a.source(p)
	if err != nil {
		return err
	}

	res, err := a.chain.Run(clean, steps, a.opts.stems != "")
	if err != nil {
		return err
	}

	if err := wavio.Save(a.opts.out, res.Final); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "wrote %s (%d samples, %.2f s)\n", a.opts.out, res.Final.Len(), res.Final.Duration().Seconds())

	if a.opts.savePreset != "" {
		name := strings.TrimSuffix(filepath.Base(a.opts.savePreset), filepath.Ext(a.opts.savePreset))
		if err := preset.FromSteps(name, steps).Save(a.opts.savePreset); err != nil {
			return err
		}
	}

	if a.opts.stems != "" {
		if err := a.writeStems(clean, res.Stages); err != nil {
			return err
		}
	}

	if a.opts.spectrum != "" {
		return a.writeSpectrum(clean, res.Final, spectrumOpts)
	}

	return nil
}

func (a *app) writeStems(clean *signal.Signal, stages []effectchain.Stage) error {
	if err := os.MkdirAll(a.opts.stems, 0o755); err != nil {
		return err
	}

	if err := wavio.Save(filepath.Join(a.opts.stems, "00_clean.wav"), clean); err != nil {
		return err
	}

	for _, st := range stages {
		path := filepath.Join(a.opts.stems, st.Key()+".wav")
		if err := wavio.Save(path, st.Signal); err != nil {
			return err
		}

		a.log.Debugf("stem %s", path)
	}

	fmt.Fprintf(a.stdout, "wrote %d stems to %s\n", len(stages)+1, a.opts.stems)

	return nil
}

func (a *app) spectrumOptions() ([]spectrum.Option, error) {
	typ, err := window.ParseType(a.opts.window)
	if err != nil {
		return nil, err
	}

	opts := []spectrum.Option{spectrum.WithWindow(typ)}
	if a.opts.dbfs {
		opts = append(opts, spectrum.WithAmplitudeScaling())
	}

	return opts, nil
}

func (a *app) writeSpectrum(clean, final *signal.Signal, opts []spectrum.Option) error {
	before, err := spectrum.MagnitudeDB(clean.Samples, clean.Rate(), spectrum.DefaultSize, opts...)
	if err != nil {
		return err
	}

	after, err := spectrum.MagnitudeDB(final.Samples, final.Rate(), spectrum.DefaultSize, opts...)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(before.FrequenciesHz)+1)
	rows = append(rows, []string{"freq_hz", "clean_db", "processed_db"})

	for k, f := range before.FrequenciesHz {
		rows = append(rows, []string{
			formatFloat(f),
			formatFloat(before.MagnitudeDB[k]),
			formatFloat(after.MagnitudeDB[k]),
		})
	}

	if err := writeCSV(a.opts.spectrum, rows); err != nil {
		return err
	}

	peakHz, peakDB := after.Peak(20, final.Rate()/2)
	fmt.Fprintf(a.stdout, "wrote %s (%s window, ENBW %.2f bins, processed peak %.1f Hz at %.1f dB)\n",
		a.opts.spectrum, after.Window, after.ENBWBins, peakHz, peakDB)

	return nil
}

// writeImpulse measures the tape echo configured by the last tape step of
// the chain, or the default tape echo if the chain has none.
func (a *app) writeImpulse() error {
	steps, _, err := a.steps()
	if err != nil {
		return err
	}

	def, err := a.chain.Registry().Lookup("tape")
	if err != nil {
		return err
	}

	raw := effectchain.Params(nil)

	for _, st := range steps {
		d, err := a.chain.Registry().Lookup(st.Effect)
		if err == nil && d.Name == def.Name {
			raw = st.Params
		}
	}

	params, err := def.Resolve(raw)
	if err != nil {
		return err
	}

	fx, err := effects.NewTapeEcho(
		effects.WithTapeEchoDelayMs(params["delay_ms"]),
		effects.WithTapeEchoFeedback(params["feedback"]),
		effects.WithTapeEchoHFLoss(params["hf_loss"]),
	)
	if err != nil {
		return err
	}

	sr := float64(a.opts.rate)

	ir, err := echo.ImpulseResponse(fx, echo.DefaultDuration, sr)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(ir)+1)
	rows = append(rows, []string{"time_s", "amplitude"})

	for i, v := range ir {
		rows = append(rows, []string{formatFloat(float64(i) / sr), formatFloat(v)})
	}

	if err := writeCSV(a.opts.impulse, rows); err != nil {
		return err
	}

	spacing, err := fx.DelaySamples(sr)
	if err != nil {
		return err
	}

	m, err := echo.NewAnalyzer(sr).Analyze(ir, spacing)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "wrote %s: %d repeats, ratio %.3f, decay %.2f s\n",
		a.opts.impulse, len(m.Taps), m.MeanRatio, m.DecayTime)

	return nil
}

func (a *app) listEffects() error {
	reg := a.chain.Registry()
	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Effect\tAliases\tParameters\tDescription\n")
	fmt.Fprintf(tw, "------\t-------\t----------\t-----------\n")

	for _, name := range reg.Names() {
		def, err := reg.Lookup(name)
		if err != nil {
			return err
		}

		params := make([]string, len(def.Params))
		for i, p := range def.Params {
			params[i] = fmt.Sprintf("%s=%g", p.Name, p.Default)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.Name, strings.Join(def.Aliases, ","), strings.Join(params, " "), def.Summary)
	}

	return tw.Flush()
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
