package delay

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-hendrix/dsp/core"
)

func TestNewValidation(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := New(n); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("New(%d) error = %v, want ErrInvalidParameter", n, err)
		}
	}
}

func TestNewZeroFilled(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if d.Len() != 16 {
		t.Fatalf("Len: got %d want 16", d.Len())
	}

	for i := 0; i < 16; i++ {
		if v := d.Tap(); v != 0 {
			t.Fatalf("tap %d = %v, want 0", i, v)
		}
		d.Write(1)
	}
}

func TestTapDelaysByCapacity(t *testing.T) {
	const capacity = 5

	d, err := New(capacity)
	if err != nil {
		t.Fatal(err)
	}

	for n := 0; n < 40; n++ {
		got := d.Tap()
		want := 0.0
		if n >= capacity {
			want = float64(n - capacity + 1)
		}
		if got != want {
			t.Fatalf("n=%d: Tap() = %v, want %v", n, got, want)
		}
		d.Write(float64(n + 1))
	}
}

func TestReadMatchesTapAtCapacity(t *testing.T) {
	d, _ := New(4)
	for i := 1; i <= 6; i++ {
		d.Write(float64(i))
	}

	if d.Read(4) != d.Tap() {
		t.Fatalf("Read(Len) = %v, Tap() = %v", d.Read(4), d.Tap())
	}
	if d.Read(1) != 6 {
		t.Fatalf("Read(1) = %v, want 6", d.Read(1))
	}
	if d.Read(2) != 5 {
		t.Fatalf("Read(2) = %v, want 5", d.Read(2))
	}
}

func TestReset(t *testing.T) {
	d, _ := New(3)
	for i := 0; i < 5; i++ {
		d.Write(1)
	}

	d.Reset()

	for i := 0; i < 3; i++ {
		if d.Tap() != 0 {
			t.Fatal("expected zero after reset")
		}
		d.Write(0)
	}
}

func TestSamplesForMilliseconds(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		ms   float64
		want int
	}{
		{name: "default echo", rate: 48000, ms: 120, want: 5760},
		{name: "integer product", rate: 44100, ms: 10, want: 441},
		{name: "rounds down", rate: 48000, ms: 0.51, want: 24},   // 24.48
		{name: "rounds half up", rate: 1000, ms: 2.5, want: 3},   // 2.5
		{name: "rounds up", rate: 44100, ms: 0.03, want: 1},      // 1.323
		{name: "one sample", rate: 48000, ms: 1.0 / 48, want: 1}, // 1.0
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SamplesForMilliseconds(tt.rate, tt.ms)
			if err != nil {
				t.Fatalf("SamplesForMilliseconds() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("SamplesForMilliseconds(%v, %v) = %d, want %d", tt.rate, tt.ms, got, tt.want)
			}
		})
	}
}

func TestSamplesForMillisecondsInvalid(t *testing.T) {
	for _, ms := range []float64{0, -5, math.NaN(), math.Inf(1), 0.001} {
		if _, err := SamplesForMilliseconds(48000, ms); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("ms=%v error = %v, want ErrInvalidParameter", ms, err)
		}
	}
	if _, err := SamplesForMilliseconds(0, 120); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("rate=0 error = %v, want ErrInvalidParameter", err)
	}
}
