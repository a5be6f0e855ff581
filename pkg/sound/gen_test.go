package sound

import (
	"testing"
	"time"
)

func peak(s *Sound) int {
	max := 0
	for _, v := range s.Samples {
		a := int(v)
		if a < 0 {
			a = -a
		}
		if a > max {
			max = a
		}
	}
	return max
}

func TestSine(t *testing.T) {
	s := Sine(440, 500*time.Millisecond, 22050, 0.8)
	if len(s.Samples) != 11025 {
		t.Fatalf("len = %d, want 11025", len(s.Samples))
	}
	if s.Samples[0] != 0 {
		t.Errorf("first sample = %d, want 0", s.Samples[0])
	}

	p := peak(s)
	if p < 25000 || p > 26300 {
		t.Errorf("peak = %d, want near 0.8 * 32767", p)
	}

	hasNegative := false
	for _, v := range s.Samples {
		if v < 0 {
			hasNegative = true
			break
		}
	}
	if !hasNegative {
		t.Error("sine wave never goes negative")
	}
}

func TestSilence(t *testing.T) {
	s := Silence(100*time.Millisecond, 22050)
	if len(s.Samples) != 2205 {
		t.Fatalf("len = %d, want 2205", len(s.Samples))
	}
	for i, v := range s.Samples {
		if v != 0 {
			t.Fatalf("sample %d = %d, want 0", i, v)
		}
	}
}

func TestNoise(t *testing.T) {
	a := Noise(100*time.Millisecond, 22050, 0.5)
	b := Noise(100*time.Millisecond, 22050, 0.5)

	if len(a.Samples) != 2205 {
		t.Fatalf("len = %d, want 2205", len(a.Samples))
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatal("noise is not deterministic")
		}
	}

	nonzero := 0
	for _, v := range a.Samples {
		if v > 16384 || v < -16384 {
			t.Fatalf("sample %d exceeds amplitude bound", v)
		}
		if v != 0 {
			nonzero++
		}
	}
	if nonzero < len(a.Samples)/2 {
		t.Errorf("only %d of %d samples nonzero", nonzero, len(a.Samples))
	}
}

func TestADSR(t *testing.T) {
	src := &Sound{SampleRate: 1000, Samples: make([]int16, 1000)}
	for i := range src.Samples {
		src.Samples[i] = 10000
	}

	// 100 attack, 200 decay to 0.5, 400 sustain, 300 release samples.
	out := ADSR(src, 100*time.Millisecond, 200*time.Millisecond, 0.5, 300*time.Millisecond)

	checks := []struct {
		idx  int
		want int16
	}{
		{0, 0},        // attack start
		{50, 5000},    // mid attack
		{100, 10000},  // decay start at full level
		{200, 7500},   // mid decay
		{400, 5000},   // sustain
		{700, 5000},   // release start
		{850, 2500},   // mid release
	}
	for _, c := range checks {
		if got := out.Samples[c.idx]; got != c.want {
			t.Errorf("sample %d = %d, want %d", c.idx, got, c.want)
		}
	}
	if last := out.Samples[999]; last < 0 || last > 100 {
		t.Errorf("last sample = %d, want near 0", last)
	}
}

func TestPainGrunt(t *testing.T) {
	a := PainGrunt(300*time.Millisecond, 1.0)
	b := PainGrunt(300*time.Millisecond, 1.0)

	if len(a.Samples) != 6615 {
		t.Fatalf("len = %d, want 6615", len(a.Samples))
	}
	if a.SampleRate != DefaultSampleRate {
		t.Errorf("rate = %d, want %d", a.SampleRate, DefaultSampleRate)
	}
	if a.Samples[0] != 0 {
		t.Errorf("first sample = %d, want 0 from attack envelope", a.Samples[0])
	}
	if p := peak(a); p < 5000 {
		t.Errorf("peak = %d, want an audible grunt", p)
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatal("pain grunt is not deterministic")
		}
	}
}

func TestGameSounds_Shape(t *testing.T) {
	tests := []struct {
		name string
		s    *Sound
	}{
		{"death", DeathScream(1500*time.Millisecond, 1.0)},
		{"jump", Jump(250*time.Millisecond, 1.0)},
		{"gasp", Gasp(500*time.Millisecond, 1.0)},
		{"drown", Drown(1500*time.Millisecond, 1.0)},
		{"place", BuildPlace(200 * time.Millisecond)},
		{"destroy", BuildDestroy(500 * time.Millisecond)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.s.Samples) == 0 {
				t.Fatal("no samples generated")
			}
			if tt.s.SampleRate != DefaultSampleRate {
				t.Errorf("rate = %d, want %d", tt.s.SampleRate, DefaultSampleRate)
			}
			if p := peak(tt.s); p < 2000 {
				t.Errorf("peak = %d, want an audible effect", p)
			}

			// Every envelope fades out by the end.
			last := int(tt.s.Samples[len(tt.s.Samples)-1])
			if last < -500 || last > 500 {
				t.Errorf("last sample = %d, want a faded tail", last)
			}
		})
	}
}

func TestPitchChangesWaveform(t *testing.T) {
	low := Jump(250*time.Millisecond, 0.8)
	high := Jump(250*time.Millisecond, 1.2)

	same := true
	for i := range low.Samples {
		if low.Samples[i] != high.Samples[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("pitch parameter has no effect")
	}
}
