package sound

import (
	"math"
	"math/rand"
	"time"
)

// Generators seed their noise source with a constant so repeated asset
// builds produce identical bytes.
const noiseSeed = 1

// Sine generates a sine wave tone.
func Sine(freq float64, duration time.Duration, sampleRate int, amplitude float64) *Sound {
	n := int(duration.Seconds() * float64(sampleRate))
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		samples[i] = clampSample(math.Sin(2*math.Pi*freq*t) * amplitude * 32767)
	}
	return &Sound{SampleRate: sampleRate, Samples: samples}
}

// Noise generates white noise.
func Noise(duration time.Duration, sampleRate int, amplitude float64) *Sound {
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(duration.Seconds() * float64(sampleRate))
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = clampSample(uniform(rng) * amplitude * 32767)
	}
	return &Sound{SampleRate: sampleRate, Samples: samples}
}

// Silence generates a silent sound.
func Silence(duration time.Duration, sampleRate int) *Sound {
	n := int(duration.Seconds() * float64(sampleRate))
	return &Sound{SampleRate: sampleRate, Samples: make([]int16, n)}
}

// ADSR applies an attack/decay/sustain/release envelope and returns
// the shaped sound. sustain is a level in [0,1], the other stages are
// durations.
func ADSR(s *Sound, attack, decay time.Duration, sustain float64, release time.Duration) *Sound {
	sr := float64(s.SampleRate)
	attackSamples := int(attack.Seconds() * sr)
	decaySamples := int(decay.Seconds() * sr)
	releaseSamples := int(release.Seconds() * sr)
	sustainSamples := len(s.Samples) - attackSamples - decaySamples - releaseSamples
	if sustainSamples < 0 {
		sustainSamples = 0
	}

	out := &Sound{SampleRate: s.SampleRate, Samples: make([]int16, len(s.Samples))}
	for i, sample := range s.Samples {
		var envelope float64
		switch {
		case i < attackSamples:
			envelope = float64(i) / float64(attackSamples)
		case i < attackSamples+decaySamples:
			progress := float64(i-attackSamples) / float64(decaySamples)
			envelope = 1 - progress*(1-sustain)
		case i < attackSamples+decaySamples+sustainSamples:
			envelope = sustain
		default:
			if releaseSamples > 0 {
				remaining := len(s.Samples) - i
				envelope = sustain * float64(remaining) / float64(releaseSamples)
			}
		}
		out.Samples[i] = clampSample(float64(sample) * envelope)
	}
	return out
}

// PainGrunt generates a short synthetic pain grunt: a descending tone
// with harmonics and noise under a fast attack.
func PainGrunt(duration time.Duration, pitch float64) *Sound {
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(duration.Seconds() * DefaultSampleRate)
	samples := make([]int16, n)

	baseFreq := 150 * pitch
	for i := 0; i < n; i++ {
		t := float64(i) / DefaultSampleRate
		progress := float64(i) / float64(n)

		freq := baseFreq * (1.5 - progress*0.5)
		signal := math.Sin(2*math.Pi*freq*t)*0.5 +
			math.Sin(2*math.Pi*freq*2*t)*0.2 +
			math.Sin(2*math.Pi*freq*3*t)*0.1 +
			uniform(rng)*0.2

		envelope := math.Min(1, float64(i)/(0.02*DefaultSampleRate)) * (1 - math.Sqrt(progress))
		samples[i] = clampSample(signal * envelope * 32767 * 0.8)
	}
	return &Sound{SampleRate: DefaultSampleRate, Samples: samples}
}

// DeathScream generates a longer scream with a wandering pitch.
func DeathScream(duration time.Duration, pitch float64) *Sound {
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(duration.Seconds() * DefaultSampleRate)
	samples := make([]int16, n)

	baseFreq := 300 * pitch
	durSec := duration.Seconds()
	const attackTime = 0.05

	for i := 0; i < n; i++ {
		t := float64(i) / DefaultSampleRate
		progress := float64(i) / float64(n)

		freqMod := 1 + 0.5*math.Sin(progress*math.Pi*2)*(1-progress)
		freq := baseFreq * freqMod * (1 - progress*0.3)

		signal := math.Sin(2*math.Pi*freq*t)*0.4 +
			math.Sin(2*math.Pi*freq*1.5*t)*0.2 +
			math.Sin(2*math.Pi*freq*2*t)*0.15 +
			math.Sin(2*math.Pi*freq*3*t)*0.1 +
			uniform(rng)*0.15*(1-progress)

		envelope := 1.0
		if t < attackTime {
			envelope = t / attackTime
		} else if durSec > attackTime {
			rel := (t - attackTime) / (durSec - attackTime)
			envelope = 1 - rel*rel
		}
		samples[i] = clampSample(signal * envelope * 32767 * 0.8)
	}
	return &Sound{SampleRate: DefaultSampleRate, Samples: samples}
}

// Jump generates a short rising effort sound.
func Jump(duration time.Duration, pitch float64) *Sound {
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(duration.Seconds() * DefaultSampleRate)
	samples := make([]int16, n)

	for i := 0; i < n; i++ {
		t := float64(i) / DefaultSampleRate
		progress := float64(i) / float64(n)

		freq := 120 * pitch * (1 + progress*0.5)
		signal := math.Sin(2*math.Pi*freq*t)*0.5 + uniform(rng)*0.3
		envelope := math.Sin(progress * math.Pi)
		samples[i] = clampSample(signal * envelope * 32767 * 0.6)
	}
	return &Sound{SampleRate: DefaultSampleRate, Samples: samples}
}

// Gasp generates a breathy inhale for surfacing from water.
func Gasp(duration time.Duration, pitch float64) *Sound {
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(duration.Seconds() * DefaultSampleRate)
	samples := make([]int16, n)

	for i := 0; i < n; i++ {
		t := float64(i) / DefaultSampleRate
		progress := float64(i) / float64(n)

		freq := 200 * pitch * (1 + 0.2*math.Sin(progress*math.Pi*4))
		signal := uniform(rng)*0.6 + math.Sin(2*math.Pi*freq*t)*0.2
		envelope := math.Sqrt(math.Sin(progress * math.Pi))
		samples[i] = clampSample(signal * envelope * 32767 * 0.5)
	}
	return &Sound{SampleRate: DefaultSampleRate, Samples: samples}
}

// Drown generates a gurgling underwater sound with a modulated
// bubbling envelope.
func Drown(duration time.Duration, pitch float64) *Sound {
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(duration.Seconds() * DefaultSampleRate)
	samples := make([]int16, n)

	for i := 0; i < n; i++ {
		t := float64(i) / DefaultSampleRate
		progress := float64(i) / float64(n)

		bubbleFreq := 100 * pitch * (1 + uniform(rng)*0.3)
		signal := math.Sin(2*math.Pi*bubbleFreq*t)*0.3 +
			uniform(rng)*0.4 +
			math.Sin(2*math.Pi*60*t)*0.2

		bubbleMod := 0.5 + 0.5*math.Sin(progress*math.Pi*8)
		envelope := (1 - progress*progress) * bubbleMod
		samples[i] = clampSample(signal * envelope * 32767 * 0.6)
	}
	return &Sound{SampleRate: DefaultSampleRate, Samples: samples}
}

// BuildPlace generates the low thunk of a structure being placed.
func BuildPlace(duration time.Duration) *Sound {
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(duration.Seconds() * DefaultSampleRate)
	samples := make([]int16, n)

	for i := 0; i < n; i++ {
		t := float64(i) / DefaultSampleRate
		progress := float64(i) / float64(n)

		freq := 80 * (1 - progress*0.3)
		signal := math.Sin(2*math.Pi*freq*t)*0.6 +
			math.Sin(2*math.Pi*freq*2.5*t)*0.2 +
			uniform(rng)*0.3*(1-progress)

		envelope := (1 - progress) * (1 - progress)
		samples[i] = clampSample(signal * envelope * 32767 * 0.8)
	}
	return &Sound{SampleRate: DefaultSampleRate, Samples: samples}
}

// BuildDestroy generates the crash of a structure breaking apart.
func BuildDestroy(duration time.Duration) *Sound {
	rng := rand.New(rand.NewSource(noiseSeed))
	n := int(duration.Seconds() * DefaultSampleRate)
	samples := make([]int16, n)

	for i := 0; i < n; i++ {
		t := float64(i) / DefaultSampleRate
		progress := float64(i) / float64(n)

		freq := 60 * (1 - progress*0.5)
		signal := math.Sin(2*math.Pi*freq*t)*0.3 + uniform(rng)*0.7

		var envelope float64
		if progress < 0.1 {
			envelope = progress / 0.1
		} else {
			envelope = math.Pow(1-(progress-0.1)/0.9, 1.5)
		}
		samples[i] = clampSample(signal * envelope * 32767 * 0.8)
	}
	return &Sound{SampleRate: DefaultSampleRate, Samples: samples}
}

// uniform returns a random value in [-1, 1).
func uniform(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}
