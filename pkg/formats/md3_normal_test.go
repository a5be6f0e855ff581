package formats

import (
	"math"
	"testing"
)

func TestDecodeNormal_KnownValues(t *testing.T) {
	// (0, 0) is straight up; the azimuth byte tilts off +Z, the zenith
	// byte spins around it.
	up := DecodeNormal(0, 0)
	if up != [3]float32{0, 0, 1} {
		t.Errorf("DecodeNormal(0, 0) = %v, want {0 0 1}", up)
	}

	x := DecodeNormal(0, 64)
	if !normalsClose(x, [3]float32{1, 0, 0}, 0.05) {
		t.Errorf("DecodeNormal(0, 64) = %v, want ~{1 0 0}", x)
	}

	y := DecodeNormal(64, 64)
	if !normalsClose(y, [3]float32{0, 1, 0}, 0.05) {
		t.Errorf("DecodeNormal(64, 64) = %v, want ~{0 1 0}", y)
	}

	down := DecodeNormal(0, 128)
	if !normalsClose(down, [3]float32{0, 0, -1}, 0.05) {
		t.Errorf("DecodeNormal(0, 128) = %v, want ~{0 0 -1}", down)
	}
}

func TestEncodeNormal_Degenerate(t *testing.T) {
	zen, azi := EncodeNormal([3]float32{0, 0, 0})
	if zen != 0 || azi != 0 {
		t.Errorf("EncodeNormal(zero) = (%d, %d), want (0, 0)", zen, azi)
	}

	// Below the degenerate threshold too.
	zen, azi = EncodeNormal([3]float32{0.0001, 0.0001, 0})
	if zen != 0 || azi != 0 {
		t.Errorf("EncodeNormal(near-zero) = (%d, %d), want (0, 0)", zen, azi)
	}
}

func TestEncodeNormal_Poles(t *testing.T) {
	// Any zenith byte decodes to +Z when the azimuth byte is 0.
	if _, azi := EncodeNormal([3]float32{0, 0, 1}); azi != 0 {
		t.Errorf("EncodeNormal(+Z) azimuth = %d, want 0", azi)
	}

	if got := DecodeNormal(EncodeNormal([3]float32{0, 0, -1})); !normalsClose(got, [3]float32{0, 0, -1}, 0.05) {
		t.Errorf("-Z round trip = %v", got)
	}
}

func TestEncodeNormal_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   [3]float32
	}{
		{"pos x", [3]float32{1, 0, 0}},
		{"neg x", [3]float32{-1, 0, 0}},
		{"pos y", [3]float32{0, 1, 0}},
		{"neg y", [3]float32{0, -1, 0}},
		{"pos z", [3]float32{0, 0, 1}},
		{"neg z", [3]float32{0, 0, -1}},
		{"diagonal", [3]float32{0.577, 0.577, 0.577}},
		{"neg diagonal", [3]float32{-0.577, -0.577, -0.577}},
		{"tilted", [3]float32{0.3, -0.4, 0.866}},
		{"unnormalized input", [3]float32{10, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeNormal(EncodeNormal(tt.in))

			// Round trip must land within one quantization step of the
			// normalized input.
			want := normalize3(tt.in)
			if !normalsClose(got, want, 0.06) {
				t.Errorf("round trip = %v, want ~%v", got, want)
			}
			length := math.Sqrt(float64(got[0]*got[0] + got[1]*got[1] + got[2]*got[2]))
			if math.Abs(length-1) > 0.001 {
				t.Errorf("decoded normal length = %f, want 1", length)
			}
		})
	}
}

func TestEncodePosition_Quantization(t *testing.T) {
	tests := []struct {
		world float32
		want  int16
	}{
		{0, 0},
		{1, 64},
		{-0.25, -16},
		{511.984375, 32767}, // largest representable coordinate
		{0.008, 1},          // 0.512 file units rounds up
		{0.007, 0},          // 0.448 file units rounds down
		{-0.008, -1},
	}

	for _, tt := range tests {
		if got := encodePosition(tt.world); got != tt.want {
			t.Errorf("encodePosition(%f) = %d, want %d", tt.world, got, tt.want)
		}
	}
}

func TestEncodePosition_Clamps(t *testing.T) {
	if got := encodePosition(1000); got != 32767 {
		t.Errorf("encodePosition(1000) = %d, want 32767", got)
	}
	if got := encodePosition(-1000); got != -32768 {
		t.Errorf("encodePosition(-1000) = %d, want -32768", got)
	}
}

func TestPositionRoundTripError(t *testing.T) {
	// Arbitrary in-range coordinates must survive within half a file unit.
	values := []float32{0.1, -3.7, 123.456, -511.9, 0.0078}
	const maxErr = 0.5 / 64.0

	for _, v := range values {
		got := decodePosition(encodePosition(v))
		if diff := math.Abs(float64(got - v)); diff > maxErr+1e-6 {
			t.Errorf("round trip of %f drifted by %f, max %f", v, diff, maxErr)
		}
	}
}

func normalize3(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
