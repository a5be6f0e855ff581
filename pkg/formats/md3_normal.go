// MD3 quantized normal and position codecs.
package formats

import "math"

// DecodeNormal reconstructs a unit normal from its two angle bytes.
// Each byte maps to an angle in [0, 2pi) at a resolution of 2pi/255.
func DecodeNormal(zenith, azimuth uint8) [3]float32 {
	lat := float64(zenith) * (2.0 * math.Pi) / 255.0
	lng := float64(azimuth) * (2.0 * math.Pi) / 255.0

	return [3]float32{
		float32(math.Cos(lat) * math.Sin(lng)),
		float32(math.Sin(lat) * math.Sin(lng)),
		float32(math.Cos(lng)),
	}
}

// EncodeNormal compresses a normal to two angle bytes. The input need not
// be unit length; it is normalized first. A near-zero vector encodes to
// (0, 0), which is a defined value rather than an error. The encoding is
// lossy: round-tripping is exact only to within one quantization step
// (2pi/255 per angle).
func EncodeNormal(n [3]float32) (zenith, azimuth uint8) {
	x := float64(n[0])
	y := float64(n[1])
	z := float64(n[2])

	length := math.Sqrt(x*x + y*y + z*z)
	if length < 0.001 {
		return 0, 0
	}

	x, y, z = x/length, y/length, z/length
	// Guard acos against float round-off pushing z outside [-1, 1].
	z = math.Max(-1.0, math.Min(1.0, z))

	lng := math.Acos(z)
	lat := math.Atan2(y, x)
	if lat < 0 {
		lat += 2.0 * math.Pi
	}

	zenith = uint8(int(math.Round(lat*255.0/(2.0*math.Pi))) & 0xFF)
	azimuth = uint8(int(math.Round(lng*255.0/(2.0*math.Pi))) & 0xFF)
	return zenith, azimuth
}

// decodePosition converts a quantized coordinate to world units.
func decodePosition(v int16) float32 {
	return float32(v) * MD3XYZScale
}

// encodePosition quantizes a world-unit coordinate to the 16-bit wire
// value. Out-of-range coordinates clamp to the representable range; the
// format cannot express geometry beyond +-512 units.
func encodePosition(v float32) int16 {
	scaled := math.Round(float64(v) / MD3XYZScale)
	if scaled > math.MaxInt16 {
		return math.MaxInt16
	}
	if scaled < math.MinInt16 {
		return math.MinInt16
	}
	return int16(scaled)
}
