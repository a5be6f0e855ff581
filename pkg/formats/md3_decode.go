// MD3 read direction: offset-directed decoding of the binary layout.
package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/ludoplex/quakenite/pkg/encoding"
)

// md3Header is the 108-byte file header wire layout.
type md3Header struct {
	Ident       int32
	Version     int32
	Name        [md3NameLen]byte
	Flags       int32
	NumFrames   int32
	NumTags     int32
	NumSurfaces int32
	NumSkins    int32
	OfsFrames   int32
	OfsTags     int32
	OfsSurfaces int32
	OfsEnd      int32
}

// md3SurfHeader is the 108-byte surface header wire layout. All four
// subsection offsets are relative to the surface's own start.
type md3SurfHeader struct {
	Ident      int32
	Name       [md3NameLen]byte
	Flags      int32
	NumFrames  int32
	NumShaders int32
	NumVerts   int32
	NumTris    int32
	OfsTris    int32
	OfsShaders int32
	OfsSt      int32
	OfsXyz     int32
	OfsEnd     int32
}

// ParseMD3 parses MD3 data from a byte slice. Decode errors abort the
// whole read; no partial model is ever returned. The returned model is
// fully materialized and holds no references into data.
func ParseMD3(data []byte) (*MD3Model, error) {
	if len(data) < md3HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncatedMD3Data, len(data), md3HeaderSize)
	}

	var hdr md3Header
	binary.Read(bytes.NewReader(data[:md3HeaderSize]), binary.LittleEndian, &hdr)

	if hdr.Ident != MD3Magic {
		return nil, fmt.Errorf("%w: got %#08x", ErrInvalidMD3Magic, uint32(hdr.Ident))
	}
	if hdr.Version != MD3Version {
		return nil, fmt.Errorf("%w: %d, expected %d", ErrUnsupportedMD3Version, hdr.Version, MD3Version)
	}
	if hdr.NumFrames < 0 || hdr.NumTags < 0 || hdr.NumSurfaces < 0 {
		return nil, fmt.Errorf("%w: negative count in header", ErrMD3StructuralMismatch)
	}

	model := &MD3Model{
		Name:  trimName(hdr.Name[:]),
		Flags: hdr.Flags,
	}

	var err error
	model.Frames, err = parseMD3Frames(data, int(hdr.OfsFrames), int(hdr.NumFrames))
	if err != nil {
		return nil, fmt.Errorf("parsing frames: %w", err)
	}

	model.Tags, err = parseMD3Tags(data, int(hdr.OfsTags), int(hdr.NumFrames), int(hdr.NumTags))
	if err != nil {
		return nil, fmt.Errorf("parsing tags: %w", err)
	}

	// Surfaces form an offset chain: each surface's declared end offset
	// positions the next surface's start. The ident check at every start
	// catches drift from a wrong end offset in the surface before it.
	start := int(hdr.OfsSurfaces)
	model.Surfaces = make([]MD3Surface, 0, hdr.NumSurfaces)
	for i := 0; i < int(hdr.NumSurfaces); i++ {
		surf, next, err := parseMD3Surface(data, start, int(hdr.NumFrames))
		if err != nil {
			return nil, fmt.Errorf("parsing surface %d: %w", i, err)
		}
		model.Surfaces = append(model.Surfaces, *surf)
		start = next
	}

	return model, nil
}

// ParseMD3File parses an MD3 file from disk.
func ParseMD3File(path string) (*MD3Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MD3 file: %w", err)
	}
	return ParseMD3(data)
}

// sectionReader bounds-checks a region against the buffer and returns a
// reader over it. Within the returned reader, reads cannot fail.
func sectionReader(data []byte, ofs, size int) (*bytes.Reader, error) {
	if ofs < 0 || size < 0 || ofs+size > len(data) {
		return nil, fmt.Errorf("%w: section [%d:%d) outside %d-byte buffer", ErrTruncatedMD3Data, ofs, ofs+size, len(data))
	}
	return bytes.NewReader(data[ofs : ofs+size]), nil
}

func parseMD3Frames(data []byte, ofs, count int) ([]MD3Frame, error) {
	r, err := sectionReader(data, ofs, count*md3FrameSize)
	if err != nil {
		return nil, err
	}

	frames := make([]MD3Frame, count)
	for i := range frames {
		f := &frames[i]
		binary.Read(r, binary.LittleEndian, &f.MinBounds)
		binary.Read(r, binary.LittleEndian, &f.MaxBounds)
		binary.Read(r, binary.LittleEndian, &f.Origin)
		binary.Read(r, binary.LittleEndian, &f.Radius)
		f.Name = readString(r, md3FrameNameLen)
	}
	return frames, nil
}

func parseMD3Tags(data []byte, ofs, numFrames, numTags int) ([][]MD3Tag, error) {
	r, err := sectionReader(data, ofs, numFrames*numTags*md3TagSize)
	if err != nil {
		return nil, err
	}

	groups := make([][]MD3Tag, numFrames)
	for f := range groups {
		group := make([]MD3Tag, numTags)
		for t := range group {
			tag := &group[t]
			tag.Name = readString(r, md3NameLen)
			binary.Read(r, binary.LittleEndian, &tag.Origin)
			for a := 0; a < 3; a++ {
				binary.Read(r, binary.LittleEndian, &tag.Axis[a])
			}
		}
		groups[f] = group
	}
	return groups, nil
}

// parseMD3Surface decodes one surface starting at start and returns the
// next surface's start position (start + this surface's end offset).
func parseMD3Surface(data []byte, start, modelFrames int) (*MD3Surface, int, error) {
	hr, err := sectionReader(data, start, md3SurfHeaderSize)
	if err != nil {
		return nil, 0, err
	}
	var sh md3SurfHeader
	binary.Read(hr, binary.LittleEndian, &sh)

	if sh.Ident != MD3Magic {
		return nil, 0, fmt.Errorf("%w: ident %#08x at offset %d", ErrCorruptOffsetChain, uint32(sh.Ident), start)
	}
	if sh.NumShaders < 0 || sh.NumVerts < 0 || sh.NumTris < 0 || sh.NumFrames < 0 {
		return nil, 0, fmt.Errorf("%w: negative count in surface header", ErrMD3StructuralMismatch)
	}
	if int(sh.NumFrames) != modelFrames {
		return nil, 0, fmt.Errorf("%w: surface has %d frames, model has %d", ErrMD3StructuralMismatch, sh.NumFrames, modelFrames)
	}
	if sh.OfsEnd < md3SurfHeaderSize {
		return nil, 0, fmt.Errorf("%w: surface end offset %d inside its own header", ErrCorruptOffsetChain, sh.OfsEnd)
	}
	if start+int(sh.OfsEnd) > len(data) {
		return nil, 0, fmt.Errorf("%w: surface extends to %d in %d-byte buffer", ErrTruncatedMD3Data, start+int(sh.OfsEnd), len(data))
	}

	// Subsection regions are surface-relative and must stay inside the
	// surface's declared extent.
	sub := func(ofs, size int) (*bytes.Reader, error) {
		if ofs < 0 || size < 0 || ofs+size > int(sh.OfsEnd) {
			return nil, fmt.Errorf("%w: subsection [%d:%d) outside surface extent %d", ErrCorruptOffsetChain, ofs, ofs+size, sh.OfsEnd)
		}
		return bytes.NewReader(data[start+ofs : start+ofs+size]), nil
	}

	surf := &MD3Surface{
		Name:  trimName(sh.Name[:]),
		Flags: sh.Flags,
	}

	r, err := sub(int(sh.OfsShaders), int(sh.NumShaders)*md3ShaderSize)
	if err != nil {
		return nil, 0, err
	}
	surf.Shaders = make([]MD3Shader, sh.NumShaders)
	for i := range surf.Shaders {
		surf.Shaders[i].Name = readString(r, md3NameLen)
		binary.Read(r, binary.LittleEndian, &surf.Shaders[i].Index)
	}

	r, err = sub(int(sh.OfsTris), int(sh.NumTris)*md3TriangleSize)
	if err != nil {
		return nil, 0, err
	}
	surf.Triangles = make([]MD3Triangle, sh.NumTris)
	for i := range surf.Triangles {
		binary.Read(r, binary.LittleEndian, &surf.Triangles[i].Indices)
		for _, idx := range surf.Triangles[i].Indices {
			if idx < 0 || idx >= sh.NumVerts {
				return nil, 0, fmt.Errorf("%w: triangle %d references vertex %d of %d",
					ErrMD3IndexOutOfRange, i, idx, sh.NumVerts)
			}
		}
	}

	r, err = sub(int(sh.OfsSt), int(sh.NumVerts)*md3TexCoordSize)
	if err != nil {
		return nil, 0, err
	}
	surf.TexCoords = make([]MD3TexCoord, sh.NumVerts)
	binary.Read(r, binary.LittleEndian, surf.TexCoords)

	r, err = sub(int(sh.OfsXyz), modelFrames*int(sh.NumVerts)*md3VertexSize)
	if err != nil {
		return nil, 0, err
	}
	surf.Vertices = make([][]MD3Vertex, modelFrames)
	for f := range surf.Vertices {
		verts := make([]MD3Vertex, sh.NumVerts)
		for v := range verts {
			var rec struct {
				X, Y, Z         int16
				Zenith, Azimuth uint8
			}
			binary.Read(r, binary.LittleEndian, &rec)
			verts[v].Position = [3]float32{
				decodePosition(rec.X),
				decodePosition(rec.Y),
				decodePosition(rec.Z),
			}
			verts[v].Normal = DecodeNormal(rec.Zenith, rec.Azimuth)
		}
		surf.Vertices[f] = verts
	}

	return surf, start + int(sh.OfsEnd), nil
}

// readString consumes a fixed-width name field from the reader.
func readString(r *bytes.Reader, length int) string {
	buf := make([]byte, length)
	r.Read(buf)
	return trimName(buf)
}

// trimName converts a fixed-width null-padded name field to a string.
// Names written by old community tools can carry CP-1252 high bytes;
// those come back as UTF-8.
func trimName(b []byte) string {
	return encoding.FixedStringToUTF8(b)
}
