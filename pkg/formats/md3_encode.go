// MD3 write direction: layout computation and serialization.
package formats

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
)

// md3Layout holds the computed file-level section offsets.
type md3Layout struct {
	OfsFrames   int
	OfsTags     int
	OfsSurfaces int
}

// layoutMD3 computes file-level offsets from section record counts.
// Sections are contiguous: header, frames, tags, then the surface chain.
func layoutMD3(numFrames, numTags int) md3Layout {
	var l md3Layout
	l.OfsFrames = md3HeaderSize
	l.OfsTags = l.OfsFrames + numFrames*md3FrameSize
	l.OfsSurfaces = l.OfsTags + numFrames*numTags*md3TagSize
	return l
}

// md3SurfaceLayout holds one surface's computed subsection offsets,
// all relative to the surface start.
type md3SurfaceLayout struct {
	OfsShaders int
	OfsTris    int
	OfsSt      int
	OfsXyz     int
	OfsEnd     int
}

// layoutMD3Surface computes subsection offsets from record counts.
// Subsections are contiguous in write order: shaders, triangles,
// texcoords, vertices.
func layoutMD3Surface(numShaders, numTris, numVerts, numFrames int) md3SurfaceLayout {
	var l md3SurfaceLayout
	l.OfsShaders = md3SurfHeaderSize
	l.OfsTris = l.OfsShaders + numShaders*md3ShaderSize
	l.OfsSt = l.OfsTris + numTris*md3TriangleSize
	l.OfsXyz = l.OfsSt + numVerts*md3TexCoordSize
	l.OfsEnd = l.OfsXyz + numFrames*numVerts*md3VertexSize
	return l
}

// EncodeMD3 serializes a model to MD3 bytes. The model is validated
// first; a model violating the structural invariants produces an error
// and no bytes. Positions quantize at scale 1/64 with out-of-range
// coordinates clamped, normals quantize to two angle bytes.
func EncodeMD3(m *MD3Model) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	numFrames := len(m.Frames)
	numTags := m.NumTags()
	layout := layoutMD3(numFrames, numTags)

	var buf bytes.Buffer

	hdr := md3Header{
		Ident:       MD3Magic,
		Version:     MD3Version,
		Flags:       m.Flags,
		NumFrames:   int32(numFrames),
		NumTags:     int32(numTags),
		NumSurfaces: int32(len(m.Surfaces)),
		OfsFrames:   int32(layout.OfsFrames),
		OfsTags:     int32(layout.OfsTags),
		OfsSurfaces: int32(layout.OfsSurfaces),
		OfsEnd:      0, // patched below once the length is known
	}
	putName(hdr.Name[:], m.Name)
	binary.Write(&buf, binary.LittleEndian, &hdr)

	for i := range m.Frames {
		f := &m.Frames[i]
		binary.Write(&buf, binary.LittleEndian, f.MinBounds)
		binary.Write(&buf, binary.LittleEndian, f.MaxBounds)
		binary.Write(&buf, binary.LittleEndian, f.Origin)
		binary.Write(&buf, binary.LittleEndian, f.Radius)
		var name [md3FrameNameLen]byte
		putName(name[:], f.Name)
		buf.Write(name[:])
	}

	for _, group := range m.Tags {
		for i := range group {
			tag := &group[i]
			var name [md3NameLen]byte
			putName(name[:], tag.Name)
			buf.Write(name[:])
			binary.Write(&buf, binary.LittleEndian, tag.Origin)
			for a := 0; a < 3; a++ {
				binary.Write(&buf, binary.LittleEndian, tag.Axis[a])
			}
		}
	}

	for i := range m.Surfaces {
		writeMD3Surface(&buf, &m.Surfaces[i])
	}

	out := buf.Bytes()
	binary.LittleEndian.PutUint32(out[104:], uint32(len(out)))
	return out, nil
}

// writeMD3Surface serializes one surface. Offsets are computed before the
// header is emitted, since they describe data that follows it.
func writeMD3Surface(buf *bytes.Buffer, surf *MD3Surface) {
	numShaders := len(surf.Shaders)
	numTris := len(surf.Triangles)
	numVerts := surf.NumVerts()
	numFrames := surf.NumFrames()
	layout := layoutMD3Surface(numShaders, numTris, numVerts, numFrames)

	sh := md3SurfHeader{
		Ident:      MD3Magic,
		Flags:      surf.Flags,
		NumFrames:  int32(numFrames),
		NumShaders: int32(numShaders),
		NumVerts:   int32(numVerts),
		NumTris:    int32(numTris),
		OfsTris:    int32(layout.OfsTris),
		OfsShaders: int32(layout.OfsShaders),
		OfsSt:      int32(layout.OfsSt),
		OfsXyz:     int32(layout.OfsXyz),
		OfsEnd:     int32(layout.OfsEnd),
	}
	putName(sh.Name[:], surf.Name)
	binary.Write(buf, binary.LittleEndian, &sh)

	for i := range surf.Shaders {
		var name [md3NameLen]byte
		putName(name[:], surf.Shaders[i].Name)
		buf.Write(name[:])
		binary.Write(buf, binary.LittleEndian, surf.Shaders[i].Index)
	}

	for i := range surf.Triangles {
		binary.Write(buf, binary.LittleEndian, surf.Triangles[i].Indices)
	}

	binary.Write(buf, binary.LittleEndian, surf.TexCoords)

	for _, frameVerts := range surf.Vertices {
		for i := range frameVerts {
			v := &frameVerts[i]
			rec := struct {
				X, Y, Z         int16
				Zenith, Azimuth uint8
			}{
				X: encodePosition(v.Position[0]),
				Y: encodePosition(v.Position[1]),
				Z: encodePosition(v.Position[2]),
			}
			rec.Zenith, rec.Azimuth = EncodeNormal(v.Normal)
			binary.Write(buf, binary.LittleEndian, &rec)
		}
	}
}

// WriteMD3File encodes a model and writes it to disk, creating parent
// directories as needed.
func WriteMD3File(path string, m *MD3Model) error {
	data, err := EncodeMD3(m)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// putName writes a string into a fixed null-padded name field, truncating
// to always leave a terminating null.
func putName(dst []byte, s string) {
	n := len(dst) - 1
	if len(s) < n {
		n = len(s)
	}
	copy(dst, s[:n])
}
