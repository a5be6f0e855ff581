// Package formats provides codecs for Quake III asset file formats.
// MD3 format codec for multi-frame vertex-animated triangle models.
package formats

import (
	"errors"
	"fmt"
)

// MD3 format errors.
var (
	ErrInvalidMD3Magic       = errors.New("invalid MD3 magic: expected 'IDP3'")
	ErrUnsupportedMD3Version = errors.New("unsupported MD3 version")
	ErrTruncatedMD3Data      = errors.New("truncated MD3 data")
	ErrCorruptOffsetChain    = errors.New("corrupt MD3 surface offset chain")
	ErrMD3IndexOutOfRange    = errors.New("MD3 triangle index out of range")
	ErrMD3StructuralMismatch = errors.New("MD3 structural mismatch")
)

// MD3Magic is the 4-byte ident "IDP3" as a little-endian int32.
const MD3Magic = 0x33504449

// MD3Version is the only supported format version.
const MD3Version = 15

// MD3XYZScale converts quantized vertex coordinates to world units.
const MD3XYZScale = 1.0 / 64.0

// Format limits, as documented for the original engine. The codec itself
// does not enforce them; CheckLimits reports violations for tooling.
const (
	MD3MaxFrames    = 1024
	MD3MaxTags      = 16
	MD3MaxSurfaces  = 32
	MD3MaxVerts     = 4096
	MD3MaxTriangles = 8192
	MD3MaxShaders   = 256
)

// Fixed record sizes in bytes.
const (
	md3HeaderSize     = 108
	md3FrameSize      = 56
	md3TagSize        = 112
	md3SurfHeaderSize = 108
	md3ShaderSize     = 68
	md3TriangleSize   = 12
	md3TexCoordSize   = 8
	md3VertexSize     = 8

	md3NameLen      = 64
	md3FrameNameLen = 16
)

// MD3Frame holds per-frame bounding data.
type MD3Frame struct {
	MinBounds [3]float32 // Bounding box minimum corner
	MaxBounds [3]float32 // Bounding box maximum corner
	Origin    [3]float32 // Local origin
	Radius    float32    // Bounding sphere radius
	Name      string     // Frame name (up to 15 chars)
}

// MD3Tag is a named attachment transform sampled at one frame.
// Other models align to this one by matching tag names.
type MD3Tag struct {
	Name   string        // Tag name, e.g. "tag_weapon"
	Origin [3]float32    // Attachment position
	Axis   [3][3]float32 // Orthonormal orientation axes
}

// MD3Shader references a texture by path. The index is recomputed by
// engines at load time; the codec persists it opaquely.
type MD3Shader struct {
	Name  string
	Index int32
}

// MD3Triangle indexes three vertices in a surface's vertex array.
type MD3Triangle struct {
	Indices [3]int32
}

// MD3TexCoord is one (s,t) pair per vertex slot, shared across frames.
type MD3TexCoord struct {
	S, T float32
}

// MD3Vertex is a decoded vertex: position in world units and a unit normal.
type MD3Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// MD3Surface is one independently-textured mesh piece. Vertices are
// frame-major: Vertices[frame][slot], with the slot count equal to
// len(TexCoords) for every frame.
type MD3Surface struct {
	Name      string
	Flags     int32
	Shaders   []MD3Shader
	Triangles []MD3Triangle
	TexCoords []MD3TexCoord
	Vertices  [][]MD3Vertex
}

// NumVerts returns the vertex slot count of the surface.
func (s *MD3Surface) NumVerts() int {
	return len(s.TexCoords)
}

// NumFrames returns the number of animation frames in the surface.
func (s *MD3Surface) NumFrames() int {
	return len(s.Vertices)
}

// MD3Model is a parsed MD3 file. Tags are frame-major: Tags[frame][slot],
// with every frame holding the same slot count and slot i naming the same
// logical attachment point across frames.
type MD3Model struct {
	Name     string
	Flags    int32
	Frames   []MD3Frame
	Tags     [][]MD3Tag
	Surfaces []MD3Surface
}

// NumFrames returns the number of animation frames.
func (m *MD3Model) NumFrames() int {
	return len(m.Frames)
}

// NumTags returns the number of tag slots per frame.
func (m *MD3Model) NumTags() int {
	if len(m.Tags) == 0 {
		return 0
	}
	return len(m.Tags[0])
}

// NumSurfaces returns the number of surfaces.
func (m *MD3Model) NumSurfaces() int {
	return len(m.Surfaces)
}

// SurfaceByName returns the surface with the given name, or nil.
func (m *MD3Model) SurfaceByName(name string) *MD3Surface {
	for i := range m.Surfaces {
		if m.Surfaces[i].Name == name {
			return &m.Surfaces[i]
		}
	}
	return nil
}

// TagByName returns the named tag at the given frame, or nil.
func (m *MD3Model) TagByName(frame int, name string) *MD3Tag {
	if frame < 0 || frame >= len(m.Tags) {
		return nil
	}
	group := m.Tags[frame]
	for i := range group {
		if group[i].Name == name {
			return &group[i]
		}
	}
	return nil
}

// TagNames returns the tag names of the first frame, in slot order.
func (m *MD3Model) TagNames() []string {
	if len(m.Tags) == 0 {
		return nil
	}
	names := make([]string, len(m.Tags[0]))
	for i, tag := range m.Tags[0] {
		names[i] = tag.Name
	}
	return names
}

// TotalVertexCount returns the vertex slot count summed over surfaces.
func (m *MD3Model) TotalVertexCount() int {
	total := 0
	for i := range m.Surfaces {
		total += m.Surfaces[i].NumVerts()
	}
	return total
}

// TotalTriangleCount returns the triangle count summed over surfaces.
func (m *MD3Model) TotalTriangleCount() int {
	total := 0
	for i := range m.Surfaces {
		total += len(m.Surfaces[i].Triangles)
	}
	return total
}

// ShaderNames returns the unique shader names referenced by all surfaces,
// in first-appearance order.
func (m *MD3Model) ShaderNames() []string {
	seen := make(map[string]bool)
	var names []string
	for i := range m.Surfaces {
		for _, sh := range m.Surfaces[i].Shaders {
			if !seen[sh.Name] {
				seen[sh.Name] = true
				names = append(names, sh.Name)
			}
		}
	}
	return names
}

// Validate checks the structural invariants required to encode the model:
// at least one frame, every tag group sized to the same slot count, every
// surface's frame count matching the model's, vertex arrays matching the
// texcoord count, and triangle indices within bounds.
func (m *MD3Model) Validate() error {
	if len(m.Frames) == 0 {
		return fmt.Errorf("%w: model has no frames", ErrMD3StructuralMismatch)
	}

	numTags := m.NumTags()
	if len(m.Tags) != 0 && len(m.Tags) != len(m.Frames) {
		return fmt.Errorf("%w: %d tag groups for %d frames", ErrMD3StructuralMismatch, len(m.Tags), len(m.Frames))
	}
	for f, group := range m.Tags {
		if len(group) != numTags {
			return fmt.Errorf("%w: frame %d has %d tags, expected %d", ErrMD3StructuralMismatch, f, len(group), numTags)
		}
	}

	for i := range m.Surfaces {
		surf := &m.Surfaces[i]
		if surf.NumFrames() != len(m.Frames) {
			return fmt.Errorf("%w: surface %q has %d frames, model has %d",
				ErrMD3StructuralMismatch, surf.Name, surf.NumFrames(), len(m.Frames))
		}
		numVerts := surf.NumVerts()
		for f, verts := range surf.Vertices {
			if len(verts) != numVerts {
				return fmt.Errorf("%w: surface %q frame %d has %d vertices, expected %d",
					ErrMD3StructuralMismatch, surf.Name, f, len(verts), numVerts)
			}
		}
		for t, tri := range surf.Triangles {
			for _, idx := range tri.Indices {
				if idx < 0 || int(idx) >= numVerts {
					return fmt.Errorf("%w: surface %q triangle %d references vertex %d of %d",
						ErrMD3IndexOutOfRange, surf.Name, t, idx, numVerts)
				}
			}
		}
	}
	return nil
}

// CheckLimits reports every format limit the model exceeds. The original
// engine rejects models past these limits even though the wire format can
// express them.
func (m *MD3Model) CheckLimits() []string {
	var violations []string
	if len(m.Frames) > MD3MaxFrames {
		violations = append(violations, fmt.Sprintf("%d frames exceeds limit %d", len(m.Frames), MD3MaxFrames))
	}
	if m.NumTags() > MD3MaxTags {
		violations = append(violations, fmt.Sprintf("%d tags exceeds limit %d", m.NumTags(), MD3MaxTags))
	}
	if len(m.Surfaces) > MD3MaxSurfaces {
		violations = append(violations, fmt.Sprintf("%d surfaces exceeds limit %d", len(m.Surfaces), MD3MaxSurfaces))
	}
	for i := range m.Surfaces {
		surf := &m.Surfaces[i]
		if surf.NumVerts() > MD3MaxVerts {
			violations = append(violations, fmt.Sprintf("surface %q: %d vertices exceeds limit %d", surf.Name, surf.NumVerts(), MD3MaxVerts))
		}
		if len(surf.Triangles) > MD3MaxTriangles {
			violations = append(violations, fmt.Sprintf("surface %q: %d triangles exceeds limit %d", surf.Name, len(surf.Triangles), MD3MaxTriangles))
		}
		if len(surf.Shaders) > MD3MaxShaders {
			violations = append(violations, fmt.Sprintf("surface %q: %d shaders exceeds limit %d", surf.Name, len(surf.Shaders), MD3MaxShaders))
		}
	}
	return violations
}
