package assetgen

import (
	gomath "math"

	"github.com/ludoplex/quakenite/pkg/formats"
	"github.com/ludoplex/quakenite/pkg/math"
)

// meshBuilder accumulates vertex slots, texture coordinates and triangles
// for one surface. Faces do not share vertex slots, so every slot carries
// its face's normal.
type meshBuilder struct {
	verts []formats.MD3Vertex
	uvs   []formats.MD3TexCoord
	tris  []formats.MD3Triangle
}

// quad appends a four-corner face split into two triangles. Corners wind
// counter-clockwise seen from outside; the face normal follows from the
// winding by the right-hand rule.
func (b *meshBuilder) quad(corners [4]math.Vec3) {
	e1 := corners[1].Sub(corners[0])
	e2 := corners[2].Sub(corners[0])
	normal := e1.Cross(e2).Normalize()

	base := int32(len(b.verts))
	uv := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for i, c := range corners {
		b.verts = append(b.verts, formats.MD3Vertex{Position: c.Array(), Normal: normal.Array()})
		b.uvs = append(b.uvs, formats.MD3TexCoord{S: uv[i].X, T: uv[i].Y})
	}
	b.tris = append(b.tris,
		formats.MD3Triangle{Indices: [3]int32{base, base + 1, base + 2}},
		formats.MD3Triangle{Indices: [3]int32{base, base + 2, base + 3}},
	)
}

// tri appends a single triangle face, wound counter-clockwise from outside.
func (b *meshBuilder) tri(corners [3]math.Vec3) {
	e1 := corners[1].Sub(corners[0])
	e2 := corners[2].Sub(corners[0])
	normal := e1.Cross(e2).Normalize()

	base := int32(len(b.verts))
	uv := [3]math.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	for i, c := range corners {
		b.verts = append(b.verts, formats.MD3Vertex{Position: c.Array(), Normal: normal.Array()})
		b.uvs = append(b.uvs, formats.MD3TexCoord{S: uv[i].X, T: uv[i].Y})
	}
	b.tris = append(b.tris, formats.MD3Triangle{Indices: [3]int32{base, base + 1, base + 2}})
}

// surface finalizes the accumulated geometry into a single-frame surface.
func (b *meshBuilder) surface(name string) formats.MD3Surface {
	return formats.MD3Surface{
		Name:      name,
		Triangles: b.tris,
		TexCoords: b.uvs,
		Vertices:  [][]formats.MD3Vertex{b.verts},
	}
}

// Box builds a single-frame axis-aligned box surface spanning min..max,
// with per-face normals and a planar 0..1 texture mapping per face.
func Box(name string, min, max math.Vec3) formats.MD3Surface {
	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z

	var b meshBuilder
	// +X
	b.quad([4]math.Vec3{{X: x1, Y: y0, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z1}, {X: x1, Y: y0, Z: z1}})
	// -X
	b.quad([4]math.Vec3{{X: x0, Y: y0, Z: z0}, {X: x0, Y: y0, Z: z1}, {X: x0, Y: y1, Z: z1}, {X: x0, Y: y1, Z: z0}})
	// +Y
	b.quad([4]math.Vec3{{X: x0, Y: y1, Z: z0}, {X: x0, Y: y1, Z: z1}, {X: x1, Y: y1, Z: z1}, {X: x1, Y: y1, Z: z0}})
	// -Y
	b.quad([4]math.Vec3{{X: x0, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z1}, {X: x0, Y: y0, Z: z1}})
	// +Z
	b.quad([4]math.Vec3{{X: x0, Y: y0, Z: z1}, {X: x1, Y: y0, Z: z1}, {X: x1, Y: y1, Z: z1}, {X: x0, Y: y1, Z: z1}})
	// -Z
	b.quad([4]math.Vec3{{X: x0, Y: y0, Z: z0}, {X: x0, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x1, Y: y0, Z: z0}})

	return b.surface(name)
}

// Wedge builds a single-frame ramp surface spanning min..max: flat floor,
// vertical back face at max X, and a slope rising from the min-X floor
// edge to the max-X top edge.
func Wedge(name string, min, max math.Vec3) formats.MD3Surface {
	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z

	var b meshBuilder
	// Floor (-Z)
	b.quad([4]math.Vec3{{X: x0, Y: y0, Z: z0}, {X: x0, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x1, Y: y0, Z: z0}})
	// Back (+X)
	b.quad([4]math.Vec3{{X: x1, Y: y0, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z1}, {X: x1, Y: y0, Z: z1}})
	// Slope
	b.quad([4]math.Vec3{{X: x0, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z1}, {X: x1, Y: y1, Z: z1}, {X: x0, Y: y1, Z: z0}})
	// Sides
	b.tri([3]math.Vec3{{X: x0, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z1}})
	b.tri([3]math.Vec3{{X: x0, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z1}, {X: x1, Y: y1, Z: z0}})

	return b.surface(name)
}

// TransformSurface applies the matrix to every vertex of every frame.
// Normals are rotated with the direction part and renormalized.
func TransformSurface(surf *formats.MD3Surface, m math.Mat4) {
	for f := range surf.Vertices {
		verts := surf.Vertices[f]
		for i := range verts {
			pos := m.TransformVec3(math.FromArray(verts[i].Position))
			normal := m.TransformDirection(math.FromArray(verts[i].Normal)).Normalize()
			verts[i].Position = pos.Array()
			verts[i].Normal = normal.Array()
		}
	}
}

// ScaleSurface scales every vertex position uniformly about the origin.
func ScaleSurface(surf *formats.MD3Surface, s float32) {
	for f := range surf.Vertices {
		verts := surf.Vertices[f]
		for i := range verts {
			verts[i].Position = math.FromArray(verts[i].Position).Scale(s).Array()
		}
	}
}

// ReplicateFrames extends a single-frame surface to numFrames frames, each
// holding its own copy of the frame 0 vertices.
func ReplicateFrames(surf *formats.MD3Surface, numFrames int) {
	if len(surf.Vertices) != 1 || numFrames <= 1 {
		return
	}
	frame0 := surf.Vertices[0]
	frames := make([][]formats.MD3Vertex, numFrames)
	frames[0] = frame0
	for f := 1; f < numFrames; f++ {
		verts := make([]formats.MD3Vertex, len(frame0))
		copy(verts, frame0)
		frames[f] = verts
	}
	surf.Vertices = frames
}

// SurfaceBounds returns the vertex extents of one frame of the surface.
func SurfaceBounds(surf *formats.MD3Surface, frame int) (min, max math.Vec3) {
	min = math.Vec3{X: 1e10, Y: 1e10, Z: 1e10}
	max = math.Vec3{X: -1e10, Y: -1e10, Z: -1e10}
	for _, v := range surf.Vertices[frame] {
		p := math.FromArray(v.Position)
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// FrameBounds derives an MD3 frame record from the vertex extents of the
// given surfaces: box bounds, origin at the model origin, and the radius
// of the bounding sphere around it.
func FrameBounds(name string, surfs []formats.MD3Surface, frame int) formats.MD3Frame {
	min := math.Vec3{X: 1e10, Y: 1e10, Z: 1e10}
	max := math.Vec3{X: -1e10, Y: -1e10, Z: -1e10}
	for i := range surfs {
		smin, smax := SurfaceBounds(&surfs[i], frame)
		min = min.Min(smin)
		max = max.Max(smax)
	}

	// Bounding sphere must cover the whole box as seen from the origin
	var radius float32
	for _, x := range [2]float32{min.X, max.X} {
		for _, y := range [2]float32{min.Y, max.Y} {
			for _, z := range [2]float32{min.Z, max.Z} {
				d := math.Vec3{X: x, Y: y, Z: z}.Length()
				if d > radius {
					radius = d
				}
			}
		}
	}

	return formats.MD3Frame{
		MinBounds: min.Array(),
		MaxBounds: max.Array(),
		Origin:    [3]float32{0, 0, 0},
		Radius:    radius,
		Name:      name,
	}
}

// degToRad converts degrees to radians.
func degToRad(deg float32) float32 {
	return deg * gomath.Pi / 180
}
