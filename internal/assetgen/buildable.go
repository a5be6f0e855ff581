package assetgen

import (
	gomath "math"

	"github.com/ludoplex/quakenite/pkg/formats"
	"github.com/ludoplex/quakenite/pkg/math"
)

// All buildables share one plank texture; team ownership is shown by the
// engine tinting the entity, not by per-piece skins.
const buildableShader = "models/buildables/wood_planks.tga"

// roofThickness is the plate thickness of the roof piece in world units.
const roofThickness = 8

// BuildBuildableModel builds the single-frame structure model for one
// placeable piece. Geometry fills the piece's placement bounds.
func BuildBuildableModel(b Buildable) *formats.MD3Model {
	var surf formats.MD3Surface
	switch b.ModelName {
	case "ramp":
		surf = Wedge(b.ModelName, b.Mins, b.Maxs)
	case "roof":
		surf = roofPlate(b)
	default: // wall, floor
		surf = Box(b.ModelName, b.Mins, b.Maxs)
	}
	surf.Shaders = []formats.MD3Shader{{Name: buildableShader}}

	surfs := []formats.MD3Surface{surf}
	return &formats.MD3Model{
		Name:     "models/buildables/" + b.ModelName + ".md3",
		Frames:   []formats.MD3Frame{FrameBounds(b.ModelName, surfs, 0)},
		Surfaces: surfs,
	}
}

// roofPlate builds an angled plate sloping up along +X through the piece
// bounds. The plate is long enough for its top face to span the full X
// extent once rotated, so adjacent roof pieces meet at the eaves.
func roofPlate(b Buildable) formats.MD3Surface {
	run := b.Maxs.X - b.Mins.X
	rise := b.Maxs.Z - b.Mins.Z
	length := float32(gomath.Hypot(float64(run), float64(rise)))
	angle := float32(gomath.Atan2(float64(rise), float64(run)))

	surf := Box(b.ModelName,
		math.Vec3{X: -length / 2, Y: b.Mins.Y, Z: -roofThickness},
		math.Vec3{X: length / 2, Y: b.Maxs.Y, Z: 0},
	)

	// Rotate the plate nose-up, then lift it so the top face runs from
	// the low front edge to the high back edge.
	center := math.Vec3{
		X: (b.Mins.X + b.Maxs.X) / 2,
		Y: 0,
		Z: b.Mins.Z + rise/2,
	}
	m := math.Translate(center.X, center.Y, center.Z).Mul(math.RotateY(-angle))
	TransformSurface(&surf, m)

	return surf
}
