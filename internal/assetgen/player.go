package assetgen

import (
	"fmt"

	"github.com/ludoplex/quakenite/pkg/formats"
	"github.com/ludoplex/quakenite/pkg/math"
)

// PlayerModel holds the three stacked parts of one player model. The game
// mounts upper on lower's tag_torso and head on upper's tag_head.
type PlayerModel struct {
	Lower *formats.MD3Model
	Upper *formats.MD3Model
	Head  *formats.MD3Model
}

// Part proportions in world units before the character's visual scale is
// applied. The hip sits at the lower model's origin; legs reach down to
// the standing floor plane at -24.
var (
	legsMin  = math.Vec3{X: -10, Y: -10, Z: -24}
	legsMax  = math.Vec3{X: 10, Y: 10, Z: 0}
	torsoMin = math.Vec3{X: -10, Y: -12, Z: 0}
	torsoMax = math.Vec3{X: 10, Y: 12, Z: 24}
	headMin  = math.Vec3{X: -6, Y: -8, Z: 0}
	headMax  = math.Vec3{X: 6, Y: 8, Z: 12}
)

// weaponPitchDeg tilts the weapon tag's forward axis down toward rest.
const weaponPitchDeg = 10

// BuildPlayerModel assembles the three-part placeholder model for a
// character. Lower and upper replicate their static pose across numFrames
// frames so every animation index in the config resolves; the head is a
// single frame like stock player heads.
func BuildPlayerModel(c Character, numFrames int) *PlayerModel {
	if numFrames < 1 {
		numFrames = 1
	}
	s := c.VisualScale
	dir := playerDir(c.ModelName)

	lower := buildPlayerPart(partSpec{
		modelName: dir + "/lower.md3",
		surfName:  "l_legs",
		shader:    dir + "/lower.tga",
		min:       legsMin,
		max:       legsMax,
		scale:     s,
		tags: []formats.MD3Tag{
			{Name: "tag_torso", Origin: [3]float32{0, 0, 0}, Axis: identityAxes()},
		},
		numFrames:   numFrames,
		framePrefix: "lower",
	})

	weaponAxes := tagAxes(math.QuatFromAxisAngle(math.Vec3{X: 0, Y: 1, Z: 0}, degToRad(weaponPitchDeg)).ToMat4())
	upper := buildPlayerPart(partSpec{
		modelName: dir + "/upper.md3",
		surfName:  "u_torso",
		shader:    dir + "/upper.tga",
		min:       torsoMin,
		max:       torsoMax,
		scale:     s,
		tags: []formats.MD3Tag{
			{Name: "tag_torso", Origin: [3]float32{0, 0, 0}, Axis: identityAxes()},
			{Name: "tag_head", Origin: [3]float32{0, 0, torsoMax.Z * s}, Axis: identityAxes()},
			{Name: "tag_weapon", Origin: [3]float32{6 * s, -11 * s, 16 * s}, Axis: weaponAxes},
		},
		numFrames:   numFrames,
		framePrefix: "upper",
	})

	head := buildPlayerPart(partSpec{
		modelName: dir + "/head.md3",
		surfName:  "h_head",
		shader:    dir + "/head.tga",
		min:       headMin,
		max:       headMax,
		scale:     s,
		tags: []formats.MD3Tag{
			{Name: "tag_head", Origin: [3]float32{0, 0, 0}, Axis: identityAxes()},
		},
		numFrames:   1,
		framePrefix: "head",
	})

	return &PlayerModel{Lower: lower, Upper: upper, Head: head}
}

type partSpec struct {
	modelName   string
	surfName    string
	shader      string
	min, max    math.Vec3
	scale       float32
	tags        []formats.MD3Tag
	numFrames   int
	framePrefix string
}

func buildPlayerPart(spec partSpec) *formats.MD3Model {
	surf := Box(spec.surfName, spec.min, spec.max)
	if spec.scale != 0 && spec.scale != 1 {
		ScaleSurface(&surf, spec.scale)
	}
	surf.Shaders = []formats.MD3Shader{{Name: spec.shader}}
	ReplicateFrames(&surf, spec.numFrames)

	surfs := []formats.MD3Surface{surf}
	frames := make([]formats.MD3Frame, spec.numFrames)
	tagGroups := make([][]formats.MD3Tag, spec.numFrames)
	for f := 0; f < spec.numFrames; f++ {
		frames[f] = FrameBounds(fmt.Sprintf("%s_%d", spec.framePrefix, f), surfs, f)
		group := make([]formats.MD3Tag, len(spec.tags))
		copy(group, spec.tags)
		tagGroups[f] = group
	}

	return &formats.MD3Model{
		Name:     spec.modelName,
		Frames:   frames,
		Tags:     tagGroups,
		Surfaces: surfs,
	}
}

func identityAxes() [3][3]float32 {
	return [3][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// tagAxes extracts MD3 tag axes (forward, left, up) from a rotation matrix.
func tagAxes(m math.Mat4) [3][3]float32 {
	a := m.Axes()
	return [3][3]float32{a[0].Array(), a[1].Array(), a[2].Array()}
}
