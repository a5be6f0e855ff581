package assetgen

import (
	"reflect"
	"testing"

	"github.com/ludoplex/quakenite/pkg/formats"
)

func TestBuildPlayerModel(t *testing.T) {
	c, ok := CharacterByModelName("chef")
	if !ok {
		t.Fatal("chef missing from roster")
	}
	model := BuildPlayerModel(c, 5)

	parts := []struct {
		name   string
		model  *formats.MD3Model
		frames int
		surf   string
		tags   []string
	}{
		{"lower", model.Lower, 5, "l_legs", []string{"tag_torso"}},
		{"upper", model.Upper, 5, "u_torso", []string{"tag_torso", "tag_head", "tag_weapon"}},
		{"head", model.Head, 1, "h_head", []string{"tag_head"}},
	}

	for _, p := range parts {
		t.Run(p.name, func(t *testing.T) {
			if err := p.model.Validate(); err != nil {
				t.Fatalf("%s does not validate: %v", p.name, err)
			}
			if p.model.NumFrames() != p.frames {
				t.Errorf("%s has %d frames, want %d", p.name, p.model.NumFrames(), p.frames)
			}
			if p.model.SurfaceByName(p.surf) == nil {
				t.Errorf("%s is missing surface %q", p.name, p.surf)
			}
			if names := p.model.TagNames(); !reflect.DeepEqual(names, p.tags) {
				t.Errorf("%s tags = %v, want %v", p.name, names, p.tags)
			}
			if v := p.model.CheckLimits(); len(v) != 0 {
				t.Errorf("%s exceeds format limits: %v", p.name, v)
			}
		})
	}
}

func TestBuildPlayerModelRoundTrip(t *testing.T) {
	c, _ := CharacterByModelName("blitz")
	model := BuildPlayerModel(c, 2)

	data, err := formats.EncodeMD3(model.Upper)
	if err != nil {
		t.Fatalf("EncodeMD3 failed: %v", err)
	}
	decoded, err := formats.ParseMD3(data)
	if err != nil {
		t.Fatalf("ParseMD3 of generated model failed: %v", err)
	}

	if decoded.Name != "models/players/blitz/upper.md3" {
		t.Errorf("model name = %q", decoded.Name)
	}
	if got := decoded.ShaderNames(); len(got) != 1 || got[0] != "models/players/blitz/upper.tga" {
		t.Errorf("shaders = %v, want the upper part texture", got)
	}

	tag := decoded.TagByName(0, "tag_weapon")
	if tag == nil {
		t.Fatal("upper model lost tag_weapon in the round trip")
	}
	// The weapon tag pitches forward-down toward rest.
	if tag.Axis[0][2] >= 0 {
		t.Errorf("weapon forward axis = %v, want a downward pitch", tag.Axis[0])
	}
}

func TestBuildPlayerModelScale(t *testing.T) {
	big, _ := CharacterByModelName("chef")       // scale 1.1
	small, _ := CharacterByModelName("matthias") // scale 0.85

	bigModel := BuildPlayerModel(big, 1)
	smallModel := BuildPlayerModel(small, 1)

	bigMax := bigModel.Lower.Frames[0].MaxBounds
	smallMax := smallModel.Lower.Frames[0].MaxBounds
	if bigMax[0] <= smallMax[0] {
		t.Errorf("scale 1.1 legs span %v, scale 0.85 span %v", bigMax, smallMax)
	}
	if absf(bigMax[0]-11) > 0.001 {
		t.Errorf("chef legs reach x=%v, want 11 (10 * 1.1)", bigMax[0])
	}

	// The head tag rides the scaled torso height.
	headTag := bigModel.Upper.TagByName(0, "tag_head")
	if headTag == nil {
		t.Fatal("upper model has no tag_head")
	}
	if absf(headTag.Origin[2]-26.4) > 0.01 {
		t.Errorf("tag_head origin z = %v, want 26.4 (24 * 1.1)", headTag.Origin[2])
	}
}

func TestBuildPlayerModelFrameClamp(t *testing.T) {
	c, _ := CharacterByModelName("six")
	model := BuildPlayerModel(c, 0)

	if model.Lower.NumFrames() != 1 {
		t.Errorf("zero requested frames built %d, want 1", model.Lower.NumFrames())
	}
	if err := model.Lower.Validate(); err != nil {
		t.Errorf("clamped model does not validate: %v", err)
	}
}

func TestBuildPlayerModelFramesShareBounds(t *testing.T) {
	c, _ := CharacterByModelName("holster")
	model := BuildPlayerModel(c, 3)

	first := model.Lower.Frames[0]
	for f, frame := range model.Lower.Frames {
		if frame.MinBounds != first.MinBounds || frame.MaxBounds != first.MaxBounds {
			t.Errorf("frame %d bounds %v..%v differ from frame 0", f, frame.MinBounds, frame.MaxBounds)
		}
		if frame.Radius != first.Radius {
			t.Errorf("frame %d radius %v differs from frame 0", f, frame.Radius)
		}
	}
}
