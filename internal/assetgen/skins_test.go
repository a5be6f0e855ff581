package assetgen

import (
	"testing"

	"github.com/ludoplex/quakenite/pkg/formats"
)

func TestBuildPlayerSkins(t *testing.T) {
	c, _ := CharacterByModelName("chef")
	skins := BuildPlayerSkins(c)

	if len(skins) != 3 {
		t.Fatalf("got %d skins, want default/red/blue", len(skins))
	}
	wantVariants := []string{"default", "red", "blue"}
	for i, sf := range skins {
		if sf.Variant != wantVariants[i] {
			t.Errorf("skin %d variant = %q, want %q", i, sf.Variant, wantVariants[i])
		}
		if len(sf.Skin.Mappings) != 11 {
			t.Errorf("%s skin has %d mappings, want 8 surfaces + 3 tags", sf.Variant, len(sf.Skin.Mappings))
		}
	}

	def := skins[0].Skin
	if tex, ok := def.TextureFor("h_head"); !ok || tex != "models/players/chef/head.tga" {
		t.Errorf("default h_head = %q, %v", tex, ok)
	}
	if tex, _ := def.TextureFor("l_legs"); tex != "models/players/chef/lower.tga" {
		t.Errorf("default l_legs = %q", tex)
	}
	if tex, ok := def.TextureFor("tag_weapon"); !ok || tex != "" {
		t.Errorf("tag_weapon = %q, %v, want a bare tag entry", tex, ok)
	}

	red := skins[1].Skin
	if tex, _ := red.TextureFor("u_torso"); tex != "models/players/chef/upper_red.tga" {
		t.Errorf("red u_torso = %q", tex)
	}
}

func TestBuildPlayerSkinsRoundTrip(t *testing.T) {
	c, _ := CharacterByModelName("serpent")
	skins := BuildPlayerSkins(c)

	blue := skins[2].Skin
	parsed := formats.ParseSkin(blue.Encode())

	if len(parsed.Mappings) != len(blue.Mappings) {
		t.Fatalf("parsed %d mappings, wrote %d", len(parsed.Mappings), len(blue.Mappings))
	}
	if tex, _ := parsed.TextureFor("u_torso"); tex != "models/players/serpent/upper_blue.tga" {
		t.Errorf("parsed blue u_torso = %q", tex)
	}
	if m := parsed.Mappings[len(parsed.Mappings)-1]; !m.IsTag() {
		t.Errorf("last mapping %+v should be a tag", m)
	}
}

func TestBuildAnimConfig(t *testing.T) {
	c, _ := CharacterByModelName("steelheim")
	cfg := BuildAnimConfig(c)

	if cfg.Sex != formats.SexMale {
		t.Errorf("sex = %v, want male", cfg.Sex)
	}
	if cfg.Footsteps != formats.FootstepsMech {
		t.Errorf("footsteps = %v, want mech", cfg.Footsteps)
	}
	if cfg.HeadOffset != [3]int{0, 0, 0} {
		t.Errorf("head offset = %v, want zero", cfg.HeadOffset)
	}
	if len(cfg.Animations) != 25 {
		t.Errorf("got %d animations, want the standard 25", len(cfg.Animations))
	}
	if cfg.FrameCount() != 355 {
		t.Errorf("frame span = %d, want 355", cfg.FrameCount())
	}
	if cfg.ByName("LEGS_RUN") == nil || cfg.ByName("BOTH_DEATH1") == nil {
		t.Error("standard animation set is missing entries")
	}
}

func TestBuildAnimConfigRoundTrip(t *testing.T) {
	c, _ := CharacterByModelName("blitz")
	cfg := BuildAnimConfig(c)

	parsed, err := formats.ParseAnimConfig(cfg.Encode())
	if err != nil {
		t.Fatalf("generated animation.cfg does not parse: %v", err)
	}

	if parsed.Footsteps != formats.FootstepsFlesh {
		t.Errorf("parsed footsteps = %v, want flesh", parsed.Footsteps)
	}
	if len(parsed.Animations) != len(cfg.Animations) {
		t.Fatalf("parsed %d animations, wrote %d", len(parsed.Animations), len(cfg.Animations))
	}

	run := parsed.ByName("LEGS_RUN")
	if run == nil {
		t.Fatal("parsed config lost LEGS_RUN")
	}
	want := cfg.ByName("LEGS_RUN")
	if run.FirstFrame != want.FirstFrame || run.NumFrames != want.NumFrames ||
		run.LoopingFrames != want.LoopingFrames || run.FPS != want.FPS {
		t.Errorf("LEGS_RUN = %+v, want %+v", run, want)
	}
}
