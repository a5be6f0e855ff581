package formats

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseAnimConfig_Directives(t *testing.T) {
	input := strings.Join([]string{
		"// hand-written config",
		"",
		"sex f",
		"footsteps mech",
		"headoffset 0 0 -6",
		"fixedtorso", // unknown directive, skipped
		"",
		"BOTH_DEATH1         0       30      0       20      // Death forward",
		"torso_attack        30      8       0       15",
		"LEGS_WALK           38      12      12      20      // Walk",
	}, "\n")

	cfg, err := ParseAnimConfig([]byte(input))
	if err != nil {
		t.Fatalf("ParseAnimConfig failed: %v", err)
	}

	if cfg.Sex != SexFemale {
		t.Errorf("Sex = %v, want SexFemale", cfg.Sex)
	}
	if cfg.Footsteps != FootstepsMech {
		t.Errorf("Footsteps = %v, want FootstepsMech", cfg.Footsteps)
	}
	if cfg.HeadOffset != [3]int{0, 0, -6} {
		t.Errorf("HeadOffset = %v, want [0 0 -6]", cfg.HeadOffset)
	}
	if len(cfg.Animations) != 3 {
		t.Fatalf("len(Animations) = %d, want 3", len(cfg.Animations))
	}

	death := cfg.Animations[0]
	if death.Name != "BOTH_DEATH1" || death.FirstFrame != 0 || death.NumFrames != 30 ||
		death.LoopingFrames != 0 || death.FPS != 20 {
		t.Errorf("BOTH_DEATH1 = %+v", death)
	}
	if death.Comment != "Death forward" {
		t.Errorf("Comment = %q, want %q", death.Comment, "Death forward")
	}

	// Name case is preserved, only the keyword match is case-insensitive.
	attack := cfg.Animations[1]
	if attack.Name != "torso_attack" || attack.FPS != 15 || attack.Comment != "" {
		t.Errorf("torso_attack = %+v", attack)
	}
}

func TestParseAnimConfig_Defaults(t *testing.T) {
	cfg, err := ParseAnimConfig(nil)
	if err != nil {
		t.Fatalf("ParseAnimConfig failed: %v", err)
	}
	if cfg.Sex != SexMale {
		t.Errorf("default Sex = %v, want SexMale", cfg.Sex)
	}
	if cfg.Footsteps != FootstepsBoot {
		t.Errorf("default Footsteps = %v, want FootstepsBoot", cfg.Footsteps)
	}
	if len(cfg.Animations) != 0 || cfg.FrameCount() != 0 {
		t.Errorf("empty config has animations: %+v", cfg.Animations)
	}
}

func TestParseAnimConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown sex", "sex x"},
		{"unknown footsteps", "footsteps sneakers"},
		{"missing sex value", "sex"},
		{"short headoffset", "headoffset 1 2"},
		{"bad headoffset value", "headoffset 1 2 three"},
		{"short animation line", "LEGS_WALK 0 12 12"},
		{"bad animation value", "LEGS_WALK 0 twelve 12 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseAnimConfig([]byte(tt.input))
			if !errors.Is(err, ErrInvalidAnimConfig) {
				t.Fatalf("error = %v, want ErrInvalidAnimConfig", err)
			}
			if cfg != nil {
				t.Error("expected nil config on parse error")
			}
		})
	}
}

func TestStandardAnimations(t *testing.T) {
	anims := StandardAnimations()
	if len(anims) != 25 {
		t.Fatalf("len = %d, want 25", len(anims))
	}

	if anims[0].Name != "BOTH_DEATH1" || anims[0].FirstFrame != 0 {
		t.Errorf("first animation = %+v", anims[0])
	}

	// Ranges are contiguous with no gaps or overlaps.
	next := 0
	for _, a := range anims {
		if a.FirstFrame != next {
			t.Errorf("%s starts at %d, want %d", a.Name, a.FirstFrame, next)
		}
		next = a.FirstFrame + a.NumFrames
	}

	cfg := &AnimConfig{Animations: anims}
	if got := cfg.FrameCount(); got != 355 {
		t.Errorf("FrameCount = %d, want 355", got)
	}

	run := cfg.ByName("LEGS_RUN")
	if run == nil {
		t.Fatal("LEGS_RUN not found")
	}
	if run.FirstFrame != 231 || run.NumFrames != 10 || run.LoopingFrames != 10 || run.FPS != 24 {
		t.Errorf("LEGS_RUN = %+v", run)
	}
}

func TestAnimConfig_ByName(t *testing.T) {
	cfg := &AnimConfig{Animations: StandardAnimations()}

	if a := cfg.ByName("legs_walk"); a == nil || a.Name != "LEGS_WALK" {
		t.Errorf("case-insensitive lookup failed: %+v", a)
	}
	if a := cfg.ByName("LEGS_MOONWALK"); a != nil {
		t.Errorf("missing animation returned %+v", a)
	}
}

func TestAnimConfig_EncodeLayout(t *testing.T) {
	cfg := &AnimConfig{
		Sex:        SexNeuter,
		Footsteps:  FootstepsEnergy,
		HeadOffset: [3]int{0, 0, -4},
		Animations: StandardAnimations(),
	}
	out := string(cfg.Encode())

	for _, want := range []string{
		"sex n",
		"footsteps energy",
		"headoffset 0 0 -4",
		"// BOTH animations",
		"// TORSO animations",
		"// LEGS animations",
		"BOTH_DEATH1         0       30      0       20      // Death forward",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded config missing %q", want)
		}
	}

	// Sections are separated by a blank line.
	if !strings.Contains(out, "\n\n// TORSO animations") {
		t.Error("no blank line before TORSO section")
	}

	// Lines without comments carry no trailing padding.
	bare := &AnimConfig{Animations: []AnimDef{{Name: "LEGS_IDLE", NumFrames: 30, LoopingFrames: 30, FPS: 20}}}
	for _, line := range strings.Split(string(bare.Encode()), "\n") {
		if strings.HasSuffix(line, " ") {
			t.Errorf("trailing whitespace in line %q", line)
		}
	}
}

func TestAnimConfig_RoundTrip(t *testing.T) {
	orig := &AnimConfig{
		Sex:        SexFemale,
		Footsteps:  FootstepsFlesh,
		HeadOffset: [3]int{2, 0, -6},
		Animations: StandardAnimations(),
	}

	parsed, err := ParseAnimConfig(orig.Encode())
	if err != nil {
		t.Fatalf("reparsing encoded config failed: %v", err)
	}

	if parsed.Sex != orig.Sex || parsed.Footsteps != orig.Footsteps || parsed.HeadOffset != orig.HeadOffset {
		t.Errorf("header mismatch: %+v", parsed)
	}
	if len(parsed.Animations) != len(orig.Animations) {
		t.Fatalf("len(Animations) = %d, want %d", len(parsed.Animations), len(orig.Animations))
	}
	for i, want := range orig.Animations {
		if parsed.Animations[i] != want {
			t.Errorf("animation %d = %+v, want %+v", i, parsed.Animations[i], want)
		}
	}
}

func TestAnimConfig_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "players", "chef", "animation.cfg")
	orig := &AnimConfig{Footsteps: FootstepsBoot, Animations: StandardAnimations()}

	if err := WriteAnimConfigFile(path, orig); err != nil {
		t.Fatalf("WriteAnimConfigFile failed: %v", err)
	}
	parsed, err := ParseAnimConfigFile(path)
	if err != nil {
		t.Fatalf("ParseAnimConfigFile failed: %v", err)
	}
	if len(parsed.Animations) != 25 {
		t.Errorf("len(Animations) = %d, want 25", len(parsed.Animations))
	}
	if !bytes.Equal(parsed.Encode(), orig.Encode()) {
		t.Error("re-encoded config differs from original")
	}
}

func TestSexFootstepsTokens(t *testing.T) {
	for _, s := range []Sex{SexMale, SexFemale, SexNeuter} {
		got, err := ParseSex(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSex(%q) = %v, %v", s.String(), got, err)
		}
	}
	for _, f := range []Footsteps{FootstepsNormal, FootstepsBoot, FootstepsFlesh, FootstepsMech, FootstepsEnergy} {
		got, err := ParseFootsteps(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFootsteps(%q) = %v, %v", f.String(), got, err)
		}
	}
}
