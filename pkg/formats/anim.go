package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Animation config errors.
var (
	ErrInvalidAnimConfig = errors.New("invalid animation config")
)

// Sex selects the voice set for a player model.
type Sex int

const (
	SexMale Sex = iota
	SexFemale
	SexNeuter
)

// String returns the single-letter config token for the sex.
func (s Sex) String() string {
	switch s {
	case SexFemale:
		return "f"
	case SexNeuter:
		return "n"
	default:
		return "m"
	}
}

// ParseSex parses a sex token from an animation config.
func ParseSex(tok string) (Sex, error) {
	switch strings.ToLower(tok) {
	case "m":
		return SexMale, nil
	case "f":
		return SexFemale, nil
	case "n":
		return SexNeuter, nil
	default:
		return SexMale, fmt.Errorf("%w: unknown sex %q", ErrInvalidAnimConfig, tok)
	}
}

// Footsteps selects the footstep sound set for a player model.
type Footsteps int

const (
	FootstepsNormal Footsteps = iota
	FootstepsBoot
	FootstepsFlesh
	FootstepsMech
	FootstepsEnergy
)

// String returns the config token for the footstep type.
func (f Footsteps) String() string {
	switch f {
	case FootstepsBoot:
		return "boot"
	case FootstepsFlesh:
		return "flesh"
	case FootstepsMech:
		return "mech"
	case FootstepsEnergy:
		return "energy"
	default:
		return "normal"
	}
}

// ParseFootsteps parses a footsteps token from an animation config.
func ParseFootsteps(tok string) (Footsteps, error) {
	switch strings.ToLower(tok) {
	case "normal":
		return FootstepsNormal, nil
	case "boot":
		return FootstepsBoot, nil
	case "flesh":
		return FootstepsFlesh, nil
	case "mech":
		return FootstepsMech, nil
	case "energy":
		return FootstepsEnergy, nil
	default:
		return FootstepsNormal, fmt.Errorf("%w: unknown footsteps %q", ErrInvalidAnimConfig, tok)
	}
}

// AnimDef describes one named animation as a range of model frames.
type AnimDef struct {
	Name          string
	FirstFrame    int
	NumFrames     int
	LoopingFrames int
	FPS           int
	Comment       string
}

// AnimConfig represents a player model animation.cfg.
type AnimConfig struct {
	Sex        Sex
	Footsteps  Footsteps
	HeadOffset [3]int
	Animations []AnimDef
}

// ByName returns the animation with the given name (case-insensitive),
// or nil if the config does not define it.
func (c *AnimConfig) ByName(name string) *AnimDef {
	for i := range c.Animations {
		if strings.EqualFold(c.Animations[i].Name, name) {
			return &c.Animations[i]
		}
	}
	return nil
}

// FrameCount returns the number of model frames the config spans.
func (c *AnimConfig) FrameCount() int {
	total := 0
	for _, a := range c.Animations {
		if end := a.FirstFrame + a.NumFrames; end > total {
			total = end
		}
	}
	return total
}

// StandardAnimations returns the standard Q3 player animation set.
// Frame ranges are contiguous: deaths first, then torso, then legs.
func StandardAnimations() []AnimDef {
	frame := 0
	anims := make([]AnimDef, 0, 25)
	add := func(name string, numFrames, looping, fps int, comment string) {
		anims = append(anims, AnimDef{
			Name:          name,
			FirstFrame:    frame,
			NumFrames:     numFrames,
			LoopingFrames: looping,
			FPS:           fps,
			Comment:       comment,
		})
		frame += numFrames
	}

	add("BOTH_DEATH1", 30, 0, 20, "Death forward")
	add("BOTH_DEAD1", 1, 0, 20, "Dead pose 1")
	add("BOTH_DEATH2", 30, 0, 20, "Death backward")
	add("BOTH_DEAD2", 1, 0, 20, "Dead pose 2")
	add("BOTH_DEATH3", 30, 0, 20, "Death spin")
	add("BOTH_DEAD3", 1, 0, 20, "Dead pose 3")

	add("TORSO_GESTURE", 30, 0, 20, "Taunt")
	add("TORSO_ATTACK", 8, 0, 20, "Primary fire")
	add("TORSO_ATTACK2", 8, 0, 20, "Alt fire")
	add("TORSO_DROP", 5, 0, 20, "Lower weapon")
	add("TORSO_RAISE", 5, 0, 20, "Raise weapon")
	add("TORSO_STAND", 30, 30, 20, "Idle armed")
	add("TORSO_STAND2", 30, 30, 20, "Idle unarmed")

	add("LEGS_WALKCR", 10, 10, 15, "Crouch walk")
	add("LEGS_WALK", 12, 12, 20, "Walk")
	add("LEGS_RUN", 10, 10, 24, "Run")
	add("LEGS_BACK", 10, 10, 20, "Backpedal")
	add("LEGS_SWIM", 10, 10, 20, "Swim")
	add("LEGS_JUMP", 8, 0, 20, "Jump")
	add("LEGS_LAND", 4, 0, 20, "Land")
	add("LEGS_JUMPB", 8, 0, 20, "Jump back")
	add("LEGS_LANDB", 4, 0, 20, "Land back")
	add("LEGS_IDLE", 30, 30, 20, "Idle")
	add("LEGS_IDLECR", 30, 30, 20, "Crouch idle")
	add("LEGS_TURN", 10, 10, 20, "Turn")

	return anims
}

// ParseAnimConfig parses an animation.cfg from raw bytes.
// Unknown directives are skipped; malformed known directives are errors.
func ParseAnimConfig(data []byte) (*AnimConfig, error) {
	cfg := &AnimConfig{
		Sex:       SexMale,
		Footsteps: FootstepsBoot,
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		// Split off a trailing comment before tokenizing.
		comment := ""
		if i := strings.Index(line, "//"); i >= 0 {
			comment = strings.TrimSpace(line[i+2:])
			line = line[:i]
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		keyword := strings.ToLower(fields[0])

		switch {
		case keyword == "sex":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: sex needs a value", ErrInvalidAnimConfig, lineNum)
			}
			sex, err := ParseSex(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			cfg.Sex = sex

		case keyword == "footsteps":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: footsteps needs a value", ErrInvalidAnimConfig, lineNum)
			}
			fs, err := ParseFootsteps(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			cfg.Footsteps = fs

		case keyword == "headoffset":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: headoffset needs three values", ErrInvalidAnimConfig, lineNum)
			}
			for i := 0; i < 3; i++ {
				v, err := strconv.Atoi(fields[1+i])
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: bad headoffset value %q", ErrInvalidAnimConfig, lineNum, fields[1+i])
				}
				cfg.HeadOffset[i] = v
			}

		case strings.HasPrefix(keyword, "both_"),
			strings.HasPrefix(keyword, "torso_"),
			strings.HasPrefix(keyword, "legs_"):
			if len(fields) < 5 {
				return nil, fmt.Errorf("%w: line %d: animation %s needs four values", ErrInvalidAnimConfig, lineNum, fields[0])
			}
			nums := [4]int{}
			for i := 0; i < 4; i++ {
				v, err := strconv.Atoi(fields[1+i])
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: bad animation value %q", ErrInvalidAnimConfig, lineNum, fields[1+i])
				}
				nums[i] = v
			}
			cfg.Animations = append(cfg.Animations, AnimDef{
				Name:          fields[0],
				FirstFrame:    nums[0],
				NumFrames:     nums[1],
				LoopingFrames: nums[2],
				FPS:           nums[3],
				Comment:       comment,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading animation config: %w", err)
	}

	return cfg, nil
}

// ParseAnimConfigFile parses an animation.cfg from disk.
func ParseAnimConfigFile(path string) (*AnimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading animation config: %w", err)
	}
	return ParseAnimConfig(data)
}

// Encode renders the config in the standard column layout, with a
// section comment whenever the animation name prefix changes.
func (c *AnimConfig) Encode() []byte {
	lines := []string{
		"// Animation config generated for id Tech 3",
		"// Format: ANIM_NAME first_frame num_frames looping_frames fps",
		"",
		"sex " + c.Sex.String(),
		"footsteps " + c.Footsteps.String(),
		fmt.Sprintf("headoffset %d %d %d", c.HeadOffset[0], c.HeadOffset[1], c.HeadOffset[2]),
		"",
	}

	prevPrefix := ""
	for _, a := range c.Animations {
		prefix, _, _ := strings.Cut(a.Name, "_")
		if prefix != prevPrefix {
			if prevPrefix != "" {
				lines = append(lines, "")
			}
			lines = append(lines, fmt.Sprintf("// %s animations", prefix))
			prevPrefix = prefix
		}

		line := fmt.Sprintf("%-20s%-8d%-8d%-8d%-8d", a.Name, a.FirstFrame, a.NumFrames, a.LoopingFrames, a.FPS)
		if a.Comment != "" {
			line += "// " + a.Comment
		}
		lines = append(lines, strings.TrimRight(line, " "))
	}

	return []byte(strings.Join(lines, "\n") + "\n")
}

// WriteAnimConfigFile writes the config to disk, creating parent
// directories as needed.
func WriteAnimConfigFile(path string, c *AnimConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating animation config directory: %w", err)
	}
	if err := os.WriteFile(path, c.Encode(), 0644); err != nil {
		return fmt.Errorf("writing animation config: %w", err)
	}
	return nil
}
