package assetgen

import (
	"fmt"
	"time"

	"github.com/ludoplex/quakenite/pkg/sound"
)

// painLevels are the health brackets the engine picks pain sounds by.
var painLevels = [4]int{25, 50, 75, 100}

// deathVariants is the number of death scream takes per character.
const deathVariants = 3

// VoicePitch derives a character's voice pitch from its visual scale:
// bigger characters speak lower.
func VoicePitch(c Character) float64 {
	return 2.0 - float64(c.VisualScale)
}

// SoundFile pairs a synthesized sound with its filename, relative to the
// owning sound directory.
type SoundFile struct {
	Name  string
	Sound *sound.Sound
}

// BuildVoiceSet synthesizes a character's voice: pain grunts per damage
// bracket, three death screams, jump effort, and the two water sounds.
// Harder pain and later death takes run longer and pitch down.
func BuildVoiceSet(c Character) []SoundFile {
	pitch := VoicePitch(c)
	var out []SoundFile

	for _, level := range painLevels {
		intensity := float64(level) / 100
		dur := time.Duration((0.3 + intensity*0.2) * float64(time.Second))
		s := sound.PainGrunt(dur, pitch*(1.0-intensity*0.1))
		out = append(out, SoundFile{Name: fmt.Sprintf("pain%d_1.wav", level), Sound: s})
	}

	for i := 1; i <= deathVariants; i++ {
		dur := time.Duration((1.0 + float64(i)*0.3) * float64(time.Second))
		s := sound.DeathScream(dur, pitch*(1.0-float64(i)*0.05))
		out = append(out, SoundFile{Name: fmt.Sprintf("death%d.wav", i), Sound: s})
	}

	out = append(out,
		SoundFile{Name: "jump1.wav", Sound: sound.Jump(250*time.Millisecond, pitch)},
		SoundFile{Name: "gasp.wav", Sound: sound.Gasp(500*time.Millisecond, pitch)},
		SoundFile{Name: "drown.wav", Sound: sound.Drown(1500*time.Millisecond, pitch)},
	)
	return out
}

// BuildStructureSounds synthesizes the place/destroy pair shared by all
// buildable pieces.
func BuildStructureSounds() []SoundFile {
	return []SoundFile{
		{Name: "build_place.wav", Sound: sound.BuildPlace(200 * time.Millisecond)},
		{Name: "build_destroy.wav", Sound: sound.BuildDestroy(500 * time.Millisecond)},
	}
}
