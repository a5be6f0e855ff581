package assetgen

import (
	"fmt"

	"github.com/ludoplex/quakenite/pkg/formats"
)

// SkinFile pairs a team variant name with its generated skin.
type SkinFile struct {
	Variant string
	Skin    *formats.Skin
}

// BuildPlayerSkins generates the team variant skin files for a character.
// Each file maps every standard surface to the character's part texture
// with the variant's suffix, then lists the attachment tags bare.
func BuildPlayerSkins(c Character) []SkinFile {
	base := playerDir(c.ModelName)
	out := make([]SkinFile, 0, len(skinVariants))
	for _, v := range skinVariants {
		skin := &formats.Skin{}
		for _, s := range standardSurfaces {
			skin.Mappings = append(skin.Mappings, formats.SkinMapping{
				Surface: s.Surface,
				Texture: fmt.Sprintf("%s/%s%s.tga", base, s.Part, v.Suffix),
			})
		}
		for _, tag := range standardTags {
			skin.Mappings = append(skin.Mappings, formats.SkinMapping{Surface: tag})
		}
		out = append(out, SkinFile{Variant: v.Name, Skin: skin})
	}
	return out
}

// BuildAnimConfig generates a character's animation.cfg: the standard
// animation set with the character's sex and footstep sound settings.
func BuildAnimConfig(c Character) *formats.AnimConfig {
	return &formats.AnimConfig{
		Sex:        c.Sex,
		Footsteps:  c.Footsteps,
		HeadOffset: [3]int{0, 0, 0},
		Animations: formats.StandardAnimations(),
	}
}
