package assetgen

import (
	"image"
	"image/color"

	"github.com/ludoplex/quakenite/pkg/tga"
)

// iconSize is the edge size of selection and HUD icon textures.
const iconSize = 64

// Base texture color per roster entry, indexed by character ID.
var characterColors = []color.RGBA{
	{90, 110, 60, 255},   // chef: service olive
	{60, 160, 70, 255},   // blitz: toad green
	{70, 90, 160, 255},   // willylee: denim blue
	{140, 140, 150, 255}, // steelheim: polished steel
	{150, 100, 50, 255},  // holster: saddle leather
	{40, 60, 120, 255},   // six: navy
	{80, 95, 80, 255},    // serpent: fatigue gray
	{180, 60, 40, 255},   // blastem: hero red
	{130, 110, 80, 255},  // matthias: field mouse brown
}

// Team tint colors blended over the base part textures.
var teamTintColors = map[string]color.RGBA{
	"red":  {R: 200, G: 40, B: 40, A: 255},
	"blue": {R: 40, G: 80, B: 200, A: 255},
}

// teamTintStrength is the blend factor for team variant textures.
const teamTintStrength = 0.5

// CharacterColor returns the base texture color of a character.
func CharacterColor(c Character) color.RGBA {
	if c.ID >= 0 && c.ID < len(characterColors) {
		return characterColors[c.ID]
	}
	return color.RGBA{128, 128, 128, 255}
}

// TextureFile pairs a generated image with its filename and pixel format.
// Name is relative to the owning asset directory.
type TextureFile struct {
	Name  string
	Image *image.RGBA
	Alpha bool
}

// BuildCharacterTextures generates the three part textures for every team
// variant plus the selection screen icon.
func BuildCharacterTextures(c Character, size int) []TextureFile {
	base := CharacterColor(c)
	var out []TextureFile
	for _, part := range [...]string{"head", "upper", "lower"} {
		tex := partTexture(part, base, size)
		for _, v := range skinVariants {
			img := tex
			if tint, ok := teamTintColors[v.Name]; ok {
				img = tga.Tint(tex, tint, teamTintStrength)
			}
			out = append(out, TextureFile{Name: part + v.Suffix + ".tga", Image: img})
		}
	}
	out = append(out, TextureFile{Name: "icon_default.tga", Image: iconTexture(base)})
	return out
}

// partTexture draws the placeholder texture for one body part. Parts get
// distinct shades of the character color so the stacked boxes read as
// head, torso and legs in game.
func partTexture(part string, base color.RGBA, size int) *image.RGBA {
	switch part {
	case "head":
		return tga.SolidColor(size, size, lighten(base, 60))
	case "upper":
		return tga.Gradient(size, size, lighten(base, 30), base, true)
	default: // lower
		return tga.Gradient(size, size, base, darken(base, 50), true)
	}
}

// iconTexture draws the character selection icon.
func iconTexture(base color.RGBA) *image.RGBA {
	return tga.Gradient(iconSize, iconSize, lighten(base, 40), darken(base, 80), false)
}

// WoodTexture generates the plank texture shared by all buildable pieces.
func WoodTexture(size int) *image.RGBA {
	return tga.Wood(size, size)
}

// HUD icon tile colors per buildable piece.
var buildIconColors = map[string]color.RGBA{
	"wall":  {R: 170, G: 120, B: 70, A: 255},
	"floor": {R: 120, G: 90, B: 55, A: 255},
	"ramp":  {R: 200, G: 150, B: 90, A: 255},
	"roof":  {R: 90, G: 65, B: 40, A: 255},
}

// BuildableIcon draws the build menu HUD icon for a piece.
func BuildableIcon(b Buildable) *image.RGBA {
	base, ok := buildIconColors[b.ModelName]
	if !ok {
		base = color.RGBA{128, 128, 128, 255}
	}
	return tga.Checkerboard(iconSize, iconSize, 8, base, darken(base, 60))
}

func lighten(c color.RGBA, by uint8) color.RGBA {
	return color.RGBA{addClamp(c.R, by), addClamp(c.G, by), addClamp(c.B, by), c.A}
}

func darken(c color.RGBA, by uint8) color.RGBA {
	return color.RGBA{subClamp(c.R, by), subClamp(c.G, by), subClamp(c.B, by), c.A}
}

func addClamp(v, by uint8) uint8 {
	if int(v)+int(by) > 255 {
		return 255
	}
	return v + by
}

func subClamp(v, by uint8) uint8 {
	if v < by {
		return 0
	}
	return v - by
}
