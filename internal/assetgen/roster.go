// Package assetgen builds the complete QuakeNite asset set: player and
// buildable models, skins, animation configs, textures and sounds, written
// as a loose directory tree or packed into a PK3 archive.
package assetgen

import (
	"strings"

	"github.com/ludoplex/quakenite/pkg/formats"
	"github.com/ludoplex/quakenite/pkg/math"
)

// Character describes one entry of the playable roster. Characters are
// purely cosmetic: same hitbox, same stats, different model/skin/voice.
type Character struct {
	ID          int
	DisplayName string  // Shown in UI: "Mister Chef"
	ModelName   string  // Folder under models/players/: "chef"
	ShortName   string  // For kill feed: "Chef"
	Description string  // Flavor text for selection screen
	VisualScale float32 // Cosmetic only (0.85 - 1.1), hitbox unchanged
	Sex         formats.Sex
	Footsteps   formats.Footsteps
}

// roster order matters: index is the character id the game selects by.
var roster = []Character{
	{0, "Mister Chef", "chef", "Chef", "Supersoldier. Supercook. Superviolent.", 1.1, formats.SexMale, formats.FootstepsBoot},
	{1, "Blitz", "blitz", "Blitz", "The toad with the 'tude.", 0.9, formats.SexMale, formats.FootstepsFlesh},
	{2, "Willy Lee", "willylee", "Willy", "Streets taught him everything.", 1.0, formats.SexMale, formats.FootstepsNormal},
	{3, "Steelheim", "steelheim", "Steelheim", "SCIENCE IS THE WORLD'S FINEST!", 1.05, formats.SexMale, formats.FootstepsMech},
	{4, "Holster Colt", "holster", "Holster", "Fastest finger in the West.", 1.0, formats.SexMale, formats.FootstepsBoot},
	{5, "Number Six", "six", "Six", "Don't say that number.", 1.0, formats.SexMale, formats.FootstepsNormal},
	{6, "Solid Serpent", "serpent", "Serpent", "Stealth is optional.", 1.0, formats.SexMale, formats.FootstepsBoot},
	{7, "Dude Blastem", "blastem", "Dude", "90s action hero energy, max volume.", 1.1, formats.SexMale, formats.FootstepsBoot},
	{8, "Sir Matthias", "matthias", "Matthias", "Woodland knight in a gunfight.", 0.85, formats.SexMale, formats.FootstepsNormal},
}

// Roster returns the playable characters in selection order.
func Roster() []Character {
	out := make([]Character, len(roster))
	copy(out, roster)
	return out
}

// CharacterByModelName finds a roster entry by its model folder name.
func CharacterByModelName(name string) (Character, bool) {
	for _, c := range roster {
		if strings.EqualFold(c.ModelName, name) {
			return c, true
		}
	}
	return Character{}, false
}

// Buildable describes one placeable structure piece.
type Buildable struct {
	Name      string // Display name: "Wall"
	ModelName string // File stem under models/buildables/: "wall"
	Mins      math.Vec3
	Maxs      math.Vec3
}

// buildables in placement-menu order. Bounds match the entity bboxes the
// game traces against, so the models line up with collision.
var buildables = []Buildable{
	{"Wall", "wall", math.Vec3{X: -32, Y: -4, Z: 0}, math.Vec3{X: 32, Y: 4, Z: 64}},
	{"Floor", "floor", math.Vec3{X: -32, Y: -32, Z: -4}, math.Vec3{X: 32, Y: 32, Z: 4}},
	{"Ramp", "ramp", math.Vec3{X: -32, Y: -32, Z: 0}, math.Vec3{X: 32, Y: 32, Z: 64}},
	{"Roof", "roof", math.Vec3{X: -32, Y: -32, Z: 0}, math.Vec3{X: 32, Y: 32, Z: 32}},
}

// Buildables returns the placeable structure pieces in menu order.
func Buildables() []Buildable {
	out := make([]Buildable, len(buildables))
	copy(out, buildables)
	return out
}

// Standard player model surfaces mapped to the body part texture each uses.
// Order follows the stock Quake III skin layout: head, torso, legs.
var standardSurfaces = []struct {
	Surface string
	Part    string
}{
	{"h_head", "head"},
	{"h_helmet", "head"},
	{"u_torso", "upper"},
	{"u_arms", "upper"},
	{"u_chest", "upper"},
	{"l_legs", "lower"},
	{"l_waist", "lower"},
	{"l_skirt", "lower"},
}

// Standard attachment tags. Tags carry no texture in skin files.
var standardTags = []string{"tag_head", "tag_torso", "tag_weapon"}

// Team skin variants mapped to the texture filename suffix each selects.
var skinVariants = []struct {
	Name   string
	Suffix string
}{
	{"default", ""},
	{"red", "_red"},
	{"blue", "_blue"},
}

// playerDir returns the asset directory for a character's model files.
func playerDir(modelName string) string {
	return "models/players/" + modelName
}

// soundDir returns the asset directory for a character's voice files.
func soundDir(modelName string) string {
	return "sound/player/" + modelName
}
