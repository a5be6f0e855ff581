package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SkinMapping binds one surface name to a texture path.
// Tag entries keep an empty texture path.
type SkinMapping struct {
	Surface string
	Texture string
}

// IsTag reports whether the mapping names an attachment tag rather
// than a textured surface.
func (m SkinMapping) IsTag() bool {
	return strings.HasPrefix(strings.ToLower(m.Surface), "tag_")
}

// Skin represents a .skin file: an ordered list of surface to texture
// mappings.
type Skin struct {
	Mappings []SkinMapping
}

// TextureFor returns the texture mapped to the given surface name
// (case-insensitive).
func (s *Skin) TextureFor(surface string) (string, bool) {
	for _, m := range s.Mappings {
		if strings.EqualFold(m.Surface, surface) {
			return m.Texture, true
		}
	}
	return "", false
}

// Surfaces returns the mapped surface names in file order.
func (s *Skin) Surfaces() []string {
	names := make([]string, len(s.Mappings))
	for i, m := range s.Mappings {
		names[i] = m.Surface
	}
	return names
}

// ParseSkin parses a .skin file from raw bytes. Every line is either
// blank, a comment, or a "surface,texture" pair; a line without a
// comma maps the surface to an empty texture.
func ParseSkin(data []byte) *Skin {
	skin := &Skin{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		surface, texture, _ := strings.Cut(line, ",")
		skin.Mappings = append(skin.Mappings, SkinMapping{
			Surface: strings.TrimSpace(surface),
			Texture: strings.TrimSpace(texture),
		})
	}
	return skin
}

// ParseSkinFile parses a .skin file from disk.
func ParseSkinFile(path string) (*Skin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skin file: %w", err)
	}
	return ParseSkin(data), nil
}

// Encode renders the skin as "surface,texture" lines.
func (s *Skin) Encode() []byte {
	var b strings.Builder
	for _, m := range s.Mappings {
		b.WriteString(m.Surface)
		b.WriteByte(',')
		b.WriteString(m.Texture)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// WriteSkinFile writes the skin to disk, creating parent directories
// as needed.
func WriteSkinFile(path string, s *Skin) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating skin directory: %w", err)
	}
	if err := os.WriteFile(path, s.Encode(), 0644); err != nil {
		return fmt.Errorf("writing skin file: %w", err)
	}
	return nil
}
