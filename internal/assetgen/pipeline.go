package assetgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/goccy/go-json"

	"github.com/ludoplex/quakenite/internal/config"
	"github.com/ludoplex/quakenite/internal/logger"
	"github.com/ludoplex/quakenite/pkg/formats"
	"github.com/ludoplex/quakenite/pkg/pk3"
	"github.com/ludoplex/quakenite/pkg/sound"
	"github.com/ludoplex/quakenite/pkg/tga"
)

// Asset is one generated file: a forward-slash path inside the asset tree
// and its encoded bytes.
type Asset struct {
	Path string
	Data []byte
}

// Scope selects which asset groups a run generates.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeCharacters
	ScopeBuildables
	ScopeSounds
)

func (s Scope) String() string {
	switch s {
	case ScopeCharacters:
		return "characters"
	case ScopeBuildables:
		return "buildables"
	case ScopeSounds:
		return "sounds"
	default:
		return "all"
	}
}

// ParseScope maps a generation subcommand to its scope.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "all":
		return ScopeAll, nil
	case "characters":
		return ScopeCharacters, nil
	case "buildables":
		return ScopeBuildables, nil
	case "sounds":
		return ScopeSounds, nil
	}
	return 0, fmt.Errorf("unknown generation scope %q", s)
}

// ManifestEntry records one generated file and its size in bytes.
type ManifestEntry struct {
	Path string `json:"path"`
	Size int    `json:"size"`
}

// Manifest lists every generated asset. Entries follow generation order,
// which is stable across runs.
type Manifest struct {
	FileCount int             `json:"file_count"`
	TotalSize int64           `json:"total_size"`
	Files     []ManifestEntry `json:"files"`
}

// Generator runs asset jobs against a configuration.
type Generator struct {
	cfg *config.Config
}

// New creates a Generator for the given configuration.
func New(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// job is one unit of parallel work producing a group of related assets.
type job struct {
	name  string
	build func() ([]Asset, error)
}

// jobs assembles the work list for a scope in stable order: characters,
// buildables, then sounds. The sounds subcommand generates even when the
// config disables sound; the disable only trims the combined run.
func (g *Generator) jobs(scope Scope) ([]job, error) {
	chars, err := g.selectedCharacters()
	if err != nil {
		return nil, err
	}

	var jobs []job
	if scope == ScopeAll || scope == ScopeCharacters {
		for _, c := range chars {
			jobs = append(jobs, job{
				name:  "player " + c.ModelName,
				build: func() ([]Asset, error) { return g.playerAssets(c) },
			})
		}
	}
	if scope == ScopeAll || scope == ScopeBuildables {
		for _, b := range Buildables() {
			jobs = append(jobs, job{
				name:  "buildable " + b.ModelName,
				build: func() ([]Asset, error) { return g.buildableAssets(b) },
			})
		}
		jobs = append(jobs, job{name: "buildable textures", build: g.buildableSharedAssets})
	}
	if scope == ScopeSounds || (scope == ScopeAll && g.cfg.Sound.Enabled) {
		for _, c := range chars {
			jobs = append(jobs, job{
				name:  "voice " + c.ModelName,
				build: func() ([]Asset, error) { return g.voiceAssets(c) },
			})
		}
		jobs = append(jobs, job{name: "structure sounds", build: g.structureSoundAssets})
	}
	return jobs, nil
}

// selectedCharacters resolves the configured character subset against the
// roster. An empty subset selects the full roster.
func (g *Generator) selectedCharacters() ([]Character, error) {
	names := g.cfg.Generator.Characters
	if len(names) == 0 {
		return Roster(), nil
	}
	out := make([]Character, 0, len(names))
	for _, name := range names {
		c, ok := CharacterByModelName(name)
		if !ok {
			return nil, fmt.Errorf("unknown character %q", name)
		}
		out = append(out, c)
	}
	return out, nil
}

// Run generates the selected scope, writes the assets to the configured
// output, and returns the manifest of what was written.
func (g *Generator) Run(ctx context.Context, scope Scope) (*Manifest, error) {
	start := time.Now()
	jobs, err := g.jobs(scope)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return &Manifest{Files: []ManifestEntry{}}, nil
	}

	assets, err := g.runJobs(ctx, jobs)
	if err != nil {
		return nil, err
	}

	manifest := buildManifest(assets)

	if g.cfg.Output.Manifest {
		data, err := json.MarshalIndent(manifest, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding manifest: %w", err)
		}
		assets = append(assets, Asset{Path: "manifest.json", Data: append(data, '\n')})
	}

	dest := g.cfg.Output.Dir
	if g.cfg.Output.PK3 != "" {
		dest = g.cfg.Output.PK3
		err = writePK3(dest, assets)
	} else {
		err = writeTree(dest, assets)
	}
	if err != nil {
		return nil, err
	}

	logger.Sugar.Infof("generated %s: %d files, %d bytes to %s in %s",
		scope, manifest.FileCount, manifest.TotalSize, dest, time.Since(start).Round(time.Millisecond))
	return manifest, nil
}

// runJobs fans the jobs out to a bounded worker pool and merges their
// assets back in job order. The first failure cancels jobs that have not
// started yet; every job that failed is reported.
func (g *Generator) runJobs(ctx context.Context, jobs []job) ([]Asset, error) {
	workers := g.cfg.Generator.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := worker.NewDynamicWorkerPool(workers, len(jobs), 1*time.Second)

	results := make([][]Asset, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				assets, err := jobs[idx].build()
				if err != nil {
					errs[idx] = fmt.Errorf("%s: %w", jobs[idx].name, err)
					cancel()
					return nil, err
				}
				results[idx] = assets
				logger.Sugar.Debugf("generated %s (%d files)", jobs[idx].name, len(assets))
				return nil, nil
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	// No job failed, so a cancellation came from the caller
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var assets []Asset
	for _, r := range results {
		assets = append(assets, r...)
	}
	return assets, nil
}

func (g *Generator) playerAssets(c Character) ([]Asset, error) {
	dir := playerDir(c.ModelName)
	animCfg := BuildAnimConfig(c)
	model := BuildPlayerModel(c, animCfg.FrameCount())

	var assets []Asset
	parts := []struct {
		name  string
		model *formats.MD3Model
	}{
		{"lower.md3", model.Lower},
		{"upper.md3", model.Upper},
		{"head.md3", model.Head},
	}
	for _, part := range parts {
		data, err := formats.EncodeMD3(part.model)
		if err != nil {
			return nil, fmt.Errorf("encoding %s/%s: %w", dir, part.name, err)
		}
		assets = append(assets, Asset{Path: dir + "/" + part.name, Data: data})
	}

	assets = append(assets, Asset{Path: dir + "/animation.cfg", Data: animCfg.Encode()})

	for _, sf := range BuildPlayerSkins(c) {
		assets = append(assets, Asset{Path: fmt.Sprintf("%s/%s.skin", dir, sf.Variant), Data: sf.Skin.Encode()})
	}

	for _, tf := range BuildCharacterTextures(c, g.cfg.Generator.TextureSize) {
		data, err := g.encodeTexture(tf)
		if err != nil {
			return nil, fmt.Errorf("encoding %s/%s: %w", dir, tf.Name, err)
		}
		assets = append(assets, Asset{Path: dir + "/" + tf.Name, Data: data})
	}
	return assets, nil
}

func (g *Generator) buildableAssets(b Buildable) ([]Asset, error) {
	model := BuildBuildableModel(b)
	data, err := formats.EncodeMD3(model)
	if err != nil {
		return nil, fmt.Errorf("encoding buildable %s: %w", b.ModelName, err)
	}
	icon, err := g.encodeTexture(TextureFile{Image: BuildableIcon(b), Alpha: true})
	if err != nil {
		return nil, fmt.Errorf("encoding icon for %s: %w", b.ModelName, err)
	}
	return []Asset{
		{Path: "models/buildables/" + b.ModelName + ".md3", Data: data},
		{Path: "gfx/hud/build_" + b.ModelName + ".tga", Data: icon},
	}, nil
}

func (g *Generator) buildableSharedAssets() ([]Asset, error) {
	wood, err := g.encodeTexture(TextureFile{Image: WoodTexture(g.cfg.Generator.TextureSize)})
	if err != nil {
		return nil, fmt.Errorf("encoding wood texture: %w", err)
	}
	return []Asset{{Path: buildableShader, Data: wood}}, nil
}

func (g *Generator) voiceAssets(c Character) ([]Asset, error) {
	dir := soundDir(c.ModelName)
	var assets []Asset
	for _, sf := range BuildVoiceSet(c) {
		data, err := sound.Encode(sf.Sound)
		if err != nil {
			return nil, fmt.Errorf("encoding %s/%s: %w", dir, sf.Name, err)
		}
		assets = append(assets, Asset{Path: dir + "/" + sf.Name, Data: data})
	}
	return assets, nil
}

func (g *Generator) structureSoundAssets() ([]Asset, error) {
	var assets []Asset
	for _, sf := range BuildStructureSounds() {
		data, err := sound.Encode(sf.Sound)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", sf.Name, err)
		}
		assets = append(assets, Asset{Path: "sound/buildables/" + sf.Name, Data: data})
	}
	return assets, nil
}

func (g *Generator) encodeTexture(tf TextureFile) ([]byte, error) {
	if g.cfg.Generator.RLETextures {
		return tga.EncodeRLE(tf.Image, tf.Alpha)
	}
	return tga.Encode(tf.Image, tf.Alpha)
}

// buildManifest lists the assets in generation order. The manifest file
// itself is not listed.
func buildManifest(assets []Asset) *Manifest {
	m := &Manifest{Files: make([]ManifestEntry, 0, len(assets))}
	for _, a := range assets {
		m.Files = append(m.Files, ManifestEntry{Path: a.Path, Size: len(a.Data)})
		m.TotalSize += int64(len(a.Data))
	}
	m.FileCount = len(m.Files)
	return m
}

// writeTree writes assets as loose files under root.
func writeTree(root string, assets []Asset) error {
	for _, a := range assets {
		path := filepath.Join(root, filepath.FromSlash(a.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.Data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// writePK3 packs assets into a single archive, in generation order.
func writePK3(path string, assets []Asset) error {
	w, err := pk3.Create(path)
	if err != nil {
		return err
	}
	for _, a := range assets {
		if err := w.Add(a.Path, a.Data); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
