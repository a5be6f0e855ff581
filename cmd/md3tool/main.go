// md3tool is a CLI utility for inspecting Quake III MD3 models.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/ludoplex/quakenite/pkg/formats"
	"github.com/ludoplex/quakenite/pkg/pk3"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "shaders":
		cmdShaders(args)
	case "tags":
		cmdTags(args)
	case "check":
		cmdCheck(args)
	case "dump":
		cmdDump(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`md3tool - Quake III MD3 model utility

Usage:
  md3tool <command> [options] <model.md3>

Commands:
  info <model.md3>     Show model structure
  shaders <model.md3>  List referenced shader paths
  tags <model.md3>     Print tag transforms per frame
  check <model.md3>    Validate structure and engine limits
  dump <model.md3>     Dump the decoded model as JSON

Options:
  -pk3 <archive>       Read the model from a PK3 archive instead of disk

Examples:
  md3tool info models/players/chef/upper.md3
  md3tool info -pk3 assets.pk3 models/players/chef/upper.md3
  md3tool tags -frame 0 models/players/chef/upper.md3
  md3tool check models/buildables/wall.md3
  md3tool dump models/players/chef/head.md3 > head.json`)
}

// newFlagSet builds a subcommand flag set with the shared -pk3 option.
func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	pk3Path := fs.String("pk3", "", "Read the model from this PK3 archive")
	return fs, pk3Path
}

// loadModel reads the model either from disk or from inside a PK3 archive.
func loadModel(fs *flag.FlagSet, pk3Path string) *formats.MD3Model {
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: md3tool %s [-pk3 archive] <model.md3>\n", fs.Name())
		os.Exit(1)
	}
	modelPath := fs.Arg(0)

	var (
		model *formats.MD3Model
		err   error
	)
	if pk3Path != "" {
		model, err = loadFromArchive(pk3Path, modelPath)
	} else {
		model, err = formats.ParseMD3File(modelPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return model
}

func loadFromArchive(archivePath, modelPath string) (*formats.MD3Model, error) {
	archive, err := pk3.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	data, err := archive.Read(modelPath)
	if err != nil {
		return nil, err
	}
	return formats.ParseMD3(data)
}

func cmdInfo(args []string) {
	fs, pk3Path := newFlagSet("info")
	fs.Parse(args)
	model := loadModel(fs, *pk3Path)

	fmt.Printf("MD3 Model: %s\n", model.Name)
	fmt.Printf("  Frames: %d\n", model.NumFrames())
	fmt.Printf("  Tags: %d\n", model.NumTags())
	fmt.Printf("  Surfaces: %d\n", model.NumSurfaces())
	fmt.Println()

	if model.NumTags() > 0 {
		fmt.Println("  Tags (frame 0):")
		for _, tag := range model.Tags[0] {
			fmt.Printf("    - %s: origin=(%.2f, %.2f, %.2f)\n",
				tag.Name, tag.Origin[0], tag.Origin[1], tag.Origin[2])
		}
		fmt.Println()
	}

	for i := range model.Surfaces {
		surf := &model.Surfaces[i]
		names := make([]string, len(surf.Shaders))
		for j, sh := range surf.Shaders {
			names[j] = sh.Name
		}
		fmt.Printf("  Surface %d: %s\n", i, surf.Name)
		fmt.Printf("    Shaders: %v\n", names)
		fmt.Printf("    Triangles: %d\n", len(surf.Triangles))
		fmt.Printf("    Vertices: %d\n", surf.NumVerts())
		fmt.Printf("    Frames: %d\n", surf.NumFrames())
	}
}

func cmdShaders(args []string) {
	fs, pk3Path := newFlagSet("shaders")
	fs.Parse(args)
	model := loadModel(fs, *pk3Path)

	for _, name := range model.ShaderNames() {
		fmt.Println(name)
	}
}

func cmdTags(args []string) {
	fs, pk3Path := newFlagSet("tags")
	frame := fs.Int("frame", -1, "Print only this frame (-1 = all)")
	fs.Parse(args)
	model := loadModel(fs, *pk3Path)

	if model.NumTags() == 0 {
		fmt.Println("No tags")
		return
	}

	for f, group := range model.Tags {
		if *frame >= 0 && f != *frame {
			continue
		}
		fmt.Printf("Frame %d:\n", f)
		for _, tag := range group {
			fmt.Printf("  %-16s origin=(%8.2f, %8.2f, %8.2f)  forward=(%5.2f, %5.2f, %5.2f)\n",
				tag.Name,
				tag.Origin[0], tag.Origin[1], tag.Origin[2],
				tag.Axis[0][0], tag.Axis[0][1], tag.Axis[0][2])
		}
	}
}

func cmdCheck(args []string) {
	fs, pk3Path := newFlagSet("check")
	fs.Parse(args)
	model := loadModel(fs, *pk3Path)

	if err := model.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
		os.Exit(1)
	}

	violations := model.CheckLimits()
	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "LIMIT: %s\n", v)
	}
	if len(violations) > 0 {
		os.Exit(1)
	}

	fmt.Printf("OK: %d frames, %d tags, %d surfaces, %d triangles\n",
		model.NumFrames(), model.NumTags(), model.NumSurfaces(), model.TotalTriangleCount())
}

func cmdDump(args []string) {
	fs, pk3Path := newFlagSet("dump")
	vertices := fs.Bool("vertices", false, "Include per-frame vertex data")
	fs.Parse(args)
	model := loadModel(fs, *pk3Path)

	// Vertex arrays dominate the output; omit them unless asked.
	if !*vertices {
		for i := range model.Surfaces {
			model.Surfaces[i].Vertices = nil
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(model); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
