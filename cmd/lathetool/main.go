// lathetool is a CLI utility for generating and inspecting lathe meshes.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/lathe/internal/logger"
	"github.com/Faultbox/lathe/internal/scene"
	"github.com/Faultbox/lathe/pkg/mesh"
	"github.com/Faultbox/lathe/pkg/revolve"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "obj":
		err = cmdOBJ(os.Stdout, args)
	case "scene":
		err = cmdScene(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`lathetool - surface-of-revolution mesh utility

Usage:
  lathetool <command> [options]

Commands:
  info  [profile flags]                  Show counts and bounds for a profile
  obj   [profile flags] [-o file]        Export a revolved mesh as OBJ
  obj   -scene <file.yaml> [-o file]     Export every entry of a scene as OBJ
  scene [-v] [file.yaml]                 Validate a scene and list its entries

Profile flags:
  -height 18 -base 3 -neck 2.6 -shoulder-start 15 -shoulder-end 16
  -angular 120 -vertical 200

Examples:
  lathetool info -angular 8 -vertical 4
  lathetool obj -o bottle.obj
  lathetool obj -scene room.yaml -o room.obj
  lathetool scene room.yaml`)
}

// profileFlags registers the profile and segment flags on fs, defaulting to
// the reference bottle.
type profileFlags struct {
	spec     revolve.ProfileSpec
	angular  int
	vertical int
}

func addProfileFlags(fs *flag.FlagSet) *profileFlags {
	p := &profileFlags{}
	float32Var(fs, &p.spec.TotalHeight, "height", 18, "total height")
	float32Var(fs, &p.spec.BaseRadius, "base", 3, "body radius")
	float32Var(fs, &p.spec.NeckRadius, "neck", 2.6, "neck radius")
	float32Var(fs, &p.spec.ShoulderStart, "shoulder-start", 15, "height where the shoulder begins")
	float32Var(fs, &p.spec.ShoulderEnd, "shoulder-end", 16, "height where the shoulder ends")
	fs.IntVar(&p.angular, "angular", 120, "angular segments")
	fs.IntVar(&p.vertical, "vertical", 200, "vertical segments")
	return p
}

type float32Value struct{ p *float32 }

func (v float32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return fmt.Sprint(*v.p)
}

func (v float32Value) Set(s string) error {
	var f float32
	if _, err := fmt.Sscan(s, &f); err != nil {
		return err
	}
	*v.p = f
	return nil
}

func float32Var(fs *flag.FlagSet, p *float32, name string, value float32, usage string) {
	*p = value
	fs.Var(float32Value{p}, name, usage)
}

func cmdInfo(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	p := addProfileFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := revolve.Generate(p.spec, p.angular, p.vertical)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Profile:        height=%g base=%g neck=%g shoulder=[%g, %g]\n",
		p.spec.TotalHeight, p.spec.BaseRadius, p.spec.NeckRadius, p.spec.ShoulderStart, p.spec.ShoulderEnd)
	fmt.Fprintf(w, "Segments:       %d angular x %d vertical\n", p.angular, p.vertical)
	fmt.Fprintf(w, "Grid:           %d rings x %d columns\n", m.Rings, m.Columns)
	fmt.Fprintf(w, "Vertices:       %d\n", m.VertexCount())
	fmt.Fprintf(w, "Indices:        %d (%s)\n", len(m.Indices), m.Topology)
	fmt.Fprintf(w, "Triangles:      %d non-degenerate\n", len(m.Triangles()))
	fmt.Fprintf(w, "Bounds min:     (%g, %g, %g)\n", m.Bounds.Min.X, m.Bounds.Min.Y, m.Bounds.Min.Z)
	fmt.Fprintf(w, "Bounds max:     (%g, %g, %g)\n", m.Bounds.Max.X, m.Bounds.Max.Y, m.Bounds.Max.Z)
	return nil
}

func cmdOBJ(stdout io.Writer, args []string) error {
	fs := flag.NewFlagSet("obj", flag.ContinueOnError)
	p := addProfileFlags(fs)
	scenePath := fs.String("scene", "", "export a scene file instead of a single profile")
	out := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)

	if *scenePath == "" {
		m, err := revolve.Generate(p.spec, p.angular, p.vertical)
		if err != nil {
			return err
		}
		if err := mesh.WriteOBJ(bw, "bottle", &m.Mesh); err != nil {
			return err
		}
		return bw.Flush()
	}

	if err := logger.Init("warn", ""); err != nil {
		return err
	}
	defer logger.Sync()

	desc, err := scene.Load(*scenePath)
	if err != nil {
		return err
	}
	s, err := scene.Build(desc)
	if err != nil {
		return err
	}
	if err := writeSceneOBJ(bw, s); err != nil {
		return err
	}
	return bw.Flush()
}

// writeSceneOBJ writes every entry in world space as its own object.
func writeSceneOBJ(w io.Writer, s *scene.Scene) error {
	base := 0
	for _, e := range s.Entries {
		world := worldMesh(e)
		if err := mesh.WriteOBJOffset(w, e.Name, world, base); err != nil {
			return fmt.Errorf("entry %q: %w", e.Name, err)
		}
		base += world.VertexCount()
	}
	return nil
}

// worldMesh returns a copy of the entry mesh with positions moved by its
// model matrix.
func worldMesh(e scene.Entry) *mesh.Mesh {
	m := *e.Mesh
	m.Vertices = make([]float32, len(e.Mesh.Vertices))
	copy(m.Vertices, e.Mesh.Vertices)
	for i := 0; i < m.VertexCount(); i++ {
		p := e.Model.TransformPoint(e.Mesh.Position(i))
		o := i * mesh.VertexStride
		m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2] = p.X, p.Y, p.Z
	}
	m.Bounds = e.Bounds
	return &m
}

func cmdScene(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("scene", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "log each built entry")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		return err
	}
	defer logger.Sync()

	desc := scene.Default()
	source := "(built-in)"
	if fs.NArg() > 0 {
		source = fs.Arg(0)
		var err error
		if desc, err = scene.Load(source); err != nil {
			return err
		}
	}

	s, err := scene.Build(desc)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Scene: %s %s\n", s.Name, source)
	fmt.Fprintf(w, "Entries: %d, vertices: %d\n\n", len(s.Entries), s.VertexCount())
	fmt.Fprintf(w, "%-16s %-15s %8s %8s  %s\n", "NAME", "TOPOLOGY", "VERTS", "INDICES", "WORLD BOUNDS")
	for _, e := range s.Entries {
		b := e.Bounds
		fmt.Fprintf(w, "%-16s %-15s %8d %8d  (%.2f, %.2f, %.2f)..(%.2f, %.2f, %.2f)\n",
			e.Name, e.Mesh.Topology, e.Mesh.VertexCount(), len(e.Mesh.Indices),
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}
	if hidden := len(desc.Entries) - len(s.Entries); hidden > 0 {
		fmt.Fprintf(w, "\n%d hidden entries skipped\n", hidden)
	}
	return nil
}
