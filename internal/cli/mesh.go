package cli

import (
	"bytes"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/kylepfurey/FureyLib-sub005/internal/infra/fileio"
	"github.com/kylepfurey/FureyLib-sub005/internal/mesh"
)

func meshCmd() *cobra.Command {
	var (
		size     float64
		width    float64
		depth    float64
		radius   float64
		segments int
		waves    float64
		out      string
	)

	c := &cobra.Command{
		Use:       "mesh <plane|cube|disc>",
		Short:     "Generate a procedural mesh and export it as Wavefront OBJ",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"plane", "cube", "disc"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var m *mesh.Mesh
			var err error

			switch args[0] {
			case "plane":
				m, err = mesh.Plane(width, depth, segments, segments)
				if err == nil && waves != 0 {
					m = m.Displace(func(x, z float64) float64 {
						return waves * math.Sin(x) * math.Cos(z)
					})
				}
			case "cube":
				m, err = mesh.Cube(size)
			case "disc":
				m, err = mesh.Disc(radius, segments)
			default:
				return fmt.Errorf("unknown shape %q (expected plane|cube|disc)", args[0])
			}
			if err != nil {
				return err
			}
			if err := m.Validate(); err != nil {
				return err
			}

			lo, hi := m.Bounds()
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d vertices, %d triangles, bounds (%.2f,%.2f,%.2f)-(%.2f,%.2f,%.2f)\n",
				args[0], len(m.Vertices), m.TriangleCount(), lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)

			if out == "" {
				return m.WriteOBJ(cmd.OutOrStdout(), args[0])
			}
			return writeOBJFile(out, m, args[0])
		},
	}

	c.Flags().Float64Var(&size, "size", 1, "Cube edge length")
	c.Flags().Float64Var(&width, "width", 10, "Plane width (x)")
	c.Flags().Float64Var(&depth, "depth", 10, "Plane depth (z)")
	c.Flags().Float64Var(&radius, "radius", 1, "Disc radius")
	c.Flags().IntVar(&segments, "segments", 8, "Plane subdivisions per axis / disc segments")
	c.Flags().Float64Var(&waves, "waves", 0, "Plane height displacement amplitude")
	c.Flags().StringVarP(&out, "output", "o", "", "Write OBJ to file instead of stdout")
	return c
}

func writeOBJFile(path string, m *mesh.Mesh, name string) error {
	var buf bytes.Buffer
	if err := m.WriteOBJ(&buf, name); err != nil {
		return err
	}
	return fileio.WriteBytes(path, buf.Bytes(), 0o644)
}
