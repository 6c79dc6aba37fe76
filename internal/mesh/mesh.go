// Package mesh builds simple procedural meshes (planes, cubes, discs) as
// plain vertex/index buffers and writes them as Wavefront OBJ.
//
// Triangles wind counter-clockwise when seen from the side the normal
// points to. Y is up.
package mesh

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

type Vec2 = domain.Vec2
type Vec3 = domain.Vec3

type Mesh struct {
	Vertices  []Vec3
	Normals   []Vec3
	UVs       []Vec2
	Triangles []int
}

func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// Validate checks index bounds and buffer lengths.
func (m *Mesh) Validate() error {
	if len(m.Triangles)%3 != 0 {
		return domain.InvalidInput("mesh.validate", fmt.Sprintf("triangle index count %d is not a multiple of 3", len(m.Triangles)), nil)
	}
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= len(m.Vertices) {
			return domain.InvalidInput("mesh.validate", fmt.Sprintf("triangles[%d]=%d out of range", i, idx), nil)
		}
	}
	if m.Normals != nil && len(m.Normals) != len(m.Vertices) {
		return domain.InvalidInput("mesh.validate", "normals and vertices differ in length", nil)
	}
	if m.UVs != nil && len(m.UVs) != len(m.Vertices) {
		return domain.InvalidInput("mesh.validate", "uvs and vertices differ in length", nil)
	}
	return nil
}

// RecalculateNormals sets each vertex normal to the normalized sum of the
// face normals of the triangles using it, weighted by triangle area.
func (m *Mesh) RecalculateNormals() {
	normals := make([]Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		a, b, c := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]
		face := m.Vertices[b].Sub(m.Vertices[a]).Cross(m.Vertices[c].Sub(m.Vertices[a]))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}

// Bounds returns the axis-aligned bounding box. An empty mesh returns zeros.
func (m *Mesh) Bounds() (min, max Vec3) {
	if len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = Vec3{X: math.Min(min.X, v.X), Y: math.Min(min.Y, v.Y), Z: math.Min(min.Z, v.Z)}
		max = Vec3{X: math.Max(max.X, v.X), Y: math.Max(max.Y, v.Y), Z: math.Max(max.Z, v.Z)}
	}
	return min, max
}

// Displace offsets every vertex along Y by height(x, z) and recomputes
// normals.
func (m *Mesh) Displace(height func(x, z float64) float64) *Mesh {
	for i, v := range m.Vertices {
		m.Vertices[i].Y = v.Y + height(v.X, v.Z)
	}
	m.RecalculateNormals()
	return m
}

// WriteOBJ writes the mesh in Wavefront OBJ format. Indices are 1-based.
func (m *Mesh) WriteOBJ(w io.Writer, name string) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}

	hasUV := len(m.UVs) == len(m.Vertices) && len(m.UVs) > 0
	hasN := len(m.Normals) == len(m.Vertices) && len(m.Normals) > 0
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		bw.WriteString("f")
		for _, idx := range m.Triangles[i : i+3] {
			k := idx + 1
			switch {
			case hasUV && hasN:
				fmt.Fprintf(bw, " %d/%d/%d", k, k, k)
			case hasN:
				fmt.Fprintf(bw, " %d//%d", k, k)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", k, k)
			default:
				fmt.Fprintf(bw, " %d", k)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
