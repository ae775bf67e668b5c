package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes m as a Wavefront OBJ object. Vertex colors use the common
// "v x y z r g b" extension; faces come from Triangles so strips are unrolled.
func WriteOBJ(w io.Writer, name string, m *Mesh) error {
	return WriteOBJOffset(w, name, m, 0)
}

// WriteOBJOffset is WriteOBJ for a file that already holds base vertices,
// so several objects can share one file.
func WriteOBJOffset(w io.Writer, name string, m *Mesh, base int) error {
	bw := bufio.NewWriter(w)

	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		c := m.Color(i)
		fmt.Fprintf(bw, "v %g %g %g %g %g %g\n", p.X, p.Y, p.Z, c[0], c[1], c[2])
	}
	for _, tri := range m.Triangles() {
		fmt.Fprintf(bw, "f %d %d %d\n",
			int(tri[0])+base+1, int(tri[1])+base+1, int(tri[2])+base+1)
	}

	return bw.Flush()
}
