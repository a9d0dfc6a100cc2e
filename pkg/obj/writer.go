package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/objmesh/pkg/math"
)

// WriteOptions controls OBJ output formatting.
type WriteOptions struct {
	// Precision is the number of decimals for coordinates. Negative values
	// use the shortest representation that reads back exactly.
	Precision int

	// Header is written as a leading comment when non-empty.
	Header string
}

// DefaultWriteOptions returns options that round-trip exactly.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Precision: -1}
}

// WriteModel writes m as triangulated OBJ text that ParseModel reads back
// into the same vertices and triangles. Every model vertex becomes one "v"
// record (and one "vt" record when the model has texture coordinates), and
// each triangle gets a flat face normal.
func WriteModel(w io.Writer, m *Model, opts WriteOptions) error {
	bw := bufio.NewWriter(w)

	if opts.Header != "" {
		fmt.Fprintf(bw, "# %s\n", opts.Header)
	}
	if m.MaterialLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", m.MaterialLib)
	}
	fmt.Fprintf(bw, "o %s\n", m.Name)

	for _, v := range m.Vertices {
		writeVector(bw, "v", v.Position, 3, opts.Precision)
	}

	hasTexCoords := false
	for _, v := range m.Vertices {
		if !v.TexCoord.IsZero() {
			hasTexCoords = true
			break
		}
	}
	if hasTexCoords {
		for _, v := range m.Vertices {
			writeVector(bw, "vt", v.TexCoord, 2, opts.Precision)
		}
	}

	triangles := m.TriangleCount()
	for t := 0; t < triangles; t++ {
		writeVector(bw, "vn", faceNormal(m, t), 3, opts.Precision)
	}

	if m.Material != "" {
		fmt.Fprintf(bw, "usemtl %s\n", m.Material)
	}
	if m.Group != "" {
		fmt.Fprintf(bw, "g %s\n", m.Group)
	}
	if m.Smooth {
		bw.WriteString("s 1\n")
	} else {
		bw.WriteString("s off\n")
	}

	for t := 0; t < triangles; t++ {
		bw.WriteString("f")
		for k := 0; k < 3; k++ {
			vi := m.Triangles[3*t+k] + 1
			if hasTexCoords {
				fmt.Fprintf(bw, " %d/%d/%d", vi, vi, t+1)
			} else {
				fmt.Fprintf(bw, " %d//%d", vi, t+1)
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func writeVector(w *bufio.Writer, keyword string, v math.Vec3, n, precision int) {
	comps := [3]float32{v.X, v.Y, v.Z}
	w.WriteString(keyword)
	for _, c := range comps[:n] {
		w.WriteByte(' ')
		w.WriteString(strconv.FormatFloat(float64(c), 'f', precision, 32))
	}
	w.WriteByte('\n')
}

// faceNormal returns the unit normal of triangle t, or the zero vector for a
// degenerate triangle.
func faceNormal(m *Model, t int) math.Vec3 {
	p0 := m.Vertices[m.Triangles[3*t]].Position
	p1 := m.Vertices[m.Triangles[3*t+1]].Position
	p2 := m.Vertices[m.Triangles[3*t+2]].Position
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}
