package geom

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ serializes the mesh as Wavefront OBJ. Faces are grouped by
// material with g/usemtl headers so the slots survive import; texture
// coordinates are emitted when GenerateUVs has run. The coordinate
// system is passed through unchanged (Z up).
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# ashlar building mesh: %d verts, %d faces\n", len(m.Verts), len(m.Faces))
	for _, v := range m.Verts {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}

	// Texture coordinates are per face corner; vtBase tracks the
	// running index for face lines.
	hasUVs := false
	for _, f := range m.Faces {
		if len(f.UVs) > 0 {
			hasUVs = true
			break
		}
	}
	if hasUVs {
		for _, f := range m.Faces {
			for _, uv := range f.UVs {
				fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
			}
		}
	}

	byMaterial := make(map[Material][]int)
	for i, f := range m.Faces {
		byMaterial[f.Material] = append(byMaterial[f.Material], i)
	}

	vtOffsets := make([]int, len(m.Faces))
	running := 0
	for i, f := range m.Faces {
		vtOffsets[i] = running
		running += len(f.UVs)
	}

	for mat := MatWalls; mat <= MatRubble; mat++ {
		faces := byMaterial[mat]
		if len(faces) == 0 {
			continue
		}
		fmt.Fprintf(bw, "g %s\nusemtl %s\n", mat, mat)
		for _, fi := range faces {
			f := m.Faces[fi]
			fmt.Fprint(bw, "f")
			for j, vi := range f.Verts {
				if len(f.UVs) > 0 {
					fmt.Fprintf(bw, " %d/%d", vi+1, vtOffsets[fi]+j+1)
				} else {
					fmt.Fprintf(bw, " %d", vi+1)
				}
			}
			fmt.Fprintln(bw)
		}
	}

	return bw.Flush()
}
