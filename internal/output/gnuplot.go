package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/banshee-data/triplclust/internal/curve"
	"github.com/banshee-data/triplclust/internal/geom"
)

// ClusterColor derives a deterministic RGB colour from a cluster's
// positional index: r=((i·23)%19)/18, g=((i·23)%7)/6, b=((i·23)%3)/2,
// each scaled to 8 bit.
func ClusterColor(index int) uint32 {
	r := float64((index*23)%19) / 18.0
	g := float64((index*23)%7) / 6.0
	b := float64((index*23)%3) / 2.0
	return uint32(uint8(r*255))<<16 | uint32(uint8(g*255))<<8 | uint32(uint8(b*255))
}

// writeRanges emits the axis-range preamble and the plot command for a
// 3D cloud, or the bare 2D plot command. Degenerate ranges are padded
// by one unit so gnuplot accepts them.
func writeRanges(w io.Writer, cloud *geom.PointCloud) error {
	if cloud.Is2D {
		_, err := fmt.Fprint(w, "plot")
		return err
	}
	min, max := cloud.Bounds()
	axes := []struct {
		name   string
		lo, hi float64
	}{
		{"x", min.X, max.X},
		{"y", min.Y, max.Y},
		{"z", min.Z, max.Z},
	}
	for _, a := range axes {
		lo, hi := a.lo, a.hi
		if hi <= lo {
			lo, hi = lo-1, hi+1
		}
		if _, err := fmt.Fprintf(w, "set %srange [%s:%s]\n", a.name, fmtFloat(lo), fmtFloat(hi)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "splot")
	return err
}

// writePoint emits one inline data row.
func writePoint(w io.Writer, p *geom.Point, is2d bool) error {
	var err error
	if is2d {
		_, err = fmt.Fprintf(w, "%s %s\n", fmtFloat(p.Vec.X), fmtFloat(p.Vec.Y))
	} else {
		_, err = fmt.Fprintf(w, "%s %s %s\n", fmtFloat(p.Vec.X), fmtFloat(p.Vec.Y), fmtFloat(p.Vec.Z))
	}
	return err
}

// WriteClustersGnuplot writes the labelled cloud as a self-contained
// gnuplot script: one inline dataset per cluster with its
// deterministic colour, noise in red, overlap clusters titled with
// their base-id set.
func WriteClustersGnuplot(w io.Writer, cloud *geom.PointCloud, clusters curve.Group) error {
	bw := bufio.NewWriter(w)
	if err := writeRanges(bw, cloud); err != nil {
		return err
	}

	clustered := make([]bool, cloud.Len())
	for _, cl := range clusters {
		for _, pi := range cl {
			clustered[pi] = true
		}
	}
	var noise []int
	for i := range cloud.Points {
		if !clustered[i] {
			noise = append(noise, i)
		}
	}

	if len(noise) > 0 {
		if _, err := fmt.Fprint(bw, " '-' with points lc 'red' title 'noise',"); err != nil {
			return err
		}
	}
	for index, cl := range clusters {
		if len(cl) == 0 {
			// Fully absorbed into an overlap cluster.
			continue
		}
		ids := cloud.Points[cl[0]].ClusterIDs
		title := fmt.Sprintf("curve %s", JoinClusterIDs(ids))
		if len(ids) > 1 {
			title = fmt.Sprintf("overlap %s", JoinClusterIDs(ids))
		}
		if _, err := fmt.Fprintf(bw, " '-' with points lc '#%06x' title '%s',", ClusterColor(index), title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw); err != nil {
		return err
	}

	for _, pi := range noise {
		if err := writePoint(bw, &cloud.Points[pi], cloud.Is2D); err != nil {
			return err
		}
	}
	if len(noise) > 0 {
		if _, err := fmt.Fprintln(bw, "e"); err != nil {
			return err
		}
	}
	for _, cl := range clusters {
		if len(cl) == 0 {
			continue
		}
		for _, pi := range cl {
			if err := writePoint(bw, &cloud.Points[pi], cloud.Is2D); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw, "e"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "pause mouse keypress\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteSmoothedGnuplot writes the original cloud in black and the
// smoothed cloud in red as a gnuplot script, for visual inspection of
// the smoothing radius.
func WriteSmoothedGnuplot(w io.Writer, original, smoothed *geom.PointCloud) error {
	bw := bufio.NewWriter(w)
	if err := writeRanges(bw, original); err != nil {
		return err
	}
	if _, err := fmt.Fprint(bw, " '-' with points lc 'black' title 'original', '-' with points lc 'red' title 'smoothed'\n"); err != nil {
		return err
	}
	for i := range original.Points {
		if err := writePoint(bw, &original.Points[i], original.Is2D); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, "e"); err != nil {
		return err
	}
	for i := range smoothed.Points {
		if err := writePoint(bw, &smoothed.Points[i], smoothed.Is2D); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "e\npause mouse keypress\n"); err != nil {
		return err
	}
	return bw.Flush()
}
