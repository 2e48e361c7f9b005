package output

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/triplclust/internal/curve"
	"github.com/banshee-data/triplclust/internal/geom"
)

// WriteClusterPlot renders the labelled cloud as a 2D (x, y) scatter
// image. Each cluster is drawn in its deterministic colour, noise in
// red. The output format follows the file extension (.png, .svg, ...).
func WriteClusterPlot(path string, cloud *geom.PointCloud, clusters curve.Group) error {
	p := plot.New()
	p.Title.Text = "detected curves"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	clustered := make([]bool, cloud.Len())
	for _, cl := range clusters {
		for _, pi := range cl {
			clustered[pi] = true
		}
	}

	var noisePts plotter.XYs
	for i, pt := range cloud.Points {
		if !clustered[i] {
			noisePts = append(noisePts, plotter.XY{X: pt.Vec.X, Y: pt.Vec.Y})
		}
	}
	if len(noisePts) > 0 {
		sc, err := plotter.NewScatter(noisePts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
		p.Legend.Add("noise", sc)
	}

	for index, cl := range clusters {
		if len(cl) == 0 {
			continue
		}
		pts := make(plotter.XYs, 0, len(cl))
		for _, pi := range cl {
			pts = append(pts, plotter.XY{X: cloud.Points[pi].Vec.X, Y: cloud.Points[pi].Vec.Y})
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		c := ClusterColor(index)
		sc.GlyphStyle.Color = color.RGBA{
			R: uint8(c >> 16),
			G: uint8(c >> 8),
			B: uint8(c),
			A: 255,
		}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
		p.Legend.Add(fmt.Sprintf("curve %s", JoinClusterIDs(cloud.Points[cl[0]].ClusterIDs)), sc)
	}

	return p.Save(8*vg.Inch, 8*vg.Inch, path)
}
