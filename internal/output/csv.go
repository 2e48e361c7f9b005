// Package output renders labelled point clouds and debug artifacts:
// CSV and gnuplot command output, the smoothed-cloud and merge-height
// debug files, a PNG scatter of the final clusters and an HTML chart
// of the dendrogram heights.
package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/triplclust/internal/geom"
)

// fmtFloat renders coordinates in fixed-point form with six decimals.
func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// JoinClusterIDs renders a point's cluster membership: "-1" for noise,
// otherwise the ascending ids joined with ';'.
func JoinClusterIDs(ids []int) string {
	if len(ids) == 0 {
		return "-1"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ";")
}

// WriteClustersCSV writes the labelled cloud as CSV: x,y,z,curveID
// (x,y,curveID for 2D clouds) after two comment header lines.
func WriteClustersCSV(w io.Writer, cloud *geom.PointCloud) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprint(bw, "# Comment: curveID -1 represents noise\n# x, y, z, curveID\n"); err != nil {
		return err
	}
	cw := csv.NewWriter(bw)
	for _, p := range cloud.Points {
		record := []string{fmtFloat(p.Vec.X), fmtFloat(p.Vec.Y)}
		if !cloud.Is2D {
			record = append(record, fmtFloat(p.Vec.Z))
		}
		record = append(record, JoinClusterIDs(p.ClusterIDs))
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteCloudCSV writes the bare cloud coordinates, one point per line.
// Used for the smoothed-cloud debug file.
func WriteCloudCSV(w io.Writer, cloud *geom.PointCloud) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprint(bw, "# x,y,z\n"); err != nil {
		return err
	}
	cw := csv.NewWriter(bw)
	for _, p := range cloud.Points {
		record := []string{fmtFloat(p.Vec.X), fmtFloat(p.Vec.Y)}
		if !cloud.Is2D {
			record = append(record, fmtFloat(p.Vec.Z))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteHeightsCSV writes one dendrogram merge height per line in merge
// order. The file feeds the published R script that visualises the
// automatic threshold.
func WriteHeightsCSV(w io.Writer, heights []float64) error {
	bw := bufio.NewWriter(w)
	for _, h := range heights {
		if _, err := fmt.Fprintf(bw, "%s\n", fmtFloat(h)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
