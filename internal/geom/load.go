package geom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
)

// ErrPointLimit is returned when the input exceeds the configured
// maximum point count.
var ErrPointLimit = errors.New("point limit exceeded")

// ParseError describes a malformed input record. Row is the 1-based
// line number in the file (including skipped header lines); Column is
// the 1-based column of the offending value, or 0 when the whole row
// is at fault.
type ParseError struct {
	Row    int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("row %d column %d: %s", e.Row, e.Column, e.Msg)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Msg)
}

// LoadCSV reads a point cloud from r. Records are split by delimiter;
// lines that are empty, whitespace-only or start with '#' are skipped.
// Two-column records mark the cloud as 2D (z = 0); mixing 2- and
// 3-column records is an error. Columns beyond the third are ignored.
// skip header lines are discarded before parsing. If maxPoints > 0 and
// the input holds more points, an error wrapping ErrPointLimit is
// returned.
func LoadCSV(r io.Reader, delimiter byte, skip, maxPoints int) (*PointCloud, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	cloud := &PointCloud{}
	row := 0
	count2d := 0
	for i := 0; i < skip && sc.Scan(); i++ {
		row++
	}
	for sc.Scan() {
		row++
		line := sc.Text()
		if line == "" || strings.TrimSpace(line) == "" || line[0] == '#' {
			continue
		}
		if maxPoints > 0 && len(cloud.Points) >= maxPoints {
			return nil, fmt.Errorf("%w: more than %d points", ErrPointLimit, maxPoints)
		}

		items := strings.Split(line, string(rune(delimiter)))
		if len(items) < 2 {
			return nil, &ParseError{Row: row, Msg: "too few columns"}
		}
		if len(items) == 2 {
			items = append(items, "0")
			count2d++
		}
		var coords [3]float64
		for col := 0; col < 3; col++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(items[col]), 64)
			if err != nil {
				return nil, &ParseError{Row: row, Column: col + 1, Msg: "not a number"}
			}
			coords[col] = v
		}
		cloud.Points = append(cloud.Points, Point{
			Vec:   r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]},
			Index: len(cloud.Points) + 1,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if count2d > 0 && count2d != len(cloud.Points) {
		return nil, &ParseError{Row: row, Msg: "mixed 2d and 3d points"}
	}
	cloud.Is2D = count2d > 0
	return cloud, nil
}

// LoadCSVFile opens path and loads it with LoadCSV.
func LoadCSVFile(path string, delimiter byte, skip, maxPoints int) (*PointCloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCSV(f, delimiter, skip, maxPoints)
}
