// Package config models the pipeline parameters exposed on the command
// line. Length-like parameters (smoothing radius, metric scale, gap
// width) may be given as absolute values or as multiples of the
// cloud's characteristic length dNN; ApplyDNN resolves them once dNN
// is known.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/banshee-data/triplclust/internal/hcluster"
)

// Scaled is a length value that is either absolute or a multiple of
// dNN.
type Scaled struct {
	Value float64 `json:"value"`
	DNN   bool    `json:"dnn"`
}

// ParseScaled parses "2", "2dnn" or "2dNN" argument forms.
func ParseScaled(s string) (Scaled, error) {
	t := strings.TrimSpace(s)
	dnn := false
	for _, suffix := range []string{"dnn", "dNN"} {
		if strings.HasSuffix(t, suffix) {
			t = strings.TrimSpace(strings.TrimSuffix(t, suffix))
			dnn = true
			break
		}
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return Scaled{}, fmt.Errorf("%q is not a number", s)
	}
	return Scaled{Value: v, DNN: dnn}, nil
}

// Params are the user-configurable pipeline parameters.
type Params struct {
	Radius        Scaled           `json:"radius"`
	K             int              `json:"k"`
	N             int              `json:"n"`
	Alpha         float64          `json:"alpha"`
	Scale         Scaled           `json:"scale"`
	Threshold     float64          `json:"threshold"`
	AutoThreshold bool             `json:"auto_threshold"`
	MinTriplets   int              `json:"min_triplets"`
	DMax          Scaled           `json:"dmax"`
	SplitGaps     bool             `json:"split_gaps"`
	Linkage       hcluster.Linkage `json:"linkage"`
	Ordered       bool             `json:"ordered"`
}

// Default returns the parameter defaults of the reference tool.
func Default() Params {
	return Params{
		Radius:        Scaled{Value: 2, DNN: true},
		K:             19,
		N:             2,
		Alpha:         0.03,
		Scale:         Scaled{Value: 0.3, DNN: true},
		AutoThreshold: true,
		MinTriplets:   5,
		Linkage:       hcluster.Single,
	}
}

// NeedsDNN reports whether any active parameter is dNN-relative.
func (p *Params) NeedsDNN() bool {
	return p.Radius.DNN || p.Scale.DNN || (p.SplitGaps && p.DMax.DNN)
}

// ApplyDNN resolves every dNN-relative value to an absolute length.
func (p *Params) ApplyDNN(dnn float64) {
	for _, s := range []*Scaled{&p.Radius, &p.Scale, &p.DMax} {
		if s.DNN {
			s.Value *= dnn
			s.DNN = false
		}
	}
}
