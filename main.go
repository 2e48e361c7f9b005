// Command triplclust detects one-dimensional curves in a 2D or 3D
// point cloud and labels every input point with the curves it belongs
// to, or as noise. Points are smoothed, grouped into approximately
// collinear triplets, and the triplets are hierarchically clustered
// under an oriented line-segment dissimilarity; cluster membership is
// then propagated back to the points.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/banshee-data/triplclust/internal/config"
	"github.com/banshee-data/triplclust/internal/curve"
	"github.com/banshee-data/triplclust/internal/geom"
	"github.com/banshee-data/triplclust/internal/hcluster"
	"github.com/banshee-data/triplclust/internal/output"
	"github.com/banshee-data/triplclust/internal/store"
)

// Exit codes of the tool.
const (
	exitOK       = 0
	exitUsage    = 1
	exitInput    = 2
	exitSemantic = 3
)

const usage = `Usage:
	triplclust [options] <infile>
Options (defaults in brackets):
	-r <radius>    radius for point smoothing [2dnn]
	               (can be numeric or multiple of dNN)
	-k <n>         number of neighbours in triplet creation [19]
	-n <n>         number of the best triplets to use [2]
	-a <alpha>     maximum value for the angle between the
	               triplet branches [0.03]
	-s <scale>     scaling factor for clustering [0.3dnn]
	               (can be numeric or multiple of dNN)
	-t <dist>      best cluster distance [auto]
	               (can be numeric or 'auto')
	-m <n>         minimum number of triplets for a cluster [5]
	-dmax <n>      max gap width within a cluster [none]
	               (can be numeric, multiple of dNN or 'none')
	-link <method> linkage method for clustering [single]
	               (can be 'single', 'complete', 'average')
	-ordered       input points are sampled along the curve
	-delim <char>  single char delimiter for csv input [' ']
	-skip <n>      number of lines skipped at head of infile [0]
	-maxpoints <n> abort when the input exceeds n points [unlimited]
	-oprefix <prefix>
	               write result not to stdout, but to <prefix>.csv
	               and (if -gnuplot is set) to <prefix>.gnuplot
	-gnuplot       print result as a gnuplot command
	-plot <file>   write a scatter image of the detected curves
	-chart <file>  write an HTML chart of the dendrogram heights
	-db <file>     record the run into an SQLite database
	-v             be verbose
	-vv            be more verbose and write debug trace files`

// cliOptions holds everything parsed from the command line.
type cliOptions struct {
	params    config.Params
	infile    string
	oprefix   string
	gnuplot   bool
	plotFile  string
	chartFile string
	dbFile    string
	delimiter byte
	skip      int
	maxPoints int
	verbose   int
}

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout))
}

// parseArgs turns the raw argument list into cliOptions. Any error is
// a usage error.
func parseArgs(args []string) (*cliOptions, error) {
	fs := flag.NewFlagSet("triplclust", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var (
		rArg       = fs.String("r", "2dnn", "smoothing radius")
		kArg       = fs.Int("k", 19, "triplet neighbourhood size")
		nArg       = fs.Int("n", 2, "best triplets per midpoint")
		aArg       = fs.Float64("a", 0.03, "max triplet branch angle error")
		sArg       = fs.String("s", "0.3dnn", "metric scale factor")
		tArg       = fs.String("t", "auto", "cluster cut threshold")
		mArg       = fs.Int("m", 5, "min triplets per cluster")
		dmaxArg    = fs.String("dmax", "none", "max gap width")
		linkArg    = fs.String("link", "single", "linkage method")
		orderedArg = fs.Bool("ordered", false, "input sampled along curve")
		delimArg   = fs.String("delim", " ", "csv delimiter")
		skipArg    = fs.Int("skip", 0, "header lines to skip")
		maxArg     = fs.Int("maxpoints", 0, "input point limit")
		oprefixArg = fs.String("oprefix", "", "output file prefix")
		gnuplotArg = fs.Bool("gnuplot", false, "gnuplot output")
		plotArg    = fs.String("plot", "", "cluster scatter image file")
		chartArg   = fs.String("chart", "", "dendrogram height chart file")
		dbArg      = fs.String("db", "", "run database file")
		vArg       = fs.Bool("v", false, "verbose")
		vvArg      = fs.Bool("vv", false, "very verbose")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, errors.New("no infile given")
	}

	opts := &cliOptions{
		params:    config.Default(),
		infile:    fs.Arg(0),
		oprefix:   *oprefixArg,
		gnuplot:   *gnuplotArg,
		plotFile:  *plotArg,
		chartFile: *chartArg,
		dbFile:    *dbArg,
		maxPoints: *maxArg,
	}

	var err error
	if opts.params.Radius, err = config.ParseScaled(*rArg); err != nil {
		return nil, fmt.Errorf("-r: %w", err)
	}
	if opts.params.Scale, err = config.ParseScaled(*sArg); err != nil {
		return nil, fmt.Errorf("-s: %w", err)
	}
	opts.params.K = *kArg
	opts.params.N = *nArg
	opts.params.Alpha = *aArg
	opts.params.MinTriplets = *mArg
	opts.params.Ordered = *orderedArg

	switch *tArg {
	case "auto", "automatic":
		opts.params.AutoThreshold = true
	default:
		opts.params.AutoThreshold = false
		var tv config.Scaled
		if tv, err = config.ParseScaled(*tArg); err != nil || tv.DNN {
			return nil, fmt.Errorf("-t: %q is not a number or 'auto'", *tArg)
		}
		opts.params.Threshold = tv.Value
	}

	if *dmaxArg != "none" {
		if opts.params.DMax, err = config.ParseScaled(*dmaxArg); err != nil {
			return nil, fmt.Errorf("-dmax: %w", err)
		}
		opts.params.SplitGaps = true
	}

	if opts.params.Linkage, err = hcluster.ParseLinkage(*linkArg); err != nil {
		return nil, err
	}

	if len(*delimArg) != 1 {
		return nil, errors.New("only a single character is allowed as delimiter")
	}
	opts.delimiter = (*delimArg)[0]

	if *skipArg < 0 {
		log.Printf("[Warning] -skip takes only positive integers; parameter is ignored")
	} else {
		opts.skip = *skipArg
	}

	if *vvArg {
		opts.verbose = 2
	} else if *vArg {
		opts.verbose = 1
	}
	return opts, nil
}

func run(args []string, stdout io.Writer) int {
	opts, err := parseArgs(args)
	if err != nil {
		log.Printf("[Error] %v", err)
		fmt.Fprintln(os.Stderr, usage)
		return exitUsage
	}

	started := time.Now()
	cloud, err := geom.LoadCSVFile(opts.infile, opts.delimiter, opts.skip, opts.maxPoints)
	if err != nil {
		if errors.Is(err, geom.ErrPointLimit) {
			log.Printf("[Error] in file '%s': %v", opts.infile, err)
			return exitSemantic
		}
		log.Printf("[Error] in file '%s': %v", opts.infile, err)
		return exitInput
	}
	if cloud.Len() == 0 {
		log.Printf("[Error] empty cloud in file '%s'", opts.infile)
		log.Printf("maybe you used the wrong delimiter")
		return exitInput
	}
	cloud.Ordered = opts.params.Ordered

	if opts.params.NeedsDNN() {
		dnn := geom.DNN(cloud)
		if opts.verbose > 0 {
			log.Printf("[Info] computed dnn: %g", dnn)
		}
		if dnn == 0 {
			log.Printf("[Error] dnn computed as zero. " +
				"Suggestion: remove doublets, e.g. with 'sort -u'")
			return exitSemantic
		}
		opts.params.ApplyDNN(dnn)
		if opts.verbose > 0 {
			log.Printf("[Info] computed smoothing radius: %g", opts.params.Radius.Value)
			log.Printf("[Info] computed distance scale: %g", opts.params.Scale.Value)
			if opts.params.SplitGaps {
				log.Printf("[Info] computed max gap: %g", opts.params.DMax.Value)
			}
		}
	}

	res := curve.Run(cloud, curve.Options{
		Radius:        opts.params.Radius.Value,
		K:             opts.params.K,
		N:             opts.params.N,
		Alpha:         opts.params.Alpha,
		Scale:         opts.params.Scale.Value,
		Threshold:     opts.params.Threshold,
		AutoThreshold: opts.params.AutoThreshold,
		MinTriplets:   opts.params.MinTriplets,
		DMax:          opts.params.DMax.Value,
		SplitGaps:     opts.params.SplitGaps,
		Linkage:       opts.params.Linkage,
		Gnuplot:       opts.gnuplot,
	})

	if opts.verbose > 0 {
		if opts.params.AutoThreshold {
			log.Printf("[Info] optimal cdist threshold: %g", res.Threshold)
		}
		log.Printf("[Info] in pruning removed clusters: %d", res.Pruned)
	}
	if opts.verbose > 1 {
		writeDebugArtifacts(cloud, res)
	}

	if err := writeResults(stdout, opts, cloud, res.Clusters); err != nil {
		log.Printf("[Error] %v", err)
		return exitInput
	}

	if opts.plotFile != "" {
		if err := output.WriteClusterPlot(opts.plotFile, cloud, res.Clusters); err != nil {
			log.Printf("[Error] can't write '%s': %v", opts.plotFile, err)
			return exitInput
		}
	}
	if opts.chartFile != "" {
		if err := output.WriteHeightChart(opts.chartFile, res.Heights, res.Threshold); err != nil {
			log.Printf("[Error] can't write '%s': %v", opts.chartFile, err)
			return exitInput
		}
	}
	if opts.dbFile != "" {
		if err := recordRun(opts, cloud, res, time.Since(started)); err != nil {
			log.Printf("[Error] can't record run in '%s': %v", opts.dbFile, err)
			return exitInput
		}
	}
	return exitOK
}

// writeResults emits the labelled cloud as CSV or gnuplot, to stdout
// or to <prefix>.csv / <prefix>.gnuplot.
func writeResults(stdout io.Writer, opts *cliOptions, cloud *geom.PointCloud, clusters curve.Group) error {
	if opts.oprefix == "" {
		if opts.gnuplot {
			return output.WriteClustersGnuplot(stdout, cloud, clusters)
		}
		return output.WriteClustersCSV(stdout, cloud)
	}

	csvPath := opts.oprefix + ".csv"
	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("can't write '%s': %w", csvPath, err)
	}
	if err := output.WriteClustersCSV(f, cloud); err != nil {
		f.Close()
		return fmt.Errorf("can't write '%s': %w", csvPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if opts.gnuplot {
		plotPath := opts.oprefix + ".gnuplot"
		f, err := os.Create(plotPath)
		if err != nil {
			return fmt.Errorf("can't write '%s': %w", plotPath, err)
		}
		if err := output.WriteClustersGnuplot(f, cloud, clusters); err != nil {
			f.Close()
			return fmt.Errorf("can't write '%s': %w", plotPath, err)
		}
		return f.Close()
	}
	return nil
}

// writeDebugArtifacts writes the -vv trace files. Failures are
// reported but never stop the pipeline.
func writeDebugArtifacts(cloud *geom.PointCloud, res *curve.Result) {
	writeFile := func(name string, write func(io.Writer) error) {
		f, err := os.Create(name)
		if err != nil {
			log.Printf("[Error] can't write '%s': %v", name, err)
			return
		}
		defer f.Close()
		if err := write(f); err != nil {
			log.Printf("[Error] can't write '%s': %v", name, err)
		}
	}
	writeFile("debug_smoothed.csv", func(w io.Writer) error {
		return output.WriteCloudCSV(w, res.Smoothed)
	})
	writeFile("debug_smoothed.gnuplot", func(w io.Writer) error {
		return output.WriteSmoothedGnuplot(w, cloud, res.Smoothed)
	})
	writeFile("debug_cdist.csv", func(w io.Writer) error {
		return output.WriteHeightsCSV(w, res.Heights)
	})
}

// recordRun persists the finished run and its labels.
func recordRun(opts *cliOptions, cloud *geom.PointCloud, res *curve.Result, elapsed time.Duration) error {
	s, err := store.Open(opts.dbFile)
	if err != nil {
		return err
	}
	defer s.Close()

	paramsJSON, err := json.Marshal(opts.params)
	if err != nil {
		return err
	}
	noise := 0
	for _, p := range cloud.Points {
		if len(p.ClusterIDs) == 0 {
			noise++
		}
	}
	return s.RecordRun(&store.Run{
		SourcePath:   opts.infile,
		ParamsJSON:   string(paramsJSON),
		PointCount:   cloud.Len(),
		ClusterCount: len(res.Clusters),
		NoiseCount:   noise,
		DurationMS:   elapsed.Milliseconds(),
	}, cloud)
}
