package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/sqmon"
	"github.com/decibelcooper/sqmon/dimuon"
	"github.com/decibelcooper/sqmon/kinematics"
	"github.com/decibelcooper/sqmon/monitor"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <input-files>...

Input files are proio event files (.proio) or CSV tables of
px+, py+, pz+, px-, py-, pz- records.

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("dimuon_mass: ")
	log.SetFlags(0)

	var (
		title  = flag.String("title", "", "plot title")
		output = flag.String("output", "out.png", "output file")
		config = flag.String("config", "", "YAML file with the beam/target setup")
		fitMax = flag.Float64("fitmax", 3.3, "upper mass bound of the J/psi fit (GeV)")
		noFit  = flag.Bool("nofit", false, "do not fit the J/psi peak")
		prof   = flag.String("profile", "", "profile the run (cpu, mem or trace)")
		marks  = sqmon.FloatArrayFlags{Array: []float64{monitor.JPsiMass, monitor.PsiPrimeMass}}
	)
	flag.Var(&marks, "mark", "masses to mark on the plot (GeV)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	profiler, err := sqmon.StartProfile(*prof, ".")
	if err != nil {
		log.Fatal(err)
	}
	defer profiler.Stop()

	cfg, err := kinematics.LoadConfig(*config)
	if err != nil {
		log.Fatal(err)
	}
	eng, err := kinematics.NewEngine(cfg)
	if err != nil {
		log.Fatal(err)
	}

	p, _ := plot.New()
	p.Title.Text = *title
	p.X.Label.Text = "Mass (GeV)"
	p.Y.Label.Text = "Events"
	p.X.Tick.Marker = sqmon.Ticks{N: 5, Marks: marks.Array}
	p.Y.Tick.Marker = sqmon.Ticks{N: 5}

	ymax := 0.0
	for i, filename := range flag.Args() {
		hist, err := makeMassHist(eng, filename)
		if err != nil {
			log.Fatal(err)
		}

		lineColor := color.RGBA{A: 255}
		switch i {
		case 1:
			lineColor = color.RGBA{G: 255, A: 255}
		case 2:
			lineColor = color.RGBA{B: 255, A: 255}
		case 3:
			lineColor = color.RGBA{R: 255, B: 127, G: 127, A: 255}
		}

		h := hplot.NewH1D(hist)
		h.LineStyle.Color = lineColor
		if len(flag.Args()) == 1 {
			h.Infos.Style = hplot.HInfoSummary
		}
		p.Add(h)
		ymax = maxContent(hist, ymax)

		if *noFit {
			continue
		}
		peak, err := monitor.FitPeak(hist, *fitMax, monitor.Peak{Mean: monitor.JPsiMass, Sigma: 0.1})
		if err != nil {
			log.Printf("%s: %v", filename, err)
			continue
		}
		log.Printf("%s: mean of the gaussian fit: %.3f GeV", filename, peak.Mean)
		log.Printf("%s: width (sigma) of the gaussian fit: %.3f GeV", filename, peak.Sigma)

		fn := plotter.NewFunction(peak.At)
		fn.Color = lineColor
		fn.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		fn.Samples = 200
		p.Add(fn)
	}

	for _, m := range marks.Array {
		line, err := plotter.NewLine(plotter.XYs{{X: m, Y: 0}, {X: m, Y: ymax}})
		if err != nil {
			log.Fatal(err)
		}
		line.Color = color.RGBA{R: 255, A: 255}
		line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(line)
	}

	err = p.Save(6*vg.Inch, 4*vg.Inch, *output)
	if err != nil {
		log.Fatal(err)
	}
}

func makeMassHist(eng *kinematics.Engine, filename string) (*hbook.H1D, error) {
	events, err := dimuon.Read(filename)
	if err != nil {
		return nil, err
	}

	vars := eng.Compute(events)
	log.Printf("%s: %d dimuons, mass %v", filename, vars.Len(), monitor.Summarize(vars.Mass))

	return monitor.MassHist(vars.Mass), nil
}

func maxContent(h *hbook.H1D, ymax float64) float64 {
	for i := 0; i < h.Len(); i++ {
		if _, y := h.XY(i); y > ymax {
			ymax = y
		}
	}
	return ymax
}
