package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/sqmon"
	"github.com/decibelcooper/sqmon/dimuon"
	"github.com/decibelcooper/sqmon/kinematics"
	"github.com/decibelcooper/sqmon/monitor"
)

var (
	output = flag.String("o", "vars.csv", "output CSV file")
	prefix = flag.String("prefix", "", "if set, save one histogram per variable as <prefix>_<variable>.png")
	nBins  = flag.Int("nbins", 50, "number of bins of the histograms")
	config = flag.String("config", "", "YAML file with the beam/target setup")
	clamp  = flag.Bool("clamp", false, "clamp cos(theta) into [-1, 1] before deriving sin(theta)")
	prof   = flag.String("profile", "", "profile the run (cpu, mem or trace)")
)

var labels = map[string]string{
	"mass":     "Mass (GeV)",
	"pT":       "p_T (GeV)",
	"x1":       "x_1",
	"x2":       "x_2",
	"xF":       "x_F",
	"costheta": "cos(theta)",
	"sintheta": "sin(theta)",
	"phi":      "phi (rad)",
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <input-file>

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("dimuon_vars: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 1 || *nBins < 1 {
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
	if *clamp {
		cfg.ClampCosTheta = true
	}
	eng, err := kinematics.NewEngine(cfg)
	if err != nil {
		log.Fatal(err)
	}

	events, err := dimuon.Read(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	vars := eng.Compute(events)

	err = dimuon.WriteCSV(*output, vars)
	if err != nil {
		log.Fatal(err)
	}

	for i, col := range vars.Columns() {
		name := kinematics.Names[i]
		log.Printf("%-8s %v", name, monitor.Summarize(col))

		if *prefix == "" {
			continue
		}
		err = plotVar(name, col)
		if err != nil {
			log.Printf("%s: %v", name, err)
		}
	}
}

func plotVar(name string, values []float64) error {
	hist, err := monitor.Hist(values, *nBins)
	if err != nil {
		return err
	}

	p, _ := plot.New()
	p.X.Label.Text = labels[name]
	p.Y.Label.Text = "Events"
	p.X.Tick.Marker = sqmon.Ticks{N: 5}
	p.Y.Tick.Marker = sqmon.Ticks{N: 5}

	h := hplot.NewH1D(hist)
	h.Infos.Style = hplot.HInfoSummary
	p.Add(h)

	return p.Save(6*vg.Inch, 4*vg.Inch, *prefix+"_"+name+".png")
}
