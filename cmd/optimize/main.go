package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/aquarium/config"
)

// evalLog streams one CSV row per evaluation and tracks the best one.
type evalLog struct {
	w      *csv.Writer
	count  int
	best   float64
	bestX  []float64
	start  time.Time
	budget int
}

func newEvalLog(f *os.File, params *ParamVector, budget int) *evalLog {
	w := csv.NewWriter(f)
	header := []string{"eval", "fitness", "meals_per_min", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	w.Write(header)
	return &evalLog{w: w, start: time.Now(), budget: budget}
}

func (l *evalLog) record(x []float64, fitness, meals, quality float64) {
	l.count++
	if l.bestX == nil || fitness < l.best {
		l.best = fitness
		l.bestX = x
	}

	row := make([]string, 0, 4+len(x))
	row = append(row,
		strconv.Itoa(l.count),
		strconv.FormatFloat(fitness, 'f', 6, 64),
		strconv.FormatFloat(meals, 'f', 4, 64),
		strconv.FormatFloat(quality, 'f', 4, 64),
	)
	for _, v := range x {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	l.w.Write(row)
	l.w.Flush()

	elapsed := time.Since(l.start)
	eta := time.Duration(l.budget-l.count) * (elapsed / time.Duration(l.count))
	fmt.Printf("eval %d/%d meals/min=%.3f quality=%.2f best=%.3f elapsed=%s eta=%s\n",
		l.count, l.budget, meals, quality, l.best,
		elapsed.Round(time.Second), eta.Round(time.Second))
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 36000, "Simulation length per run in ticks")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), evalSeeds, baseCfg)

	logFile, err := os.Create(filepath.Join(*outputDir, "optimize_log.csv"))
	if err != nil {
		log.Fatalf("creating log file: %v", err)
	}
	defer logFile.Close()
	evals := newEvalLog(logFile, params, *maxEvals)

	popSize := *population
	if popSize == 0 {
		popSize = 4 + 3*params.Dim()/2
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evals.record(raw, fitness, evaluator.LastMeals(), evaluator.LastQuality())
			return fitness
		},
	}

	fmt.Printf("tuning %d parameters: population=%d max_evals=%d seeds=%d ticks=%d\n",
		params.Dim(), popSize, *maxEvals, *seeds, *maxTicks)

	result, err := optimize.Minimize(problem,
		params.Normalize(params.ExtractFromConfig(baseCfg)),
		&optimize.Settings{FuncEvaluations: *maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize},
	)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := evals.bestX
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\ndone: %d evaluations in %s, best fitness %.4f\n",
		evals.count, time.Since(evals.start).Round(time.Second), evals.best)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, best[i])
	}

	bestCfg := *baseCfg
	params.ApplyToConfig(&bestCfg, best)
	out := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		log.Printf("writing best config: %v", err)
		return
	}
	fmt.Printf("best config saved to %s\n", out)
}
