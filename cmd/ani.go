package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/will-rowe/gani/src/ani"
	"github.com/will-rowe/gani/src/bitset"
	"github.com/will-rowe/gani/src/fracminhash"
	"github.com/will-rowe/gani/src/misc"
	"github.com/will-rowe/gani/src/paralleldriver"
	"github.com/will-rowe/gani/src/reporting"
	"github.com/will-rowe/gani/src/seedmask"
	"github.com/will-rowe/gani/src/seqio"
	"github.com/will-rowe/gani/src/sketch"
	"github.com/will-rowe/gani/src/version"
)

// the command line arguments for the ani subcommand
var (
	windowSize    *uint   // window_length (k_window)
	informative   *uint   // m, the number of informative positions in the seed
	maskSeed      *int64  // deterministic seed used to generate a spaced mask
	denominator   *int    // C, the frac-min-hash denominator
	nonce         *int64  // user-supplied nonce for the selection hash
	outFile       *string // path to write the ANI CSV report to
	appendOut     *bool   // suppress the CSV header when appending to an existing report
	queryList     *string // file of newline-separated query FASTA paths
	referenceList *string // file of newline-separated reference FASTA paths, paired by index with queryList
)

var aniCmd = &cobra.Command{
	Use:   "ani [fasta paths...]",
	Short: "estimate pairwise ANI between a batch of genome assemblies",
	Long: `Sketch every input assembly with a canonical, optionally spaced-seed-masked
k-mer extractor under a fractional min-hash filter, then write one CSV row
per pair with the containment-derived ANI estimate.

Either give a list of FASTA paths directly (every distinct pair is
reported), or give --query and --reference files (one path per line) to
report only the paired-by-index comparisons.`,
	Run: func(cmd *cobra.Command, args []string) {
		runAni(args)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

func init() {
	windowSize = aniCmd.Flags().UintP("window", "k", 21, "window length (k), in nucleotides")
	informative = aniCmd.Flags().UintP("informative", "m", 0, "number of informative seed positions (defaults to window length, i.e. a contiguous k-mer)")
	maskSeed = aniCmd.Flags().Int64("maskSeed", 42, "deterministic seed used to generate a spaced seed mask when -m < -k")
	denominator = aniCmd.Flags().IntP("denominator", "c", fracminhash.DefaultDenominator, "fractional min-hash denominator C (1 retains every k-mer)")
	nonce = aniCmd.Flags().Int64("nonce", 0, "nonce mixed into the fractional min-hash selection hash")
	outFile = aniCmd.Flags().StringP("out", "o", "gani-results.csv", "path to write the ANI CSV report to")
	appendOut = aniCmd.Flags().Bool("append", false, "append to an existing report instead of overwriting it (suppresses the header)")
	queryList = aniCmd.Flags().String("query", "", "file of newline-separated query FASTA paths (pairs with --reference)")
	referenceList = aniCmd.Flags().String("reference", "", "file of newline-separated reference FASTA paths (pairs with --query)")
	RootCmd.AddCommand(aniCmd)
}

func aniParamCheck(args []string) ([]string, []string, error) {
	if *informative == 0 {
		*informative = *windowSize
	}
	if *informative > *windowSize {
		return nil, nil, fmt.Errorf("informative positions (%d) cannot exceed window length (%d)", *informative, *windowSize)
	}
	if *proc <= 0 || *proc > runtime.NumCPU() {
		*proc = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(*proc)

	if *queryList != "" || *referenceList != "" {
		if *queryList == "" || *referenceList == "" {
			return nil, nil, fmt.Errorf("both --query and --reference must be given together")
		}
		queries, err := readPathList(*queryList)
		if err != nil {
			return nil, nil, err
		}
		references, err := readPathList(*referenceList)
		if err != nil {
			return nil, nil, err
		}
		if len(queries) != len(references) {
			return nil, nil, fmt.Errorf("--query (%d paths) and --reference (%d paths) must list the same number of paths", len(queries), len(references))
		}
		return queries, references, nil
	}

	if len(args) < 2 {
		return nil, nil, fmt.Errorf("need at least 2 FASTA paths to compare, or --query/--reference file lists")
	}
	for _, path := range args {
		if err := misc.CheckFile(path); err != nil {
			return nil, nil, err
		}
	}
	return args, nil, nil
}

func readPathList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading path list %s: %w", path, err)
	}
	defer f.Close()
	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths, scanner.Err()
}

func runAni(args []string) {
	if *profiling {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}
	logFH := misc.StartLogging(*logFile)
	defer logFH.Close()
	log.SetOutput(logFH)
	log.Printf("i am gani (version %s)", version.VERSION)

	paths, pairedReferences, err := aniParamCheck(args)
	misc.ErrorCheck(err)
	misc.ErrorCheck(misc.CheckOutDir(*outFile))
	log.Printf("\tprocessors: %d", *proc)
	log.Printf("\twindow length (k): %d", *windowSize)
	log.Printf("\tinformative positions (m): %d", *informative)
	log.Printf("\tfrac-min-hash denominator (C): %d", *denominator)

	mask := seedmask.Contiguous(int(*informative))
	if *informative != *windowSize {
		mask, err = seedmask.RandomSpaced(int(*windowSize), int(*informative), *maskSeed)
		misc.ErrorCheck(err)
		log.Printf("\tusing a spaced seed mask (seed %d)", *maskSeed)
	}

	predicate, err := fracminhash.New(*denominator, *nonce)
	misc.ErrorCheck(err)

	log.Printf("building sketches for %d input(s)...", len(paths)+len(pairedReferences))
	querySketches, err := paralleldriver.BuildSketches(paths, mask, int(*windowSize), predicate.Func(), seqio.ReadRuns, *proc)
	misc.ErrorCheck(err)
	log.Println(misc.PrintMemUsage())

	out, err := os.OpenFile(*outFile, openFlags(*appendOut), 0644)
	misc.ErrorCheck(err)
	defer out.Close()
	writer, err := reporting.NewANIWriter(out, *appendOut)
	misc.ErrorCheck(err)

	m := int(*informative)

	if pairedReferences != nil {
		referenceSketches, err := paralleldriver.BuildSketches(pairedReferences, mask, int(*windowSize), predicate.Func(), seqio.ReadRuns, *proc)
		misc.ErrorCheck(err)
		counts, err := paralleldriver.PairwiseIntersections(querySketches, referenceSketches, *proc)
		misc.ErrorCheck(err)
		for i := range paths {
			writeRow(writer, paths[i], pairedReferences[i], counts[i], querySketches[i], mask, int(*windowSize), m)
		}
		log.Println("finished")
		return
	}

	var aSketches, bSketches []*sketch.Set
	var aPaths, bPaths []string
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			aSketches = append(aSketches, querySketches[i])
			bSketches = append(bSketches, querySketches[j])
			aPaths = append(aPaths, paths[i])
			bPaths = append(bPaths, paths[j])
		}
	}
	counts, err := paralleldriver.PairwiseIntersections(aSketches, bSketches, *proc)
	misc.ErrorCheck(err)
	for i := range aPaths {
		writeRow(writer, aPaths[i], bPaths[i], counts[i], aSketches[i], mask, int(*windowSize), m)
	}
	log.Println("finished")
}

func writeRow(w *reporting.ANIWriter, fileA, fileB string, intersection int, reference *sketch.Set, mask bitset.Bitset, windowSize, m int) {
	containment := ani.Containment(intersection, reference.Len())
	estimate := ani.Estimate(containment, m)
	misc.ErrorCheck(w.WriteRow(fileA, fileB, estimate, windowSize, mask))
}

func openFlags(appending bool) int {
	if appending {
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
}
