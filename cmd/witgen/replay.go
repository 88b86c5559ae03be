package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/bnb-chain/zkwitness/cmd/utils"
	"github.com/bnb-chain/zkwitness/common/gopool"
	"github.com/bnb-chain/zkwitness/core/rw"
	"github.com/bnb-chain/zkwitness/core/witness"
	"github.com/bnb-chain/zkwitness/log"
	"github.com/bnb-chain/zkwitness/trace"
)

var replayCommand = &cli.Command{
	Action:    replay,
	Name:      "replay",
	Usage:     "Generate the witness of one or more trace files",
	ArgsUsage: "<traceFile> (<traceFile 2> ... <traceFile N>)",
	Flags:     utils.WitnessFlags,
	Description: `
The replay command reads debug_traceTransaction or debug_traceBlockByNumber
results (bare or wrapped in a JSON-RPC response) and replays every file as one
block. Files are replayed concurrently. A summary is printed when all files are
done, and with --output the witness of every file is written as JSON.`,
}

// replayResult is the outcome of replaying a single trace file.
type replayResult struct {
	File     string
	Txs      int
	Elapsed  time.Duration
	Witness  *witness.Witness
	Calls    mapset.Set[uint64]
	Digests  mapset.Set[common.Hash]
	CopySize int
	Masked   int
}

func replay(ctx *cli.Context) error {
	files := utils.SplitArgs(ctx.Args().Slice())
	if len(files) == 0 {
		return errors.New("no trace file given")
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	closer := log.Setup(cfg.Log)
	defer closer.Close()

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
	}
	results, errs := replayFiles(cfg, files)
	printSummary(os.Stdout, files, results, errs)
	if metrics.Enabled {
		metrics.WriteOnce(metrics.DefaultRegistry, os.Stderr)
	}

	var failed int
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d trace files failed", failed, len(files))
	}
	return nil
}

// replayFiles replays every file on the worker pool. Results and errors are
// indexed like files.
func replayFiles(cfg witgenConfig, files []string) ([]*replayResult, []error) {
	results := make([]*replayResult, len(files))
	workers := cfg.Workers
	if workers <= 0 {
		workers = gopool.Threads(len(files))
	}
	pool, err := gopool.New(workers)
	if err != nil {
		errs := make([]error, len(files))
		for i := range errs {
			errs[i] = err
		}
		return results, errs
	}
	defer pool.Release()

	log.Info("Replaying traces", "files", len(files), "workers", workers)
	log.WarnIf(cfg.Witness.Verify, "Verification mode enabled, every step is checked against the trace")

	var (
		done     atomic.Int64
		progress = &log.EveryN{N: 100}
	)
	errs := pool.ForEach(len(files), func(i int) error {
		defer func() {
			log.InfoBy(progress, "Replay progress", "done", done.Add(1), "files", len(files))
		}()
		res, err := replayFile(cfg.Witness, files[i])
		if err != nil {
			log.Error("Trace replay failed", "file", files[i], "err", err)
			return err
		}
		if cfg.OutputDir != "" {
			if err := writeWitness(cfg.OutputDir, res); err != nil {
				return err
			}
		}
		log.Info("Trace replayed", "file", files[i], "txs", res.Txs, "steps", len(res.Witness.Steps),
			"records", len(res.Witness.Records), "elapsed", common.PrettyDuration(res.Elapsed))
		results[i] = res
		return nil
	})
	return results, errs
}

// replayFile replays all transaction traces of a file as a single block.
func replayFile(cfg witness.Config, file string) (*replayResult, error) {
	start := time.Now()
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(err, "reading trace file")
	}
	traces, err := trace.DecodeBlock(raw)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	block := witness.NewBlock(cfg)
	for i, steps := range traces {
		if err := block.HandleSteps(steps); err != nil {
			return nil, errors.Wrapf(err, "%s: tx %d", file, i)
		}
	}
	w, err := block.Witness()
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	res := &replayResult{
		File:    file,
		Txs:     len(traces),
		Elapsed: time.Since(start),
		Witness: w,
		Calls:   mapset.NewThreadUnsafeSet[uint64](),
		Digests: mapset.NewThreadUnsafeSet[common.Hash](),
	}
	for _, step := range w.Steps {
		res.Calls.Add(step.CallID)
	}
	for _, rec := range block.Container.Stack() {
		if rec.Direction == rw.Write {
			res.Digests.Add(common.Hash(rec.Value.Bytes32()))
		}
	}
	for _, ev := range w.CopyEvents {
		res.CopySize += len(ev.CopyBytes.Bytes)
		res.Masked += ev.CopyBytes.MaskCount()
	}
	return res, nil
}

// writeWitness stores the witness of res as <name>.witness.json in dir.
func writeWitness(dir string, res *replayResult) error {
	out, err := json.MarshalIndent(res.Witness, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding witness")
	}
	name := filepath.Base(res.File)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".witness.json"
	if err := os.WriteFile(filepath.Join(dir, name), out, 0644); err != nil {
		return errors.Wrap(err, "writing witness")
	}
	return nil
}

func printSummary(w io.Writer, files []string, results []*replayResult, errs []error) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Txs", "Steps", "Records", "Copy events", "Copy bytes", "Masked", "Calls", "Digests", "Result"})
	var steps, records int
	for i, res := range results {
		if res == nil {
			var msg string
			if errs[i] != nil {
				msg = errs[i].Error()
			}
			table.Append([]string{filepath.Base(files[i]), "-", "-", "-", "-", "-", "-", "-", "-", msg})
			continue
		}
		steps += len(res.Witness.Steps)
		records += len(res.Witness.Records)
		table.Append([]string{
			filepath.Base(res.File),
			fmt.Sprint(res.Txs),
			fmt.Sprint(len(res.Witness.Steps)),
			fmt.Sprint(len(res.Witness.Records)),
			fmt.Sprint(len(res.Witness.CopyEvents)),
			fmt.Sprint(res.CopySize),
			fmt.Sprint(res.Masked),
			fmt.Sprint(res.Calls.Cardinality()),
			fmt.Sprint(res.Digests.Cardinality()),
			"ok",
		})
	}
	table.SetFooter([]string{"Total", "", fmt.Sprint(steps), fmt.Sprint(records), "", "", "", "", "", ""})
	table.Render()
}
