// Command profiler exercises the archive codec under pprof.
//
// It builds a synthetic dataset in memory, runs one codec operation in a
// loop for a fixed duration or iteration count, and reports throughput.
// CPU, heap, wall-clock, and execution-trace profiles can be captured for
// any mode.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand" //nolint:gosec // intentional use for reproducible datasets
	"net/http"
	_ "net/http/pprof" //nolint:gosec // intentional profiling endpoint
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"time"

	"github.com/felixge/fgprof"
	"github.com/ofersadgat/nanotar"
)

type config struct {
	mode        string
	files       int
	fileSize    int
	dirCount    int
	pattern     string
	compression string
	duration    time.Duration
	iterations  int
	pprofAddr   string
	fgProfile   string
	cpuProfile  string
	memProfile  string
	traceFile   string
	randomSeed  int64
}

//nolint:unused // sink variables prevent compiler optimizations in profiling
var (
	sinkBytes   []byte
	sinkEntries []*nanotar.Entry
	sinkSummary *nanotar.Summary
)

func main() {
	cfg := parseFlags()

	if cfg.pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", cfg.pprofAddr)
			//nolint:gosec // intentional pprof server without timeouts for profiling
			if err := http.ListenAndServe(cfg.pprofAddr, nil); err != nil {
				log.Printf("pprof server error: %v", err)
			}
		}()
	}

	compression, err := nanotar.ParseCompression(cfg.compression)
	if err != nil {
		log.Fatal(err)
	}

	entries := makeEntries(cfg.files, cfg.fileSize, cfg.dirCount, cfg.pattern, cfg.randomSeed)
	dataset, err := buildDataset(entries, compression)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.fgProfile != "" {
		fgFile, fgErr := os.Create(cfg.fgProfile)
		if fgErr != nil {
			log.Fatal(fgErr)
		}
		stopFG := fgprof.Start(fgFile, fgprof.FormatPprof)
		defer func() {
			if err := stopFG(); err != nil {
				log.Printf("fgprof stop error: %v", err)
			}
			_ = fgFile.Close()
		}()
	}

	if cfg.cpuProfile != "" {
		cpuFile, cpuErr := os.Create(cfg.cpuProfile)
		if cpuErr != nil {
			log.Fatal(cpuErr) //nolint:gocritic // exitAfterDefer is intentional - profile cleanup is best-effort
		}
		if cpuErr = pprof.StartCPUProfile(cpuFile); cpuErr != nil {
			log.Fatal(cpuErr)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}()
	}

	if cfg.traceFile != "" {
		traceFile, traceErr := os.Create(cfg.traceFile)
		if traceErr != nil {
			log.Fatal(traceErr)
		}
		if traceErr = trace.Start(traceFile); traceErr != nil {
			log.Fatal(traceErr)
		}
		defer func() {
			trace.Stop()
			_ = traceFile.Close()
		}()
	}

	stats, err := runProfile(cfg, compression, entries, dataset)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile != "" {
		runtime.GC()
		f, err := os.Create(cfg.memProfile)
		if err != nil {
			log.Fatal(err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal(err)
		}
		_ = f.Close()
	}

	fmt.Printf("mode=%s ops=%d bytes=%d elapsed=%s throughput=%.2f MB/s\n",
		cfg.mode,
		stats.ops,
		stats.bytes,
		stats.elapsed,
		float64(stats.bytes)/(1024*1024)/stats.elapsed.Seconds(),
	)
}

type profileStats struct {
	ops     int
	bytes   int64
	elapsed time.Duration
}

// dataset holds the pre-built archives the decode modes loop over.
type dataset struct {
	raw  []byte // uncompressed archive
	blob []byte // compressed archive, nil when compression is none
}

func buildDataset(entries []nanotar.Entry, compression nanotar.Compression) (dataset, error) {
	raw, err := nanotar.Create(entries)
	if err != nil {
		return dataset{}, err
	}
	if compression == nanotar.CompressionNone {
		return dataset{raw: raw}, nil
	}
	blob, err := nanotar.CreateGzip(entries, nanotar.CreateWithCompression(compression))
	if err != nil {
		return dataset{}, err
	}
	return dataset{raw: raw, blob: blob}, nil
}

//nolint:gocognit,gocyclo,gocritic // complexity is inherent to multi-mode profiler dispatch; hugeParam acceptable for profiler
func runProfile(cfg config, compression nanotar.Compression, entries []nanotar.Entry, data dataset) (profileStats, error) {
	start := time.Now()
	ops := 0
	var byteCount int64

	shouldContinue := func() bool {
		if cfg.iterations > 0 {
			return ops < cfg.iterations
		}
		return time.Since(start) < cfg.duration
	}

	switch cfg.mode {
	case "parse":
		if data.blob == nil {
			for shouldContinue() {
				out, err := nanotar.Parse(data.raw)
				if err != nil {
					return profileStats{}, err
				}
				sinkEntries = out
				byteCount += int64(len(data.raw))
				ops++
			}
			break
		}
		for shouldContinue() {
			out, err := nanotar.ParseGzip(data.blob, nanotar.ParseWithCompression(compression))
			if err != nil {
				return profileStats{}, err
			}
			sinkEntries = out
			byteCount += int64(len(data.blob))
			ops++
		}

	case "parse-meta":
		for shouldContinue() {
			out, err := nanotar.Parse(data.raw, nanotar.ParseWithMetaOnly(true))
			if err != nil {
				return profileStats{}, err
			}
			sinkEntries = out
			byteCount += int64(len(data.raw))
			ops++
		}

	case "create":
		for shouldContinue() {
			out, err := nanotar.Create(entries)
			if err != nil {
				return profileStats{}, err
			}
			sinkBytes = out
			byteCount += int64(len(out))
			ops++
		}

	case "compress":
		for shouldContinue() {
			out, err := nanotar.CreateGzip(entries, nanotar.CreateWithCompression(compression))
			if err != nil {
				return profileStats{}, err
			}
			sinkBytes = out
			byteCount += int64(len(data.raw))
			ops++
		}

	case "stream":
		for shouldContinue() {
			for chunk, err := range nanotar.CreateGzipStream(entries, nanotar.CreateWithCompression(compression)) {
				if err != nil {
					return profileStats{}, err
				}
				sinkBytes = chunk
				byteCount += int64(len(chunk))
			}
			ops++
		}

	case "validate":
		for shouldContinue() {
			if err := nanotar.Validate(data.raw); err != nil {
				return profileStats{}, err
			}
			byteCount += int64(len(data.raw))
			ops++
		}

	case "inspect":
		for shouldContinue() {
			s, err := nanotar.Inspect(data.raw)
			if err != nil {
				return profileStats{}, err
			}
			sinkSummary = s
			byteCount += int64(len(data.raw))
			ops++
		}

	default:
		return profileStats{}, fmt.Errorf("unknown mode: %s", cfg.mode)
	}

	return profileStats{
		ops:     ops,
		bytes:   byteCount,
		elapsed: time.Since(start),
	}, nil
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.mode, "mode", "parse", "mode: parse, parse-meta, create, compress, stream, validate, inspect")
	flag.IntVar(&cfg.files, "files", 512, "number of files")
	flag.IntVar(&cfg.fileSize, "file-size", 16<<10, "file size in bytes")
	flag.IntVar(&cfg.dirCount, "dir-count", 16, "number of directories")
	flag.StringVar(&cfg.pattern, "pattern", "compressible", "pattern: compressible or random")
	flag.StringVar(&cfg.compression, "compression", "gzip", "compression: none, gzip, zlib, flate, zstd, xz, lz4")
	flag.DurationVar(&cfg.duration, "duration", 10*time.Second, "duration to run (ignored if iterations > 0)")
	flag.IntVar(&cfg.iterations, "iterations", 0, "number of iterations to run")
	flag.StringVar(&cfg.pprofAddr, "pprof-addr", "", "pprof listen address (e.g. :6060)")
	flag.StringVar(&cfg.fgProfile, "fgprofile", "", "write fgprof (wall clock) profile to file")
	flag.StringVar(&cfg.cpuProfile, "cpuprofile", "", "write CPU profile to file")
	flag.StringVar(&cfg.memProfile, "memprofile", "", "write heap profile to file")
	flag.StringVar(&cfg.traceFile, "trace", "", "write trace to file")
	flag.Int64Var(&cfg.randomSeed, "seed", 1, "random seed")
	flag.Parse()
	return cfg
}

func makeEntries(fileCount, fileSize, dirCount int, pattern string, seed int64) []nanotar.Entry {
	if dirCount <= 0 {
		dirCount = 1
	}
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // intentional use for reproducible datasets
	entries := make([]nanotar.Entry, 0, fileCount+dirCount)
	for dir := range dirCount {
		entries = append(entries, nanotar.Entry{Name: fmt.Sprintf("dir%02d", dir)})
	}
	for i := range fileCount {
		content := make([]byte, fileSize)
		switch pattern {
		case "random":
			rng.Read(content)
		default:
			fillByte := byte('a' + (i % 26))
			for j := range content {
				content[j] = fillByte
			}
			if len(content) > 0 {
				content[0] = byte(i)
			}
		}
		entries = append(entries, nanotar.Entry{
			Name: fmt.Sprintf("dir%02d/file%05d.dat", i%dirCount, i),
			Data: content,
		})
	}
	return entries
}
