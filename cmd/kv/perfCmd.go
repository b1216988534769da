package kv

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	cmdUtil "github.com/kvrdb/kvr/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for kvr servers",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix  = "__test"
	perfNumThreads = 10
	perfKeySpread  = 100
	perfSkip       = make([]string, 0)
)

func init() {
	key := "skip"
	perfCmd.Flags().String(key, "", cmdUtil.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))

	key = "threads"
	perfCmd.Flags().Int(key, 10, cmdUtil.WrapString("Number of concurrent connections to use for the benchmark"))

	key = "keys"
	perfCmd.Flags().Int(key, 100, cmdUtil.WrapString("How many different keys to use for the tests"))

	key = "csv"
	perfCmd.Flags().String(key, "", cmdUtil.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

// runPerf drives a handful of testing.Benchmark-based workloads against
// the server named by --addr, one kvr connection per parallel goroutine
// since the wire protocol is not safe for concurrent use on a single
// connection.
func runPerf(_ *cobra.Command, _ []string) error {
	addr := viper.GetString("addr")

	fmt.Println("Performance testing tool for kvr servers")
	fmt.Printf("\nConfiguration:\naddr: %s\nthreads: %d\nkeys: %d\n\n", addr, perfNumThreads, perfKeySpread)
	fmt.Println("starting tests...")

	results := make(map[string]testing.BenchmarkResult)

	setResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("set") {
			return
		}
		getKey := keyFunc("set")

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			c, err := Dial(addr, clientTimeout)
			if err != nil {
				log.Printf("(set) - dial error: %v", err)
				return
			}
			defer c.Close()

			counter := 0
			for pb.Next() {
				if _, err := c.Call(clientTimeout, "set", getKey(counter), "test"); err != nil {
					log.Printf("(set) - error: %v", err)
				}
				counter++
			}
		})
	})
	results["set"] = setResult
	printResult("set", setResult)

	getResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("get") {
			return
		}
		getKey := keyFunc("get")
		seedKeys(addr, "get")

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			c, err := Dial(addr, clientTimeout)
			if err != nil {
				log.Printf("(get) - dial error: %v", err)
				return
			}
			defer c.Close()

			counter := 0
			for pb.Next() {
				if _, err := c.Call(clientTimeout, "get", getKey(counter)); err != nil {
					log.Printf("(get) - error: %v", err)
				}
				counter++
			}
		})
	})
	results["get"] = getResult
	printResult("get", getResult)

	delResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("del") {
			return
		}
		getKey := keyFunc("del")
		seedKeys(addr, "del")

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			c, err := Dial(addr, clientTimeout)
			if err != nil {
				log.Printf("(del) - dial error: %v", err)
				return
			}
			defer c.Close()

			counter := 0
			for pb.Next() {
				if _, err := c.Call(clientTimeout, "del", getKey(counter)); err != nil {
					log.Printf("(del) - error: %v", err)
				}
				counter++
			}
		})
	})
	results["del"] = delResult
	printResult("del", delResult)

	zaddResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("zadd") {
			return
		}

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			c, err := Dial(addr, clientTimeout)
			if err != nil {
				log.Printf("(zadd) - dial error: %v", err)
				return
			}
			defer c.Close()

			counter := 0
			for pb.Next() {
				name := fmt.Sprintf("%s-zadd-member-%d", perfKeyPrefix, counter%perfKeySpread)
				score := strconv.Itoa(counter % 1000)
				if _, err := c.Call(clientTimeout, "zadd", perfKeyPrefix+"-zset", score, name); err != nil {
					log.Printf("(zadd) - error: %v", err)
				}
				counter++
			}
		})
	})
	results["zadd"] = zaddResult
	printResult("zadd", zaddResult)

	mixedResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("mixed") {
			return
		}
		getKey := keyFunc("mixed")
		seedKeys(addr, "mixed")

		b.SetParallelism(perfNumThreads)
		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			c, err := Dial(addr, clientTimeout)
			if err != nil {
				log.Printf("(mixed) - dial error: %v", err)
				return
			}
			defer c.Close()

			counter := 0
			for pb.Next() {
				key := getKey(counter)
				var err error
				switch counter % 3 {
				case 0:
					_, err = c.Call(clientTimeout, "set", key, "test")
				case 1:
					_, err = c.Call(clientTimeout, "get", key)
				case 2:
					_, err = c.Call(clientTimeout, "pttl", key)
				}
				if err != nil {
					log.Printf("(mixed) - error: %v", err)
				}
				counter++
			}
		})
	})
	results["mixed"] = mixedResult
	printResult("mixed", mixedResult)

	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, addr); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

func shouldSkip(test string) bool {
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// keyFunc returns a function mapping a counter to one of perfKeySpread
// keys under prefix, cycling with wraparound.
func keyFunc(prefix string) func(int) string {
	return func(i int) string {
		return fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, i%perfKeySpread)
	}
}

// seedKeys populates perfKeySpread keys for a read/delete-oriented
// benchmark before timing starts.
func seedKeys(addr, prefix string) {
	c, err := Dial(addr, clientTimeout)
	if err != nil {
		log.Printf("(%s) - seed dial error: %v", prefix, err)
		return
	}
	defer c.Close()

	getKey := keyFunc(prefix)
	for i := 0; i < perfKeySpread; i++ {
		if _, err := c.Call(clientTimeout, "set", getKey(i), "test"); err != nil {
			log.Printf("(%s) - seed error: %v", prefix, err)
		}
	}
}

func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1)
	opsPerSec := 1.0 / (nsPerOp / 1e9)
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, addr string) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped", "Addr", "Threads", "Keys"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for test, result := range results {
		var nsPerOp, opsPerSec float64
		skipped := "false"
		if result.NsPerOp() == 0 {
			skipped = "true"
		} else {
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			addr,
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfKeySpread),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
