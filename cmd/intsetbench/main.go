// Command intsetbench demonstrates and benchmarks the intset package: it
// reports how many distinct values a random population of a given size and
// value range yields in a Set, and times insert/contains/iterate workloads
// against it. It does not report which storage representation the set uses.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gocompact/intset"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "intsetbench",
		Short: "intsetbench — demo and benchmark for the intset adaptive containers",
	}

	var count int
	var maxValue uint64
	var seed uint64

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "Insert count random values in [0, max) and report the resulting set length",
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
			s := intset.WithMaxAndCapacity(maxValue, count)
			for i := 0; i < count; i++ {
				s.Insert(rng.Uint64N(maxValue))
			}
			fmt.Printf("count requested: %d\n", count)
			fmt.Printf("count actual:    %d (duplicates coalesce)\n", s.Len())
			fmt.Printf("max value:       %d\n", maxValue)
			return nil
		},
	}
	describeCmd.Flags().IntVar(&count, "count", 1000, "number of values to insert")
	describeCmd.Flags().Uint64Var(&maxValue, "max", 1<<20, "exclusive upper bound on inserted values")
	describeCmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed")

	var benchOps int
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Time insert, contains, and iterate over a randomly populated set",
		RunE: func(cmd *cobra.Command, args []string) error {
			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
			values := make([]uint64, benchOps)
			for i := range values {
				values[i] = rng.Uint64N(maxValue)
			}

			s := intset.WithMaxAndCapacity(maxValue, benchOps)
			start := time.Now()
			for _, v := range values {
				s.Insert(v)
			}
			insertElapsed := time.Since(start)

			start = time.Now()
			hits := 0
			for _, v := range values {
				if s.Contains(v) {
					hits++
				}
			}
			containsElapsed := time.Since(start)

			start = time.Now()
			n := 0
			for range s.Iter() {
				n++
			}
			iterElapsed := time.Since(start)

			fmt.Printf("ops:         %d\n", benchOps)
			fmt.Printf("final len:   %d\n", s.Len())
			fmt.Printf("insert:      %v (%v/op)\n", insertElapsed, insertElapsed/time.Duration(benchOps))
			fmt.Printf("contains:    %v (%v/op), hits=%d\n", containsElapsed, containsElapsed/time.Duration(benchOps), hits)
			fmt.Printf("iterate:     %v (%d elements)\n", iterElapsed, n)
			return nil
		},
	}
	benchCmd.Flags().IntVar(&benchOps, "ops", 100_000, "number of operations to perform")
	benchCmd.Flags().Uint64Var(&maxValue, "max", 1<<20, "exclusive upper bound on inserted values")
	benchCmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed")

	rootCmd.AddCommand(describeCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
