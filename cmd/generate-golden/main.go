// Command generate-golden writes the reference values used by the sequence
// calculator tests. Values are computed with math/big so that the file is
// independent of the decimal arithmetic under test.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData is a single test case in the golden file.
type GoldenData struct {
	N      uint64 `json:"n"`
	Result string `json:"result"`
}

var targets = map[string][]uint64{
	"catalan":   {0, 1, 2, 3, 4, 5, 10, 15, 20, 35, 50, 100, 200},
	"factorial": {0, 1, 2, 3, 5, 10, 20, 21, 25, 50, 100, 200, 500},
	"fibonacci": {0, 1, 2, 3, 4, 5, 10, 20, 50, 92, 93, 94, 100, 128, 256, 500, 1000, 2000},
}

var oracles = map[string]func(uint64) *big.Int{
	"catalan":   catalanBig,
	"factorial": factorialBig,
	"fibonacci": fibBig,
}

func main() {
	outputDir := flag.String("out", "internal/sequence/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "sequences_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	fmt.Println("Generating golden data...")
	data := make(map[string][]GoldenData, len(targets))
	for name, ns := range targets {
		oracle := oracles[name]
		for _, n := range ns {
			data[name] = append(data[name], GoldenData{N: n, Result: oracle(n).String()})
		}
		fmt.Printf("Generated %d %s terms\n", len(ns), name)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func factorialBig(n uint64) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(2, int64(n))
}

// catalanBig returns binomial(2n, n) / (n+1).
func catalanBig(n uint64) *big.Int {
	k := int64(n)
	c := new(big.Int).Binomial(2*k, k)
	return c.Quo(c, big.NewInt(k+1))
}
