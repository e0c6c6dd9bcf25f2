package main

import (
	"bufio"
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

const (
	numPrimes    = 1000
	primesPerRow = 10
	stripModulus = 3 * 3 * 5 * 7
	stripsPerRow = 5
)

type tableData struct {
	Count     int
	Largest   uint64
	Modulus   int
	PrimeRows []string
	StripRows []string
}

type stripEntry struct {
	div        int
	e3, e5, e7 int
}

func main() {
	// Compute the tables
	primes := sievePrimes(numPrimes)
	strips := stripTable(stripModulus)
	data := tableData{
		Count:     len(primes),
		Largest:   primes[len(primes)-1],
		Modulus:   stripModulus,
		PrimeRows: primeRows(primes),
		StripRows: stripRows(strips),
	}

	// Generate Go code from the tables using a template
	code, err := generateGoCode(filepath.Join("..", "scripts", "primes", "prime_data.tmpl"), data)
	if err != nil {
		panic(fmt.Errorf("error generating Go code: %v", err))
	}

	// Write the generated Go code to a file
	err = writeToFile("prime_data.go", code)
	if err != nil {
		panic(fmt.Errorf("error writing to file: %v", err))
	}
}

// sievePrimes returns the first n primes.
func sievePrimes(n int) []uint64 {
	limit := 16
	for {
		composite := make([]bool, limit+1)
		primes := make([]uint64, 0, n)
		for i := 2; i <= limit && len(primes) < n; i++ {
			if composite[i] {
				continue
			}
			primes = append(primes, uint64(i))
			for j := i * i; j <= limit; j += i {
				composite[j] = true
			}
		}
		if len(primes) == n {
			return primes
		}
		limit *= 2
	}
}

// stripTable maps every residue r modulo m to gcd(r, m) and the exponents
// of 3, 5 and 7 in it.
func stripTable(m int) []stripEntry {
	table := make([]stripEntry, m)
	for r := range table {
		g := gcd(r, m)
		e := stripEntry{div: g}
		for g%3 == 0 {
			g /= 3
			e.e3++
		}
		for g%5 == 0 {
			g /= 5
			e.e5++
		}
		for g%7 == 0 {
			g /= 7
			e.e7++
		}
		table[r] = e
	}
	return table
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func primeRows(primes []uint64) []string {
	rows := []string{}
	for i := 0; i < len(primes); i += primesPerRow {
		var row strings.Builder
		for j := i; j < min(i+primesPerRow, len(primes)); j++ {
			if j > i {
				row.WriteByte(' ')
			}
			row.WriteString(strconv.FormatUint(primes[j], 10))
			row.WriteByte(',')
		}
		rows = append(rows, row.String())
	}
	return rows
}

func stripRows(strips []stripEntry) []string {
	rows := []string{}
	for i := 0; i < len(strips); i += stripsPerRow {
		var row strings.Builder
		for j := i; j < min(i+stripsPerRow, len(strips)); j++ {
			if j > i {
				row.WriteByte(' ')
			}
			e := strips[j]
			fmt.Fprintf(&row, "{%d, %d, %d, %d},", e.div, e.e3, e.e5, e.e7)
		}
		rows = append(rows, row.String())
	}
	return rows
}

func generateGoCode(filename string, data tableData) ([]byte, error) {
	// Create a new template object from the template file
	tmpl, err := template.New(filepath.Base(filename)).ParseFiles(filename)
	if err != nil {
		return nil, err
	}

	// Execute the template
	var output bytes.Buffer
	err = tmpl.Execute(&output, data)
	if err != nil {
		return nil, err
	}

	// Format the output as Go code
	formatted, err := format.Source(output.Bytes())
	if err != nil {
		return nil, err
	}
	return formatted, nil
}

func writeToFile(filename string, content []byte) error {
	// Write the content to a file
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	writer := bufio.NewWriter(out)
	_, err = writer.Write(content)
	if err != nil {
		return err
	}
	err = writer.Flush()
	if err != nil {
		return err
	}
	return nil
}
