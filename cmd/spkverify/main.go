// ./cmd/spkverify/main.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/ephemtools/spk"
)

// Tolerances for comparing computed against reference states. SPK
// evaluation is deterministic, but reference files produced by other
// toolkits round their output.
const (
	absTolerance = 1e-6
	relTolerance = 1e-12
)

// referenceState is one line of a reference file:
//
//	center target jd x y z vx vy vz
//
// positions in km, velocities in km/day. Blank lines and lines starting
// with '#' are ignored.
type referenceState struct {
	center, target int
	jd             float64
	want           [6]float64
}

func parseLine(line string) (referenceState, error) {
	fields := strings.Fields(line)
	if len(fields) != 9 {
		return referenceState{}, fmt.Errorf("want 9 fields, got %d", len(fields))
	}
	var r referenceState
	var err error
	if r.center, err = strconv.Atoi(fields[0]); err != nil {
		return r, fmt.Errorf("bad center %q", fields[0])
	}
	if r.target, err = strconv.Atoi(fields[1]); err != nil {
		return r, fmt.Errorf("bad target %q", fields[1])
	}
	if r.jd, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return r, fmt.Errorf("bad jd %q", fields[2])
	}
	for i := 0; i < 6; i++ {
		if r.want[i], err = strconv.ParseFloat(fields[3+i], 64); err != nil {
			return r, fmt.Errorf("bad component %q", fields[3+i])
		}
	}
	return r, nil
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: spkverify <file.bsp> <reference.txt>\n")
		fmt.Fprintf(os.Stderr, "Each reference line: center target jd x y z vx vy vz\n")
		os.Exit(-1)
	}

	archive, err := spk.OpenSPK(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "spkverify: %v\n", err)
		os.Exit(-1)
	}
	defer archive.Close()

	ref, err := os.Open(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "spkverify: %v\n", err)
		os.Exit(-1)
	}
	defer ref.Close()

	var checked, failed int
	scanner := bufio.NewScanner(ref)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r, err := parseLine(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spkverify: line %d: %v\n", lineNo, err)
			os.Exit(-1)
		}

		segment, err := archive.Segment(r.center, r.target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spkverify: line %d: %v\n", lineNo, err)
			os.Exit(-1)
		}
		state, err := segment.ComputeAndDifferentiate(r.jd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "spkverify: line %d: %v\n", lineNo, err)
			os.Exit(-1)
		}

		got := [6]float64{
			state.Position.X, state.Position.Y, state.Position.Z,
			state.Velocity.X, state.Velocity.Y, state.Velocity.Z,
		}
		checked++
		for i := 0; i < 6; i++ {
			if !scalar.EqualWithinAbsOrRel(got[i], r.want[i], absTolerance, relTolerance) {
				failed++
				fmt.Printf("MISMATCH line %d (%d->%d @ JD %.8f) component %d: got %.12e want %.12e\n",
					lineNo, r.center, r.target, r.jd, i, got[i], r.want[i])
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "spkverify: %v\n", err)
		os.Exit(-1)
	}

	fmt.Printf("%d states checked, %d failed\n", checked, failed)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "spkverify: %v\n", spk.ErrValidationFailure)
		os.Exit(1)
	}
}
