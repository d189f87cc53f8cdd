// ./cmd/spkinfo/main.go
package main

import (
	"fmt"
	"os"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/ephemtools/spk"
)

// monthNames for readable coverage bounds.
var monthNames = [...]string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// calendar renders a Julian Date as a Gregorian calendar day.
func calendar(jd float64) string {
	y, m, d := julian.JDToCalendar(jd)
	return fmt.Sprintf("%d-%s-%05.2f", y, monthNames[m], d)
}

func main() {
	args := os.Args[1:]
	showComments := false
	if len(args) > 0 && args[0] == "-c" {
		showComments = true
		args = args[1:]
	}
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: spkinfo [-c] <file.bsp>\n")
		fmt.Fprintf(os.Stderr, "Prints the header, segment table, and optionally the comment\n")
		fmt.Fprintf(os.Stderr, "area of a SPICE SPK ephemeris file.\n")
		os.Exit(-1)
	}

	archive, err := spk.OpenSPK(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "spkinfo: %v\n", err)
		os.Exit(-1)
	}
	defer archive.Close()

	fr := archive.DAF.Record
	fmt.Printf("File:              %s\n", args[0])
	fmt.Printf("Locator:           %s\n", fr.LocatorID)
	fmt.Printf("Format:            %s\n", archive.DAF.FormatTag())
	fmt.Printf("Internal filename: %s\n", fr.InternalFilename)
	fmt.Printf("ND/NI:             %d/%d\n", fr.DoubleCount, fr.IntegerCount)
	fmt.Printf("Segments:          %d\n\n", len(archive.Segments))

	fmt.Printf("%-12s %8s %8s %6s %5s  %-24s %-24s\n",
		"Name", "Target", "Center", "Frame", "Type", "Start", "End")
	for _, seg := range archive.Segments {
		fmt.Printf("%-12s %8d %8d %6d %5d  %-24s %-24s\n",
			seg.Name, seg.Target, seg.Center, seg.Frame, seg.DataType,
			calendar(seg.StartJD()), calendar(seg.EndJD()))
	}

	if showComments {
		comments, err := archive.Comments()
		if err != nil {
			fmt.Fprintf(os.Stderr, "spkinfo: comments: %v\n", err)
			os.Exit(-1)
		}
		fmt.Printf("\n%s\n", comments)
	}
}
