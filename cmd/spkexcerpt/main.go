// ./cmd/spkexcerpt/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/viper"

	"github.com/ephemtools/spk"
)

// parseDate accepts either a plain Julian Date ("2459000.5") or a Gregorian
// calendar day ("2020-05-31").
func parseDate(s string) (float64, error) {
	if jd, err := strconv.ParseFloat(s, 64); err == nil {
		return jd, nil
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("date %q is neither a Julian Date nor YYYY-MM-DD", s)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("bad year in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("bad month in %q", s)
	}
	d, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("bad day in %q", s)
	}
	return julian.CalendarGregorianToJD(y, m, d), nil
}

// parseTargets splits a comma-separated NAIF ID list.
func parseTargets(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, field := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("bad target id %q", field)
		}
		out = append(out, id)
	}
	return out, nil
}

func main() {
	start := flag.String("start", "", "start of the window (Julian Date or YYYY-MM-DD)")
	end := flag.String("end", "", "end of the window (Julian Date or YYYY-MM-DD)")
	targets := flag.String("targets", "", "comma-separated NAIF target ids to keep (default: all)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: spkexcerpt -start DATE -end DATE [-targets IDS] <in.bsp> <out.bsp>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Defaults may live in an optional spkexcerpt config file next to the
	// working directory or under $HOME.
	viper.SetConfigName("spkexcerpt")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.spk")
	viper.SetDefault("log_level", "warning")
	viper.SetDefault("targets", "")
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "spkexcerpt: config: %v\n", err)
			os.Exit(-1)
		}
	}
	if err := spk.SetLogLevel(viper.GetString("log_level")); err != nil {
		fmt.Fprintf(os.Stderr, "spkexcerpt: %v\n", err)
		os.Exit(-1)
	}
	if *targets == "" {
		*targets = viper.GetString("targets")
	}

	if flag.NArg() != 2 || *start == "" || *end == "" {
		flag.Usage()
		os.Exit(-1)
	}

	startJD, err := parseDate(*start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spkexcerpt: %v\n", err)
		os.Exit(-1)
	}
	endJD, err := parseDate(*end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spkexcerpt: %v\n", err)
		os.Exit(-1)
	}
	if endJD <= startJD {
		fmt.Fprintf(os.Stderr, "spkexcerpt: end %f is not after start %f\n", endJD, startJD)
		os.Exit(-1)
	}
	keep, err := parseTargets(*targets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spkexcerpt: %v\n", err)
		os.Exit(-1)
	}

	source, err := spk.OpenSPK(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "spkexcerpt: %v\n", err)
		os.Exit(-1)
	}
	defer source.Close()

	out, err := os.Create(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "spkexcerpt: %v\n", err)
		os.Exit(-1)
	}

	excerpt, err := source.Excerpt(out, startJD, endJD, keep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spkexcerpt: %v\n", err)
		os.Exit(-1)
	}
	defer excerpt.Close()

	logrus.WithFields(logrus.Fields{
		"segments": len(excerpt.Segments),
		"output":   flag.Arg(1),
	}).Info("excerpt written")
	fmt.Printf("wrote %s with %d segment(s):\n%s\n", flag.Arg(1), len(excerpt.Segments), excerpt)
}
