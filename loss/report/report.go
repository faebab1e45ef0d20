// Package report renders sweep results as the delimited tables consumed by
// downstream tooling.
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/multirate-loss/loss"
)

// Format selects the table encoding.
type Format string

const (
	// FormatText is the comma-space table with a capacity header line.
	FormatText Format = "text"
	// FormatCSV is RFC 4180 CSV at full float precision.
	FormatCSV Format = "csv"
	// FormatYAML is a single YAML document.
	FormatYAML Format = "yaml"
)

var validFormats = map[Format]bool{
	FormatText: true,
	FormatCSV:  true,
	FormatYAML: true,
}

// IsValidFormat reports whether name is a recognized format.
func IsValidFormat(name string) bool {
	return validFormats[Format(name)]
}

// Write renders points in the given format.
func Write(w io.Writer, format Format, sys loss.System, points []loss.LoadPoint) error {
	switch format {
	case FormatText:
		return WriteText(w, sys, points)
	case FormatCSV:
		return WriteCSV(w, sys, points)
	case FormatYAML:
		return WriteYAML(w, sys, points)
	default:
		return fmt.Errorf("unknown report format %q; valid: text, csv, yaml", format)
	}
}

// WriteText writes the two header lines followed by one row per load point,
// load at two decimals and each blocking probability at six.
func WriteText(w io.Writer, sys loss.System, points []loss.LoadPoint) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "System capacity: %d, Requested AU: %s\n", sys.Capacity, joinInts(sys.Demands(), ", "))

	columns := make([]string, 0, len(sys.Classes)+1)
	columns = append(columns, "Offered traffic per unit capacity")
	for i := range sys.Classes {
		columns = append(columns, fmt.Sprintf("Blocking probability for stream %d", i+1))
	}
	fmt.Fprintln(bw, strings.Join(columns, ", "))

	for _, pt := range points {
		row := make([]string, 0, len(pt.Blocking)+1)
		row = append(row, strconv.FormatFloat(pt.Load, 'f', 2, 64))
		for _, e := range pt.Blocking {
			row = append(row, strconv.FormatFloat(e, 'f', 6, 64))
		}
		fmt.Fprintln(bw, strings.Join(row, ", "))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// WriteCSV writes a load column and one column per class.
func WriteCSV(w io.Writer, sys loss.System, points []loss.LoadPoint) error {
	cw := csv.NewWriter(w)

	header := []string{"load"}
	for i, d := range sys.Demands() {
		header = append(header, fmt.Sprintf("stream_%d_t%d", i+1, d))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	for _, pt := range points {
		record := []string{strconv.FormatFloat(pt.Load, 'g', -1, 64)}
		for _, e := range pt.Blocking {
			record = append(record, strconv.FormatFloat(e, 'g', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// Document is the YAML form of a sweep.
type Document struct {
	Capacity int         `yaml:"capacity"`
	Demands  []int       `yaml:"demands"`
	Points   []PointYAML `yaml:"points"`
}

// PointYAML is one load point in a Document.
type PointYAML struct {
	Load     float64   `yaml:"load"`
	Blocking []float64 `yaml:"blocking,flow"`
}

// WriteYAML writes a Document.
func WriteYAML(w io.Writer, sys loss.System, points []loss.LoadPoint) error {
	doc := Document{Capacity: sys.Capacity, Demands: sys.Demands(), Points: make([]PointYAML, len(points))}
	for i, pt := range points {
		doc.Points[i] = PointYAML{Load: pt.Load, Blocking: pt.Blocking}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// SaveToFile creates or truncates path and writes points in format.
// The format is checked before the file is touched.
func SaveToFile(path string, format Format, sys loss.System, points []loss.LoadPoint) (err error) {
	if !validFormats[format] {
		return fmt.Errorf("unknown report format %q; valid: text, csv, yaml", format)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	if err := Write(file, format, sys, points); err != nil {
		return err
	}
	logrus.Debugf("Successfully wrote %d load points to '%s'", len(points), path)
	return nil
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
