package reporter

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// SetNoColor disables ANSI color output.
func SetNoColor(v bool) {
	color.NoColor = v
}

// Ok prints a green check message.
func Ok(msg string) {
	fmt.Fprintf(os.Stderr, "  %s %s\n", green.Sprint("✓"), msg)
}

// Info prints an info line.
func Info(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

// Warn prints a yellow warning.
func Warn(msg string) {
	fmt.Fprintf(os.Stderr, "  %s %s\n", yellow.Sprint("⚠"), msg)
}

// Err prints a red error.
func Err(msg string) {
	fmt.Fprintf(os.Stderr, "  %s %s\n", red.Sprint("✗"), msg)
}

// Table prints a simple ASCII table from rows of cells.
func Table(columns []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range rows {
		for i := range columns {
			if n := utf8.RuneCountInString(cell(row, i)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] > 40 {
			widths[i] = 40
		}
	}
	sep := "+"
	for _, w := range widths {
		sep += strings.Repeat("-", w+2) + "+"
	}
	fmt.Fprintln(os.Stderr, sep)
	header := "|"
	for i, col := range columns {
		header += " " + pad(col, widths[i]) + " |"
	}
	fmt.Fprintln(os.Stderr, header)
	fmt.Fprintln(os.Stderr, sep)
	for _, row := range rows {
		line := "|"
		for i := range columns {
			line += " " + pad(cell(row, i), widths[i]) + " |"
		}
		fmt.Fprintln(os.Stderr, line)
	}
	fmt.Fprintln(os.Stderr, sep)
}

// cell truncates on rune boundaries so multibyte names never get cut
// mid-character.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	s := row[i]
	if r := []rune(s); len(r) > 40 {
		s = string(r[:37]) + "..."
	}
	return s
}

func pad(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}
