package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	chgStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	trkStyle   = lipgloss.NewStyle().Faint(true)
	delStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	pathStyle  = lipgloss.NewStyle().Faint(true)
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func ChgLine(w io.Writer, path string) {
	fmt.Fprintln(w, chgStyle.Render("chg")+"  "+path)
}

func TrkLine(w io.Writer, path string) {
	fmt.Fprintln(w, trkStyle.Render("trk")+"  "+path)
}

func DelLine(w io.Writer, path string) {
	fmt.Fprintln(w, delStyle.Render("del")+"  "+path)
}

func SummaryLine(w io.Writer, count int) {
	fmt.Fprintf(w, "synced %d files\n", count)
}

// GeneratedLine reports a file written by gen.
func GeneratedLine(w io.Writer, src, out string) {
	fmt.Fprintln(w, newStyle.Render("gen")+"  "+src+" -> "+out)
}

func ErrorLine(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error")+": "+err.Error())
}

func HintLine(w io.Writer, keyword string) {
	fmt.Fprintln(w, hintStyle.Render("hint")+": did you mean `"+keyword+"`?")
}

// ListRow prints one registered test: the spec file and its go test -run
// pattern, padded to fileWidth.
func ListRow(w io.Writer, file string, line int, pattern string, fileWidth int) {
	loc := fmt.Sprintf("%s:%d", file, line)
	pad := ""
	if n := fileWidth - len(loc); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintln(w, pathStyle.Render(loc)+pad+"  "+pattern)
}
