package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"platina/internal/config"
	"platina/internal/discovery"
	"platina/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	lister *discovery.Lister
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(cfg *config.Config, lister *discovery.Lister) *Formatter {
	return &Formatter{config: cfg, lister: lister, out: color.Output}
}

// SetOutput redirects the formatter, e.g. to a buffer in tests
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

func (f *Formatter) println(c *color.Color, format string, args ...any) {
	fmt.Fprintln(f.out, c.Sprintf(format, args...))
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
	faint  = color.New(color.Faint)
)

// PrintFileResult prints the outcome of one golden file: a single line when
// it passed, the colored report or the error otherwise.
func (f *Formatter) PrintFileResult(r *domain.FileResult) {
	name := f.relPath(r.Path)
	updated := ""
	if r.Updated {
		updated = " " + yellow.Sprint("(updated)")
	}

	switch {
	case r.Error != nil:
		f.println(red, "✗ %s", name)
		f.println(red, "  %v", r.Error)
	case r.Report != "":
		fmt.Fprintf(f.out, "%s%s\n", red.Sprintf("✗ %s", name), updated)
		f.PrintReport(r.Report)
	default:
		fmt.Fprintf(f.out, "%s %s%s\n", green.Sprintf("✓ %s", name), faint.Sprintf("(%d cases, %s)", len(r.Cases), r.Duration.Round(time.Millisecond)), updated)
	}
}

// PrintReport prints a failure report, coloring its markers
func (f *Formatter) PrintReport(report string) {
	for _, line := range strings.Split(strings.TrimSuffix(report, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "CASE FAILED: "):
			f.println(red, "  %s", line)
		case strings.HasPrefix(line, "PARAM MISMATCH: "):
			f.println(yellow, "    %s", line)
		case strings.HasPrefix(line, "expected: "):
			f.println(cyan, "      %s", line)
		case strings.HasPrefix(line, "actual: "):
			f.println(green, "      %s", line)
		default:
			fmt.Fprintf(f.out, "      %s\n", line)
		}
	}
}

// PrintSummary prints the statistics of a run followed by a tree of the
// failing cases.
func (f *Formatter) PrintSummary(output *domain.RunOutput) {
	meta := output.Meta

	fmt.Fprintln(f.out)
	f.println(cyan, "╔═══════════════════════════════════════════════════════════════╗")
	f.println(cyan, "║                   Golden Run Statistics                       ║")
	f.println(cyan, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Golden Files", fmt.Sprint(meta.TotalFiles), white},
		{"Passed Files", fmt.Sprint(meta.PassedFiles), green},
		{"Failed Files", fmt.Sprint(meta.FailedFiles), red},
		{"Errored Files", fmt.Sprint(meta.ErroredFiles), red},
		{"Cases", fmt.Sprint(meta.TotalCases), white},
		{"Mismatches", fmt.Sprint(meta.Mismatches), red},
		{"Mode", meta.Mode, white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ %s │\n", row.label, row.c.Sprintf("%-27s", row.value))
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	switch {
	case meta.FailedFiles == 0 && meta.ErroredFiles == 0:
		f.println(green, "✓ All golden files match!")
	default:
		f.println(red, "✗ %d file(s) failed with %d mismatch(es), %d file(s) could not be run",
			meta.FailedFiles, meta.Mismatches, meta.ErroredFiles)
		fmt.Fprintln(f.out)
		f.printMismatchTree(output.Details)
	}
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Cases    []string
	IsFile   bool
}

// printMismatchTree prints the failing cases grouped under their directories
func (f *Formatter) printMismatchTree(details []domain.Mismatch) {
	if len(details) == 0 {
		return
	}

	root := &TreeNode{Children: make(map[string]*TreeNode)}
	for _, m := range details {
		parts := strings.Split(filepath.ToSlash(f.relPath(m.File)), "/")
		current := root
		for i, part := range parts {
			if part == "" || part == "." {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}
			current = current.Children[part]
		}
		if len(current.Cases) == 0 || current.Cases[len(current.Cases)-1] != m.Case {
			current.Cases = append(current.Cases, m.Case)
		}
	}

	f.printTreeNode(root, "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		last := i == len(keys)-1

		connector, childPrefix := "├── ", "│   "
		if last {
			connector, childPrefix = "└── ", "    "
		}

		if child.IsFile {
			f.println(yellow, "%s%s%s", prefix, connector, child.Name)
			for j, name := range child.Cases {
				caseConnector := "├── "
				if j == len(child.Cases)-1 {
					caseConnector = "└── "
				}
				f.println(red, "%s%s%s", prefix+childPrefix, caseConnector, name)
			}
		} else {
			f.println(cyan, "%s%s%s", prefix, connector, child.Name)
		}
		f.printTreeNode(child, prefix+childPrefix)
	}
}

// CountTestCases returns the total number of cases across files.
func (f *Formatter) CountTestCases(files []domain.GoldenFile) (int, error) {
	var total int
	for _, file := range files {
		cases, err := f.lister.FindTestCases(file.Path)
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}

// PrintFileList prints a list of golden files, optionally with their cases.
// Files in failed (keyed by path, from the last run) are marked with [F].
func (f *Formatter) PrintFileList(files []domain.GoldenFile, showCases bool, caseFilter string, failed map[string]struct{}) {
	if showCases {
		f.println(green, "Found %d golden file(s) with cases:\n", len(files))
	} else {
		f.println(green, "Found %d golden file(s):\n", len(files))
	}

	filter := discovery.NewFilter()
	for i, file := range files {
		lastFile := i == len(files)-1

		marker := ""
		if _, ok := failed[file.Path]; ok {
			marker = " " + red.Sprint("[F]")
		}
		connector, childPrefix := "├── ", "│   "
		if lastFile {
			connector, childPrefix = "└── ", "    "
		}
		fmt.Fprintf(f.out, "%s%s\n", cyan.Sprintf("%s%s", connector, f.relPath(file.Path)), marker)

		if !showCases {
			continue
		}

		names, err := f.lister.FindTestCases(file.Path)
		if err != nil {
			f.println(red, "%s└── %v", childPrefix, err)
		} else if names = filter.FilterNames(names, caseFilter); len(names) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", childPrefix, red.Sprint("(no cases found)"))
		} else {
			for j, name := range names {
				caseConnector := "├── "
				if j == len(names)-1 {
					caseConnector = "└── "
				}
				fmt.Fprintf(f.out, "%s%s%s\n", childPrefix, caseConnector, yellow.Sprint(name))
			}
		}
		if !lastFile {
			fmt.Fprintln(f.out)
		}
	}
}

// relPath returns path relative to the project for display
func (f *Formatter) relPath(path string) string {
	rel, err := filepath.Rel(f.config.ProjectPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
