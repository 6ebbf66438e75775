package main

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sort"
	"strings"
	"text/tabwriter"

	"notepad/internal/types"
)

const version = "dev"

const listTimeLayout = "2006-01-02 15:04"

func printNotes(output io.Writer, notes []*types.Note) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tUPDATED\tTITLE")
	for _, note := range notes {
		if note == nil {
			continue
		}
		updated := "-"
		if at := note.UpdatedAt(); !at.IsZero() {
			updated = at.Local().Format(listTimeLayout)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", note.ID, updated, oneLine(note.Title))
	}
	_ = writer.Flush()
}

// notesNewestFirst flattens a collection in display order; equal timestamps
// fall back to id order.
func notesNewestFirst(notes types.Notes) []*types.Note {
	out := make([]*types.Note, 0, len(notes))
	for _, note := range notes {
		if note != nil {
			out = append(out, note)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastUpdated != out[j].LastUpdated {
			return out[i].LastUpdated > out[j].LastUpdated
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func oneLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		var revision string
		var modified string
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				revision = setting.Value
			case "vcs.modified":
				modified = setting.Value
			}
		}
		if revision != "" {
			if modified == "true" {
				return revision + "-dirty"
			}
			return revision
		}
	}

	exe, err := os.Executable()
	if err == nil {
		file, err := os.Open(exe)
		if err == nil {
			defer file.Close()
			hasher := sha256.New()
			if _, err := io.Copy(hasher, file); err == nil {
				sum := hasher.Sum(nil)
				return fmt.Sprintf("bin-%x", sum[:6])
			}
		}
	}

	return version
}
