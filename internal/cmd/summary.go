package cmd

import (
	"io"
	"strings"

	"github.com/rodaine/table"

	"github.com/ezerfernandes/scalawrap/internal/wrapper"
)

func printSummary(w io.Writer, reports []wrapper.Report) {
	tbl := table.New("Chapter", "Scala blocks", "Wrappers stripped", "Lines").WithWriter(w)

	var blocks, stripped int

	for _, r := range reports {
		labels := make([]string, 0, len(r.Wrapped))
		for _, block := range r.Wrapped {
			labels = append(labels, wrapper.Label(block))
		}

		tbl.AddRow(r.Chapter, r.Blocks, r.Stripped, strings.Join(labels, ", "))

		blocks += r.Blocks
		stripped += r.Stripped
	}

	tbl.AddRow("total", blocks, stripped, "")
	tbl.Print()
}
