package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"menedzer-plikow/internal/models"
)

func printTable(w io.Writer, headers []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(rows)
	table.Render()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sizeOf(n *models.Node) string {
	if n.IsFolder() {
		return "-"
	}
	return humanize.Bytes(uint64(n.Size))
}

func flagsOf(n *models.Node) string {
	var b strings.Builder
	if n.Starred {
		b.WriteByte('*')
	}
	if n.Shared {
		b.WriteByte('s')
	}
	if n.Deleted {
		b.WriteByte('d')
	}
	return b.String()
}

func (c *cli) printNodes(w io.Writer, nodes []models.Node) error {
	if c.output == "json" {
		return printJSON(w, nodes)
	}
	rows := make([][]string, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		rows = append(rows, []string{
			strconv.FormatInt(n.ID, 10),
			n.Name,
			n.Type,
			sizeOf(n),
			humanize.Time(n.ModifiedAt),
			flagsOf(n),
			n.Path,
		})
	}
	printTable(w, []string{"ID", "Name", "Type", "Size", "Modified", "Flags", "Path"}, rows)
	return nil
}

func (c *cli) printNode(w io.Writer, n *models.Node) error {
	if c.output == "json" {
		return printJSON(w, n)
	}
	parent := "root"
	if n.ParentID != nil {
		parent = strconv.FormatInt(*n.ParentID, 10)
	}
	rows := [][]string{
		{"id", strconv.FormatInt(n.ID, 10)},
		{"name", n.Name},
		{"type", n.Type},
		{"parent", parent},
		{"path", n.Path},
		{"size", sizeOf(n)},
		{"mime", n.MimeType},
		{"owner", n.Owner},
		{"flags", flagsOf(n)},
		{"created", n.CreatedAt.Format("2006-01-02 15:04:05")},
		{"modified", n.ModifiedAt.Format("2006-01-02 15:04:05")},
	}
	printTable(w, []string{"Field", "Value"}, rows)
	return nil
}

func printDone(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
