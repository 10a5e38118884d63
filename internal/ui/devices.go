package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DeviceRow is one line of the registered devices table
type DeviceRow struct {
	ID          string
	Product     string
	Nickname    string
	PasswordSet bool
}

// RenderDeviceTable renders devices as aligned columns. Rows are printed in
// the given order.
func RenderDeviceTable(rows []DeviceRow) string {
	headers := []string{"DEVICE", "PRODUCT", "NICKNAME", "PASSWORD"}

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		password := PendingMarker + " not set"
		if row.PasswordSet {
			password = SuccessMarker + " set"
		}
		nickname := row.Nickname
		if nickname == "" {
			nickname = "-"
		}
		cells = append(cells, []string{row.ID, row.Product, nickname, password})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var lines []string
	lines = append(lines, renderRow(headers, widths, TableHeaderStyle))
	for _, row := range cells {
		lines = append(lines, renderRow(row, widths, TableCellStyle))
	}
	return strings.Join(lines, "\n")
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	cols := make([]string, len(cells))
	for i, cell := range cells {
		cols[i] = style.Width(widths[i] + 2).Render(cell)
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
