package report

import (
	"RGFlow/internal/model"
	"bufio"
	"io"
	"strings"
	"time"
)

const csvHeader = "id,client,description,created\n"

// ExportTicketsCSV пишет атендименты в порядке создания.
// client и description всегда в кавычках, id только при наличии спецсимволов, created — RFC 3339 в UTC.
func ExportTicketsCSV(w io.Writer, tickets []model.Ticket) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(csvHeader); err != nil {
		return err
	}
	for _, t := range tickets {
		line := quoteIfNeeded(t.ID) + "," + quote(t.Client) + "," + quote(t.Description) + "," +
			t.CreatedAt.UTC().Format(time.RFC3339) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// quoteIfNeeded оставляет обычный id как есть.
func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}
