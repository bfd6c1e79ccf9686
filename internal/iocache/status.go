package iocache

import (
	"fmt"
	"io"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
)

// statusTimeFormat is the layout for chart modification times.
const statusTimeFormat = "2006-01-02 15:04:05"

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(w io.Writer, status schema.CacheStatus) {
	label := contract.LabelColor.Sprint
	_, _ = fmt.Fprintf(w, "%s %s\n", label("Cache Backend:"), status.Backend)
	_, _ = fmt.Fprintf(w, "%s %t\n", label("Connected:"), status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "%s %d\n", label("Cached Charts:"), status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "%s %s\n", label("Newest Chart:"), status.NewestChartTime.Format(statusTimeFormat))
		_, _ = fmt.Fprintf(w, "%s %s\n", label("Oldest Chart:"), status.OldestChartTime.Format(statusTimeFormat))
	}
	_, _ = fmt.Fprintf(w, "%s %d bytes\n", label("Table Size:"), status.TableSizeBytes)
}
