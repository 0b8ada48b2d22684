package console

import (
	"fmt"
	"io"

	"github.com/rahmatrdn/go-flight-analytics/entity"
)

// PrintResults prints a count line, then one line per flight. The delay
// suffix appears only for flights that actually departed late; a missing
// delay prints as on-time rather than being dropped. With delayedOnly set,
// on-time rows are skipped from the listing while the count line still
// reflects everything the query returned.
func PrintResults(w io.Writer, rows []entity.FlightRow, delayedOnly bool) {
	fmt.Fprintf(w, "Got %d results.\n", len(rows))

	for _, row := range rows {
		delay := row.DelayMinutes()
		if delayedOnly && delay <= 0 {
			continue
		}

		if delay > 0 {
			fmt.Fprintf(w, "%d. %s -> %s by %s, Delay: %d Minutes\n",
				row.FlightID, row.OriginAirport, row.DestinationAirport, row.Airline, delay)
		} else {
			fmt.Fprintf(w, "%d. %s -> %s by %s\n",
				row.FlightID, row.OriginAirport, row.DestinationAirport, row.Airline)
		}
	}
}
