package google

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"google.golang.org/api/calendar/v3"
)

// ChooseCalendar lists the account's calendars on out and reads a numeric
// selection from in, reprompting on invalid input up to maxAttempts times.
func ChooseCalendar(srv *calendar.Service, in io.Reader, out io.Writer, maxAttempts int) (string, error) {
	list, err := srv.CalendarList.List().Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	if len(list.Items) == 0 {
		return "", fmt.Errorf("no calendars available on this account")
	}

	fmt.Fprintln(out, "Available calendars:")
	for i, item := range list.Items {
		fmt.Fprintf(out, "  %d) %s\n", i+1, item.Summary)
	}

	scanner := bufio.NewScanner(in)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(out, "Select a calendar [1-%d]: ", len(list.Items))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("input closed before a calendar was selected")
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n < 1 || n > len(list.Items) {
			fmt.Fprintln(out, "Invalid selection.")
			continue
		}
		return list.Items[n-1].Summary, nil
	}
	return "", fmt.Errorf("no valid selection after %d attempts", maxAttempts)
}
