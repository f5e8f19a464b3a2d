package notifier

import (
	"fmt"
	"io"
	"os"
	"time"

	"IntradaySentinel/internal/model"
)

// Notifier renders a batch for an operator.
type Notifier interface {
	Notify(batch model.Batch) error
	// Waiting reports the pause before the next cycle; updated is false when
	// the cycle produced no data.
	Waiting(next time.Duration, updated bool) error
}

// ConsoleNotifier writes batches to a terminal.
type ConsoleNotifier struct {
	Out io.Writer
}

// NewConsoleNotifier writes to stdout.
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{Out: os.Stdout}
}

func (c *ConsoleNotifier) Notify(batch model.Batch) error {
	_, err := io.WriteString(c.Out, FormatBatch(batch))
	return err
}

func (c *ConsoleNotifier) Waiting(next time.Duration, updated bool) error {
	status := "Data updated."
	if !updated {
		status = "No data available this cycle."
	}
	_, err := fmt.Fprintf(c.Out, "%s Waiting %s for the next update...\n\n", status, next)
	return err
}
