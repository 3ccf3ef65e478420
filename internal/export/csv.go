package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/meltforce/liftplan/internal/schedule"
)

// WriteCSV writes the month as one CSV table. Weight is blank for
// unweighted rows.
func WriteCSV(w io.Writer, m schedule.Month) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, l := range Flatten(m) {
		if err := writer.Write(l.record()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ToCSV exports the month to a CSV file.
func ToCSV(m schedule.Month, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, m); err != nil {
		return err
	}
	return file.Close()
}
