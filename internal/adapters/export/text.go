package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"waste-route-service/internal/domain"
)

const (
	textHeader    = "Collected Waste Data by Date:"
	textEmpty     = "No waste collection data available."
	textSeparator = " ---------------------------------------------------------"
)

// WriteText renders the ledger as the plain-text collection report, one
// block per date in lexicographic key order.
func WriteText(w io.Writer, ledger *domain.Ledger) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, textHeader)

	if ledger == nil || ledger.Len() == 0 {
		fmt.Fprintln(bw, textEmpty)
		return flush(bw)
	}

	for _, date := range ledger.Dates() {
		fmt.Fprintf(bw, "Date: %s\n", date)
		for _, rec := range ledger.Records(date) {
			fmt.Fprintf(bw, "Vehicle Model: %s, Driver Name: %s, Waste Area: %s, Fuel Required: %.6g liters\n",
				rec.VehicleModel, rec.DriverName, rec.WasteArea, rec.FuelRequired)
			fmt.Fprintf(bw, "Route: %s\n", rec.RouteString())
		}
		fmt.Fprintln(bw, textSeparator)
	}

	return flush(bw)
}

func flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ledger text: %w", err)
	}
	return nil
}

// AppendTextFile appends the text report to path, creating the file and its
// directory when missing.
func AppendTextFile(path string, ledger *domain.Ledger) (err error) {
	if path == "" {
		return errors.New("append ledger file: path must not be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("append ledger file %q: create dir: %w", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("append ledger file %q: open: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("append ledger file %q: close: %w", path, cerr)
		}
	}()

	if err := WriteText(f, ledger); err != nil {
		return fmt.Errorf("append ledger file %q: %w", path, err)
	}
	return nil
}

// ReadTextFile returns the previously exported report. A missing file reads
// as empty.
func ReadTextFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger file %q: %w", path, err)
	}
	return b, nil
}
