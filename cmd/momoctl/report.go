package main

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var reportHeader = []string{"timestamp", "operation", "success", "code", "message"}

// appendReport adds one row to the CSV report, writing the header to a new file.
func appendReport(path string, at time.Time, res *outcome) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(reportHeader); err != nil {
			return err
		}
	}
	if err := w.Write([]string{
		at.UTC().Format(time.RFC3339),
		res.Operation,
		strconv.FormatBool(res.Response.Successful()),
		strconv.Itoa(res.Response.Code),
		res.Response.Message,
	}); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
