package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/smith3v/scripture-vocab/pkg/db"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"lemma_id", "lemma", "gloss", "language", "interval_index", "due_date"}

// WriteCSV writes one row per word after a header, with a BOM and CRLF line
// endings so spreadsheet tools open it as UTF-8.
func WriteCSV(w io.Writer, words []db.VocabWord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	if err := writer.Write(header); err != nil {
		return err
	}
	for _, word := range words {
		due := ""
		if !word.DueDate.IsZero() {
			due = word.DueDate.UTC().Format(time.RFC3339)
		}
		record := []string{
			word.ID,
			word.Lemma,
			word.Gloss(),
			word.Language,
			strconv.Itoa(word.CurrentIntervalIndex),
			due,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func Filename(now time.Time) string {
	return fmt.Sprintf("scripture-vocab-%s.csv", now.Format("20060102"))
}
