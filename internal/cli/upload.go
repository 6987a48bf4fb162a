package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/clip-qa-backend/internal/domain"
	"github.com/tbourn/clip-qa-backend/internal/services"
)

var requiredColumns = []string{"title", "url", "duration_seconds"}

// VideoCreator is the slice of VideoService used by upload.
type VideoCreator interface {
	Create(ctx context.Context, in services.VideoInput) (*domain.Video, error)
}

type uploadRecord struct {
	Line            int    `json:"line"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds"`
	VideoID         string `json:"video_id,omitempty"`
	ClipsGenerated  int    `json:"clips_generated"`
	Error           string `json:"error,omitempty"`
}

type skippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type uploadTotals struct {
	Processed  int `json:"processed"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
	TotalClips int `json:"total_clips"`
}

type uploadReport struct {
	Timestamp time.Time      `json:"timestamp"`
	CSVFile   string         `json:"csv_file"`
	Results   uploadTotals   `json:"results"`
	Videos    []uploadRecord `json:"videos"`
	Skipped   []skippedRow   `json:"skipped,omitempty"`
}

func newUploadCmd(a *app) *cobra.Command {
	var (
		delay     time.Duration
		reportDir string
		noReport  bool
	)
	cmd := &cobra.Command{
		Use:   "upload <csv-file>",
		Short: "Bulk-create videos from a CSV file",
		Long: `Reads title,url,duration_seconds rows (with a header line) and creates
one video per valid row. Invalid rows are skipped with a warning. A JSON
report named upload-report-<unix>.json is written to --report-dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			records, skipped, err := parseVideoCSV(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			for _, s := range skipped {
				log.Warn().Int("line", s.Line).Str("reason", s.Reason).Msg("skipping invalid row")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "found %d videos to upload in %s\n", len(records), path)

			svc := services.NewVideoService(a.db, a.cfg.MaxVideoSeconds, a.cfg.IdempotencyTTL)
			totals := uploadAll(cmd.Context(), svc, records, delay, out)
			totals.Skipped = len(skipped)

			fmt.Fprintf(out, "processed=%d successful=%d failed=%d skipped=%d clips=%d\n",
				totals.Processed, totals.Successful, totals.Failed, totals.Skipped, totals.TotalClips)

			if noReport {
				return nil
			}
			now := time.Now().UTC()
			rp, err := writeReport(reportDir, uploadReport{
				Timestamp: now,
				CSVFile:   path,
				Results:   totals,
				Videos:    records,
				Skipped:   skipped,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "report written to %s\n", rp)
			return nil
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", 0, "pause between uploads")
	cmd.Flags().StringVar(&reportDir, "report-dir", ".", "directory for the JSON report")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "skip writing the JSON report")
	return cmd
}

// parseVideoCSV reads a header line naming at least title, url and
// duration_seconds (any order, case-insensitive), then one video per row.
// Rows with an empty field, a non-integer duration, or malformed quoting are
// returned as skipped. Only a missing header or an I/O failure is an error.
func parseVideoCSV(r io.Reader) ([]uploadRecord, []skippedRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("empty csv")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		col[h] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, nil, fmt.Errorf("header is missing column %q", name)
		}
	}

	var (
		records []uploadRecord
		skipped []skippedRow
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			skipped = append(skipped, skippedRow{Line: pe.StartLine, Reason: pe.Err.Error()})
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		line, _ := cr.FieldPos(0)

		field := func(name string) string {
			if i := col[name]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		title, url, dur := field("title"), field("url"), field("duration_seconds")
		if title == "" || url == "" || dur == "" {
			skipped = append(skipped, skippedRow{Line: line, Reason: "missing title, url or duration_seconds"})
			continue
		}
		secs, err := strconv.Atoi(dur)
		if err != nil {
			skipped = append(skipped, skippedRow{Line: line, Reason: fmt.Sprintf("duration_seconds %q is not an integer", dur)})
			continue
		}
		records = append(records, uploadRecord{Line: line, Title: title, URL: url, DurationSeconds: secs})
	}
	return records, skipped, nil
}

// uploadAll creates records in order and fills in each outcome. It stops
// early when ctx is cancelled; remaining records are marked failed.
func uploadAll(ctx context.Context, svc VideoCreator, records []uploadRecord, delay time.Duration, out io.Writer) uploadTotals {
	var t uploadTotals
	for i := range records {
		rec := &records[i]
		t.Processed++

		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}
		}
		if err := ctx.Err(); err != nil {
			rec.Error = err.Error()
			t.Failed++
			continue
		}

		v, err := svc.Create(ctx, services.VideoInput{
			Title:           rec.Title,
			URL:             rec.URL,
			DurationSeconds: rec.DurationSeconds,
		})
		if err != nil {
			rec.Error = err.Error()
			t.Failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", rec.Title, err)
			continue
		}
		rec.VideoID = v.ID
		rec.ClipsGenerated = v.TotalClipsGenerated
		t.Successful++
		t.TotalClips += v.TotalClipsGenerated
		fmt.Fprintf(out, "OK   %s (%d clips)\n", rec.Title, v.TotalClipsGenerated)
	}
	return t
}

func writeReport(dir string, rep uploadReport) (string, error) {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("upload-report-%d.json", rep.Timestamp.Unix()))
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
