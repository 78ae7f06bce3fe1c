package main

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	errwrap "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rahmatrdn/go-query-advisor/entity"
	"github.com/rahmatrdn/go-query-advisor/internal/repository/querylog"
)

const maxLineBytes = 4 << 20

func newAnalyzeCmd() *cobra.Command {
	var (
		file     string
		source   string
		fromLog  bool
		lookback time.Duration
		indent   bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one analysis and print the report as JSON",
		Example: `  advisor analyze --file queries.jsonl --source billing
  ADVISOR_QUERY_LOG_SOURCE=doris advisor analyze --query-log --lookback 6h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromLog == (file != "") {
				return errwrap.New("exactly one of --file or --query-log is required")
			}
			if lookback <= 0 || lookback > querylog.MaxLookback {
				return errwrap.Errorf("--lookback must be in (0, %s]", querylog.MaxLookback)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			var report *entity.AnalysisReport
			if fromLog {
				report, err = a.advisor.AnalyzeQueryLog(cmd.Context(), lookback)
			} else {
				var records []*entity.QueryRecord
				records, err = readRecordsFile(file)
				if err != nil {
					return err
				}
				report, err = a.advisor.Analyze(cmd.Context(), source, records)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if indent {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON lines file of query records, - for stdin")
	cmd.Flags().StringVar(&source, "source", "", "source tag stored with the run")
	cmd.Flags().BoolVar(&fromLog, "query-log", false, "read the configured query log source instead of a file")
	cmd.Flags().DurationVar(&lookback, "lookback", querylog.DefaultLookback, "window for --query-log")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent the JSON output")
	return cmd
}

func readRecordsFile(path string) ([]*entity.QueryRecord, error) {
	funcName := "readRecordsFile"
	if path == "-" {
		return readRecords(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errwrap.Wrap(err, funcName)
	}
	defer f.Close()

	records, err := readRecords(f)
	return records, errwrap.Wrap(err, funcName)
}

// readRecords decodes one QueryRecord per line; blank lines are skipped.
func readRecords(r io.Reader) ([]*entity.QueryRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var records []*entity.QueryRecord
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec entity.QueryRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, errwrap.Wrapf(err, "line %d", line)
		}
		records = append(records, &rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
