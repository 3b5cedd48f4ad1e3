package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/me/botdash/internal/schema"
	"github.com/me/botdash/pkg/model"
	"github.com/spf13/cobra"
)

// queryFlag binds a command flag to a dashboard query parameter.
type queryFlag struct {
	flag  string
	query string
	usage string
}

var pageFlags = []queryFlag{
	{"cursor", "cursor", "Page cursor printed by a previous call"},
	{"limit", "limit", "Page size (1-250)"},
}

// bindQuery registers string flags and returns a function collecting the
// set ones as a query string.
func bindQuery(cmd *cobra.Command, flags ...queryFlag) func() url.Values {
	vals := make(map[string]*string, len(flags))
	for _, f := range append(flags, pageFlags...) {
		vals[f.query] = cmd.Flags().String(f.flag, "", f.usage)
	}
	return func() url.Values {
		q := url.Values{}
		for key, v := range vals {
			if *v != "" {
				q.Set(key, *v)
			}
		}
		return q
	}
}

// parseFilters validates CLI filters with the same schema as the web page.
func parseFilters[T any](q url.Values) (*T, error) {
	res := schema.ParseQuery[T](q)
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("invalid filters: %w", err)
	}
	return &res.Value, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type table struct {
	tw *tabwriter.Writer
}

func newTable(w io.Writer, headers ...string) *table {
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	fmt.Fprintln(t.tw, strings.Join(headers, "\t"))
	return t
}

func (t *table) row(cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(t.tw, strings.Join(parts, "\t"))
}

func (t *table) flush() error {
	return t.tw.Flush()
}

// printPage renders one list page followed by the cursors to continue with.
func printPage[T any](w io.Writer, resp model.ListResponse[T], headers []string, row func(T) []any) error {
	if flagOutput == "json" {
		return printJSON(w, resp)
	}
	if len(resp.Data) == 0 {
		fmt.Fprintln(w, "No results.")
	} else {
		t := newTable(w, headers...)
		for _, item := range resp.Data {
			t.row(row(item)...)
		}
		if err := t.flush(); err != nil {
			return err
		}
	}
	if resp.HasPrev() {
		fmt.Fprintf(w, "\nPrevious page: --cursor %s\n", resp.PreviousCursor())
	}
	if resp.HasNext() {
		fmt.Fprintf(w, "\nNext page: --cursor %s\n", resp.NextCursor())
	}
	return nil
}

// printFields renders a detail view as aligned "key: value" lines.
func printFields(w io.Writer, fields ...any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(tw, "%s:\t%v\n", fields[i], fields[i+1])
	}
	return tw.Flush()
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func agoPtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return ago(*t)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
