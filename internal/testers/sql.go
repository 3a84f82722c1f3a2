package testers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"platina/internal/config"
	"platina/internal/domain"
)

// Parameters read and written by the sql tester
const (
	ParamSetup  = "setup"
	ParamQuery  = "query"
	ParamResult = "result"
)

// SQL runs the [query] of each case and compares the rendered rows with
// [result].
type SQL struct {
	db      *sql.DB
	timeout time.Duration
	logger  *zap.Logger
}

// NewSQL creates a SQL tester on db. Each case gets timeoutSec seconds.
func NewSQL(db *sql.DB, timeoutSec int, logger *zap.Logger) *SQL {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeoutSec <= 0 {
		timeoutSec = config.DefaultExecTimeoutSec
	}
	return &SQL{db: db, timeout: time.Duration(timeoutSec) * time.Second, logger: logger}
}

// RunTestCase executes [setup] when present, then [query]. Errors are
// declared as the result so they can be kept in the golden file.
func (s *SQL) RunTestCase(c *domain.TestCase) {
	query, ok := c.Get(ParamQuery)
	if !ok {
		c.CompareAndUpdate(ParamError, "missing [query] parameter")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if setup, ok := c.Get(ParamSetup); ok && strings.TrimSpace(setup) != "" {
		if _, err := s.db.ExecContext(ctx, setup); err != nil {
			s.logger.Debug("setup failed", zap.String("case", c.Name), zap.Error(err))
			c.CompareAndUpdate(ParamResult, "error: "+err.Error())
			return
		}
	}

	result, err := s.query(ctx, query)
	if err != nil {
		s.logger.Debug("query failed", zap.String("case", c.Name), zap.Error(err))
		result = "error: " + err.Error()
	}
	c.CompareAndUpdate(ParamResult, result)
}

// query renders the rows as a tab separated header line followed by one
// line per row.
func (s *SQL) query(ctx context.Context, query string) (string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}
	lines := []string{strings.Join(cols, "\t")}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return "", err
		}
		fields := make([]string, len(values))
		for i, v := range values {
			fields[i] = formatValue(v)
		}
		lines = append(lines, strings.Join(fields, "\t"))
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
