package reservation

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
)

// stubRows отдает заранее заданные строки на любой запрос
type stubRows struct {
	columns []string
	values  [][]driver.Value
}

// stubConnector минимальный database/sql драйвер без БД
type stubConnector struct {
	rows    stubRows
	queries []string
	args    [][]driver.Value
}

func newStubDB(rows stubRows) (*sql.DB, *stubConnector) {
	c := &stubConnector{rows: rows}
	return sql.OpenDB(c), c
}

func (c *stubConnector) Connect(context.Context) (driver.Conn, error) {
	return &stubConn{c: c}, nil
}

func (c *stubConnector) Driver() driver.Driver {
	return stubDriver{}
}

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("stub: use connector")
}

type stubConn struct {
	c *stubConnector
}

func (s *stubConn) Prepare(query string) (driver.Stmt, error) {
	return &stubStmt{c: s.c, query: query}, nil
}

func (s *stubConn) Close() error { return nil }

func (s *stubConn) Begin() (driver.Tx, error) {
	return nil, errors.New("stub: transactions are not supported")
}

type stubStmt struct {
	c     *stubConnector
	query string
}

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.c.queries = append(s.c.queries, s.query)
	s.c.args = append(s.c.args, args)
	return driver.RowsAffected(1), nil
}

func (s *stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	s.c.queries = append(s.c.queries, s.query)
	s.c.args = append(s.c.args, args)
	return &stubCursor{rows: s.c.rows}, nil
}

type stubCursor struct {
	rows stubRows
	pos  int
}

func (r *stubCursor) Columns() []string { return r.rows.columns }
func (r *stubCursor) Close() error      { return nil }

func (r *stubCursor) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows.values) {
		return io.EOF
	}
	copy(dest, r.rows.values[r.pos])
	r.pos++
	return nil
}
