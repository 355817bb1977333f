package controllers

import (
	"archive/zip"
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"startup-dashboard-api/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// recordingDriver logs every statement. Queries against app_meta answer
// with the configured lock flag; everything else succeeds with no rows.
type recordingDriver struct {
	locked     bool
	mu         sync.Mutex
	statements []string
}

func (d *recordingDriver) record(query string, args []driver.NamedValue) {
	values := make([]driver.Value, len(args))
	for i, arg := range args {
		values[i] = arg.Value
	}
	d.mu.Lock()
	d.statements = append(d.statements, fmt.Sprintf("%s %v", query, values))
	d.mu.Unlock()
}

func (d *recordingDriver) executed(fragment string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, stmt := range d.statements {
		if strings.Contains(stmt, fragment) {
			return true
		}
	}
	return false
}

func (d *recordingDriver) Open(string) (driver.Conn, error) {
	return &recordingConn{d: d}, nil
}

type recordingConn struct {
	d *recordingDriver
}

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	return recordingTx{}, nil
}

type recordingTx struct{}

func (recordingTx) Commit() error   { return nil }
func (recordingTx) Rollback() error { return nil }

func (c *recordingConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.d.record(query, args)
	if strings.Contains(query, "app_meta") && c.d.locked {
		return &metaRows{value: "1"}, nil
	}
	return &metaRows{done: true}, nil
}

func (c *recordingConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.d.record(query, args)
	return recordingResult{}, nil
}

type recordingResult struct{}

func (recordingResult) LastInsertId() (int64, error) { return 1, nil }
func (recordingResult) RowsAffected() (int64, error) { return 1, nil }

type metaRows struct {
	value string
	done  bool
}

func (r *metaRows) Columns() []string { return []string{"meta_key", "meta_value"} }

func (r *metaRows) Close() error { return nil }

func (r *metaRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	dest[0] = "startup_locked"
	dest[1] = r.value
	r.done = true
	return nil
}

var recordingDriverSeq atomic.Int64

func newRecordingGormDB(t *testing.T, locked bool) (*gorm.DB, *recordingDriver) {
	t.Helper()

	rd := &recordingDriver{locked: locked}
	name := fmt.Sprintf("recording_%d", recordingDriverSeq.Add(1))
	sql.Register(name, rd)

	sqlDB, err := sql.Open(name, "")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	t.Cleanup(func() { _ = sqlDB.Close() })
	return gormDB, rd
}

func minimalWorkbook(t *testing.T) []byte {
	t.Helper()

	sheet := `<?xml version="1.0"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <sheetData>
    <row r="1"><c r="A1" t="inlineStr"><is><t>Startup</t></is></c></row>
    <row r="2"><c r="A2" t="inlineStr"><is><t>Acme</t></is></c></row>
  </sheetData>
</worksheet>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("xl/worksheets/sheet1.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(sheet))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func importRequest(t *testing.T, workbook []byte, replace bool) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "startup_master.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(workbook)
	require.NoError(t, err)
	if replace {
		require.NoError(t, mw.WriteField("replace", "true"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/startups/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newImportRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/admin/startups/import", AdminImportStartups)
	return router
}

func TestAdminImportConflictsWhenLocked(t *testing.T) {
	t.Setenv("UPLOAD_PATH", t.TempDir())

	db, rd := newRecordingGormDB(t, true)
	oldDB := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = oldDB })

	router := newImportRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, importRequest(t, minimalWorkbook(t), false))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "replace=true")

	// The stored set must be untouched.
	assert.False(t, rd.executed("DELETE FROM startups"))
	assert.False(t, rd.executed("INSERT INTO `startups`"))
}

func TestAdminImportReplacesWhenForced(t *testing.T) {
	t.Setenv("UPLOAD_PATH", t.TempDir())

	db, rd := newRecordingGormDB(t, true)
	oldDB := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = oldDB })

	router := newImportRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, importRequest(t, minimalWorkbook(t), true))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	assert.True(t, rd.executed("DELETE FROM startups"))
	assert.True(t, rd.executed("INSERT INTO `startups`"))
	// A successful import re-locks the master and records the count.
	assert.True(t, rd.executed("startup_locked 1"))
	assert.True(t, rd.executed("startup_count 1"))
}

func TestAdminImportProceedsWhenUnlocked(t *testing.T) {
	t.Setenv("UPLOAD_PATH", t.TempDir())

	db, rd := newRecordingGormDB(t, false)
	oldDB := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = oldDB })

	router := newImportRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, importRequest(t, minimalWorkbook(t), false))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, rd.executed("DELETE FROM startups"))
}

func TestAdminImportRejectsWrongFileType(t *testing.T) {
	t.Setenv("UPLOAD_PATH", t.TempDir())

	db, rd := newRecordingGormDB(t, false)
	oldDB := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = oldDB })

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "startup_master.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("startup\nAcme\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/startups/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	router := newImportRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, rd.executed("DELETE FROM startups"))
}
