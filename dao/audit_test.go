package dao

import (
	"context"
	"errors"
	"testing"
	"time"

	"HyperAdmin/pkg/listctl"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func TestAudit_Record(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `admin_audits`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := NewAudit(db).Record(context.Background(), 7, "product.delete", "products/3", "success", "已删除", map[string]any{"id": 3})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAudit_List(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admin_audits`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(12))
	mock.ExpectQuery("SELECT \\* FROM `admin_audits`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "admin_id", "action", "target", "result", "message", "detail", "created_at"}).
			AddRow(102, 7, "points.adjust", "points/9", "success", "ok", []byte(`{"amount":"5"}`), time.Now()).
			AddRow(101, 7, "points.adjust", "points/8", "error", "余额不足", []byte(`{}`), time.Now()))

	res, err := NewAudit(db).List(context.Background(), listctl.PageRequest{
		Page:     2,
		PageSize: 10,
		Filters:  map[string]string{"action": "points.adjust"},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.TotalItems != 12 || res.TotalPages != 2 || res.CurrentPage != 2 || len(res.Items) != 2 {
		t.Fatalf("unexpected page: %+v", res)
	}
	if res.Items[0].ID != 102 {
		t.Fatalf("unexpected first item: %+v", res.Items[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAudit_ListEmptySkipsFind(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `admin_audits`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	res, err := NewAudit(db).List(context.Background(), listctl.PageRequest{Search: "nothing"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.TotalItems != 0 || len(res.Items) != 0 || res.TotalPages != 0 {
		t.Fatalf("unexpected page: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAudit_Get(t *testing.T) {
	db, mock := newMockDB(t)
	columns := []string{"id", "admin_id", "action", "target", "result", "message", "detail", "created_at"}
	mock.ExpectQuery("SELECT \\* FROM `admin_audits` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(102, 7, "review.approved", "change-requests/3", "success", "审核完成", []byte(`{}`), time.Now()))
	mock.ExpectQuery("SELECT \\* FROM `admin_audits` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(columns))

	audit := NewAudit(db)
	got, err := audit.Get(context.Background(), 102)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != 102 || got.Action != "review.approved" || got.AdminID != 7 {
		t.Fatalf("unexpected record %+v", got)
	}
	if _, err := audit.Get(context.Background(), 103); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
