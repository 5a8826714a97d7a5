package fixture

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSQLQuerierTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"Tables_in_shop_test"}).
		AddRow("ps_orders").
		AddRow("ps_customers")

	mock.ExpectQuery("SHOW TABLES").WillReturnRows(rows)

	tables, err := NewSQLQuerier(db).Tables()
	assert.Nil(t, err)
	assert.Equal(t, []string{"ps_orders", "ps_customers"}, tables)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestSQLQuerierTablesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery("SHOW TABLES").WillReturnError(errors.New("connection gone"))

	_, err = NewSQLQuerier(db).Tables()
	assert.NotNil(t, err)
}

func TestSQLQuerierTableChecksum(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"Table", "Checksum"}).
		AddRow("shop_test.ps_orders", "1836596041")

	mock.ExpectQuery(regexp.QuoteMeta("CHECKSUM TABLE `ps_orders`")).WillReturnRows(rows)

	checksum, err := NewSQLQuerier(db).TableChecksum("ps_orders")
	assert.Nil(t, err)
	assert.Equal(t, "1836596041", checksum)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestSQLQuerierTableChecksumNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"Table", "Checksum"}).
		AddRow("shop_test.ps_orders", nil)

	mock.ExpectQuery(regexp.QuoteMeta("CHECKSUM TABLE `ps_orders`")).WillReturnRows(rows)

	checksum, err := NewSQLQuerier(db).TableChecksum("ps_orders")
	assert.Nil(t, err)
	assert.Equal(t, "", checksum)
}

func TestSQLQuerierTableChecksumEscapesBackticks(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"Table", "Checksum"}).
		AddRow("shop_test.weird", "7")

	mock.ExpectQuery(regexp.QuoteMeta("CHECKSUM TABLE `weird``name`")).WillReturnRows(rows)

	checksum, err := NewSQLQuerier(db).TableChecksum("weird`name")
	assert.Nil(t, err)
	assert.Equal(t, "7", checksum)
}
