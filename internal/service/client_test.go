package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"iptv-storefront/internal/model"
	"iptv-storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func insertClient(t *testing.T, db *gorm.DB, fullName, email, region string) *model.ClientData {
	t.Helper()

	row := &model.ClientData{
		ID:       uuid.NewString(),
		FullName: fullName,
		Email:    email,
		Region:   region,
		Source:   "website",
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("insert client: %v", err)
	}
	return row
}

func TestExportCSVRoundTripsCommasInNames(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(repository.NewClientDataRepository(db))

	insertClient(t, db, "Doe, John", "john@example.com", "UK")

	out, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d records", len(records))
	}

	header := strings.Join(records[0], "|")
	if header != "ID|Full Name|Email|Region|Source|Date" {
		t.Fatalf("unexpected header: %s", header)
	}

	row := records[1]
	if row[1] != "Doe, John" {
		t.Fatalf("comma in name must survive the round trip, got %q", row[1])
	}
	if row[2] != "john@example.com" || row[3] != "UK" || row[4] != "website" {
		t.Fatalf("unexpected row: %v", row)
	}
}

func TestExportCSVLineCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(repository.NewClientDataRepository(db))

	for i := 0; i < 5; i++ {
		insertClient(t, db, "Client", fmt.Sprintf("client%d@example.com", i), "US")
	}

	out, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}

	// Header + 5 rows, with a trailing newline after the final record.
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
}

func TestClientListPaginates(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(repository.NewClientDataRepository(db))

	for i := 0; i < 7; i++ {
		insertClient(t, db, "Client", fmt.Sprintf("client%d@example.com", i), "US")
	}

	resp, err := svc.List(context.Background(), 1, 3, "")
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if resp.Total != 7 {
		t.Fatalf("expected total 7, got %d", resp.Total)
	}
	if resp.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", resp.Pages)
	}
	if len(resp.Clients) != 3 {
		t.Fatalf("expected 3 clients on page 1, got %d", len(resp.Clients))
	}

	last, err := svc.List(context.Background(), 3, 3, "")
	if err != nil {
		t.Fatalf("list page 3: %v", err)
	}
	if len(last.Clients) != 1 {
		t.Fatalf("expected 1 client on last page, got %d", len(last.Clients))
	}
}

func TestClientListSearchFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(repository.NewClientDataRepository(db))

	insertClient(t, db, "Alice Johnson", "alice@example.com", "US")
	insertClient(t, db, "Bob Brown", "bob@example.com", "DE")

	resp, err := svc.List(context.Background(), 1, 50, "alice")
	if err != nil {
		t.Fatalf("list with search: %v", err)
	}
	if len(resp.Clients) != 1 {
		t.Fatalf("expected one match, got %d", len(resp.Clients))
	}
	if resp.Clients[0].Email != "alice@example.com" {
		t.Fatalf("unexpected match: %s", resp.Clients[0].Email)
	}
}

func TestClientListDefaultsBadPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(repository.NewClientDataRepository(db))

	insertClient(t, db, "Client", "c@example.com", "US")

	resp, err := svc.List(context.Background(), 0, -1, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Page != 1 {
		t.Fatalf("expected page to default to 1, got %d", resp.Page)
	}
	if len(resp.Clients) != 1 {
		t.Fatalf("expected the row back, got %d", len(resp.Clients))
	}
}

func TestClientDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewClientService(repository.NewClientDataRepository(db))

	row := insertClient(t, db, "Client", "c@example.com", "US")

	if err := svc.Delete(context.Background(), row.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	db.Model(&model.ClientData{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows after delete, got %d", count)
	}
}
