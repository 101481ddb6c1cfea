package repository

import (
	"context"
	"io/fs"
	"sort"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/neighborhq/memberdesk/internal/migration"
	"github.com/neighborhq/memberdesk/internal/person/domain"
	"gorm.io/gorm"
)

// applyEmbeddedSchema runs the real DDL scripts instead of AutoMigrate,
// so a model column missing from the migrations fails here.
func applyEmbeddedSchema(t *testing.T, db *gorm.DB) {
	t.Helper()

	files, err := migration.Files()
	if err != nil {
		t.Fatalf("open migration scripts: %v", err)
	}
	names, err := fs.Glob(files, "*.up.sql")
	if err != nil {
		t.Fatalf("list migration scripts: %v", err)
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := fs.ReadFile(files, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		for _, stmt := range strings.Split(string(raw), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := db.Exec(stmt).Error; err != nil {
				t.Fatalf("apply %s: %v", name, err)
			}
		}
	}
}

func TestInsertAgainstEmbeddedSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	applyEmbeddedSchema(t, db)

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	email := "pat@example.com"
	phone := "555-0100"
	address := "12 Elm St"
	person := &domain.Person{
		ID:       node.Generate(),
		FullName: "Pat Smith",
		Email:    &email,
		Phone:    &phone,
		Address:  &address,
	}

	repo := Provide()
	ctx := context.Background()
	if err := repo.Insert(ctx, db, person); err != nil {
		t.Fatalf("insert person: %v", err)
	}

	got, err := repo.FindByID(ctx, db, person.ID)
	if err != nil {
		t.Fatalf("find person: %v", err)
	}
	if got == nil {
		t.Fatal("expected inserted person to be found")
	}
	if got.Phone == nil || *got.Phone != phone {
		t.Fatalf("expected phone %q, got %v", phone, got.Phone)
	}
}

func TestInsertWithoutOptionalFieldsAgainstEmbeddedSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	applyEmbeddedSchema(t, db)

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	person := &domain.Person{
		ID:       node.Generate(),
		FullName: "No Contact",
	}

	repo := Provide()
	if err := repo.Insert(context.Background(), db, person); err != nil {
		t.Fatalf("insert person: %v", err)
	}
}
