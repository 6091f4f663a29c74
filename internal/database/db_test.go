package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	dsn := DSN("fd", "p@ss", "db.local", "3306", "frontdesk")
	for _, want := range []string{"fd:p@ss@tcp(db.local:3306)/frontdesk", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q missing %q", dsn, want)
		}
	}
}
