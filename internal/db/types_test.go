package db

import (
	"testing"
	"time"

	"github.com/careeridream/backend/internal/profile"
)

func TestDateArg(t *testing.T) {
	if got := dateArg(nil); got != nil {
		t.Errorf("dateArg(nil) = %v, want nil", got)
	}
	if got := dateArg(&profile.Date{}); got != nil {
		t.Errorf("dateArg(zero) = %v, want nil", got)
	}

	d := profile.NewDate(2024, time.March, 15)
	got := dateArg(d)
	tm, ok := got.(time.Time)
	if !ok {
		t.Fatalf("dateArg returned %T, want time.Time", got)
	}
	if tm.Year() != 2024 || tm.Month() != time.March || tm.Day() != 15 {
		t.Errorf("dateArg = %v", tm)
	}
}

func TestDateVal(t *testing.T) {
	if got := dateVal(nil); got != nil {
		t.Errorf("dateVal(nil) = %v, want nil", got)
	}

	tm := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	got := dateVal(&tm)
	if got == nil || got.Format("2006-01-02") != "2020-06-01" {
		t.Errorf("dateVal = %v", got)
	}
}
