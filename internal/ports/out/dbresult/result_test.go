package dbresult_test

import (
	"errors"
	"testing"

	"github.com/igetback/shuttle-api/internal/ports/out/dbresult"
)

func TestCaseOf_DispatchesExactlyOneHandler(t *testing.T) {
	t.Parallel()

	r := dbresult.Right[int](41)
	got := dbresult.CaseOf(r,
		func(e dbresult.StoreError) int { t.Fatalf("left called: %v", e); return 0 },
		func(v int) int { return v + 1 },
	)
	if got != 42 {
		t.Fatalf("got %d", got)
	}

	l := dbresult.Left[int](dbresult.StoreError{Code: dbresult.CodeTripFull})
	code := dbresult.CaseOf(l,
		func(e dbresult.StoreError) dbresult.Code { return e.Code },
		func(int) dbresult.Code { t.Fatalf("right called"); return "" },
	)
	if code != dbresult.CodeTripFull {
		t.Fatalf("code=%s", code)
	}
}

func TestCaseOfE_PropagatesValueAndError(t *testing.T) {
	t.Parallel()

	v, err := dbresult.CaseOfE(dbresult.Right[int](7),
		func(e dbresult.StoreError) (int, error) { t.Fatalf("left called: %v", e); return 0, nil },
		func(n int) (int, error) { return n * 2, nil },
	)
	if err != nil || v != 14 {
		t.Fatalf("v=%d err=%v", v, err)
	}

	l := dbresult.Left[int](dbresult.StoreError{Code: dbresult.CodeNotFound})
	v, err = dbresult.CaseOfE(l,
		func(e dbresult.StoreError) (int, error) { return -1, e },
		func(int) (int, error) { t.Fatalf("right called"); return 0, nil },
	)
	if v != -1 {
		t.Fatalf("v=%d", v)
	}
	var se dbresult.StoreError
	if !errors.As(err, &se) || se.Code != dbresult.CodeNotFound {
		t.Fatalf("err=%v", err)
	}
}

func TestIsLeft(t *testing.T) {
	t.Parallel()

	if dbresult.Right[bool](true).IsLeft() {
		t.Fatalf("Right reported IsLeft")
	}
	if !dbresult.Left[bool](dbresult.DBErrorf("boom")).IsLeft() {
		t.Fatalf("Left not reported")
	}
}

func TestStoreError_Error(t *testing.T) {
	t.Parallel()

	e := dbresult.StoreError{Code: dbresult.CodeNotFound}
	if e.Error() != "NOT_FOUND" {
		t.Fatalf("got %q", e.Error())
	}
	e = dbresult.DBErrorf("connection %s", "refused")
	if e.Error() != "DB_ERROR: connection refused" {
		t.Fatalf("got %q", e.Error())
	}
}
