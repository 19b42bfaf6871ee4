package userstore

import (
	"testing"

	"github.com/igetback/shuttle-api/internal/adapters/contracttest"
	userstoreport "github.com/igetback/shuttle-api/internal/ports/out/userstore"
)

func TestContract_UserStore(t *testing.T) {
	contracttest.RunUserStore(t, func(t *testing.T) (userstoreport.Store, func()) {
		t.Helper()
		return NewStore(), nil
	})
}
