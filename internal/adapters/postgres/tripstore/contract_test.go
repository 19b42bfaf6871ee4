package tripstore

import (
	"testing"

	"github.com/igetback/shuttle-api/internal/adapters/contracttest"
	"github.com/igetback/shuttle-api/internal/adapters/postgres/testutil"
	tripstoreport "github.com/igetback/shuttle-api/internal/ports/out/tripstore"
)

func TestContract_PostgresTripStore(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunTripStore(t, func(t *testing.T) (tripstoreport.Store, func()) {
		t.Helper()
		return NewStore(pool), nil
	})
}
