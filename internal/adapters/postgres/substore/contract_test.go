package substore

import (
	"testing"

	"github.com/igetback/shuttle-api/internal/adapters/contracttest"
	"github.com/igetback/shuttle-api/internal/adapters/postgres/testutil"
	substoreport "github.com/igetback/shuttle-api/internal/ports/out/substore"
)

func TestContract_PostgresSubscriptionStore(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunSubscriptionStore(t, func(t *testing.T) (substoreport.Store, func()) {
		t.Helper()
		return NewStore(pool), nil
	})
}
