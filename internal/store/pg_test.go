package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/logger"
)

var (
	testDB        *gorm.DB
	testContainer *postgres.PostgresContainer
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		container, err := postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("test_user"),
			postgres.WithPassword("test_password"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second),
			),
		)
		if err != nil {
			fmt.Printf("Failed to start postgres container: %v\n", err)
			os.Exit(1)
		}
		testContainer = container

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			os.Exit(1)
		}
	}

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to test database: %v\n", err)
		os.Exit(1)
	}
	testDB = db

	if err := Migrate(testDB); err != nil {
		fmt.Printf("Failed to migrate test database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if testContainer != nil {
		_ = testContainer.Terminate(ctx)
	}
	os.Exit(code)
}

var testTx *gorm.DB

// initPGTestDB opens a transaction so each test runs against an isolated
// view and rolls back on cleanup
func initPGTestDB(t *testing.T) Store {
	testTx = testDB.Begin()
	if testTx.Error != nil {
		t.Fatalf("Failed to begin test transaction: %v", testTx.Error)
	}
	return NewPGStore(testTx)
}

func cleanupPGTestDB(t *testing.T) {
	if testTx != nil {
		if err := testTx.Rollback().Error; err != nil {
			t.Logf("Failed to rollback test transaction: %v", err)
		}
		testTx = nil
	}
}

func TestPostgreSQLStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database integration tests in short mode")
	}
	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

// TestConcurrentPurchasesNeverOversell races buyers against one listing on
// separate connections; the row lock must admit exactly one of the oversized
// purchases. Runs outside the rollback harness so goroutines see committed
// state.
func TestConcurrentPurchasesNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database integration tests in short mode")
	}

	s := NewPGStore(testDB)
	parcel := createApprovedParcel(t, s, "77-77-777-777-7777", "cook")
	key := domain.NewParcelKey(parcel.PIN, parcel.CountyID)
	listParcel(t, s, parcel, 100, "5")
	t.Cleanup(func() {
		testDB.Exec("DELETE FROM share_holdings WHERE pin = ?", parcel.PIN)
		testDB.Exec("DELETE FROM deployed_assets WHERE pin = ?", parcel.PIN)
		testDB.Exec("DELETE FROM parcel_tokens WHERE pin = ?", parcel.PIN)
	})

	const buyers = 4
	errs := make([]error, buyers)
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = s.SettlePurchase(context.Background(), SettlePurchaseInput{
				Key:         key,
				BuyerWallet: fmt.Sprintf("0x%040d", i+1),
				Shares:      60,
				PricePaid:   decimal.NewFromInt(300),
				TxRef:       fmt.Sprintf("0xtx-race-%d", i),
				ChainType:   domain.ChainTypeEscrow,
				PurchasedAt: time.Now().UTC(),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientListedShares)
		}
	}
	require.Equal(t, 1, succeeded)

	final, err := s.GetParcel(context.Background(), key)
	require.NoError(t, err)
	require.Equal(t, int64(40), final.ListedShares)
	require.Equal(t, int64(60), final.SharesSold())
}
