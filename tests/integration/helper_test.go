package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adaptershttp "github.com/rmacedo/contas/internal/adapter/http"
	"github.com/rmacedo/contas/internal/adapter/http/handler"
	"github.com/rmacedo/contas/internal/adapter/repository/postgres"
	redisrepo "github.com/rmacedo/contas/internal/adapter/repository/redis"
	infraredis "github.com/rmacedo/contas/internal/infrastructure/redis"
	"github.com/rmacedo/contas/internal/usecase"
	"github.com/rmacedo/contas/tests/testutil"
)

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// newTestServer wires the full router over the test database and redis,
// mirroring production wiring minus metrics.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	clock := systemClock{}

	txManager := postgres.NewTxManager(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	debtRepo := postgres.NewDebtRepository(pool)
	instrumentRepo := postgres.NewInstrumentRepository(pool)
	permutaRepo := postgres.NewPermutaRepository(pool)
	acertoRepo := postgres.NewAcertoRepository(pool)
	commissionRepo := postgres.NewCommissionRepository(pool)
	taxRepo := postgres.NewTaxRepository(pool)
	cashFlow := postgres.NewCashFlowRepository(pool)
	idGen := postgres.NewULIDGenerator()

	saleUC := usecase.NewSaleUseCase(txManager, saleRepo, commissionRepo, instrumentRepo, permutaRepo, acertoRepo, cashFlow, idGen, clock)
	debtUC := usecase.NewDebtUseCase(txManager, debtRepo, instrumentRepo, permutaRepo, acertoRepo, cashFlow, idGen, clock)
	permutaUC := usecase.NewPermutaUseCase(txManager, permutaRepo, idGen, clock)
	acertoUC := usecase.NewAcertoUseCase(txManager, acertoRepo, saleRepo, debtRepo, instrumentRepo, permutaRepo, cashFlow, idGen, clock, nil)
	instrumentUC := usecase.NewInstrumentUseCase(txManager, instrumentRepo, cashFlow, idGen, clock)
	commissionUC := usecase.NewCommissionUseCase(txManager, commissionRepo, cashFlow, idGen, clock)
	taxUC := usecase.NewTaxUseCase(taxRepo, idGen, clock)
	dueDateUC := usecase.NewDueDateUseCase(instrumentRepo, acertoRepo, taxRepo, redisrepo.NewCache(redisClient), clock, zerolog.Nop(), nil)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		SaleHandler:       handler.NewSaleHandler(saleUC),
		DebtHandler:       handler.NewDebtHandler(debtUC),
		PermutaHandler:    handler.NewPermutaHandler(permutaUC),
		AcertoHandler:     handler.NewAcertoHandler(acertoUC),
		InstrumentHandler: handler.NewInstrumentHandler(instrumentUC),
		CommissionHandler: handler.NewCommissionHandler(commissionUC),
		DueDateHandler:    handler.NewDueDateHandler(dueDateUC),
		TaxHandler:        handler.NewTaxHandler(taxUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  redisrepo.NewIdempotencyStore(redisClient),
		Logger:            zerolog.Nop(),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	r := httptest.NewRequest(method, path, body)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
}
