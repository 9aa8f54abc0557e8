package insight_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hbarnes/penny/internal/category"
	"github.com/hbarnes/penny/internal/currency"
	"github.com/hbarnes/penny/internal/insight"
	"github.com/hbarnes/penny/internal/storage"
	"github.com/hbarnes/penny/internal/transaction"
)

func seededServices(t *testing.T, params ...transaction.CreateParams) (*transaction.Service, *currency.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	slot := storage.NewMockSlot(ctrl)
	slot.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	txSvc := transaction.NewService(slot)
	for _, p := range params {
		_, err := txSvc.Add(context.Background(), p)
		require.NoError(t, err)
	}

	return txSvc, currency.NewService(slot)
}

func TestBuildSpendingData(t *testing.T) {
	date := time.Date(2024, 8, 2, 14, 30, 0, 0, time.UTC)

	expenses := []transaction.Transaction{
		{Date: date, Description: "Groceries", Category: category.Food, Amount: -42.5, Type: transaction.TypeExpense},
		{Date: date.AddDate(0, 0, -1), Description: "Bus pass", Category: category.Transport, Amount: -15, Type: transaction.TypeExpense},
	}

	got := insight.BuildSpendingData(expenses, "EUR")

	want := "2024-08-02: Groceries (Food) - EUR 42.50\n" +
		"2024-08-01: Bus pass (Transport) - EUR 15.00"
	assert.Equal(t, want, got)
}

func TestService_GenerateTips(t *testing.T) {
	txSvc, curSvc := seededServices(t, transaction.CreateParams{
		Description: "Takeout",
		Category:    category.Food,
		Amount:      -25,
		Type:        transaction.TypeExpense,
	})

	ctrl := gomock.NewController(t)
	gen := insight.NewMockGenerator(ctrl)
	gen.EXPECT().
		SavingsTips(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, spendingData string) (string, error) {
			assert.Contains(t, spendingData, "Takeout (Food) - USD 25.00")
			return "Cook at home more often.", nil
		})

	svc := insight.NewService(txSvc, curSvc, gen)

	tips, err := svc.GenerateTips(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cook at home more often.", tips)
}

func TestService_GenerateTipsRejectsEmptyExpenses(t *testing.T) {
	// Income alone is not spending data.
	txSvc, curSvc := seededServices(t, transaction.CreateParams{
		Description: "Salary",
		Category:    category.Income,
		Amount:      3000,
		Type:        transaction.TypeIncome,
	})

	ctrl := gomock.NewController(t)
	gen := insight.NewMockGenerator(ctrl)
	// No SavingsTips expectation: the external call must never happen.

	svc := insight.NewService(txSvc, curSvc, gen)

	_, err := svc.GenerateTips(context.Background())
	assert.ErrorIs(t, err, insight.ErrNoExpenses)
}

func TestService_GenerateTipsPropagatesFailure(t *testing.T) {
	txSvc, curSvc := seededServices(t, transaction.CreateParams{
		Description: "Cinema",
		Category:    category.Entertainment,
		Amount:      -12,
		Type:        transaction.TypeExpense,
	})

	ctrl := gomock.NewController(t)
	gen := insight.NewMockGenerator(ctrl)
	gen.EXPECT().
		SavingsTips(gomock.Any(), gomock.Any()).
		Return("", errors.New("service unavailable"))

	svc := insight.NewService(txSvc, curSvc, gen)

	_, err := svc.GenerateTips(context.Background())
	assert.Error(t, err)
}

func TestClient_SavingsTips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"savingsTips":"Track subscriptions."}`))
	}))
	defer srv.Close()

	client := insight.NewClient(srv.URL, "test-token")

	tips, err := client.SavingsTips(context.Background(), "2024-08-02: Groceries (Food) - USD 42.50")
	require.NoError(t, err)
	assert.Equal(t, "Track subscriptions.", tips)
}

func TestClient_SavingsTipsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := insight.NewClient(srv.URL, "")

	_, err := client.SavingsTips(context.Background(), "data")
	assert.Error(t, err)
}

func TestClient_SavingsTipsEmptyBodyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := insight.NewClient(srv.URL, "")

	_, err := client.SavingsTips(context.Background(), "data")
	assert.Error(t, err)
}
