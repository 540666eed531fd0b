package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rpgo/retirement-cashflow/internal/calculation"
	"github.com/rpgo/retirement-cashflow/internal/domain"
	"github.com/rpgo/retirement-cashflow/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The HTTP API and the library path must agree for the same assumptions.
func TestServerMatchesEngine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg, want := runExample(t)

	table, err := calculation.LoadReturnTable(cfg.ReturnTable)
	require.NoError(t, err)

	body, err := json.Marshal(cfg.Scenario)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/projection", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.New(table, nil).Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got domain.ProjectionReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Scenarios, len(want.Scenarios))
	for i := range want.Scenarios {
		assert.True(t, got.Scenarios[i].Result.AnnualizedIRR.Equal(want.Scenarios[i].Result.AnnualizedIRR))
		assert.True(t, got.Scenarios[i].Result.TotalPresentValue.Equal(want.Scenarios[i].Result.TotalPresentValue))
	}
}

func TestCancelledRun(t *testing.T) {
	cfg, _ := runExample(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := calculation.NewCalculationEngine().RunConfiguration(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}
