package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/segment-insights-api/internal/api/handler/router"
	"github.com/vfg2006/segment-insights-api/internal/domain"
	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing"
	"github.com/vfg2006/segment-insights-api/internal/usecases/analyzing/mocks"
	"github.com/vfg2006/segment-insights-api/pkg/apiErrors"
	"github.com/vfg2006/segment-insights-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func serve(routes []router.Route, role domain.Role, method, target string) *httptest.ResponseRecorder {
	rt := router.New(router.WithRoutes(routes...))

	req := httptest.NewRequest(method, target, nil)
	if role != "" {
		claims := &domain.Claims{ClientName: "teste", Role: role}
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyClaims, claims))
	}

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestGetTransitions(t *testing.T) {
	matrix := &domain.TransitionMatrix{
		FromMonth:    202401,
		ToMonth:      202402,
		Origins:      []string{"SEG01"},
		Destinations: []string{"SEG01", "SEG02"},
		Cells:        map[string]map[string]int{"SEG01": {"SEG01": 3, "SEG02": 1}},
		Lost:         map[string]int{"SEG01": 1},
		New:          map[string]int{},
		OriginTotals: map[string]int{"SEG01": 5},
	}

	tests := []struct {
		name       string
		target     string
		setup      func(m *mocks.MockAnalyzer)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "matriz calculada",
			target: "/v1/movements/transitions?from=202401&to=202402",
			setup: func(m *mocks.MockAnalyzer) {
				m.EXPECT().Transitions(gomock.Any(), domain.Month(202401), domain.Month(202402)).Return(matrix, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "parâmetro ausente",
			target:     "/v1/movements/transitions?from=202401",
			setup:      func(m *mocks.MockAnalyzer) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:       "mês inválido",
			target:     "/v1/movements/transitions?from=202413&to=202402",
			setup:      func(m *mocks.MockAnalyzer) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidMonth,
		},
		{
			name:   "mês fora do dataset",
			target: "/v1/movements/transitions?from=202401&to=209912",
			setup: func(m *mocks.MockAnalyzer) {
				m.EXPECT().Transitions(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, domain.NewAnalysisError(domain.ErrUnknownMonth, "", 209912, ""))
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrUnknownMonth,
		},
		{
			name:   "dataset não carregado",
			target: "/v1/movements/transitions?from=202401&to=202402",
			setup: func(m *mocks.MockAnalyzer) {
				m.EXPECT().Transitions(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrDatasetNotLoaded)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   apiErrors.ErrDatasetNotLoaded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			analyzer := mocks.NewMockAnalyzer(ctrl)
			tt.setup(analyzer)

			rec := serve(Movements(analyzer), domain.RoleAnalyst, http.MethodGet, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeCode(t, rec))
				return
			}

			var body TransitionsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, 3, body.Matrix.Count("SEG01", "SEG01"))
			assert.NotEmpty(t, body.Table.Rows)
		})
	}
}

func TestGetSummary_Metric(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		wantWeighting *analyzing.Weighting
		wantStatus    int
	}{
		{
			name:          "métrica padrão",
			query:         "",
			wantWeighting: &analyzing.Weighting{Metric: analyzing.MetricCount},
			wantStatus:    http.StatusOK,
		},
		{
			name:          "métrica receita",
			query:         "&metric=revenue",
			wantWeighting: &analyzing.Weighting{Metric: analyzing.MetricRevenue},
			wantStatus:    http.StatusOK,
		},
		{
			name:          "receita acumulada por produto",
			query:         "&metric=ttm_revenue&product=DOM",
			wantWeighting: &analyzing.Weighting{Metric: analyzing.MetricTTMRevenue, Product: "DOM"},
			wantStatus:    http.StatusOK,
		},
		{
			name:       "métrica inválida",
			query:      "&metric=margin",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			analyzer := mocks.NewMockAnalyzer(ctrl)
			if tt.wantWeighting != nil {
				analyzer.EXPECT().Summary(gomock.Any(), domain.Month(202401), domain.Month(202402), *tt.wantWeighting).
					Return([]domain.SummaryRow{{Segment: domain.SegmentTotal}}, nil)
			}

			rec := serve(Movements(analyzer), domain.RoleAnalyst, http.MethodGet, "/v1/movements/summary?from=202401&to=202402"+tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetTransitions_Weighted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	matrix := &domain.TransitionMatrix{
		FromMonth:    202401,
		ToMonth:      202402,
		Origins:      []string{"SEG01"},
		Destinations: []string{"SEG01"},
		Cells:        map[string]map[string]int{"SEG01": {"SEG01": 2}},
		Lost:         map[string]int{"SEG01": 2},
		New:          map[string]int{},
		OriginTotals: map[string]int{"SEG01": 4},
	}
	weighted := &domain.WeightedMatrix{
		FromMonth:    202401,
		ToMonth:      202402,
		Metric:       string(analyzing.MetricTTMRevenue),
		Origins:      []string{"SEG01"},
		Destinations: []string{"SEG01"},
		Cells:        map[string]map[string]float64{"SEG01": {"SEG01": 350}},
		Lost:         map[string]float64{"SEG01": 120},
		New:          map[string]float64{},
	}

	analyzer := mocks.NewMockAnalyzer(ctrl)
	analyzer.EXPECT().Transitions(gomock.Any(), domain.Month(202401), domain.Month(202402)).Return(matrix, nil)
	analyzer.EXPECT().WeightedTransitions(gomock.Any(), domain.Month(202401), domain.Month(202402),
		analyzing.Weighting{Metric: analyzing.MetricTTMRevenue}).Return(weighted, nil)

	rec := serve(Movements(analyzer), domain.RoleAnalyst, http.MethodGet, "/v1/movements/transitions?from=202401&to=202402&metric=ttm_revenue")
	require.Equal(t, http.StatusOK, rec.Code)

	var body TransitionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Weighted)
	assert.Equal(t, 350.0, body.Weighted.Value("SEG01", "SEG01"))
	assert.Equal(t, 120.0, body.Weighted.Lost["SEG01"])
	assert.Equal(t, 0.5, body.RetentionRates["SEG01"])
}

func TestGetTransitions_ContagemSemMatrizPonderada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	matrix := &domain.TransitionMatrix{
		FromMonth:    202401,
		ToMonth:      202402,
		Origins:      []string{"SEG01"},
		Destinations: []string{"SEG01"},
		Cells:        map[string]map[string]int{"SEG01": {"SEG01": 1}},
		Lost:         map[string]int{},
		New:          map[string]int{},
		OriginTotals: map[string]int{"SEG01": 1},
	}

	analyzer := mocks.NewMockAnalyzer(ctrl)
	analyzer.EXPECT().Transitions(gomock.Any(), gomock.Any(), gomock.Any()).Return(matrix, nil)

	rec := serve(Movements(analyzer), domain.RoleAnalyst, http.MethodGet, "/v1/movements/transitions?from=202401&to=202402&metric=count")
	require.Equal(t, http.StatusOK, rec.Code)

	var body TransitionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Weighted)
	assert.Equal(t, 1.0, body.RetentionRates["SEG01"])
}

func TestGetFlows(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		wantWeighting *analyzing.Weighting
		err           error
		wantStatus    int
		wantCode      string
	}{
		{
			name:          "fluxos por contagem",
			wantWeighting: &analyzing.Weighting{Metric: analyzing.MetricCount},
			wantStatus:    http.StatusOK,
		},
		{
			name:          "fluxos por volume",
			query:         "&metric=volume",
			wantWeighting: &analyzing.Weighting{Metric: analyzing.MetricVolume},
			wantStatus:    http.StatusOK,
		},
		{
			name:          "produto desconhecido",
			query:         "&metric=revenue&product=XYZ",
			wantWeighting: &analyzing.Weighting{Metric: analyzing.MetricRevenue, Product: "XYZ"},
			err:           domain.NewAnalysisError(domain.ErrUnknownProduct, "", 0, "XYZ"),
			wantStatus:    http.StatusNotFound,
			wantCode:      apiErrors.ErrUnknownProduct,
		},
		{
			name:       "métrica inválida",
			query:      "&metric=margin",
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			analyzer := mocks.NewMockAnalyzer(ctrl)
			if tt.wantWeighting != nil {
				var flows []domain.Flow
				if tt.err == nil {
					flows = []domain.Flow{{Source: "SEG01", Target: "SEG02", Value: 2}}
				}
				analyzer.EXPECT().Flows(gomock.Any(), domain.Month(202401), domain.Month(202402), *tt.wantWeighting).
					Return(flows, tt.err)
			}

			rec := serve(Movements(analyzer), domain.RoleAnalyst, http.MethodGet, "/v1/movements/flows?from=202401&to=202402"+tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeCode(t, rec))
				return
			}

			var body []domain.Flow
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, []domain.Flow{{Source: "SEG01", Target: "SEG02", Value: 2}}, body)
		})
	}
}

func TestGetMovementEntities(t *testing.T) {
	movements := []domain.EntityMovement{
		{Entity: "E1", FromSegment: "SEG01", ToSegment: "SEG01", Status: domain.StatusRetained},
		{Entity: "E2", FromSegment: "SEG01", ToSegment: "SEG02", Status: domain.StatusMovedInternal},
		{Entity: "E3", FromSegment: "SEG02", Status: domain.StatusLostSystem},
		{Entity: "E4", ToSegment: "SEG02", Status: domain.StatusNewSystem},
	}

	tests := []struct {
		name         string
		query        string
		callsService bool
		wantStatus   int
		wantEntities []domain.Entity
	}{
		{
			name:         "todas as entidades",
			callsService: true,
			wantStatus:   http.StatusOK,
			wantEntities: []domain.Entity{"E1", "E2", "E3", "E4"},
		},
		{
			name:         "filtro por perdidas",
			query:        "&status=lost_system",
			callsService: true,
			wantStatus:   http.StatusOK,
			wantEntities: []domain.Entity{"E3"},
		},
		{
			name:         "filtro sem diferenciar maiúsculas",
			query:        "&status=Moved_Internal",
			callsService: true,
			wantStatus:   http.StatusOK,
			wantEntities: []domain.Entity{"E2"},
		},
		{
			name:       "status inválido",
			query:      "&status=churned",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			analyzer := mocks.NewMockAnalyzer(ctrl)
			if tt.callsService {
				analyzer.EXPECT().Movements(gomock.Any(), domain.Month(202401), domain.Month(202402)).Return(movements, nil)
			}

			rec := serve(Movements(analyzer), domain.RoleAnalyst, http.MethodGet, "/v1/movements/entities?from=202401&to=202402"+tt.query)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantEntities == nil {
				assert.Equal(t, apiErrors.ErrInvalidRequest, decodeCode(t, rec))
				return
			}

			var body []domain.EntityMovement
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			entities := make([]domain.Entity, 0, len(body))
			for _, movement := range body {
				entities = append(entities, movement.Entity)
			}
			assert.Equal(t, tt.wantEntities, entities)
		})
	}
}

func TestGetRetention(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(m *mocks.MockAnalyzer)
		wantStatus int
	}{
		{
			name:   "curva com meses informados",
			target: "/v1/cohorts/retention?segment=SEG01&origin=202401&months=202402,202404",
			setup: func(m *mocks.MockAnalyzer) {
				m.EXPECT().Retention(gomock.Any(), "SEG01", domain.Month(202401), []domain.Month{202402, 202404}).
					Return(&analyzing.RetentionReport{
						Cohort: analyzing.CohortSummary{Segment: "SEG01", Origin: 202401, Size: 100},
						Points: []domain.RetentionPoint{{Month: 202404, RetainedCount: 80, RetentionRate: 0.8}},
					}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "sem segmento",
			target:     "/v1/cohorts/retention?origin=202401",
			setup:      func(m *mocks.MockAnalyzer) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "lista de meses inválida",
			target:     "/v1/cohorts/retention?segment=SEG01&origin=202401&months=202402,abc",
			setup:      func(m *mocks.MockAnalyzer) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "coorte inexistente",
			target: "/v1/cohorts/retention?segment=SEG09&origin=202401",
			setup: func(m *mocks.MockAnalyzer) {
				m.EXPECT().Retention(gomock.Any(), "SEG09", domain.Month(202401), gomock.Nil()).
					Return(nil, domain.ErrEntityNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			analyzer := mocks.NewMockAnalyzer(ctrl)
			tt.setup(analyzer)

			rec := serve(Cohorts(analyzer), domain.RoleAnalyst, http.MethodGet, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetEntityRisk(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(m *mocks.MockAnalyzer)
		wantStatus int
		wantCode   string
	}{
		{
			name:   "score calculado",
			target: "/v1/entities/00042/risk?as_of=202406",
			setup: func(m *mocks.MockAnalyzer) {
				m.EXPECT().EntityRisk(gomock.Any(), "00042", domain.Month(202406)).
					Return(&domain.RiskScore{Subject: "42", Score: 61.5, Level: domain.RiskLevelHigh}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "histórico insuficiente",
			target: "/v1/entities/42/risk?as_of=202402",
			setup: func(m *mocks.MockAnalyzer) {
				m.EXPECT().EntityRisk(gomock.Any(), "42", domain.Month(202402)).
					Return(nil, domain.NewAnalysisError(domain.ErrInsufficientHistory, "42", 202402, ""))
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apiErrors.ErrInsufficientHistory,
		},
		{
			name:   "identificador inválido",
			target: "/v1/entities/abc/risk?as_of=202402",
			setup: func(m *mocks.MockAnalyzer) {
				m.EXPECT().EntityRisk(gomock.Any(), "abc", gomock.Any()).
					Return(nil, domain.NewAnalysisError(domain.ErrInvalidEntityID, "abc", 0, ""))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidEntityID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			analyzer := mocks.NewMockAnalyzer(ctrl)
			tt.setup(analyzer)

			rec := serve(Entities(analyzer), domain.RoleAnalyst, http.MethodGet, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeCode(t, rec))
			}
		})
	}
}

func TestGetRiskRanking_Limit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analyzer := mocks.NewMockAnalyzer(ctrl)
	analyzer.EXPECT().RiskRanking(gomock.Any(), domain.Month(202406), 10).
		Return(&analyzing.RiskReport{AsOf: 202406}, nil)

	rec := serve(Risk(analyzer), domain.RoleAnalyst, http.MethodGet, "/v1/risk/entities?as_of=202406&limit=10")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(Risk(analyzer), domain.RoleAnalyst, http.MethodGet, "/v1/risk/entities?as_of=202406&limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decodeCode(t, rec))
}

func TestReloadDataset_Permissions(t *testing.T) {
	tests := []struct {
		name       string
		role       domain.Role
		setup      func(m *mocks.MockAnalyzer)
		wantStatus int
	}{
		{
			name: "admin recarrega",
			role: domain.RoleAdmin,
			setup: func(m *mocks.MockAnalyzer) {
				m.EXPECT().Reload(gomock.Any()).Return(&domain.DatasetInfo{Entities: 10}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "analista não pode recarregar",
			role:       domain.RoleAnalyst,
			setup:      func(m *mocks.MockAnalyzer) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "conflito no reload",
			role: domain.RoleAdmin,
			setup: func(m *mocks.MockAnalyzer) {
				m.EXPECT().Reload(gomock.Any()).
					Return(nil, domain.NewConflictError("7", 202403, []string{"SEG01 (a)", "SEG02 (b)"}, ""))
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			analyzer := mocks.NewMockAnalyzer(ctrl)
			tt.setup(analyzer)

			rec := serve(Dataset(analyzer), tt.role, http.MethodPost, "/v1/dataset/reload")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

type fakeCronJob struct {
	triggered int
}

func (f *fakeCronJob) TriggerManualSync() { f.triggered++ }

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": false}
}

func TestCronJobs(t *testing.T) {
	job := &fakeCronJob{}
	services := CronJobServices{BatchAnalysisService: job}

	rec := serve(CronJobs(services), domain.RoleAdmin, http.MethodPost, "/v1/cron/batch-analysis/run")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, job.triggered)

	rec = serve(CronJobs(services), domain.RoleAdmin, http.MethodPost, "/v1/cron/desconhecido/run")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(CronJobs(services), domain.RoleAdmin, http.MethodGet, "/v1/cron/status")
	assert.Equal(t, http.StatusOK, rec.Code)

	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Contains(t, status, CronJobTypeBatchAnalysis)

	rec = serve(CronJobs(CronJobServices{}), domain.RoleAdmin, http.MethodPost, "/v1/cron/batch-analysis/run")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
