package quotation

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/costsheet-erp/costsheet/internal/costing"
)

type memoryRepo struct {
	nextID    int64
	headers   map[string]*Header
	expenses  map[int64]costing.ExportExpenses
	interests map[int64]InterestDetail
	costs     map[int64][]ProductionCost
	loadings  map[int64][]Loading
	remarks   map[int64][]Remark
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		headers:   make(map[string]*Header),
		expenses:  make(map[int64]costing.ExportExpenses),
		interests: make(map[int64]InterestDetail),
		costs:     make(map[int64][]ProductionCost),
		loadings:  make(map[int64][]Loading),
		remarks:   make(map[int64][]Remark),
	}
}

func (m *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *memoryRepo) UpsertHeader(_ context.Context, h Header) (int64, error) {
	if existing, ok := m.headers[h.DocNo]; ok {
		h.ID = existing.ID
		m.headers[h.DocNo] = &h
		return h.ID, nil
	}
	m.nextID++
	h.ID = m.nextID
	m.headers[h.DocNo] = &h
	return h.ID, nil
}

func (m *memoryRepo) DeleteChildren(_ context.Context, id int64) error {
	delete(m.expenses, id)
	delete(m.interests, id)
	delete(m.costs, id)
	delete(m.loadings, id)
	delete(m.remarks, id)
	return nil
}

func (m *memoryRepo) InsertExpenses(_ context.Context, id int64, e costing.ExportExpenses, _ float64) error {
	m.expenses[id] = e
	return nil
}

func (m *memoryRepo) InsertInterest(_ context.Context, id int64, d InterestDetail) error {
	m.interests[id] = d
	return nil
}

func (m *memoryRepo) InsertProductionCosts(_ context.Context, id int64, costs []ProductionCost) error {
	m.costs[id] = append(m.costs[id], costs...)
	return nil
}

func (m *memoryRepo) InsertLoadings(_ context.Context, id int64, loadings []Loading) error {
	m.loadings[id] = append(m.loadings[id], loadings...)
	return nil
}

func (m *memoryRepo) InsertRemarks(_ context.Context, id int64, remarks []Remark) error {
	m.remarks[id] = append(m.remarks[id], remarks...)
	return nil
}

func (m *memoryRepo) GetByDocNo(_ context.Context, docNo string) (*Document, error) {
	h, ok := m.headers[docNo]
	if !ok {
		return nil, ErrNotFound
	}
	return &Document{
		Header:   *h,
		Expenses: m.expenses[h.ID],
		Interest: m.interests[h.ID],
		Costs:    m.costs[h.ID],
		Loadings: m.loadings[h.ID],
		Remarks:  m.remarks[h.ID],
	}, nil
}

func (m *memoryRepo) List(_ context.Context, _, _ int) ([]ListItem, error) {
	items := make([]ListItem, 0, len(m.headers))
	for _, h := range m.headers {
		items = append(items, ListItem{DocNo: h.DocNo, DocDate: h.DocDate})
	}
	return items, nil
}

func (m *memoryRepo) DeleteByDocNo(_ context.Context, docNo string) error {
	h, ok := m.headers[docNo]
	if !ok {
		return ErrNotFound
	}
	_ = m.DeleteChildren(context.Background(), h.ID)
	delete(m.headers, docNo)
	return nil
}

func (m *memoryRepo) DocNumbersWithPrefix(_ context.Context, prefix string) ([]string, error) {
	var docs []string
	for docNo := range m.headers {
		if len(docNo) >= len(prefix) && docNo[:len(prefix)] == prefix {
			docs = append(docs, docNo)
		}
	}
	return docs, nil
}

type stubMaster struct {
	rmPrices map[string]float64
}

func (s stubMaster) OverheadTable(context.Context) map[int]costing.GroupRate {
	return map[int]costing.GroupRate{
		0: {OverheadRate: 0.10, YieldLossPercent: 0},
		2: {OverheadRate: 0.51, YieldLossPercent: 0.95},
	}
}

func (s stubMaster) FactoryExpenseRate(context.Context) float64 { return 0.42 }

func (s stubMaster) RMBasePrice(_ context.Context, product, _ string) float64 {
	return s.rmPrices[product]
}

func newTestService(repo Repository) *Service {
	master := stubMaster{rmPrices: map[string]float64{"Pineapple Slice": 12.5}}
	return NewService(repo, master, slog.Default())
}

func baseRequest() SaveRequest {
	return SaveRequest{
		Header: HeaderRequest{
			DocDate:      "2025-03-07",
			TraderName:   "Somchai",
			Currency:     "USD",
			ExchangeRate: 34.0,
		},
		Condition: "non_africa_fob_cfr",
		Expenses:  costing.ExportExpenses{Freight: 50000, ContainerQty: 2},
		Interest:  InterestRequest{ARRate: 5, ARDays: 30},
		Lines: []LineRequest{
			{
				Item:         1,
				ProductName:  "Pineapple Slice 20oz",
				ProductRM:    "Pineapple Slice",
				Group:        2,
				Packaging:    3.2,
				Quantity:     1000,
				SellingPrice: 950,
			},
		},
	}
}

func TestSaveGeneratesNextDocNumber(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	seeded := baseRequest()
	seeded.Header.DocNo = "CS20250307-0002"
	_, err := svc.Save(ctx, seeded)
	require.NoError(t, err)

	resp, err := svc.Save(ctx, baseRequest())
	require.NoError(t, err)
	require.Equal(t, "CS20250307-0003", resp.DocNo)
}

func TestSavePersistsCalculatedLines(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	resp, err := svc.Save(ctx, baseRequest())
	require.NoError(t, err)

	doc, err := svc.Get(ctx, resp.DocNo)
	require.NoError(t, err)
	require.Len(t, doc.Costs, 1)

	line := doc.Costs[0]
	require.Equal(t, "Draft", line.Status)
	require.InDelta(t, 12.5*1000/34.0, line.RMPrice, 1e-9)
	require.Greater(t, line.TotalCost, 0.0)
	require.Greater(t, doc.Expenses.Insurance, 0.0)
	require.Greater(t, resp.GrandTotal, 0.0)
}

func TestResaveReplacesChildRecords(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	req := baseRequest()
	req.Header.DocNo = "CS20250307-0001"
	req.Lines = append(req.Lines, LineRequest{
		Item: 2, ProductName: "Pineapple Chunk", Group: 0, Quantity: 500, SellingPrice: 700,
	})
	first, err := svc.Save(ctx, req)
	require.NoError(t, err)

	req.Lines = req.Lines[:1]
	req.Remarks = []string{"updated terms"}
	second, err := svc.Save(ctx, req)
	require.NoError(t, err)
	require.Equal(t, first.QuotationID, second.QuotationID)

	doc, err := svc.Get(ctx, "CS20250307-0001")
	require.NoError(t, err)
	require.Len(t, doc.Costs, 1)
	require.Len(t, doc.Remarks, 1)
}

func TestSaveComputesLoadingWeights(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	req := baseRequest()
	req.Loadings = []LoadingRequest{
		{ProductName: "Pineapple Slice 20oz", QtyCartons: 1200, WeightPerUnit: 16.5},
	}
	resp, err := svc.Save(context.Background(), req)
	require.NoError(t, err)

	doc, err := svc.Get(context.Background(), resp.DocNo)
	require.NoError(t, err)
	require.Len(t, doc.Loadings, 1)
	require.InDelta(t, 1200*16.5, doc.Loadings[0].TotalWeight, 1e-9)
	require.Equal(t, 1, doc.Loadings[0].Order)
}

func TestSaveSkipsEmptyRemarks(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)

	req := baseRequest()
	req.Remarks = []string{"", "pack in white cartons", ""}
	resp, err := svc.Save(context.Background(), req)
	require.NoError(t, err)

	doc, err := svc.Get(context.Background(), resp.DocNo)
	require.NoError(t, err)
	require.Len(t, doc.Remarks, 1)
	require.Equal(t, "pack in white cartons", doc.Remarks[0].Text)
}

func TestDeleteUnknownDocNo(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	err := svc.Delete(context.Background(), "CS19990101-0001")
	require.ErrorIs(t, err, ErrNotFound)
}
