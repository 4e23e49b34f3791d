package quotation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/costsheet-erp/costsheet/internal/costing"
)

// masterData is the slice of the master-data service the calculator
// assembly needs.
type masterData interface {
	OverheadTable(ctx context.Context) map[int]costing.GroupRate
	FactoryExpenseRate(ctx context.Context) float64
	RMBasePrice(ctx context.Context, product, shipmentMonth string) float64
}

type Service struct {
	repo    Repository
	master  masterData
	logger  *slog.Logger
	printer *message.Printer
}

func NewService(repo Repository, master masterData, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		master:  master,
		logger:  logger,
		printer: message.NewPrinter(language.English),
	}
}

// NextDocNumber returns the next free document number for the given
// date. Concurrent callers can race to the same number; the header
// upsert makes a collision overwrite rather than fail.
func (s *Service) NextDocNumber(ctx context.Context, date time.Time) (string, error) {
	prefix := DocPrefixFor(date)
	existing, err := s.repo.DocNumbersWithPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return FormatDocNumber(prefix, NextSequence(prefix, existing)), nil
}

// buildInput assembles the calculator input from the request and
// master data. Raw-material prices are resolved against the price
// list effective for the document month.
func (s *Service) buildInput(ctx context.Context, req SaveRequest, h Header) costing.Input {
	month := h.DocDate.Format("Jan.06")

	lines := make([]costing.Line, 0, len(req.Lines))
	for _, lr := range req.Lines {
		line := lr.toCostingLine()
		if line.ProductRM != "" {
			line.BaseRMPrice = s.master.RMBasePrice(ctx, line.ProductRM, month)
		}
		lines = append(lines, line)
	}

	return costing.Input{
		ExchangeRate:       h.ExchangeRate,
		Overheads:          s.master.OverheadTable(ctx),
		FactoryExpenseRate: s.master.FactoryExpenseRate(ctx),
		Expenses:           req.Expenses,
		Insurance:          conditionNames[req.Condition],
		Interest:           req.Interest.toModel().Params(),
		Lines:              lines,
	}
}

// Preview runs the calculation without persisting anything.
func (s *Service) Preview(ctx context.Context, req SaveRequest) (*PreviewResponse, error) {
	h, err := req.Header.toModel()
	if err != nil {
		return nil, fmt.Errorf("quotation: parse header dates: %w", err)
	}
	result := costing.Calculate(s.buildInput(ctx, req, h))
	return &PreviewResponse{
		Result:          result,
		GrandTotalLabel: s.printer.Sprintf("%.2f", result.GrandTotal),
	}, nil
}

// Save calculates the document and persists the header with all five
// dependent record sets in one transaction. Re-saving an existing
// document number replaces its children wholesale.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*SaveResponse, error) {
	h, err := req.Header.toModel()
	if err != nil {
		return nil, fmt.Errorf("quotation: parse header dates: %w", err)
	}
	if h.DocNo == "" {
		if h.DocNo, err = s.NextDocNumber(ctx, h.DocDate); err != nil {
			return nil, err
		}
	}

	result := costing.Calculate(s.buildInput(ctx, req, h))

	expenses := req.Expenses
	expenses.Insurance = result.Insurance

	costs := make([]ProductionCost, 0, len(result.Lines))
	for _, b := range result.Lines {
		costs = append(costs, ProductionCost{Breakdown: b, Status: "Draft"})
	}

	loadings := make([]Loading, 0, len(req.Loadings))
	for i, lr := range req.Loadings {
		loadings = append(loadings, Loading{
			Order:         i + 1,
			ProductName:   lr.ProductName,
			QtyCartons:    lr.QtyCartons,
			WeightPerUnit: lr.WeightPerUnit,
			TotalWeight:   float64(lr.QtyCartons) * lr.WeightPerUnit,
			ContainerNo:   lr.ContainerNo,
			Remark:        lr.Remark,
		})
	}

	remarks := make([]Remark, 0, len(req.Remarks))
	for i, text := range req.Remarks {
		if text == "" {
			continue
		}
		remarks = append(remarks, Remark{Order: i + 1, Text: text})
	}

	var quotationID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.UpsertHeader(ctx, h)
		if err != nil {
			return err
		}
		quotationID = id

		if err := repo.DeleteChildren(ctx, id); err != nil {
			return err
		}
		if err := repo.InsertExpenses(ctx, id, expenses, result.TotalExportExpense); err != nil {
			return err
		}
		if err := repo.InsertInterest(ctx, id, req.Interest.toModel()); err != nil {
			return err
		}
		if err := repo.InsertProductionCosts(ctx, id, costs); err != nil {
			return err
		}
		if err := repo.InsertLoadings(ctx, id, loadings); err != nil {
			return err
		}
		return repo.InsertRemarks(ctx, id, remarks)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cost sheet saved",
		slog.String("doc_no", h.DocNo),
		slog.Int("lines", len(costs)),
		slog.Float64("grand_total", result.GrandTotal))

	return &SaveResponse{
		DocNo:           h.DocNo,
		QuotationID:     quotationID,
		GrandTotal:      result.GrandTotal,
		GrandTotalLabel: s.printer.Sprintf("%.2f", result.GrandTotal),
	}, nil
}

func (s *Service) Get(ctx context.Context, docNo string) (*Document, error) {
	return s.repo.GetByDocNo(ctx, docNo)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]ListItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Delete(ctx context.Context, docNo string) error {
	if err := s.repo.DeleteByDocNo(ctx, docNo); err != nil {
		return err
	}
	s.logger.Info("cost sheet deleted", slog.String("doc_no", docNo))
	return nil
}
