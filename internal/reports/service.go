package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/pagination"
)

// Export is a rendered CSV download.
type Export struct {
	Filename string
	Body     []byte
	Rows     int
}

// Service exposes the admin and vendor report views over a session workspace.
type Service interface {
	Analytics(ctx context.Context, ws *workspace.Workspace) Analytics
	Rows(ctx context.Context, ws *workspace.Workspace, filter Filter, params pagination.Params) (*RowPage, error)
	ExportCSV(ctx context.Context, ws *workspace.Workspace, filter Filter) (*Export, error)
	VendorSignupsCSV(ctx context.Context, ws *workspace.Workspace, dealID workspace.DealID, optIns []workspace.OptIn) (*Export, error)
}

type service struct {
	logg *logger.Logger
	agg  *Aggregator
	now  func() time.Time
}

func NewService(logg *logger.Logger, agg *Aggregator) (Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if agg == nil {
		return nil, fmt.Errorf("aggregator required")
	}
	return &service{logg: logg, agg: agg, now: time.Now}, nil
}

func (s *service) Analytics(ctx context.Context, ws *workspace.Workspace) Analytics {
	snap := ws.View()
	return s.agg.Analytics(&snap)
}

func (s *service) Rows(ctx context.Context, ws *workspace.Workspace, filter Filter, params pagination.Params) (*RowPage, error) {
	snap := ws.View()
	return s.agg.Page(&snap, filter, params)
}

func (s *service) ExportCSV(ctx context.Context, ws *workspace.Workspace, filter Filter) (*Export, error) {
	snap := ws.View()
	rows, err := s.agg.Rows(&snap, filter)
	if err != nil {
		return nil, err
	}
	body, err := s.agg.AdminCSV(rows)
	if err != nil {
		return nil, err
	}
	out := &Export{Filename: s.agg.AdminCSVFilename(s.now()), Body: body, Rows: len(rows)}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"filename": out.Filename,
		"rows":     out.Rows,
	}), "report.exported")
	return out, nil
}

func (s *service) VendorSignupsCSV(ctx context.Context, ws *workspace.Workspace, dealID workspace.DealID, optIns []workspace.OptIn) (*Export, error) {
	snap := ws.View()
	body, err := s.agg.VendorSignupsCSV(&snap, optIns)
	if err != nil {
		return nil, err
	}
	out := &Export{Filename: VendorSignupsFilename(dealID), Body: body, Rows: len(optIns)}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"deal_id":  dealID,
		"filename": out.Filename,
		"rows":     out.Rows,
	}), "report.exported")
	return out, nil
}
