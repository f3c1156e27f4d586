package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/groups"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/pagination"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/rebate"
	"github.com/shopspring/decimal"
)

const (
	dayLayout = "2006-01-02"
	// TopProductsLimit is how many deals the admin ranking shows.
	TopProductsLimit = 5
)

// Aggregator folds a workspace snapshot into report views. loc decides which
// calendar day an opt-in falls on.
type Aggregator struct {
	loc *time.Location
}

func NewAggregator(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{loc: loc}
}

// Location is the timezone used for days and CSV timestamps.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// VendorPerformance counts opt-ins and cases per vendor, in vendor order.
func (a *Aggregator) VendorPerformance(snap *workspace.Snapshot) []VendorStats {
	out := make([]VendorStats, 0, len(snap.Vendors))
	for _, v := range snap.Vendors {
		stats := VendorStats{VendorID: v.ID, VendorName: v.Name}
		total := decimal.Zero
		for _, o := range snap.OptIns {
			deal, ok := snap.FindDeal(o.DealID)
			if !ok || deal.VendorID != v.ID {
				continue
			}
			stats.OptIns++
			stats.TotalCases += o.CaseCount
			total = total.Add(rebate.Estimate(deal.RebateText, o.CaseCount))
		}
		stats.EstimatedRebate = rebate.Format(total)
		out = append(out, stats)
	}
	return out
}

// TopProducts ranks deals by opt-in count, keeping deal order on ties, and
// returns at most limit entries.
func (a *Aggregator) TopProducts(snap *workspace.Snapshot, limit int) []ProductStats {
	out := make([]ProductStats, 0, len(snap.Deals))
	for _, d := range snap.Deals {
		stats := ProductStats{DealID: d.ID, ProductName: d.ProductName, Brand: d.Brand, VendorName: d.VendorName}
		for _, o := range snap.OptIns {
			if o.DealID == d.ID {
				stats.OptIns++
				stats.TotalCases += o.CaseCount
			}
		}
		out = append(out, stats)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OptIns > out[j].OptIns
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Rows joins every opt-in with its deal, store and group and applies filter.
// Lookups that fail read "Unknown" instead of erroring.
func (a *Aggregator) Rows(snap *workspace.Snapshot, filter Filter) ([]Row, error) {
	match, err := a.compile(filter)
	if err != nil {
		return nil, err
	}

	resolver := groups.NewResolver(snap)
	out := []Row{}
	for _, o := range snap.OptIns {
		row := a.join(snap, resolver, o)
		if match(row) {
			out = append(out, row)
		}
	}
	return out, nil
}

// Page returns one cursor page of Rows, ordered by timestamp then opt-in id.
func (a *Aggregator) Page(snap *workspace.Snapshot, filter Filter, params pagination.Params) (*RowPage, error) {
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Invalid("invalid cursor", map[string]string{"cursor": err.Error()})
	}
	rows, err := a.Rows(snap, filter)
	if err != nil {
		return nil, err
	}
	page, next, err := pagination.Page(rows, rowCursor, params)
	if err != nil {
		return nil, pkgerrors.Invalid("invalid cursor", map[string]string{"cursor": err.Error()})
	}
	return &RowPage{Rows: page, NextCursor: next}, nil
}

func rowCursor(r Row) pagination.Cursor {
	return pagination.Cursor{Timestamp: r.Timestamp, ID: r.OptInID}
}

// Analytics is the admin overview. Members are counted as stores.
func (a *Aggregator) Analytics(snap *workspace.Snapshot) Analytics {
	out := Analytics{
		TotalOptIns:       len(snap.OptIns),
		TotalGuests:       len(snap.Guests),
		TotalMembers:      len(snap.Stores),
		TotalVendors:      len(snap.Vendors),
		VendorPerformance: a.VendorPerformance(snap),
		TopProducts:       a.TopProducts(snap, TopProductsLimit),
	}
	total := decimal.Zero
	for _, o := range snap.OptIns {
		out.TotalCases += o.CaseCount
		if deal, ok := snap.FindDeal(o.DealID); ok {
			total = total.Add(rebate.Estimate(deal.RebateText, o.CaseCount))
		}
	}
	out.EstimatedRebate = rebate.Format(total)
	return out
}

func (a *Aggregator) join(snap *workspace.Snapshot, resolver groups.Resolver, o workspace.OptIn) Row {
	row := Row{
		OptInID:   o.ID,
		DealID:    o.DealID,
		Deal:      workspace.Unknown,
		StoreID:   o.StoreID,
		Store:     snap.StoreName(o.StoreID),
		Vendor:    workspace.Unknown,
		Group:     groups.IndividualLabel,
		UserID:    o.UserID,
		CaseCount: o.CaseCount,
		IsGuest:   o.IsGuest,
		Timestamp: o.Timestamp,
	}
	if deal, ok := snap.FindDeal(o.DealID); ok {
		row.Deal = deal.ProductName
		row.VendorID = deal.VendorID
		row.Vendor = deal.VendorName
	}
	if g, ok := resolver.FindGroupFor(o.StoreID); ok {
		row.GroupID = g.ID
		row.Group = g.ParentStoreID.String()
	}
	return row
}

func (a *Aggregator) compile(f Filter) (func(Row) bool, error) {
	fields := map[string]string{}
	parse := func(name, value string) string {
		if value == "" {
			return ""
		}
		if _, err := time.ParseInLocation(dayLayout, value, a.loc); err != nil {
			fields[name] = "must be YYYY-MM-DD"
		}
		return value
	}
	date := parse("date", f.Date)
	from := parse("from", f.From)
	to := parse("to", f.To)
	if from != "" && to != "" && from > to {
		fields["to"] = fmt.Sprintf("must not be before %s", from)
	}
	if len(fields) > 0 {
		return nil, pkgerrors.Invalid("invalid report filter", fields)
	}

	return func(r Row) bool {
		if f.VendorID != "" && r.VendorID != f.VendorID {
			return false
		}
		if f.StoreID != "" && r.StoreID != f.StoreID {
			return false
		}
		if f.GroupID != "" && r.GroupID != f.GroupID {
			return false
		}
		day := r.Timestamp.In(a.loc).Format(dayLayout)
		if date != "" && day != date {
			return false
		}
		if from != "" && day < from {
			return false
		}
		if to != "" && day > to {
			return false
		}
		return true
	}, nil
}
