package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
)

const csvTimestampLayout = "2006-01-02 15:04:05"

var (
	adminCSVHeader  = []string{"Deal", "Store", "StoreId", "Vendor", "Group", "CaseCount", "IsGuest", "Timestamp"}
	vendorCSVHeader = []string{"Store", "StoreHraId", "CaseCount", "Timestamp"}
)

// AdminCSVFilename is hra-report-<today>.csv in the report timezone.
func (a *Aggregator) AdminCSVFilename(now time.Time) string {
	return fmt.Sprintf("hra-report-%s.csv", now.In(a.loc).Format(dayLayout))
}

// VendorSignupsFilename names the per-deal export.
func VendorSignupsFilename(dealID workspace.DealID) string {
	return fmt.Sprintf("deal-%s-signups.csv", dealID)
}

// AdminCSV renders report rows. The header is written even when rows is empty.
func (a *Aggregator) AdminCSV(rows []Row) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Deal,
			r.Store,
			r.StoreID.String(),
			r.Vendor,
			r.Group,
			strconv.Itoa(r.CaseCount),
			yesNo(r.IsGuest),
			r.Timestamp.In(a.loc).Format(csvTimestampLayout),
		})
	}
	return writeCSV(adminCSVHeader, records)
}

// VendorSignupsCSV renders the opt-ins of a single deal.
func (a *Aggregator) VendorSignupsCSV(snap *workspace.Snapshot, optIns []workspace.OptIn) ([]byte, error) {
	records := make([][]string, 0, len(optIns))
	for _, o := range optIns {
		records = append(records, []string{
			snap.StoreName(o.StoreID),
			o.StoreID.String(),
			strconv.Itoa(o.CaseCount),
			o.Timestamp.In(a.loc).Format(csvTimestampLayout),
		})
	}
	return writeCSV(vendorCSVHeader, records)
}

func writeCSV(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
