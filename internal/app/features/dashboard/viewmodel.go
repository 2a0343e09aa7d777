// internal/app/features/dashboard/viewmodel.go
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/elearnprepa/influencerhub/internal/app/system/promostats"
	"github.com/elearnprepa/influencerhub/internal/app/system/viewdata"
	"github.com/elearnprepa/influencerhub/internal/domain/models"
)

type dashboardVM struct {
	viewdata.BaseVM

	InfluencerName     string
	PromoCode          string
	DiscountPercentage string
	ValidUntil         string // empty when the code has no expiry
	Expired            bool

	TotalEvents int
	DataError   string

	Stats  statsVM
	Series []seriesRowVM
	Rows   []usageRowVM
}

// statsVM carries the five headline figures, preformatted for display.
type statsVM struct {
	CompletedOrders         int
	TotalOriginalRevenue    string
	TotalFinalRevenue       string
	TotalDiscount           string
	AverageDiscountPerOrder string
}

type seriesRowVM struct {
	Date           string
	OriginalAmount string
	Discount       string
	FinalAmount    string
}

type usageRowVM struct {
	Date           string
	Status         string // class-safe bucket for styling
	StatusLabel    string // display text
	Completed      bool
	HasPayment     bool
	TrxReference   string
	OriginalAmount string
	Discount       string
	FinalAmount    string
}

// amount renders a monetary value the way prices are quoted on the
// platform, as whole units.
func amount(d decimal.Decimal) string {
	return d.StringFixed(0)
}

func newStatsVM(s promostats.Summary) statsVM {
	return statsVM{
		CompletedOrders:         s.CompletedOrders,
		TotalOriginalRevenue:    amount(s.TotalOriginalRevenue),
		TotalFinalRevenue:       amount(s.TotalFinalRevenue),
		TotalDiscount:           amount(s.TotalDiscount),
		AverageDiscountPerOrder: s.AverageDiscountPerOrder.StringFixed(2),
	}
}

func newSeriesVM(buckets []promostats.Bucket) []seriesRowVM {
	out := make([]seriesRowVM, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, seriesRowVM{
			Date:           b.Date,
			OriginalAmount: amount(b.OriginalAmount),
			Discount:       amount(b.Discount),
			FinalAmount:    amount(b.FinalAmount),
		})
	}
	return out
}

func newRowVMs(rows []promostats.Row) []usageRowVM {
	out := make([]usageRowVM, 0, len(rows))
	for _, row := range rows {
		vm := usageRowVM{
			Date:        row.Usage.CreatedAt.Format("2006-01-02 15:04"),
			Status:      "none",
			StatusLabel: "no payment",
		}
		if p := row.Usage.Payment; p != nil {
			vm.HasPayment = true
			vm.Status = models.StatusLabel(p.Status)
			vm.StatusLabel = models.StatusLabel(p.Status)
			vm.Completed = p.IsCompleted()
			vm.TrxReference = p.TrxReference
			vm.OriginalAmount = amount(row.OriginalAmount)
			vm.Discount = amount(row.Discount)
			vm.FinalAmount = amount(row.FinalAmount)
		}
		out = append(out, vm)
	}
	return out
}
