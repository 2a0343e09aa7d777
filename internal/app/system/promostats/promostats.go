// Package promostats computes the revenue and discount figures shown on
// the partner dashboard from raw promo-code usage rows.
//
// Everything here is a pure function of its inputs: same rows and same
// discount percentage always produce the same Summary, and input slices
// are never mutated.
package promostats

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/elearnprepa/influencerhub/internal/domain/models"
)

// ErrDegenerateDiscount is returned for a 100% discount: the pre-discount
// amount cannot be reconstructed from a zero charge, and silently emitting
// infinities would corrupt every total downstream.
var ErrDegenerateDiscount = errors.New("cannot reconstruct original amount for a 100% discount")

// ErrInvalidDiscount is returned when the discount percentage is outside
// the 0–100 range the data model promises.
var ErrInvalidDiscount = errors.New("discount percentage out of range")

// chartEvents caps how many completed events feed the date series.
const chartEvents = 10

var oneHundred = decimal.NewFromInt(100)

// Summary holds the aggregate figures for one partner's usage history.
type Summary struct {
	CompletedOrders         int
	TotalOriginalRevenue    decimal.Decimal
	TotalFinalRevenue       decimal.Decimal
	TotalDiscount           decimal.Decimal
	AverageDiscountPerOrder decimal.Decimal
	Series                  []Bucket
}

// Bucket is one calendar date of the chart series.
type Bucket struct {
	Date           string // YYYY-MM-DD
	OriginalAmount decimal.Decimal
	Discount       decimal.Decimal
	FinalAmount    decimal.Decimal
}

// Row pairs a usage event with its derived per-event amounts, for the
// usage table. Rows are produced for every status; events without a
// payment carry zero amounts.
type Row struct {
	Usage          models.PromoCodeUsage
	OriginalAmount decimal.Decimal
	Discount       decimal.Decimal
	FinalAmount    decimal.Decimal
}

// OriginalAmount reconstructs the pre-discount price from the amount
// actually charged: round(amount / (1 - p/100)). The result is rounded to
// a whole amount, matching how prices are quoted in this market.
func OriginalAmount(finalAmount, discountPercentage decimal.Decimal) (decimal.Decimal, error) {
	if err := validatePercentage(discountPercentage); err != nil {
		return decimal.Zero, err
	}
	factor := decimal.NewFromInt(1).Sub(discountPercentage.Div(oneHundred))
	return finalAmount.Div(factor).Round(0), nil
}

// ExtendRows derives per-event amounts for display. All statuses are
// included; the financial totals in Aggregate filter separately.
func ExtendRows(events []models.PromoCodeUsage, discountPercentage decimal.Decimal) ([]Row, error) {
	if err := validatePercentage(discountPercentage); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(events))
	for _, ev := range events {
		row := Row{Usage: ev}
		if ev.Payment != nil {
			orig, err := OriginalAmount(ev.Payment.Amount, discountPercentage)
			if err != nil {
				return nil, err
			}
			row.OriginalAmount = orig
			row.FinalAmount = ev.Payment.Amount
			row.Discount = orig.Sub(ev.Payment.Amount)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Aggregate computes the Summary for a partner's usage rows.
//
// Only events whose payment status is "completed" enter the financial
// totals; every other status is excluded from all of them. The series
// takes the 10 most recent completed events, buckets them by calendar
// date and is emitted in ascending date order.
func Aggregate(events []models.PromoCodeUsage, discountPercentage decimal.Decimal) (Summary, error) {
	if err := validatePercentage(discountPercentage); err != nil {
		return Summary{}, err
	}

	completed := make([]models.PromoCodeUsage, 0, len(events))
	for _, ev := range events {
		if ev.Payment != nil && ev.Payment.IsCompleted() {
			completed = append(completed, ev)
		}
	}
	// Newest first, regardless of input order, so the series cap is
	// deterministic.
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CreatedAt.After(completed[j].CreatedAt)
	})

	s := Summary{
		CompletedOrders:         len(completed),
		TotalOriginalRevenue:    decimal.Zero,
		TotalFinalRevenue:       decimal.Zero,
		TotalDiscount:           decimal.Zero,
		AverageDiscountPerOrder: decimal.Zero,
	}

	for _, ev := range completed {
		orig, err := OriginalAmount(ev.Payment.Amount, discountPercentage)
		if err != nil {
			return Summary{}, err
		}
		s.TotalOriginalRevenue = s.TotalOriginalRevenue.Add(orig)
		s.TotalFinalRevenue = s.TotalFinalRevenue.Add(ev.Payment.Amount)
	}
	s.TotalDiscount = s.TotalOriginalRevenue.Sub(s.TotalFinalRevenue)

	if s.CompletedOrders > 0 {
		s.AverageDiscountPerOrder = s.TotalDiscount.DivRound(decimal.NewFromInt(int64(s.CompletedOrders)), 2)
	}

	series, err := buildSeries(completed, discountPercentage)
	if err != nil {
		return Summary{}, err
	}
	s.Series = series

	return s, nil
}

func buildSeries(completedDesc []models.PromoCodeUsage, discountPercentage decimal.Decimal) ([]Bucket, error) {
	recent := completedDesc
	if len(recent) > chartEvents {
		recent = recent[:chartEvents]
	}

	byDate := make(map[string]*Bucket, len(recent))
	for _, ev := range recent {
		date := ev.CreatedAt.Format("2006-01-02")
		orig, err := OriginalAmount(ev.Payment.Amount, discountPercentage)
		if err != nil {
			return nil, err
		}

		b, ok := byDate[date]
		if !ok {
			b = &Bucket{
				Date:           date,
				OriginalAmount: decimal.Zero,
				Discount:       decimal.Zero,
				FinalAmount:    decimal.Zero,
			}
			byDate[date] = b
		}
		b.OriginalAmount = b.OriginalAmount.Add(orig)
		b.Discount = b.Discount.Add(orig.Sub(ev.Payment.Amount))
		b.FinalAmount = b.FinalAmount.Add(ev.Payment.Amount)
	}

	series := make([]Bucket, 0, len(byDate))
	for _, b := range byDate {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })

	return series, nil
}

func validatePercentage(p decimal.Decimal) error {
	switch {
	case p.Equal(oneHundred):
		return ErrDegenerateDiscount
	case p.IsNegative() || p.GreaterThan(oneHundred):
		return ErrInvalidDiscount
	}
	return nil
}
