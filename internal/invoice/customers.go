package invoice

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CustomerSummary aggregates the whole history.
type CustomerSummary struct {
	TotalSales    decimal.Decimal
	Clients       int
	Invoices      int
	AverageTicket decimal.Decimal
}

// ClientTotal is the summed amount of one (aux document, client) pair.
type ClientTotal struct {
	AuxDocument string
	Client      string
	Total       decimal.Decimal
}

// Summarize computes total sales, distinct clients and the average ticket.
func Summarize(records []Record) CustomerSummary {
	summary := CustomerSummary{Invoices: len(records)}
	clients := make(map[string]struct{})
	for _, r := range records {
		summary.TotalSales = summary.TotalSales.Add(r.Amount)
		clients[r.Client] = struct{}{}
	}
	summary.Clients = len(clients)
	if len(records) > 0 {
		summary.AverageTicket = summary.TotalSales.Div(decimal.NewFromInt(int64(len(records))))
	}
	return summary
}

// TopClients returns the n largest (aux document, client) totals, largest first.
// Ties keep first-seen order.
func TopClients(records []Record, n int) []ClientTotal {
	type pair struct{ aux, client string }
	position := make(map[pair]int)
	var totals []ClientTotal
	for _, r := range records {
		key := pair{r.AuxDocument, r.Client}
		i, ok := position[key]
		if !ok {
			i = len(totals)
			position[key] = i
			totals = append(totals, ClientTotal{AuxDocument: r.AuxDocument, Client: r.Client})
		}
		totals[i].Total = totals[i].Total.Add(r.Amount)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// ClientHistory returns the records of one client ordered by issue date.
func ClientHistory(records []Record, client string) []Record {
	var out []Record
	for _, r := range records {
		if r.Client == client {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IssueDate.Before(out[j].IssueDate)
	})
	return out
}
