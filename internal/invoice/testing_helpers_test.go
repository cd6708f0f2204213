package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

func rec(date string, amount string, aux string, client string) Record {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return Record{
		IssueDate:   d,
		Amount:      decimal.RequireFromString(amount),
		AuxDocument: aux,
		Client:      client,
	}
}
