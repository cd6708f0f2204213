package insight

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/forecast-server/internal/handlers"
	"github.com/carson-networks/forecast-server/internal/service"
)

// CustomersInput is the Huma input for the customer breakdown.
type CustomersInput struct {
	Client string `query:"client" doc:"Client whose invoices are listed, defaults to the largest client"`
}

// ClientTotal is the API response model for one of the top clients.
type ClientTotal struct {
	AuxDocument string `json:"auxDocument"`
	Client      string `json:"client"`
	Total       string `json:"total" doc:"Decimal amount"`
}

// ClientInvoice is the API response model for one invoice of a client.
type ClientInvoice struct {
	IssueDate   string `json:"issueDate" format:"date"`
	Amount      string `json:"amount" doc:"Decimal amount"`
	AuxDocument string `json:"auxDocument"`
}

// CustomersResponse is the response body for the customer breakdown.
type CustomersResponse struct {
	TotalSales    string          `json:"totalSales" doc:"Decimal amount"`
	Clients       int             `json:"clients" doc:"Distinct client names"`
	Invoices      int             `json:"invoices"`
	AverageTicket string          `json:"averageTicket" doc:"Decimal amount"`
	TopClients    []ClientTotal   `json:"topClients"`
	Client        string          `json:"client"`
	History       []ClientInvoice `json:"history" doc:"Invoices of client ordered by issue date"`
}

// CustomersOutput is the Huma output for the customer breakdown.
type CustomersOutput struct {
	Body CustomersResponse
}

type customerViewer interface {
	Customers(ctx context.Context, client string) (*service.CustomerView, error)
}

// CustomersHandler handles GET /v1/customers.
type CustomersHandler struct {
	Dashboard customerViewer
}

func NewCustomersHandler(svc customerViewer) *CustomersHandler {
	return &CustomersHandler{Dashboard: svc}
}

// Register registers the customer breakdown endpoint with the Huma API.
func (h *CustomersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-customers",
		Method:      http.MethodGet,
		Path:        "/v1/customers",
		Summary:     "Customer breakdown",
		Description: "Returns sales totals, the top clients and the invoice history of one client.",
		Tags:        []string{"Insights"},
	}, h.handle)
}

func (h *CustomersHandler) handle(ctx context.Context, input *CustomersInput) (*CustomersOutput, error) {
	view, err := h.Dashboard.Customers(ctx, input.Client)
	if err != nil {
		return nil, handlers.ToHumaError(err, "failed to summarise customers")
	}

	resp := CustomersResponse{
		TotalSales:    view.Summary.TotalSales.StringFixed(2),
		Clients:       view.Summary.Clients,
		Invoices:      view.Summary.Invoices,
		AverageTicket: view.Summary.AverageTicket.StringFixed(2),
		TopClients:    make([]ClientTotal, len(view.Top)),
		Client:        view.Client,
		History:       make([]ClientInvoice, len(view.History)),
	}
	for i, c := range view.Top {
		resp.TopClients[i] = ClientTotal{
			AuxDocument: c.AuxDocument,
			Client:      c.Client,
			Total:       c.Total.StringFixed(2),
		}
	}
	for i, r := range view.History {
		resp.History[i] = ClientInvoice{
			IssueDate:   r.IssueDate.Format(time.DateOnly),
			Amount:      r.Amount.StringFixed(2),
			AuxDocument: r.AuxDocument,
		}
	}
	return &CustomersOutput{Body: resp}, nil
}
