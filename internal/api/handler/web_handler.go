package handler

import (
	"emi-calculator/internal/api/handler/dto"
	"emi-calculator/internal/domain/emi"
	"emi-calculator/internal/domain/product"
	"emi-calculator/internal/pkg/apperrors"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
)

// PageData is the view model of the calculator page. Results and Error are
// never both set.
type PageData struct {
	Principal   string
	Rate        string
	Tenure      string
	Prepayment  string
	ProductCode string
	Products    []product.Product
	Error       string
	Result      *dto.EMIResponse
}

// ShowSaved reports whether the interest saved line is worth displaying.
func (d PageData) ShowSaved() bool {
	return d.Result != nil && d.Result.InterestSaved != "0.00"
}

type WebHandler struct {
	calculator emi.CalculatorService
	products   product.ProductService
	tpl        *template.Template
	logger     *slog.Logger
}

func NewWebHandler(calc emi.CalculatorService, products product.ProductService, l *slog.Logger) *WebHandler {
	if calc == nil || products == nil {
		panic("web handler dependencies cannot be nil")
	}
	return &WebHandler{
		calculator: calc,
		products:   products,
		tpl:        template.Must(template.New("page").Parse(pageHTML)),
		logger:     l.With("component", "WebHandler"),
	}
}

// ShowForm renders an empty calculator.
func (h *WebHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	data := PageData{Products: h.listProducts(r)}
	h.render(w, http.StatusOK, data)
}

// SubmitForm computes the figures for the posted form. A failed submission
// drops any previous results and shows a single message.
func (h *WebHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	data := PageData{
		Principal:   strings.TrimSpace(r.FormValue("principal")),
		Rate:        strings.TrimSpace(r.FormValue("annualRatePercent")),
		Tenure:      strings.TrimSpace(r.FormValue("tenureYears")),
		Prepayment:  strings.TrimSpace(r.FormValue("prepayment")),
		ProductCode: strings.TrimSpace(r.FormValue("productCode")),
		Products:    h.listProducts(r),
	}

	fields := dto.LoanFields{
		Principal:         data.Principal,
		AnnualRatePercent: data.Rate,
		TenureYears:       data.Tenure,
		Prepayment:        data.Prepayment,
	}
	in, err := dto.ParseLoanFields(fields)
	var code string
	if err == nil {
		in, code, err = applyProduct(r.Context(), h.products, data.ProductCode, in, fields.Supplied())
	}
	var result emi.LoanResult
	if err == nil {
		result, err = h.calculator.Calculate(r.Context(), in)
	}
	if err != nil {
		data.Error = pageErrorMessage(err)
		h.render(w, http.StatusBadRequest, data)
		return
	}

	resp := dto.NewEMIResponse(result, code)
	data.Result = &resp
	h.render(w, http.StatusOK, data)
}

func (h *WebHandler) listProducts(r *http.Request) []product.Product {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.logger.WarnContext(r.Context(), "Rendering form without products", "error", err)
		return nil
	}
	return products
}

func (h *WebHandler) render(w http.ResponseWriter, status int, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.tpl.Execute(w, data); err != nil {
		h.logger.Error("Failed to render calculator page", "error", err)
	}
}

func pageErrorMessage(err error) string {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return "An unexpected error occurred."
}

const pageHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Loan EMI Calculator</title>
  <style>
    body { font-family: sans-serif; display: flex; justify-content: center; padding: 32px; background: #f5f3ff; }
    .card { background: #fff; border-radius: 8px; padding: 24px; max-width: 640px; width: 100%; box-shadow: 0 2px 6px #ddd6fe; }
    h1 { text-align: center; font-style: italic; color: #2563eb; }
    .form-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 12px 24px; }
    @media (max-width: 640px) { .form-grid { grid-template-columns: 1fr; } }
    label { display: block; margin-bottom: 4px; }
    input, select { width: 100%; padding: 8px; box-sizing: border-box; }
    .error { color: #ef4444; }
    .results { background: #a855f7; color: #fff; border-radius: 6px; padding: 12px; margin-top: 16px; }
    button { margin-top: 16px; width: 100%; padding: 10px; background: #3b82f6; color: #fff; border: 0; border-radius: 4px; font-weight: bold; }
  </style>
</head>
<body>
<div class="card">
  <h1>Loan EMI Calculator</h1>
  <form method="post" action="/">
    <div class="form-grid">
      <div>
        <label for="principal">Loan Amount</label>
        <input id="principal" name="principal" value="{{.Principal}}" placeholder="Enter loan amount">
      </div>
      <div>
        <label for="annualRatePercent">Interest Rate (%)</label>
        <input id="annualRatePercent" name="annualRatePercent" value="{{.Rate}}" placeholder="Enter interest rate">
      </div>
      <div>
        <label for="tenureYears">Loan Tenure (Years)</label>
        <input id="tenureYears" name="tenureYears" value="{{.Tenure}}" placeholder="Enter loan tenure">
      </div>
      <div>
        <label for="prepayment">Prepayment Amount</label>
        <input id="prepayment" name="prepayment" value="{{.Prepayment}}" placeholder="Enter prepayment amount (optional)">
      </div>
      {{if .Products}}
      <div>
        <label for="productCode">Loan Product</label>
        <select id="productCode" name="productCode">
          <option value="">(none)</option>
          {{range .Products}}<option value="{{.Code}}"{{if eq .Code $.ProductCode}} selected{{end}}>{{.Name}} ({{.AnnualRatePercent}}%, {{.TenureYears}}y)</option>
          {{end}}
        </select>
      </div>
      {{end}}
    </div>
    {{if .Error}}<p class="error" id="error">{{.Error}}</p>{{end}}
    <button type="submit">Calculate EMI</button>
  </form>
  {{with .Result}}
  <div class="results" id="results">
    <p>EMI: &#8377;<span id="emi">{{.MonthlyInstallment}}</span></p>
    <p>Total Interest Payable: &#8377;<span id="totalInterest">{{.TotalInterestPayable}}</span></p>
    <p>Total Amount Payable (P+I): &#8377;<span id="totalAmount">{{.TotalAmountPayable}}</span></p>
    {{if $.ShowSaved}}<p>Total Interest Saved: &#8377;<span id="interestSaved">{{.InterestSaved}}</span></p>{{end}}
  </div>
  {{end}}
</div>
</body>
</html>
`
