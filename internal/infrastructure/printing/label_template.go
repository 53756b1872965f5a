package printing

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erp/sellerops/internal/domain/fulfillment"
	"github.com/erp/sellerops/internal/domain/trade"
)

// labelHTML prints one page-sized label block per order
const labelHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.RouteName}}</title>
<style>
  body { font-family: "DejaVu Sans", Arial, sans-serif; margin: 0; }
  .label { page-break-after: always; padding: 4mm; font-size: 10pt; }
  .label:last-child { page-break-after: auto; }
  .header { display: flex; justify-content: space-between; border-bottom: 1px solid #000; padding-bottom: 2mm; }
  .carrier { font-size: 14pt; font-weight: bold; }
  .tracking { font-family: monospace; font-size: 16pt; letter-spacing: 1px; margin: 3mm 0; }
  table { width: 100%; border-collapse: collapse; margin-top: 2mm; }
  td, th { border-bottom: 1px dotted #999; padding: 1mm 0; text-align: left; }
  td.qty, th.qty { text-align: right; width: 12mm; }
  .footer { margin-top: 3mm; font-size: 8pt; color: #444; }
</style>
</head>
<body>
{{- range .Labels}}
<div class="label">
  <div class="header">
    <span class="carrier">{{.Carrier}}</span>
    <span>#{{.OrderNumber}}</span>
  </div>
  <div>{{.CustomerName}}</div>
  {{- if .TrackingNumber}}
  <div class="tracking">{{.TrackingNumber}}</div>
  {{- end}}
  <table>
    <tr><th>Product</th><th class="qty">Qty</th></tr>
    {{- range .Lines}}
    <tr><td>{{.ProductName}}<br><small>{{.ProductID}}</small></td><td class="qty">{{.Quantity}}</td></tr>
    {{- end}}
  </table>
  <div class="footer">{{$.RouteName}} &middot; {{.Position}}/{{$.Total}} &middot; {{.TotalQuantity}} pcs &middot; {{$.PrintedAt}}</div>
</div>
{{- end}}
</body>
</html>`

// LabelData is the template model for one route's labels
type LabelData struct {
	RouteName string
	PrintedAt string
	Total     int
	Labels    []OrderLabel
}

// OrderLabel is the template model for one order's label
type OrderLabel struct {
	Position       int
	OrderNumber    string
	CustomerName   string
	Carrier        string
	TrackingNumber string
	TotalQuantity  int
	Lines          []LabelLine
}

// LabelLine is one product line on a label
type LabelLine struct {
	ProductID   string
	ProductName string
	Quantity    int
}

// LabelTemplate renders route labels to HTML
type LabelTemplate struct {
	tmpl *template.Template
	lang language.Tag
	now  func() time.Time
}

// LabelTemplateOption configures a LabelTemplate
type LabelTemplateOption func(*LabelTemplate)

// WithLanguage sets the language used to title-case carrier names
func WithLanguage(tag language.Tag) LabelTemplateOption {
	return func(t *LabelTemplate) {
		t.lang = tag
	}
}

// WithClock overrides the print timestamp source
func WithClock(now func() time.Time) LabelTemplateOption {
	return func(t *LabelTemplate) {
		t.now = now
	}
}

// NewLabelTemplate parses the built-in label template
func NewLabelTemplate(opts ...LabelTemplateOption) *LabelTemplate {
	t := &LabelTemplate{
		tmpl: template.Must(template.New("labels").Parse(labelHTML)),
		lang: language.Und,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BuildData maps a route and its orders onto the template model
func (t *LabelTemplate) BuildData(route *fulfillment.Route, orders []trade.Order) *LabelData {
	// a Caser is stateful and not safe for concurrent use
	caser := cases.Title(t.lang)

	data := &LabelData{
		RouteName: route.Name,
		PrintedAt: t.now().Format("2006-01-02 15:04"),
		Total:     len(orders),
		Labels:    make([]OrderLabel, 0, len(orders)),
	}
	for i := range orders {
		o := &orders[i]
		label := OrderLabel{
			Position:       i + 1,
			OrderNumber:    o.OrderNumber,
			CustomerName:   o.CustomerName,
			Carrier:        caser.String(strings.TrimSpace(o.CargoProviderName)),
			TrackingNumber: o.CargoTrackingNumber,
			TotalQuantity:  o.TotalQuantity(),
			Lines:          make([]LabelLine, 0, len(o.Lines)),
		}
		for _, l := range o.Lines {
			label.Lines = append(label.Lines, LabelLine{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
			})
		}
		data.Labels = append(data.Labels, label)
	}
	return data
}

// Render executes the template for a route
func (t *LabelTemplate) Render(route *fulfillment.Route, orders []trade.Order) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, t.BuildData(route, orders)); err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to execute label template", err)
	}
	return buf.String(), nil
}
