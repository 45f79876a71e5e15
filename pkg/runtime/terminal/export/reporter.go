package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/loyalty-tools/receipt-points/pkg/models/domain"
)

// Reporter outputs score reports to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.ScoreReport) error {
	tmpl := `
Receipt from {{.Retailer}}
Purchased: {{.PurchaseDate.Format "2006-01-02"}} at {{.PurchaseTime}}
Total: {{.Total}}
{{range .Contributions}}
- {{.Rule}}: {{.Points}}
{{- end}}

Total points: {{.TotalPoints}}
`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
