package salary

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/Qoxxoraliyev/employee-management/internal/employee"
)

// buildSalaryReportPDF renders the full payment history of one employee
// as a single-page PDF.
func buildSalaryReportPDF(empl *employee.Employee, sals []Salary, generatedAt time.Time) []byte {
	lines := []string{
		"Salary Report",
		"",
		"Employee: " + empl.FullName(),
		"Department: " + empl.DepartmentName(),
		"Position: " + empl.Position,
		"Generated: " + generatedAt.Format(dateLayout),
		"",
	}

	var grandTotal float64
	if len(sals) == 0 {
		lines = append(lines, "No salary records.")
	}
	for _, sal := range sals {
		row := fmt.Sprintf("%s  %.2f %s",
			sal.PaymentDate.Format(dateLayout), sal.Amount, sal.Currency)
		if sal.Bonus != nil {
			row += fmt.Sprintf("  bonus %.2f", *sal.Bonus)
		}
		row += fmt.Sprintf("  total %.2f", sal.Total())
		lines = append(lines, row)
		grandTotal += sal.Total()
	}

	lines = append(lines, "", fmt.Sprintf("Grand total: %.2f", grandTotal))

	return renderLinesPDF(lines)
}

// renderLinesPDF writes a minimal single-page PDF: one Helvetica text
// block, one line per entry.
func renderLinesPDF(lines []string) []byte {
	if len(lines) == 0 {
		lines = []string{""}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes()
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
