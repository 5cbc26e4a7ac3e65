package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/emRival/rekap-absensi/internal/classify"
	"github.com/emRival/rekap-absensi/internal/recap"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}

	pdfTierColors = map[recap.Tier]props.Color{
		recap.Excellent:      {Red: 30, Green: 130, Blue: 60},
		recap.Good:           {Red: 0, Green: 120, Blue: 140},
		recap.NeedsAttention: {Red: 200, Green: 120, Blue: 0},
		recap.Poor:           {Red: 190, Green: 30, Blue: 30},
		recap.NoData:         pdfMutedColor,
	}
)

// pdfCountHeaders label the per-category count columns, one grid unit each.
var pdfCountHeaders = map[classify.Category]string{
	classify.Absent:           "Abs",
	classify.Incomplete:       "Inc",
	classify.ExcessiveEntries: ">2x",
	classify.LateArrival:      "Late",
	classify.EarlyDeparture:   "Early",
}

// WritePDF renders rep as an A4 summary with one line per employee.
func WritePDF(w io.Writer, rep Report) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	// Document header
	m.AddRow(14,
		text.NewCol(12, rep.Title, props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, rep.Period(), props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	headerProps := props.Text{Style: fontstyle.Bold, Size: 9, Color: &pdfHeaderColor}
	headerCols := []core.Col{
		text.NewCol(3, "Name", headerProps),
		text.NewCol(2, "Role", headerProps),
		text.NewCol(2, "Tier", headerProps),
	}
	for _, c := range classify.Categories {
		headerCols = append(headerCols, text.NewCol(1, pdfCountHeaders[c], props.Text{
			Style: fontstyle.Bold,
			Size:  9,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}))
	}
	m.AddRow(7, headerCols...)

	for _, r := range rep.Records {
		tierColor := pdfTierColors[r.Tier]
		cols := []core.Col{
			text.NewCol(3, r.Name, props.Text{Size: 9}),
			text.NewCol(2, r.Role, props.Text{Size: 9, Color: &pdfMutedColor}),
			text.NewCol(2, r.Tier.String(), props.Text{Size: 9, Style: fontstyle.Bold, Color: &tierColor}),
		}
		for _, c := range classify.Categories {
			cols = append(cols, text.NewCol(1, strconv.Itoa(r.Count(c)), props.Text{
				Size:  9,
				Align: align.Right,
			}))
		}
		m.AddRow(6, cols...)
	}

	// Totals footer
	s := recap.Summarize(rep.Records)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(7, fmt.Sprintf("%d employees", s.Employees), props.Text{
			Style: fontstyle.Bold,
			Size:  11,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(5, fmt.Sprintf("%d issues, %d excessive-entry days", s.Issues, s.Excessive), props.Text{
			Style: fontstyle.Bold,
			Size:  11,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	_, err = w.Write(doc.GetBytes())
	return err
}
