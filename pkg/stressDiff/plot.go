package stressDiff

import (
	"image/color"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// barPink matches the bar color used across the report charts.
var barPink = color.NRGBA{R: 0xff, G: 0x50, B: 0x9d, A: 0xff}

// Pivot is a dense matrix view of a long table: one row per key, one
// column per condition, missing cells filled with zero.
type Pivot struct {
	Rows   []string
	Cols   []string
	Values [][]float64 // indexed [row][col]
}

// NewDEGPivot pivots two significant gene tables into the four
// condition/direction columns keyed by gene. The sign of log2FC decides
// the direction column; absent cells stay zero.
func NewDEGPivot(heat, salt *GeneTable) *Pivot {
	var p = &Pivot{Cols: []string{"Heat up", "Heat down", "Salt up", "Salt down"}}

	var (
		rowIdx = make(map[string]int)
		add    = func(gene string, col int, lfc float64) {
			i, ok := rowIdx[gene]
			if !ok {
				i = len(p.Rows)
				rowIdx[gene] = i
				p.Rows = append(p.Rows, gene)
				p.Values = append(p.Values, make([]float64, len(p.Cols)))
			}
			p.Values[i][col] = lfc
		}
	)
	for _, r := range heat.Records {
		if r.Log2FC > 0 {
			add(r.Gene, 0, r.Log2FC)
		} else if r.Log2FC < 0 {
			add(r.Gene, 1, r.Log2FC)
		}
	}
	for _, r := range salt.Records {
		if r.Log2FC > 0 {
			add(r.Gene, 2, r.Log2FC)
		} else if r.Log2FC < 0 {
			add(r.Gene, 3, r.Log2FC)
		}
	}
	p.sortRowsByName()
	return p
}

// NewGOPivot pivots GO tables into a term-by-condition matrix of
// -log10(FDR). A term repeated within one condition keeps its least
// significant value; missing cells stay zero.
func NewGOPivot(tables []*GOTable) *Pivot {
	var p = new(Pivot)
	for _, g := range tables {
		p.Cols = append(p.Cols, g.Condition)
	}

	var rowIdx = make(map[string]int)
	for c, g := range tables {
		for _, r := range g.Records {
			var v = NegLog10(r.FDR)
			i, ok := rowIdx[r.Term]
			if !ok {
				i = len(p.Rows)
				rowIdx[r.Term] = i
				p.Rows = append(p.Rows, r.Term)
				p.Values = append(p.Values, make([]float64, len(p.Cols)))
			}
			if p.Values[i][c] == 0 || v < p.Values[i][c] {
				p.Values[i][c] = v
			}
		}
	}
	p.sortRowsByName()
	return p
}

func (p *Pivot) sortRowsByName() {
	var order = make([]int, len(p.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return p.Rows[order[i]] < p.Rows[order[j]] })
	p.reorder(order)
}

func (p *Pivot) reorder(order []int) {
	var (
		rows   = make([]string, len(order))
		values = make([][]float64, len(order))
	)
	for i, j := range order {
		rows[i] = p.Rows[j]
		values[i] = p.Values[j]
	}
	p.Rows = rows
	p.Values = values
}

func (p *Pivot) rowStrength(i int) float64 {
	var strength float64
	for _, v := range p.Values[i] {
		if a := math.Abs(v); a > strength {
			strength = a
		}
	}
	return strength
}

// TopNByAbs keeps the n rows with the largest absolute value in any
// column. With n <= 0 or more rows than available, everything stays.
func (p *Pivot) TopNByAbs(n int) {
	if n <= 0 || len(p.Rows) <= n {
		return
	}
	var order = make([]int, len(p.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return p.rowStrength(order[i]) > p.rowStrength(order[j])
	})
	p.reorder(order[:n])
}

// SortByMaxAsc orders rows weakest to strongest by their largest
// absolute value across columns.
func (p *Pivot) SortByMaxAsc() {
	var order = make([]int, len(p.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return p.rowStrength(order[i]) < p.rowStrength(order[j])
	})
	p.reorder(order)
}

// MaxAbs returns the color-scale bound: the largest absolute cell value,
// or 1 when the matrix is empty or all zero.
func (p *Pivot) MaxAbs() float64 {
	var bound float64
	for i := range p.Values {
		if s := p.rowStrength(i); s > bound {
			bound = s
		}
	}
	if bound == 0 {
		bound = 1
	}
	return bound
}

// pivotGrid adapts a Pivot to the heatmap grid interface.
type pivotGrid struct {
	p *Pivot
}

func (g pivotGrid) Dims() (c, r int)   { return len(g.p.Cols), len(g.p.Rows) }
func (g pivotGrid) Z(c, r int) float64 { return g.p.Values[r][c] }
func (g pivotGrid) X(c int) float64    { return float64(c) }
func (g pivotGrid) Y(r int) float64    { return float64(r) }

func pdfSibling(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".pdf"
}

// savePlot renders a chart to pngPath and to a PDF sibling, creating
// parent directories as needed.
func savePlot(p *plot.Plot, w, h vg.Length, pngPath string) error {
	if err := mkdirFor(pngPath); err != nil {
		return err
	}
	if err := p.Save(w, h, pngPath); err != nil {
		return err
	}
	return p.Save(w, h, pdfSibling(pngPath))
}

// PlotTopTermsBar draws a horizontal bar chart of the n most significant
// terms transformed to -log10(FDR), weakest at the bottom.
func PlotTopTermsBar(g *GOTable, n int, title, pngPath string) error {
	var top = g.TopN(n)
	if len(top.Records) == 0 {
		return &EmptyResultError{Msg: "no terms to plot for " + g.Condition}
	}

	var (
		names  []string
		values plotter.Values
	)
	// TopN is ascending by FDR; reverse so the strongest term sits on top.
	for i := len(top.Records) - 1; i >= 0; i-- {
		names = append(names, top.Records[i].Term)
		values = append(values, NegLog10(top.Records[i].FDR))
	}

	var p = plot.New()
	p.Title.Text = title
	p.X.Label.Text = "-log10(FDR)"

	bars, err := plotter.NewBarChart(values, vg.Points(10))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = barPink
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(names...)
	return savePlot(p, 10*vg.Inch, 6*vg.Inch, pngPath)
}

// PlotCountBar draws a vertical bar chart of one count per label.
func PlotCountBar(labels []string, counts []int, yLabel, title, pngPath string) error {
	var values plotter.Values
	for _, c := range counts {
		values = append(values, float64(c))
	}

	var p = plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return err
	}
	bars.Color = barPink
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(labels...)
	return savePlot(p, 7*vg.Inch, 4*vg.Inch, pngPath)
}

// PlotDEGHeatmap draws a gene-by-condition heatmap of log2 fold changes
// with a diverging color scale symmetric around zero. Gene names are
// hidden; rows are expected pre-sorted weakest to strongest.
func PlotDEGHeatmap(pv *Pivot, title, pngPath string) error {
	var bound = pv.MaxAbs()

	var colors = moreland.SmoothBlueRed()
	colors.SetMin(-bound)
	colors.SetMax(bound)

	var heatMap = plotter.NewHeatMap(pivotGrid{pv}, colors.Palette(255))
	heatMap.Min = -bound
	heatMap.Max = bound

	var p = plot.New()
	p.Title.Text = title
	p.Add(heatMap)
	p.NominalX(pv.Cols...)
	p.Y.Tick.Marker = plot.ConstantTicks(nil)
	return savePlot(p, 7.5*vg.Inch, 10*vg.Inch, pngPath)
}

// PlotGOHeatmap draws a term-by-condition heatmap of -log10(FDR) with
// term names on the Y axis. Height grows with the number of terms.
func PlotGOHeatmap(pv *Pivot, title, pngPath string) error {
	var bound = pv.MaxAbs()

	var heatMap = plotter.NewHeatMap(pivotGrid{pv}, palette.Heat(255, 1))
	heatMap.Min = 0
	heatMap.Max = bound

	var p = plot.New()
	p.Title.Text = title
	p.Add(heatMap)
	p.NominalX(pv.Cols...)
	p.NominalY(pv.Rows...)

	var height = vg.Length(0.28*float64(len(pv.Rows))) * vg.Inch
	if height < 6*vg.Inch {
		height = 6 * vg.Inch
	}
	return savePlot(p, 9*vg.Inch, height, pngPath)
}

// vennPlot draws a fixed two-circle membership diagram on the canvas.
type vennPlot struct {
	labelA, labelB     string
	onlyA, onlyB, both int
}

func (v *vennPlot) Plot(c draw.Canvas, plt *plot.Plot) {
	var (
		w = c.Max.X - c.Min.X
		h = c.Max.Y - c.Min.Y
		r = w
	)
	if h < r {
		r = h
	}
	r *= 0.28

	var (
		cy = c.Min.Y + h/2
		ax = c.Min.X + w/2 - r*11/20
		bx = c.Min.X + w/2 + r*11/20
	)
	drawCircle(&c, vg.Point{X: ax, Y: cy}, r, color.NRGBA{R: 0xe4, G: 0x1a, B: 0x1c, A: 0x5a})
	drawCircle(&c, vg.Point{X: bx, Y: cy}, r, color.NRGBA{R: 0x37, G: 0x7e, B: 0xb8, A: 0x5a})

	var sty = plt.Title.TextStyle
	sty.XAlign = text.XCenter
	sty.YAlign = text.YCenter
	c.FillText(sty, vg.Point{X: ax - r/2, Y: cy}, strconv.Itoa(v.onlyA))
	c.FillText(sty, vg.Point{X: (ax + bx) / 2, Y: cy}, strconv.Itoa(v.both))
	c.FillText(sty, vg.Point{X: bx + r/2, Y: cy}, strconv.Itoa(v.onlyB))
	c.FillText(sty, vg.Point{X: ax, Y: cy - r - vg.Points(14)}, v.labelA)
	c.FillText(sty, vg.Point{X: bx, Y: cy - r - vg.Points(14)}, v.labelB)
}

func drawCircle(c *draw.Canvas, center vg.Point, r vg.Length, fill color.Color) {
	var p vg.Path
	p.Move(vg.Point{X: center.X + r, Y: center.Y})
	p.Arc(center, r, 0, 2*math.Pi)
	p.Close()
	c.SetColor(fill)
	c.Fill(p)
	c.SetColor(color.Black)
	c.SetLineWidth(vg.Points(1))
	c.Stroke(p)
}

// PlotVenn draws a two-set membership diagram from partition sizes.
func PlotVenn(labelA, labelB string, onlyA, onlyB, both int, title, pngPath string) error {
	var p = plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.Add(&vennPlot{
		labelA: labelA,
		labelB: labelB,
		onlyA:  onlyA,
		onlyB:  onlyB,
		both:   both,
	})
	return savePlot(p, 6*vg.Inch, 6*vg.Inch, pngPath)
}
