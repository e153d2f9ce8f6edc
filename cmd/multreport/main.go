// multreport elaborates a Booth multiplier and reports on the generated
// compression tree: sizes, logic depth, per-column occupancy, and an
// optional randomized self-check of the carry-save output.
//
// Example:
//
//	multreport -xwidth 24 -ywidth 24 -radix 8 -signed -columns -verify 1000
package main

import (
	"flag"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/gohdl/gohdl/mult"
	"github.com/gohdl/gohdl/rtl"
)

var (
	flagXWidth = flag.Int("xwidth", 16, "Width of the multiplicand in bits.")
	flagYWidth = flag.Int("ywidth", 16, "Width of the multiplier in bits.")
	flagRadix  = flag.Int("radix", 4, "Booth radix: a power of two up to 16.")
	flagSigned = flag.Bool("signed", false, "Interpret both operands as two's complement.")

	flagColumns = flag.Bool("columns", false, "Print the per-column occupancy table.")
	flagDump    = flag.Bool("dump", false, "Print the raw per-column term dump.")
	flagVerify  = flag.Int("verify", 0, "Number of random operand pairs to check the "+
		"carry-save output against the arithmetic product.")
	flagSeed = flag.Int64("seed", 1, "Seed for -verify.")
	flagOut  = flag.String("o", "", "Write the report to this file instead of stdout.")
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)
)

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == 1 {
				s = headerRowStyle
			} else if row%2 == 0 {
				s = evenRowStyle
			} else {
				s = oddRowStyle
			}
			if col > 0 {
				s = s.Align(lipgloss.Right)
			}
			return
		})
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagOut != "" {
		f := must.M1(os.Create(*flagOut))
		defer func() { must.M(f.Close()) }()
		os.Stdout = f
	}

	design := rtl.NewDesign("multreport")
	x := design.Input("x", *flagXWidth)
	y := design.Input("y", *flagYWidth)
	opts := []mult.MultiplierOption{mult.WithRadix(*flagRadix)}
	if *flagSigned {
		opts = append(opts, mult.WithSigned())
	}
	m := mult.New(x, y, opts...)

	reportSummary(design, m)
	if *flagColumns {
		reportColumns(m.Compressor())
	}
	if *flagDump {
		fmt.Println(m.Compressor().String())
	}
	if *flagVerify > 0 {
		verify(design, m, x, y)
	}
}

func reportSummary(design *rtl.Design, m *mult.Multiplier) {
	c := m.Compressor()
	table := newPlainTable(false)
	table.Row("multiplicand width", humanize.Comma(int64(*flagXWidth)))
	table.Row("multiplier width", humanize.Comma(int64(*flagYWidth)))
	table.Row("radix", strconv.Itoa(*flagRadix))
	table.Row("signed", strconv.FormatBool(*flagSigned))
	table.Row("partial-product rows", humanize.Comma(int64(m.Encoder().Rows())))
	table.Row("output width", humanize.Comma(int64(m.Width())))
	table.Row("compression terms", humanize.Comma(int64(c.NumTerms())))
	table.Row("critical delay", fmt.Sprintf("%.2f", c.CriticalDelay()))
	table.Row("dropped top carries", humanize.Comma(int64(c.DroppedCarries())))
	table.Row("netlist signals", humanize.Comma(int64(design.NumSignals())))
	fmt.Println(titleStyle.Render("Multiplier summary"))
	fmt.Println(table.Render())
}

func reportColumns(c *mult.ColumnCompressor) {
	table := newPlainTable(true)
	table.Row("column", "depth", "terms")
	for col := c.MaxWidth() - 1; col >= 0; col-- {
		labels := ""
		for _, id := range c.ColumnTerms(col) {
			if labels != "" {
				labels += " "
			}
			labels += c.Term(id).String()
		}
		table.Row(strconv.Itoa(col), strconv.Itoa(c.ColumnDepth(col)), labels)
	}
	fmt.Println(titleStyle.Render("Columns after compression"))
	fmt.Println(table.Render())
}

func verify(design *rtl.Design, m *mult.Multiplier, x, y *rtl.Signal) {
	rng := rand.New(rand.NewSource(*flagSeed))
	modulus := new(big.Int).Lsh(big.NewInt(1), uint(m.Width()))
	for trial := 0; trial < *flagVerify; trial++ {
		xv := randomBits(rng, x.Width())
		yv := randomBits(rng, y.Width())
		e := rtl.NewEvaluator(design)
		e.BindBig(x, xv).BindBig(y, yv)

		got := new(big.Int).Add(e.Eval(m.Add0), e.Eval(m.Add1))
		got.Mod(got, modulus)
		want := product(xv, yv, x.Width(), y.Width(), *flagSigned, modulus)
		if got.Cmp(want) != 0 {
			_, trace := m.Compressor().Evaluate(e)
			klog.Errorf("mismatch at trial %d: x=%s y=%s got %s, want %s\n%s",
				trial, xv, yv, got, want, trace)
			os.Exit(1)
		}
	}
	fmt.Printf("verified %s random operand pairs: OK\n",
		humanize.Comma(int64(*flagVerify)))
}

func randomBits(rng *rand.Rand, width int) *big.Int {
	return new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), uint(width)))
}

func product(xv, yv *big.Int, xw, yw int, signed bool, modulus *big.Int) *big.Int {
	a, b := new(big.Int).Set(xv), new(big.Int).Set(yv)
	if signed {
		a = rtl.Signed(a, xw)
		b = rtl.Signed(b, yw)
	}
	p := new(big.Int).Mul(a, b)
	return p.Mod(p, modulus)
}
