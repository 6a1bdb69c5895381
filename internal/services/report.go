package services

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/lens-orders/i18n"
	"github.com/diewo77/lens-orders/internal/export"
	"github.com/diewo77/lens-orders/internal/models"
	"github.com/diewo77/lens-orders/internal/store"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ReportKind selects one of the export reports.
type ReportKind string

const (
	ReportMKL          ReportKind = "mkl"
	ReportMKLByProduct ReportKind = "mkl-products"
	ReportMeridian     ReportKind = "meridian"
)

// ReportKinds lists the kinds accepted by Rows and Export.
var ReportKinds = []ReportKind{ReportMKL, ReportMKLByProduct, ReportMeridian}

// ErrUnknownReport is returned for a kind outside ReportKinds.
var ErrUnknownReport = errors.New("unknown report")

const createdLayout = "2006-01-02 15:04"

// ReportService flattens store reads into rows for the export package.
type ReportService struct {
	store     *store.Store
	lang      string
	exportDir string
	now       func() time.Time
}

func NewReportService(st *store.Store, lang string) *ReportService {
	return &ReportService{store: st, lang: lang, now: time.Now}
}

// WithExportDir overrides the export folder stored in the settings.
func (s *ReportService) WithExportDir(dir string) *ReportService {
	s.exportDir = dir
	return s
}

func (s *ReportService) col(name string) string { return i18n.T(s.lang, "col."+name) }

// MKLOrderRows renders one row per MKL order: client, phone, items, status
// and creation time. Items are joined by "; ".
func (s *ReportService) MKLOrderRows(status string) ([][]string, error) {
	orders, err := s.store.ListMKLOrderDetails(store.MKLOrderFilter{Status: status})
	if err != nil {
		return nil, err
	}
	rows := [][]string{{s.col("client"), s.col("phone"), s.col("items"), s.col("status"), s.col("created")}}
	for _, o := range orders {
		var name, phone string
		if o.Client != nil {
			name, phone = o.Client.FullName, o.Client.Phone
		}
		items := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, it.Summary())
		}
		rows = append(rows, []string{
			name,
			phone,
			strings.Join(items, "; "),
			i18n.Status(s.lang, o.Status.String()),
			o.CreatedAt.Local().Format(createdLayout),
		})
	}
	return rows, nil
}

// specLine is one product and lens specification with its total quantity.
type specLine struct {
	product string
	params  models.LensParams
	qty     int
	numbers []string
}

func (l specLine) key(withBC bool) string {
	k := []string{
		l.product,
		models.FormatDiopter(l.params.Sph),
		models.FormatOptDiopter(l.params.Cyl),
		models.FormatAxis(l.params.Ax),
	}
	if withBC {
		k = append(k, models.FormatBC(l.params.Bc))
	}
	return strings.Join(k, "|")
}

// aggregate merges lines with the same product and specification, summing
// quantities. The first occurrence keeps its position.
func aggregate(lines []specLine, withBC bool) []specLine {
	out := make([]specLine, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		k := l.key(withBC)
		if i, ok := index[k]; ok {
			out[i].qty += l.qty
			for _, n := range l.numbers {
				if !slices.Contains(out[i].numbers, n) {
					out[i].numbers = append(out[i].numbers, n)
				}
			}
			continue
		}
		index[k] = len(out)
		out = append(out, l)
	}
	return out
}

func compareOpt[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}

// sortLines orders by product name ignoring case, then SPH, CYL, AX and BC
// with unset values last.
func sortLines(lines []specLine) {
	c := collate.New(language.Russian, collate.IgnoreCase)
	slices.SortStableFunc(lines, func(a, b specLine) int {
		if r := c.CompareString(a.product, b.product); r != 0 {
			return r
		}
		if r := cmp.Compare(a.params.Sph, b.params.Sph); r != 0 {
			return r
		}
		if r := compareOpt(a.params.Cyl, b.params.Cyl); r != 0 {
			return r
		}
		if r := compareOpt(a.params.Ax, b.params.Ax); r != 0 {
			return r
		}
		return compareOpt(a.params.Bc, b.params.Bc)
	})
}

// MKLByProductRows renders the items of the MKL orders with the given status
// grouped by product and specification. Identical specifications are summed
// when the aggregate_specs setting is on; the BC column is left out when
// show_bc_mkl is off.
func (s *ReportService) MKLByProductRows(status string) ([][]string, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return nil, err
	}
	orders, err := s.store.ListMKLOrderDetails(store.MKLOrderFilter{Status: status})
	if err != nil {
		return nil, err
	}
	var lines []specLine
	for _, o := range orders {
		for _, it := range o.Items {
			lines = append(lines, specLine{product: it.ProductName, params: it.LensParams, qty: it.Qty})
		}
	}
	if settings.AggregateSpecs {
		lines = aggregate(lines, settings.ShowBC)
	}
	sortLines(lines)

	header := []string{s.col("product"), s.col("sph"), s.col("cyl"), s.col("ax")}
	if settings.ShowBC {
		header = append(header, s.col("bc"))
	}
	rows := [][]string{append(header, s.col("qty"))}
	for _, l := range lines {
		row := []string{
			l.product,
			models.FormatDiopter(l.params.Sph),
			models.FormatOptDiopter(l.params.Cyl),
			models.FormatAxis(l.params.Ax),
		}
		if settings.ShowBC {
			row = append(row, models.FormatBC(l.params.Bc))
		}
		rows = append(rows, append(row, strconv.Itoa(l.qty)))
	}
	return rows, nil
}

// MeridianPendingRows renders the Meridian items that are not ordered yet,
// grouped like MKLByProductRows. The last column lists the order numbers.
func (s *ReportService) MeridianPendingRows() ([][]string, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListMeridianItems(false)
	if err != nil {
		return nil, err
	}
	lines := make([]specLine, 0, len(items))
	for _, it := range items {
		l := specLine{product: it.ProductName, params: it.Params(), qty: it.Qty}
		if it.Order != nil {
			l.numbers = []string{it.Order.Number}
		}
		lines = append(lines, l)
	}
	if settings.AggregateSpecs {
		lines = aggregate(lines, false)
	}
	sortLines(lines)

	rows := [][]string{{s.col("product"), s.col("sph"), s.col("cyl"), s.col("ax"), s.col("qty"), s.col("number")}}
	for _, l := range lines {
		rows = append(rows, []string{
			l.product,
			models.FormatDiopter(l.params.Sph),
			models.FormatOptDiopter(l.params.Cyl),
			models.FormatAxis(l.params.Ax),
			strconv.Itoa(l.qty),
			strings.Join(l.numbers, ", "),
		})
	}
	return rows, nil
}

// FileName returns the export file name for a report built on day.
func FileName(kind ReportKind, status string, format export.Format, day time.Time) string {
	date := day.Format("20060102")
	token := models.StatusAll
	if models.IsStatusFilter(status) {
		if st, err := models.ParseOrderStatus(status); err == nil {
			token = st.FileToken()
		}
	}
	switch kind {
	case ReportMKLByProduct:
		return fmt.Sprintf("mkl_%s_by-product_%s%s", token, date, format.Ext())
	case ReportMeridian:
		return fmt.Sprintf("meridian_notordered_%s%s", date, format.Ext())
	}
	return fmt.Sprintf("mkl_%s_%s%s", token, date, format.Ext())
}

// Rows builds the rows of one report. status is ignored for ReportMeridian.
func (s *ReportService) Rows(kind ReportKind, status string) ([][]string, error) {
	if !slices.Contains(ReportKinds, kind) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReport, kind)
	}
	switch kind {
	case ReportMKLByProduct:
		return s.MKLByProductRows(status)
	case ReportMeridian:
		return s.MeridianPendingRows()
	}
	return s.MKLOrderRows(status)
}

// Export writes a report into the export folder, creating the folder when
// needed, and returns the written path.
func (s *ReportService) Export(kind ReportKind, status string, format export.Format) (string, error) {
	rows, err := s.Rows(kind, status)
	if err != nil {
		return "", err
	}
	dir := s.exportDir
	if dir == "" {
		settings, err := s.store.GetSettings()
		if err != nil {
			return "", err
		}
		dir = settings.ExportFolder
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &export.Error{Path: dir, Format: format, Err: err}
	}
	path := filepath.Join(dir, FileName(kind, status, format, s.now()))
	if err := export.WriteFile(path, rows); err != nil {
		return "", err
	}
	return path, nil
}
