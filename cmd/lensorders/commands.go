package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/diewo77/lens-orders/i18n"
	"github.com/diewo77/lens-orders/internal/db"
	"github.com/diewo77/lens-orders/internal/export"
	"github.com/diewo77/lens-orders/internal/models"
	"github.com/diewo77/lens-orders/internal/services"
	"github.com/diewo77/lens-orders/internal/store"
	"github.com/diewo77/lens-orders/validation"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// unsetValue clears an optional lens value on update.
const unsetValue = "none"

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	return nil
}

// isSet reports whether flag name was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func needID(fs *flag.FlagSet, name string, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: %s: -%s is required", ErrUsage, fs.Name(), name)
	}
	return nil
}

func (a *App) table(header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cells ...string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func (a *App) col(name string) string { return i18n.T(a.lang, "col."+name) }

func (a *App) status(s models.OrderStatus) string { return i18n.Status(a.lang, s.String()) }

func id(v uint) string { return strconv.FormatUint(uint64(v), 10) }

// lensFlags holds lens values typed on the command line. An empty flag keeps
// the base value; "none" clears an optional value.
type lensFlags struct {
	sph, cyl, ax, bc string
}

func addLensFlags(fs *flag.FlagSet, withBC bool) *lensFlags {
	l := &lensFlags{}
	fs.StringVar(&l.sph, "sph", "", "sphere, -30.00..+30.00 step 0.25")
	fs.StringVar(&l.cyl, "cyl", "", "cylinder, -10.00..+10.00 step 0.25, or none")
	fs.StringVar(&l.ax, "ax", "", "axis, 0..180, or none")
	if withBC {
		fs.StringVar(&l.bc, "bc", "", "base curve, 8.0..9.0 step 0.1, or none")
	}
	return l
}

func parseOptFloat(name, raw string, base *float64) (*float64, error) {
	switch raw = strings.TrimSpace(raw); raw {
	case "":
		return base, nil
	case unsetValue:
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: -%s: %q is not a number", ErrUsage, name, raw)
	}
	return &v, nil
}

func (l *lensFlags) apply(base models.LensParams) (models.LensParams, error) {
	p := base
	sph, err := parseOptFloat("sph", l.sph, &base.Sph)
	if err != nil {
		return p, err
	}
	if sph == nil {
		return p, fmt.Errorf("%w: -sph cannot be none", ErrUsage)
	}
	p.Sph = *sph
	if p.Cyl, err = parseOptFloat("cyl", l.cyl, base.Cyl); err != nil {
		return p, err
	}
	if p.Bc, err = parseOptFloat("bc", l.bc, base.Bc); err != nil {
		return p, err
	}
	switch raw := strings.TrimSpace(l.ax); raw {
	case "":
	case unsetValue:
		p.Ax = nil
	default:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("%w: -ax: %q is not an integer", ErrUsage, raw)
		}
		p.Ax = &v
	}
	return p, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Database
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) initDB(args []string) error {
	path := a.store.Path()
	if err := db.EnsureSchema(path); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	v, _, err := db.SchemaVersion(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (schema %d)\n", path, v)
	return nil
}

func (a *App) version(args []string) error {
	v, dirty, err := db.SchemaVersion(a.store.Path())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "lensorders %s, schema %d", Version, v)
	if dirty {
		fmt.Fprint(a.out, " (dirty)")
	}
	fmt.Fprintln(a.out)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Clients
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) clientAdd(args []string) error {
	fs := newFlagSet("client add")
	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	if err := parse(fs, args); err != nil {
		return err
	}
	cid, err := a.store.AddClient(*name, *phone)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, cid)
	return nil
}

func (a *App) clientList(args []string) error {
	fs := newFlagSet("client list")
	search := fs.String("search", "", "substring of name or phone")
	if err := parse(fs, args); err != nil {
		return err
	}
	clients, err := a.store.ListClients(*search)
	if err != nil {
		return err
	}
	tw := a.table("ID", a.col("client"), a.col("phone"))
	for _, c := range clients {
		row(tw, id(c.ID), c.FullName, c.Phone)
	}
	return tw.Flush()
}

func (a *App) clientUpdate(args []string) error {
	fs := newFlagSet("client update")
	cid := fs.Uint("id", 0, "client id")
	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *cid); err != nil {
		return err
	}
	return a.store.UpdateClient(*cid, *name, *phone)
}

func (a *App) clientDelete(args []string) error {
	fs := newFlagSet("client delete")
	cid := fs.Uint("id", 0, "client id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *cid); err != nil {
		return err
	}
	return a.store.DeleteClient(*cid)
}

// ─────────────────────────────────────────────────────────────────────────────
// MKL catalog
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) productAdd(args []string) error {
	fs := newFlagSet("product add")
	name := fs.String("name", "", "product name")
	lens := addLensFlags(fs, true)
	if err := parse(fs, args); err != nil {
		return err
	}
	params, err := lens.apply(models.LensParams{})
	if err != nil {
		return err
	}
	pid, err := a.store.AddProduct(models.Product{Name: *name, LensParams: params})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, pid)
	return nil
}

func (a *App) productList(args []string) error {
	fs := newFlagSet("product list")
	search := fs.String("search", "", "substring of name")
	if err := parse(fs, args); err != nil {
		return err
	}
	products, err := a.store.ListProducts(*search)
	if err != nil {
		return err
	}
	tw := a.table("ID", a.col("product"), a.col("sph"), a.col("cyl"), a.col("ax"), a.col("bc"))
	for _, p := range products {
		row(tw, id(p.ID), p.Name, models.FormatDiopter(p.Sph), models.FormatOptDiopter(p.Cyl),
			models.FormatAxis(p.Ax), models.FormatBC(p.Bc))
	}
	return tw.Flush()
}

func (a *App) productUpdate(args []string) error {
	fs := newFlagSet("product update")
	pid := fs.Uint("id", 0, "product id")
	name := fs.String("name", "", "product name")
	lens := addLensFlags(fs, true)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *pid); err != nil {
		return err
	}
	p, err := a.store.GetProduct(*pid)
	if err != nil {
		return err
	}
	if *name != "" {
		p.Name = *name
	}
	if p.LensParams, err = lens.apply(p.LensParams); err != nil {
		return err
	}
	return a.store.UpdateProduct(*pid, *p)
}

func (a *App) productDelete(args []string) error {
	fs := newFlagSet("product delete")
	pid := fs.Uint("id", 0, "product id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *pid); err != nil {
		return err
	}
	return a.store.DeleteProduct(*pid)
}

// ─────────────────────────────────────────────────────────────────────────────
// MKL orders
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) mklCreate(args []string) error {
	fs := newFlagSet("mkl create")
	client := fs.Uint("client", 0, "client id")
	status := fs.String("status", string(models.OrderStatusNotOrdered), "initial status")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "client", *client); err != nil {
		return err
	}
	oid, err := a.store.CreateMKLOrder(*client, models.OrderStatus(*status))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, oid)
	return nil
}

func (a *App) mklList(args []string) error {
	fs := newFlagSet("mkl list")
	var f store.MKLOrderFilter
	fs.StringVar(&f.Search, "search", "", "substring of client name or phone")
	fs.StringVar(&f.Status, "status", models.StatusAll, "status or all")
	if err := parse(fs, args); err != nil {
		return err
	}
	rows, err := a.store.ListMKLOrders(f)
	if err != nil {
		return err
	}
	tw := a.table("ID", a.col("client"), a.col("phone"), a.col("items"), a.col("status"), a.col("created"))
	for _, r := range rows {
		row(tw, id(r.ID), r.FullName, r.Phone, strconv.Itoa(r.ItemsCount), a.status(r.Status),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *App) mklUpdate(args []string) error {
	fs := newFlagSet("mkl update")
	oid := fs.Uint("id", 0, "order id")
	client := fs.Uint("client", 0, "client id")
	status := fs.String("status", "", "status")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *oid); err != nil {
		return err
	}
	o, err := a.store.GetMKLOrder(*oid)
	if err != nil {
		return err
	}
	if *client == 0 {
		*client = o.ClientID
	}
	st := o.Status
	if *status != "" {
		st = models.OrderStatus(*status)
	}
	return a.store.UpdateMKLOrder(*oid, *client, st)
}

func (a *App) mklStatus(args []string) error {
	fs := newFlagSet("mkl status")
	oid := fs.Uint("id", 0, "order id")
	status := fs.String("status", "", "new status")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *oid); err != nil {
		return err
	}
	return a.store.SetMKLOrderStatus(*oid, models.OrderStatus(*status))
}

func (a *App) mklDelete(args []string) error {
	fs := newFlagSet("mkl delete")
	oid := fs.Uint("id", 0, "order id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *oid); err != nil {
		return err
	}
	return a.store.DeleteMKLOrder(*oid)
}

func (a *App) mklDuplicate(args []string) error {
	fs := newFlagSet("mkl duplicate")
	oid := fs.Uint("id", 0, "order id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *oid); err != nil {
		return err
	}
	newID, err := a.store.DuplicateMKLOrder(*oid)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, newID)
	return nil
}

func (a *App) mklItems(args []string) error {
	fs := newFlagSet("mkl items")
	oid := fs.Uint("order", 0, "order id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "order", *oid); err != nil {
		return err
	}
	o, err := a.store.GetMKLOrder(*oid)
	if err != nil {
		return err
	}
	if o.Client != nil {
		fmt.Fprintf(a.out, "%s, %s\n", o.Client.DisplayName(), a.status(o.Status))
	}
	tw := a.table("ID", a.col("product"), a.col("sph"), a.col("cyl"), a.col("ax"), a.col("bc"), a.col("qty"))
	for _, it := range o.Items {
		row(tw, id(it.ID), it.ProductName, models.FormatDiopter(it.Sph), models.FormatOptDiopter(it.Cyl),
			models.FormatAxis(it.Ax), models.FormatBC(it.Bc), strconv.Itoa(it.Qty))
	}
	row(tw, "", a.col("total"), "", "", "", "", strconv.Itoa(o.TotalQty()))
	return tw.Flush()
}

func (a *App) mklAddItem(args []string) error {
	fs := newFlagSet("mkl add-item")
	oid := fs.Uint("order", 0, "order id")
	pid := fs.Uint("product", 0, "catalog product id")
	qty := fs.Int("qty", 1, "quantity, 1..20")
	lens := addLensFlags(fs, true)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "order", *oid); err != nil {
		return err
	}
	if err := needID(fs, "product", *pid); err != nil {
		return err
	}
	p, err := a.store.GetProduct(*pid)
	if err != nil {
		return err
	}
	params, err := lens.apply(p.LensParams)
	if err != nil {
		return err
	}
	itemID, err := a.store.AddMKLItem(*oid, store.MKLItemInput{ProductID: *pid, LensParams: params, Qty: *qty})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, itemID)
	return nil
}

func (a *App) mklUpdateItem(args []string) error {
	fs := newFlagSet("mkl update-item")
	itemID := fs.Uint("id", 0, "item id")
	pid := fs.Uint("product", 0, "catalog product id")
	qty := fs.Int("qty", 1, "quantity, 1..20")
	lens := addLensFlags(fs, true)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *itemID); err != nil {
		return err
	}
	it, err := a.store.GetMKLItem(*itemID)
	if err != nil {
		return err
	}
	in := store.MKLItemInput{ProductID: *pid, Qty: it.Qty}
	if isSet(fs, "qty") {
		in.Qty = *qty
	}
	if in.LensParams, err = lens.apply(it.LensParams); err != nil {
		return err
	}
	return a.store.UpdateMKLItem(*itemID, in)
}

func (a *App) mklDeleteItem(args []string) error {
	fs := newFlagSet("mkl delete-item")
	itemID := fs.Uint("id", 0, "item id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *itemID); err != nil {
		return err
	}
	return a.store.DeleteMKLItem(*itemID)
}

// ─────────────────────────────────────────────────────────────────────────────
// Meridian orders
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) meridianCreate(args []string) error {
	fs := newFlagSet("meridian create")
	number := fs.String("number", "", "order number, next free number when empty")
	if err := parse(fs, args); err != nil {
		return err
	}
	oid, err := a.store.CreateMeridianOrder(*number)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, oid)
	return nil
}

func (a *App) meridianList(args []string) error {
	fs := newFlagSet("meridian list")
	var f store.MeridianOrderFilter
	fs.StringVar(&f.Search, "search", "", "substring of order number or item name")
	fs.StringVar(&f.Status, "status", models.StatusAll, "not_ordered, ordered or all")
	if err := parse(fs, args); err != nil {
		return err
	}
	rows, err := a.store.ListMeridianOrders(f)
	if err != nil {
		return err
	}
	tw := a.table("ID", a.col("number"), a.col("items"), a.col("status"), a.col("created"))
	for _, r := range rows {
		row(tw, id(r.ID), r.Number, fmt.Sprintf("%d/%d", r.OrderedCount, r.ItemsCount), a.status(r.Status()),
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (a *App) meridianUpdate(args []string) error {
	fs := newFlagSet("meridian update")
	oid := fs.Uint("id", 0, "order id")
	number := fs.String("number", "", "new order number")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *oid); err != nil {
		return err
	}
	return a.store.UpdateMeridianOrder(*oid, *number)
}

func (a *App) meridianDelete(args []string) error {
	fs := newFlagSet("meridian delete")
	oid := fs.Uint("id", 0, "order id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *oid); err != nil {
		return err
	}
	return a.store.DeleteMeridianOrder(*oid)
}

func (a *App) meridianDuplicate(args []string) error {
	fs := newFlagSet("meridian duplicate")
	oid := fs.Uint("id", 0, "order id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *oid); err != nil {
		return err
	}
	newID, err := a.store.DuplicateMeridianOrder(*oid)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, newID)
	return nil
}

func (a *App) meridianItems(args []string) error {
	fs := newFlagSet("meridian items")
	oid := fs.Uint("order", 0, "order id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "order", *oid); err != nil {
		return err
	}
	items, err := a.store.GetMeridianOrderItems(*oid)
	if err != nil {
		return err
	}
	tw := a.table("ID", a.col("product"), a.col("sph"), a.col("cyl"), a.col("ax"), a.col("qty"), a.col("status"))
	for _, it := range items {
		row(tw, id(it.ID), it.ProductName, models.FormatDiopter(it.Sph), models.FormatOptDiopter(it.Cyl),
			models.FormatAxis(it.Ax), strconv.Itoa(it.Qty), a.status(it.Status()))
	}
	return tw.Flush()
}

// meridianFlags are the item flags shared by add-item and update-item.
type meridianFlags struct {
	fs      *flag.FlagSet
	name    *string
	qty     *int
	ordered *bool
	lens    *lensFlags
}

func addMeridianFlags(fs *flag.FlagSet) *meridianFlags {
	return &meridianFlags{
		fs:      fs,
		name:    fs.String("name", "", "product name"),
		qty:     fs.Int("qty", 1, "quantity, 1..20"),
		ordered: fs.Bool("ordered", false, "already ordered"),
		lens:    addLensFlags(fs, false),
	}
}

// apply overlays the flags given on the command line onto base.
func (m *meridianFlags) apply(base store.MeridianItemInput) (store.MeridianItemInput, error) {
	in := base
	if *m.name != "" {
		in.ProductName = *m.name
	}
	if isSet(m.fs, "qty") {
		in.Qty = *m.qty
	}
	if isSet(m.fs, "ordered") {
		in.Ordered = *m.ordered
	}
	params, err := m.lens.apply(models.LensParams{Sph: base.Sph, Cyl: base.Cyl, Ax: base.Ax})
	if err != nil {
		return in, err
	}
	in.Sph, in.Cyl, in.Ax = params.Sph, params.Cyl, params.Ax
	return in, nil
}

func (a *App) meridianAddItem(args []string) error {
	fs := newFlagSet("meridian add-item")
	oid := fs.Uint("order", 0, "order id")
	item := addMeridianFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "order", *oid); err != nil {
		return err
	}
	in, err := item.apply(store.MeridianItemInput{Qty: 1})
	if err != nil {
		return err
	}
	itemID, err := a.store.AddMeridianItem(*oid, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, itemID)
	return nil
}

func (a *App) meridianUpdateItem(args []string) error {
	fs := newFlagSet("meridian update-item")
	itemID := fs.Uint("id", 0, "item id")
	item := addMeridianFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *itemID); err != nil {
		return err
	}
	it, err := a.store.GetMeridianItem(*itemID)
	if err != nil {
		return err
	}
	in, err := item.apply(store.MeridianItemInput{
		ProductName: it.ProductName,
		Sph:         it.Sph,
		Cyl:         it.Cyl,
		Ax:          it.Ax,
		Qty:         it.Qty,
		Ordered:     it.Ordered,
	})
	if err != nil {
		return err
	}
	return a.store.UpdateMeridianItem(*itemID, in)
}

func (a *App) meridianDeleteItem(args []string) error {
	fs := newFlagSet("meridian delete-item")
	itemID := fs.Uint("id", 0, "item id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *itemID); err != nil {
		return err
	}
	return a.store.DeleteMeridianItem(*itemID)
}

func (a *App) meridianOrdered(args []string) error {
	fs := newFlagSet("meridian ordered")
	itemID := fs.Uint("item", 0, "item id")
	oid := fs.Uint("order", 0, "order id, sets every item")
	value := fs.Bool("value", true, "ordered flag")
	if err := parse(fs, args); err != nil {
		return err
	}
	switch {
	case *itemID != 0:
		return a.store.SetMeridianItemOrdered(*itemID, *value)
	case *oid != 0:
		return a.store.SetMeridianOrderOrdered(*oid, *value)
	}
	return fmt.Errorf("%w: %s: -item or -order is required", ErrUsage, fs.Name())
}

func (a *App) meridianNames(args []string) error {
	fs := newFlagSet("meridian names")
	search := fs.String("search", "", "substring of name")
	if err := parse(fs, args); err != nil {
		return err
	}
	names, err := a.store.ListMeridianProducts(*search)
	if err != nil {
		return err
	}
	tw := a.table("ID", a.col("product"))
	for _, n := range names {
		row(tw, id(n.ID), n.Name)
	}
	return tw.Flush()
}

func (a *App) meridianAddName(args []string) error {
	fs := newFlagSet("meridian add-name")
	name := fs.String("name", "", "product name")
	if err := parse(fs, args); err != nil {
		return err
	}
	nid, err := a.store.AddMeridianProduct(*name)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, nid)
	return nil
}

func (a *App) meridianDeleteName(args []string) error {
	fs := newFlagSet("meridian delete-name")
	nid := fs.Uint("id", 0, "name id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := needID(fs, "id", *nid); err != nil {
		return err
	}
	return a.store.DeleteMeridianProduct(*nid)
}

// ─────────────────────────────────────────────────────────────────────────────
// Lens tools
// ─────────────────────────────────────────────────────────────────────────────

// transpose prints the prescription in the opposite cylinder form.
func (a *App) transpose(args []string) error {
	fs := newFlagSet("transpose")
	sph := fs.Float64("sph", 0, "sphere")
	cyl := fs.Float64("cyl", 0, "cylinder")
	ax := fs.Int("ax", 90, "axis, clamped to 0..180")
	if err := parse(fs, args); err != nil {
		return err
	}
	v := make(validation.Violations)
	validation.RangeFloat("sph", *sph, validation.SphMin, validation.SphMax, v)
	validation.RangeFloat("cyl", *cyl, validation.CylMin, validation.CylMax, v)
	if err := v.Err(); err != nil {
		return err
	}
	s, c, axis := validation.TransposeCylinder(*sph, *cyl, *ax)
	fmt.Fprintf(a.out, "SPH %+.2f CYL %+.2f AX %d\n", s, c, axis)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Reports and preferences
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) exportReport(kind services.ReportKind) command {
	return func(args []string) error {
		fs := newFlagSet("export " + string(kind))
		status := fs.String("status", models.StatusAll, "MKL status or all")
		format := fs.String("format", string(export.FormatTXT), "txt, csv or xlsx")
		if err := parse(fs, args); err != nil {
			return err
		}
		f, err := export.ParseFormat(*format)
		if err != nil {
			return err
		}
		path, err := a.reports.Export(kind, *status, f)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, path)
		return nil
	}
}

func (a *App) settingsShow(args []string) error {
	s, err := a.store.GetSettings()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	row(tw, models.SettingExportFolder, s.ExportFolder)
	row(tw, models.SettingAggregateSpecs, strconv.FormatBool(s.AggregateSpecs))
	row(tw, models.SettingShowBC, strconv.FormatBool(s.ShowBC))
	row(tw, models.SettingLanguage, s.Language)
	return tw.Flush()
}

func (a *App) settingsSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: settings set KEY VALUE", ErrUsage)
	}
	return a.store.SetSetting(args[0], args[1])
}
