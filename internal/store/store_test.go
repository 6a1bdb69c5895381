package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/diewo77/lens-orders/internal/db"
	"github.com/diewo77/lens-orders/internal/models"
	"github.com/diewo77/lens-orders/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lens_orders.db")
	require.NoError(t, db.EnsureSchema(path))
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	return New(path, WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}))
}

// seedOrder creates a client, a catalog product and one order with one item.
func seedOrder(t *testing.T, s *Store) (clientID, productID, orderID uint) {
	t.Helper()
	clientID, err := s.AddClient("Ivan Petrov", "+79001234567")
	require.NoError(t, err)
	productID, err = s.AddProduct(models.Product{
		Name:       "Acme Daily",
		LensParams: models.LensParams{Sph: -2.25, Bc: models.Float(8.6)},
	})
	require.NoError(t, err)
	orderID, err = s.CreateMKLOrder(clientID, "Not-ordered")
	require.NoError(t, err)
	_, err = s.AddMKLItem(orderID, MKLItemInput{
		ProductID:  productID,
		LensParams: models.LensParams{Sph: -2.25, Bc: models.Float(8.6)},
		Qty:        2,
	})
	require.NoError(t, err)
	return clientID, productID, orderID
}

func TestStore_Unavailable(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing", "lens.db"))
	_, err := s.ListClients("")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestStore_ScenarioOrderItems(t *testing.T) {
	s := newTestStore(t)
	_, productID, orderID := seedOrder(t, s)

	items, err := s.GetMKLOrderItems(orderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	it := items[0]
	assert.Equal(t, 2, it.Qty)
	assert.Equal(t, "Acme Daily", it.ProductName)
	assert.Equal(t, -2.25, it.Sph)
	assert.Nil(t, it.Cyl)
	assert.Nil(t, it.Ax)
	require.NotNil(t, it.Bc)
	assert.Equal(t, 8.6, *it.Bc)
	require.NotNil(t, it.ProductID)
	assert.Equal(t, productID, *it.ProductID)
}

func TestStore_StatusFilter(t *testing.T) {
	s := newTestStore(t)
	_, _, orderID := seedOrder(t, s)

	require.NoError(t, s.SetMKLOrderStatus(orderID, "Delivered"))

	delivered, err := s.ListMKLOrders(MKLOrderFilter{Status: "Delivered"})
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, orderID, delivered[0].ID)
	assert.Equal(t, models.OrderStatusDelivered, delivered[0].Status)

	ordered, err := s.ListMKLOrders(MKLOrderFilter{Status: "Ordered"})
	require.NoError(t, err)
	assert.Empty(t, ordered)

	all, err := s.ListMKLOrders(MKLOrderFilter{Status: models.StatusAll})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = s.ListMKLOrders(MKLOrderFilter{Status: "shipped"})
	assert.ErrorIs(t, err, models.ErrUnknownStatus)

	err = s.SetMKLOrderStatus(orderID, "lost")
	assert.ErrorIs(t, err, models.ErrUnknownStatus)
}

func TestStore_AddClientIdempotent(t *testing.T) {
	s := newTestStore(t)
	id1, err := s.AddClient("Ivan Petrov", "+79001234567")
	require.NoError(t, err)
	id2, err := s.AddClient("  Ivan Petrov ", "8 (900) 123-45-67")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	id3, err := s.AddClient("Ivan Petrov", "")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id3)
	id4, err := s.AddClient("Ivan Petrov", "")
	require.NoError(t, err)
	assert.Equal(t, id3, id4)

	clients, err := s.ListClients("")
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}

func TestStore_AddClientValidation(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddClient("   ", "123")
	var ve validation.ViolationsError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve["full_name"])

	clients, err := s.ListClients("")
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestStore_DeleteClientCascades(t *testing.T) {
	s := newTestStore(t)
	clientID, productID, orderID := seedOrder(t, s)

	require.NoError(t, s.DeleteClient(clientID))

	orders, err := s.ListMKLOrders(MKLOrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	items, err := s.GetMKLOrderItems(orderID)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = s.GetClient(clientID)
	assert.ErrorIs(t, err, ErrNotFound)
	p, err := s.GetProduct(productID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Daily", p.Name)
}

func TestStore_ListClientsOrderAndSearch(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"beta", "Gamma", "Alpha"} {
		_, err := s.AddClient(name, "")
		require.NoError(t, err)
	}
	_, err := s.AddClient("Delta", "+79005550000")
	require.NoError(t, err)

	clients, err := s.ListClients("")
	require.NoError(t, err)
	var names []string
	for _, c := range clients {
		names = append(names, c.FullName)
	}
	assert.Equal(t, []string{"Alpha", "beta", "Delta", "Gamma"}, names)

	clients, err = s.ListClients("555")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Delta", clients[0].FullName)

	clients, err = s.ListClients("amm")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Gamma", clients[0].FullName)

	clients, err = s.ListClients("zzz")
	require.NoError(t, err)
	assert.Empty(t, clients)

	clients, err = s.ListClients("%")
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestStore_UpdateClient(t *testing.T) {
	s := newTestStore(t)
	id, err := s.AddClient("Ivan Petrov", "")
	require.NoError(t, err)
	require.NoError(t, s.UpdateClient(id, "Ivan Petrov", "79001234567"))
	c, err := s.GetClient(id)
	require.NoError(t, err)
	assert.Equal(t, "+79001234567", c.Phone)

	other, err := s.AddClient("Anna", "")
	require.NoError(t, err)
	assert.Error(t, s.UpdateClient(other, "Ivan Petrov", "+79001234567"))
}

func TestStore_MissingIDsAreNoops(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.UpdateClient(999, "Nobody", ""))
	assert.NoError(t, s.DeleteClient(999))
	assert.NoError(t, s.UpdateProduct(999, models.Product{Name: "X"}))
	assert.NoError(t, s.DeleteProduct(999))
	assert.NoError(t, s.SetMKLOrderStatus(999, models.OrderStatusOrdered))
	assert.NoError(t, s.DeleteMKLOrder(999))
	assert.NoError(t, s.DeleteMKLItem(999))
	assert.NoError(t, s.UpdateMeridianOrder(999, "77"))
	assert.NoError(t, s.DeleteMeridianOrder(999))
	assert.NoError(t, s.SetMeridianItemOrdered(999, true))
	assert.NoError(t, s.SetMeridianOrderOrdered(999, true))
	assert.NoError(t, s.DeleteMeridianItem(999))

	clients, err := s.ListClients("")
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestStore_Products(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddProduct(models.Product{Name: "", LensParams: models.LensParams{Sph: 1}})
	var ve validation.ViolationsError
	require.ErrorAs(t, err, &ve)

	_, err = s.AddProduct(models.Product{Name: "Bad", LensParams: models.LensParams{Sph: 1.1}})
	var le *validation.LensError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, validation.FieldSph, le.Field)

	id, err := s.AddProduct(models.Product{Name: "zeta toric", LensParams: models.LensParams{
		Sph: -1, Cyl: models.Float(-0.75), Ax: models.Int(90),
	}})
	require.NoError(t, err)
	_, err = s.AddProduct(models.Product{Name: "Acme"})
	require.NoError(t, err)

	products, err := s.ListProducts("")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Acme", products[0].Name)

	require.NoError(t, s.UpdateProduct(id, models.Product{Name: "Zeta Toric", LensParams: models.LensParams{Sph: -1.5}}))
	p, err := s.GetProduct(id)
	require.NoError(t, err)
	assert.Equal(t, "Zeta Toric", p.Name)
	assert.Equal(t, -1.5, p.Sph)
	assert.Nil(t, p.Cyl)
	assert.Nil(t, p.Ax)

	products, err = s.ListProducts("toric")
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestStore_DeleteProductKeepsItems(t *testing.T) {
	s := newTestStore(t)
	_, productID, orderID := seedOrder(t, s)

	require.NoError(t, s.DeleteProduct(productID))

	items, err := s.GetMKLOrderItems(orderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].ProductID)
	assert.Equal(t, "Acme Daily", items[0].ProductName)
	assert.Equal(t, 2, items[0].Qty)

	require.NoError(t, s.UpdateMKLItem(items[0].ID, MKLItemInput{LensParams: items[0].LensParams, Qty: 3}))
	it, err := s.GetMKLItem(items[0].ID)
	require.NoError(t, err)
	assert.Nil(t, it.ProductID)
	assert.Equal(t, "Acme Daily", it.ProductName)
	assert.Equal(t, 3, it.Qty)
}

func TestStore_MKLItemValidation(t *testing.T) {
	s := newTestStore(t)
	_, productID, orderID := seedOrder(t, s)

	_, err := s.AddMKLItem(orderID, MKLItemInput{ProductID: productID, Qty: 21})
	var le *validation.LensError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, validation.FieldQty, le.Field)

	_, err = s.AddMKLItem(orderID, MKLItemInput{ProductID: 999, Qty: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	items, err := s.GetMKLOrderItems(orderID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestStore_UpdateMKLItem(t *testing.T) {
	s := newTestStore(t)
	_, productID, orderID := seedOrder(t, s)
	items, err := s.GetMKLOrderItems(orderID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	err = s.UpdateMKLItem(items[0].ID, MKLItemInput{
		ProductID:  productID,
		LensParams: models.LensParams{Sph: -3, Cyl: models.Float(-1.25), Ax: models.Int(180)},
		Qty:        20,
	})
	require.NoError(t, err)

	items, err = s.GetMKLOrderItems(orderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 20, items[0].Qty)
	assert.Equal(t, -3.0, items[0].Sph)
	require.NotNil(t, items[0].Cyl)
	assert.Equal(t, -1.25, *items[0].Cyl)
	assert.Nil(t, items[0].Bc)

	require.NoError(t, s.DeleteMKLItem(items[0].ID))
	items, err = s.GetMKLOrderItems(orderID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_ListMKLOrders(t *testing.T) {
	s := newTestStore(t)
	ivan, _, first := seedOrder(t, s)
	anna, err := s.AddClient("Anna Smirnova", "+79112223344")
	require.NoError(t, err)
	second, err := s.CreateMKLOrder(anna, "")
	require.NoError(t, err)
	third, err := s.CreateMKLOrder(ivan, models.OrderStatusCalled)
	require.NoError(t, err)

	rows, err := s.ListMKLOrders(MKLOrderFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []uint{third, second, first}, []uint{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, 1, rows[2].ItemsCount)
	assert.Equal(t, 0, rows[1].ItemsCount)
	assert.Equal(t, "Anna Smirnova", rows[1].FullName)
	assert.Equal(t, models.OrderStatusNotOrdered, rows[1].Status)

	rows, err = s.ListMKLOrders(MKLOrderFilter{Search: "Anna"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, second, rows[0].ID)

	rows, err = s.ListMKLOrders(MKLOrderFilter{Search: "2223"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = s.ListMKLOrders(MKLOrderFilter{Search: "Ivan", Status: "called"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, third, rows[0].ID)

	rows, err = s.ListMKLOrders(MKLOrderFilter{Search: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_ListMKLOrderDetails(t *testing.T) {
	s := newTestStore(t)
	_, _, orderID := seedOrder(t, s)

	orders, err := s.ListMKLOrderDetails(MKLOrderFilter{Status: "not_ordered"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.Equal(t, orderID, o.ID)
	require.NotNil(t, o.Client)
	assert.Equal(t, "Ivan Petrov", o.Client.FullName)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Acme Daily", o.Items[0].ProductName)
	assert.Equal(t, 2, o.TotalQty())

	orders, err = s.ListMKLOrderDetails(MKLOrderFilter{Status: "ordered"})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestStore_CreatedAtImmutable(t *testing.T) {
	s := newTestStore(t)
	clientID, _, orderID := seedOrder(t, s)
	before, err := s.GetMKLOrder(orderID)
	require.NoError(t, err)

	other, err := s.AddClient("Anna", "")
	require.NoError(t, err)
	require.NoError(t, s.UpdateMKLOrder(orderID, other, models.OrderStatusCalled))
	require.NoError(t, s.SetMKLOrderStatus(orderID, models.OrderStatusDelivered))

	after, err := s.GetMKLOrder(orderID)
	require.NoError(t, err)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt), "created_at changed: %v -> %v", before.CreatedAt, after.CreatedAt)
	assert.Equal(t, other, after.ClientID)
	assert.NotEqual(t, clientID, after.ClientID)
	assert.Equal(t, models.OrderStatusDelivered, after.Status)
	require.NotNil(t, after.Client)
	assert.Equal(t, "Anna", after.Client.FullName)
	assert.Len(t, after.Items, 1)
}

func TestStore_DuplicateMKLOrder(t *testing.T) {
	s := newTestStore(t)
	clientID, _, orderID := seedOrder(t, s)
	require.NoError(t, s.SetMKLOrderStatus(orderID, models.OrderStatusDelivered))

	dupID, err := s.DuplicateMKLOrder(orderID)
	require.NoError(t, err)
	assert.NotEqual(t, orderID, dupID)

	dup, err := s.GetMKLOrder(dupID)
	require.NoError(t, err)
	assert.Equal(t, clientID, dup.ClientID)
	assert.Equal(t, models.OrderStatusNotOrdered, dup.Status)
	require.Len(t, dup.Items, 1)
	assert.Equal(t, 2, dup.Items[0].Qty)
	assert.Equal(t, "Acme Daily", dup.Items[0].ProductName)

	_, err = s.DuplicateMKLOrder(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_MeridianNumbering(t *testing.T) {
	s := newTestStore(t)
	number := func(id uint) string {
		t.Helper()
		o, err := s.GetMeridianOrder(id)
		require.NoError(t, err)
		return o.Number
	}

	first, err := s.CreateMeridianOrder("")
	require.NoError(t, err)
	second, err := s.CreateMeridianOrder("")
	require.NoError(t, err)
	assert.Equal(t, "1", number(first))
	assert.Equal(t, "2", number(second))

	require.NoError(t, s.DeleteMeridianOrder(second))
	third, err := s.CreateMeridianOrder("")
	require.NoError(t, err)
	assert.Equal(t, "3", number(third))

	manual, err := s.CreateMeridianOrder(" 10 ")
	require.NoError(t, err)
	assert.Equal(t, "10", number(manual))
	next, err := s.CreateMeridianOrder("")
	require.NoError(t, err)
	assert.Equal(t, "11", number(next))

	_, err = s.CreateMeridianOrder("10")
	assert.ErrorIs(t, err, ErrDuplicateNumber)
	assert.ErrorIs(t, s.UpdateMeridianOrder(first, "11"), ErrDuplicateNumber)

	require.NoError(t, s.UpdateMeridianOrder(first, "A-1"))
	assert.Equal(t, "A-1", number(first))

	var ve validation.ViolationsError
	assert.ErrorAs(t, s.UpdateMeridianOrder(first, " "), &ve)
}

func TestStore_MeridianNumberingMaxValue(t *testing.T) {
	s := newTestStore(t)
	id, err := s.CreateMeridianOrder("")
	require.NoError(t, err)
	require.NoError(t, s.DeleteMeridianOrder(id))

	_, err = s.CreateMeridianOrder("18446744073709551615")
	var ve validation.ViolationsError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "out_of_range", ve["number"])

	id, err = s.CreateMeridianOrder("")
	require.NoError(t, err)
	require.ErrorAs(t, s.UpdateMeridianOrder(id, "18446744073709551615"), &ve)

	o, err := s.GetMeridianOrder(id)
	require.NoError(t, err)
	assert.Equal(t, "2", o.Number)

	big, err := s.CreateMeridianOrder("18446744073709551614")
	require.NoError(t, err)
	o, err = s.GetMeridianOrder(big)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551614", o.Number)
}

func TestStore_MeridianItemsAndStatus(t *testing.T) {
	s := newTestStore(t)
	full, err := s.CreateMeridianOrder("")
	require.NoError(t, err)
	empty, err := s.CreateMeridianOrder("")
	require.NoError(t, err)

	a, err := s.AddMeridianItem(full, MeridianItemInput{ProductName: " Lens Cleaner ", Qty: 3})
	require.NoError(t, err)
	_, err = s.AddMeridianItem(full, MeridianItemInput{
		ProductName: "Toric 30", Sph: -1.5, Cyl: models.Float(-0.75), Ax: models.Int(10), Qty: 1,
	})
	require.NoError(t, err)
	require.NoError(t, s.SetMeridianItemOrdered(a, true))

	items, err := s.GetMeridianOrderItems(full)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Lens Cleaner", items[0].ProductName)
	assert.True(t, items[0].Ordered)
	assert.False(t, items[1].Ordered)

	notOrdered, err := s.ListMeridianOrders(MeridianOrderFilter{Status: "not_ordered"})
	require.NoError(t, err)
	require.Len(t, notOrdered, 2)
	assert.Equal(t, empty, notOrdered[0].ID)
	assert.Equal(t, 2, notOrdered[1].ItemsCount)
	assert.Equal(t, 1, notOrdered[1].OrderedCount)

	require.NoError(t, s.SetMeridianOrderOrdered(full, true))
	ordered, err := s.ListMeridianOrders(MeridianOrderFilter{Status: "Ordered"})
	require.NoError(t, err)
	require.Len(t, ordered, 1)
	assert.Equal(t, full, ordered[0].ID)
	assert.Equal(t, models.OrderStatusOrdered, ordered[0].Status())

	found, err := s.ListMeridianOrders(MeridianOrderFilter{Search: "Toric"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, full, found[0].ID)

	_, err = s.ListMeridianOrders(MeridianOrderFilter{Status: "called"})
	assert.ErrorIs(t, err, models.ErrUnknownStatus)

	pending, err := s.ListMeridianItems(false)
	require.NoError(t, err)
	assert.Empty(t, pending)
	done, err := s.ListMeridianItems(true)
	require.NoError(t, err)
	require.Len(t, done, 2)
	require.NotNil(t, done[0].Order)
	assert.Equal(t, "1", done[0].Order.Number)
}

func TestStore_MeridianItemValidation(t *testing.T) {
	s := newTestStore(t)
	orderID, err := s.CreateMeridianOrder("")
	require.NoError(t, err)

	_, err = s.AddMeridianItem(orderID, MeridianItemInput{ProductName: "  ", Qty: 1})
	var ve validation.ViolationsError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "required", ve["product_name"])

	_, err = s.AddMeridianItem(orderID, MeridianItemInput{ProductName: "X", Ax: models.Int(181), Qty: 1})
	var le *validation.LensError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, validation.FieldAx, le.Field)

	id, err := s.AddMeridianItem(orderID, MeridianItemInput{ProductName: "X", Qty: 1})
	require.NoError(t, err)
	require.NoError(t, s.UpdateMeridianItem(id, MeridianItemInput{ProductName: "Y", Sph: 2.5, Qty: 4, Ordered: true}))
	items, err := s.GetMeridianOrderItems(orderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Y", items[0].ProductName)
	assert.Equal(t, 4, items[0].Qty)
	assert.True(t, items[0].Ordered)
}

func TestStore_DuplicateMeridianOrder(t *testing.T) {
	s := newTestStore(t)
	orderID, err := s.CreateMeridianOrder("")
	require.NoError(t, err)
	_, err = s.AddMeridianItem(orderID, MeridianItemInput{ProductName: "X", Qty: 2, Ordered: true})
	require.NoError(t, err)

	dupID, err := s.DuplicateMeridianOrder(orderID)
	require.NoError(t, err)
	dup, err := s.GetMeridianOrder(dupID)
	require.NoError(t, err)
	assert.Equal(t, "2", dup.Number)
	require.Len(t, dup.Items, 1)
	assert.False(t, dup.Items[0].Ordered)
	assert.Equal(t, models.OrderStatusNotOrdered, dup.Status())

	require.NoError(t, s.DeleteMeridianOrder(orderID))
	items, err := s.GetMeridianOrderItems(orderID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_MeridianProducts(t *testing.T) {
	s := newTestStore(t)
	id1, err := s.AddMeridianProduct("solution 360ml")
	require.NoError(t, err)
	id2, err := s.AddMeridianProduct(" solution 360ml ")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
	_, err = s.AddMeridianProduct("Drops")
	require.NoError(t, err)

	products, err := s.ListMeridianProducts("")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Drops", products[0].Name)

	require.NoError(t, s.DeleteMeridianProduct(id1))
	products, err = s.ListMeridianProducts("solution")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestStore_Settings(t *testing.T) {
	s := newTestStore(t)
	st, err := s.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "exports", st.ExportFolder)
	assert.True(t, st.AggregateSpecs)
	assert.True(t, st.ShowBC)
	assert.Equal(t, "ru", st.Language)

	require.NoError(t, s.SetSetting(models.SettingLanguage, "EN"))
	require.NoError(t, s.SetSetting(models.SettingShowBC, "0"))
	require.NoError(t, s.SetSetting(models.SettingExportFolder, "/tmp/out"))
	st, err = s.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "en", st.Language)
	assert.False(t, st.ShowBC)
	assert.Equal(t, "/tmp/out", st.ExportFolder)

	var ve validation.ViolationsError
	assert.ErrorAs(t, s.SetSetting(models.SettingAggregateSpecs, "maybe"), &ve)
	assert.ErrorAs(t, s.SetSetting(models.SettingLanguage, "de"), &ve)
	assert.ErrorIs(t, s.SetSetting("theme", "dark"), ErrUnknownSetting)
	assert.ErrorIs(t, s.SetSetting(models.SettingMeridianNext, "1"), ErrUnknownSetting)
}

func TestStore_GetItems(t *testing.T) {
	s := newTestStore(t)
	_, _, orderID := seedOrder(t, s)
	items, err := s.GetMKLOrderItems(orderID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	it, err := s.GetMKLItem(items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Daily", it.ProductName)
	_, err = s.GetMKLItem(999)
	assert.ErrorIs(t, err, ErrNotFound)

	mID, err := s.CreateMeridianOrder("")
	require.NoError(t, err)
	itemID, err := s.AddMeridianItem(mID, MeridianItemInput{ProductName: "Drops", Qty: 2})
	require.NoError(t, err)
	mi, err := s.GetMeridianItem(itemID)
	require.NoError(t, err)
	assert.Equal(t, 2, mi.Qty)
	_, err = s.GetMeridianItem(999)
	assert.ErrorIs(t, err, ErrNotFound)
}
