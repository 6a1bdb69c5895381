package store

import (
	"fmt"
	"strings"

	"github.com/diewo77/lens-orders/internal/models"
	"github.com/diewo77/lens-orders/validation"
	"gorm.io/gorm"
)

// MKLOrderFilter restricts ListMKLOrders. Search matches client name or
// phone; Status is a status code, or "" / "all" for every status.
type MKLOrderFilter struct {
	Search string
	Status string
}

// MKLItemInput carries the editable fields of an MKL order item.
type MKLItemInput struct {
	ProductID uint
	models.LensParams
	Qty int
}

func (in MKLItemInput) validate() error {
	return validation.ValidateLensValues(in.Sph, in.Cyl, in.Ax, in.Bc, in.Qty)
}

func mklStatus(status models.OrderStatus) (models.OrderStatus, error) {
	if status == "" {
		return models.OrderStatusNotOrdered, nil
	}
	return models.ParseOrderStatus(string(status))
}

// CreateMKLOrder creates an order for clientID and returns its id. An empty
// status means not_ordered.
func (s *Store) CreateMKLOrder(clientID uint, status models.OrderStatus) (uint, error) {
	status, err := mklStatus(status)
	if err != nil {
		return 0, err
	}
	o := models.MKLOrder{ClientID: clientID, Status: status, CreatedAt: s.timestamp()}
	err = s.withConn(func(tx *gorm.DB) error {
		return tx.Omit("Client", "Items").Create(&o).Error
	})
	if err != nil {
		return 0, fmt.Errorf("create mkl order: %w", err)
	}
	return o.ID, nil
}

// UpdateMKLOrder changes the client and status of order id. The creation
// time is never changed.
func (s *Store) UpdateMKLOrder(id, clientID uint, status models.OrderStatus) error {
	status, err := models.ParseOrderStatus(string(status))
	if err != nil {
		return err
	}
	err = s.withConn(func(tx *gorm.DB) error {
		return tx.Model(&models.MKLOrder{}).Where("id = ?", id).
			Updates(map[string]any{"client_id": clientID, "status": status}).Error
	})
	if err != nil {
		return fmt.Errorf("update mkl order %d: %w", id, err)
	}
	return nil
}

// SetMKLOrderStatus moves order id to status. Any status can follow any other.
func (s *Store) SetMKLOrderStatus(id uint, status models.OrderStatus) error {
	status, err := models.ParseOrderStatus(string(status))
	if err != nil {
		return err
	}
	err = s.withConn(func(tx *gorm.DB) error {
		return tx.Model(&models.MKLOrder{}).Where("id = ?", id).Update("status", status).Error
	})
	if err != nil {
		return fmt.Errorf("set mkl order %d status: %w", id, err)
	}
	return nil
}

// DeleteMKLOrder removes an order and its items.
func (s *Store) DeleteMKLOrder(id uint) error {
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Delete(&models.MKLOrder{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete mkl order %d: %w", id, err)
	}
	return nil
}

func mklOrdersQuery(tx *gorm.DB, f MKLOrderFilter) (*gorm.DB, error) {
	q := tx.Table("mkl_orders AS o").
		Joins("JOIN clients c ON c.id = o.client_id")
	if f.Search != "" {
		p := likePattern(f.Search)
		q = q.Where(`(c.full_name LIKE ? ESCAPE '\' OR c.phone LIKE ? ESCAPE '\')`, p, p)
	}
	if models.IsStatusFilter(f.Status) {
		st, err := models.ParseOrderStatus(f.Status)
		if err != nil {
			return nil, err
		}
		q = q.Where("o.status = ?", st)
	}
	return q.Order("o.created_at DESC, o.id DESC"), nil
}

// ListMKLOrders returns order rows joined with their client, newest first.
func (s *Store) ListMKLOrders(f MKLOrderFilter) ([]models.MKLOrderRow, error) {
	var rows []models.MKLOrderRow
	err := s.withConn(func(tx *gorm.DB) error {
		q, err := mklOrdersQuery(tx, f)
		if err != nil {
			return err
		}
		return q.Select("o.id, o.client_id, c.full_name, c.phone, o.status, o.created_at, " +
			"(SELECT COUNT(*) FROM mkl_order_items i WHERE i.order_id = o.id) AS items_count").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list mkl orders: %w", err)
	}
	return rows, nil
}

// ListMKLOrderDetails returns the orders matching f with their client and
// items loaded, newest first.
func (s *Store) ListMKLOrderDetails(f MKLOrderFilter) ([]models.MKLOrder, error) {
	var orders []models.MKLOrder
	err := s.withConn(func(tx *gorm.DB) error {
		q, err := mklOrdersQuery(tx, f)
		if err != nil {
			return err
		}
		if err := q.Select("o.*").Find(&orders).Error; err != nil {
			return err
		}
		if len(orders) == 0 {
			return nil
		}
		ids := make([]uint, len(orders))
		for i, o := range orders {
			ids[i] = o.ID
		}
		var clients []models.Client
		if err := tx.Where("id IN ?", clientIDs(orders)).Find(&clients).Error; err != nil {
			return err
		}
		byClient := make(map[uint]*models.Client, len(clients))
		for i := range clients {
			byClient[clients[i].ID] = &clients[i]
		}
		var items []models.MKLOrderItem
		if err := mklItemsQuery(tx).Where("i.order_id IN ?", ids).Scan(&items).Error; err != nil {
			return err
		}
		byOrder := make(map[uint][]models.MKLOrderItem)
		for _, it := range items {
			byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
		}
		for i := range orders {
			orders[i].Client = byClient[orders[i].ClientID]
			orders[i].Items = byOrder[orders[i].ID]
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list mkl orders: %w", err)
	}
	return orders, nil
}

func clientIDs(orders []models.MKLOrder) []uint {
	seen := make(map[uint]bool)
	var ids []uint
	for _, o := range orders {
		if !seen[o.ClientID] {
			seen[o.ClientID] = true
			ids = append(ids, o.ClientID)
		}
	}
	return ids
}

// GetMKLOrder loads one order with its client and items.
func (s *Store) GetMKLOrder(id uint) (*models.MKLOrder, error) {
	var o models.MKLOrder
	err := s.withConn(func(tx *gorm.DB) error {
		if err := tx.Preload("Client").First(&o, id).Error; err != nil {
			return err
		}
		return mklItemsQuery(tx).Where("i.order_id = ?", id).Scan(&o.Items).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get mkl order %d: %w", id, notFound(err))
	}
	return &o, nil
}

// DuplicateMKLOrder copies order id and its items into a new not_ordered
// order for the same client and returns the new id.
func (s *Store) DuplicateMKLOrder(id uint) (uint, error) {
	var newID uint
	err := s.withConn(func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			var src models.MKLOrder
			if err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
				return db.Order("id")
			}).First(&src, id).Error; err != nil {
				return notFound(err)
			}
			dup := models.MKLOrder{
				ClientID:  src.ClientID,
				Status:    models.OrderStatusNotOrdered,
				CreatedAt: s.timestamp(),
			}
			if err := tx.Omit("Client", "Items").Create(&dup).Error; err != nil {
				return err
			}
			for _, it := range src.Items {
				it.ID = 0
				it.OrderID = dup.ID
				if err := tx.Omit("Order", "Product").Create(&it).Error; err != nil {
					return err
				}
			}
			newID = dup.ID
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("duplicate mkl order %d: %w", id, err)
	}
	return newID, nil
}

func mklItemsQuery(tx *gorm.DB) *gorm.DB {
	return tx.Table("mkl_order_items AS i").
		Select("i.id, i.order_id, i.product_id, COALESCE(p.name, i.product_name) AS product_name, " +
			"i.sph, i.cyl, i.ax, i.bc, i.qty").
		Joins("LEFT JOIN mkl_products p ON p.id = i.product_id").
		Order("i.order_id, i.id")
}

// productName fetches the catalog name that items snapshot.
func productName(tx *gorm.DB, productID uint) (string, error) {
	var p models.Product
	if err := tx.Select("id", "name").First(&p, productID).Error; err != nil {
		return "", fmt.Errorf("product %d: %w", productID, notFound(err))
	}
	return p.Name, nil
}

// AddMKLItem adds a line to order orderID and returns its id.
func (s *Store) AddMKLItem(orderID uint, in MKLItemInput) (uint, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	item := models.MKLOrderItem{OrderID: orderID, LensParams: in.LensParams, Qty: in.Qty}
	err := s.withConn(func(tx *gorm.DB) error {
		name, err := productName(tx, in.ProductID)
		if err != nil {
			return err
		}
		pid := in.ProductID
		item.ProductID = &pid
		item.ProductName = name
		return tx.Omit("Order", "Product").Create(&item).Error
	})
	if err != nil {
		return 0, fmt.Errorf("add mkl item: %w", err)
	}
	return item.ID, nil
}

// UpdateMKLItem replaces the product, lens values and quantity of item id.
// A zero ProductID keeps the current product reference and name.
func (s *Store) UpdateMKLItem(id uint, in MKLItemInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	err := s.withConn(func(tx *gorm.DB) error {
		cols := lensColumns(in.LensParams)
		cols["qty"] = in.Qty
		if in.ProductID != 0 {
			name, err := productName(tx, in.ProductID)
			if err != nil {
				return err
			}
			cols["product_id"] = in.ProductID
			cols["product_name"] = name
		}
		return tx.Model(&models.MKLOrderItem{}).Where("id = ?", id).Updates(cols).Error
	})
	if err != nil {
		return fmt.Errorf("update mkl item %d: %w", id, err)
	}
	return nil
}

// DeleteMKLItem removes one order line.
func (s *Store) DeleteMKLItem(id uint) error {
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Delete(&models.MKLOrderItem{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete mkl item %d: %w", id, err)
	}
	return nil
}

// GetMKLOrderItems returns the lines of an order in insertion order with the
// catalog product name joined in.
func (s *Store) GetMKLOrderItems(orderID uint) ([]models.MKLOrderItem, error) {
	var items []models.MKLOrderItem
	err := s.withConn(func(tx *gorm.DB) error {
		return mklItemsQuery(tx).Where("i.order_id = ?", orderID).Scan(&items).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get mkl order %d items: %w", orderID, err)
	}
	return items, nil
}

// GetMKLItem loads one order line with its product name joined in.
func (s *Store) GetMKLItem(id uint) (*models.MKLOrderItem, error) {
	var items []models.MKLOrderItem
	err := s.withConn(func(tx *gorm.DB) error {
		return mklItemsQuery(tx).Where("i.id = ?", id).Scan(&items).Error
	})
	if err == nil && len(items) == 0 {
		err = ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get mkl item %d: %w", id, err)
	}
	return &items[0], nil
}

func trimmed(s string) string { return strings.TrimSpace(s) }
