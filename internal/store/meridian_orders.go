package store

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/diewo77/lens-orders/internal/models"
	"github.com/diewo77/lens-orders/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateNumber is returned when a Meridian order number is already taken.
var ErrDuplicateNumber = errors.New("meridian order number already in use")

// MeridianOrderFilter restricts ListMeridianOrders. Search matches the order
// number or any item name; Status is not_ordered, ordered, or "" / "all".
type MeridianOrderFilter struct {
	Search string
	Status string
}

// MeridianItemInput carries the editable fields of a Meridian item.
type MeridianItemInput struct {
	ProductName string
	Sph         float64
	Cyl         *float64
	Ax          *int
	Qty         int
	Ordered     bool
}

func (in MeridianItemInput) validate() (MeridianItemInput, error) {
	in.ProductName = trimmed(in.ProductName)
	v := make(validation.Violations)
	validation.Required("product_name", in.ProductName, v)
	validation.MaxLen("product_name", in.ProductName, 255, v)
	if err := v.Err(); err != nil {
		return in, err
	}
	return in, validation.ValidateLensValues(in.Sph, in.Cyl, in.Ax, nil, in.Qty)
}

// nextMeridianNumber returns the next free automatic number and advances the
// counter past it. The counter only grows, so deleted numbers are not reissued.
func nextMeridianNumber(tx *gorm.DB) (string, error) {
	var counter models.Setting
	err := tx.Where("`key` = ?", models.SettingMeridianNext).First(&counter).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	n, convErr := strconv.ParseUint(counter.Value, 10, 64)
	if convErr != nil || n == 0 {
		n = 1
	}
	for {
		number := strconv.FormatUint(n, 10)
		taken, err := numberTaken(tx, number, 0)
		if err != nil {
			return "", err
		}
		n++
		if !taken {
			return number, saveCounter(tx, n)
		}
	}
}

func saveCounter(tx *gorm.DB, next uint64) error {
	s := models.Setting{Key: models.SettingMeridianNext, Value: strconv.FormatUint(next, 10)}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&s).Error
}

// bumpCounter keeps the automatic counter above a manually chosen numeric number.
func bumpCounter(tx *gorm.DB, number string) error {
	n, err := strconv.ParseUint(number, 10, 64)
	if err != nil {
		return nil
	}
	var counter models.Setting
	if err := tx.Where("`key` = ?", models.SettingMeridianNext).First(&counter).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	cur, _ := strconv.ParseUint(counter.Value, 10, 64)
	if n >= cur {
		return saveCounter(tx, n+1)
	}
	return nil
}

func numberTaken(tx *gorm.DB, number string, exceptID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.MeridianOrder{}).Where("number = ? AND id <> ?", number, exceptID).Count(&count).Error
	return count > 0, err
}

// meridianNumber trims a manual number. A numeric number must leave room for
// the counter to move past it.
func meridianNumber(number string) (string, error) {
	number = trimmed(number)
	v := make(validation.Violations)
	validation.MaxLen("number", number, 50, v)
	if n, err := strconv.ParseUint(number, 10, 64); err == nil && n == math.MaxUint64 {
		v["number"] = "out_of_range"
	}
	return number, v.Err()
}

// CreateMeridianOrder creates an order and returns its id. An empty number
// takes the next automatic number.
func (s *Store) CreateMeridianOrder(number string) (uint, error) {
	number, err := meridianNumber(number)
	if err != nil {
		return 0, err
	}
	var id uint
	err = s.withConn(func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			var err error
			id, err = s.insertMeridianOrder(tx, number)
			return err
		})
	})
	if err != nil {
		return 0, fmt.Errorf("create meridian order: %w", err)
	}
	return id, nil
}

func (s *Store) insertMeridianOrder(tx *gorm.DB, number string) (uint, error) {
	if number == "" {
		n, err := nextMeridianNumber(tx)
		if err != nil {
			return 0, err
		}
		number = n
	} else {
		taken, err := numberTaken(tx, number, 0)
		if err != nil {
			return 0, err
		}
		if taken {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateNumber, number)
		}
		if err := bumpCounter(tx, number); err != nil {
			return 0, err
		}
	}
	o := models.MeridianOrder{Number: number, CreatedAt: s.timestamp()}
	if err := tx.Omit("Items").Create(&o).Error; err != nil {
		return 0, err
	}
	return o.ID, nil
}

// UpdateMeridianOrder renumbers order id.
func (s *Store) UpdateMeridianOrder(id uint, number string) error {
	number, err := meridianNumber(number)
	if err != nil {
		return err
	}
	if number == "" {
		return validation.Violations{"number": "required"}.Err()
	}
	err = s.withConn(func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			taken, err := numberTaken(tx, number, id)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: %s", ErrDuplicateNumber, number)
			}
			res := tx.Model(&models.MeridianOrder{}).Where("id = ?", id).Update("number", number)
			if res.Error != nil || res.RowsAffected == 0 {
				return res.Error
			}
			return bumpCounter(tx, number)
		})
	})
	if err != nil {
		return fmt.Errorf("update meridian order %d: %w", id, err)
	}
	return nil
}

// DeleteMeridianOrder removes an order and its items. Its number stays retired.
func (s *Store) DeleteMeridianOrder(id uint) error {
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Delete(&models.MeridianOrder{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete meridian order %d: %w", id, err)
	}
	return nil
}

// ListMeridianOrders returns order rows with item counters, newest first.
func (s *Store) ListMeridianOrders(f MeridianOrderFilter) ([]models.MeridianOrderRow, error) {
	var status models.OrderStatus
	if models.IsStatusFilter(f.Status) {
		st, err := models.ParseOrderStatus(f.Status)
		if err != nil {
			return nil, err
		}
		if !st.ValidMeridian() {
			return nil, fmt.Errorf("%w: %q is not a meridian status", models.ErrUnknownStatus, f.Status)
		}
		status = st
	}
	var rows []models.MeridianOrderRow
	err := s.withConn(func(tx *gorm.DB) error {
		q := tx.Table("meridian_orders AS o").
			Select("o.id, o.number, o.created_at, COUNT(i.id) AS items_count, " +
				"COALESCE(SUM(CASE WHEN i.ordered THEN 1 ELSE 0 END), 0) AS ordered_count").
			Joins("LEFT JOIN meridian_order_items i ON i.order_id = o.id").
			Group("o.id")
		if f.Search != "" {
			p := likePattern(f.Search)
			q = q.Where(`(o.number LIKE ? ESCAPE '\' OR EXISTS (SELECT 1 FROM meridian_order_items s `+
				`WHERE s.order_id = o.id AND s.product_name LIKE ? ESCAPE '\'))`, p, p)
		}
		switch status {
		case models.OrderStatusOrdered:
			q = q.Having("COUNT(i.id) > 0 AND SUM(CASE WHEN i.ordered THEN 1 ELSE 0 END) = COUNT(i.id)")
		case models.OrderStatusNotOrdered:
			q = q.Having("COUNT(i.id) = 0 OR SUM(CASE WHEN i.ordered THEN 1 ELSE 0 END) < COUNT(i.id)")
		}
		return q.Order("o.created_at DESC, o.id DESC").Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list meridian orders: %w", err)
	}
	return rows, nil
}

// GetMeridianOrder loads one order with its items in insertion order.
func (s *Store) GetMeridianOrder(id uint) (*models.MeridianOrder, error) {
	var o models.MeridianOrder
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).First(&o, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get meridian order %d: %w", id, notFound(err))
	}
	return &o, nil
}

// DuplicateMeridianOrder copies order id under the next automatic number.
// Copied items start as not ordered.
func (s *Store) DuplicateMeridianOrder(id uint) (uint, error) {
	var newID uint
	err := s.withConn(func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			var src models.MeridianOrder
			if err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
				return db.Order("id")
			}).First(&src, id).Error; err != nil {
				return notFound(err)
			}
			oid, err := s.insertMeridianOrder(tx, "")
			if err != nil {
				return err
			}
			for _, it := range src.Items {
				it.ID = 0
				it.OrderID = oid
				it.Ordered = false
				if err := tx.Omit("Order").Create(&it).Error; err != nil {
					return err
				}
			}
			newID = oid
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("duplicate meridian order %d: %w", id, err)
	}
	return newID, nil
}

// AddMeridianItem adds a line to order orderID and returns its id.
func (s *Store) AddMeridianItem(orderID uint, in MeridianItemInput) (uint, error) {
	in, err := in.validate()
	if err != nil {
		return 0, err
	}
	item := models.MeridianOrderItem{
		OrderID:     orderID,
		ProductName: in.ProductName,
		Sph:         in.Sph,
		Cyl:         in.Cyl,
		Ax:          in.Ax,
		Qty:         in.Qty,
		Ordered:     in.Ordered,
	}
	err = s.withConn(func(tx *gorm.DB) error {
		return tx.Omit("Order").Create(&item).Error
	})
	if err != nil {
		return 0, fmt.Errorf("add meridian item: %w", err)
	}
	return item.ID, nil
}

// UpdateMeridianItem replaces every field of item id.
func (s *Store) UpdateMeridianItem(id uint, in MeridianItemInput) error {
	in, err := in.validate()
	if err != nil {
		return err
	}
	cols := map[string]any{
		"product_name": in.ProductName,
		"sph":          in.Sph,
		"cyl":          in.Cyl,
		"ax":           in.Ax,
		"qty":          in.Qty,
		"ordered":      in.Ordered,
	}
	err = s.withConn(func(tx *gorm.DB) error {
		return tx.Model(&models.MeridianOrderItem{}).Where("id = ?", id).Updates(cols).Error
	})
	if err != nil {
		return fmt.Errorf("update meridian item %d: %w", id, err)
	}
	return nil
}

// DeleteMeridianItem removes one line.
func (s *Store) DeleteMeridianItem(id uint) error {
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Delete(&models.MeridianOrderItem{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete meridian item %d: %w", id, err)
	}
	return nil
}

// GetMeridianOrderItems returns the raw lines of an order by id.
func (s *Store) GetMeridianOrderItems(orderID uint) ([]models.MeridianOrderItem, error) {
	var items []models.MeridianOrderItem
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Where("order_id = ?", orderID).Order("id").Find(&items).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get meridian order %d items: %w", orderID, err)
	}
	return items, nil
}

// GetMeridianItem loads one Meridian line.
func (s *Store) GetMeridianItem(id uint) (*models.MeridianOrderItem, error) {
	var item models.MeridianOrderItem
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.First(&item, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get meridian item %d: %w", id, notFound(err))
	}
	return &item, nil
}

// SetMeridianItemOrdered sets the ordered flag of one item.
func (s *Store) SetMeridianItemOrdered(itemID uint, ordered bool) error {
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Model(&models.MeridianOrderItem{}).Where("id = ?", itemID).Update("ordered", ordered).Error
	})
	if err != nil {
		return fmt.Errorf("set meridian item %d ordered: %w", itemID, err)
	}
	return nil
}

// SetMeridianOrderOrdered sets the ordered flag of every item of an order.
func (s *Store) SetMeridianOrderOrdered(orderID uint, ordered bool) error {
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Model(&models.MeridianOrderItem{}).Where("order_id = ?", orderID).Update("ordered", ordered).Error
	})
	if err != nil {
		return fmt.Errorf("set meridian order %d ordered: %w", orderID, err)
	}
	return nil
}

// ListMeridianItems returns the items with the given ordered flag, each with
// its order loaded, grouped by order in creation order.
func (s *Store) ListMeridianItems(ordered bool) ([]models.MeridianOrderItem, error) {
	var items []models.MeridianOrderItem
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Preload("Order").Where("ordered = ?", ordered).Order("order_id, id").Find(&items).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list meridian items: %w", err)
	}
	return items, nil
}
