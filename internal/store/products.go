package store

import (
	"fmt"
	"strings"

	"github.com/diewo77/lens-orders/internal/models"
	"github.com/diewo77/lens-orders/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func productInput(p models.Product) (models.Product, error) {
	p.ID = 0
	p.Name = strings.TrimSpace(p.Name)
	v := make(validation.Violations)
	validation.Required("name", p.Name, v)
	validation.MaxLen("name", p.Name, 255, v)
	if err := v.Err(); err != nil {
		return p, err
	}
	return p, validation.ValidateSpec(p.Sph, p.Cyl, p.Ax, p.Bc)
}

func lensColumns(p models.LensParams) map[string]any {
	return map[string]any{"sph": p.Sph, "cyl": p.Cyl, "ax": p.Ax, "bc": p.Bc}
}

// AddProduct inserts an MKL catalog product and returns its id.
func (s *Store) AddProduct(p models.Product) (uint, error) {
	p, err := productInput(p)
	if err != nil {
		return 0, err
	}
	err = s.withConn(func(tx *gorm.DB) error {
		return tx.Create(&p).Error
	})
	if err != nil {
		return 0, fmt.Errorf("add product: %w", err)
	}
	return p.ID, nil
}

// UpdateProduct replaces every field of product id. Order items keep their
// own lens values.
func (s *Store) UpdateProduct(id uint, p models.Product) error {
	p, err := productInput(p)
	if err != nil {
		return err
	}
	cols := lensColumns(p.LensParams)
	cols["name"] = p.Name
	err = s.withConn(func(tx *gorm.DB) error {
		return tx.Model(&models.Product{}).Where("id = ?", id).Updates(cols).Error
	})
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	return nil
}

// DeleteProduct removes a catalog product. Items referencing it keep the
// name captured when they were added.
func (s *Store) DeleteProduct(id uint) error {
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Delete(&models.Product{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// ListProducts returns catalog products whose name contains search, sorted by name.
func (s *Store) ListProducts(search string) ([]models.Product, error) {
	var products []models.Product
	err := s.withConn(func(tx *gorm.DB) error {
		q := tx.Model(&models.Product{})
		if search != "" {
			q = q.Where(`name LIKE ? ESCAPE '\'`, likePattern(search))
		}
		return q.Find(&products).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	sortByName(products,
		func(p models.Product) string { return p.Name },
		func(p models.Product) uint { return p.ID })
	return products, nil
}

// GetProduct loads one catalog product.
func (s *Store) GetProduct(id uint) (*models.Product, error) {
	var p models.Product
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.First(&p, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, notFound(err))
	}
	return &p, nil
}

// AddMeridianProduct remembers a Meridian item name and returns its id. An
// existing name returns the existing id.
func (s *Store) AddMeridianProduct(name string) (uint, error) {
	p := models.MeridianProduct{Name: strings.TrimSpace(name)}
	v := make(validation.Violations)
	validation.Required("name", p.Name, v)
	validation.MaxLen("name", p.Name, 255, v)
	if err := v.Err(); err != nil {
		return 0, err
	}
	var id uint
	err := s.withConn(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
			return err
		}
		var existing models.MeridianProduct
		if err := tx.Where("name = ?", p.Name).First(&existing).Error; err != nil {
			return err
		}
		id = existing.ID
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("add meridian product: %w", err)
	}
	return id, nil
}

// DeleteMeridianProduct forgets a Meridian item name.
func (s *Store) DeleteMeridianProduct(id uint) error {
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Delete(&models.MeridianProduct{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete meridian product %d: %w", id, err)
	}
	return nil
}

// ListMeridianProducts returns remembered names containing search, sorted.
func (s *Store) ListMeridianProducts(search string) ([]models.MeridianProduct, error) {
	var products []models.MeridianProduct
	err := s.withConn(func(tx *gorm.DB) error {
		q := tx.Model(&models.MeridianProduct{})
		if search != "" {
			q = q.Where(`name LIKE ? ESCAPE '\'`, likePattern(search))
		}
		return q.Find(&products).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list meridian products: %w", err)
	}
	sortByName(products,
		func(p models.MeridianProduct) string { return p.Name },
		func(p models.MeridianProduct) uint { return p.ID })
	return products, nil
}
