package store

import (
	"fmt"
	"strings"

	"github.com/diewo77/lens-orders/internal/models"
	"github.com/diewo77/lens-orders/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func clientInput(fullName, phone string) (models.Client, error) {
	c := models.Client{
		FullName: strings.TrimSpace(fullName),
		Phone:    validation.NormalizePhone(phone),
	}
	v := make(validation.Violations)
	validation.Required("full_name", c.FullName, v)
	validation.MaxLen("full_name", c.FullName, 255, v)
	validation.MaxLen("phone", c.Phone, 50, v)
	return c, v.Err()
}

// AddClient inserts a client and returns its id. When a client with the same
// name and phone already exists, its id is returned and nothing is written.
func (s *Store) AddClient(fullName, phone string) (uint, error) {
	c, err := clientInput(fullName, phone)
	if err != nil {
		return 0, err
	}
	var id uint
	err = s.withConn(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&c).Error; err != nil {
			return err
		}
		var existing models.Client
		if err := tx.Where("full_name = ? AND phone = ?", c.FullName, c.Phone).First(&existing).Error; err != nil {
			return err
		}
		id = existing.ID
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("add client: %w", err)
	}
	return id, nil
}

// UpdateClient replaces the name and phone of client id.
func (s *Store) UpdateClient(id uint, fullName, phone string) error {
	c, err := clientInput(fullName, phone)
	if err != nil {
		return err
	}
	err = s.withConn(func(tx *gorm.DB) error {
		return tx.Model(&models.Client{}).Where("id = ?", id).
			Updates(map[string]any{"full_name": c.FullName, "phone": c.Phone}).Error
	})
	if err != nil {
		return fmt.Errorf("update client %d: %w", id, err)
	}
	return nil
}

// DeleteClient removes a client together with its orders and their items.
func (s *Store) DeleteClient(id uint) error {
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Delete(&models.Client{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	return nil
}

// ListClients returns clients whose name or phone contains search, sorted by name.
func (s *Store) ListClients(search string) ([]models.Client, error) {
	var clients []models.Client
	err := s.withConn(func(tx *gorm.DB) error {
		q := tx.Model(&models.Client{})
		if search != "" {
			p := likePattern(search)
			q = q.Where(`(full_name LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\')`, p, p)
		}
		return q.Find(&clients).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	sortByName(clients,
		func(c models.Client) string { return c.FullName },
		func(c models.Client) uint { return c.ID })
	return clients, nil
}

// GetClient loads one client.
func (s *Store) GetClient(id uint) (*models.Client, error) {
	var c models.Client
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.First(&c, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("get client %d: %w", id, notFound(err))
	}
	return &c, nil
}
