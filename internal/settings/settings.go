package settings

import (
	"errors"

	"e-kasir/internal/models"

	"gorm.io/gorm"
)

// Defaults is the canned store profile used until the owner saves one.
var Defaults = models.AppSettings{
	ID:            1,
	StoreName:     "E-Kasir",
	Address:       "Jl. Jenderal Sudirman No. 1, Jakarta",
	Phone:         "021-12345678",
	ReceiptFooter: "Terima kasih atas kunjungan Anda!",
}

// Service reads and writes the single settings record wholesale.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Get() (*models.AppSettings, error) {
	var cfg models.AppSettings
	err := s.db.First(&cfg, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		out := Defaults
		return &out, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save overwrites the whole record. There is exactly one row.
func (s *Service) Save(cfg *models.AppSettings) error {
	cfg.ID = 1
	return s.db.Save(cfg).Error
}
