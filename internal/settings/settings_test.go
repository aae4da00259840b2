package settings

import (
	"testing"

	"e-kasir/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AppSettings{}))
	return New(db)
}

func TestGetReturnsDefaultsWhenUnset(t *testing.T) {
	s := testService(t)

	cfg, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "E-Kasir", cfg.StoreName)
	assert.Equal(t, "Terima kasih atas kunjungan Anda!", cfg.ReceiptFooter)
}

func TestSaveOverwritesWholesale(t *testing.T) {
	s := testService(t)

	first := models.AppSettings{
		StoreName:     "Kopi Pagi",
		Address:       "Jl. Melati 2",
		Phone:         "021-555",
		ReceiptFooter: "Sampai jumpa!",
	}
	require.NoError(t, s.Save(&first))

	// A second save with empty fields still replaces everything
	second := models.AppSettings{StoreName: "Kopi Sore"}
	require.NoError(t, s.Save(&second))

	cfg, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, "Kopi Sore", cfg.StoreName)
	assert.Empty(t, cfg.Address)
	assert.Empty(t, cfg.ReceiptFooter)
}
