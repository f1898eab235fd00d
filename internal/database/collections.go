package database

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rezvirumon/user-billing-server/internal/logger"
	"github.com/rezvirumon/user-billing-server/internal/registry"
)

// Tên các collection
const (
	ColCustomers      = "customers"
	ColMonthlyReports = "monthly_reports"
)

// CollectionNames trả về tất cả collection ứng dụng sử dụng
func CollectionNames() []string {
	return []string{ColCustomers, ColMonthlyReports}
}

// Collections là registry các collection MongoDB, được truyền vào các service
type Collections = registry.Registry[*mongo.Collection]

// NewCollections tạo registry rỗng
func NewCollections() *Collections {
	return registry.NewRegistry[*mongo.Collection]()
}

// RegisterCollections đăng ký các collection của db vào registry
func RegisterCollections(reg *Collections, db *mongo.Database) error {
	log := logger.GetAppLogger()
	for _, name := range CollectionNames() {
		isNew, err := reg.Register(name, db.Collection(name))
		if err != nil {
			return fmt.Errorf("register collection %s: %w", name, err)
		}
		if isNew {
			log.Infof("Collection %s registered successfully", name)
		} else {
			log.Warnf("Collection %s already registered, replaced", name)
		}
	}
	log.WithField("collections", reg.Names()).Info("Collections ready")
	return nil
}
