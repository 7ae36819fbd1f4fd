package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/hwickes/restyle-pos/app/db/fakers"
	"github.com/hwickes/restyle-pos/app/helpers"
	"github.com/hwickes/restyle-pos/app/models"
)

const productCount = 40

// Seed loads a demo shop: an owner account, two staff, a handful of suppliers
// and locations, and a rail of products spread across them.
func Seed(db *gorm.DB) error {
	ownerPassword, err := helpers.HashPassword("changeme")
	if err != nil {
		return err
	}
	owner := &models.User{
		Name:     "Shop Owner",
		Email:    "owner@example.com",
		Password: ownerPassword,
		Role:     models.RoleOwner,
	}
	if err := db.FirstOrCreate(owner, "email = ?", owner.Email).Error; err != nil {
		return err
	}

	for i := 0; i < 2; i++ {
		staff := fakers.UserFaker(models.RoleStaff)
		if err := db.Create(staff).Error; err != nil {
			return err
		}
	}

	var suppliers []*models.Supplier
	for i := 0; i < 4; i++ {
		supplier := fakers.SupplierFaker()
		if err := db.Create(supplier).Error; err != nil {
			return err
		}
		suppliers = append(suppliers, supplier)
	}

	var locations []*models.Location
	for _, name := range []string{"Shop floor", "Back room", "Storage unit"} {
		location := &models.Location{Name: name}
		if err := db.FirstOrCreate(location, "name = ?", name).Error; err != nil {
			return err
		}
		locations = append(locations, location)
	}

	for i := 0; i < productCount; i++ {
		supplier := suppliers[i%len(suppliers)]
		location := locations[i%len(locations)]
		product := fakers.ProductFaker(&supplier.ID, &location.ID)
		if err := db.Create(product).Error; err != nil {
			return err
		}
		adjustment := &models.StockAdjustment{
			ProductID: product.ID,
			Delta:     product.Stock,
			Reason:    models.StockReasonIntake,
			Note:      "seeded stock",
		}
		if err := db.Create(adjustment).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d products across %d suppliers", productCount, len(suppliers))
	return nil
}
