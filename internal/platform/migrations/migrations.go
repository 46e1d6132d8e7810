package migrations

import (
	"fmt"

	"gorm.io/gorm"
)

// constraints are applied after the per-repository AutoMigrate calls have
// created the tables. Each statement is guarded so re-running on an already
// migrated database is a no-op.
var constraints = []struct {
	name string
	sql  string
}{
	{
		name: "fk_adoptions_pet",
		sql: `ALTER TABLE adoptions ADD CONSTRAINT fk_adoptions_pet
			FOREIGN KEY (pet_id) REFERENCES pets (id) ON DELETE CASCADE`,
	},
	{
		name: "fk_adoptions_adopter",
		sql: `ALTER TABLE adoptions ADD CONSTRAINT fk_adoptions_adopter
			FOREIGN KEY (adopter_id) REFERENCES adopters (id) ON DELETE CASCADE`,
	},
	{
		name: "fk_favorites_pet",
		sql: `ALTER TABLE favorites ADD CONSTRAINT fk_favorites_pet
			FOREIGN KEY (pet_id) REFERENCES pets (id) ON DELETE CASCADE`,
	},
	{
		name: "fk_favorites_adopter",
		sql: `ALTER TABLE favorites ADD CONSTRAINT fk_favorites_adopter
			FOREIGN KEY (adopter_id) REFERENCES adopters (id) ON DELETE CASCADE`,
	},
}

// Apply installs the cross-table foreign keys. Child rows follow their
// parents: deleting a pet or an adopter removes the adoption and favorite
// rows that reference it.
func Apply(db *gorm.DB) error {
	for _, c := range constraints {
		stmt := fmt.Sprintf(
			`DO $$ BEGIN %s; EXCEPTION WHEN duplicate_object THEN NULL; END $$;`,
			c.sql,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("applying constraint %s: %w", c.name, err)
		}
	}
	return nil
}
