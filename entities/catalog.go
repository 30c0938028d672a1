package entities

// Tag, MeasureUnit and Ingredient are read-mostly reference data managed
// out of band (fixtures / admin tooling), so they keep plain integer ids.

type Tag struct {
	ID    uint   `gorm:"primary_key" json:"id"`
	Name  string `gorm:"uniqueIndex;size:200" json:"name"`
	Color string `gorm:"size:7" json:"color"`
	Slug  string `gorm:"uniqueIndex;size:200" json:"slug"`
}

type MeasureUnit struct {
	ID   uint   `gorm:"primary_key" json:"id"`
	Unit string `gorm:"uniqueIndex;size:200" json:"unit"`
}

type Ingredient struct {
	ID            uint   `gorm:"primary_key" json:"id"`
	Name          string `gorm:"size:200;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasureUnitID uint   `gorm:"uniqueIndex:idx_ingredient_name_unit" json:"-"`

	MeasureUnit *MeasureUnit `gorm:"foreignKey:MeasureUnitID;constraint:OnDelete:CASCADE" json:"-"`
}
